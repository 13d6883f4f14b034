// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opticalsecurity/markify/internal/convert"
	"github.com/opticalsecurity/markify/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert local files to Markdown",
	Long: `Convert uploads each file to the Cloudflare toMarkdown API and writes the
result as Markdown with YAML frontmatter. Media types are derived from the file
extension and checked against the same policy as the server.

Without --out-dir the Markdown is written to stdout. With --out-dir each file
is written to <out-dir>/<name>.md and existing outputs are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("out-dir", "", "directory for .md output (default: stdout)")
	convertCmd.Flags().String("api-token", "", "Cloudflare API token (default: configured token)")
	convertCmd.Flags().String("account-id", "", "Cloudflare account ID (default: configured account)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	outDir, _ := cmd.Flags().GetString("out-dir")
	token, _ := cmd.Flags().GetString("api-token")
	account, _ := cmd.Flags().GetString("account-id")

	// Configured credentials are sent as caller-supplied ones.
	creds := convert.ResolveCredentials(token, account, cfg.Cloudflare.Credentials)
	svc := newService(cfg.Cloudflare, types.Credentials{})

	result := convert.ConvertBatch(cmd.Context(), svc, args, convert.FileOptions{
		APIToken:  creds.APIToken,
		AccountID: creds.AccountID,
		OutDir:    outDir,
		Out:       os.Stdout,
		Log:       os.Stderr,
	})
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
