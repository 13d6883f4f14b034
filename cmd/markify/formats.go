// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/opticalsecurity/markify/internal/mediatype"
)

// formatEntry describes one accepted media type.
type formatEntry struct {
	MediaType                 string `json:"media_type" yaml:"media_type"`
	RequiresCustomCredentials bool   `json:"requires_custom_credentials" yaml:"requires_custom_credentials"`
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported media types",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return writeFormats(os.Stdout, asJSON)
	},
}

func init() {
	formatsCmd.Flags().Bool("json", false, "output as JSON instead of YAML")

	rootCmd.AddCommand(formatsCmd)
}

func supportedFormats() []formatEntry {
	all := mediatype.Supported()
	out := make([]formatEntry, len(all))
	for i, mt := range all {
		out[i] = formatEntry{MediaType: mt, RequiresCustomCredentials: mediatype.IsImage(mt)}
	}
	return out
}

func writeFormats(w io.Writer, asJSON bool) error {
	entries := supportedFormats()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}
