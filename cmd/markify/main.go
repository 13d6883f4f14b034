// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the markify CLI: the conversion proxy
// server and a local batch converter sharing the same upload policy.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opticalsecurity/markify/internal/logging"
	"github.com/opticalsecurity/markify/internal/secrets"
	"github.com/opticalsecurity/markify/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appConfig is resolved once per invocation in PersistentPreRunE.
var appConfig types.Config

// rootCmd is the base command for the markify CLI.
var rootCmd = &cobra.Command{
	Use:   "markify",
	Short: "Convert documents to Markdown with Cloudflare Workers AI",
	Long: `markify converts PDFs, spreadsheets, HTML, XML and images to Markdown using
the Cloudflare Workers AI toMarkdown API.

"serve" runs a small web page and a single proxy endpoint that forwards uploads
to Cloudflare with either the caller's credentials or the server defaults.
"convert" runs the same policy against local files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(viper.GetViper(), s)
		if err != nil {
			return err
		}
		if _, err := logging.Init(os.Stderr, cfg.Log); err != nil {
			return err
		}
		appConfig = cfg

		if used := viper.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "path", used)
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			slog.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./markify.yaml or ~/.config/markify/markify.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of credential files")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("markify")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "markify"))
		}
	}

	configureViper(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
