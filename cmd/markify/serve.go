// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opticalsecurity/markify/internal/cloudflare"
	"github.com/opticalsecurity/markify/internal/convert"
	"github.com/opticalsecurity/markify/internal/server"
	"github.com/opticalsecurity/markify/pkg/types"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload page and the conversion proxy",
	Long: `Serve starts an HTTP server with the upload page at /, the conversion
endpoint at POST /api/convert and a health check at /healthz.

Uploads without their own credentials use the configured defaults
(cloudflare.api_token and cloudflare.account_id, CLOUDFLARE_API_TOKEN and
CLOUDFLARE_ACCOUNT_ID, or the .secrets/ directory). Images are only accepted
with caller-supplied credentials.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :3000)")
	serveCmd.Flags().String("allow-origins", "", "CORS allowed origins (comma-separated)")
	serveCmd.Flags().Bool("access-log", true, "write one access log line per request to stdout")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.allow_origins", serveCmd.Flags().Lookup("allow-origins"))

	rootCmd.AddCommand(serveCmd)
}

// newService wires the upstream client into a conversion service.
func newService(cfg types.CloudflareConfig, defaults types.Credentials) *convert.Service {
	httpc := &http.Client{Timeout: cfg.Timeout}
	return convert.NewService(cloudflare.New(cfg.BaseURL, httpc), defaults)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if !cfg.Cloudflare.Complete() {
		slog.Warn("default Cloudflare credentials are incomplete; uploads must supply their own")
	}

	svc := newService(cfg.Cloudflare, cfg.Cloudflare.Credentials)

	opts := server.Options{Logger: slog.Default(), JSONAccessLog: cfg.Log.Format == "json"}
	if on, _ := cmd.Flags().GetBool("access-log"); on {
		opts.AccessLog = os.Stdout
	}
	srv, err := server.New(cfg.Server, svc, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("serving on %s: %w", cfg.Server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	if err := srv.Shutdown(shutdownTimeout); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
