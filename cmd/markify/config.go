// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/opticalsecurity/markify/internal/cloudflare"
	"github.com/opticalsecurity/markify/internal/secrets"
	"github.com/opticalsecurity/markify/pkg/types"
)

const (
	envPrefix      = "MARKIFY"
	defaultAddr    = ":3000"
	defaultMaxBody = 100 * 1024 * 1024
)

// configureViper installs defaults and environment bindings on v.
// The default credentials also honour the unprefixed CLOUDFLARE_* names.
func configureViper(v *viper.Viper) {
	v.SetDefault("server.addr", defaultAddr)
	v.SetDefault("server.allow_origins", "")
	v.SetDefault("server.max_upload_bytes", defaultMaxBody)
	v.SetDefault("cloudflare.base_url", cloudflare.DefaultBaseURL)
	v.SetDefault("cloudflare.timeout", time.Duration(0))
	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("cloudflare.api_token", envPrefix+"_CLOUDFLARE_API_TOKEN", "CLOUDFLARE_API_TOKEN")
	_ = v.BindEnv("cloudflare.account_id", envPrefix+"_CLOUDFLARE_ACCOUNT_ID", "CLOUDFLARE_ACCOUNT_ID")
}

// loadConfig decodes v into a Config. Default credentials missing from
// config and environment are taken from the secrets map.
func loadConfig(v *viper.Viper, s map[string]string) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}

	fallback := secrets.Credentials(s)
	if cfg.Cloudflare.APIToken == "" {
		cfg.Cloudflare.APIToken = fallback.APIToken
	}
	if cfg.Cloudflare.AccountID == "" {
		cfg.Cloudflare.AccountID = fallback.AccountID
	}

	if cfg.Server.MaxUploadBytes < 0 {
		return types.Config{}, fmt.Errorf("server.max_upload_bytes must not be negative")
	}
	if cfg.Cloudflare.Timeout < 0 {
		return types.Config{}, fmt.Errorf("cloudflare.timeout must not be negative")
	}
	return cfg, nil
}
