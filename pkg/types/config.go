// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Credentials identifies a Cloudflare account and the API token used to
// call it.
type Credentials struct {
	APIToken  string `json:"api_token,omitempty" yaml:"api_token,omitempty" mapstructure:"api_token"`
	AccountID string `json:"account_id,omitempty" yaml:"account_id,omitempty" mapstructure:"account_id"`
}

// Complete reports whether both the token and the account ID are set.
func (c Credentials) Complete() bool {
	return c.APIToken != "" && c.AccountID != ""
}

// CloudflareConfig holds settings for the upstream conversion API.
type CloudflareConfig struct {
	Credentials `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the API origin (default "https://api.cloudflare.com").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each upstream call. Zero leaves the transport default
	// in place and relies on the request context.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// LogConfig selects the log handler and level.
type LogConfig struct {
	// Format is "text" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// ServerConfig groups everything the HTTP server needs.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":3000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// AllowOrigins is the CORS allow-list passed to the cors middleware.
	// Empty disables CORS handling.
	AllowOrigins string `json:"allow_origins" yaml:"allow_origins" mapstructure:"allow_origins"`

	// MaxUploadBytes caps the request body size.
	MaxUploadBytes int `json:"max_upload_bytes" yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// Config is the full application configuration.
type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server" mapstructure:"server"`
	Cloudflare CloudflareConfig `json:"cloudflare" yaml:"cloudflare" mapstructure:"cloudflare"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}
