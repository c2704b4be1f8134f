// Package config holds runtime configuration for the lucyapi server.
package config

import (
	"os"
	"path/filepath"
)

// Config holds server configuration.
type Config struct {
	// DataDir is where the SQLite store lives.
	DataDir string

	// DocsBaseURL is the document service endpoint. The docs subsystem
	// is disabled when DocsToken is empty.
	DocsBaseURL string
	DocsToken   string

	// DefaultBranding is the preset applied when a document tool call
	// does not name one.
	DefaultBranding string
}

// Default returns the default configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:         filepath.Join(home, ".lucyapi"),
		DocsBaseURL:     "https://docs.snowcapsystems.com",
		DefaultBranding: "snowcap",
	}
}

// FromEnv returns the default configuration with LUCYAPI_* environment
// overrides applied.
func FromEnv() Config {
	cfg := Default()
	if v := os.Getenv("LUCYAPI_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("LUCYAPI_DOCS_URL"); v != "" {
		cfg.DocsBaseURL = v
	}
	if v := os.Getenv("LUCYAPI_DOCS_TOKEN"); v != "" {
		cfg.DocsToken = v
	}
	if v := os.Getenv("LUCYAPI_BRANDING"); v != "" {
		cfg.DefaultBranding = v
	}
	return cfg
}
