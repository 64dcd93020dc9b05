// Package config resolves settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load
const (
	EnvMode         = "SKYSCAN_ENV"
	EnvWebAddr      = "SKYSCAN_WEB_ADDR"
	EnvComputeURL   = "SKYSCAN_COMPUTE_URL"
	EnvStaticDir    = "SKYSCAN_STATIC_DIR"
	EnvTemplatesDir = "SKYSCAN_TEMPLATES_DIR"
)

// Defaults
const (
	DefaultWebAddr      = ":8080"
	DefaultComputeURL   = "http://localhost:5000"
	DefaultStaticDir    = "web/static"
	DefaultTemplatesDir = "web/templates"
)

// Config holds resolved settings
type Config struct {
	Mode         string
	WebAddr      string
	ComputeURL   string
	StaticDir    string
	TemplatesDir string
}

// EnvFile picks the env file for the current mode.
func EnvFile() string {
	if os.Getenv(EnvMode) == "dev" {
		return ".env.dev"
	}
	return ".env"
}

// Load reads envfile if it exists (a missing file is not an error) and
// resolves every setting. Variables already in the environment win over
// the file.
func Load(envfile string) (*Config, error) {
	if envfile != "" {
		if err := godotenv.Load(envfile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return FromEnv(), nil
}

// FromEnv resolves settings from the process environment only.
func FromEnv() *Config {
	return &Config{
		Mode:         os.Getenv(EnvMode),
		WebAddr:      getenv(EnvWebAddr, DefaultWebAddr),
		ComputeURL:   strings.TrimRight(getenv(EnvComputeURL, DefaultComputeURL), "/"),
		StaticDir:    getenv(EnvStaticDir, DefaultStaticDir),
		TemplatesDir: getenv(EnvTemplatesDir, DefaultTemplatesDir),
	}
}

// RunEndpoint is the full URL runs are posted to on the compute service.
func (c *Config) RunEndpoint() string {
	return c.ComputeURL + "/run"
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
