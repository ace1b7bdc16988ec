package config

import (
	"time"

	"github.com/dmitrijs2005/medreminder/internal/client/mediastore"
)

// Config holds runtime settings for the medreminder CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port][/prefix] of the REST backend.
//   - RequestTimeout: upper bound for a single HTTP exchange.
//   - StoreDSN: SQLite file that keeps the session between runs.
//   - ValkeyAddr: when set, the session lives in Valkey instead of SQLite.
//   - S3*: optional bucket used for prescription documents.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StoreDSN       string
	ValkeyAddr     string
	ValkeyPrefix   string
	LogLevel       string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.StoreDSN = "medreminder.db"
	c.ValkeyPrefix = "medreminder:"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// MediaConfig extracts the object storage settings.
func (c *Config) MediaConfig() mediastore.Config {
	return mediastore.Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	}
}
