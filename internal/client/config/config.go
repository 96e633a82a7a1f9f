package config

import "time"

// Config holds runtime settings for the filebox client.
type Config struct {
	// ServerURL is the base URL of the backend, e.g. "http://127.0.0.1:8000".
	ServerURL string
	// DatabasePath is the local SQLite file holding the session.
	DatabasePath string
	DownloadDir  string
	// NotifyDuration is how long a status message stays visible.
	NotifyDuration time.Duration
	// PreviewTTL is how long a preview temp file is kept for the viewer.
	PreviewTTL time.Duration
	// KeepTags leaves the upload tags in place after a successful upload.
	KeepTags bool
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DatabasePath = "filebox.db"
	c.DownloadDir = "download"
	c.NotifyDuration = 3500 * time.Millisecond
	c.PreviewTTL = 30 * time.Second
	c.KeepTags = true
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
