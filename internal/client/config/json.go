package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filebox/internal/flagx"
	"github.com/dmitrijs2005/filebox/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-valued fields mark keys that were absent from the file.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	DatabasePath   string          `json:"database_path"`
	DownloadDir    string          `json:"download_dir"`
	NotifyDuration *timex.Duration `json:"notify_duration"`
	PreviewTTL     *timex.Duration `json:"preview_ttl"`
	KeepTags       *bool           `json:"keep_tags"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.NotifyDuration != nil {
		cfg.NotifyDuration = jc.NotifyDuration.Duration
	}
	if jc.PreviewTTL != nil {
		cfg.PreviewTTL = jc.PreviewTTL.Duration
	}
	if jc.KeepTags != nil {
		cfg.KeepTags = *jc.KeepTags
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
