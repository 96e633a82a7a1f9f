// Package config loads runtime configuration for the filebox client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the storage backend
//	-d string   path of the local SQLite store
//	-o string   directory downloads are saved to
//	-k bool     keep upload tags after a successful upload (use -k=false)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds. Absent keys keep the default:
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "database_path": "filebox.db",
//	  "download_dir": "download",
//	  "notify_duration": "3500ms",
//	  "preview_ttl": "30s",
//	  "keep_tags": true,
//	  "log_level": "info"
//	}
//
// This package does not read environment variables; use the JSON file or
// flags.
package config
