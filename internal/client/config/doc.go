// Package config loads runtime configuration for the TripKeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file (see parseFile) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL (default http://localhost:8080)
//	-t int      request timeout (seconds)
//	-p int      photo feed page size
//	-l string   log level
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:8080",
//	  "request_timeout": "30s",
//	  "page_size": 12,
//	  "scroll_threshold": 300,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// The same keys are accepted in a .yaml/.yml file.
//
// This package does not read environment variables.
package config
