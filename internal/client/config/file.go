package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tripkeeper/internal/flagx"
	"github.com/dmitrijs2005/tripkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding config files. Durations
// use timex.Duration, so files may say "30s" or give integer nanoseconds.
// Absent keys leave the current value alone.
type FileConfig struct {
	BaseURL         string          `json:"base_url" yaml:"base_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	PageSize        int             `json:"page_size" yaml:"page_size"`
	ScrollThreshold float64         `json:"scroll_threshold" yaml:"scroll_threshold"`
	LogLevel        string          `json:"log_level" yaml:"log_level"`
	LogFormat       string          `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.PageSize != 0 {
		cfg.PageSize = fc.PageSize
	}
	if fc.ScrollThreshold != 0 {
		cfg.ScrollThreshold = fc.ScrollThreshold
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
}
