package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
)

// Config holds runtime settings for the TripKeeper client.
//
// Fields:
//   - BaseURL: scheme and host of the trips backend, without the /api prefix.
//   - RequestTimeout: upper bound for a single HTTP round trip (0 disables it).
//   - PageSize: photos requested per feed page.
//   - ScrollThreshold: distance from the bottom of the feed, in display units,
//     at which the next page is requested.
//   - LogLevel, LogFormat: see logging.New.
type Config struct {
	BaseURL         string
	RequestTimeout  time.Duration
	PageSize        int
	ScrollThreshold float64
	LogLevel        string
	LogFormat       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = common.DefaultBaseURL
	c.RequestTimeout = 30 * time.Second
	c.PageSize = common.DefaultPageSize
	c.ScrollThreshold = common.DefaultScrollThreshold
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url %q: want http(s)://host[:port]", c.BaseURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.ScrollThreshold < 0 {
		return fmt.Errorf("scroll threshold must not be negative, got %v", c.ScrollThreshold)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
