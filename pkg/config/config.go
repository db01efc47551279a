// Package config defines the YAML configuration of the site server.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"egoroff.spb.ru/pkg/navigation"
	"egoroff.spb.ru/pkg/sitemap"
)

// Config is the top-level structure of the configuration file.
type Config struct {
	HTTPAddr string `yaml:"http_addr"` // ":4200"
	SiteURL  string `yaml:"site_url"`  // "https://www.egoroff.spb.ru/"

	// SiteMap is the path of the section tree (JSON or YAML).
	// Empty means the map embedded into the binary.
	SiteMap string `yaml:"site_map"`
	Brand   string `yaml:"brand"`

	// Watch reloads the site map whenever the file changes.
	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// AuthToken protects the /system endpoints. Empty disables them.
	AuthToken string `yaml:"auth_token"`

	// CacheSize bounds the number of navigation responses cached per
	// graph generation. 0 disables caching.
	CacheSize int `yaml:"cache_size"`

	// SitemapDocuments are pages listed in sitemap.xml after the sections.
	SitemapDocuments []sitemap.DocumentRef `yaml:"sitemap_documents"`
}

// DefaultConfig returns a working configuration serving the embedded map.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:      ":4200",
		SiteURL:       "https://www.egoroff.spb.ru/",
		Brand:         navigation.DefaultBrand,
		WatchDebounce: 500 * time.Millisecond,
		CacheSize:     1024,
	}
}

// Load reads the YAML configuration at path on top of DefaultConfig.
// Environment variables in the file are expanded before decoding, and unknown
// keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read configuration file '%s': %w", path, err)
	}

	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("http_addr must not be empty")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if c.Watch && c.SiteMap == "" {
		return fmt.Errorf("watch requires site_map to point to a file")
	}
	for i, doc := range c.SitemapDocuments {
		if doc.Name == "" {
			return fmt.Errorf("sitemap_documents[%d]: name must not be empty", i)
		}
	}
	return nil
}
