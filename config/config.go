package config

import (
	"os"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"torrent-meta/bittorrent"
)

type Config struct {
	LogLevel          string `yaml:"log_level"`
	Workers           int    `yaml:"workers"`
	Format            string `yaml:"format"`
	Progress          bool   `yaml:"progress"`
	DedupeBits        uint64 `yaml:"dedupe_bits"`
	StrictKeyOrder    bool   `yaml:"strict_key_order"`
	AllowTrailingData bool   `yaml:"allow_trailing_data"`
	StrictFiles       bool   `yaml:"strict_files"`
	MaxDepth          int    `yaml:"max_depth"`
}

func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Workers:    4,
		Format:     "text",
		DedupeBits: 1 << 20,
	}
}

// ReadConfigFromFile overlays the YAML file at path on top of Default.
func ReadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "read config %s", path)
	}
	cfg := Default()
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.Annotatef(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return errors.NotValidf("format %q", c.Format)
	}
	if c.Workers <= 0 {
		return errors.NotValidf("workers %d", c.Workers)
	}
	if c.MaxDepth < 0 {
		return errors.NotValidf("max_depth %d", c.MaxDepth)
	}
	return nil
}

func (c *Config) ParseOptions() bittorrent.Options {
	return bittorrent.Options{
		StrictKeyOrder:    c.StrictKeyOrder,
		AllowTrailingData: c.AllowTrailingData,
		MaxDepth:          c.MaxDepth,
		StrictFiles:       c.StrictFiles,
	}
}
