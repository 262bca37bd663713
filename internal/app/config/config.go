package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full plugin configuration. An empty file is valid and
// yields a configuration with no destinations.
type Config struct {
	Nodes   []NodeConfig  `yaml:"nodes"`
	Archive ArchiveConfig `yaml:"archive"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// NodeConfig names one graphite destination. Exactly one long-lived
// writer is created per node at registration time.
type NodeConfig struct {
	Name       string `yaml:"name"`
	Address    string `yaml:"address"`
	Prefix     string `yaml:"prefix"`
	StoreRates bool   `yaml:"store_rates"`
}

// ArchiveConfig enables the optional SQL archive destination when
// ConnString is set.
type ArchiveConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads and validates YAML from disk. Unknown fields are rejected:
// a typo in the configuration should fail registration, not be ignored.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes an in-memory YAML document.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9100"
	}
	if c.Archive.ConnString != "" && c.Archive.Table == "" {
		c.Archive.Table = "metrics"
	}
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Nodes))
	for i, n := range c.Nodes {
		if n.Name == "" {
			return fmt.Errorf("nodes[%d]: name is required", i)
		}
		if n.Address == "" {
			return fmt.Errorf("node %q: address is required", n.Name)
		}
		if seen[n.Name] {
			return fmt.Errorf("node %q: duplicate name", n.Name)
		}
		seen[n.Name] = true
	}
	return nil
}
