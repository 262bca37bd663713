package graphiteflow

import (
	"github.com/ghalamif/GraphiteFlow/internal/app/config"
)

// Config re-exports the root configuration struct so downstream
// projects can construct or modify it programmatically.
type Config = config.Config

type (
	// NodeConfig describes one graphite destination.
	NodeConfig = config.NodeConfig
	// ArchiveConfig configures the optional SQL archive destination.
	ArchiveConfig = config.ArchiveConfig
	// MetricsConfig configures the metrics HTTP server.
	MetricsConfig = config.MetricsConfig
)

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// ParseConfig decodes an in-memory YAML document.
func ParseConfig(raw []byte) (*Config, error) {
	return config.Parse(raw)
}
