package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mbaumer/orderlink/core/metrics"
)

// Config is the full service configuration.
type Config struct {
	Store   PluginConfig   `json:"store"`
	Metrics metrics.Config `json:"metrics"`
}

// PluginConfig names a store backend and carries its raw configuration data.
// The selected backend decodes the map into its own config struct.
type PluginConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// SetDefaults fills in values for fields left empty.
func (c *Config) SetDefaults() {
	if c.Store.Type == "" {
		c.Store.Type = "csv"
	}
	c.Metrics.SetDefaults()
}

// Load reads the configuration file at path. The format is chosen by file
// extension; K_-prefixed environment variables override file values
// (K_STORE__TYPE=sqlite sets store.type).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return &cfg, nil
}
