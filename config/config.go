// Package config loads service configuration from a YAML or JSON file with
// REGSIM_ environment-variable overrides.
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

	"github.com/registrarlab/regsim/core/metrics"
)

// Config is the root service configuration.
type Config struct {
	API     APIConfig      `json:"api"`
	Engine  EngineConfig   `json:"engine"`
	Metrics metrics.Config `json:"metrics"`
}

// APIConfig configures the HTTP boundary.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// EngineConfig carries the default strategy kinds used when a simulation
// request omits them, plus generation settings.
type EngineConfig struct {
	// Scheduler is the default ordering strategy: "fcfs" or "weighted".
	Scheduler string `json:"scheduler"`
	// Allocator is the default matching strategy.
	Allocator string `json:"allocator"`
	// Seed fixes the random source of every run when non-zero.
	Seed int64 `json:"seed"`
	// ScenarioCatalog optionally points to a YAML file with extra scenario
	// profiles merged over the built-ins.
	ScenarioCatalog string `json:"scenario_catalog"`
}

// SetDefaults applies the documented boundary defaults.
func (c *EngineConfig) SetDefaults() {
	if c.Scheduler == "" {
		c.Scheduler = "fcfs"
	}
	if c.Allocator == "" {
		c.Allocator = "college_based"
	}
}

// Validate checks the default scheduler kind. Allocator kinds fall back to
// college-based, so they need no check here.
func (c EngineConfig) Validate() error {
	switch c.Scheduler {
	case "fcfs", "weighted":
		return nil
	default:
		return fmt.Errorf("unknown scheduler %q", c.Scheduler)
	}
}

// Load reads the configuration file, applies environment overrides
// (REGSIM_API__ADDR style), then defaults and validation.
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
	if err := k.Load(env.Provider("REGSIM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "regsim_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.API.SetDefaults()
	cfg.Engine.SetDefaults()
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
