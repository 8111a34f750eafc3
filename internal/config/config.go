package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Sim      SimConfig      `toml:"sim"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Logging  LoggingConfig  `toml:"logging"`
}

type RegistryConfig struct {
	InitialCapacity int  `toml:"initial_capacity"` // per-type dense array preallocation
	Checks          bool `toml:"checks"`           // panic on registry misuse
}

type SimConfig struct {
	TickRate time.Duration `toml:"tick_rate"` // 0 = run ticks back to back
	Ticks    int           `toml:"ticks"`
	Scenario string        `toml:"scenario"` // YAML scenario path, optional
	Script   string        `toml:"script"`   // Lua scenario path, optional
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	BindAddress string `toml:"bind_address"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults. name is only used in errors.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if cfg.Sim.Ticks < 0 {
		return nil, fmt.Errorf("parse config %s: sim.ticks must be >= 0, got %d", name, cfg.Sim.Ticks)
	}
	if cfg.Registry.InitialCapacity < 0 {
		return nil, fmt.Errorf("parse config %s: registry.initial_capacity must be >= 0, got %d", name, cfg.Registry.InitialCapacity)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Registry: RegistryConfig{
			InitialCapacity: 64,
			Checks:          true,
		},
		Sim: SimConfig{
			TickRate: 200 * time.Millisecond,
			Ticks:    50,
			Scenario: "data/yaml/scenario.yaml",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			BindAddress: "127.0.0.1:9108",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
