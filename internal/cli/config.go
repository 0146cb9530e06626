package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = "arbor.yaml"

// Config is the optional arbor.yaml file. Command flags override it.
type Config struct {
	LogLevel string      `yaml:"log_level"`
	LogJSON  bool        `yaml:"log_json"`
	Redis    RedisConfig `yaml:"redis"`
	HTTP     HTTPConfig  `yaml:"http"`
	Tick     TickConfig  `yaml:"tick"`
}

// RedisConfig enables Redis snapshots, locks and the global scope when Addr is set.
// Addr is either host:port or a redis:// URL.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type HTTPConfig struct {
	Port string `yaml:"port"`
}

type TickConfig struct {
	Delta    float64       `yaml:"delta"`
	Interval time.Duration `yaml:"interval"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		HTTP:     HTTPConfig{Port: "8080"},
		Tick:     TickConfig{Delta: 0.1},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Tick.Delta < 0 {
		return cfg, fmt.Errorf("tick.delta must not be negative, got %v", cfg.Tick.Delta)
	}
	return cfg, nil
}
