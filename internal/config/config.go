package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/property/internal/core/observability/log"
)

// Config is the runtime configuration of the property tooling.
type Config struct {
	Log      log.Config     `json:"log" yaml:"log"`
	Registry RegistryConfig `json:"registry" yaml:"registry"`
}

type RegistryConfig struct {
	// Freeze rejects registrations once the built-in factories are in place.
	Freeze bool `json:"freeze" yaml:"freeze"`

	// Metrics exports resolver metrics to the prometheus registry.
	Metrics bool `json:"metrics" yaml:"metrics"`
}

func Default() Config {
	return Config{
		Log: log.Config{
			Level:    "info",
			Encoding: "console",
		},
		Registry: RegistryConfig{
			Freeze: true,
		},
	}
}

// Load reads the YAML file at path. An empty path or a missing file yields
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var err error
	if _, levelErr := log.ParseLevel(c.Log.Level); levelErr != nil {
		err = multierr.Append(err, fmt.Errorf("log.level: %w", levelErr))
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("log.encoding: unknown encoding %q", c.Log.Encoding))
	}
	return err
}
