package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LIGANDSCOPE_SERVER_PORT.
const EnvPrefix = "LIGANDSCOPE"

// keys lists every setting so environment overrides work without a file.
var keys = []string{
	"server.port", "server.mode", "server.allowed_origin",
	"dataset.location", "dataset.cell_types", "dataset.collagen_marker", "dataset.integrin_marker",
	"scale.low_threshold_factor",
	"storage.endpoint", "storage.access_key_id", "storage.secret_access_key", "storage.use_ssl", "storage.region",
	"render.heatmap_width", "render.heatmap_height", "render.chord_size",
	"log.level", "log.format",
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}
	return v, nil
}

// Load reads the YAML file at path when path is non-empty, applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv exports variables from the given .env files. Missing files are
// skipped; existing environment variables are never overwritten.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}
