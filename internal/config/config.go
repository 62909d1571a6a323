// Package config loads service settings from an optional YAML file and
// LIGANDSCOPE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ligandscope/core/internal/logging"
)

// Config is the root of the service configuration.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Dataset DatasetConfig  `mapstructure:"dataset"`
	Scale   ScaleConfig    `mapstructure:"scale"`
	Storage StorageConfig  `mapstructure:"storage"`
	Render  RenderConfig   `mapstructure:"render"`
	Log     logging.Config `mapstructure:"log"`
}

type ServerConfig struct {
	Port          int    `mapstructure:"port"`
	Mode          string `mapstructure:"mode"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// DatasetConfig locates the dataset and fixes the cell-type enumeration and
// the label markers of the filtered view.
type DatasetConfig struct {
	Location       string   `mapstructure:"location"`
	CellTypes      []string `mapstructure:"cell_types"`
	CollagenMarker string   `mapstructure:"collagen_marker"`
	IntegrinMarker string   `mapstructure:"integrin_marker"`
}

type ScaleConfig struct {
	LowThresholdFactor float64 `mapstructure:"low_threshold_factor"`
}

// StorageConfig is used when Dataset.Location is an s3:// URL.
type StorageConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Region          string `mapstructure:"region"`
}

type RenderConfig struct {
	HeatmapWidth  int `mapstructure:"heatmap_width"`
	HeatmapHeight int `mapstructure:"heatmap_height"`
	ChordSize     int `mapstructure:"chord_size"`
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if strings.TrimSpace(c.Dataset.Location) == "" {
		errs = append(errs, errors.New("dataset.location is required"))
	}
	if len(c.Dataset.CellTypes) < 2 {
		errs = append(errs, errors.New("dataset.cell_types needs at least two entries"))
	}
	if c.Dataset.CollagenMarker == "" || c.Dataset.IntegrinMarker == "" {
		errs = append(errs, errors.New("dataset markers must not be empty"))
	}
	if c.Scale.LowThresholdFactor <= 0 {
		errs = append(errs, fmt.Errorf("scale.low_threshold_factor must be positive, got %g", c.Scale.LowThresholdFactor))
	}
	if c.Render.HeatmapWidth <= 0 || c.Render.HeatmapHeight <= 0 || c.Render.ChordSize <= 0 {
		errs = append(errs, errors.New("render sizes must be positive"))
	}
	return errors.Join(errs...)
}
