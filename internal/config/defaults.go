package config

import "github.com/ligandscope/core/internal/models"

const (
	DefaultServerPort    = 8080
	DefaultServerMode    = "release"
	DefaultAllowedOrigin = "*"

	DefaultDatasetLocation = "data/cell_cell_interactions.json"
	DefaultCollagenMarker  = "Col"
	DefaultIntegrinMarker  = "Itg"

	DefaultLowThresholdFactor = 10

	DefaultMinIOEndpoint = "localhost:9000"

	DefaultHeatmapWidth  = 1100
	DefaultHeatmapHeight = 800
	DefaultChordSize     = 720

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills zero-value fields; explicit settings always win.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.AllowedOrigin == "" {
		cfg.Server.AllowedOrigin = DefaultAllowedOrigin
	}

	if cfg.Dataset.Location == "" {
		cfg.Dataset.Location = DefaultDatasetLocation
	}
	if len(cfg.Dataset.CellTypes) == 0 {
		cfg.Dataset.CellTypes = models.DefaultCellTypes.Strings()
	}
	if cfg.Dataset.CollagenMarker == "" {
		cfg.Dataset.CollagenMarker = DefaultCollagenMarker
	}
	if cfg.Dataset.IntegrinMarker == "" {
		cfg.Dataset.IntegrinMarker = DefaultIntegrinMarker
	}

	if cfg.Scale.LowThresholdFactor == 0 {
		cfg.Scale.LowThresholdFactor = DefaultLowThresholdFactor
	}

	if cfg.Storage.Endpoint == "" {
		cfg.Storage.Endpoint = DefaultMinIOEndpoint
	}

	if cfg.Render.HeatmapWidth == 0 {
		cfg.Render.HeatmapWidth = DefaultHeatmapWidth
	}
	if cfg.Render.HeatmapHeight == 0 {
		cfg.Render.HeatmapHeight = DefaultHeatmapHeight
	}
	if cfg.Render.ChordSize == 0 {
		cfg.Render.ChordSize = DefaultChordSize
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// CellTypes returns the configured enumeration.
func (c *Config) CellTypes() models.CellTypes {
	out := make(models.CellTypes, len(c.Dataset.CellTypes))
	for i, s := range c.Dataset.CellTypes {
		out[i] = models.CellType(s)
	}
	return out
}
