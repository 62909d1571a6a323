package main

import (
	"context"
	"fmt"

	"github.com/ligandscope/core/internal/config"
	"github.com/ligandscope/core/internal/logging"
	"github.com/ligandscope/core/internal/metrics"
	"github.com/ligandscope/core/internal/pipeline"
	"github.com/ligandscope/core/internal/store"
)

// app bundles the dependencies every command shares.
type app struct {
	cfg      *config.Config
	log      logging.Logger
	store    *store.Store
	explorer *pipeline.Explorer
	metrics  *metrics.Metrics
}

// newApp loads the dataset named by cfg and wires the pipeline around it.
func newApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*app, error) {
	src, err := store.ParseLocation(cfg.Dataset.Location, cfg.Storage)
	if err != nil {
		return nil, err
	}
	st, err := store.Load(ctx, src, log.Named("store"))
	if err != nil {
		return nil, err
	}
	return newAppWithStore(cfg, log, st)
}

func newAppWithStore(cfg *config.Config, log logging.Logger, st *store.Store) (*app, error) {
	selector, err := pipeline.NewSelector(cfg.CellTypes())
	if err != nil {
		return nil, fmt.Errorf("cell types: %w", err)
	}
	filter := pipeline.MarkerFilter{
		ColumnMarker: cfg.Dataset.CollagenMarker,
		RowMarker:    cfg.Dataset.IntegrinMarker,
	}

	m := metrics.New(metrics.Config{EnableProcessMetrics: true, EnableGoMetrics: true})
	m.SetDatasetPairs(st.Len())

	return &app{
		cfg:      cfg,
		log:      log,
		store:    st,
		explorer: pipeline.NewExplorer(st, selector, filter, cfg.Scale.LowThresholdFactor),
		metrics:  m,
	}, nil
}
