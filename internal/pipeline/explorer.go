package pipeline

import (
	"sort"

	"github.com/ligandscope/core/internal/models"
	"github.com/ligandscope/core/internal/parser"
)

// BundleSource resolves a pair key to its bundle.
type BundleSource interface {
	Lookup(key models.PairKey) (*models.InteractionBundle, error)
}

// Explorer runs the whole selection-to-view pipeline for one request.
type Explorer struct {
	bundles            BundleSource
	selector           *Selector
	filter             MarkerFilter
	lowThresholdFactor float64
}

// NewExplorer wires the pipeline steps together.
func NewExplorer(bundles BundleSource, selector *Selector, filter MarkerFilter, lowThresholdFactor float64) *Explorer {
	return &Explorer{
		bundles:            bundles,
		selector:           selector,
		filter:             filter,
		lowThresholdFactor: lowThresholdFactor,
	}
}

// Selector exposes the cell-type enumeration used by the explorer.
func (e *Explorer) Selector() *Selector {
	return e.selector
}

func (e *Explorer) bundle(source, target models.CellType) (models.PairKey, *models.InteractionBundle, error) {
	key, err := e.selector.Select(source, target)
	if err != nil {
		return "", nil, err
	}
	b, err := e.bundles.Lookup(key)
	if err != nil {
		return "", nil, err
	}
	return key, b, nil
}

// Explore builds the heatmap and chord views for source→target. The color
// scale always derives from the full matrix.
func (e *Explorer) Explore(source, target models.CellType) (*models.PairView, error) {
	key, b, err := e.bundle(source, target)
	if err != nil {
		return nil, err
	}

	full, filtered, err := Prepare(b, e.filter)
	if err != nil {
		return nil, err
	}
	scale, err := BuildScale(full, e.lowThresholdFactor)
	if err != nil {
		return nil, err
	}

	return &models.PairView{
		Source: source,
		Target: target,
		Key:    key,
		Heatmap: &models.HeatmapView{
			Matrix:        full,
			ColorScale:    scale,
			HoverText:     HoverText(full),
			XAxisTitle:    models.LigandAxisTitle,
			YAxisTitle:    models.ReceptorAxisTitle,
			ColorbarTitle: models.ColorbarTitle,
			Stats:         Summarize(full),
		},
		Filtered: filtered,
		Chord:    parser.BuildChord(filtered.Transpose()),
	}, nil
}

// LigandActivities returns the activity ranking of the pair, best
// aupr_corrected first.
func (e *Explorer) LigandActivities(source, target models.CellType) ([]models.LigandActivity, error) {
	_, b, err := e.bundle(source, target)
	if err != nil {
		return nil, err
	}
	out := make([]models.LigandActivity, len(b.LigandActivities))
	copy(out, b.LigandActivities)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AUPRCorrected > out[j].AUPRCorrected
	})
	return out, nil
}

// LigandTarget returns the ligand-target matrix of the pair.
func (e *Explorer) LigandTarget(source, target models.CellType) (*models.InteractionMatrix, error) {
	key, b, err := e.bundle(source, target)
	if err != nil {
		return nil, err
	}
	if b.LigandTarget == nil {
		return nil, &models.MissingDataError{Key: key, Field: models.FieldLigandTarget}
	}
	return b.LigandTarget, nil
}
