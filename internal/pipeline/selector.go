// Package pipeline turns a cell-type selection into the matrices, color scale
// and annotations consumed by the heatmap and chord renderers. Every step is a
// pure function of its inputs.
package pipeline

import (
	"fmt"

	"github.com/ligandscope/core/internal/models"
)

// Selector validates cell-type selections against a fixed enumeration.
type Selector struct {
	cellTypes models.CellTypes
}

// NewSelector returns a selector over cellTypes. At least two types are
// required, otherwise no valid pair exists.
func NewSelector(cellTypes models.CellTypes) (*Selector, error) {
	if len(cellTypes) < 2 {
		return nil, fmt.Errorf("selector needs at least two cell types, got %d", len(cellTypes))
	}
	seen := make(map[models.CellType]bool, len(cellTypes))
	for _, c := range cellTypes {
		if seen[c] {
			return nil, fmt.Errorf("cell type %q listed twice", c)
		}
		seen[c] = true
	}
	return &Selector{cellTypes: append(models.CellTypes(nil), cellTypes...)}, nil
}

// CellTypes returns the enumeration in display order.
func (s *Selector) CellTypes() models.CellTypes {
	return append(models.CellTypes(nil), s.cellTypes...)
}

// Defaults returns the preselected source and target (indices 0 and 1).
func (s *Selector) Defaults() (models.CellType, models.CellType) {
	return s.cellTypes[0], s.cellTypes[1]
}

// Select returns the key of the source→target bundle.
func (s *Selector) Select(source, target models.CellType) (models.PairKey, error) {
	for _, c := range []models.CellType{source, target} {
		if !s.cellTypes.Contains(c) {
			return "", &models.InvalidPairError{
				Source:  source,
				Target:  target,
				Message: fmt.Sprintf("Error: %q is not a known cell type.", c),
			}
		}
	}
	if source == target {
		return "", &models.InvalidPairError{Source: source, Target: target, Message: models.SamePairMessage}
	}
	return models.NewPairKey(source, target), nil
}
