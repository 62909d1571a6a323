package pipeline

import (
	"strings"

	"github.com/ligandscope/core/internal/models"
)

// Default label markers of the collagen-integrin view.
const (
	CollagenMarker = "Col"
	IntegrinMarker = "Itg"
)

// MarkerFilter selects the columns and rows of the filtered view by
// case-sensitive substring match on their labels.
type MarkerFilter struct {
	ColumnMarker string
	RowMarker    string
}

// CollagenIntegrin keeps collagen ligands and integrin receptors.
var CollagenIntegrin = MarkerFilter{ColumnMarker: CollagenMarker, RowMarker: IntegrinMarker}

func (f MarkerFilter) matchColumn(label string) bool {
	return strings.Contains(label, f.ColumnMarker)
}

func (f MarkerFilter) matchRow(label string) bool {
	return strings.Contains(label, f.RowMarker)
}

// Apply restricts m to matching columns and rows and drops rows that are
// entirely zero afterwards.
func (f MarkerFilter) Apply(m *models.InteractionMatrix) *models.InteractionMatrix {
	return m.SelectColumns(f.matchColumn).SelectRows(func(label string, values []float64) bool {
		return f.matchRow(label) && !allZero(values)
	})
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

// Prepare returns the full ligand-receptor matrix and its filtered view.
func Prepare(bundle *models.InteractionBundle, filter MarkerFilter) (full, filtered *models.InteractionMatrix, err error) {
	if bundle == nil {
		return nil, nil, &models.MissingDataError{}
	}
	if bundle.LigandReceptor == nil {
		return nil, nil, &models.MissingDataError{Key: bundle.Key, Field: models.FieldLigandReceptor}
	}
	full = bundle.LigandReceptor
	return full, filter.Apply(full), nil
}
