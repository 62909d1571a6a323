package pipeline

import (
	"github.com/montanaflynn/stats"

	"github.com/ligandscope/core/internal/models"
)

// Summarize describes the value distribution of m. Distribution fields stay
// zero when m has no positive entries.
func Summarize(m *models.InteractionMatrix) *models.MatrixStats {
	rows, cols := m.Dims()
	positive := m.Positive()
	out := &models.MatrixStats{
		Rows:    rows,
		Columns: cols,
		NonZero: len(positive),
		Max:     m.Max(),
	}
	if len(positive) == 0 {
		return out
	}

	data := stats.Float64Data(positive)
	if v, err := data.Min(); err == nil {
		out.MinPositive = v
	}
	if v, err := data.Median(); err == nil {
		out.Median = v
	}
	if v, err := data.Percentile(95); err == nil {
		out.P95 = v
	}
	return out
}
