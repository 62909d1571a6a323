package pipeline

import (
	"image/color"

	"github.com/ligandscope/core/internal/models"
)

// DefaultLowThresholdFactor stretches the weakest non-zero interaction ten
// times further up the scale than a linear mapping would.
const DefaultLowThresholdFactor = 10

// Scale colors: background for true zeros, then low and high intensity accents.
var (
	ZeroColor = color.RGBA{R: 255, G: 255, B: 255, A: 0xff}
	LowColor  = color.RGBA{R: 255, G: 182, B: 193, A: 0xff}
	HighColor = color.RGBA{R: 255, G: 105, B: 180, A: 0xff}
)

// BuildScale derives the three-stop scale of the heatmap from the full matrix.
// The middle stop sits at factor*minPositive/max and must fall strictly inside
// (0, 1).
func BuildScale(m *models.InteractionMatrix, lowThresholdFactor float64) (models.ColorScale, error) {
	minPositive, ok := m.MinPositive()
	if !ok {
		return nil, &models.EmptyRangeError{}
	}
	maxVal := m.Max()

	low := lowThresholdFactor * minPositive / maxVal
	if !(low > 0 && low < 1) {
		return nil, &models.ScaleDegenerateError{Position: low}
	}

	return models.ColorScale{
		{Position: 0, Color: ZeroColor},
		{Position: low, Color: LowColor},
		{Position: 1, Color: HighColor},
	}, nil
}
