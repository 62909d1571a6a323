package models

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
)

// Axis and colorbar titles of the heatmap.
const (
	LigandAxisTitle   = "Ligands"
	ReceptorAxisTitle = "Receptors"
	ColorbarTitle     = "Prior Regulatory Potential"
)

// ColorStop places a color at a position in [0, 1].
type ColorStop struct {
	Position float64
	Color    color.RGBA
}

// CSS renders the stop color as rgb(r,g,b).
func (s ColorStop) CSS() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", s.Color.R, s.Color.G, s.Color.B)
}

// MarshalJSON encodes the stop as a [position, "rgb(...)"] pair.
func (s ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Position, s.CSS()})
}

func (s *ColorStop) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("color stop: want [position, color], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &s.Position); err != nil {
		return err
	}
	var css string
	if err := json.Unmarshal(raw[1], &css); err != nil {
		return err
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(css, "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
		return fmt.Errorf("color stop: %q: %w", css, err)
	}
	s.Color = color.RGBA{R: r, G: g, B: b, A: 0xff}
	return nil
}

// ColorScale is an ordered list of stops with strictly increasing positions.
type ColorScale []ColorStop

// ColorAt interpolates the scale linearly at t, clamped to [0, 1].
func (cs ColorScale) ColorAt(t float64) color.RGBA {
	if len(cs) == 0 {
		return color.RGBA{A: 0xff}
	}
	t = math.Max(0, math.Min(1, t))
	if t <= cs[0].Position {
		return cs[0].Color
	}
	for i := 1; i < len(cs); i++ {
		lo, hi := cs[i-1], cs[i]
		if t <= hi.Position {
			f := (t - lo.Position) / (hi.Position - lo.Position)
			return color.RGBA{
				R: lerp(lo.Color.R, hi.Color.R, f),
				G: lerp(lo.Color.G, hi.Color.G, f),
				B: lerp(lo.Color.B, hi.Color.B, f),
				A: 0xff,
			}
		}
	}
	return cs[len(cs)-1].Color
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

// MatrixStats summarises the value distribution of a matrix.
type MatrixStats struct {
	Rows        int     `json:"rows"`
	Columns     int     `json:"columns"`
	NonZero     int     `json:"non_zero"`
	Max         float64 `json:"max"`
	MinPositive float64 `json:"min_positive"`
	Median      float64 `json:"median"`
	P95         float64 `json:"p95"`
}

// HeatmapView is everything a client needs to draw the ligand-receptor heatmap.
type HeatmapView struct {
	Matrix        *InteractionMatrix `json:"matrix"`
	ColorScale    ColorScale         `json:"colorscale"`
	HoverText     [][]string         `json:"hover_text"`
	XAxisTitle    string             `json:"x_axis_title"`
	YAxisTitle    string             `json:"y_axis_title"`
	ColorbarTitle string             `json:"colorbar_title"`
	Stats         *MatrixStats       `json:"stats,omitempty"`
}

// PairView is the result of one pass of the pipeline for a selected pair.
type PairView struct {
	Source   CellType           `json:"source"`
	Target   CellType           `json:"target"`
	Key      PairKey            `json:"key"`
	Heatmap  *HeatmapView       `json:"heatmap"`
	Filtered *InteractionMatrix `json:"filtered"`
	Chord    *Graph             `json:"chord"`
}
