// Package render draws the pair views as static images for the CLI and the
// image endpoints.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ligandscope/core/internal/models"
)

const (
	// paletteSize is the number of colors sampled from a color scale.
	paletteSize = 256
	// colorbarWidth is the strip on the right of the image that holds the
	// color bar, its ticks and its title.
	colorbarWidth = 90
)

// ErrNothingToDraw is returned for views without any cell to draw.
var ErrNothingToDraw = errors.New("render: nothing to draw")

// cellColor maps v onto the scale relative to max. Every cell goes through
// the scale itself so the weakest interactions keep their tint.
func cellColor(cs models.ColorScale, v, max float64) color.RGBA {
	if v <= 0 || max <= 0 {
		return cs.ColorAt(0)
	}
	return cs.ColorAt(v / max)
}

// cells draws one rectangle per matrix entry: column c centred at x=c, row r
// at y=r, matching the nominal axes.
type cells struct {
	m     *models.InteractionMatrix
	scale models.ColorScale
	max   float64
}

func (h cells) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	rows, cols := h.m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rect := vg.Rectangle{
				Min: vg.Point{X: trX(float64(j) - 0.5), Y: trY(float64(i) - 0.5)},
				Max: vg.Point{X: trX(float64(j) + 0.5), Y: trY(float64(i) + 0.5)},
			}
			c.SetColor(cellColor(h.scale, h.m.At(i, j), h.max))
			c.Fill(rect.Path())
		}
	}
}

func (h cells) DataRange() (xmin, xmax, ymin, ymax float64) {
	rows, cols := h.m.Dims()
	return -0.5, float64(cols) - 0.5, -0.5, float64(rows) - 0.5
}

// scalePalette samples a color scale evenly over [0, 1].
type scalePalette []color.Color

func newScalePalette(cs models.ColorScale, n int) scalePalette {
	p := make(scalePalette, n)
	for i := range p {
		p[i] = cs.ColorAt(float64(i) / float64(n-1))
	}
	return p
}

func (p scalePalette) Colors() []color.Color { return p }

// scaleColorMap exposes a color scale over [min, max] as a palette.ColorMap
// for the color bar.
type scaleColorMap struct {
	scale    models.ColorScale
	min, max float64
	alpha    float64
}

func newScaleColorMap(cs models.ColorScale, max float64) *scaleColorMap {
	return &scaleColorMap{scale: cs, max: max, alpha: 1}
}

func (m *scaleColorMap) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < m.min:
		return nil, palette.ErrUnderflow
	case v > m.max:
		return nil, palette.ErrOverflow
	}
	c := m.scale.ColorAt((v - m.min) / (m.max - m.min))
	c.A = uint8(math.Round(m.alpha * 0xff))
	return c, nil
}

func (m *scaleColorMap) Max() float64       { return m.max }
func (m *scaleColorMap) SetMax(v float64)   { m.max = v }
func (m *scaleColorMap) Min() float64       { return m.min }
func (m *scaleColorMap) SetMin(v float64)   { m.min = v }
func (m *scaleColorMap) Alpha() float64     { return m.alpha }
func (m *scaleColorMap) SetAlpha(a float64) { m.alpha = a }

func (m *scaleColorMap) Palette(n int) palette.Palette {
	return newScalePalette(m.scale, n)
}

// heatmapPlots builds the matrix plot and its color bar.
func heatmapPlots(view *models.HeatmapView) (heat, bar *plot.Plot, err error) {
	if view == nil || view.Matrix == nil || view.Matrix.IsEmpty() {
		return nil, nil, ErrNothingToDraw
	}
	if len(view.ColorScale) == 0 {
		return nil, nil, fmt.Errorf("render: heatmap has no color scale")
	}
	max := view.Matrix.Max()
	if max <= 0 {
		return nil, nil, ErrNothingToDraw
	}

	heat = plot.New()
	heat.X.Label.Text = view.XAxisTitle
	heat.Y.Label.Text = view.YAxisTitle
	heat.X.Tick.Label.Rotation = math.Pi / 2
	heat.X.Tick.Label.XAlign = draw.XRight
	heat.X.Tick.Label.YAlign = draw.YCenter
	heat.Add(cells{m: view.Matrix, scale: view.ColorScale, max: max})
	heat.NominalX(view.Matrix.Columns()...)
	heat.NominalY(view.Matrix.Rows()...)

	bar = plot.New()
	bar.HideX()
	bar.Y.Label.Text = view.ColorbarTitle
	bar.Add(&plotter.ColorBar{
		ColorMap: newScaleColorMap(view.ColorScale, max),
		Vertical: true,
		Colors:   paletteSize,
	})
	return heat, bar, nil
}

// HeatmapPNG writes the heatmap of view as a width×height PNG with the color
// bar on the right.
func HeatmapPNG(w io.Writer, view *models.HeatmapView, width, height int) error {
	heat, bar, err := heatmapPlots(view)
	if err != nil {
		return err
	}

	img := vgimg.New(vg.Points(float64(width)), vg.Points(float64(height)))
	dc := draw.New(img)
	barLeft := dc.Max.X - dc.Min.X - vg.Points(colorbarWidth)
	heat.Draw(draw.Crop(dc, 0, -vg.Points(colorbarWidth), 0, 0))
	bar.Draw(draw.Crop(dc, barLeft, 0, 0, 0))

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("render: write heatmap: %w", err)
	}
	return nil
}
