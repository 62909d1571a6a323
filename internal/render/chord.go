package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/ligandscope/core/internal/models"
)

// tab10 is the categorical palette node arcs cycle through.
var tab10 = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff}, {0xff, 0x7f, 0x0e, 0xff}, {0x2c, 0xa0, 0x2c, 0xff},
	{0xd6, 0x27, 0x28, 0xff}, {0x94, 0x67, 0xbd, 0xff}, {0x8c, 0x56, 0x4b, 0xff},
	{0xe3, 0x77, 0xc2, 0xff}, {0x7f, 0x7f, 0x7f, 0xff}, {0xbc, 0xbd, 0x22, 0xff},
	{0x17, 0xbe, 0xcf, 0xff},
}

const (
	arcGap       = 0.02 // radians between neighbouring arcs
	arcThickness = 14
	maxLinkWidth = 10.0
	labelFont    = "font-size:11px;font-family:sans-serif"
)

func cssRGB(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

type arc struct {
	start, end float64
	color      color.RGBA
}

func (a arc) mid() float64 { return (a.start + a.end) / 2 }

// polar returns the canvas point at angle theta (clockwise from 12 o'clock).
func polar(cx, cy, r, theta float64) (float64, float64) {
	return cx + r*math.Sin(theta), cy - r*math.Cos(theta)
}

// layoutArcs gives every node an arc proportional to its total weight.
func layoutArcs(nodes []models.Node) []arc {
	var total float64
	for _, n := range nodes {
		total += n.Total
	}
	arcs := make([]arc, len(nodes))
	if total == 0 {
		return arcs
	}
	// Gaps never take more than half of the circle.
	gap := math.Min(arcGap, math.Pi/float64(len(nodes)))
	span := 2*math.Pi - gap*float64(len(nodes))
	theta := 0.0
	for i, n := range nodes {
		width := span * n.Total / total
		arcs[i] = arc{start: theta, end: theta + width, color: tab10[i%len(tab10)]}
		theta += width + gap
	}
	return arcs
}

// ChordSVG writes the circular diagram of graph as a size×size SVG document.
// Ligand and receptor arcs sit on one ring and every link is a curve through
// the centre whose width follows its interaction value.
func ChordSVG(w io.Writer, graph *models.Graph, size int) error {
	if size <= 0 {
		return fmt.Errorf("render: chord size must be positive, got %d", size)
	}

	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Title("Ligand-receptor interactions")
	canvas.Rect(0, 0, size, size, "fill:white")

	if graph == nil || len(graph.Links) == 0 {
		canvas.Circle(size/2, size/2, size/3, "fill:none;stroke:#d0d0d0;stroke-width:2")
		canvas.Text(size/2, size/2, "No collagen-integrin interactions", "text-anchor:middle;fill:#7f7f7f;"+labelFont)
		canvas.End()
		return nil
	}

	cx, cy := float64(size)/2, float64(size)/2
	radius := math.Max(float64(size)/2-110, float64(size)/4)
	inner := radius - arcThickness

	arcs := layoutArcs(graph.Nodes)
	index := make(map[string]int, len(graph.Nodes))
	for i, n := range graph.Nodes {
		index[n.Key()] = i
	}

	var maxLink float64
	for _, l := range graph.Links {
		maxLink = math.Max(maxLink, l.Value)
	}

	canvas.Gid("links")
	for _, l := range graph.Links {
		src := arcs[index[models.NodeKey(models.KindLigand, l.Source)]]
		dst := arcs[index[models.NodeKey(models.KindReceptor, l.Target)]]
		x1, y1 := polar(cx, cy, inner, src.mid())
		x2, y2 := polar(cx, cy, inner, dst.mid())
		width := 1 + (maxLinkWidth-1)*l.Value/maxLink
		canvas.Path(
			fmt.Sprintf("M%.2f,%.2f Q%.2f,%.2f %.2f,%.2f", x1, y1, cx, cy, x2, y2),
			fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:0.55;stroke-width:%.2f", cssRGB(src.color), width),
		)
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for i, n := range graph.Nodes {
		a := arcs[i]
		canvas.Path(arcPath(cx, cy, inner, radius, a.start, a.end), "fill:"+cssRGB(a.color))

		lx, ly := polar(cx, cy, radius+8, a.mid())
		anchor := "start"
		if a.mid() > math.Pi {
			anchor = "end"
		}
		canvas.Text(int(math.Round(lx)), int(math.Round(ly)), n.ID,
			fmt.Sprintf("text-anchor:%s;dominant-baseline:middle;%s", anchor, labelFont))
	}
	canvas.Gend()

	canvas.End()
	return nil
}

// arcPath outlines the ring segment between r0 and r1 from angle a0 to a1.
func arcPath(cx, cy, r0, r1, a0, a1 float64) string {
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	ox0, oy0 := polar(cx, cy, r1, a0)
	ox1, oy1 := polar(cx, cy, r1, a1)
	ix1, iy1 := polar(cx, cy, r0, a1)
	ix0, iy0 := polar(cx, cy, r0, a0)
	return fmt.Sprintf("M%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 0 %.2f,%.2f Z",
		ox0, oy0, r1, r1, large, ox1, oy1,
		ix1, iy1, r0, r0, large, ix0, iy0)
}
