package plot

import (
	"fmt"
	"image"
	"math"

	"bouldern/pkg/colors"
	"bouldern/pkg/gyms"
	"bouldern/pkg/routes"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	// applies to the square's fill and edge alike
	fillAlpha       = 0.7
	squareEdgeWidth = 0.8  // pt
	crossLineWidth  = 0.75 // pt
	sentScale       = 0.9
)

type Shape int

const (
	Square Shape = iota
	Cross
)

func (s Shape) String() string {
	switch s {
	case Square:
		return "square"
	case Cross:
		return "cross"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Marker is one drawn scatter point. Size is the marker area in pt².
type Marker struct {
	Shape Shape
	X, Y  float64
	PX    float64
	PY    float64
	Size  float64
	Fill  drawing.Color
	Edge  drawing.Color
}

// Layers holds the markers in draw order: every route, then the sent ones.
type Layers struct {
	All  []Marker
	Sent []Marker
}

// Plot is a finished gym diagram. Bounds is the axes box to crop to.
type Plot struct {
	Image  *image.RGBA
	Bounds image.Rectangle
	DPI    float64
	Layers Layers
}

// Cropped returns the part of the image inside Bounds.
func (p *Plot) Cropped() image.Image {
	return p.Image.SubImage(p.Bounds)
}

type Renderer struct {
	Diagrams Diagrams
	Gyms     gyms.Provider
	Colors   *colors.Table
}

func NewRenderer(diagrams Diagrams, provider gyms.Provider, table *colors.Table) *Renderer {
	return &Renderer{Diagrams: diagrams, Gyms: provider, Colors: table}
}

type styledRow struct {
	row      routes.Row
	fill     drawing.Color
	contrast drawing.Color
}

// Render draws the routes of a gym on its wall diagram. Colors are resolved
// for every row before anything is drawn.
func (r *Renderer) Render(gymName string, rows []routes.Row) (*Plot, error) {
	gym, err := r.Gyms.Gym(gymName)
	if err != nil {
		return nil, err
	}

	styled := make([]styledRow, 0, len(rows))
	for _, row := range rows {
		entry, err := r.Colors.Resolve(row.Color)
		if err != nil {
			return nil, err
		}
		fill := entry.Render()
		styled = append(styled, styledRow{
			row:      row,
			fill:     fill,
			contrast: colors.ContrastFor(fill).Color(),
		})
	}

	fig, err := r.Diagrams.Figure(gymName)
	if err != nil {
		return nil, err
	}
	gc, err := drawing.NewRasterGraphicContext(fig.Image)
	if err != nil {
		return nil, err
	}

	layers := Layers{
		All: lo.Map(styled, func(s styledRow, _ int) Marker {
			return newMarker(fig, Square, s.row, gym.FontSize*gym.FontSize, s.fill.WithAlpha(alpha(fillAlpha)), s.contrast.WithAlpha(alpha(fillAlpha)))
		}),
		Sent: lo.FilterMap(styled, func(s styledRow, _ int) (Marker, bool) {
			size := math.Pow(gym.FontSize*sentScale, 2)
			return newMarker(fig, Cross, s.row, size, drawing.ColorTransparent, s.contrast), s.row.Sent
		}),
	}
	for _, m := range layers.All {
		drawSquare(gc, fig, m)
	}
	for _, m := range layers.Sent {
		drawCross(gc, fig, m)
	}

	log.WithFields(log.Fields{
		"gym":    gymName,
		"routes": len(layers.All),
		"sent":   len(layers.Sent),
	}).Debug("rendered gym diagram")

	// Bounds are read only after both layers are drawn.
	return &Plot{
		Image:  fig.Image,
		Bounds: fig.Axes.Box.Intersect(fig.Image.Bounds()),
		DPI:    fig.DPI,
		Layers: layers,
	}, nil
}

func alpha(a float64) uint8 {
	return uint8(math.Round(a * 255))
}

func newMarker(fig *Figure, shape Shape, row routes.Row, size float64, fill, edge drawing.Color) Marker {
	px, py := fig.Axes.Transform(row.X, row.Y)
	return Marker{Shape: shape, X: row.X, Y: row.Y, PX: px, PY: py, Size: size, Fill: fill, Edge: edge}
}

// halfSide is half the marker edge length in pixels for an area in pt².
func halfSide(fig *Figure, size float64) float64 {
	return fig.Points(math.Sqrt(size)) / 2
}

func drawSquare(gc *drawing.RasterGraphicContext, fig *Figure, m Marker) {
	h := halfSide(fig, m.Size)
	gc.BeginPath()
	gc.MoveTo(m.PX-h, m.PY-h)
	gc.LineTo(m.PX+h, m.PY-h)
	gc.LineTo(m.PX+h, m.PY+h)
	gc.LineTo(m.PX-h, m.PY+h)
	gc.Close()
	gc.SetFillColor(m.Fill)
	gc.SetStrokeColor(m.Edge)
	gc.SetLineWidth(fig.Points(squareEdgeWidth))
	gc.FillStroke()
}

func drawCross(gc *drawing.RasterGraphicContext, fig *Figure, m Marker) {
	h := halfSide(fig, m.Size)
	gc.BeginPath()
	gc.MoveTo(m.PX-h, m.PY-h)
	gc.LineTo(m.PX+h, m.PY+h)
	gc.MoveTo(m.PX-h, m.PY+h)
	gc.LineTo(m.PX+h, m.PY-h)
	gc.SetStrokeColor(m.Edge)
	gc.SetLineWidth(fig.Points(crossLineWidth))
	gc.Stroke()
}
