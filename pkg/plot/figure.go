package plot

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"bouldern/pkg/gyms"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultDPI matches the resolution the gym diagrams are published with.
const DefaultDPI = 400

var (
	frameColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	labelColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

// Axes maps data coordinates into the pixel box of a figure.
// Data y grows upward, pixel y grows downward.
type Axes struct {
	Box                    image.Rectangle
	XMin, XMax, YMin, YMax float64
}

func (a Axes) Transform(x, y float64) (float64, float64) {
	px := float64(a.Box.Min.X) + (x-a.XMin)/(a.XMax-a.XMin)*float64(a.Box.Dx())
	py := float64(a.Box.Max.Y) - (y-a.YMin)/(a.YMax-a.YMin)*float64(a.Box.Dy())
	return px, py
}

// Figure is a drawable surface with the gym wall already on it.
type Figure struct {
	Image *image.RGBA
	Axes  Axes
	DPI   float64
}

// Points converts a length in typographic points to pixels.
func (f *Figure) Points(pt float64) float64 {
	return pt * f.DPI / 72
}

// Diagrams provides the background figure of a gym.
type Diagrams interface {
	Figure(gymName string) (*Figure, error)
}

// Backgrounds draws gym figures from the gym registry. Relative background
// paths are resolved against Dir.
type Backgrounds struct {
	Gyms gyms.Provider
	Dir  string
	DPI  float64
}

func (b *Backgrounds) Figure(gymName string) (*Figure, error) {
	gym, err := b.Gyms.Gym(gymName)
	if err != nil {
		return nil, err
	}
	dpi := b.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	d := gym.Diagram
	w := int(math.Round(d.Width * dpi))
	h := int(math.Round(d.Height * dpi))
	margin := int(math.Round(d.Margin * dpi))
	if w <= 2*margin || h <= 2*margin {
		return nil, fmt.Errorf("diagram of %q is too small: %dx%d px with %d px margin", gymName, w, h, margin)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	fig := &Figure{
		Image: img,
		Axes: Axes{
			Box:  image.Rect(margin, margin, w-margin, h-margin),
			XMin: d.XLimits[0],
			XMax: d.XLimits[1],
			YMin: d.YLimits[0],
			YMax: d.YLimits[1],
		},
		DPI: dpi,
	}

	if d.Background != "" {
		if err := b.drawBackground(fig, d.Background); err != nil {
			return nil, err
		}
	}
	drawFrame(fig)
	if err := drawSectionLabels(fig, gym.Sections, gym.FontSize); err != nil {
		return nil, err
	}
	return fig, nil
}

func (b *Backgrounds) drawBackground(fig *Figure, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.Dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open wall diagram: %w", err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode wall diagram %s: %w", path, err)
	}
	draw.CatmullRom.Scale(fig.Image, fig.Axes.Box, src, src.Bounds(), draw.Over, nil)
	log.WithField("file", path).Debug("drew wall diagram")
	return nil
}

func drawFrame(fig *Figure) {
	box := fig.Axes.Box
	edge := image.NewUniform(frameColor)
	for _, r := range []image.Rectangle{
		image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+1),
		image.Rect(box.Min.X, box.Max.Y-1, box.Max.X, box.Max.Y),
		image.Rect(box.Min.X, box.Min.Y, box.Min.X+1, box.Max.Y),
		image.Rect(box.Max.X-1, box.Min.Y, box.Max.X, box.Max.Y),
	} {
		draw.Draw(fig.Image, r, edge, image.Point{}, draw.Src)
	}
}

var (
	regularOnce sync.Once
	regular     *opentype.Font
	regularErr  error
)

func regularFont() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// labelFace returns the section label face, sized in points at the figure's
// resolution.
func labelFace(fig *Figure, size float64) (font.Face, error) {
	f, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     fig.DPI,
		Hinting: font.HintingFull,
	})
}

// drawSectionLabels writes each section name above the middle of its walls.
func drawSectionLabels(fig *Figure, sections map[string]gyms.Section, size float64) error {
	names := lo.Keys(sections)
	sort.Strings(names)

	face, err := labelFace(fig, size)
	if err != nil {
		return err
	}
	defer face.Close()

	dr := &font.Drawer{Dst: fig.Image, Src: image.NewUniform(labelColor), Face: face}
	for _, name := range names {
		walls := sections[name].Walls
		if len(walls) == 0 {
			continue
		}
		cx := lo.SumBy(walls, func(p gyms.Point) float64 { return p.X() }) / float64(len(walls))
		top := lo.MaxBy(walls, func(a, b gyms.Point) bool { return a.Y() > b.Y() }).Y()
		px, py := fig.Axes.Transform(cx, top)
		// baseline one marker height above the topmost wall
		x := int(px) - dr.MeasureString(name).Ceil()/2
		y := int(py - fig.Points(size))
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(name)
	}
	return nil
}
