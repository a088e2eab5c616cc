package gyms

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

var ErrUnknownGym = errors.New("unknown gym")

// Point is an (x, y) wall position in diagram data coordinates.
type Point [2]float64

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }

type Section struct {
	Walls []Point `toml:"walls"`
}

// Diagram describes the figure a gym is drawn on.
// Width, Height and Margin are in inches, limits in data coordinates.
type Diagram struct {
	Width      float64    `toml:"width"`
	Height     float64    `toml:"height"`
	Margin     float64    `toml:"margin"`
	XLimits    [2]float64 `toml:"x_limits"`
	YLimits    [2]float64 `toml:"y_limits"`
	Background string     `toml:"background,omitempty"`
}

type Gym struct {
	Name         string             `toml:"-"`
	SheetID      string             `toml:"sheet_id"`
	SheetTabID   int64              `toml:"sheet_tab_id"`
	SheetTabName string             `toml:"sheet_tab_name,omitempty"`
	FontSize     float64            `toml:"font_size"`
	FormID       string             `toml:"form_id"`
	Sections     map[string]Section `toml:"sections"`
	Diagram      Diagram            `toml:"diagram"`
}

// Provider looks up the static configuration of a gym by name.
type Provider interface {
	Gym(name string) (Gym, error)
}

type registryStore struct {
	Gyms map[string]Gym `toml:"gyms"`
}

// Registry is a read-only set of gyms loaded from a toml file.
type Registry struct {
	Filename string
	gyms     map[string]Gym
}

// Load the gyms from a toml file.
func Load(filename string) (*Registry, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	r, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	r.Filename = filename
	return r, nil
}

// Parse reads gyms from toml and fills in defaults.
func Parse(b []byte) (*Registry, error) {
	var store registryStore
	if err := toml.Unmarshal(b, &store); err != nil {
		return nil, err
	}
	return NewRegistry(store.Gyms), nil
}

func NewRegistry(gyms map[string]Gym) *Registry {
	r := &Registry{gyms: make(map[string]Gym, len(gyms))}
	for name, g := range gyms {
		g.Name = name
		applyDefaults(&g)
		r.gyms[name] = g
	}
	return r
}

func applyDefaults(g *Gym) {
	if g.FontSize <= 0 {
		g.FontSize = 10
	}
	d := &g.Diagram
	if d.Width <= 0 {
		d.Width = 8
	}
	if d.Height <= 0 {
		d.Height = 6
	}
	if d.Margin < 0 {
		d.Margin = 0
	}
	if d.XLimits[0] == d.XLimits[1] || d.YLimits[0] == d.YLimits[1] {
		xMin, xMax, yMin, yMax := wallExtent(g.Sections)
		if d.XLimits[0] == d.XLimits[1] {
			d.XLimits = [2]float64{xMin - 1, xMax + 1}
		}
		if d.YLimits[0] == d.YLimits[1] {
			d.YLimits = [2]float64{yMin - 1, yMax + 1}
		}
	}
}

func wallExtent(sections map[string]Section) (xMin, xMax, yMin, yMax float64) {
	first := true
	for _, s := range sections {
		for _, p := range s.Walls {
			if first {
				xMin, xMax, yMin, yMax = p.X(), p.X(), p.Y(), p.Y()
				first = false
				continue
			}
			xMin = min(xMin, p.X())
			xMax = max(xMax, p.X())
			yMin = min(yMin, p.Y())
			yMax = max(yMax, p.Y())
		}
	}
	return xMin, xMax, yMin, yMax
}

func (r *Registry) Gym(name string) (Gym, error) {
	g, ok := r.gyms[name]
	if !ok {
		return Gym{}, fmt.Errorf("%w: %q", ErrUnknownGym, name)
	}
	return g, nil
}

// Names returns the configured gym names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.gyms))
	for name := range r.gyms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
