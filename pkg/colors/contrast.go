package colors

import "github.com/wcharczuk/go-chart/v2/drawing"

// Contrast is the foreground color drawn on top of a fill color.
type Contrast string

const (
	Black Contrast = "black"
	White Contrast = "white"
)

// contrastThreshold is compared against the plain channel sum, not a
// perceptual luminance. Existing diagrams were rendered with it.
const contrastThreshold = 1.0

// ContrastForRGB picks the contrast color for channels in [0, 1].
func ContrastForRGB(r, g, b float64) Contrast {
	if r+g+b < contrastThreshold {
		return White
	}
	return Black
}

func ContrastFor(c drawing.Color) Contrast {
	return ContrastForRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

func (c Contrast) Color() drawing.Color {
	if c == White {
		return drawing.ColorWhite
	}
	return drawing.ColorBlack
}
