package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/regionview/terminal"
)

// RGB is the terminal cell color
type RGB = terminal.RGB

// Color is a normalized RGBA color as produced by the region builder
type Color [4]float32

// Builder palette
var (
	ColorSolidFg = Color{1.0, 0.0, 0.0, 1.0}
	ColorSolidBg = Color{0.0, 1.0, 0.0, 1.0}
	ColorFloorFg = Color{0.0, 0.0, 1.0, 1.0}
	ColorFloorBg = Color{0.0, 0.0, 0.0, 1.0}

	// ColorTransparent leaves the destination cell untouched
	ColorTransparent = Color{}
)

// Default cell colors (Tokyo Night)
var (
	RgbBackground = RGB{R: 26, G: 27, B: 38}
	RgbForeground = RGB{R: 192, G: 202, B: 245}

	RgbStatusText     = RGB{R: 26, G: 27, B: 38}
	RgbStatusBg       = RGB{R: 122, G: 162, B: 247}
	RgbStatusMetric   = RGB{R: 169, G: 177, B: 214}
	RgbStatusModifier = RGB{R: 224, G: 175, B: 104}
	RgbStatusWarn     = RGB{R: 247, G: 118, B: 142}
)

// Alpha returns the alpha channel clamped to [0, 1]
func (c Color) Alpha() float32 {
	return min(max(c[3], 0), 1)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.Clamped()
}

// RGB converts the color channels to 8-bit, ignoring alpha
func (c Color) RGB() RGB {
	r, g, b := c.colorful().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Over composites c onto dst by its alpha
func (c Color) Over(dst RGB) RGB {
	a := c.Alpha()
	switch {
	case a <= 0:
		return dst
	case a >= 1:
		return c.RGB()
	}
	base := colorful.Color{R: float64(dst.R) / 255, G: float64(dst.G) / 255, B: float64(dst.B) / 255}
	r, g, b := base.BlendRgb(c.colorful(), float64(a)).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// ColorFromRGB lifts an 8-bit color into an opaque Color
func ColorFromRGB(c RGB) Color {
	return Color{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1}
}
