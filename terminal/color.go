package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves a flag/config value; "auto" and unknown values detect from the environment
func ParseColorMode(s string) ColorMode {
	switch s {
	case "256":
		return ColorMode256
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	default:
		return DetectColorMode()
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	if termenv.EnvColorProfile() == termenv.TrueColor {
		return ColorModeTrueColor
	}
	return ColorMode256
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cubeLevel maps 0-255 to nearest cube index 0-5
func cubeLevel(v uint8) int {
	best := 0
	bestDist := abs(int(v) - int(cubeValues[0]))
	for j := 1; j < len(cubeValues); j++ {
		if d := abs(int(v) - int(cubeValues[j])); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// RGBTo256 converts RGB to nearest 256-color palette index
// Near-gray colors compare the grayscale ramp against the cube and take the closer match
func RGBTo256(c RGB) uint8 {
	cr, cg, cb := cubeLevel(c.R), cubeLevel(c.G), cubeLevel(c.B)
	cubeIdx := uint8(16 + 36*cr + 6*cg + cb)

	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	maxDiff := max(abs(int(c.R)-gray), abs(int(c.G)-gray), abs(int(c.B)-gray))
	if maxDiff >= 10 || gray < 4 || gray > 243 {
		return cubeIdx
	}

	grayIdx := grayscaleStart + (gray-8)/10
	if grayIdx > 255 {
		grayIdx = 255
	}
	if grayIdx < grayscaleStart {
		grayIdx = grayscaleStart
	}
	grayLevel := 8 + (grayIdx-grayscaleStart)*10
	grayDist := abs(int(c.R)-grayLevel) + abs(int(c.G)-grayLevel) + abs(int(c.B)-grayLevel)
	cubeDist := abs(int(c.R)-int(cubeValues[cr])) +
		abs(int(c.G)-int(cubeValues[cg])) +
		abs(int(c.B)-int(cubeValues[cb]))

	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cubeIdx
}

// tcellColor converts RGB for the given color mode
func tcellColor(c RGB, mode ColorMode) tcell.Color {
	if mode == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.PaletteColor(int(RGBTo256(c)))
}
