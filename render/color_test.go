package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor_RGB(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want RGB
	}{
		{"solid fg", ColorSolidFg, RGB{R: 255}},
		{"solid bg", ColorSolidBg, RGB{G: 255}},
		{"floor fg", ColorFloorFg, RGB{B: 255}},
		{"floor bg", ColorFloorBg, RGB{}},
		{"clamped", Color{2, -1, 0.5, 1}, RGB{R: 255, G: 0, B: 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.RGB())
		})
	}
}

func TestColor_Over(t *testing.T) {
	dst := RGB{R: 100, G: 100, B: 100}

	assert.Equal(t, dst, ColorTransparent.Over(dst))
	assert.Equal(t, RGB{R: 255}, ColorSolidFg.Over(dst))

	half := Color{1, 1, 1, 0.5}.Over(RGB{})
	assert.InDelta(t, 128, int(half.R), 1)
	assert.InDelta(t, 128, int(half.G), 1)
	assert.InDelta(t, 128, int(half.B), 1)
}

func TestColorFromRGB(t *testing.T) {
	c := ColorFromRGB(RgbBackground)
	assert.Equal(t, float32(1), c.Alpha())
	assert.Equal(t, RgbBackground, c.RGB())
}
