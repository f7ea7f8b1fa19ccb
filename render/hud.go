package render

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/regionview/parameter"
	"github.com/lixenwraith/regionview/status"
)

// StatusLineRenderer draws the bottom status line from registry metrics
type StatusLineRenderer struct {
	camera *Camera

	// Cached metric pointers (zero-lock reads)
	statTick         *atomic.Int64
	statRegions      *atomic.Int64
	statEntries      *atomic.Int64
	statBuilds       *atomic.Int64
	statReuses       *atomic.Int64
	statPlaceholders *atomic.Int64
	statSkipped      *atomic.Int64
	statFPS          *atomic.Int64
	statModifiers    *status.AtomicString
	statMessage      *status.AtomicString
}

// NewStatusLineRenderer creates a status line for the given camera
func NewStatusLineRenderer(camera *Camera, reg *status.Registry) *StatusLineRenderer {
	return &StatusLineRenderer{
		camera: camera,

		statTick:         reg.Ints.Get("world.tick"),
		statRegions:      reg.Ints.Get("world.regions"),
		statEntries:      reg.Ints.Get("cache.entries"),
		statBuilds:       reg.Ints.Get("cache.builds"),
		statReuses:       reg.Ints.Get("cache.reuses"),
		statPlaceholders: reg.Ints.Get("cache.placeholders"),
		statSkipped:      reg.Ints.Get("render.skipped"),
		statFPS:          reg.Ints.Get("engine.fps"),
		statModifiers:    reg.Strings.Get("render.modifiers"),
		statMessage:      reg.Strings.Get("engine.message"),
	}
}

// Render implements SystemRenderer
func (r *StatusLineRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	y := ctx.StatusRow()
	if y < 0 {
		return
	}
	buf.FillRow(y, RgbBackground)

	o := r.camera.WorldOffset
	x := buf.SetString(0, y, fmt.Sprintf(" t%d ", r.statTick.Load()), RgbStatusText, RgbStatusBg)
	x = buf.SetString(x+1, y, fmt.Sprintf("(%d,%d,%d)+(%d,%d)", o.X, o.Y, o.Z, r.camera.RegionOffsetX, r.camera.RegionOffsetY), RgbForeground, RgbBackground)

	mods := r.statModifiers.Load()
	if mods == "" {
		mods = parameter.HUDModifierNone
	}
	x = buf.SetString(x+1, y, "mods:"+mods, RgbStatusModifier, RgbBackground)

	x = buf.SetString(x+1, y, fmt.Sprintf("regions:%d cache:%d built:%d reused:%d empty:%d",
		r.statRegions.Load(), r.statEntries.Load(), r.statBuilds.Load(), r.statReuses.Load(), r.statPlaceholders.Load()),
		RgbStatusMetric, RgbBackground)

	if skipped := r.statSkipped.Load(); skipped > 0 {
		x = buf.SetString(x+1, y, fmt.Sprintf("malformed:%d", skipped), RgbStatusWarn, RgbBackground)
	}
	if fps := r.statFPS.Load(); fps > 0 {
		x = buf.SetString(x+1, y, fmt.Sprintf("%dfps", fps), RgbStatusMetric, RgbBackground)
	}
	if msg := r.statMessage.Load(); msg != "" {
		x = buf.SetString(x+1, y, msg, RgbForeground, RgbBackground)
	}
	if !ctx.Focused {
		buf.SetString(x, y, parameter.HUDUnfocused, RgbStatusWarn, RgbBackground)
	}
}
