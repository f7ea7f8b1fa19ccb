package render

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/regionview/parameter"
	"github.com/lixenwraith/regionview/status"
	"github.com/lixenwraith/regionview/world"
)

// GlyphMetrics is the size of one glyph cell on the draw surface
type GlyphMetrics struct {
	Width  float32
	Height float32
	Scale  float32
}

// TerminalMetrics places one glyph per terminal cell
var TerminalMetrics = GlyphMetrics{
	Width:  parameter.GlyphWidth,
	Height: parameter.GlyphHeight,
	Scale:  parameter.GlyphScale,
}

// FrameStats describes the last rendered frame
type FrameStats struct {
	Regions  int
	Sections int
	Empty    int
	Skipped  int
}

// WorldRenderer draws the regions of one world around its camera
// The region cache and modifier set are owned exclusively by the renderer
type WorldRenderer struct {
	worldID   world.ID
	camera    Camera
	modifiers ModifierSet
	cache     *RegionCache
	metrics   GlyphMetrics
	log       logrus.FieldLogger
	last      FrameStats

	statEntries      *atomic.Int64
	statBuilds       *atomic.Int64
	statReuses       *atomic.Int64
	statPlaceholders *atomic.Int64
	statClears       *atomic.Int64
	statSections     *atomic.Int64
	statSkipped      *atomic.Int64
	statModifiers    *status.AtomicString
}

// Option configures a WorldRenderer
type Option func(*WorldRenderer)

// WithBuilder replaces the region builder
func WithBuilder(b Builder) Option {
	return func(r *WorldRenderer) { r.cache = NewRegionCache(b) }
}

// WithLogger sets the logger used for skipped regions and modifier changes
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *WorldRenderer) { r.log = l }
}

// WithMetrics sets the glyph metrics used to place sections
func WithMetrics(m GlyphMetrics) Option {
	return func(r *WorldRenderer) { r.metrics = m }
}

// WithCamera sets the initial camera
func WithCamera(c Camera) Option {
	return func(r *WorldRenderer) { r.camera = c }
}

// WithModifiers sets the initial modifier set
func WithModifiers(s ModifierSet) Option {
	return func(r *WorldRenderer) { r.modifiers = s }
}

// WithStatus publishes cache and frame counters to reg
func WithStatus(reg *status.Registry) Option {
	return func(r *WorldRenderer) {
		r.statEntries = reg.Ints.Get("cache.entries")
		r.statBuilds = reg.Ints.Get("cache.builds")
		r.statReuses = reg.Ints.Get("cache.reuses")
		r.statPlaceholders = reg.Ints.Get("cache.placeholders")
		r.statClears = reg.Ints.Get("cache.clears")
		r.statSections = reg.Ints.Get("render.sections")
		r.statSkipped = reg.Ints.Get("render.skipped")
		r.statModifiers = reg.Strings.Get("render.modifiers")
	}
}

// NewWorldRenderer creates a renderer bound to the world with the given id
func NewWorldRenderer(id world.ID, opts ...Option) *WorldRenderer {
	r := &WorldRenderer{
		worldID: id,
		camera:  NewCamera(),
		metrics: TerminalMetrics,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewRegionCache(nil)
	}
	if r.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		r.log = l
	}
	r.publishModifiers()
	return r
}

// WorldID returns the id of the world this renderer draws
func (r *WorldRenderer) WorldID() world.ID {
	return r.worldID
}

// Camera returns the renderer's camera for panning and resizing
func (r *WorldRenderer) Camera() *Camera {
	return &r.camera
}

// Cache returns the region cache
func (r *WorldRenderer) Cache() *RegionCache {
	return r.cache
}

// LastFrame returns the stats of the most recent RenderWorld call
func (r *WorldRenderer) LastFrame() FrameStats {
	return r.last
}

// ===== MODIFIERS =====

// Modifiers returns the active modifier set
func (r *WorldRenderer) Modifiers() ModifierSet {
	return r.modifiers
}

// AddModifier clears the cache and adds m
func (r *WorldRenderer) AddModifier(m RenderModifier) {
	r.cache.Clear()
	r.modifiers = r.modifiers.With(m)
	r.modifiersChanged()
}

// RemoveModifier clears the cache and removes m
func (r *WorldRenderer) RemoveModifier(m RenderModifier) {
	r.cache.Clear()
	r.modifiers = r.modifiers.Without(m)
	r.modifiersChanged()
}

// ToggleModifier flips m and reports whether it is now active
func (r *WorldRenderer) ToggleModifier(m RenderModifier) bool {
	if r.modifiers.Has(m) {
		r.RemoveModifier(m)
		return false
	}
	r.AddModifier(m)
	return true
}

// SetModifiers replaces the whole set, clearing the cache only when membership changes
func (r *WorldRenderer) SetModifiers(s ModifierSet) bool {
	if s == r.modifiers {
		return false
	}
	r.cache.Clear()
	r.modifiers = s
	r.modifiersChanged()
	return true
}

func (r *WorldRenderer) modifiersChanged() {
	r.log.WithField("modifiers", r.modifiers.String()).Debug("render modifiers changed, cache cleared")
	r.publishModifiers()
	r.publishCache()
}

// ===== RENDER =====

// Render implements SystemRenderer, drawing the context's world above the status line
func (r *WorldRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	if ctx.World == nil {
		return
	}
	buf.SetClipHeight(ctx.ViewHeight())
	defer buf.SetClipHeight(ctx.ScreenHeight)
	r.RenderWorld(ctx.World, buf)
}

// RenderWorld queues one section per well-formed region in the camera window
// Panics if src belongs to a different world than the renderer
func (r *WorldRenderer) RenderWorld(src WorldView, surface DrawSurface) {
	if id := src.ID(); id != r.worldID {
		panic(fmt.Sprintf("render: renderer for world %d asked to draw world %d", r.worldID, id))
	}

	r.last = FrameStats{}
	minX, minY, maxX, maxY := r.camera.VisibleBounds()
	z := r.camera.WorldOffset.Z
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			r.renderRegion(src, surface, world.Coord{X: x, Y: y, Z: z})
		}
	}
	r.publishCache()
}

func (r *WorldRenderer) renderRegion(src RegionSource, surface DrawSurface, coord world.Coord) {
	r.last.Regions++
	sx, sy := r.camera.ScreenPosition(coord)
	entry := r.cache.Get(src, coord, r.modifiers)

	tiles := entry.Region.Tiles
	if len(tiles) != parameter.RegionLen {
		if entry.placeholder {
			r.last.Empty++
			return
		}
		r.last.Skipped++
		r.log.WithFields(logrus.Fields{
			"coord": coord.String(),
			"tiles": len(tiles),
		}).Debug("skipping malformed region")
		return
	}

	section := Section{
		X:     float32(sx) * r.metrics.Width,
		Y:     float32(sy) * r.metrics.Height,
		Texts: make([]Text, 0, parameter.RegionLen+parameter.RegionDim),
	}
	for ty := 0; ty < parameter.RegionDim; ty++ {
		row := tiles[ty*parameter.RegionDim : (ty+1)*parameter.RegionDim]
		for i := range row {
			section.Texts = append(section.Texts, Text{
				Glyph: row[i].Glyph.Text,
				Fg:    row[i].Fg,
				Bg:    row[i].Bg,
				Scale: r.metrics.Scale,
			})
		}
		section.Texts = append(section.Texts, Text{Glyph: LineBreak, Scale: r.metrics.Scale})
	}
	surface.Queue(section)
	r.last.Sections++
}

// ===== STATUS =====

func (r *WorldRenderer) publishCache() {
	if r.statEntries == nil {
		return
	}
	s := r.cache.Stats()
	r.statEntries.Store(int64(r.cache.Len()))
	r.statBuilds.Store(int64(s.Builds))
	r.statReuses.Store(int64(s.Reuses))
	r.statPlaceholders.Store(int64(s.Placeholders))
	r.statClears.Store(int64(s.Clears))
	r.statSections.Store(int64(r.last.Sections))
	r.statSkipped.Store(int64(r.last.Skipped))
}

func (r *WorldRenderer) publishModifiers() {
	if r.statModifiers == nil {
		return
	}
	r.statModifiers.Store(r.modifiers.String())
}
