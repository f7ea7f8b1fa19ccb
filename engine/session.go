package engine

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/regionview/parameter"
	"github.com/lixenwraith/regionview/render"
	"github.com/lixenwraith/regionview/status"
	"github.com/lixenwraith/regionview/terminal"
	"github.com/lixenwraith/regionview/world"
)

// Sound plays UI cues; *audio.SoundManager satisfies it
type Sound interface {
	PlayToggle(on bool)
	PlayTick()
}

type silentSound struct{}

func (silentSound) PlayToggle(bool) {}
func (silentSound) PlayTick() {}

// Options wires a Session
type Options struct {
	World    *world.World
	Terminal terminal.Terminal
	Status   *status.Registry
	Sound    Sound
	Logger   logrus.FieldLogger

	Camera        render.Camera
	Modifiers     render.ModifierSet
	FrameInterval time.Duration
	TickInterval  time.Duration // 0 = ticks only on input
}

// Session serializes input, world ticks, modifier reloads and rendering on one goroutine
type Session struct {
	world    *world.World
	term     terminal.Terminal
	renderer *render.WorldRenderer
	orch     *render.RenderOrchestrator
	status   *status.Registry
	sound    Sound
	log      logrus.FieldLogger

	frameInterval time.Duration
	tickInterval  time.Duration

	width, height int
	focused       bool
	frameNumber   uint64
	framesInSec   int64

	// Cached metric pointers
	statTick    *atomic.Int64
	statRegions *atomic.Int64
	statFPS     *atomic.Int64
	statFrames  *atomic.Int64
	statFocused *atomic.Bool
	statFrameMs *status.AtomicFloat
	statMessage *status.AtomicString
}

// NewSession creates a session sized to the terminal
func NewSession(opts Options) *Session {
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.Sound == nil {
		opts.Sound = silentSound{}
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = parameter.FrameUpdateInterval
	}
	if opts.Camera.TilesWidth == 0 && opts.Camera.TilesHeight == 0 {
		opts.Camera = render.NewCamera()
	}

	reg := opts.Status
	s := &Session{
		world:         opts.World,
		term:          opts.Terminal,
		status:        reg,
		sound:         opts.Sound,
		log:           opts.Logger,
		frameInterval: opts.FrameInterval,
		tickInterval:  opts.TickInterval,
		focused:       true,

		statTick:    reg.Ints.Get("world.tick"),
		statRegions: reg.Ints.Get("world.regions"),
		statFPS:     reg.Ints.Get("engine.fps"),
		statFrames:  reg.Ints.Get("engine.frames"),
		statFocused: reg.Bools.Get("input.focused"),
		statFrameMs: reg.Floats.Get("render.frame_ms"),
		statMessage: reg.Strings.Get("engine.message"),
	}

	s.renderer = render.NewWorldRenderer(opts.World.ID(),
		render.WithCamera(opts.Camera),
		render.WithModifiers(opts.Modifiers),
		render.WithLogger(opts.Logger.WithField("component", "renderer")),
		render.WithStatus(reg),
	)

	s.width, s.height = opts.Terminal.Size()
	s.orch = render.NewRenderOrchestrator(opts.Terminal, s.width, s.height)
	s.orch.Register(s.renderer, render.PriorityWorld)
	s.orch.Register(render.NewStatusLineRenderer(s.renderer.Camera(), reg), render.PriorityUI)
	if s.width > 0 && s.height > 0 {
		s.renderer.Camera().Resize(s.width, s.height-parameter.BottomMargin)
	}
	s.statFocused.Store(true)
	return s
}

// World returns the world being viewed
func (s *Session) World() *world.World {
	return s.world
}

// Renderer returns the world renderer
func (s *Session) Renderer() *render.WorldRenderer {
	return s.renderer
}

// Focused reports whether the window has input focus
func (s *Session) Focused() bool {
	return s.focused
}

// ApplyModifiers replaces the active render modifiers by name
// The region cache is cleared only when the set actually changes
func (s *Session) ApplyModifiers(names []string) error {
	next, err := render.ParseModifierSet(names)
	if err != nil {
		return fmt.Errorf("apply modifiers: %w", err)
	}
	prev := s.renderer.Modifiers()
	if !s.renderer.SetModifiers(next) {
		return nil
	}
	s.log.WithFields(logrus.Fields{"from": prev.String(), "to": next.String()}).Info("render modifiers reloaded")
	s.sound.PlayToggle(next.Len() >= prev.Len())
	return nil
}

// Advance moves the world forward one tick
func (s *Session) Advance() {
	tick := s.world.Advance(1)
	s.sound.PlayTick()
	s.log.WithField("tick", tick.String()).Debug("world advanced")
}

// Frame renders the world and the status line and flushes to the terminal
func (s *Session) Frame() {
	start := time.Now()
	s.frameNumber++
	s.framesInSec++

	s.statTick.Store(int64(s.world.CurrentTick()))
	s.statRegions.Store(int64(s.world.Len()))
	s.statFrames.Store(int64(s.frameNumber))

	s.orch.RenderFrame(render.RenderContext{
		World:        s.world,
		FrameNumber:  s.frameNumber,
		Focused:      s.focused,
		ScreenWidth:  s.width,
		ScreenHeight: s.height,
	})
	s.statFrameMs.Store(float64(time.Since(start).Microseconds()) / 1000)
}

// Run drives the session until ctx is done, the event stream closes, or the user quits
// reloads carries modifier name lists from config hot reload; nil disables it
func (s *Session) Run(ctx context.Context, events <-chan terminal.Event, reloads <-chan []string) error {
	frameTicker := time.NewTicker(s.frameInterval)
	defer frameTicker.Stop()

	fpsTicker := time.NewTicker(time.Second)
	defer fpsTicker.Stop()

	var tickC <-chan time.Time
	if s.tickInterval > 0 {
		tickTicker := time.NewTicker(s.tickInterval)
		defer tickTicker.Stop()
		tickC = tickTicker.C
	}

	s.Frame()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !s.HandleEvent(ev) {
				return nil
			}

		case names, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			if err := s.ApplyModifiers(names); err != nil {
				s.log.WithError(err).Warn("config reload rejected")
				s.statMessage.Store("bad modifiers in config")
			}

		case <-tickC:
			s.Advance()

		case <-fpsTicker.C:
			s.statFPS.Store(s.framesInSec)
			s.framesInSec = 0

		case <-frameTicker.C:
			s.Frame()
		}
	}
}
