package engine

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/regionview/parameter"
	"github.com/lixenwraith/regionview/render"
	"github.com/lixenwraith/regionview/terminal"
	"github.com/lixenwraith/regionview/world"
)

// HandleEvent applies one terminal event, returning false when the session should stop
func (s *Session) HandleEvent(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventClosed:
		return false

	case terminal.EventError:
		s.log.WithError(ev.Err).Error("terminal event error")
		return false

	case terminal.EventResize:
		s.resize(ev.Width, ev.Height)
		return true

	case terminal.EventFocus:
		s.focused = ev.Focused
		s.statFocused.Store(ev.Focused)
		return true

	case terminal.EventKey:
		if ev.Key == terminal.KeyCtrlC {
			return false
		}
		if !s.focused {
			return true
		}
		return s.handleKey(ev)
	}
	return true
}

func (s *Session) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.orch.Resize(width, height)
	s.renderer.Camera().Resize(width, height-parameter.BottomMargin)
	s.log.WithFields(logrus.Fields{"width": width, "height": height}).Debug("terminal resized")
}

func (s *Session) handleKey(ev terminal.Event) bool {
	cam := s.renderer.Camera()

	switch ev.Key {
	case terminal.KeyEscape:
		return false
	case terminal.KeyUp:
		cam.Pan(0, -1)
	case terminal.KeyDown:
		cam.Pan(0, 1)
	case terminal.KeyLeft:
		cam.Pan(-1, 0)
	case terminal.KeyRight:
		cam.Pan(1, 0)
	case terminal.KeyPageUp:
		cam.Ascend()
	case terminal.KeyPageDown:
		cam.Descend()
	case terminal.KeySpace:
		s.Advance()
	case terminal.KeyRune:
		return s.handleRune(ev.Rune)
	}
	return true
}

func (s *Session) handleRune(r rune) bool {
	cam := s.renderer.Camera()

	switch r {
	case 'q':
		return false
	case 'h':
		cam.Pan(-1, 0)
	case 'l':
		cam.Pan(1, 0)
	case 'k':
		cam.Pan(0, -1)
	case 'j':
		cam.Pan(0, 1)
	case 'H':
		cam.Pan(-parameter.RegionDim, 0)
	case 'L':
		cam.Pan(parameter.RegionDim, 0)
	case 'K':
		cam.Pan(0, -parameter.RegionDim)
	case 'J':
		cam.Pan(0, parameter.RegionDim)
	case '<':
		cam.Ascend()
	case '>':
		cam.Descend()
	case 'g':
		on := s.renderer.ToggleModifier(render.ModifierGravityInverse)
		s.sound.PlayToggle(on)
	case 'x':
		s.toggleBlock()
	case 'e':
		coord, _, _ := cam.Origin()
		if s.world.Evict(coord) {
			s.statMessage.Store("evicted " + coord.String())
		}
	}
	return true
}

// toggleBlock flips the block under the top-left screen tile between solid and floor
func (s *Session) toggleBlock() {
	coord, x, y := s.renderer.Camera().Origin()

	cr, ok := s.world.Lookup(coord)
	if !ok {
		s.statMessage.Store("no region at " + coord.String())
		return
	}

	next := world.Solid(0)
	if idx, ok := world.Index(x, y); ok && cr.Region.Wellformed() && cr.Region.Blocks[idx].Fill.Kind == world.FillSolid {
		next = world.Floor(0)
	}

	// An edit opens a new tick; a rebuild earlier in the current tick would otherwise mask it
	s.world.Advance(1)
	if err := s.world.SetBlock(coord, x, y, next); err != nil {
		s.log.WithError(err).Warn("edit rejected")
		switch {
		case errors.Is(err, world.ErrMalformed):
			s.statMessage.Store("region malformed")
		default:
			s.statMessage.Store(err.Error())
		}
		return
	}
	s.statMessage.Store("")
}
