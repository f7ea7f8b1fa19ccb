package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ErrNotInitialized is returned by operations that need an initialized screen
var ErrNotInitialized = errors.New("terminal not initialized")

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
)

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Terminal provides low-level terminal access
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ColorMode returns the color capability used for output
	ColorMode() ColorMode

	// Flush writes cell buffer to terminal
	// Cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int)

	// Sync forces full redraw
	Sync()

	// PollEvent blocks until next input event
	PollEvent() Event

	// PostEvent injects a synthetic event
	PostEvent(Event) error
}

// termImpl implements Terminal over a tcell screen
type termImpl struct {
	screen tcell.Screen
	mode   ColorMode

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// syntheticEvent carries a posted Event through tcell's event queue
type syntheticEvent struct {
	ev Event
}

// New creates a Terminal on the controlling tty
func New(mode ColorMode) (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewWithScreen(screen, mode), nil
}

// NewWithScreen wraps an existing tcell screen, e.g. a simulation screen in tests
func NewWithScreen(screen tcell.Screen, mode ColorMode) Terminal {
	return &termImpl{
		screen: screen,
		mode:   mode,
	}
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.EnableFocus()
	t.screen.HideCursor()
	t.screen.Clear()

	t.initialized = true
	return nil
}

// Fini restores terminal to original state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.finalized = true
	t.screen.DisableFocus()
	t.screen.Fini()
}

func (t *termImpl) Size() (int, int) {
	return t.screen.Size()
}

func (t *termImpl) ColorMode() ColorMode {
	return t.mode
}

// Flush writes the cells and shows the frame; cells beyond the screen are clipped
func (t *termImpl) Flush(cells []Cell, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			idx := row + x
			if idx >= len(cells) {
				break
			}
			c := cells[idx]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.
				Foreground(tcellColor(c.Fg, t.mode)).
				Background(tcellColor(c.Bg, t.mode)).
				Attributes(attrMask(c.Attrs))
			t.screen.SetContent(x, y, r, nil, style)
		}
	}
	t.screen.Show()
}

func (t *termImpl) Sync() {
	t.screen.Sync()
}

// PollEvent blocks until a translatable event arrives
// Returns EventClosed once the screen is finalized
func (t *termImpl) PollEvent() Event {
	for {
		raw := t.screen.PollEvent()
		if raw == nil {
			return Event{Type: EventClosed}
		}
		switch ev := raw.(type) {
		case *tcell.EventKey:
			return translateKey(ev)
		case *tcell.EventResize:
			w, h := ev.Size()
			return Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventFocus:
			return Event{Type: EventFocus, Focused: ev.Focused}
		case *tcell.EventError:
			return Event{Type: EventError, Err: ev}
		case *tcell.EventInterrupt:
			if se, ok := ev.Data().(syntheticEvent); ok {
				return se.ev
			}
		}
	}
}

// PostEvent injects ev into the event queue
func (t *termImpl) PostEvent(ev Event) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(syntheticEvent{ev: ev}))
}

// attrMask converts Attr to tcell.AttrMask
func attrMask(a Attr) tcell.AttrMask {
	mask := tcell.AttrNone
	if a&AttrBold != 0 {
		mask |= tcell.AttrBold
	}
	if a&AttrDim != 0 {
		mask |= tcell.AttrDim
	}
	if a&AttrItalic != 0 {
		mask |= tcell.AttrItalic
	}
	if a&AttrUnderline != 0 {
		mask |= tcell.AttrUnderline
	}
	if a&AttrBlink != 0 {
		mask |= tcell.AttrBlink
	}
	if a&AttrReverse != 0 {
		mask |= tcell.AttrReverse
	}
	return mask
}

// EmergencyReset restores the terminal without tcell; used from panic handlers
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)
	w.Write(csiFocusOff)

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort raw mode reset
	resetTerminalMode()
}
