package terminal

import "github.com/gdamore/tcell/v2"

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	KeyEscape
	KeyEnter
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown

	KeyCtrlC
)

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape: KeyEscape,
	tcell.KeyEnter:  KeyEnter,
	tcell.KeyUp:     KeyUp,
	tcell.KeyDown:   KeyDown,
	tcell.KeyLeft:   KeyLeft,
	tcell.KeyRight:  KeyRight,
	tcell.KeyPgUp:   KeyPageUp,
	tcell.KeyPgDn:   KeyPageDown,
	tcell.KeyCtrlC:  KeyCtrlC,
}

// translateKey converts a tcell key event; unknown keys map to KeyNone
func translateKey(ev *tcell.EventKey) Event {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return Event{Type: EventKey, Key: KeySpace, Rune: ' '}
		}
		return Event{Type: EventKey, Key: KeyRune, Rune: ev.Rune()}
	}
	if k, ok := tcellKeys[ev.Key()]; ok {
		return Event{Type: EventKey, Key: k}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
