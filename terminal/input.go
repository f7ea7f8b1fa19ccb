package terminal

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventFocus
	EventError  // Backend error
	EventClosed // Screen finalized
)

// Event represents a terminal input event
type Event struct {
	Type    EventType
	Key     Key
	Rune    rune
	Width   int   // For EventResize
	Height  int   // For EventResize
	Focused bool  // For EventFocus
	Err     error // For EventError
}
