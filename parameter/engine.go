package parameter

import "time"

// Frame Loop & World Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// TickUpdateInterval is the default automatic world tick interval
	// Zero disables automatic ticks; the world only advances on input
	TickUpdateInterval = 0 * time.Millisecond

	// EventChannelSize is the buffer between the input poller and the frame loop
	EventChannelSize = 256
)

// World Defaults
const (
	// StartTick is the first tick of a freshly created world
	// Must be >= 1 so that a placeholder stamped one tick behind never underflows
	StartTick = 1

	// DefaultWorldID identifies the single world rendered by the client
	DefaultWorldID = 0
)
