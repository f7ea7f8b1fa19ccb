package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Toggle Sound (render modifier on/off)
const (
	ToggleSoundDuration = 90 * time.Millisecond
	ToggleSoundAttack   = 5 * time.Millisecond
	ToggleSoundRelease  = 40 * time.Millisecond
	ToggleOnFrequency   = 880.0
	ToggleOffFrequency  = 440.0
)

// Tick Sound (world advance)
const (
	TickSoundDuration  = 40 * time.Millisecond
	TickSoundAttack    = 2 * time.Millisecond
	TickSoundRelease   = 20 * time.Millisecond
	TickSoundFrequency = 1320.0
	TickSoundVolume    = 0.3
)
