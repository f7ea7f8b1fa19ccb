package world

import "strconv"

// Tick identifies a simulation step. Ticks are totally ordered and never decrease
type Tick uint64

// Add returns the tick offset forward by n
func (t Tick) Add(n uint64) Tick {
	return t + Tick(n)
}

// Sub returns the tick offset backward by n, saturating at zero
func (t Tick) Sub(n uint64) Tick {
	if uint64(t) < n {
		return 0
	}
	return t - Tick(n)
}

// Before reports whether t is strictly earlier than other
func (t Tick) Before(other Tick) bool {
	return t < other
}

func (t Tick) String() string {
	return strconv.FormatUint(uint64(t), 10)
}
