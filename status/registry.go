package status

import (
	"strconv"
	"sync/atomic"
)

// Registry groups runtime metrics by value type
// Producers resolve pointers once and write atomics on the hot path
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of registered metrics of all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot renders every metric as text, keyed by name
// Keys shared between maps resolve in bool, int, float, string order
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Strings.Range(func(key string, ptr *AtomicString) {
		out[key] = ptr.Load()
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out[key] = strconv.FormatFloat(ptr.Load(), 'f', 2, 64)
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = strconv.FormatInt(ptr.Load(), 10)
	})
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		out[key] = strconv.FormatBool(ptr.Load())
	})
	return out
}
