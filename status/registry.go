package status

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Registry is the central metrics facade
// Producers cache pointers once; hot paths write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Lines renders every metric as "key: value", grouped by type, keys sorted
// Keys with prefix filter only; empty prefix keeps all
// Int keys ending in ".ns" print as durations
func (r *Registry) Lines(prefix string) []string {
	var out []string
	keep := func(key string) bool { return strings.HasPrefix(key, prefix) }

	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		if keep(key) {
			out = append(out, fmt.Sprintf("%s: %v", key, ptr.Load()))
		}
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		if !keep(key) {
			return
		}
		val := ptr.Load()
		if strings.HasSuffix(key, ".ns") {
			out = append(out, fmt.Sprintf("%s: %s", key, time.Duration(val)))
		} else {
			out = append(out, fmt.Sprintf("%s: %d", key, val))
		}
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		if keep(key) {
			out = append(out, fmt.Sprintf("%s: %.3f", key, ptr.Get()))
		}
	})
	r.Strings.Range(func(key string, ptr *AtomicString) {
		if keep(key) {
			out = append(out, fmt.Sprintf("%s: %s", key, ptr.Load()))
		}
	})
	return out
}
