package status

import (
	"sync"

	"github.com/lixenwraith/pie-merge/core"
)

// Registry holds named metrics in registration order
// Lookups lock, so writers resolve their pointers once and update the atomics directly
type Registry struct {
	mu    sync.RWMutex
	order []string
	items map[string]Metric
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Metric)}
}

// resolve returns the metric under key, registering a new one if absent
// A key registered with another kind yields a detached metric
func resolve[T any, P interface {
	*T
	Metric
}](r *Registry, key string) P {
	r.mu.RLock()
	m, ok := r.items[key]
	r.mu.RUnlock()
	if !ok {
		r.mu.Lock()
		if m, ok = r.items[key]; !ok {
			m = P(new(T))
			r.items[key] = m
			r.order = append(r.order, key)
		}
		r.mu.Unlock()
	}
	p, same := m.(P)
	if !core.Assert(same, "metric %q registered as %T", key, m) {
		return P(new(T))
	}
	return p
}

func (r *Registry) Counter(key string) *Counter { return resolve[Counter](r, key) }
func (r *Registry) Flag(key string) *Flag       { return resolve[Flag](r, key) }
func (r *Registry) Gauge(key string) *Gauge     { return resolve[Gauge](r, key) }
func (r *Registry) Label(key string) *Label     { return resolve[Label](r, key) }

// Len returns the number of registered metrics
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Line is one formatted metric for the debug overlay
type Line struct {
	Key   string
	Value any
}

// Lines returns every metric in registration order
func (r *Registry) Lines() []Line {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Line, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, Line{Key: k, Value: r.items[k].Value()})
	}
	return out
}
