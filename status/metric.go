// Package status publishes session metrics for the debug overlay and the headless summary
package status

import (
	"math"
	"sync/atomic"
)

// Metric is a value the overlay can print
type Metric interface {
	Value() any
}

// Counter is an integer metric, zero value ready
type Counter struct {
	atomic.Int64
}

func (c *Counter) Value() any { return c.Load() }

// Flag is a boolean metric
type Flag struct {
	atomic.Bool
}

func (f *Flag) Value() any { return f.Load() }

// Gauge is a float64 metric stored as raw bits
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(val float64) {
	g.bits.Store(math.Float64bits(val))
}

func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

func (g *Gauge) Value() any { return g.Get() }

// MaxLabelLen bounds label text so the overlay column stays aligned
const MaxLabelLen = 24

// Label is a short text metric
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the text, truncating to MaxLabelLen bytes
func (l *Label) Store(val string) {
	if len(val) > MaxLabelLen {
		val = val[:MaxLabelLen]
	}
	l.ptr.Store(&val)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

func (l *Label) Value() any { return l.Load() }
