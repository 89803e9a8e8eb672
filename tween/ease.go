package tween

import "github.com/tanema/gween/ease"

// EaseFunc is a gween easing curve, called as f(t, begin, change, duration)
type EaseFunc = ease.TweenFunc

// Curves used by gameplay code
var (
	Linear    EaseFunc = ease.Linear
	SineInOut EaseFunc = ease.InOutSine
	QuadOut   EaseFunc = ease.OutQuad
	CubicOut  EaseFunc = ease.OutCubic
	BackOut   EaseFunc = ease.OutBack
)

// Lerp interpolates a scalar
func Lerp(from, to, f float64) float64 {
	return from + (to-from)*f
}
