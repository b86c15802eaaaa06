// Package tween interpolates animated values toward their targets over
// virtual time.
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/san-kum/bookloader/internal/geometry"
)

// Spec describes how a change is animated. Ease takes precedence over
// Curve; with neither set the change is linear.
type Spec struct {
	Duration time.Duration
	Delay    time.Duration
	Curve    Curve
	Ease     ease.TweenFunc
}

// Instant applies a change with no animation.
var Instant = Spec{}

func LinearFor(d time.Duration) Spec  { return Spec{Duration: d, Ease: ease.Linear} }
func EaseOutFor(d time.Duration) Spec { return Spec{Duration: d, Curve: EaseOut} }

func (s Spec) easing() ease.TweenFunc {
	switch {
	case s.Ease != nil:
		return s.Ease
	case s.Curve != nil:
		return s.Curve.Ease()
	}
	return ease.Linear
}

// WithDelay returns a copy of s that waits d before moving.
func (s Spec) WithDelay(d time.Duration) Spec {
	s.Delay = d
	return s
}

// Scalar is an animated float64. The zero value rests at 0.
type Scalar struct {
	from, to float64
	start    time.Duration
	spec     Spec
	// progress from 0 to 1 over spec.Duration seconds
	tw gween.Tween
}

func NewScalar(v float64) Scalar {
	return Scalar{from: v, to: v}
}

// Set retargets the value at now. The animation starts from whatever the
// value presents at now, so an interrupted animation continues smoothly.
func (s *Scalar) Set(now time.Duration, to float64, spec Spec) {
	s.from = s.Value(now)
	s.to = to
	s.start = now
	s.spec = spec
	if spec.Duration > 0 {
		s.tw = *gween.New(0, 1, float32(spec.Duration.Seconds()), spec.easing())
	}
}

// Snap jumps to v with no animation.
func (s *Scalar) Snap(v float64) {
	*s = NewScalar(v)
}

// Target is the value the animation is heading to.
func (s Scalar) Target() float64 { return s.to }

// Value is the presented value at now.
func (s Scalar) Value(now time.Duration) float64 {
	p := s.progress(now)
	if p >= 1 {
		return s.to
	}
	if p <= 0 {
		return s.from
	}
	eased, _ := s.tw.Set(float32((now - s.start - s.spec.Delay).Seconds()))
	return s.from + (s.to-s.from)*float64(eased)
}

// Settled reports whether the animation has reached its target by now.
func (s Scalar) Settled(now time.Duration) bool {
	return s.progress(now) >= 1
}

func (s Scalar) progress(now time.Duration) float64 {
	begin := s.start + s.spec.Delay
	if now < begin {
		return 0
	}
	if s.spec.Duration <= 0 {
		return 1
	}
	return float64(now-begin) / float64(s.spec.Duration)
}

// Vec animates both components of a vector with the same spec.
type Vec struct {
	X, Y Scalar
}

func NewVec(v geometry.Vec) Vec {
	return Vec{X: NewScalar(v.X), Y: NewScalar(v.Y)}
}

func (v *Vec) Set(now time.Duration, to geometry.Vec, spec Spec) {
	v.X.Set(now, to.X, spec)
	v.Y.Set(now, to.Y, spec)
}

func (v *Vec) Snap(to geometry.Vec) {
	*v = NewVec(to)
}

func (v Vec) Target() geometry.Vec {
	return geometry.Vec{X: v.X.Target(), Y: v.Y.Target()}
}

func (v Vec) Value(now time.Duration) geometry.Vec {
	return geometry.Vec{X: v.X.Value(now), Y: v.Y.Value(now)}
}

func (v Vec) Settled(now time.Duration) bool {
	return v.X.Settled(now) && v.Y.Settled(now)
}
