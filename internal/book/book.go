// Package book drives the book loader: the cover and holder state machine,
// its timer cascade, and the page stack that shares its clock and gate.
package book

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/bookloader/internal/clock"
	"github.com/san-kum/bookloader/internal/loader"
	"github.com/san-kum/bookloader/internal/logging"
	"github.com/san-kum/bookloader/internal/pages"
	"github.com/san-kum/bookloader/internal/tween"
)

// Timing constants, in multiples of the animation scale.
const (
	BookEndDuration         = 0.9
	BookEndDelay            = 0.05
	InterStateDuration      = 1.6
	AnimateBookInitialDelay = 3.4
	RepeatDelay             = 5.0

	DefaultScale = 0.4
	// MinScale is the smallest scale a run accepts. Below it the repeating
	// timers fire so often that a single second of animation never ends.
	MinScale = 0.001
)

// Policy decides what a tap does while a cascade is already running.
type Policy string

const (
	// PolicyRestart cancels the running cascade. A tap that closes the gate
	// stops the loader; a tap that opens it starts a fresh cascade.
	PolicyRestart Policy = "restart"
	// PolicyOverlap leaves earlier cascades running and starts another one
	// on every tap.
	PolicyOverlap Policy = "overlap"
)

// ParsePolicy maps a config string to a Policy. Empty means restart.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyRestart:
		return PolicyRestart, nil
	case PolicyOverlap:
		return PolicyOverlap, nil
	}
	return "", fmt.Errorf("unknown retap policy: %s", s)
}

type Options struct {
	Scale  float64
	Policy Policy
	Logger *slog.Logger
}

type part struct {
	offset tween.Vec
	angle  tween.Scalar
}

type Loader struct {
	sched  *clock.Scheduler
	scale  float64
	policy Policy
	log    *slog.Logger

	index int
	parts [len(loader.Parts)]part

	gate     pages.Gate
	pages    *pages.Stack
	cascades []*clock.Group
	closed   bool

	observers []Observer
}

// New builds a loader resting in its initial pose. Call Mount before the
// first Tap so the page stack starts watching the gate.
func New(sched *clock.Scheduler, opts Options) *Loader {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Policy == "" {
		opts.Policy = PolicyRestart
	}
	if opts.Logger == nil {
		opts.Logger = logging.NullLogger()
	}

	l := &Loader{
		sched:  sched,
		scale:  opts.Scale,
		policy: opts.Policy,
		log:    opts.Logger,
	}
	for _, p := range loader.Parts {
		pose := loader.InitialPose(p)
		l.parts[p] = part{offset: tween.NewVec(pose.Offset), angle: tween.NewScalar(pose.Angle)}
	}
	l.pages = pages.New(sched, &l.gate, opts.Scale)
	l.pages.AddObserver(func(at time.Duration, step string) {
		l.emit(step)
	})
	return l
}

func (l *Loader) Scale() float64      { return l.scale }
func (l *Loader) Policy() Policy      { return l.policy }
func (l *Loader) Pages() *pages.Stack { return l.pages }
func (l *Loader) Gate() bool          { return l.gate.On() }
func (l *Loader) Now() time.Duration  { return l.sched.Now() }
func (l *Loader) State() loader.State { return loader.States[l.index] }
func (l *Loader) Index() int          { return l.index }

// Animating reports whether any cascade still has timers pending.
func (l *Loader) Animating() bool {
	for _, g := range l.cascades {
		if g.Active() > 0 {
			return true
		}
	}
	return false
}

func (l *Loader) scaled(k float64) time.Duration {
	return clock.Seconds(l.scale * k)
}

// Mount lets the page stack start polling its gate.
func (l *Loader) Mount() {
	if l.closed {
		return
	}
	l.pages.Mount()
}

// Tap flips the gate and starts, restarts or stops the cascade according to
// the loader's policy.
func (l *Loader) Tap() {
	if l.closed {
		return
	}
	on := l.gate.Toggle()
	l.emit(EventTap)

	if l.policy == PolicyOverlap {
		l.startCascade()
		return
	}

	l.cancelCascades()
	if !on {
		l.AnimateBookEnds()
		l.pages.Rearm()
		l.emit(EventStop)
		return
	}
	l.startCascade()
}

func (l *Loader) startCascade() {
	g := clock.NewGroup(l.sched)
	l.cascades = append(l.cascades, g)

	l.AnimateBookEnds()
	g.After(l.scaled(AnimateBookInitialDelay), func() {
		l.animateBook(g)
		g.Every(l.scaled(RepeatDelay), func() {
			l.animateBook(g)
		})
	})
}

func (l *Loader) cancelCascades() {
	for _, g := range l.cascades {
		g.Stop()
	}
	l.cascades = l.cascades[:0]
}

// AnimateBook opens the book toward the current state's end pose and, after
// the inter-state pause, advances the state and closes it again.
func (l *Loader) AnimateBook() {
	if len(l.cascades) == 0 {
		l.cascades = append(l.cascades, clock.NewGroup(l.sched))
	}
	l.animateBook(l.cascades[len(l.cascades)-1])
}

func (l *Loader) animateBook(g *clock.Group) {
	now := l.sched.Now()
	st := l.State()
	spec := tween.LinearFor(l.scaled(1))

	holder := &l.parts[loader.Holder]
	left := &l.parts[loader.LeftCover]
	right := &l.parts[loader.RightCover]

	holder.angle.Set(now, st.Angle(loader.End, loader.Holder), spec)
	left.offset.Set(now, st.Offset(loader.End, loader.LeftCover), spec)
	right.offset.Set(now, st.Offset(loader.End, loader.RightCover), spec)

	left.angle.Set(now, st.Angle(loader.End, loader.LeftCover), spec)
	right.angle.Set(now, st.Angle(loader.End, loader.RightCover), spec)
	holder.offset.Set(now, st.Offset(loader.End, loader.Holder), spec)

	l.emit(EventBook)

	g.After(l.scaled(InterStateDuration), func() {
		l.advance()
		l.AnimateBookEnds()
	})
}

func (l *Loader) advance() {
	l.index = (l.index + 1) % len(loader.States)
	l.emit(EventAdvance)
}

// AnimateBookEnds eases the holder and covers back to the current state's
// begin pose. Cover rotation trails slightly behind.
func (l *Loader) AnimateBookEnds() {
	now := l.sched.Now()
	st := l.State()
	ease := tween.EaseOutFor(l.scaled(1))
	turn := tween.LinearFor(l.scaled(BookEndDuration)).WithDelay(l.scaled(BookEndDelay))

	holder := &l.parts[loader.Holder]
	left := &l.parts[loader.LeftCover]
	right := &l.parts[loader.RightCover]

	holder.angle.Set(now, st.Angle(loader.Begin, loader.Holder), ease)
	holder.offset.Set(now, st.Offset(loader.Begin, loader.Holder), ease)

	left.offset.Set(now, st.Offset(loader.Begin, loader.LeftCover), ease)
	right.offset.Set(now, st.Offset(loader.Begin, loader.RightCover), ease)

	left.angle.Set(now, st.Angle(loader.Begin, loader.LeftCover), turn)
	right.angle.Set(now, st.Angle(loader.Begin, loader.RightCover), turn)

	l.emit(EventBookEnds)
}

// Close cancels every timer the loader and its page stack own. A closed
// loader ignores taps.
func (l *Loader) Close() {
	if l.closed {
		return
	}
	l.cancelCascades()
	l.pages.Stop()
	l.closed = true
	l.emit(EventClose)
}
