// Package pages animates the page stack inside the book: a left bar, a right
// bar and a fan of page bars that turn together with a staggered delay.
package pages

import (
	"time"

	"github.com/san-kum/bookloader/internal/clock"
	"github.com/san-kum/bookloader/internal/tween"
)

const (
	NumPages     = 13
	BarWidth     = 100.0
	BarThickness = 8.0
	BarOffsetX   = -78.0
	GroupOffsetY = -20.0

	// PollInterval is how often a mounted stack checks its gate. It is not
	// affected by the animation scale.
	PollInterval = 300 * time.Millisecond

	pageStagger  = 0.21
	repeatFactor = 10.0

	rightBarRestY = -20.0
	leftBarOpenY  = 20.0
	turnedDegrees = 180.0
)

// Cascade step offsets, in multiples of the animation scale.
const (
	RightCloseAt = 0.0
	LeftOpenAt   = 2.7
	LeftCloseAt  = 5.0
	PagesResetAt = 5.25
	RightResetAt = 7.0
)

// Step names reported to observers.
const (
	StepRightClose = "pages.right_close"
	StepLeftOpen   = "pages.left_open"
	StepLeftClose  = "pages.left_close"
	StepPagesReset = "pages.pages_reset"
	StepRightReset = "pages.right_reset"
	StepStart      = "pages.start"
	StepStop       = "pages.stop"
)

// Observer is told about every step the stack takes.
type Observer func(at time.Duration, step string)

// Bar is one of the two end bars.
type Bar struct {
	Y     tween.Scalar
	Angle tween.Scalar
}

type BarPose struct {
	Y     float64
	Angle float64
}

// Snapshot is the presented state of the stack at one instant.
type Snapshot struct {
	Left  BarPose
	Right BarPose
	Pages [NumPages]float64
}

type Stack struct {
	sched *clock.Scheduler
	gate  *Gate
	scale float64

	left  Bar
	right Bar
	pages [NumPages]tween.Scalar

	poll      *clock.Timer
	loop      *clock.Group
	observers []Observer
}

// New creates a stack that reads gate and times everything on sched. scale
// multiplies every duration except the poll interval.
func New(sched *clock.Scheduler, gate *Gate, scale float64) *Stack {
	return &Stack{
		sched: sched,
		gate:  gate,
		scale: scale,
		right: Bar{Y: tween.NewScalar(rightBarRestY)},
		loop:  clock.NewGroup(sched),
	}
}

func (s *Stack) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Stack) emit(step string) {
	for _, o := range s.observers {
		o(s.sched.Now(), step)
	}
}

func (s *Stack) scaled(k float64) time.Duration {
	return clock.Seconds(s.scale * k)
}

// Mount starts polling the gate. Once it is on the poll stops, the turn
// sequence runs and then repeats every 10 × scale. Mounting a stack that
// is already polling or running does nothing.
func (s *Stack) Mount() {
	if s.poll.Active() || s.Running() {
		return
	}
	s.poll = s.sched.Every(PollInterval, func() {
		if !s.gate.On() {
			return
		}
		s.poll.Stop()
		s.start()
	})
}

func (s *Stack) start() {
	s.emit(StepStart)
	s.AnimatePages()
	s.loop.Every(s.scaled(repeatFactor), s.AnimatePages)
}

// Running reports whether the turn sequence is looping.
func (s *Stack) Running() bool { return s.loop.Active() > 0 }

// Polling reports whether the stack is waiting on its gate.
func (s *Stack) Polling() bool { return s.poll.Active() }

// AnimatePages runs one turn sequence: the right bar closes over the pages,
// the left bar opens and closes, the pages fall back and the right bar
// returns.
func (s *Stack) AnimatePages() {
	s.closeRight()
	s.loop.After(s.scaled(LeftOpenAt), s.openLeft)
	s.loop.After(s.scaled(LeftCloseAt), s.closeLeft)
	s.loop.After(s.scaled(PagesResetAt), s.resetPages)
	s.loop.After(s.scaled(RightResetAt), s.resetRight)
}

func (s *Stack) closeRight() {
	now := s.sched.Now()
	s.right.Angle.Set(now, turnedDegrees, s.barSpec())
	s.right.Y.Set(now, 0, s.barSpec())
	s.turnPages(turnedDegrees)
	s.emit(StepRightClose)
}

func (s *Stack) openLeft() {
	now := s.sched.Now()
	s.left.Y.Set(now, leftBarOpenY, s.barSpec())
	s.left.Angle.Set(now, turnedDegrees, s.barSpec())
	s.emit(StepLeftOpen)
}

func (s *Stack) closeLeft() {
	now := s.sched.Now()
	s.left.Y.Set(now, 0, s.barSpec())
	s.left.Angle.Set(now, 0, s.barSpec())
	s.emit(StepLeftClose)
}

func (s *Stack) resetPages() {
	s.turnPages(0)
	s.emit(StepPagesReset)
}

func (s *Stack) resetRight() {
	now := s.sched.Now()
	s.right.Angle.Set(now, 0, s.barSpec())
	s.right.Y.Set(now, rightBarRestY, s.barSpec())
	s.emit(StepRightReset)
}

func (s *Stack) turnPages(degrees float64) {
	now := s.sched.Now()
	for i := range s.pages {
		s.pages[i].Set(now, degrees, s.pageSpec(i))
	}
}

func (s *Stack) barSpec() tween.Spec {
	return tween.EaseOutFor(s.scaled(1))
}

func (s *Stack) pageSpec(i int) tween.Spec {
	return s.barSpec().WithDelay(s.scaled(pageStagger * float64(i)))
}

// PageDelay is how long page i waits before it follows a turn.
func (s *Stack) PageDelay(i int) time.Duration {
	return s.pageSpec(i).Delay
}

// Stop cancels polling, the repeat loop and any pending cascade steps.
// Bars keep whatever targets they already have.
func (s *Stack) Stop() {
	wasActive := s.poll.Stop()
	if s.loop.Stop() > 0 || wasActive {
		s.emit(StepStop)
	}
}

// Rearm stops the stack, eases every bar back to rest and polls the gate
// again.
func (s *Stack) Rearm() {
	s.Stop()
	now := s.sched.Now()
	s.left.Y.Set(now, 0, s.barSpec())
	s.left.Angle.Set(now, 0, s.barSpec())
	s.right.Y.Set(now, rightBarRestY, s.barSpec())
	s.right.Angle.Set(now, 0, s.barSpec())
	s.turnPages(0)
	s.Mount()
}

func (s *Stack) Snapshot(now time.Duration) Snapshot {
	snap := Snapshot{
		Left:  BarPose{Y: s.left.Y.Value(now), Angle: s.left.Angle.Value(now)},
		Right: BarPose{Y: s.right.Y.Value(now), Angle: s.right.Angle.Value(now)},
	}
	for i := range s.pages {
		snap.Pages[i] = s.pages[i].Value(now)
	}
	return snap
}

// Targets is the snapshot the stack is heading to.
func (s *Stack) Targets() Snapshot {
	snap := Snapshot{
		Left:  BarPose{Y: s.left.Y.Target(), Angle: s.left.Angle.Target()},
		Right: BarPose{Y: s.right.Y.Target(), Angle: s.right.Angle.Target()},
	}
	for i := range s.pages {
		snap.Pages[i] = s.pages[i].Target()
	}
	return snap
}
