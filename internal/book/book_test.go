package book

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/san-kum/bookloader/internal/clock"
	"github.com/san-kum/bookloader/internal/geometry"
	"github.com/san-kum/bookloader/internal/loader"
	"github.com/san-kum/bookloader/internal/pages"
)

const testScale = 0.4

func scaled(k float64) time.Duration { return clock.Seconds(testScale * k) }

func newTestLoader(policy Policy) (*Loader, *clock.Scheduler, *Recorder) {
	sched := clock.New()
	l := New(sched, Options{Scale: testScale, Policy: policy})
	rec := &Recorder{}
	l.AddObserver(rec)
	l.Mount()
	return l, sched, rec
}

func TestInitialPose(t *testing.T) {
	g := NewWithT(t)
	l, _, _ := newTestLoader(PolicyRestart)

	snap := l.Snapshot(0)
	g.Expect(snap.State).To(Equal(loader.ClosedRight))
	for _, p := range loader.Parts {
		g.Expect(snap.Pose(p)).To(Equal(loader.InitialPose(p)), p.String())
	}
	g.Expect(l.Gate()).To(BeFalse())
	g.Expect(l.Animating()).To(BeFalse())
}

func TestTapTimeline(t *testing.T) {
	g := NewWithT(t)
	l, sched, rec := newTestLoader(PolicyRestart)

	l.Tap()
	g.Expect(l.Gate()).To(BeTrue())
	g.Expect(rec.Named(EventTap)).To(Equal([]time.Duration{0}))
	g.Expect(rec.Named(EventBookEnds)).To(Equal([]time.Duration{0}))

	sched.AdvanceTo(scaled(14))

	g.Expect(rec.Named(EventBook)).To(Equal([]time.Duration{
		scaled(3.4),
		scaled(3.4) + scaled(5),
		scaled(3.4) + 2*scaled(5),
	}))
	g.Expect(rec.Named(EventAdvance)).To(Equal([]time.Duration{
		scaled(3.4) + scaled(1.6),
		scaled(3.4) + scaled(5) + scaled(1.6),
	}))
	g.Expect(rec.Named(EventBookEnds)).To(HaveLen(3))
	g.Expect(rec.Named(pages.StepStart)).To(Equal([]time.Duration{pages.PollInterval}))
}

func TestBookOpensToEndPose(t *testing.T) {
	g := NewWithT(t)
	l, sched, _ := newTestLoader(PolicyRestart)

	l.Tap()
	sched.AdvanceTo(scaled(3.4) + scaled(1))

	snap := l.Snapshot(sched.Now())
	g.Expect(snap.State).To(Equal(loader.ClosedRight))
	g.Expect(snap.Pose(loader.LeftCover)).To(Equal(loader.Pose{Offset: geometry.Vec{X: -84, Y: 55.75}, Angle: 180}))
	g.Expect(snap.Pose(loader.RightCover)).To(Equal(loader.Pose{Offset: geometry.Vec{X: 84}, Angle: 0}))
	g.Expect(snap.Pose(loader.Holder)).To(Equal(loader.Pose{Offset: geometry.Vec{X: 28, Y: -28}, Angle: 90}))
}

func TestFullCycleAdvancesState(t *testing.T) {
	g := NewWithT(t)
	l, sched, _ := newTestLoader(PolicyRestart)

	l.Tap()
	sched.AdvanceTo(scaled(3.4))
	g.Expect(l.State()).To(Equal(loader.ClosedRight))

	sched.AdvanceTo(scaled(3.4) + scaled(1.6))
	g.Expect(l.State()).To(Equal(loader.ClosedLeft))
	g.Expect(l.Index()).To(Equal(1))

	holder := l.Targets().Pose(loader.Holder)
	g.Expect(holder.Offset).To(Equal(loader.ClosedLeft.Offset(loader.Begin, loader.Holder)))
	g.Expect(holder.Offset).To(Equal(geometry.Vec{}))

	sched.Advance(scaled(1))
	g.Expect(l.Snapshot(sched.Now()).Pose(loader.Holder).Offset).To(Equal(geometry.Vec{}))

	sched.AdvanceTo(scaled(3.4) + scaled(5) + scaled(1.6))
	g.Expect(l.State()).To(Equal(loader.ClosedRight))
	g.Expect(l.Index()).To(Equal(0))
}

func TestBookEndsTrailCoverRotation(t *testing.T) {
	g := NewWithT(t)
	l, sched, _ := newTestLoader(PolicyRestart)

	l.Tap()
	// the right cover rests at -180 before the first tap; its rotation waits
	// out the book end delay while the holder eases immediately.
	at := scaled(0.05)
	snap := l.Snapshot(at)
	g.Expect(snap.Pose(loader.RightCover).Angle).To(Equal(-180.0))
	g.Expect(snap.Pose(loader.Holder).Angle).To(BeNumerically(">", -90.0))

	sched.AdvanceTo(scaled(0.05) + scaled(0.9))
	g.Expect(l.Snapshot(sched.Now()).Pose(loader.RightCover).Angle).To(BeZero())
}

func TestRestartPolicyStopsAndRestarts(t *testing.T) {
	g := NewWithT(t)
	l, sched, rec := newTestLoader(PolicyRestart)

	l.Tap()
	sched.AdvanceTo(scaled(4))
	l.Tap()
	g.Expect(l.Gate()).To(BeFalse())
	g.Expect(l.Animating()).To(BeFalse())
	g.Expect(l.Pages().Running()).To(BeFalse())
	g.Expect(l.Pages().Polling()).To(BeTrue())
	g.Expect(rec.Named(EventStop)).To(Equal([]time.Duration{scaled(4)}))

	books := len(rec.Named(EventBook))
	sched.Advance(scaled(20))
	g.Expect(rec.Named(EventBook)).To(HaveLen(books))

	restart := sched.Now()
	l.Tap()
	g.Expect(l.Gate()).To(BeTrue())
	sched.Advance(scaled(3.4))
	g.Expect(rec.Named(EventBook)).To(ContainElement(restart + scaled(3.4)))
}

func TestOverlapPolicyKeepsCascades(t *testing.T) {
	g := NewWithT(t)
	l, sched, rec := newTestLoader(PolicyOverlap)

	l.Tap()
	sched.AdvanceTo(scaled(1))
	l.Tap()
	g.Expect(l.Gate()).To(BeFalse())
	g.Expect(l.Animating()).To(BeTrue())

	sched.AdvanceTo(scaled(5))
	g.Expect(rec.Named(EventBook)).To(Equal([]time.Duration{
		scaled(3.4),
		scaled(1) + scaled(3.4),
	}))
}

func TestCloseCancelsEveryTimer(t *testing.T) {
	g := NewWithT(t)
	l, sched, rec := newTestLoader(PolicyRestart)

	l.Tap()
	sched.AdvanceTo(scaled(6))
	l.Close()

	g.Expect(sched.Pending()).To(BeZero())
	g.Expect(l.Animating()).To(BeFalse())
	g.Expect(rec.Named(EventClose)).To(HaveLen(1))

	count := len(rec.Events)
	l.Tap()
	sched.Advance(time.Minute)
	g.Expect(rec.Events).To(HaveLen(count))
}

func TestAnimateBookWithoutTap(t *testing.T) {
	g := NewWithT(t)
	l, sched, _ := newTestLoader(PolicyRestart)

	l.AnimateBook()
	sched.Advance(scaled(1.6))
	g.Expect(l.State()).To(Equal(loader.ClosedLeft))
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyRestart, false},
		{"restart", PolicyRestart, false},
		{"overlap", PolicyOverlap, false},
		{"queue", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
