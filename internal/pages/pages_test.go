package pages_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bookloader/internal/clock"
	"github.com/san-kum/bookloader/internal/pages"
)

type step struct {
	at   time.Duration
	name string
}

var _ = Describe("Stack", func() {
	const scale = 0.4

	var (
		sched *clock.Scheduler
		gate  *pages.Gate
		stack *pages.Stack
		steps []step
	)

	scaled := func(k float64) time.Duration { return clock.Seconds(scale * k) }

	named := func(name string) []time.Duration {
		var out []time.Duration
		for _, s := range steps {
			if s.name == name {
				out = append(out, s.at)
			}
		}
		return out
	}

	BeforeEach(func() {
		sched = clock.New()
		gate = &pages.Gate{}
		stack = pages.New(sched, gate, scale)
		steps = nil
		stack.AddObserver(func(at time.Duration, name string) {
			steps = append(steps, step{at, name})
		})
	})

	It("rests with the right bar raised and every page flat", func() {
		snap := stack.Snapshot(0)
		Expect(snap.Right.Y).To(Equal(-20.0))
		Expect(snap.Right.Angle).To(BeZero())
		Expect(snap.Left.Y).To(BeZero())
		for _, p := range snap.Pages {
			Expect(p).To(BeZero())
		}
	})

	Context("when mounted with the gate closed", func() {
		BeforeEach(func() {
			stack.Mount()
			sched.Advance(3 * time.Second)
		})

		It("keeps polling without animating", func() {
			Expect(steps).To(BeEmpty())
			Expect(stack.Polling()).To(BeTrue())
			Expect(stack.Running()).To(BeFalse())
		})

		It("ignores a second mount", func() {
			pending := sched.Pending()
			stack.Mount()
			Expect(sched.Pending()).To(Equal(pending))
		})
	})

	Context("when the gate opens", func() {
		var start time.Duration

		BeforeEach(func() {
			stack.Mount()
			gate.Set(true)
			sched.Advance(pages.PollInterval)
			start = sched.Now()
		})

		It("starts on the next poll and stops polling", func() {
			Expect(start).To(Equal(pages.PollInterval))
			Expect(named(pages.StepStart)).To(Equal([]time.Duration{start}))
			Expect(stack.Polling()).To(BeFalse())
			Expect(stack.Running()).To(BeTrue())
		})

		It("runs the five step cascade at strictly increasing offsets", func() {
			sched.Advance(scaled(8))
			order := []string{
				pages.StepRightClose,
				pages.StepLeftOpen,
				pages.StepLeftClose,
				pages.StepPagesReset,
				pages.StepRightReset,
			}
			offsets := []float64{
				pages.RightCloseAt,
				pages.LeftOpenAt,
				pages.LeftCloseAt,
				pages.PagesResetAt,
				pages.RightResetAt,
			}

			var prev time.Duration = -1
			for i, name := range order {
				at := named(name)
				Expect(at).To(HaveLen(1), name)
				Expect(at[0] - start).To(Equal(scaled(offsets[i])), name)
				Expect(at[0]).To(BeNumerically(">", prev), name)
				prev = at[0]
			}
		})

		It("repeats every ten scale units", func() {
			sched.Advance(scaled(25))
			Expect(named(pages.StepRightClose)).To(Equal([]time.Duration{
				start,
				start + scaled(10),
				start + scaled(20),
			}))
		})

		It("staggers the pages", func() {
			Expect(stack.PageDelay(0)).To(BeZero())
			Expect(stack.PageDelay(12)).To(Equal(scaled(0.21 * 12)))

			mid := start + scaled(1)
			snap := stack.Snapshot(mid)
			Expect(snap.Pages[0]).To(Equal(180.0))
			Expect(snap.Pages[12]).To(BeZero())

			Expect(stack.Targets().Pages[12]).To(Equal(180.0))
		})

		It("lands the bars on their cascade targets", func() {
			sched.Advance(scaled(2.7) + scaled(1))
			snap := stack.Snapshot(sched.Now())
			Expect(snap.Right.Angle).To(Equal(180.0))
			Expect(snap.Right.Y).To(BeZero())
			Expect(snap.Left.Y).To(Equal(20.0))
			Expect(snap.Left.Angle).To(Equal(180.0))

			sched.Advance(scaled(5))
			snap = stack.Snapshot(sched.Now())
			Expect(snap.Right.Angle).To(BeZero())
			Expect(snap.Right.Y).To(Equal(-20.0))
			Expect(snap.Left.Angle).To(BeZero())
		})

		It("keeps looping even after the gate closes", func() {
			gate.Set(false)
			sched.Advance(scaled(10))
			Expect(named(pages.StepRightClose)).To(HaveLen(2))
		})

		It("cancels everything on Stop", func() {
			stack.Stop()
			Expect(named(pages.StepStop)).To(HaveLen(1))
			before := len(steps)
			sched.Advance(scaled(30))
			Expect(steps).To(HaveLen(before))
			Expect(stack.Running()).To(BeFalse())
		})

		It("returns to polling on Rearm", func() {
			sched.Advance(scaled(1))
			stack.Rearm()
			gate.Set(false)
			Expect(stack.Polling()).To(BeTrue())

			sched.Advance(scaled(3))
			snap := stack.Snapshot(sched.Now())
			Expect(snap.Right.Y).To(Equal(-20.0))
			Expect(named(pages.StepLeftOpen)).To(BeEmpty())
		})
	})
})
