package clock

import "time"

// Group tracks the timers of one cascade so they can be cancelled together.
type Group struct {
	sched  *Scheduler
	timers []*Timer
}

func NewGroup(s *Scheduler) *Group {
	return &Group{sched: s}
}

func (g *Group) After(d time.Duration, fn func()) *Timer {
	return g.track(g.sched.After(d, fn))
}

func (g *Group) Every(d time.Duration, fn func()) *Timer {
	return g.track(g.sched.Every(d, fn))
}

func (g *Group) track(t *Timer) *Timer {
	live := g.timers[:0]
	for _, old := range g.timers {
		if old.Active() {
			live = append(live, old)
		}
	}
	g.timers = append(live, t)
	return t
}

// Stop cancels every timer in the group and returns how many were pending.
func (g *Group) Stop() int {
	n := 0
	for _, t := range g.timers {
		if t.Stop() {
			n++
		}
	}
	g.timers = g.timers[:0]
	return n
}

// Active returns how many timers in the group are still pending.
func (g *Group) Active() int {
	n := 0
	for _, t := range g.timers {
		if t.Active() {
			n++
		}
	}
	return n
}
