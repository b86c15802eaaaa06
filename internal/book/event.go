package book

import (
	"time"

	"github.com/san-kum/bookloader/internal/loader"
)

const (
	EventTap      = "tap"
	EventBookEnds = "book_ends"
	EventBook     = "book"
	EventAdvance  = "advance"
	EventStop     = "stop"
	EventClose    = "close"
)

// Event is one step of the choreography, stamped with virtual time and the
// state the book was in once the step ran.
type Event struct {
	At    time.Duration
	Name  string
	State loader.State
}

type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Recorder keeps every event it observes.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnEvent(e Event) { r.Events = append(r.Events, e) }

// Named returns the times of every recorded event called name.
func (r *Recorder) Named(name string) []time.Duration {
	var out []time.Duration
	for _, e := range r.Events {
		if e.Name == name {
			out = append(out, e.At)
		}
	}
	return out
}

func (l *Loader) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loader) emit(name string) {
	e := Event{At: l.sched.Now(), Name: name, State: l.State()}
	l.log.Debug("book event", "event", name, "state", e.State.String(), "at", e.At)
	for _, o := range l.observers {
		o.OnEvent(e)
	}
}
