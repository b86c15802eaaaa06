package book

import (
	"time"

	"github.com/san-kum/bookloader/internal/loader"
	"github.com/san-kum/bookloader/internal/pages"
)

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	At    time.Duration
	State loader.State
	Parts [len(loader.Parts)]loader.Pose
	Pages pages.Snapshot
}

func (s Snapshot) Pose(p loader.Part) loader.Pose { return s.Parts[p] }

// Snapshot returns the presented pose of every part at now.
func (l *Loader) Snapshot(now time.Duration) Snapshot {
	snap := Snapshot{At: now, State: l.State(), Pages: l.pages.Snapshot(now)}
	for _, p := range loader.Parts {
		snap.Parts[p] = loader.Pose{
			Offset: l.parts[p].offset.Value(now),
			Angle:  l.parts[p].angle.Value(now),
		}
	}
	return snap
}

// Targets returns the poses every part is animating toward.
func (l *Loader) Targets() Snapshot {
	snap := Snapshot{At: l.sched.Now(), State: l.State(), Pages: l.pages.Targets()}
	for _, p := range loader.Parts {
		snap.Parts[p] = loader.Pose{
			Offset: l.parts[p].offset.Target(),
			Angle:  l.parts[p].angle.Target(),
		}
	}
	return snap
}
