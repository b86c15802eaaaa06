// Package loader holds the state machine of the book animation: which side
// the book is closed on, and where every part sits at the begin and end of a
// sub-animation.
package loader

import (
	"fmt"

	"github.com/san-kum/bookloader/internal/geometry"
)

// Part identifies the visual element a transform applies to.
type Part int

const (
	LeftCover Part = iota
	RightCover
	Holder
	numParts
)

// Parts lists every part in paint order.
var Parts = [numParts]Part{LeftCover, Holder, RightCover}

// Mirror swaps the covers. The holder is its own mirror.
func (p Part) Mirror() Part {
	switch p {
	case LeftCover:
		return RightCover
	case RightCover:
		return LeftCover
	}
	return p
}

func (p Part) String() string {
	switch p {
	case LeftCover:
		return "left_cover"
	case RightCover:
		return "right_cover"
	case Holder:
		return "holder"
	}
	return fmt.Sprintf("part(%d)", int(p))
}

// ParsePart is the inverse of Part.String.
func ParsePart(s string) (Part, error) {
	for p := Part(0); p < numParts; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown part: %s", s)
}

// Stage selects which endpoint of a sub-animation is queried.
type Stage int

const (
	Begin Stage = iota
	End
	numStages
)

var Stages = [numStages]Stage{Begin, End}

func (s Stage) String() string {
	if s == End {
		return "end"
	}
	return "begin"
}

// State is the side the book is currently closed on. It advances
// round-robin and never terminates.
type State int

const (
	ClosedRight State = iota
	ClosedLeft
	numStates
)

// States lists every state in cycle order.
var States = [numStates]State{ClosedRight, ClosedLeft}

// Next returns the state that follows s in the cycle.
func (s State) Next() State {
	return States[(s.Index()+1)%len(States)]
}

// Index returns the position of s in States.
func (s State) Index() int {
	return int(s) % len(States)
}

// Mirror returns the state with left and right swapped.
func (s State) Mirror() State {
	if s == ClosedRight {
		return ClosedLeft
	}
	return ClosedRight
}

func (s State) String() string {
	switch s {
	case ClosedRight:
		return "closed_right"
	case ClosedLeft:
		return "closed_left"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseState is the inverse of State.String.
func ParseState(s string) (State, error) {
	for _, st := range States {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown state: %s", s)
}

// Pose is the placement of one part: a translation and a rotation in degrees.
type Pose struct {
	Offset geometry.Vec
	Angle  float64
}

// Offset returns the translation of part at stage while the book is in s.
func (s State) Offset(stage Stage, part Part) geometry.Vec {
	return offsets[s][stage][part]
}

// Angle returns the rotation of part, in degrees, at stage while the book is
// in s.
func (s State) Angle(stage Stage, part Part) float64 {
	return angles[s][stage][part]
}

func (s State) Pose(stage Stage, part Part) Pose {
	return Pose{Offset: s.Offset(stage, part), Angle: s.Angle(stage, part)}
}

// InitialPose is where part rests before the first tap.
func InitialPose(part Part) Pose {
	return initial[part]
}
