package loader

import "github.com/san-kum/bookloader/internal/geometry"

const (
	WidthOffsetLeft          = -84.0
	WidthOffsetRight         = 84.0
	HolderHeightOffsetTop    = -28.0
	HolderHeightOffsetBottom = 28.0
	HeightOffsetTop          = -55.75
	HeightOffsetBottom       = 55.75
)

var (
	leftRest  = geometry.Vec{X: WidthOffsetLeft}
	rightRest = geometry.Vec{X: WidthOffsetRight}
)

// offsets is indexed [state][stage][part].
var offsets = [numStates][numStages][numParts]geometry.Vec{
	ClosedRight: {
		Begin: {
			LeftCover:  leftRest,
			RightCover: rightRest,
			Holder:     {},
		},
		End: {
			LeftCover:  {X: WidthOffsetLeft, Y: HeightOffsetBottom},
			RightCover: rightRest,
			Holder:     {X: HolderHeightOffsetBottom, Y: HolderHeightOffsetTop},
		},
	},
	ClosedLeft: {
		Begin: {
			LeftCover:  leftRest,
			RightCover: rightRest,
			Holder:     {},
		},
		End: {
			LeftCover:  leftRest,
			RightCover: {X: WidthOffsetRight, Y: HeightOffsetBottom},
			Holder:     {X: HolderHeightOffsetTop, Y: HolderHeightOffsetTop},
		},
	},
}

// angles is indexed [state][stage][part]. Every begin value is zero.
var angles = [numStates][numStages][numParts]float64{
	ClosedRight: {
		End: {
			LeftCover:  180,
			RightCover: 0,
			Holder:     90,
		},
	},
	ClosedLeft: {
		End: {
			LeftCover:  0,
			RightCover: -180,
			Holder:     -90,
		},
	},
}

var initial = [numParts]Pose{
	LeftCover:  {Offset: leftRest},
	Holder:     {Offset: geometry.Vec{X: HolderHeightOffsetTop, Y: HolderHeightOffsetTop}, Angle: -90},
	RightCover: {Offset: geometry.Vec{X: WidthOffsetRight, Y: HeightOffsetBottom}, Angle: -180},
}
