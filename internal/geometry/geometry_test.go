package geometry

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestHolderPath(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want Path
	}{
		{"centered", Centered(200, 100), Path{{X: -28, Y: 0}, {X: -28, Y: 12}, {X: 28, Y: 12}, {X: 28, Y: 0}}},
		{"offset", Rect{X: 10, Y: 20, W: 100, H: 40}, Path{{X: 32, Y: 40}, {X: 32, Y: 52}, {X: 88, Y: 52}, {X: 88, Y: 40}}},
		{"empty", Rect{}, Path{{X: -28, Y: 0}, {X: -28, Y: 12}, {X: 28, Y: 12}, {X: 28, Y: 0}}},
	}

	for _, tt := range tests {
		got := HolderPath(tt.rect)
		if len(got) != 4 {
			t.Fatalf("%s: expected 4 points, got %d", tt.name, len(got))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: point %d expected %v, got %v", tt.name, i, tt.want[i], got[i])
			}
		}
	}
}

func TestHolderPathIsPure(t *testing.T) {
	r := Centered(300, 300)
	a, b := HolderPath(r), HolderPath(r)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("point %d differs between calls: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRotationClockwise(t *testing.T) {
	got := Rotation(90).TransformPoint(Vec{X: 1})
	if !near(got.X, 0) || !near(got.Y, 1) {
		t.Errorf("expected (0,1), got %v", got)
	}

	got = Rotation(180).TransformPoint(Vec{X: -84})
	if !near(got.X, 84) || !near(got.Y, 0) {
		t.Errorf("expected (84,0), got %v", got)
	}
}

func TestTransformOrder(t *testing.T) {
	p := Path{{X: -84, Y: 55.75}}

	// translate first, then rotate
	m := Rotation(37).Multiply(Translation(Vec{X: 3}))
	got := p.Transform(m)[0]
	want := Vec{X: -81, Y: 55.75}.Rotate(Radians(37))
	if !near(got.X, want.X) || !near(got.Y, want.Y) {
		t.Errorf("expected %v, got %v", want, got)
	}

	moved := Path{{X: 1, Y: 2}}.Transform(Translation(Vec{X: 3, Y: -4}))
	if moved[0] != (Vec{X: 4, Y: -2}) {
		t.Errorf("expected (4,-2), got %v", moved[0])
	}
}

func TestBoundsUnion(t *testing.T) {
	b := Path{{X: -1, Y: 2}, {X: 3, Y: -4}}.Bounds()
	if b != (Rect{X: -1, Y: -4, W: 4, H: 6}) {
		t.Errorf("unexpected bounds %v", b)
	}
	u := b.Union(Rect{X: 0, Y: 0, W: 10, H: 1})
	if u != (Rect{X: -1, Y: -4, W: 11, H: 6}) {
		t.Errorf("unexpected union %v", u)
	}
}
