package scene

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/clock"
	"github.com/san-kum/bookloader/internal/geometry"
	"github.com/san-kum/bookloader/internal/pages"
)

func closeTo(a, b geometry.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func initialScene() Scene {
	l := book.New(clock.New(), book.Options{})
	return Build(l.Snapshot(0))
}

func TestBuildStrokeCount(t *testing.T) {
	sc := initialScene()
	want := 5 + pages.NumPages
	if len(sc.Strokes) != want {
		t.Fatalf("expected %d strokes, got %d", want, len(sc.Strokes))
	}

	order := []string{"left_cover", "holder", "right_cover", "left_bar", "right_bar", "page_a"}
	for i, name := range order {
		if sc.Strokes[i].Name != name {
			t.Errorf("stroke %d: expected %s, got %s", i, name, sc.Strokes[i].Name)
		}
	}
	if sc.Strokes[len(sc.Strokes)-1].Name != "page_m" {
		t.Errorf("expected last page to be page_m, got %s", sc.Strokes[len(sc.Strokes)-1].Name)
	}
}

func TestInitialHolder(t *testing.T) {
	sc := initialScene()
	holder := sc.Strokes[1]
	if len(holder.Points) != 4 {
		t.Fatalf("expected 4 holder points, got %d", len(holder.Points))
	}

	// rotated -90 then moved by (-28, -28)
	want := geometry.Path{{X: -28, Y: 0}, {X: -16, Y: 0}, {X: -16, Y: -56}, {X: -28, Y: -56}}
	for i := range want {
		if !closeTo(holder.Points[i], want[i]) {
			t.Errorf("point %d: expected %v, got %v", i, want[i], holder.Points[i])
		}
	}
}

func TestInitialCovers(t *testing.T) {
	sc := initialScene()

	left := sc.Strokes[0]
	if !closeTo(left.Points[0], geometry.Vec{X: -140}) || !closeTo(left.Points[1], geometry.Vec{X: -28}) {
		t.Errorf("unexpected left cover %v", left.Points)
	}

	// (84, 55.75) turned half a circle
	right := sc.Strokes[2]
	if !closeTo(right.Points[0], geometry.Vec{X: -28, Y: -55.75}) || !closeTo(right.Points[1], geometry.Vec{X: -140, Y: -55.75}) {
		t.Errorf("unexpected right cover %v", right.Points)
	}
}

func TestPagesSitAboveCenter(t *testing.T) {
	sc := initialScene()
	for _, st := range sc.Strokes[3:] {
		if st.Name == "right_bar" {
			continue
		}
		for _, p := range st.Points {
			if p.Y != pages.GroupOffsetY {
				t.Errorf("%s: expected y %v, got %v", st.Name, pages.GroupOffsetY, p.Y)
			}
		}
	}
}

func TestBoundsFitExtent(t *testing.T) {
	sched := clock.New()
	l := book.New(sched, book.Options{})
	l.Mount()
	l.Tap()

	for i := 0; i < 400; i++ {
		sched.Advance(50 * time.Millisecond)
		b := Build(l.Snapshot(sched.Now())).Bounds()
		if b.X < -Extent || b.Y < -Extent || b.X+b.W > Extent || b.Y+b.H > Extent {
			t.Fatalf("bounds %v exceed extent %v at %v", b, Extent, sched.Now())
		}
	}
}
