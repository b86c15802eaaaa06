package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/clock"
	"github.com/san-kum/bookloader/internal/scene"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	if c.Grid[0][0] != rune(blank|0x1) {
		t.Errorf("expected %U, got %U", rune(blank|0x1), c.Grid[0][0])
	}
	if c.Grid[0][1] != rune(blank|0x80) {
		t.Errorf("expected %U, got %U", rune(blank|0x80), c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(2, 3) {
		t.Error("IsSet disagrees with Set")
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)
	if c.Lit() != 2 {
		t.Errorf("expected 2 lit dots, got %d", c.Lit())
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 4)
	c.DrawLine(0, 0, 7, 15)
	if c.Lit() == 0 {
		t.Fatal("expected line to light dots")
	}
	c.Clear()
	if c.Lit() != 0 {
		t.Errorf("expected empty canvas, got %d dots", c.Lit())
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(1, 2, 17, 11)
	if !c.IsSet(1, 2) || !c.IsSet(17, 11) {
		t.Error("expected both endpoints set")
	}
}

func TestDrawThickLine(t *testing.T) {
	thin := NewCanvas(20, 10)
	thin.DrawThickLine(5, 20, 35, 20, 1)

	thick := NewCanvas(20, 10)
	thick.DrawThickLine(5, 20, 35, 20, 6)

	if thick.Lit() <= thin.Lit() {
		t.Errorf("expected thick line to light more dots: %d vs %d", thick.Lit(), thin.Lit())
	}
	// round cap reaches past the endpoint
	if !thick.IsSet(3, 20) {
		t.Error("expected round cap before the start point")
	}
}

func TestDrawScene(t *testing.T) {
	sched := clock.New()
	l := book.New(sched, book.Options{})
	l.Mount()

	c := NewCanvas(40, 20)
	c.DrawScene(scene.Build(l.Snapshot(sched.Now())), scene.Extent)
	if c.Lit() == 0 {
		t.Fatal("expected scene to light dots")
	}

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Errorf("expected 20 rows, got %d", len(lines))
	}
}
