// Package tui is a plain ANSI renderer for terminals where the interactive
// view cannot run, such as CI logs or a pipe into less -R.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/loader"
	"github.com/san-kum/bookloader/internal/scene"
	"github.com/san-kum/bookloader/internal/viz"
)

const (
	width       = 60
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws one braille frame per sample. With Realtime set it
// sleeps so frames appear at the pace of the virtual clock.
type LiveRenderer struct {
	Realtime bool

	out       io.Writer
	frameRate int
	start     time.Time
	lastFrame time.Duration
	frames    int
	canvas    *viz.Canvas
	sleep     func(time.Duration)
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		lastFrame: -1,
		canvas:    viz.NewCanvas(width, height),
		sleep:     time.Sleep,
	}
}

// OnSample implements sim.Observer.
func (r *LiveRenderer) OnSample(snap book.Snapshot) {
	if r.lastFrame >= 0 && snap.At-r.lastFrame < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = snap.At

	if r.Realtime {
		if r.start.IsZero() {
			r.start = time.Now()
		}
		if wait := snap.At - time.Since(r.start); wait > 0 {
			r.sleep(wait)
		}
	}

	r.canvas.Clear()
	r.canvas.DrawScene(scene.Build(snap), scene.Extent)
	r.render(snap)
	r.frames++
}

// Frames returns how many frames have been drawn.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) render(snap book.Snapshot) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  bookloader  t=%.2fs  %s\n", snap.At.Seconds(), snap.State))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas.Grid {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	holder := snap.Pose(loader.Holder)
	b.WriteString(fmt.Sprintf("  holder=%.1f° (%.1f, %.1f)  right_bar=%.1f°\n",
		holder.Angle, holder.Offset.X, holder.Offset.Y, snap.Pages.Right.Angle))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
