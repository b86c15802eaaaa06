package viz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bookloader/internal/book"
	"github.com/san-kum/bookloader/internal/clock"
	"github.com/san-kum/bookloader/internal/loader"
	"github.com/san-kum/bookloader/internal/logging"
	"github.com/san-kum/bookloader/internal/render"
	"github.com/san-kum/bookloader/internal/scene"
)

const (
	width           = 60
	height          = 20
	statsWidth      = 46
	historyCapacity = 240
	maxFrameDelta   = 100 * time.Millisecond
	recentEvents    = 6
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().MarginTop(1)
)

type TickMsg time.Time

// gifSavedMsg reports the end of an asynchronous GIF export.
type gifSavedMsg struct {
	path string
	err  error
}

// Options configures the live view.
type Options struct {
	Scale   float64
	Policy  book.Policy
	Theme   string
	FPS     int
	GIFPath string
	Render  render.Options
	Logger  *slog.Logger
}

// eventLog keeps the most recent choreography events for the stats panel.
type eventLog struct {
	recent   []book.Event
	lastBook time.Duration
	books    int
}

func (e *eventLog) OnEvent(ev book.Event) {
	if ev.Name == book.EventBook {
		e.lastBook = ev.At
		e.books++
	}
	e.recent = append(e.recent, ev)
	if len(e.recent) > recentEvents {
		e.recent = e.recent[1:]
	}
}

// Model drives a book loader from bubbletea ticks on a virtual clock.
type Model struct {
	opts   Options
	sched  *clock.Scheduler
	loader *book.Loader
	events *eventLog
	log    *slog.Logger

	width, height int
	canvas        *Canvas
	frame         time.Duration
	last          time.Time

	angles    []float64
	paused    bool
	recording bool
	scenes    []scene.Scene
	status    string

	keys     KeyMap
	help     help.Model
	showHelp bool
}

// NewModel mounts a fresh loader on its own scheduler.
func NewModel(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "bookloader.gif"
	}
	if opts.Logger == nil {
		opts.Logger = logging.NullLogger()
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}

	sched := clock.New()
	l := book.New(sched, book.Options{Scale: opts.Scale, Policy: opts.Policy, Logger: opts.Logger})
	events := &eventLog{}
	l.AddObserver(events)
	l.Mount()

	return Model{
		opts:   opts,
		sched:  sched,
		loader: l,
		events: events,
		log:    opts.Logger,
		width:  width,
		height: height,
		canvas: NewCanvas(width, height),
		frame:  time.Second / time.Duration(opts.FPS),
		angles: make([]float64, 0, historyCapacity),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

func (m Model) Loader() *book.Loader { return m.loader }
func (m Model) Paused() bool         { return m.paused }
func (m Model) Recording() bool      { return m.recording }
func (m Model) Status() string       { return m.status }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the virtual clock.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.loader.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tap):
			m.loader.Tap()
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			m.last = time.Time{}
		case key.Matches(msg, m.keys.Theme):
			m.status = "theme: " + NextTheme().Name
		case key.Matches(msg, m.keys.Record):
			return m.toggleRecording()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.loader.Tap()
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case gifSavedMsg:
		if msg.err != nil {
			m.log.Error("gif export failed", "path", msg.path, "error", msg.err)
			m.status = "gif failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
		}

	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// step advances the scheduler by the wall-clock time since the previous tick.
func (m *Model) step(now time.Time) {
	dt := m.frame
	if !m.last.IsZero() {
		dt = now.Sub(m.last)
	}
	m.last = now
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	if m.paused || dt <= 0 {
		return
	}

	m.sched.Advance(dt)
	snap := m.loader.Snapshot(m.sched.Now())

	m.angles = append(m.angles, snap.Pose(loader.Holder).Angle)
	if len(m.angles) > historyCapacity {
		m.angles = m.angles[1:]
	}
	if m.recording {
		m.scenes = append(m.scenes, scene.Build(snap))
	}
}

func (m *Model) resize(w, h int) {
	cw := w - statsWidth - 6
	ch := h - 4
	if cw < 10 {
		cw = 10
	}
	if ch < 5 {
		ch = 5
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
	m.help.Width = statsWidth - 4
}

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if !m.recording {
		m.recording = true
		m.scenes = m.scenes[:0]
		m.status = "recording"
		return m, nil
	}

	m.recording = false
	scenes := m.scenes
	m.scenes = nil
	if len(scenes) == 0 {
		m.status = "nothing recorded"
		return m, nil
	}
	m.status = fmt.Sprintf("encoding %d frames", len(scenes))
	path, opts, fps := m.opts.GIFPath, m.opts.Render, m.opts.FPS
	return m, func() tea.Msg {
		err := render.SaveGIF(context.Background(), path, scenes, opts, fps)
		return gifSavedMsg{path: path, err: err}
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.DrawScene(scene.Build(m.loader.Snapshot(m.sched.Now())), scene.Extent)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	theme := CurrentTheme

	canvasView := canvasStyle.Foreground(theme.Book).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(GradientText("BOOK LOADER", theme.Primary, theme.Secondary) + "\n\n")

	status := StatusIdle.Render("IDLE")
	switch {
	case m.paused:
		status = StatusPaused.Render("PAUSED")
	case m.loader.Gate():
		status = StatusRunning.Render("LOADING")
	}
	if m.recording {
		status += "  " + StatusRecording.Render("● REC")
	}
	s.WriteString(status + "\n")

	if len(m.angles) > 1 {
		chart := asciigraph.Plot(m.angles, asciigraph.Height(5), asciigraph.Width(statsWidth-14), asciigraph.Caption("holder angle"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	now := m.sched.Now()
	snap := m.loader.Snapshot(now)
	s.WriteString(MetricLabel.Render("Time") + MetricValue.Render(fmt.Sprintf("%.2fs", now.Seconds())) + "\n")
	s.WriteString(MetricLabel.Render("State") + MetricValue.Render(m.loader.State().String()) + "\n")
	s.WriteString(MetricLabel.Render("Scale") + MetricValue.Render(fmt.Sprintf("%.2f", m.loader.Scale())) + "\n")
	s.WriteString(MetricLabel.Render("Holder") + MetricValue.Render(fmt.Sprintf("%.1f°", snap.Pose(loader.Holder).Angle)) + "\n")
	s.WriteString(MetricLabel.Render("Cycles") + MetricValue.Render(fmt.Sprintf("%d", m.events.books)) + "\n")
	s.WriteString(MetricLabel.Render("Cycle") + m.cycleBar(now, statsWidth-18) + "\n")

	s.WriteString("\n" + Separator(statsWidth-6) + "\n")
	for _, ev := range m.events.recent {
		s.WriteString(Subtle.Render(fmt.Sprintf("%7.2fs  %s", ev.At.Seconds(), ev.Name)) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// cycleBar shows how far the current open/close cycle has progressed.
func (m Model) cycleBar(now time.Duration, w int) string {
	if !m.loader.Gate() || m.events.books == 0 {
		return ProgressBar(0, w)
	}
	period := clock.Seconds(book.RepeatDelay * m.loader.Scale())
	return ProgressBar(float64(now-m.events.lastBook)/float64(period), w)
}

// RunLive starts the interactive terminal view.
func RunLive(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
