package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/starfield/internal/render"
	"github.com/san-kum/starfield/internal/sim"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 44
	historyCapacity = 600
	// a frame never reports more than this many nominal frames of elapsed
	// time, so a stalled terminal does not fling the camera forward
	maxCatchUp = 4
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).Padding(1, 2).Width(statsWidth)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

type Options struct {
	Title   string
	Mode    string
	FrameMs float64
	FPS     int
	Theme   string
	// GIFPath is where the g key writes recordings.
	GIFPath string
}

// Model drives a simulator from terminal input and draws each snapshot.
type Model struct {
	sim           *sim.Simulator
	opts          Options
	state         sim.State
	width, height int
	termWidth     int
	canvas        *Canvas
	theme         Theme
	running       bool
	showHelp      bool
	last          time.Time
	pending       *sim.PointerMoved
	speedHistory  []float64
	history       []sim.State
	playHead      int
	recorder      *Recorder
	notice        string
}

func NewModel(s *sim.Simulator, opts Options) Model {
	if opts.FrameMs <= 0 {
		opts.FrameMs = 16
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "starfield.gif"
	}
	return Model{
		sim:          s,
		opts:         opts,
		state:        s.State(),
		width:        width,
		height:       height,
		termWidth:    width + statsWidth,
		canvas:       NewCanvas(width, height),
		theme:        GetTheme(opts.Theme),
		running:      true,
		speedHistory: make([]float64, 0, historyCapacity),
		history:      make([]sim.State, 0, historyCapacity),
		playHead:     -1,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.pending = &sim.PointerMoved{X: float64(msg.X), ViewportWidth: float64(m.termWidth)}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			return m, tea.Quit
		case " ", "space", "right", "enter":
			m.playHead = -1
			m.apply(sim.AdvancePressed{})
		case "p":
			m.running = !m.running
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "g":
			if m.recorder != nil {
				m.stopRecording()
			} else {
				m.recorder = NewRecorder()
				m.notice = ""
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		delta := m.elapsed(now)
		m.last = now
		if m.running {
			if m.playHead == -1 {
				if m.pending != nil {
					m.apply(*m.pending)
					m.pending = nil
				}
				m.apply(sim.Tick{DeltaMs: delta})
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		if m.recorder != nil {
			m.draw()
			m.recorder.Capture(m.canvas)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.termWidth = w
	cols, rows := w-statsWidth-6, h-3
	if cols < 20 {
		cols = 20
	}
	if rows < 8 {
		rows = 8
	}
	m.width, m.height = cols, rows
	m.canvas = NewCanvas(cols, rows)
}

// elapsed is the virtual time since the previous frame.
func (m *Model) elapsed(now time.Time) float64 {
	if m.last.IsZero() {
		return m.opts.FrameMs
	}
	d := float64(now.Sub(m.last)) / float64(time.Millisecond)
	if d > m.opts.FrameMs*maxCatchUp {
		d = m.opts.FrameMs * maxCatchUp
	}
	return d
}

func (m *Model) apply(ev sim.Event) {
	m.state = m.sim.Apply(ev)
	if _, ok := ev.(sim.Tick); !ok {
		return
	}
	m.speedHistory = append(m.speedHistory, m.state.Speed)
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
	m.history = append(m.history, m.state)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// scrub moves the replay head through recorded snapshots. Leaving the end
// of the history returns to the live state.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) stopRecording() {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		log.Printf("save recording: %v", err)
		m.notice = "recording failed: " + err.Error()
	} else if m.recorder.Len() > 0 {
		m.notice = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), m.opts.GIFPath)
	}
	m.recorder = nil
}

// displayed is the snapshot on screen: live, or the replay head.
func (m Model) displayed() sim.State {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		return m.history[m.playHead]
	}
	return m.state
}

func (m *Model) draw() render.Model {
	m.canvas.Clear()
	frame := render.Project(m.displayed(), m.canvas.Viewport())
	m.canvas.Plot(frame)
	if caption, ok := frame.Nearest(); ok {
		m.canvas.Label(caption.X, caption.Y, caption.Text, int(caption.LetterSpacing/5))
	}
	return frame
}

// TweenProgress is how far the camera is through the current tween, in [0, 1].
func TweenProgress(s sim.State) float64 {
	span := s.TweenEndTime - s.TweenStartTime
	if !s.Tweening() || span <= 0 {
		return 1
	}
	p := (s.Time - s.TweenStartTime) / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (m Model) status() string {
	switch {
	case m.recorder != nil:
		return StatusRecording.Render("● REC")
	case m.playHead != -1:
		back := m.history[m.playHead].Time - m.state.Time
		if !m.running {
			return StatusPaused.Render(fmt.Sprintf("REPLAY PAUSED (%.1fs)", back/1000))
		}
		return StatusRunning.Render(fmt.Sprintf("REPLAYING (%.1fs)", back/1000))
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

func (m Model) View() string {
	frame := m.draw()
	st := m.displayed()

	canvasView := canvasStyle.Foreground(m.theme.Star).Render(m.canvas.String())

	var s strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "starfield"
	}
	s.WriteString(headerStyle.Foreground(m.theme.Accent).Render(strings.ToUpper(title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		s.WriteString(graphStyle.Foreground(m.theme.Star).Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Mode", m.opts.Mode)
	row("Time", fmt.Sprintf("%.2fs", st.Time/1000))
	row("Speed", fmt.Sprintf("%.5f", st.Speed))
	row("Position", fmt.Sprintf("%.2f → %.2f", st.CurrentPosition, st.TargetPosition))
	if len(st.Slides) > 0 {
		row("Slide", fmt.Sprintf("%d/%d", st.CurrentSlide+1, len(st.Slides)))
	}
	row("Stars", fmt.Sprintf("%d", len(st.Stars)))
	row("Recycled", fmt.Sprintf("%d", st.Recycled))
	s.WriteString(labelStyle.Render("Tween") + ProgressBar(TweenProgress(st), 20) + "\n")

	if caption, ok := frame.Nearest(); ok {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Caption).Bold(true).Render(caption.Text) + "\n")
		s.WriteString(KeyHint.Render(fmt.Sprintf("%s %.1fpt", CaptionBar(caption.FontSize, 24), caption.FontSize)) + "\n")
	}
	if m.notice != "" {
		s.WriteString("\n" + KeyHint.Render(m.notice) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Next P:Pause Q:Quit\nT:Theme G:Record ?:Help\n[ ]:Time-Travel"))
	statsView := statsStyle.BorderForeground(m.theme.Border).Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Next slide               ║
║  Mouse    - Steer speed (pointer)    ║
║  P        - Pause/Resume             ║
║  [        - Rewind (time travel)     ║
║  ]        - Forward (time travel)    ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run takes over the terminal until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
