package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/binstar/internal/driver"
	"github.com/san-kum/binstar/internal/physics"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	historyCapacity = 600
	// Terminals report key presses, not key state; a press counts as held
	// for this many ticks so auto-repeat reads as continuous movement.
	holdTicks = 8
	// Mouse and arrow-key motion is reported in cells; these convert it to
	// the pixel-like units the look speed is tuned for.
	cellPixelsX = 8
	cellPixelsY = 16
	arrowPixels = 40
	// The window grid is far too dense for a terminal.
	maxTermGridSlices = 40
)

type TickMsg time.Time

type ModelOptions struct {
	Title       string
	Gravity     float64
	GridSlices  int
	GridSpacing float64
	FPS         int
	Theme       string
	RecordPath  string
}

// Model is the Bubble Tea program for the terminal viewer. Every tick it
// feeds the accumulated input to the driver and redraws the frame.
type Model struct {
	driver *driver.Driver
	opts   ModelOptions

	width, height int
	canvas        *Canvas
	scene         *Scene
	theme         Theme
	styles        styles

	mouse    mgl64.Vec2
	held     map[driver.Key]int
	pressed  driver.Keys
	lastTick time.Time

	frame         driver.Frame
	sepHistory    []float64
	energyHistory []float64

	recorder  *Recorder
	recording bool
	showHelp  bool
	status    string
}

func NewModel(d *driver.Driver, opts ModelOptions) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.RecordPath == "" {
		opts.RecordPath = "binstar.gif"
	}
	theme := GetTheme(opts.Theme)
	slices := min(opts.GridSlices, maxTermGridSlices)

	m := Model{
		driver:        d,
		opts:          opts,
		width:         defaultWidth,
		height:        defaultHeight,
		canvas:        NewCanvas(defaultWidth, defaultHeight),
		scene:         NewScene(slices, opts.GridSpacing, theme),
		theme:         theme,
		styles:        newStyles(theme),
		held:          make(map[driver.Key]int),
		sepHistory:    make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.frame = d.Frame()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

var heldKeys = map[string]driver.Key{
	"w": driver.KeyW,
	"a": driver.KeyA,
	"s": driver.KeyS,
	"d": driver.KeyD,
	" ": driver.KeySpace,
	"c": driver.KeyLeftControl,
}

var pressedKeys = map[string]driver.Key{
	"tab": driver.KeyTab,
	"p":   driver.KeyP,
	"r":   driver.KeyR,
	"q":   driver.KeyQ,
	"esc": driver.KeyEscape,
}

var arrowKeys = map[string]mgl64.Vec2{
	"left":  {-arrowPixels, 0},
	"right": {arrowPixels, 0},
	"up":    {0, -arrowPixels},
	"down":  {0, arrowPixels},
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.mouse = mgl64.Vec2{float64(msg.X * cellPixelsX), float64(msg.Y * cellPixelsY)}
		}
	case TickMsg:
		return m.step(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if k, ok := heldKeys[key]; ok {
		m.held[k] = holdTicks
		return m, nil
	}
	if k, ok := pressedKeys[key]; ok {
		m.pressed = m.pressed.With(k)
		return m, nil
	}
	if d, ok := arrowKeys[key]; ok {
		m.mouse = m.mouse.Add(d)
		return m, nil
	}

	switch key {
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
		m.scene = NewScene(min(m.opts.GridSlices, maxTermGridSlices), m.opts.GridSpacing, m.theme)
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	case "+", "=":
		m.scene.FOV = max(m.scene.FOV/1.2, 0.1)
	case "-", "_":
		m.scene.FOV = min(m.scene.FOV*1.2, 3.0)
	}
	return m, nil
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.recorder = NewRecorder(frameDelay(m.opts.FPS))
		m.status = "recording"
		return
	}
	m.recording = false
	if err := m.recorder.Save(m.opts.RecordPath); err != nil {
		m.status = "record failed: " + err.Error()
	} else {
		m.status = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), m.opts.RecordPath)
	}
	m.recorder = nil
}

func (m *Model) resize(w, h int) {
	cw := w - sidebarWidth - 6
	ch := h - 2
	if cw < 10 || ch < 5 {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

// input drains the pending key state into a driver input.
func (m *Model) input(now time.Time) driver.Input {
	dt := 1 / float64(m.opts.FPS)
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick).Seconds(), 0.1)
	}
	m.lastTick = now

	in := driver.Input{Dt: dt, Mouse: m.mouse, Pressed: m.pressed}
	for k, n := range m.held {
		in.Down = in.Down.With(k)
		if n <= 1 {
			delete(m.held, k)
		} else {
			m.held[k] = n - 1
		}
	}
	m.pressed = 0
	return in
}

func (m Model) step(now time.Time) (tea.Model, tea.Cmd) {
	m.frame = m.driver.Tick(m.input(now))
	if m.frame.Quit {
		if m.recording {
			m.toggleRecording()
		}
		return m, tea.Quit
	}

	if m.frame.Tick <= 1 {
		m.sepHistory = m.sepHistory[:0]
		m.energyHistory = m.energyHistory[:0]
	}
	if !m.frame.Paused && !m.frame.Degenerate {
		bodies := m.driver.Bodies()
		m.sepHistory = pushBounded(m.sepHistory, m.frame.Separation)
		m.energyHistory = pushBounded(m.energyHistory, physics.Energy(bodies[0], bodies[1], m.opts.Gravity))
	}

	m.scene.Draw(m.canvas, m.frame, m.theme)
	if m.recording {
		m.recorder.Capture(m.canvas)
	}
	return m, m.tick()
}

func pushBounded(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[len(h)-historyCapacity:]
	}
	return h
}

func (m Model) View() string {
	st := m.styles
	f := m.frame

	var s strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "binary star system"
	}
	s.WriteString(st.title.Render(GradientText(strings.ToUpper(title), m.theme.Primary, m.theme.Secondary)) + "\n")

	switch {
	case f.Degenerate:
		s.WriteString(st.alert.Render("DEGENERATE") + "\n\n")
	case f.Paused:
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	default:
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", f.Tick))
	row("Separation", fmt.Sprintf("%.3f", f.Separation))
	row("COM", fmt.Sprintf("(%.2f, %.2f)", f.CenterOfMass[0], f.CenterOfMass[2]))
	row("Camera", fmt.Sprintf("(%.1f, %.1f, %.1f)", f.Camera.Position[0], f.Camera.Position[1], f.Camera.Position[2]))
	row("Yaw/Pitch", fmt.Sprintf("%.2f / %.2f", f.Camera.Yaw, f.Camera.Pitch))
	grab := "free"
	if f.Grabbed {
		grab = "grabbed"
	}
	row("Mouse", grab)

	if len(m.sepHistory) > 1 {
		chart := asciigraph.Plot(m.sepHistory, asciigraph.Height(5), asciigraph.Width(sidebarWidth-12), asciigraph.Caption("Separation"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}
	s.WriteString("\n" + st.label.Render("Energy") + SparklineChart(m.energyHistory, sidebarWidth-16, m.theme.Accent) + "\n")

	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}

	s.WriteString(st.help.Render(Separator(sidebarWidth-4, m.theme.Muted) + "\n" +
		"WASD:Move SP/C:Up/Down TAB:Grab\nP:Pause R:Reset Q:Quit ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(m.canvas.Render()), st.sidebar.Render(s.String()))
	if m.showHelp {
		return m.helpView() + "\n" + mainView
	}
	return mainView
}

func (m Model) helpView() string {
	keys := [][2]string{
		{"W A S D", "move forward, left, back, right"},
		{"Space / C", "move up / down"},
		{"Mouse, arrows", "look (while grabbed)"},
		{"Tab", "grab or release the mouse"},
		{"P", "pause"},
		{"R", "reset"},
		{"+ / -", "zoom"},
		{"T", "cycle theme"},
		{"G", "toggle GIF recording"},
		{"Q / Esc", "quit"},
	}
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(m.styles.key.Render(fmt.Sprintf("%-14s", k[0])) + m.styles.value.Render(k[1]) + "\n")
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(m.theme.Muted).Padding(0, 1).Render(b.String())
}

// Run starts the terminal viewer on d.
func Run(d *driver.Driver, opts ModelOptions) error {
	_, err := tea.NewProgram(NewModel(d, opts), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
