package viz

import (
	"bytes"
	"image/gif"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/binstar/internal/config"
	"github.com/san-kum/binstar/internal/driver"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	d := driver.New(cfg.DriverOptions(nil))
	return NewModel(d, ModelOptions{
		Title:       "binary",
		Gravity:     cfg.Gravity,
		GridSlices:  cfg.Window.GridSlices,
		GridSpacing: cfg.Window.GridSpacing,
		FPS:         60,
		RecordPath:  t.TempDir() + "/out.gif",
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t)
	now := time.Now()

	m, cmd := update(t, m, TickMsg(now))
	if m.frame.Tick != 1 {
		t.Errorf("expected tick 1, got %d", m.frame.Tick)
	}
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
	if len(m.sepHistory) != 1 || len(m.energyHistory) != 1 {
		t.Errorf("expected one history sample, got %d, %d", len(m.sepHistory), len(m.energyHistory))
	}
}

func TestModelHeldKeyMoves(t *testing.T) {
	m := newTestModel(t)
	start := m.frame.Camera.Position

	m, _ = update(t, m, key("w"))
	now := time.Now()
	for i := 0; i < holdTicks+3; i++ {
		m, _ = update(t, m, TickMsg(now.Add(time.Duration(i)*time.Second/60)))
	}

	moved := m.frame.Camera.Position.Sub(start).Len()
	want := float64(holdTicks) * 0.1 * 3
	if moved < want-1e-9 || moved > want+1e-9 {
		t.Errorf("expected camera to move %f, moved %f", want, moved)
	}
	if len(m.held) != 0 {
		t.Error("expected held keys to expire")
	}
}

func TestModelPressedKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, key("p"))
	m, _ = update(t, m, TickMsg(time.Now()))
	if !m.frame.Paused {
		t.Error("expected p to pause")
	}

	m, _ = update(t, m, key("tab"))
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.frame.Grabbed {
		t.Error("expected tab to release the mouse")
	}
	if m.pressed != 0 {
		t.Error("expected pressed keys to be drained")
	}
}

func TestModelQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t)
			m, _ = update(t, m, key(k))
			_, cmd := update(t, m, TickMsg(time.Now()))
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
		})
	}
}

func TestModelCtrlC(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelLook(t *testing.T) {
	m := newTestModel(t)
	yaw := m.frame.Camera.Yaw

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	if m.mouse != (mgl64.Vec2{80, 80}) {
		t.Errorf("expected mouse in pixels, got %v", m.mouse)
	}
	m, _ = update(t, m, TickMsg(time.Now()))

	m, _ = update(t, m, key("left"))
	m, _ = update(t, m, TickMsg(time.Now().Add(time.Second/60)))

	if m.frame.Camera.Yaw >= yaw {
		t.Errorf("expected left arrow to turn left, yaw %f -> %f", yaw, m.frame.Camera.Yaw)
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	if m.canvas.Width != 160-sidebarWidth-6 || m.canvas.Height != 48 {
		t.Errorf("unexpected canvas size %dx%d", m.canvas.Width, m.canvas.Height)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 4})
	if m.canvas.Width != 160-sidebarWidth-6 {
		t.Error("expected tiny windows to keep the previous canvas")
	}
}

func TestModelTheme(t *testing.T) {
	m := newTestModel(t)
	first := m.theme.Name
	m, _ = update(t, m, key("t"))
	if m.theme.Name == first {
		t.Error("expected theme to change")
	}
}

func TestModelRecording(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, key("g"))
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	m, _ = update(t, m, key("g"))

	if m.recording {
		t.Error("expected recording stopped")
	}
	if !strings.HasPrefix(m.status, "saved 3 frames") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now().Add(time.Second/60)))

	out := m.View()
	for _, want := range []string{"RUNNING", "Separation", "Tick"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}

	m.showHelp = true
	if !strings.Contains(m.View(), "grab or release the mouse") {
		t.Error("expected help overlay")
	}
}

func TestRecorderEncode(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)

	r := NewRecorder(2)
	r.Capture(c)
	r.Capture(c)

	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(anim.Image))
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 4*charW || b.Dy() != 2*charH {
		t.Errorf("unexpected frame size %v", b)
	}
}

func TestFrameDelay(t *testing.T) {
	tests := []struct {
		fps  int
		want int
	}{
		{30, 3},
		{60, 2},
		{100, 1},
		{144, 1},
		{200, 1},
		{24, 4},
		{0, 1},
	}

	for _, tt := range tests {
		if got := frameDelay(tt.fps); got != tt.want {
			t.Errorf("fps %d: expected delay %d, got %d", tt.fps, tt.want, got)
		}
	}
}

func TestRecordingAtHighFrameRate(t *testing.T) {
	cfg := config.DefaultConfig()
	d := driver.New(cfg.DriverOptions(nil))
	m := NewModel(d, ModelOptions{Title: "binary", Gravity: cfg.Gravity, FPS: 240, RecordPath: t.TempDir() + "/out.gif"})

	m.toggleRecording()
	if m.recorder == nil {
		t.Fatal("expected a recorder after starting to record")
	}
	if m.recorder.delay != 1 {
		t.Errorf("expected delay 1 at 240 fps, got %d", m.recorder.delay)
	}
}

func TestInteractiveMenu(t *testing.T) {
	app := NewInteractiveApp()

	next, _ := app.Update(key("j"))
	m := next.(menu)
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(menu)
	if m.state != stateSim || cmd == nil {
		t.Fatal("expected enter to start the viewer")
	}
	if m.live.opts.Title != m.presets[1] {
		t.Errorf("expected title %s, got %s", m.presets[1], m.live.opts.Title)
	}
	if !strings.Contains(m.View(), "Separation") {
		t.Error("expected live view after start")
	}
}
