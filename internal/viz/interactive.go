package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/binstar/internal/config"
	"github.com/san-kum/binstar/internal/driver"
	"github.com/san-kum/binstar/internal/logger"
)

const (
	stateMenu = iota
	stateSim
)

// menu picks a preset and then hands over to the live viewer.
type menu struct {
	state, cursor int
	presets       []string
	theme         Theme
	live          Model
}

func NewInteractiveApp() *menu {
	return &menu{
		state:   stateMenu,
		presets: config.ListPresets(),
		theme:   Themes[0],
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m menu) start() (tea.Model, tea.Cmd) {
	name := m.presets[m.cursor]
	cfg := config.GetPreset(name)
	d := driver.New(cfg.DriverOptions(logger.Discard()))
	m.live = NewModel(d, ModelOptions{
		Title:       name,
		Gravity:     cfg.Gravity,
		GridSlices:  cfg.Window.GridSlices,
		GridSpacing: cfg.Window.GridSpacing,
		FPS:         cfg.Window.FPS,
		Theme:       m.theme.Name,
	})
	m.state = stateSim
	return m, tea.Batch(m.live.Init(), tea.WindowSize())
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	st := newStyles(m.theme)
	sub := lipgloss.NewStyle().Foreground(m.theme.Muted)
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("BINSTAR", m.theme.Primary, m.theme.Secondary) + "\n    " + sub.Render("two-body gravity viewer") + "\n    " + sub.Render("───────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := config.PresetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", st.key.Render("▸"), st.value.Bold(true).Render(fmt.Sprintf("%-12s", name)), lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-12s", name)), sub.Render(desc)))
		}
	}
	b.WriteString("\n    " + st.key.Render("j/k") + sub.Render(" navigate  ") + st.key.Render("enter") + sub.Render(" start  ") + st.key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset menu, then the live viewer.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
