package settings

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	progressdto "studyquest/internal/modules/progress/dto"
	"studyquest/internal/ui/theme"
)

type Port interface {
	Settings(ctx context.Context) (progressdto.SettingsOutput, error)
	UpdateSettings(ctx context.Context, patch progressdto.SettingsPatchInput) (progressdto.SettingsOutput, error)
}

// ChangedMsg reports the stored settings after a load or an update.
type ChangedMsg struct {
	Settings progressdto.SettingsOutput
	Err      error
}

const (
	rowNotes = iota
	rowRating
	rowAnimations
	rowTheme
	rowCount
)

type Model struct {
	port    Port
	current progressdto.SettingsOutput
	cursor  int
	err     error
}

func New(port Port) Model {
	return Model{port: port}
}

func (m Model) Load() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Settings(context.Background())
		return ChangedMsg{Settings: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ChangedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.current = msg.Settings
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.cursor = (m.cursor + rowCount - 1) % rowCount
		case "down", "j":
			m.cursor = (m.cursor + 1) % rowCount
		case "enter", " ":
			return m, m.apply(Toggle(m.current, m.cursor))
		}
	}
	return m, nil
}

// Toggle builds the patch that flips the row, or advances the theme.
func Toggle(s progressdto.SettingsOutput, row int) progressdto.SettingsPatchInput {
	var patch progressdto.SettingsPatchInput
	switch row {
	case rowNotes:
		v := !s.NotesEnabled
		patch.NotesEnabled = &v
	case rowRating:
		v := !s.FocusRatingEnabled
		patch.FocusRatingEnabled = &v
	case rowAnimations:
		v := !s.ReduceAnimations
		patch.ReduceAnimations = &v
	case rowTheme:
		names := theme.Names()
		next := names[(slices.Index(names, s.Theme)+1)%len(names)]
		patch.Theme = &next
	}
	return patch
}

// SetTheme is used by the palette command.
func (m Model) SetTheme(name string) tea.Cmd {
	return m.apply(progressdto.SettingsPatchInput{Theme: &name})
}

func (m Model) View() string {
	rows := []string{
		check("Reflection notes after sessions", m.current.NotesEnabled),
		check("Rate focus after sessions", m.current.FocusRatingEnabled),
		check("Reduce animations", m.current.ReduceAnimations),
		fmt.Sprintf("Theme: %s", m.current.Theme),
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("⚙ Settings") + "\n\n")
	for i, r := range rows {
		if i == m.cursor {
			sb.WriteString(theme.Hot.Render("› "+r) + "\n")
			continue
		}
		sb.WriteString("  " + r + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + theme.Hot.Render(m.err.Error()) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓: move  enter: change  esc: back"))
	return sb.String()
}

func check(label string, on bool) string {
	if on {
		return "[x] " + label
	}
	return "[ ] " + label
}

func (m Model) apply(patch progressdto.SettingsPatchInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.UpdateSettings(context.Background(), patch)
		return ChangedMsg{Settings: out, Err: err}
	}
}
