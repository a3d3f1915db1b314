package reflection

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "studyquest/internal/modules/progress/dto"
	"studyquest/internal/ui/theme"
)

var prompts = [3]string{
	"What did you understand?",
	"What was most important?",
	"What do you want to remember?",
}

// SubmitMsg carries the three answers.
type SubmitMsg struct{ Reflection progressdto.ReflectionInput }

type SkipMsg struct{}

type Model struct {
	fields [3]textarea.Model
	active int
	width  int
}

func New() Model {
	var m Model
	for i := range m.fields {
		ta := textarea.New()
		ta.Placeholder = prompts[i]
		ta.ShowLineNumbers = false
		ta.CharLimit = 1000
		ta.SetHeight(3)
		m.fields[i] = ta
	}
	return m
}

// Reset clears the answers and focuses the first prompt.
func (m *Model) Reset() tea.Cmd {
	for i := range m.fields {
		m.fields[i].Reset()
		m.fields[i].Blur()
	}
	m.active = 0
	return m.fields[0].Focus()
}

func (m Model) Value() progressdto.ReflectionInput {
	return progressdto.ReflectionInput{
		Understood: strings.TrimSpace(m.fields[0].Value()),
		Important:  strings.TrimSpace(m.fields[1].Value()),
		Remember:   strings.TrimSpace(m.fields[2].Value()),
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.fields {
			m.fields[i].SetWidth(max(msg.Width-8, 20))
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			step := 1
			if msg.String() == "shift+tab" {
				step = len(m.fields) - 1
			}
			m.fields[m.active].Blur()
			m.active = (m.active + step) % len(m.fields)
			return m, m.fields[m.active].Focus()
		case "ctrl+s":
			value := m.Value()
			return m, func() tea.Msg { return SubmitMsg{Reflection: value} }
		case "esc":
			return m, func() tea.Msg { return SkipMsg{} }
		}
	}
	var cmd tea.Cmd
	m.fields[m.active], cmd = m.fields[m.active].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	parts := []string{theme.Title.Render("Reflect on your session"), ""}
	for i, f := range m.fields {
		label := theme.Muted.Render(prompts[i])
		if i == m.active {
			label = theme.Hot.Render(prompts[i])
		}
		parts = append(parts, label, f.View(), "")
	}
	parts = append(parts, theme.Muted.Render("tab: next field  ctrl+s: submit  esc: skip"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
