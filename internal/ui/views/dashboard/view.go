package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "studyquest/internal/modules/progress/dto"
	"studyquest/internal/ui/components"
	"studyquest/internal/ui/theme"
)

type Port interface {
	Dashboard(ctx context.Context) (progressdto.DashboardOutput, error)
}

type LoadedMsg struct {
	Dashboard progressdto.DashboardOutput
	Err       error
}

type Model struct {
	port   Port
	data   progressdto.DashboardOutput
	err    error
	loaded bool
	width  int
	height int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m Model) Load() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Dashboard(context.Background())
		return LoadedMsg{Dashboard: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Dashboard
		}
	}
	return m, nil
}

// Settings returns the settings seen on the last load.
func (m Model) Settings() progressdto.SettingsOutput { return m.data.Settings }

// ReadyGoalID returns the first goal whose bonus can be claimed.
func (m Model) ReadyGoalID() (string, bool) {
	for _, g := range m.data.Goals {
		if g.Ready {
			return g.ID, true
		}
	}
	return "", false
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("Loading…")
	}
	if m.err != nil {
		return theme.Hot.Render("Dashboard unavailable: " + m.err.Error())
	}
	s := m.data.Stats
	barW := max(m.width/3, 20)

	var head strings.Builder
	head.WriteString(theme.Title.Render(fmt.Sprintf("%s %s", s.Avatar.Emoji, s.Avatar.Name)))
	head.WriteString(theme.Muted.Render(fmt.Sprintf("  level %d · %d XP total", s.Level, s.TotalXP)) + "\n")
	head.WriteString(components.XPBar(barW, s.CurrentLevelXP, s.XPToNextLevel) + "\n\n")
	head.WriteString(fmt.Sprintf("🔥 %d day streak   ⏱ %d min   ✅ %d sessions\n", s.Streak, s.TotalMinutes, s.TotalSessions))
	if r := m.data.Reminder; r != nil {
		head.WriteString("\n" + theme.Hot.Render(r.Icon+" "+r.Message) + theme.Muted.Render("  "+r.Action) + "\n")
	}

	var goals strings.Builder
	goals.WriteString(theme.Title.Render("Weekly goals") + "\n")
	for _, g := range m.data.Goals {
		mark := "○"
		switch {
		case g.Completed:
			mark = theme.Success.Render("✓")
		case g.Ready:
			mark = theme.Hot.Render("★")
		}
		goals.WriteString(fmt.Sprintf("%s %-12s %d/%d  %s\n", mark, g.Title, min(g.Current, g.Target), g.Target, theme.Muted.Render(g.Description)))
	}

	var books strings.Builder
	books.WriteString(theme.Title.Render("Books") + "\n")
	for _, b := range s.Books {
		books.WriteString(fmt.Sprintf("%s %-24s %3d%%  %s\n", b.Icon, b.Title, b.Progress, theme.Muted.Render(fmt.Sprintf("%d sessions", b.SessionsCompleted))))
	}

	menu := theme.Muted.Render("s: start session  n: notes  t: stats  e: evolution  a: achievements  o: settings  f: friends  u: upgrade  c: claim goal  :: palette  q: quit")

	paneW := max(m.width/2-2, 30)
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(paneW).Render(goals.String()),
		theme.Pane.Width(paneW).Render(books.String()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, head.String(), row, "", menu)
}
