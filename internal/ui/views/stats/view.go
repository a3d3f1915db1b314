package stats

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
	Stats(ctx context.Context) (progressdto.StatsOutput, error)
	Heatmap(ctx context.Context, rangeName string) ([]progressdto.HeatCellOutput, error)
	Evolution(ctx context.Context) ([]progressdto.LevelOutput, error)
	Achievements(ctx context.Context) ([]progressdto.AchievementOutput, error)
}

type Page int

const (
	PageStats Page = iota
	PageEvolution
	PageAchievements
)

type LoadedMsg struct {
	Page         Page
	Stats        progressdto.StatsOutput
	Heatmap      []progressdto.HeatCellOutput
	Levels       []progressdto.LevelOutput
	Achievements []progressdto.AchievementOutput
	Err          error
}

// Model shows the read-only progress pages: stats with the reading heatmap,
// the evolution path and the achievement list.
type Model struct {
	port         Port
	page         Page
	heatRange    string
	stats        progressdto.StatsOutput
	heatmap      []progressdto.HeatCellOutput
	levels       []progressdto.LevelOutput
	achievements []progressdto.AchievementOutput
	err          error
	width        int
}

func New(port Port) Model {
	return Model{port: port, heatRange: "month"}
}

func (m *Model) Open(page Page) tea.Cmd {
	m.page = page
	return m.loadCmd(page, m.heatRange)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		switch msg.Page {
		case PageStats:
			m.stats, m.heatmap = msg.Stats, msg.Heatmap
		case PageEvolution:
			m.stats, m.levels = msg.Stats, msg.Levels
		case PageAchievements:
			m.achievements = msg.Achievements
		}
	case tea.KeyMsg:
		if m.page == PageStats && msg.String() == "r" {
			m.heatRange = map[string]string{"month": "year", "year": "month"}[m.heatRange]
			return m, m.loadCmd(PageStats, m.heatRange)
		}
	}
	return m, nil
}

// SetHeatRange is used by the palette command.
func (m *Model) SetHeatRange(r string) tea.Cmd {
	m.heatRange = r
	return m.loadCmd(PageStats, r)
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Hot.Render(m.err.Error())
	}
	switch m.page {
	case PageEvolution:
		return m.evolutionView()
	case PageAchievements:
		return m.achievementsView()
	default:
		return m.statsView()
	}
}

func (m Model) statsView() string {
	s := m.stats
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("📊 Your stats") + "\n\n")
	sb.WriteString(fmt.Sprintf("Level %d  %s %s\n", s.Level, s.Avatar.Emoji, s.Avatar.Name))
	sb.WriteString(components.XPBar(max(m.width/3, 20), s.CurrentLevelXP, s.XPToNextLevel) + "\n")
	sb.WriteString(fmt.Sprintf("Total XP %d · %d sessions · %d minutes · %d day streak\n", s.TotalXP, s.TotalSessions, s.TotalMinutes, s.Streak))
	if s.LastSessionDate != "" {
		sb.WriteString(theme.Muted.Render("last session "+s.LastSessionDate) + "\n")
	}
	sb.WriteString("\n" + theme.Title.Render("Reading heatmap") + theme.Muted.Render(" ("+m.heatRange+")") + "\n")
	sb.WriteString(HeatmapGrid(m.heatmap) + "\n\n")
	sb.WriteString(theme.Muted.Render("r: month/year  e: evolution  esc: back"))
	return sb.String()
}

func (m Model) evolutionView() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("🥚 Evolution path") + "\n\n")
	for _, l := range m.levels {
		line := fmt.Sprintf("%s %-18s %5d XP  %s", l.Emoji, l.Name, l.MinXP, l.Description)
		switch {
		case l.Level == m.stats.Avatar.Level:
			sb.WriteString(theme.Hot.Render("▶ "+line) + "\n")
		case l.Reached:
			sb.WriteString(theme.Success.Render("✓ ") + line + "\n")
		default:
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("🔒 %s  (%d XP to go)", line, l.XPRemaining)) + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("esc: back"))
	return sb.String()
}

func (m Model) achievementsView() string {
	unlocked := 0
	for _, a := range m.achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("🏆 Achievements %d/%d", unlocked, len(m.achievements))) + "\n\n")
	for _, a := range m.achievements {
		if a.Unlocked {
			when := ""
			if a.UnlockedAt != "" {
				when = theme.Muted.Render("  " + a.UnlockedAt)
			}
			sb.WriteString(fmt.Sprintf("%s %s  %s%s\n", a.Icon, theme.Success.Render(a.Title), a.Description, when))
			continue
		}
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("🔒 %s  %s", a.Title, a.Description)) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("esc: back"))
	return sb.String()
}

var heatGlyphs = [4]string{"·", "░", "▒", "█"}

// HeatmapGrid lays cells out in rows of seven days, oldest first.
func HeatmapGrid(cells []progressdto.HeatCellOutput) string {
	if len(cells) == 0 {
		return theme.Muted.Render("no sessions yet")
	}
	style := lipgloss.NewStyle().Foreground(theme.Good)
	var sb strings.Builder
	for i, c := range cells {
		level := min(max(c.Intensity, 0), 3)
		glyph := heatGlyphs[level]
		if level > 0 {
			glyph = style.Render(glyph)
		}
		sb.WriteString(glyph)
		if (i+1)%7 == 0 && i < len(cells)-1 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func (m Model) loadCmd(page Page, heatRange string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out := LoadedMsg{Page: page}
		switch page {
		case PageStats:
			out.Stats, out.Err = m.port.Stats(ctx)
			if out.Err == nil {
				out.Heatmap, out.Err = m.port.Heatmap(ctx, heatRange)
			}
		case PageEvolution:
			out.Stats, out.Err = m.port.Stats(ctx)
			if out.Err == nil {
				out.Levels, out.Err = m.port.Evolution(ctx)
			}
		case PageAchievements:
			out.Achievements, out.Err = m.port.Achievements(ctx)
		}
		return out
	}
}
