package focus

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyquest/internal/ui/components"
	"studyquest/internal/ui/theme"
)

// rotateEvery is how many seconds each motivational line stays up.
const rotateEvery = 3

var motivation = []string{
	"Stay focused, you're doing great!",
	"Every minute counts.",
	"Your brain is growing stronger.",
	"Deep work builds deep knowledge.",
	"Keep going, the dragon awaits.",
}

// FinishedMsg is sent once when the countdown reaches zero.
type FinishedMsg struct{}

type tickMsg struct{ seq int }

// Model is the focus countdown. Pausing stops the clock without losing the
// time already spent.
type Model struct {
	book      string
	total     time.Duration
	remaining time.Duration
	elapsed   int
	paused    bool
	running   bool
	seq       int
	spinner   spinner.Model
	width     int
}

func New() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Moon
	return Model{spinner: sp}
}

// Start resets the countdown for a new attempt.
func (m *Model) Start(book string, total time.Duration) tea.Cmd {
	m.seq++
	m.book = book
	m.total = total
	m.remaining = total
	m.elapsed = 0
	m.paused = false
	m.running = true
	return tea.Batch(m.tick(), m.spinner.Tick)
}

// Stop invalidates pending ticks.
func (m *Model) Stop() {
	m.seq++
	m.running = false
}

func (m Model) Paused() bool { return m.paused }

func (m Model) Remaining() time.Duration { return m.remaining }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		if msg.seq != m.seq || !m.running {
			return m, nil
		}
		if m.paused {
			return m, m.tick()
		}
		m.elapsed++
		m.remaining -= time.Second
		if m.remaining <= 0 {
			m.remaining = 0
			m.running = false
			return m, func() tea.Msg { return FinishedMsg{} }
		}
		return m, m.tick()

	case tea.KeyMsg:
		if m.running && (msg.String() == "p" || msg.String() == " ") {
			m.paused = !m.paused
		}

	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// Motivation is the line for the current rotation slot.
func (m Model) Motivation() string {
	return motivation[(m.elapsed/rotateEvery)%len(motivation)]
}

func (m Model) View() string {
	mins := int(m.remaining / time.Minute)
	secs := int(m.remaining%time.Minute) / int(time.Second)
	clock := theme.Title.Render(fmt.Sprintf("%02d:%02d", mins, secs))

	done := 0
	if m.total > 0 {
		done = int((m.total - m.remaining) / time.Second)
	}
	bar := components.XPBar(max(m.width/2, 20), done, int(m.total/time.Second))

	status := m.spinner.View() + " " + m.Motivation()
	if m.paused {
		status = theme.Hot.Render("⏸ Paused")
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Muted.Render("Focusing on"),
		theme.Title.Render(m.book),
		"",
		clock,
		bar,
		"",
		status,
		"",
		theme.Muted.Render("p: pause/resume  esc: give up"),
	)
}

func (m Model) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{seq: seq} })
}
