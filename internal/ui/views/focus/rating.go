package focus

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyquest/internal/ui/theme"
)

var ratingLabels = [5]string{"Distracted", "Wandering", "Steady", "Focused", "In the zone"}

// Rating is the 1..5 stars picker shown after the countdown.
type Rating struct {
	value int
}

func NewRating() Rating { return Rating{value: 3} }

func (r Rating) Value() int { return r.value }

func (r Rating) Update(msg tea.Msg) Rating {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "left", "h":
			r.value = max(r.value-1, 1)
		case "right", "l":
			r.value = min(r.value+1, 5)
		case "1", "2", "3", "4", "5":
			r.value = int(key.String()[0] - '0')
		}
	}
	return r
}

func (r Rating) View() string {
	stars := strings.Repeat("★", r.value) + strings.Repeat("☆", 5-r.value)
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("How focused were you?"),
		"",
		theme.Hot.Render(stars),
		theme.Muted.Render(ratingLabels[r.value-1]),
		"",
		theme.Muted.Render("←/→ or 1-5: choose  enter: rate  s: skip"),
	)
}
