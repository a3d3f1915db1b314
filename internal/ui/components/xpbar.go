package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"studyquest/internal/ui/theme"
)

// XPBar renders the progress inside the current level.
func XPBar(width, current, toNext int) string {
	if width < 10 {
		width = 10
	}
	bar := progress.New(
		progress.WithSolidFill(string(theme.Accent)),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	bar.EmptyColor = string(theme.Surface1)
	return bar.ViewAs(LevelRatio(current, toNext)) + " " + theme.Muted.Render(fmt.Sprintf("%d / %d XP", current, toNext))
}

// LevelRatio is current/toNext clamped to [0, 1].
func LevelRatio(current, toNext int) float64 {
	if toNext <= 0 {
		return 1
	}
	r := float64(current) / float64(toNext)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
