// Package static renders the screens that only show information and wait
// for a single key.
package static

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	entitlementdto "studyquest/internal/modules/entitlement/dto"
	"studyquest/internal/ui/theme"
)

func Onboarding() string {
	return center(
		theme.Title.Render("🐣 Welcome to StudyQuest"),
		"",
		"Run focused study sessions, reflect on what you learned,",
		"and watch your avatar grow from a curious toddler into a dragon.",
		"",
		theme.Muted.Render("enter: let's go"),
	)
}

type friend struct {
	name   string
	avatar string
	xp     int
	streak int
}

// Friends are demo data; there is no social backend.
var friends = []friend{
	{"Mia", "🦉", 1240, 12},
	{"Leon", "🦊", 860, 5},
	{"Sofia", "🐢", 410, 3},
	{"Noah", "🐣", 95, 1},
}

func Social() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("👥 Study friends") + "\n\n")
	for i, f := range friends {
		sb.WriteString(fmt.Sprintf("%d. %s %-6s %5d XP  🔥 %d\n", i+1, f.avatar, f.name, f.xp, f.streak))
	}
	sb.WriteString("\n" + theme.Muted.Render("Friends and challenges are coming soon.  esc: back"))
	return sb.String()
}

func Waitlist() string {
	return center(
		theme.Title.Render("🚀 You're on a roll!"),
		"",
		"Two sessions in one sitting. Join the waitlist to hear about",
		"study groups and synced progress first.",
		"",
		theme.Muted.Render("esc: back to dashboard"),
	)
}

func SoftLock(status entitlementdto.StatusOutput) string {
	why := "You've used your free guest sessions."
	if status.Tier == "free" {
		why = "You're out of session credits."
	}
	return center(
		theme.Hot.Render("🔒 Session limit reached"),
		"",
		why,
		"Upgrade for unlimited focus sessions.",
		"",
		theme.Muted.Render("u: see premium  esc: back"),
	)
}

func Upgrade(status entitlementdto.StatusOutput) string {
	if status.Premium {
		since := ""
		if status.PurchaseDate != "" {
			since = " since " + status.PurchaseDate
		}
		return center(
			theme.Success.Render("🐉 Premium active"+since),
			"",
			"Unlimited sessions. Thank you for supporting StudyQuest!",
			"",
			theme.Muted.Render("esc: back"),
		)
	}
	left := "unlimited"
	if status.Remaining >= 0 {
		left = fmt.Sprintf("%d", status.Remaining)
	}
	return center(
		theme.Title.Render("✨ StudyQuest Premium"),
		"",
		"• Unlimited focus sessions",
		"• Progress synced to your account",
		"• Every theme and future feature",
		"",
		theme.Muted.Render(fmt.Sprintf("tier %s · sessions left %s", status.Tier, left)),
		"",
		theme.Muted.Render("g: I've purchased, refresh  esc: back"),
	)
}

func center(lines ...string) string {
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
