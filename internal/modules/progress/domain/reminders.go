package domain

import "fmt"

type ReminderKind string

const (
	ReminderBook      ReminderKind = "book"
	ReminderStreak    ReminderKind = "streak"
	ReminderGeneral   ReminderKind = "general"
	ReminderEncourage ReminderKind = "encourage"
)

type Reminder struct {
	Kind    ReminderKind
	Icon    string
	Message string
	Action  string
}

// ReminderFor picks the nudge shown on the dashboard. It returns false once
// two or more sessions were done today.
func ReminderFor(stats PlayerStats, today Date) (Reminder, bool) {
	todays := 0
	for _, rec := range stats.SessionHistory {
		if rec.Date == today {
			todays++
		}
	}

	switch todays {
	case 0:
		for _, b := range stats.Books {
			if b.SessionsCompleted > 0 {
				return Reminder{
					Kind:    ReminderBook,
					Icon:    b.Icon,
					Message: fmt.Sprintf("You haven't studied %s today.", b.Title),
					Action:  "Continue where you left off!",
				}, true
			}
		}
		if stats.Streak > 0 {
			return Reminder{
				Kind:    ReminderStreak,
				Icon:    "🔥",
				Message: "Keep your streak alive!",
				Action:  fmt.Sprintf("You're on a %d day streak. Don't break it!", stats.Streak),
			}, true
		}
		return Reminder{
			Kind:    ReminderGeneral,
			Icon:    "📚",
			Message: "Ready for a study session?",
			Action:  "Start learning and earn XP!",
		}, true
	case 1:
		return Reminder{
			Kind:    ReminderEncourage,
			Icon:    "⭐",
			Message: "Great start today!",
			Action:  "One more session to boost your progress?",
		}, true
	}
	return Reminder{}, false
}
