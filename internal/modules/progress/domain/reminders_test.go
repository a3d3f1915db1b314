package domain_test

import (
	"strings"
	"testing"

	"studyquest/internal/modules/progress/domain"
)

func TestReminderFor(t *testing.T) {
	t.Parallel()
	day := domain.Date{Year: 2026, Month: 6, Day: 1}

	fresh := domain.NewPlayerStats()
	if r, ok := domain.ReminderFor(fresh, day); !ok || r.Kind != domain.ReminderGeneral {
		t.Fatalf("fresh profile: %+v", r)
	}

	fresh.Streak = 2
	if r, ok := domain.ReminderFor(fresh, day); !ok || r.Kind != domain.ReminderStreak || !strings.Contains(r.Action, "2 day streak") {
		t.Fatalf("streak reminder: %+v", r)
	}

	demo := domain.DemoPlayerStats()
	if r, ok := domain.ReminderFor(demo, day); !ok || r.Kind != domain.ReminderBook || r.Message != "You haven't studied English Literature today." {
		t.Fatalf("book reminder: %+v", r)
	}

	demo.SessionHistory = []domain.SessionRecord{{BookID: "english", Date: day}}
	if r, ok := domain.ReminderFor(demo, day); !ok || r.Kind != domain.ReminderEncourage {
		t.Fatalf("encourage: %+v", r)
	}

	demo.SessionHistory = append(demo.SessionHistory, domain.SessionRecord{BookID: "math", Date: day})
	if _, ok := domain.ReminderFor(demo, day); ok {
		t.Fatalf("no reminder after two sessions today")
	}
}
