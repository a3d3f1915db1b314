package domain_test

import (
	"testing"

	"studyquest/internal/modules/progress/domain"
)

func goalByID(t *testing.T, goals []domain.WeeklyGoal, id string) domain.WeeklyGoal {
	t.Helper()
	for _, g := range goals {
		if g.ID == id {
			return g
		}
	}
	t.Fatalf("goal %s not found", id)
	return domain.WeeklyGoal{}
}

func TestUpdateGoalsCountsDistinctBooks(t *testing.T) {
	t.Parallel()
	day := domain.Date{Year: 2026, Month: 3, Day: 2}
	goals := domain.DefaultWeeklyGoals()
	var history []domain.SessionRecord
	for _, book := range []string{"math", "math", "german", "math", "german"} {
		goals = domain.UpdateGoalsOnSessionComplete(goals, history, book, 30)
		history = append(history, domain.SessionRecord{BookID: book, Date: day, DurationMinutes: 30})
	}

	if got := goalByID(t, goals, "weekly-books").Current; got != 2 {
		t.Fatalf("books goal must equal distinct set size 2, got %d", got)
	}
	if got := goalByID(t, goals, "weekly-sessions").Current; got != 5 {
		t.Fatalf("sessions goal: got %d", got)
	}
	if got := goalByID(t, goals, "weekly-minutes").Current; got != 150 {
		t.Fatalf("minutes goal: got %d", got)
	}
	ready := domain.ReadyGoals(goals)
	if len(ready) != 2 {
		t.Fatalf("expected sessions and minutes goals ready, got %+v", ready)
	}
	if goalByID(t, goals, "weekly-sessions").Completed {
		t.Fatalf("tracker must never auto-complete")
	}
}

func TestCompletedGoalIsFrozen(t *testing.T) {
	t.Parallel()
	goals := domain.DefaultWeeklyGoals()
	goals, granted := domain.CompleteGoal(goals, "weekly-sessions")
	if !granted {
		t.Fatalf("first completion must grant")
	}
	goals, granted = domain.CompleteGoal(goals, "weekly-sessions")
	if granted {
		t.Fatalf("second completion must not grant")
	}
	if _, granted := domain.CompleteGoal(goals, "nope"); granted {
		t.Fatalf("unknown goal must not grant")
	}
	goals = domain.UpdateGoalsOnSessionComplete(goals, nil, "math", 30)
	if got := goalByID(t, goals, "weekly-sessions").Current; got != 0 {
		t.Fatalf("completed goal must not be re-evaluated, got %d", got)
	}
}

func TestUpdateGoalsDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	goals := domain.DefaultWeeklyGoals()
	_ = domain.UpdateGoalsOnSessionComplete(goals, nil, "math", 30)
	if goals[0].Current != 0 {
		t.Fatalf("input slice mutated")
	}
}
