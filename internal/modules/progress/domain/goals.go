package domain

type GoalType string

const (
	GoalSessions GoalType = "sessions"
	GoalBooks    GoalType = "books"
	GoalMinutes  GoalType = "minutes"
)

type WeeklyGoal struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Target      int      `json:"target"`
	Current     int      `json:"current"`
	Completed   bool     `json:"completed"`
	Type        GoalType `json:"type"`
}

func (g WeeklyGoal) Ready() bool {
	return !g.Completed && g.Current >= g.Target
}

func DefaultWeeklyGoals() []WeeklyGoal {
	return []WeeklyGoal{
		{ID: "weekly-sessions", Title: "Focus Five", Description: "Complete 5 focus sessions", Target: 5, Type: GoalSessions},
		{ID: "weekly-books", Title: "Explorer", Description: "Study 3 different books", Target: 3, Type: GoalBooks},
		{ID: "weekly-minutes", Title: "Deep Work", Description: "Focus for 120 minutes", Target: 120, Type: GoalMinutes},
	}
}

// UpdateGoalsOnSessionComplete advances every open goal for one finished
// session on bookID. history is the session list before this session was
// appended. Completed goals are left untouched and nothing is auto-completed.
func UpdateGoalsOnSessionComplete(goals []WeeklyGoal, history []SessionRecord, bookID string, minutes int) []WeeklyGoal {
	out := make([]WeeklyGoal, len(goals))
	copy(out, goals)

	var distinct int
	for i := range out {
		if out[i].Completed {
			continue
		}
		switch out[i].Type {
		case GoalSessions:
			out[i].Current++
		case GoalMinutes:
			out[i].Current += minutes
		case GoalBooks:
			if distinct == 0 {
				set := map[string]struct{}{bookID: {}}
				for _, rec := range history {
					set[rec.BookID] = struct{}{}
				}
				distinct = len(set)
			}
			out[i].Current = distinct
		}
	}
	return out
}

// CompleteGoal freezes the goal. granted is true only on the first call for
// an open goal; the caller grants the bonus XP when it is.
func CompleteGoal(goals []WeeklyGoal, goalID string) ([]WeeklyGoal, bool) {
	out := make([]WeeklyGoal, len(goals))
	copy(out, goals)
	for i := range out {
		if out[i].ID != goalID {
			continue
		}
		if out[i].Completed {
			return out, false
		}
		out[i].Completed = true
		return out, true
	}
	return out, false
}

// ReadyGoals lists goals that reached their target but are not completed.
func ReadyGoals(goals []WeeklyGoal) []WeeklyGoal {
	var out []WeeklyGoal
	for _, g := range goals {
		if g.Ready() {
			out = append(out, g)
		}
	}
	return out
}
