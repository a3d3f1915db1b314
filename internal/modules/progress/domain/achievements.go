package domain

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

type RequirementType string

const (
	RequireSessions RequirementType = "sessions"
	RequireMinutes  RequirementType = "minutes"
	RequireBooks    RequirementType = "books"
	RequireStreak   RequirementType = "streak"
	RequireNotes    RequirementType = "notes"
)

type Requirement struct {
	Type  RequirementType `json:"type"`
	Value int             `json:"value"`
}

type Achievement struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Requirement Requirement `json:"requirement"`
	Unlocked    bool        `json:"unlocked"`
	UnlockedAt  *Date       `json:"unlockedAt,omitempty"`
}

var achievementDefs = []Achievement{
	{ID: "first-session", Title: "First Steps", Description: "Complete your first focus session", Icon: "🌱", Requirement: Requirement{RequireSessions, 1}},
	{ID: "five-sessions", Title: "Getting Started", Description: "Complete 5 focus sessions", Icon: "🔥", Requirement: Requirement{RequireSessions, 5}},
	{ID: "ten-sessions", Title: "Dedicated", Description: "Complete 10 focus sessions", Icon: "💪", Requirement: Requirement{RequireSessions, 10}},
	{ID: "focused-hour", Title: "Focused Hour", Description: "Study for 60 minutes in total", Icon: "⏰", Requirement: Requirement{RequireMinutes, 60}},
	{ID: "marathon", Title: "Marathon", Description: "Study for 300 minutes in total", Icon: "🏃", Requirement: Requirement{RequireMinutes, 300}},
	{ID: "explorer", Title: "Explorer", Description: "Study 3 different books", Icon: "🧭", Requirement: Requirement{RequireBooks, 3}},
	{ID: "polymath", Title: "Polymath", Description: "Study 5 different books", Icon: "🎓", Requirement: Requirement{RequireBooks, 5}},
	{ID: "on-fire", Title: "On Fire", Description: "Reach a 3 day streak", Icon: "⚡", Requirement: Requirement{RequireStreak, 3}},
	{ID: "unstoppable", Title: "Unstoppable", Description: "Reach a 7 day streak", Icon: "🌟", Requirement: Requirement{RequireStreak, 7}},
	{ID: "first-note", Title: "Note Taker", Description: "Save your first reflection note", Icon: "📝", Requirement: Requirement{RequireNotes, 1}},
	{ID: "scribe", Title: "Scribe", Description: "Save 10 reflection notes", Icon: "✍️", Requirement: Requirement{RequireNotes, 10}},
}

// EvaluateAchievements derives every achievement from scratch. It has no
// side effects and equal inputs always give equal output.
//
// The streak aggregate is the longest run found in the history, floored at the
// current streak, so a broken streak does not lock an earned badge again.
// UnlockedAt is the day the history first met the requirement, or nil when
// the qualifying activity predates the recorded history.
func EvaluateAchievements(stats PlayerStats, notes []BookNote) []Achievement {
	m := measure(stats, notes)
	out := make([]Achievement, len(achievementDefs))
	for i, def := range achievementDefs {
		a := def
		value := m.aggregate(def.Requirement.Type)
		a.Unlocked = value >= def.Requirement.Value
		if a.Unlocked {
			a.UnlockedAt = m.reachedOn(def.Requirement)
		}
		out[i] = a
	}
	return out
}

type measures struct {
	stats         PlayerStats
	notes         []BookNote
	bestStreak    int
	sessionOffset int
	minuteOffset  int
}

func measure(stats PlayerStats, notes []BookNote) measures {
	m := measures{stats: stats, notes: notes}
	m.sessionOffset = max(stats.TotalSessions-len(stats.SessionHistory), 0)
	recorded := 0
	for _, rec := range stats.SessionHistory {
		recorded += rec.DurationMinutes
	}
	m.minuteOffset = max(stats.TotalMinutes-recorded, 0)
	m.bestStreak = max(longestRun(stats.SessionHistory), stats.Streak)
	return m
}

func (m measures) aggregate(t RequirementType) int {
	switch t {
	case RequireSessions:
		return m.stats.TotalSessions
	case RequireMinutes:
		return m.stats.TotalMinutes
	case RequireBooks:
		return len(m.stats.StudiedBookIDs())
	case RequireStreak:
		return m.bestStreak
	case RequireNotes:
		return len(m.notes)
	}
	return 0
}

func (m measures) reachedOn(req Requirement) *Date {
	history := m.stats.SessionHistory
	switch req.Type {
	case RequireSessions:
		idx := req.Value - m.sessionOffset - 1
		if idx >= 0 && idx < len(history) {
			return datePtr(history[idx].Date)
		}
	case RequireMinutes:
		total := m.minuteOffset
		if total >= req.Value {
			return nil
		}
		for _, rec := range history {
			total += rec.DurationMinutes
			if total >= req.Value {
				return datePtr(rec.Date)
			}
		}
	case RequireBooks:
		seen := map[string]struct{}{}
		for _, rec := range history {
			seen[rec.BookID] = struct{}{}
			if len(seen) >= req.Value {
				return datePtr(rec.Date)
			}
		}
	case RequireStreak:
		run := 0
		var prev *Date
		for _, rec := range history {
			run = NextStreak(run, prev, rec.Date)
			d := rec.Date
			prev = &d
			if run >= req.Value {
				return datePtr(rec.Date)
			}
		}
	case RequireNotes:
		if req.Value >= 1 && req.Value <= len(m.notes) {
			return datePtr(m.notes[req.Value-1].Date)
		}
	}
	return nil
}

func longestRun(history []SessionRecord) int {
	best, run := 0, 0
	var prev *Date
	for _, rec := range history {
		run = NextStreak(run, prev, rec.Date)
		d := rec.Date
		prev = &d
		best = max(best, run)
	}
	return best
}

func datePtr(d Date) *Date {
	return &d
}

// Evaluator memoizes EvaluateAchievements on a hash of its inputs. Results
// are identical to a fresh evaluation.
type Evaluator struct {
	mu     sync.Mutex
	key    uint64
	cached []Achievement
	hits   int
}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func (e *Evaluator) Evaluate(stats PlayerStats, notes []BookNote) []Achievement {
	key := fingerprint(stats, notes)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cached != nil && e.key == key {
		e.hits++
		return cloneAchievements(e.cached)
	}
	e.key = key
	e.cached = EvaluateAchievements(stats, notes)
	return cloneAchievements(e.cached)
}

// Hits counts evaluations served from the cache.
func (e *Evaluator) Hits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hits
}

func fingerprint(stats PlayerStats, notes []BookNote) uint64 {
	d := xxhash.New()
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	putStr := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	putInt(stats.TotalSessions)
	putInt(stats.TotalMinutes)
	putInt(stats.Streak)
	putInt(len(stats.SessionHistory))
	for _, rec := range stats.SessionHistory {
		putStr(rec.BookID)
		putStr(rec.Date.String())
		putInt(rec.DurationMinutes)
	}
	putInt(len(notes))
	for _, n := range notes {
		putStr(n.ID)
		putStr(n.Date.String())
	}
	return d.Sum64()
}

func cloneAchievements(in []Achievement) []Achievement {
	out := make([]Achievement, len(in))
	for i, a := range in {
		out[i] = a
		if a.UnlockedAt != nil {
			out[i].UnlockedAt = datePtr(*a.UnlockedAt)
		}
	}
	return out
}
