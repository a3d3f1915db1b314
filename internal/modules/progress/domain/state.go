package domain

import (
	"fmt"

	apperrors "studyquest/internal/platform/errors"
)

// SchemaVersion tags persisted snapshots.
const SchemaVersion = 1

// State is the whole mutable aggregate. Every mutation below returns a new
// State and never writes through to the receiver's slices.
type State struct {
	Stats    PlayerStats
	Notes    []BookNote
	Goals    []WeeklyGoal
	Settings AppSettings
}

// NewState builds the starting aggregate. demo seeds the guest profile.
func NewState(demo bool) State {
	stats := NewPlayerStats()
	if demo {
		stats = DemoPlayerStats()
	}
	return State{
		Stats:    stats,
		Notes:    []BookNote{},
		Goals:    DefaultWeeklyGoals(),
		Settings: DefaultSettings(),
	}
}

func (s State) Clone() State {
	return State{
		Stats:    s.Stats.clone(),
		Notes:    cloneNotes(s.Notes),
		Goals:    append([]WeeklyGoal(nil), s.Goals...),
		Settings: s.Settings,
	}
}

// SessionOutcome is what a completed session changed.
type SessionOutcome struct {
	Record     SessionRecord
	Book       Book
	LevelUp    *LevelUp
	ReadyGoals []WeeklyGoal
}

// CompleteSession appends a record for today, advances the streak, totals,
// book progress and weekly goals, and grants session XP. progressGain is the
// already drawn book progress increment.
func (s State) CompleteSession(sessionID, bookID string, rating *Rating, today Date, progressGain int) (State, SessionOutcome, error) {
	if _, ok := s.Stats.BookByID(bookID); !ok {
		return s, SessionOutcome{}, fmt.Errorf("%w: book %q", apperrors.ErrNotFound, bookID)
	}
	next := s.Clone()
	stats := next.Stats

	record := SessionRecord{
		ID:              sessionID,
		BookID:          bookID,
		Date:            today,
		DurationMinutes: SessionMinutes,
	}
	if rating != nil {
		r := *rating
		record.FocusRating = &r
	}

	next.Goals = UpdateGoalsOnSessionComplete(next.Goals, stats.SessionHistory, bookID, SessionMinutes)

	stats.Streak = NextStreak(stats.Streak, stats.LastSessionDate, today)
	stats.LastSessionDate = datePtr(today)
	stats.TotalSessions++
	stats.TotalMinutes += SessionMinutes
	stats.SessionHistory = append(stats.SessionHistory, record)

	var book Book
	for i := range stats.Books {
		if stats.Books[i].ID == bookID {
			stats.Books[i].SessionsCompleted++
			stats.Books[i].Progress = clampProgress(stats.Books[i].Progress + progressGain)
			book = stats.Books[i]
		}
	}

	stats, levelUp := ApplyXP(stats, XPSessionComplete)
	next.Stats = stats

	return next, SessionOutcome{
		Record:     record,
		Book:       book,
		LevelUp:    levelUp,
		ReadyGoals: ReadyGoals(next.Goals),
	}, nil
}

// AttachRating sets the focus rating of a recorded session.
func (s State) AttachRating(sessionID string, rating Rating) (State, error) {
	for i, rec := range s.Stats.SessionHistory {
		if rec.ID != sessionID {
			continue
		}
		next := s.Clone()
		r := rating
		next.Stats.SessionHistory[i].FocusRating = &r
		return next, nil
	}
	return s, fmt.Errorf("%w: session %q", apperrors.ErrNotFound, sessionID)
}

func (s State) GrantXP(amount int) (State, *LevelUp) {
	next := s.Clone()
	stats, levelUp := ApplyXP(next.Stats, amount)
	next.Stats = stats
	return next, levelUp
}

// CompleteGoal freezes goalID and grants the bonus once.
func (s State) CompleteGoal(goalID string) (State, bool, *LevelUp) {
	goals, granted := CompleteGoal(s.Goals, goalID)
	if !granted {
		return s, false, nil
	}
	next := s.Clone()
	next.Goals = goals
	stats, levelUp := ApplyXP(next.Stats, XPWeeklyGoalBonus)
	next.Stats = stats
	return next, true, levelUp
}

// AddNote appends a note tagged with the latest session. ok is false, and the
// state unchanged, when the book already holds MaxNotesPerBook notes.
func (s State) AddNote(note BookNote) (State, BookNote, bool) {
	if CountNotesForBook(s.Notes, note.BookID) >= MaxNotesPerBook {
		return s, BookNote{}, false
	}
	note.SessionID = s.Stats.LastSessionID()
	next := s.Clone()
	next.Notes = append(next.Notes, cloneNotes([]BookNote{note})...)
	return next, note, true
}

// DeleteNote removes noteID if present. removed reports whether it was.
func (s State) DeleteNote(noteID string) (State, bool) {
	for i, n := range s.Notes {
		if n.ID != noteID {
			continue
		}
		next := s.Clone()
		next.Notes = append(next.Notes[:i], next.Notes[i+1:]...)
		return next, true
	}
	return s, false
}

func (s State) AddBook(book Book) State {
	next := s.Clone()
	next.Stats.Books = append(next.Stats.Books, book)
	return next
}

func (s State) UpdateSettings(p SettingsPatch) State {
	next := s.Clone()
	next.Settings = next.Settings.Apply(p)
	return next
}

// Snapshot is the persisted form of State.
type Snapshot struct {
	SchemaVersion   int             `json:"schemaVersion"`
	TotalXP         int             `json:"totalXP"`
	CurrentLevelXP  int             `json:"currentLevelXP"`
	XPToNextLevel   int             `json:"xpToNextLevel"`
	Level           int             `json:"level"`
	AvatarLevel     AvatarLevel     `json:"avatarLevel"`
	TotalSessions   int             `json:"totalSessions"`
	TotalMinutes    int             `json:"totalMinutes"`
	Streak          int             `json:"streak"`
	LastSessionDate *Date           `json:"lastSessionDate"`
	Books           []Book          `json:"books"`
	SessionHistory  []SessionRecord `json:"sessionHistory"`
	BookNotes       []BookNote      `json:"bookNotes"`
	WeeklyGoals     []WeeklyGoal    `json:"weeklyGoals"`
	Settings        AppSettings     `json:"settings"`
}

func (s State) Snapshot() Snapshot {
	c := s.Clone()
	return Snapshot{
		SchemaVersion:   SchemaVersion,
		TotalXP:         c.Stats.TotalXP,
		CurrentLevelXP:  c.Stats.CurrentLevelXP,
		XPToNextLevel:   c.Stats.XPToNextLevel,
		Level:           c.Stats.Level,
		AvatarLevel:     c.Stats.AvatarLevel,
		TotalSessions:   c.Stats.TotalSessions,
		TotalMinutes:    c.Stats.TotalMinutes,
		Streak:          c.Stats.Streak,
		LastSessionDate: c.Stats.LastSessionDate,
		Books:           c.Stats.Books,
		SessionHistory:  c.Stats.SessionHistory,
		BookNotes:       c.Notes,
		WeeklyGoals:     c.Goals,
		Settings:        c.Settings,
	}
}

// StateFromSnapshot rebuilds State. XP derived fields are recomputed from
// TotalXP rather than trusted, and empty collections fall back to defaults.
func StateFromSnapshot(snap Snapshot) State {
	stats := PlayerStats{
		TotalSessions:   snap.TotalSessions,
		TotalMinutes:    snap.TotalMinutes,
		Books:           snap.Books,
		Streak:          snap.Streak,
		LastSessionDate: snap.LastSessionDate,
		SessionHistory:  snap.SessionHistory,
	}
	if len(stats.Books) == 0 {
		stats.Books = DefaultBooks()
	}
	if stats.SessionHistory == nil {
		stats.SessionHistory = []SessionRecord{}
	}
	state := State{
		Stats:    WithXP(stats, snap.TotalXP),
		Notes:    snap.BookNotes,
		Goals:    snap.WeeklyGoals,
		Settings: snap.Settings,
	}
	if state.Notes == nil {
		state.Notes = []BookNote{}
	}
	if len(state.Goals) == 0 {
		state.Goals = DefaultWeeklyGoals()
	}
	if state.Settings.Theme == "" {
		state.Settings.Theme = ThemeDark
	}
	return state.Clone()
}
