package domain

import (
	"fmt"

	apperrors "studyquest/internal/platform/errors"
)

// SessionMinutes is the canonical length credited for every focus session.
const SessionMinutes = 30

type Subject string

const (
	SubjectEnglish   Subject = "english"
	SubjectGerman    Subject = "german"
	SubjectMath      Subject = "math"
	SubjectGeography Subject = "geography"
	SubjectCustom    Subject = "custom"
)

const CustomBookIcon = "📖"

type Book struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Subject           Subject `json:"subject"`
	Icon              string  `json:"icon"`
	Progress          int     `json:"progress"`
	SessionsCompleted int     `json:"sessionsCompleted"`
}

// Rating is a 1..5 self-assessed focus score.
type Rating int

func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return 0, fmt.Errorf("%w: focus rating must be 1-5, got %d", apperrors.ErrInvalidInput, v)
	}
	return Rating(v), nil
}

type SessionRecord struct {
	ID              string  `json:"id"`
	BookID          string  `json:"bookId"`
	Date            Date    `json:"date"`
	FocusRating     *Rating `json:"focusRating,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
}

type PlayerStats struct {
	TotalXP         int             `json:"totalXP"`
	CurrentLevelXP  int             `json:"currentLevelXP"`
	XPToNextLevel   int             `json:"xpToNextLevel"`
	Level           int             `json:"level"`
	AvatarLevel     AvatarLevel     `json:"avatarLevel"`
	TotalSessions   int             `json:"totalSessions"`
	TotalMinutes    int             `json:"totalMinutes"`
	Books           []Book          `json:"books"`
	Streak          int             `json:"streak"`
	LastSessionDate *Date           `json:"lastSessionDate"`
	SessionHistory  []SessionRecord `json:"sessionHistory"`
}

func DefaultBooks() []Book {
	return []Book{
		{ID: "english", Title: "English Literature", Subject: SubjectEnglish, Icon: "📚"},
		{ID: "german", Title: "German Language", Subject: SubjectGerman, Icon: "🇩🇪"},
		{ID: "math", Title: "Mathematics", Subject: SubjectMath, Icon: "📐"},
		{ID: "geography", Title: "World Geography", Subject: SubjectGeography, Icon: "🌍"},
	}
}

// NewPlayerStats is a fresh profile with zero XP and the default books.
func NewPlayerStats() PlayerStats {
	return WithXP(PlayerStats{Books: DefaultBooks()}, 0)
}

// DemoPlayerStats is the ephemeral guest profile: one finished session on
// English Literature worth 45 XP.
func DemoPlayerStats() PlayerStats {
	books := DefaultBooks()
	for i := range books {
		if books[i].ID == "english" {
			books[i].Progress = 8
			books[i].SessionsCompleted = 1
		}
	}
	stats := PlayerStats{
		TotalSessions: 1,
		TotalMinutes:  SessionMinutes,
		Books:         books,
	}
	return WithXP(stats, 45)
}

// WithXP sets TotalXP and recomputes every XP derived field.
func WithXP(stats PlayerStats, totalXP int) PlayerStats {
	level := AvatarLevelForXP(totalXP)
	floor := CurrentLevelFloor(level)
	stats.TotalXP = totalXP
	stats.AvatarLevel = level
	stats.Level = Ordinal(level)
	stats.CurrentLevelXP = totalXP - floor
	stats.XPToNextLevel = NextLevelFloor(level) - floor
	return stats
}

// ApplyXP adds amount and reports a level-up when the tier changed.
func ApplyXP(stats PlayerStats, amount int) (PlayerStats, *LevelUp) {
	before := AvatarLevelForXP(stats.TotalXP)
	next := WithXP(stats, stats.TotalXP+amount)
	if next.AvatarLevel == before {
		return next, nil
	}
	return next, &LevelUp{From: before, To: next.AvatarLevel}
}

func (s PlayerStats) BookByID(id string) (Book, bool) {
	for _, b := range s.Books {
		if b.ID == id {
			return b, true
		}
	}
	return Book{}, false
}

// StudiedBookIDs is the distinct set of books present in the history.
func (s PlayerStats) StudiedBookIDs() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Books))
	for _, rec := range s.SessionHistory {
		set[rec.BookID] = struct{}{}
	}
	return set
}

// LastSessionID is the id of the most recent record, or "".
func (s PlayerStats) LastSessionID() string {
	if len(s.SessionHistory) == 0 {
		return ""
	}
	return s.SessionHistory[len(s.SessionHistory)-1].ID
}

func (s PlayerStats) clone() PlayerStats {
	out := s
	out.Books = append([]Book(nil), s.Books...)
	out.SessionHistory = make([]SessionRecord, len(s.SessionHistory))
	for i, rec := range s.SessionHistory {
		out.SessionHistory[i] = rec
		if rec.FocusRating != nil {
			r := *rec.FocusRating
			out.SessionHistory[i].FocusRating = &r
		}
	}
	if s.LastSessionDate != nil {
		d := *s.LastSessionDate
		out.LastSessionDate = &d
	}
	return out
}

func clampProgress(v int) int {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}
