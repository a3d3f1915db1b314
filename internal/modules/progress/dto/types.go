package dto

type BookOutput struct {
	ID                string
	Title             string
	Subject           string
	Icon              string
	Progress          int
	SessionsCompleted int
}

type LevelOutput struct {
	Level       string
	Ordinal     int
	MinXP       int
	Name        string
	Emoji       string
	Description string
	Reached     bool
	XPRemaining int
}

type LevelUpOutput struct {
	From LevelOutput
	To   LevelOutput
}

type SessionOutput struct {
	ID              string
	BookID          string
	Date            string
	FocusRating     *int
	DurationMinutes int
}

type StatsOutput struct {
	TotalXP         int
	CurrentLevelXP  int
	XPToNextLevel   int
	Level           int
	Avatar          LevelOutput
	TotalSessions   int
	TotalMinutes    int
	Streak          int
	LastSessionDate string
	Books           []BookOutput
	History         []SessionOutput
}

type SynthesisOutput struct {
	Summary     string
	KeyTakeaway string
}

type ReflectionInput struct {
	Understood string
	Important  string
	Remember   string
}

type NoteOutput struct {
	ID          string
	BookID      string
	SessionID   string
	Date        string
	Reflection  ReflectionInput
	Synthesis   *SynthesisOutput
	FocusRating *int
}

type GoalOutput struct {
	ID          string
	Title       string
	Description string
	Type        string
	Target      int
	Current     int
	Completed   bool
	Ready       bool
}

type AchievementOutput struct {
	ID               string
	Title            string
	Description      string
	Icon             string
	RequirementType  string
	RequirementValue int
	Unlocked         bool
	UnlockedAt       string
}

type SettingsOutput struct {
	NotesEnabled       bool
	FocusRatingEnabled bool
	ReduceAnimations   bool
	Theme              string
}

type SettingsPatchInput struct {
	NotesEnabled       *bool
	FocusRatingEnabled *bool
	ReduceAnimations   *bool
	Theme              *string
}

type ReminderOutput struct {
	Kind    string
	Icon    string
	Message string
	Action  string
}

type HeatCellOutput struct {
	Date      string
	Weekday   string
	Count     int
	Intensity int
}

type DashboardOutput struct {
	Stats    StatsOutput
	Goals    []GoalOutput
	Reminder *ReminderOutput
	Settings SettingsOutput
}

type CompleteSessionInput struct {
	BookID      string
	FocusRating *int
}

type CompleteSessionOutput struct {
	Session    SessionOutput
	Book       BookOutput
	XPGained   int
	LevelUp    *LevelUpOutput
	ReadyGoals []GoalOutput
	Stats      StatsOutput
}

type XPOutput struct {
	XPGained int
	LevelUp  *LevelUpOutput
	Stats    StatsOutput
}

type CompleteGoalOutput struct {
	Granted bool
	XP      XPOutput
}

type AddNoteInput struct {
	BookID      string
	Reflection  ReflectionInput
	Synthesis   *SynthesisOutput
	FocusRating *int
}

type AddNoteOutput struct {
	Saved bool
	Note  NoteOutput
}

type BookNotesOutput struct {
	Book    BookOutput
	Notes   []NoteOutput
	Limit   int
	AtLimit bool
}

type ExportOutput struct {
	Dir   string
	Paths []string
}

type SyncOutput struct {
	UserID string
	// Loaded is true when a stored snapshot replaced local state, false when
	// local progress was pushed to an empty remote.
	Loaded bool
}
