package in

import (
	"context"

	"studyquest/internal/modules/progress/dto"
)

type Usecase interface {
	Dashboard(ctx context.Context) (dto.DashboardOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Settings(ctx context.Context) (dto.SettingsOutput, error)
	UpdateSettings(ctx context.Context, input dto.SettingsPatchInput) (dto.SettingsOutput, error)

	ListBooks(ctx context.Context) ([]dto.BookOutput, error)
	AddCustomBook(ctx context.Context, title string) (dto.BookOutput, error)
	ImportBook(ctx context.Context, path string) (dto.BookOutput, error)

	CompleteSession(ctx context.Context, input dto.CompleteSessionInput) (dto.CompleteSessionOutput, error)
	RateSession(ctx context.Context, sessionID string, rating int) error
	CompleteReflection(ctx context.Context) (dto.XPOutput, error)
	CompleteSynthesis(ctx context.Context) (dto.XPOutput, error)
	Synthesize(ctx context.Context, input dto.ReflectionInput) (dto.SynthesisOutput, error)

	AddBookNote(ctx context.Context, input dto.AddNoteInput) (dto.AddNoteOutput, error)
	DeleteBookNote(ctx context.Context, noteID string) error
	BookNotes(ctx context.Context, bookID string) (dto.BookNotesOutput, error)
	ExportNotes(ctx context.Context, dir string) (dto.ExportOutput, error)

	ListGoals(ctx context.Context) ([]dto.GoalOutput, error)
	CompleteGoal(ctx context.Context, goalID string) (dto.CompleteGoalOutput, error)
	Achievements(ctx context.Context) ([]dto.AchievementOutput, error)
	Evolution(ctx context.Context) ([]dto.LevelOutput, error)
	Heatmap(ctx context.Context, rangeName string) ([]dto.HeatCellOutput, error)

	SyncIdentity(ctx context.Context, userID string) (dto.SyncOutput, error)
	ResetToGuest(ctx context.Context) error
	Flush(ctx context.Context) error
}
