package in

import (
	"context"

	"studyquest/internal/modules/progress/dto"
	progressin "studyquest/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Dashboard(ctx context.Context) (dto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) ListBooks(ctx context.Context) ([]dto.BookOutput, error) {
	return h.usecase.ListBooks(ctx)
}

func (h CLIHandler) AddBook(ctx context.Context, title string) (dto.BookOutput, error) {
	return h.usecase.AddCustomBook(ctx, title)
}

func (h CLIHandler) ImportBook(ctx context.Context, path string) (dto.BookOutput, error) {
	return h.usecase.ImportBook(ctx, path)
}

// CompleteSession records a finished session. rating 0 means unrated.
func (h CLIHandler) CompleteSession(ctx context.Context, bookID string, rating int) (dto.CompleteSessionOutput, error) {
	input := dto.CompleteSessionInput{BookID: bookID}
	if rating != 0 {
		input.FocusRating = &rating
	}
	return h.usecase.CompleteSession(ctx, input)
}

func (h CLIHandler) RateSession(ctx context.Context, sessionID string, rating int) error {
	return h.usecase.RateSession(ctx, sessionID, rating)
}

func (h CLIHandler) BookNotes(ctx context.Context, bookID string) (dto.BookNotesOutput, error) {
	return h.usecase.BookNotes(ctx, bookID)
}

func (h CLIHandler) DeleteNote(ctx context.Context, noteID string) error {
	return h.usecase.DeleteBookNote(ctx, noteID)
}

func (h CLIHandler) ExportNotes(ctx context.Context, dir string) (dto.ExportOutput, error) {
	return h.usecase.ExportNotes(ctx, dir)
}

func (h CLIHandler) ListGoals(ctx context.Context) ([]dto.GoalOutput, error) {
	return h.usecase.ListGoals(ctx)
}

func (h CLIHandler) ClaimGoal(ctx context.Context, goalID string) (dto.CompleteGoalOutput, error) {
	return h.usecase.CompleteGoal(ctx, goalID)
}

func (h CLIHandler) Achievements(ctx context.Context) ([]dto.AchievementOutput, error) {
	return h.usecase.Achievements(ctx)
}

func (h CLIHandler) Evolution(ctx context.Context) ([]dto.LevelOutput, error) {
	return h.usecase.Evolution(ctx)
}

func (h CLIHandler) Heatmap(ctx context.Context, rangeName string) ([]dto.HeatCellOutput, error) {
	return h.usecase.Heatmap(ctx, rangeName)
}

func (h CLIHandler) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	return h.usecase.Settings(ctx)
}

func (h CLIHandler) UpdateSettings(ctx context.Context, patch dto.SettingsPatchInput) (dto.SettingsOutput, error) {
	return h.usecase.UpdateSettings(ctx, patch)
}

func (h CLIHandler) Flush(ctx context.Context) error {
	return h.usecase.Flush(ctx)
}
