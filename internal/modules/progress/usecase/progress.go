package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"studyquest/internal/modules/progress/domain"
	"studyquest/internal/modules/progress/dto"
	progressin "studyquest/internal/modules/progress/port/in"
	progressout "studyquest/internal/modules/progress/port/out"
	"studyquest/internal/modules/progress/service"
	apperrors "studyquest/internal/platform/errors"
)

type Interactor struct {
	store    *service.Store
	exporter progressout.NoteExporter
	metadata progressout.BookMetadataReader
}

func NewInteractor(store *service.Store, exporter progressout.NoteExporter, metadata progressout.BookMetadataReader) progressin.Usecase {
	return &Interactor{store: store, exporter: exporter, metadata: metadata}
}

func (i *Interactor) Dashboard(_ context.Context) (dto.DashboardOutput, error) {
	state := i.store.State()
	out := dto.DashboardOutput{
		Stats:    toStatsOutput(state.Stats),
		Goals:    toGoalOutputs(state.Goals),
		Settings: toSettingsOutput(state.Settings),
	}
	if r, ok := domain.ReminderFor(state.Stats, i.store.Today()); ok {
		out.Reminder = &dto.ReminderOutput{Kind: string(r.Kind), Icon: r.Icon, Message: r.Message, Action: r.Action}
	}
	return out, nil
}

func (i *Interactor) Stats(_ context.Context) (dto.StatsOutput, error) {
	return toStatsOutput(i.store.State().Stats), nil
}

func (i *Interactor) Settings(_ context.Context) (dto.SettingsOutput, error) {
	return toSettingsOutput(i.store.State().Settings), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.SettingsPatchInput) (dto.SettingsOutput, error) {
	patch := domain.SettingsPatch{
		NotesEnabled:       input.NotesEnabled,
		FocusRatingEnabled: input.FocusRatingEnabled,
		ReduceAnimations:   input.ReduceAnimations,
	}
	if input.Theme != nil {
		theme, err := domain.ParseTheme(*input.Theme)
		if err != nil {
			return dto.SettingsOutput{}, err
		}
		patch.Theme = &theme
	}
	return toSettingsOutput(i.store.UpdateSettings(ctx, patch)), nil
}

func (i *Interactor) ListBooks(_ context.Context) ([]dto.BookOutput, error) {
	return toBookOutputs(i.store.State().Stats.Books), nil
}

func (i *Interactor) AddCustomBook(ctx context.Context, title string) (dto.BookOutput, error) {
	book, err := i.store.AddCustomBook(ctx, title)
	if err != nil {
		return dto.BookOutput{}, err
	}
	return toBookOutput(book), nil
}

// ImportBook adds a custom book titled from the file's metadata, falling back
// to the file name.
func (i *Interactor) ImportBook(ctx context.Context, path string) (dto.BookOutput, error) {
	if strings.TrimSpace(path) == "" {
		return dto.BookOutput{}, fmt.Errorf("%w: path is required", apperrors.ErrInvalidInput)
	}
	title := ""
	if i.metadata != nil {
		t, err := i.metadata.ReadTitle(ctx, path)
		if err != nil {
			return dto.BookOutput{}, fmt.Errorf("read book metadata: %w", err)
		}
		title = t
	}
	if strings.TrimSpace(title) == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return i.AddCustomBook(ctx, title)
}

func parseRating(v *int) (*domain.Rating, error) {
	if v == nil {
		return nil, nil
	}
	r, err := domain.NewRating(*v)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (i *Interactor) CompleteSession(ctx context.Context, input dto.CompleteSessionInput) (dto.CompleteSessionOutput, error) {
	rating, err := parseRating(input.FocusRating)
	if err != nil {
		return dto.CompleteSessionOutput{}, err
	}
	outcome, stats, err := i.store.CompleteSession(ctx, input.BookID, rating)
	if err != nil {
		return dto.CompleteSessionOutput{}, err
	}
	return dto.CompleteSessionOutput{
		Session:    toSessionOutput(outcome.Record),
		Book:       toBookOutput(outcome.Book),
		XPGained:   domain.XPSessionComplete,
		LevelUp:    toLevelUpOutput(outcome.LevelUp, stats.TotalXP),
		ReadyGoals: toGoalOutputs(outcome.ReadyGoals),
		Stats:      toStatsOutput(stats),
	}, nil
}

func (i *Interactor) RateSession(ctx context.Context, sessionID string, rating int) error {
	r, err := domain.NewRating(rating)
	if err != nil {
		return err
	}
	if sessionID == "" {
		sessionID = i.store.State().Stats.LastSessionID()
	}
	return i.store.AttachRating(ctx, sessionID, r)
}

func (i *Interactor) CompleteReflection(ctx context.Context) (dto.XPOutput, error) {
	levelUp, stats := i.store.CompleteReflection(ctx)
	return dto.XPOutput{XPGained: domain.XPReflection, LevelUp: toLevelUpOutput(levelUp, stats.TotalXP), Stats: toStatsOutput(stats)}, nil
}

func (i *Interactor) CompleteSynthesis(ctx context.Context) (dto.XPOutput, error) {
	levelUp, stats := i.store.CompleteSynthesis(ctx)
	return dto.XPOutput{XPGained: domain.XPSynthesis, LevelUp: toLevelUpOutput(levelUp, stats.TotalXP), Stats: toStatsOutput(stats)}, nil
}

func (i *Interactor) Synthesize(_ context.Context, input dto.ReflectionInput) (dto.SynthesisOutput, error) {
	return toSynthesisOutput(i.store.Synthesize(toReflection(input))), nil
}

func (i *Interactor) AddBookNote(ctx context.Context, input dto.AddNoteInput) (dto.AddNoteOutput, error) {
	rating, err := parseRating(input.FocusRating)
	if err != nil {
		return dto.AddNoteOutput{}, err
	}
	var synthesis *domain.Synthesis
	if input.Synthesis != nil {
		synthesis = &domain.Synthesis{Summary: input.Synthesis.Summary, KeyTakeaway: input.Synthesis.KeyTakeaway}
	}
	note, saved, err := i.store.AddBookNote(ctx, input.BookID, toReflection(input.Reflection), synthesis, rating)
	if err != nil {
		return dto.AddNoteOutput{}, err
	}
	if !saved {
		return dto.AddNoteOutput{Saved: false}, nil
	}
	return dto.AddNoteOutput{Saved: true, Note: toNoteOutput(note)}, nil
}

func (i *Interactor) DeleteBookNote(ctx context.Context, noteID string) error {
	i.store.DeleteBookNote(ctx, noteID)
	return nil
}

func (i *Interactor) BookNotes(_ context.Context, bookID string) (dto.BookNotesOutput, error) {
	state := i.store.State()
	book, ok := state.Stats.BookByID(bookID)
	if !ok {
		return dto.BookNotesOutput{}, fmt.Errorf("%w: book %q", apperrors.ErrNotFound, bookID)
	}
	notes := domain.NotesForBook(state.Notes, bookID)
	out := dto.BookNotesOutput{
		Book:    toBookOutput(book),
		Notes:   make([]dto.NoteOutput, len(notes)),
		Limit:   domain.MaxNotesPerBook,
		AtLimit: len(notes) >= domain.MaxNotesPerBook,
	}
	for idx, n := range notes {
		out.Notes[idx] = toNoteOutput(n)
	}
	return out, nil
}

func (i *Interactor) ExportNotes(ctx context.Context, dir string) (dto.ExportOutput, error) {
	if i.exporter == nil {
		return dto.ExportOutput{}, fmt.Errorf("note export is not configured")
	}
	if strings.TrimSpace(dir) == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: export directory is required", apperrors.ErrInvalidInput)
	}
	state := i.store.State()
	paths, err := i.exporter.Export(ctx, dir, state.Stats.Books, state.Notes)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("export notes: %w", err)
	}
	return dto.ExportOutput{Dir: dir, Paths: paths}, nil
}

func (i *Interactor) ListGoals(_ context.Context) ([]dto.GoalOutput, error) {
	return toGoalOutputs(i.store.State().Goals), nil
}

func (i *Interactor) CompleteGoal(ctx context.Context, goalID string) (dto.CompleteGoalOutput, error) {
	granted, levelUp, stats := i.store.CompleteGoal(ctx, goalID)
	out := dto.CompleteGoalOutput{Granted: granted, XP: dto.XPOutput{Stats: toStatsOutput(stats)}}
	if granted {
		out.XP.XPGained = domain.XPWeeklyGoalBonus
		out.XP.LevelUp = toLevelUpOutput(levelUp, stats.TotalXP)
	}
	return out, nil
}

func (i *Interactor) Achievements(_ context.Context) ([]dto.AchievementOutput, error) {
	list := i.store.Achievements()
	out := make([]dto.AchievementOutput, len(list))
	for idx, a := range list {
		out[idx] = toAchievementOutput(a)
	}
	return out, nil
}

// Evolution lists every tier with reached flags for the current XP.
func (i *Interactor) Evolution(_ context.Context) ([]dto.LevelOutput, error) {
	totalXP := i.store.State().Stats.TotalXP
	levels := domain.Levels()
	out := make([]dto.LevelOutput, len(levels))
	for idx, info := range levels {
		out[idx] = toLevelOutput(info, totalXP)
	}
	return out, nil
}

func (i *Interactor) Heatmap(_ context.Context, rangeName string) ([]dto.HeatCellOutput, error) {
	var r domain.HeatmapRange
	switch strings.ToLower(strings.TrimSpace(rangeName)) {
	case "", string(domain.RangeMonth):
		r = domain.RangeMonth
	case string(domain.RangeYear):
		r = domain.RangeYear
	default:
		return nil, fmt.Errorf("%w: heatmap range must be month or year", apperrors.ErrInvalidInput)
	}
	cells := domain.Heatmap(i.store.State().Stats.SessionHistory, i.store.Today(), r)
	out := make([]dto.HeatCellOutput, len(cells))
	for idx, c := range cells {
		out[idx] = dto.HeatCellOutput{
			Date:      c.Date.String(),
			Weekday:   c.Date.Weekday().String()[:3],
			Count:     c.Count,
			Intensity: c.Intensity(),
		}
	}
	return out, nil
}

func (i *Interactor) SyncIdentity(ctx context.Context, userID string) (dto.SyncOutput, error) {
	if userID == "" {
		return dto.SyncOutput{}, apperrors.ErrNoIdentity
	}
	loaded, err := i.store.SyncIdentity(ctx, userID)
	if err != nil {
		return dto.SyncOutput{}, err
	}
	return dto.SyncOutput{UserID: userID, Loaded: loaded}, nil
}

func (i *Interactor) ResetToGuest(ctx context.Context) error {
	return i.store.ResetToGuest(ctx)
}

func (i *Interactor) Flush(ctx context.Context) error {
	return i.store.Flush(ctx)
}
