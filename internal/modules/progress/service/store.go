package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"studyquest/internal/modules/progress/domain"
	progressout "studyquest/internal/modules/progress/port/out"
	"studyquest/internal/platform/clock"
	apperrors "studyquest/internal/platform/errors"
	"studyquest/internal/platform/id"
	"studyquest/internal/platform/logger"
)

type Deps struct {
	Clock     clock.Clock
	IDs       id.Generator
	Jitter    Jitter
	Snapshots progressout.SnapshotStore
	Identity  progressout.IdentitySource
	Debounce  time.Duration
	Log       *logger.Logger
}

// Store owns the progress aggregate. Each mutation builds the next State from
// the current one and swaps it in under the lock, so readers only ever see
// whole states.
type Store struct {
	clock     clock.Clock
	ids       id.Generator
	jitter    Jitter
	snapshots progressout.SnapshotStore
	identity  progressout.IdentitySource
	log       *logger.Logger
	flusher   *Flusher
	evaluator *domain.Evaluator

	mu    sync.RWMutex
	state domain.State
}

func NewStore(deps Deps, initial domain.State) *Store {
	s := &Store{
		clock:     deps.Clock,
		ids:       deps.IDs,
		jitter:    deps.Jitter,
		snapshots: deps.Snapshots,
		identity:  deps.Identity,
		log:       deps.Log,
		evaluator: domain.NewEvaluator(),
		state:     initial.Clone(),
	}
	if s.clock == nil {
		s.clock = clock.SystemClock{}
	}
	if s.ids == nil {
		s.ids = id.UUID{}
	}
	if s.jitter == nil {
		s.jitter = RandomJitter{}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.snapshots != nil {
		s.flusher = NewFlusher(deps.Debounce, s.saveCurrent, s.log)
	}
	return s
}

// State returns a deep copy of the current aggregate.
func (s *Store) State() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Today() domain.Date {
	return domain.DateOf(s.clock.Now())
}

// commit swaps in next and schedules a flush when someone is signed in.
func (s *Store) commit(next domain.State) {
	s.state = next
	if s.flusher == nil || s.identity == nil {
		return
	}
	if _, ok := s.identity.CurrentUserID(); ok {
		s.flusher.Schedule()
	}
}

func (s *Store) CompleteSession(_ context.Context, bookID string, rating *domain.Rating) (domain.SessionOutcome, domain.PlayerStats, error) {
	sessionID := s.ids.New()
	today := s.Today()
	gain := s.jitter.ProgressGain()

	s.mu.Lock()
	defer s.mu.Unlock()
	next, outcome, err := s.state.CompleteSession(sessionID, bookID, rating, today, gain)
	if err != nil {
		return domain.SessionOutcome{}, domain.PlayerStats{}, err
	}
	s.commit(next)
	return outcome, next.Stats, nil
}

func (s *Store) AttachRating(_ context.Context, sessionID string, rating domain.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.AttachRating(sessionID, rating)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

func (s *Store) grant(amount int) (*domain.LevelUp, domain.PlayerStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, levelUp := s.state.GrantXP(amount)
	s.commit(next)
	return levelUp, next.Stats
}

func (s *Store) CompleteReflection(_ context.Context) (*domain.LevelUp, domain.PlayerStats) {
	return s.grant(domain.XPReflection)
}

func (s *Store) CompleteSynthesis(_ context.Context) (*domain.LevelUp, domain.PlayerStats) {
	return s.grant(domain.XPSynthesis)
}

// CompleteGoal grants the weekly bonus once per goal.
func (s *Store) CompleteGoal(_ context.Context, goalID string) (bool, *domain.LevelUp, domain.PlayerStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, granted, levelUp := s.state.CompleteGoal(goalID)
	if granted {
		s.commit(next)
	}
	return granted, levelUp, next.Stats
}

// AddBookNote returns ok=false without changing anything when the book is
// at the note cap.
func (s *Store) AddBookNote(_ context.Context, bookID string, reflection domain.Reflection, synthesis *domain.Synthesis, rating *domain.Rating) (domain.BookNote, bool, error) {
	note := domain.BookNote{
		ID:          s.ids.New(),
		BookID:      bookID,
		Date:        s.Today(),
		Reflection:  reflection,
		Synthesis:   synthesis,
		FocusRating: rating,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Stats.BookByID(bookID); !ok {
		return domain.BookNote{}, false, fmt.Errorf("%w: book %q", apperrors.ErrNotFound, bookID)
	}
	next, saved, ok := s.state.AddNote(note)
	if !ok {
		return domain.BookNote{}, false, nil
	}
	s.commit(next)
	return saved, true, nil
}

// DeleteBookNote is idempotent; unknown ids are ignored.
func (s *Store) DeleteBookNote(_ context.Context, noteID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next, removed := s.state.DeleteNote(noteID); removed {
		s.commit(next)
	}
}

func (s *Store) AddCustomBook(_ context.Context, title string) (domain.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Book{}, fmt.Errorf("%w: book title is required", apperrors.ErrInvalidInput)
	}
	book := domain.Book{
		ID:      "custom-" + s.ids.New(),
		Title:   title,
		Subject: domain.SubjectCustom,
		Icon:    domain.CustomBookIcon,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(s.state.AddBook(book))
	return book, nil
}

func (s *Store) UpdateSettings(_ context.Context, patch domain.SettingsPatch) domain.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.UpdateSettings(patch)
	s.commit(next)
	return next.Settings
}

func (s *Store) Achievements() []domain.Achievement {
	state := s.State()
	return s.evaluator.Evaluate(state.Stats, state.Notes)
}

func (s *Store) Synthesize(r domain.Reflection) domain.Synthesis {
	return domain.Synthesize(r, s.jitter.Pick)
}

// Replace swaps the whole aggregate without scheduling a flush.
func (s *Store) Replace(state domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
}

// SyncIdentity reconciles local state with userID's stored snapshot. A stored
// snapshot with at least one session replaces local state (loaded=true);
// otherwise local progress is written to the store.
func (s *Store) SyncIdentity(ctx context.Context, userID string) (bool, error) {
	if s.snapshots == nil {
		return false, nil
	}
	snap, found, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("load progress: %w", err)
	}
	if found && snap.TotalSessions > 0 {
		s.Replace(domain.StateFromSnapshot(snap))
		return true, nil
	}
	if err := s.snapshots.Save(ctx, userID, s.State().Snapshot()); err != nil {
		return false, fmt.Errorf("push guest progress: %w", err)
	}
	return false, nil
}

// ResetToGuest drops any pending flush for the previous identity and swaps in
// the demo profile.
func (s *Store) ResetToGuest(ctx context.Context) error {
	if s.flusher != nil {
		if err := s.flusher.FlushNow(ctx); err != nil {
			s.log.Warn("flush before sign out failed", "error", err)
		}
	}
	s.Replace(domain.NewState(true))
	return nil
}

func (s *Store) saveCurrent(ctx context.Context) error {
	if s.identity == nil {
		return nil
	}
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		return nil
	}
	snap := s.State().Snapshot()
	if err := s.snapshots.Save(ctx, userID, snap); err != nil {
		return fmt.Errorf("save progress for %s: %w", userID, err)
	}
	s.log.Debug("progress flushed", "user_id", userID, "total_xp", snap.TotalXP)
	return nil
}

// Flush writes the current state now when someone is signed in.
func (s *Store) Flush(ctx context.Context) error {
	if s.flusher == nil {
		return nil
	}
	return s.flusher.FlushNow(ctx)
}

// Close drains the flusher. The store stays readable.
func (s *Store) Close(ctx context.Context) error {
	if s.flusher == nil {
		return nil
	}
	return s.flusher.Close(ctx)
}
