package service

import (
	"context"
	"fmt"
	"sync"

	entitlementdomain "studyquest/internal/modules/entitlement/domain"
	entitlementdto "studyquest/internal/modules/entitlement/dto"
	entitlementin "studyquest/internal/modules/entitlement/port/in"
	"studyquest/internal/modules/flow/domain"
	"studyquest/internal/modules/flow/dto"
	progressdto "studyquest/internal/modules/progress/dto"
	progressin "studyquest/internal/modules/progress/port/in"
	apperrors "studyquest/internal/platform/errors"
	"studyquest/internal/platform/logger"
)

// attempt is the session being walked through focus, rating, reflection
// and synthesis. It only becomes progress through the effects.
type attempt struct {
	bookID     string
	sessionID  string
	rating     *int
	reflection progressdto.ReflectionInput
	synthesis  *progressdto.SynthesisOutput
}

type Navigator struct {
	mu          sync.Mutex
	screen      domain.Screen
	current     *attempt
	progress    progressin.Usecase
	entitlement entitlementin.Usecase
	log         *logger.Logger
}

func NewNavigator(start domain.Screen, progress progressin.Usecase, entitlement entitlementin.Usecase, log *logger.Logger) *Navigator {
	if start == "" {
		start = domain.ScreenOnboarding
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Navigator{screen: start, progress: progress, entitlement: entitlement, log: log}
}

func (n *Navigator) Current() dto.ScreenOutput {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := dto.ScreenOutput{Screen: string(n.screen), InSession: domain.InSession(n.screen)}
	if n.current != nil {
		out.Attempt = &dto.AttemptOutput{
			BookID:      n.current.bookID,
			SessionID:   n.current.sessionID,
			FocusRating: n.current.rating,
			Synthesis:   n.current.synthesis,
		}
	}
	return out
}

// Dispatch applies one user event. The screen only moves when every effect
// of the step succeeded.
func (n *Navigator) Dispatch(ctx context.Context, input dto.EventInput) (dto.StepOutput, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ev := domain.Event(input.Event)
	guards, start, err := n.guards(ctx, ev, input)
	if err != nil {
		return dto.StepOutput{}, err
	}
	step, err := domain.Transition(n.screen, ev, guards)
	if err != nil {
		return dto.StepOutput{}, err
	}

	out := dto.StepOutput{From: string(step.From), Start: start}
	if n.screen == domain.ScreenBookSelection && ev == domain.EventBeginFocus {
		n.current = &attempt{bookID: input.BookID}
	}
	if ev == domain.EventRate {
		rating := input.Rating
		n.current.rating = &rating
	}
	if ev == domain.EventSubmitReflection {
		n.current.reflection = input.Reflection
	}
	if ev == domain.EventKeepSynthesis && input.Synthesis != nil {
		synth := *input.Synthesis
		n.current.synthesis = &synth
	}

	next := step.Next
	for _, effect := range step.Effects {
		out.Effects = append(out.Effects, string(effect))
		resolved, err := n.run(ctx, effect, &out)
		if err != nil {
			n.log.Warn("flow effect failed", "effect", effect, "error", err)
			return out, fmt.Errorf("%s: %w", effect, err)
		}
		if resolved != "" {
			next = resolved
		}
	}

	n.log.Debug("screen transition", "from", step.From, "event", ev, "to", next)
	n.screen = next
	out.Screen = string(next)
	return out, nil
}

func (n *Navigator) guards(ctx context.Context, ev domain.Event, input dto.EventInput) (domain.Guards, *entitlementdto.StartOutput, error) {
	var g domain.Guards
	switch n.screen {
	case domain.ScreenDashboard:
		if ev != domain.EventStartSession {
			return g, nil, nil
		}
		start, err := n.entitlement.CanStart(ctx)
		if err != nil {
			return g, nil, err
		}
		g.CanStart = start.Decision == string(entitlementdomain.DecisionAllow)
		return g, &start, nil
	case domain.ScreenBookSelection:
		g.BookSelected = input.BookID != ""
		if g.BookSelected {
			if _, err := n.progress.BookNotes(ctx, input.BookID); err != nil {
				return g, nil, err
			}
		}
		return g, nil, nil
	case domain.ScreenFocusSession, domain.ScreenFocusRating:
		if n.screen == domain.ScreenFocusRating && ev == domain.EventRate && (input.Rating < 1 || input.Rating > 5) {
			return g, nil, fmt.Errorf("%w: rating must be between 1 and 5", apperrors.ErrInvalidInput)
		}
		settings, err := n.progress.Settings(ctx)
		if err != nil {
			return g, nil, err
		}
		g.RatingEnabled = settings.FocusRatingEnabled
		g.NotesEnabled = settings.NotesEnabled
		return g, nil, nil
	}
	return g, nil, nil
}

// run executes one effect. A non-empty screen overrides the step's target.
func (n *Navigator) run(ctx context.Context, effect domain.Effect, out *dto.StepOutput) (domain.Screen, error) {
	switch effect {
	case domain.EffectCompleteSession:
		res, err := n.progress.CompleteSession(ctx, progressdto.CompleteSessionInput{
			BookID:      n.current.bookID,
			FocusRating: n.current.rating,
		})
		if err != nil {
			return "", err
		}
		n.current.sessionID = res.Session.ID
		out.Session = &res

	case domain.EffectCompleteReflection:
		xp, err := n.progress.CompleteReflection(ctx)
		if err != nil {
			return "", err
		}
		out.XP = append(out.XP, xp)
		synth, err := n.progress.Synthesize(ctx, n.current.reflection)
		if err != nil {
			return "", err
		}
		n.current.synthesis = &synth
		out.Synthesis = &synth

	case domain.EffectCompleteSynthesis:
		xp, err := n.progress.CompleteSynthesis(ctx)
		if err != nil {
			return "", err
		}
		out.XP = append(out.XP, xp)

	case domain.EffectSaveNote, domain.EffectSaveNoteNoSynth:
		input := progressdto.AddNoteInput{
			BookID:      n.current.bookID,
			Reflection:  n.current.reflection,
			FocusRating: n.current.rating,
		}
		if effect == domain.EffectSaveNote {
			input.Synthesis = n.current.synthesis
		}
		note, err := n.progress.AddBookNote(ctx, input)
		if err != nil {
			return "", err
		}
		if !note.Saved {
			n.log.Info("book note limit reached", "book_id", n.current.bookID)
		}
		out.Note = &note

	case domain.EffectEndSession:
		end, err := n.entitlement.EndSession(ctx)
		if err != nil {
			return "", err
		}
		out.End = &end
		n.current = nil
		return domain.ResolveSessionEnd(domain.EndContext{
			Premium:             end.Tier == string(entitlementdomain.TierPremium),
			GuestQuotaExhausted: end.GuestQuotaExhausted,
			VisitSessions:       end.VisitSessions,
		}), nil

	case domain.EffectDiscardAttempt:
		n.current = nil
	}
	return "", nil
}
