package domain

import (
	"fmt"

	apperrors "studyquest/internal/platform/errors"
)

type Screen string

const (
	ScreenOnboarding    Screen = "onboarding"
	ScreenDashboard     Screen = "dashboard"
	ScreenBookSelection Screen = "book-selection"
	ScreenFocusSession  Screen = "focus-session"
	ScreenFocusRating   Screen = "focus-rating"
	ScreenReflection    Screen = "reflection"
	ScreenAISynthesis   Screen = "ai-synthesis"
	ScreenStats         Screen = "stats"
	ScreenEvolution     Screen = "evolution"
	ScreenSettings      Screen = "settings"
	ScreenSocial        Screen = "social"
	ScreenWaitlist      Screen = "waitlist"
	ScreenBookNotes     Screen = "book-notes"
	ScreenAchievements  Screen = "achievements"
	ScreenSoftLock      Screen = "soft-lock"
	ScreenUpgrade       Screen = "upgrade"

	// ScreenSessionEnd is never shown. A step that lands here is resolved by
	// ResolveSessionEnd once the gate has counted the session.
	ScreenSessionEnd Screen = "session-end"
)

type Event string

const (
	EventAcknowledge      Event = "acknowledge"
	EventStartSession     Event = "start-session"
	EventBeginFocus       Event = "begin-focus"
	EventCancel           Event = "cancel"
	EventFinishFocus      Event = "finish-focus"
	EventRate             Event = "rate"
	EventSkipRating       Event = "skip-rating"
	EventSubmitReflection Event = "submit-reflection"
	EventSkipReflection   Event = "skip-reflection"
	EventKeepSynthesis    Event = "keep-synthesis"
	EventSkipSynthesis    Event = "skip-synthesis"
	EventBack             Event = "back"
	EventUpgrade          Event = "upgrade"

	EventOpenStats        Event = "open-stats"
	EventOpenEvolution    Event = "open-evolution"
	EventOpenSettings     Event = "open-settings"
	EventOpenSocial       Event = "open-social"
	EventOpenBookNotes    Event = "open-book-notes"
	EventOpenAchievements Event = "open-achievements"
)

// Effect is a side effect the caller must run, in order, for a step.
type Effect string

const (
	EffectCompleteSession    Effect = "complete-session"
	EffectCompleteReflection Effect = "complete-reflection"
	EffectCompleteSynthesis  Effect = "complete-synthesis"
	EffectSaveNote           Effect = "save-note"
	EffectSaveNoteNoSynth    Effect = "save-note-without-synthesis"
	EffectEndSession         Effect = "end-session"
	EffectDiscardAttempt     Effect = "discard-attempt"
)

// Guards are the facts a transition may depend on.
type Guards struct {
	CanStart      bool
	BookSelected  bool
	RatingEnabled bool
	NotesEnabled  bool
}

type Step struct {
	From    Screen
	Next    Screen
	Effects []Effect
}

var openTargets = map[Event]Screen{
	EventOpenStats:        ScreenStats,
	EventOpenEvolution:    ScreenEvolution,
	EventOpenSettings:     ScreenSettings,
	EventOpenSocial:       ScreenSocial,
	EventOpenBookNotes:    ScreenBookNotes,
	EventOpenAchievements: ScreenAchievements,
	EventUpgrade:          ScreenUpgrade,
}

// backTargets lists the screens with an explicit back action.
var backTargets = map[Screen]Screen{
	ScreenBookSelection: ScreenDashboard,
	ScreenStats:         ScreenDashboard,
	ScreenEvolution:     ScreenStats,
	ScreenSettings:      ScreenDashboard,
	ScreenSocial:        ScreenDashboard,
	ScreenBookNotes:     ScreenDashboard,
	ScreenAchievements:  ScreenDashboard,
	ScreenWaitlist:      ScreenDashboard,
	ScreenSoftLock:      ScreenDashboard,
	ScreenUpgrade:       ScreenDashboard,
}

// afterFocus picks the branch once the session itself is recorded.
func afterSession(g Guards) (Screen, []Effect) {
	if g.NotesEnabled {
		return ScreenReflection, nil
	}
	return ScreenSessionEnd, []Effect{EffectEndSession}
}

// Transition returns the next screen and the effects for ev in from. Events
// not defined for from fail with ErrInvalidTransition.
func Transition(from Screen, ev Event, g Guards) (Step, error) {
	step := Step{From: from}
	switch {
	case from == ScreenOnboarding && ev == EventAcknowledge:
		step.Next = ScreenDashboard

	case from == ScreenDashboard && ev == EventStartSession:
		step.Next = ScreenBookSelection
		if !g.CanStart {
			step.Next = ScreenSoftLock
		}

	case from == ScreenDashboard && openTargets[ev] != "":
		step.Next = openTargets[ev]
	case from == ScreenStats && ev == EventOpenEvolution:
		step.Next = ScreenEvolution
	case from == ScreenSoftLock && ev == EventUpgrade:
		step.Next = ScreenUpgrade

	case from == ScreenBookSelection && ev == EventBeginFocus:
		if !g.BookSelected {
			return Step{}, fmt.Errorf("%w: select a book before starting", apperrors.ErrInvalidTransition)
		}
		step.Next = ScreenFocusSession

	case from == ScreenFocusSession && ev == EventCancel:
		step.Next = ScreenDashboard
		step.Effects = []Effect{EffectDiscardAttempt}

	case from == ScreenFocusSession && ev == EventFinishFocus:
		if g.RatingEnabled {
			step.Next = ScreenFocusRating
			break
		}
		next, effects := afterSession(g)
		step.Next = next
		step.Effects = append([]Effect{EffectCompleteSession}, effects...)

	case from == ScreenFocusRating && (ev == EventRate || ev == EventSkipRating):
		next, effects := afterSession(g)
		step.Next = next
		step.Effects = append([]Effect{EffectCompleteSession}, effects...)

	case from == ScreenReflection && ev == EventSubmitReflection:
		step.Next = ScreenAISynthesis
		step.Effects = []Effect{EffectCompleteReflection}
	case from == ScreenReflection && ev == EventSkipReflection:
		step.Next = ScreenSessionEnd
		step.Effects = []Effect{EffectEndSession}

	case from == ScreenAISynthesis && ev == EventKeepSynthesis:
		step.Next = ScreenSessionEnd
		step.Effects = []Effect{EffectCompleteSynthesis, EffectSaveNote, EffectEndSession}
	case from == ScreenAISynthesis && ev == EventSkipSynthesis:
		step.Next = ScreenSessionEnd
		step.Effects = []Effect{EffectSaveNoteNoSynth, EffectEndSession}

	case ev == EventBack && backTargets[from] != "":
		step.Next = backTargets[from]

	default:
		return Step{}, fmt.Errorf("%w: %s on %s", apperrors.ErrInvalidTransition, ev, from)
	}
	return step, nil
}

// EndContext is what the gate reports once a session was counted.
type EndContext struct {
	Premium             bool
	GuestQuotaExhausted bool
	VisitSessions       int
}

// WaitlistAfter is the visit session count from which the waitlist invite
// is shown.
const WaitlistAfter = 2

// ResolveSessionEnd picks the screen shown after a session. Premium always
// returns to the dashboard; an exhausted guest quota wins over the waitlist.
func ResolveSessionEnd(c EndContext) Screen {
	switch {
	case c.Premium:
		return ScreenDashboard
	case c.GuestQuotaExhausted:
		return ScreenSoftLock
	case c.VisitSessions >= WaitlistAfter:
		return ScreenWaitlist
	default:
		return ScreenDashboard
	}
}

// InSession reports whether s belongs to a running session attempt.
func InSession(s Screen) bool {
	switch s {
	case ScreenFocusSession, ScreenFocusRating, ScreenReflection, ScreenAISynthesis:
		return true
	}
	return false
}
