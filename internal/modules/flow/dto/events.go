package dto

// Event names accepted by Dispatch.
const (
	EventAcknowledge      = "acknowledge"
	EventStartSession     = "start-session"
	EventBeginFocus       = "begin-focus"
	EventCancel           = "cancel"
	EventFinishFocus      = "finish-focus"
	EventRate             = "rate"
	EventSkipRating       = "skip-rating"
	EventSubmitReflection = "submit-reflection"
	EventSkipReflection   = "skip-reflection"
	EventKeepSynthesis    = "keep-synthesis"
	EventSkipSynthesis    = "skip-synthesis"
	EventBack             = "back"
	EventUpgrade          = "upgrade"

	EventOpenStats        = "open-stats"
	EventOpenEvolution    = "open-evolution"
	EventOpenSettings     = "open-settings"
	EventOpenSocial       = "open-social"
	EventOpenBookNotes    = "open-book-notes"
	EventOpenAchievements = "open-achievements"
)

// Screen names reported in ScreenOutput and StepOutput.
const (
	ScreenOnboarding    = "onboarding"
	ScreenDashboard     = "dashboard"
	ScreenBookSelection = "book-selection"
	ScreenFocusSession  = "focus-session"
	ScreenFocusRating   = "focus-rating"
	ScreenReflection    = "reflection"
	ScreenAISynthesis   = "ai-synthesis"
	ScreenStats         = "stats"
	ScreenEvolution     = "evolution"
	ScreenSettings      = "settings"
	ScreenSocial        = "social"
	ScreenWaitlist      = "waitlist"
	ScreenBookNotes     = "book-notes"
	ScreenAchievements  = "achievements"
	ScreenSoftLock      = "soft-lock"
	ScreenUpgrade       = "upgrade"
)
