package dto

import (
	entitlementdto "studyquest/internal/modules/entitlement/dto"
	progressdto "studyquest/internal/modules/progress/dto"
)

type EventInput struct {
	Event string
	// BookID is read by begin-focus.
	BookID string
	// Rating is read by rate, 1..5.
	Rating     int
	Reflection progressdto.ReflectionInput
	// Synthesis replaces the generated synthesis on keep-synthesis when set.
	Synthesis *progressdto.SynthesisOutput
}

type AttemptOutput struct {
	BookID      string
	SessionID   string
	FocusRating *int
	Synthesis   *progressdto.SynthesisOutput
}

type ScreenOutput struct {
	Screen    string
	InSession bool
	Attempt   *AttemptOutput
}

type StepOutput struct {
	From    string
	Screen  string
	Effects []string

	Start     *entitlementdto.StartOutput
	Session   *progressdto.CompleteSessionOutput
	XP        []progressdto.XPOutput
	Synthesis *progressdto.SynthesisOutput
	Note      *progressdto.AddNoteOutput
	End       *entitlementdto.EndOutput
}

// LevelUps collects every level change the step produced.
func (s StepOutput) LevelUps() []progressdto.LevelUpOutput {
	var out []progressdto.LevelUpOutput
	if s.Session != nil && s.Session.LevelUp != nil {
		out = append(out, *s.Session.LevelUp)
	}
	for _, xp := range s.XP {
		if xp.LevelUp != nil {
			out = append(out, *xp.LevelUp)
		}
	}
	return out
}
