package domain

import (
	"fmt"

	apperrors "studyquest/internal/platform/errors"
)

type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeOcean  Theme = "ocean"
	ThemeForest Theme = "forest"
	ThemeSunset Theme = "sunset"
)

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeDark, ThemeOcean, ThemeForest, ThemeSunset:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown theme %q", apperrors.ErrInvalidInput, s)
}

type AppSettings struct {
	NotesEnabled       bool  `json:"notesEnabled"`
	FocusRatingEnabled bool  `json:"focusRatingEnabled"`
	ReduceAnimations   bool  `json:"reduceAnimations"`
	Theme              Theme `json:"theme"`
}

func DefaultSettings() AppSettings {
	return AppSettings{
		NotesEnabled:       true,
		FocusRatingEnabled: true,
		Theme:              ThemeDark,
	}
}

// SettingsPatch carries only the fields to change; nil means keep.
type SettingsPatch struct {
	NotesEnabled       *bool
	FocusRatingEnabled *bool
	ReduceAnimations   *bool
	Theme              *Theme
}

func (s AppSettings) Apply(p SettingsPatch) AppSettings {
	if p.NotesEnabled != nil {
		s.NotesEnabled = *p.NotesEnabled
	}
	if p.FocusRatingEnabled != nil {
		s.FocusRatingEnabled = *p.FocusRatingEnabled
	}
	if p.ReduceAnimations != nil {
		s.ReduceAnimations = *p.ReduceAnimations
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	return s
}
