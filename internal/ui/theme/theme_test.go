package theme_test

import (
	"testing"

	"studyquest/internal/ui/theme"
)

func TestApplySwitchesPalette(t *testing.T) {
	t.Cleanup(func() { theme.Apply("dark") })

	if !theme.Apply("ocean") {
		t.Fatalf("expected ocean to be a known theme")
	}
	if theme.Accent != "#4fc3f7" {
		t.Fatalf("expected ocean accent, got %s", theme.Accent)
	}
	if theme.Apply("neon") {
		t.Fatalf("expected unknown theme to report false")
	}
	if theme.Accent != "#b4befe" {
		t.Fatalf("expected fallback to dark accent, got %s", theme.Accent)
	}
}

func TestNamesAreAllApplicable(t *testing.T) {
	t.Cleanup(func() { theme.Apply("dark") })
	for _, name := range theme.Names() {
		if !theme.Apply(name) {
			t.Fatalf("theme %q is listed but not defined", name)
		}
	}
}
