package slug_test

import (
	"strings"
	"testing"

	"studyquest/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"English Literature", "english-literature"},
		{"German Language 🇩🇪", "german-language"},
		{"  --Poetry!!  ", "poetry"},
		{"", "untitled"},
		{"📖", "untitled"},
		{"Chapter 3: The Return", "chapter-3-the-return"},
	}
	for _, tc := range cases {
		if got := slug.Make(tc.in); got != tc.want {
			t.Fatalf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMakeTruncates(t *testing.T) {
	t.Parallel()
	got := slug.Make(strings.Repeat("ab ", 60))
	if len(got) > 64 || strings.HasSuffix(got, "-") {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
