package notes

import (
	"strings"
	"testing"

	progressdto "studyquest/internal/modules/progress/dto"
)

func TestNotesMarkdownKeepsOrderAndOptionalParts(t *testing.T) {
	four := 4
	md := NotesMarkdown(progressdto.BookNotesOutput{Notes: []progressdto.NoteOutput{
		{ID: "n2", Date: "2026-03-05", FocusRating: &four, Reflection: progressdto.ReflectionInput{Understood: "derivatives"},
			Synthesis: &progressdto.SynthesisOutput{KeyTakeaway: "slopes"}},
		{ID: "n1", Date: "2026-03-04", Reflection: progressdto.ReflectionInput{Remember: "limits"}},
	}})

	if strings.Index(md, "2026-03-05") > strings.Index(md, "2026-03-04") {
		t.Fatalf("expected given order to be kept:\n%s", md)
	}
	if !strings.Contains(md, "2026-03-05 ★★★★") {
		t.Fatalf("expected rating stars:\n%s", md)
	}
	if !strings.Contains(md, "> slopes") || strings.Count(md, "> ") != 1 {
		t.Fatalf("expected exactly one takeaway quote:\n%s", md)
	}
	if strings.Contains(md, "Important") {
		t.Fatalf("empty answers must be omitted:\n%s", md)
	}
}

func TestBusiestBookPrefersMostSessions(t *testing.T) {
	got := busiestBook([]progressdto.BookOutput{
		{ID: "english", SessionsCompleted: 1},
		{ID: "math", SessionsCompleted: 3},
		{ID: "german"},
	})
	if got != "math" {
		t.Fatalf("expected math, got %s", got)
	}
}
