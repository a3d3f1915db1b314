package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	progressout "studyquest/internal/modules/progress/adapter/out"
	"studyquest/internal/modules/progress/domain"
)

func TestVaultNoteExporterPreservesUserText(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	books := domain.DefaultBooks()
	rating := domain.Rating(4)
	notes := []domain.BookNote{
		{
			ID:          "n1",
			BookID:      "math",
			Date:        domain.Date{Year: 2026, Month: 3, Day: 4},
			Reflection:  domain.Reflection{Understood: "derivatives"},
			Synthesis:   &domain.Synthesis{Summary: "slopes", KeyTakeaway: "practice"},
			FocusRating: &rating,
		},
	}

	exporter := progressout.NewVaultNoteExporter()
	paths, err := exporter.Export(context.Background(), dir, books, notes)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "mathematics.md" {
		t.Fatalf("expected only mathematics.md, got %v", paths)
	}

	raw, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	edited := string(raw) + "\nMy own margin notes.\n"
	if err := os.WriteFile(paths[0], []byte(edited), 0o644); err != nil {
		t.Fatalf("edit export: %v", err)
	}

	notes = append(notes, domain.BookNote{
		ID:         "n2",
		BookID:     "math",
		Date:       domain.Date{Year: 2026, Month: 3, Day: 5},
		Reflection: domain.Reflection{Remember: "chain rule"},
	})
	if _, err := exporter.Export(context.Background(), dir, books, notes); err != nil {
		t.Fatalf("re-export: %v", err)
	}
	raw, err = os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read re-export: %v", err)
	}
	content := string(raw)
	for _, want := range []string{"My own margin notes.", "chain rule", "derivatives", "★★★★", "note_count: 2"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in export:\n%s", want, content)
		}
	}
	if strings.Count(content, "<!-- studyquest:notes:start -->") != 1 {
		t.Fatalf("managed block duplicated:\n%s", content)
	}
	if strings.Index(content, "chain rule") > strings.Index(content, "derivatives") {
		t.Fatalf("expected newest note first:\n%s", content)
	}
}

func TestFileMetadataReaderMarkdownHeading(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "calc.md")
	if err := os.WriteFile(path, []byte("intro\n\n#  Calculus Made Easy \nbody"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	title, err := progressout.NewFileMetadataReader().ReadTitle(context.Background(), path)
	if err != nil {
		t.Fatalf("read title: %v", err)
	}
	if title != "Calculus Made Easy" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestFileMetadataReaderMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := progressout.NewFileMetadataReader().ReadTitle(context.Background(), filepath.Join(t.TempDir(), "nope.epub")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
