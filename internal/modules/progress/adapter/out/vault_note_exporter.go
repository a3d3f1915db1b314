package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studyquest/internal/modules/progress/domain"
	progressout "studyquest/internal/modules/progress/port/out"
	"studyquest/internal/platform/markdown"
	"studyquest/internal/platform/slug"
)

const (
	notesStartMarker = "<!-- studyquest:notes:start -->"
	notesEndMarker   = "<!-- studyquest:notes:end -->"
)

// VaultNoteExporter writes one markdown file per book. Only the managed block
// is regenerated on re-export; anything written around it is preserved.
type VaultNoteExporter struct{}

func NewVaultNoteExporter() progressout.NoteExporter {
	return &VaultNoteExporter{}
}

func (e *VaultNoteExporter) Export(ctx context.Context, dir string, books []domain.Book, notes []domain.BookNote) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	var paths []string
	for _, book := range books {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		bookNotes := domain.NotesForBook(notes, book.ID)
		if len(bookNotes) == 0 {
			continue
		}
		path := filepath.Join(dir, slug.Make(book.Title)+".md")
		if err := writeBookNotes(path, book, bookNotes); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeBookNotes(path string, book domain.Book, notes []domain.BookNote) error {
	meta := map[string]any{}
	body := fmt.Sprintf("# %s %s\n", book.Icon, book.Title)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		meta, body, err = markdown.SplitFrontmatter(string(existing))
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read %s: %w", path, err)
	}

	meta["book_id"] = book.ID
	meta["title"] = book.Title
	meta["subject"] = string(book.Subject)
	meta["progress"] = book.Progress
	meta["sessions_completed"] = book.SessionsCompleted
	meta["note_count"] = len(notes)

	body = markdown.ReplaceManagedBlock(body, notesStartMarker, notesEndMarker, renderNotes(notes))
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func renderNotes(notes []domain.BookNote) string {
	var sb strings.Builder
	for i, n := range notes {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n", n.Date)
		if n.FocusRating != nil {
			fmt.Fprintf(&sb, "Focus: %s\n\n", strings.Repeat("★", int(*n.FocusRating)))
		}
		writeField(&sb, "What I understood", n.Reflection.Understood)
		writeField(&sb, "What felt important", n.Reflection.Important)
		writeField(&sb, "What to remember", n.Reflection.Remember)
		if n.Synthesis != nil {
			writeField(&sb, "Summary", n.Synthesis.Summary)
			writeField(&sb, "Key takeaway", n.Synthesis.KeyTakeaway)
		}
	}
	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(sb, "**%s:** %s\n\n", label, value)
}
