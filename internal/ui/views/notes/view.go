package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	progressdto "studyquest/internal/modules/progress/dto"
	"studyquest/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListBooks(ctx context.Context) ([]progressdto.BookOutput, error)
	BookNotes(ctx context.Context, bookID string) (progressdto.BookNotesOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Books []progressdto.BookOutput
	Notes progressdto.BookNotesOutput
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

type mode int

const (
	modeNotes mode = iota
	modeSynthesis
)

// Model renders markdown through glamour: either the synthesis of the
// current reflection or the saved notes of one book.
type Model struct {
	port      Port
	mode      mode
	viewport  viewport.Model
	renderer  *glamour.TermRenderer
	books     []progressdto.BookOutput
	bookIdx   int
	notes     progressdto.BookNotesOutput
	synthesis progressdto.SynthesisOutput
	err       error
	width     int
	height    int
}

func New(port Port) Model {
	return Model{port: port, viewport: viewport.New(0, 0), renderer: newRenderer(0)}
}

// ShowSynthesis switches to the synthesis review.
func (m *Model) ShowSynthesis(s progressdto.SynthesisOutput) {
	m.mode = modeSynthesis
	m.synthesis = s
	m.refresh()
}

// LoadNotes switches to the notes browser for the current book.
func (m *Model) LoadNotes() tea.Cmd {
	m.mode = modeNotes
	return m.loadCmd(m.currentBookID())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		// Rebuild so glamour word-wraps at the new width.
		m.renderer = newRenderer(msg.Width - 4)
		m.refresh()
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.books = msg.Books
			m.notes = msg.Notes
			for i, b := range m.books {
				if b.ID == msg.Notes.Book.ID {
					m.bookIdx = i
				}
			}
		}
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeNotes && len(m.books) > 0 {
			switch msg.String() {
			case "left", "h":
				m.bookIdx = (m.bookIdx + len(m.books) - 1) % len(m.books)
				return m, m.loadCmd(m.books[m.bookIdx].ID)
			case "right", "l":
				m.bookIdx = (m.bookIdx + 1) % len(m.books)
				return m, m.loadCmd(m.books[m.bookIdx].ID)
			}
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var header, footer string
	if m.mode == modeSynthesis {
		header = theme.Title.Render("✨ Your synthesis")
		footer = theme.Muted.Render("enter/k: keep and save note  s: save without synthesis")
	} else {
		header = theme.Title.Render(fmt.Sprintf("%s %s", m.notes.Book.Icon, m.notes.Book.Title))
		header += theme.Muted.Render(fmt.Sprintf("  %d/%d notes", len(m.notes.Notes), m.notes.Limit))
		if m.notes.AtLimit {
			header += "  " + theme.Hot.Render("limit reached")
		}
		footer = theme.Muted.Render("←/→: book  ↑/↓: scroll  esc: back")
	}
	if m.err != nil {
		footer = theme.Hot.Render(m.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}

// ─── rendering ───────────────────────────────────────────────────────────────

// SynthesisMarkdown is the markdown shown while reviewing a synthesis.
func SynthesisMarkdown(s progressdto.SynthesisOutput) string {
	return "## Summary\n\n" + s.Summary + "\n\n## Key takeaway\n\n> " + s.KeyTakeaway + "\n"
}

// NotesMarkdown lists the notes of one book, newest first as given.
func NotesMarkdown(out progressdto.BookNotesOutput) string {
	if len(out.Notes) == 0 {
		return "_No notes yet. Finish a session with a reflection to add one._\n"
	}
	var sb strings.Builder
	for _, n := range out.Notes {
		sb.WriteString("### " + n.Date)
		if n.FocusRating != nil {
			sb.WriteString(" " + strings.Repeat("★", *n.FocusRating))
		}
		sb.WriteString("\n\n")
		writeAnswer(&sb, "Understood", n.Reflection.Understood)
		writeAnswer(&sb, "Important", n.Reflection.Important)
		writeAnswer(&sb, "Remember", n.Reflection.Remember)
		if n.Synthesis != nil {
			sb.WriteString("> " + n.Synthesis.KeyTakeaway + "\n\n")
		}
		sb.WriteString("`" + n.ID + "`\n\n")
	}
	return sb.String()
}

func writeAnswer(sb *strings.Builder, label, text string) {
	if text == "" {
		return
	}
	sb.WriteString("- **" + label + ":** " + text + "\n")
	if label == "Remember" {
		sb.WriteString("\n")
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func newRenderer(width int) *glamour.TermRenderer {
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(width, 0)),
	)
	return r
}

func (m *Model) refresh() {
	md := NotesMarkdown(m.notes)
	if m.mode == modeSynthesis {
		md = SynthesisMarkdown(m.synthesis)
	}
	if m.renderer == nil {
		m.viewport.SetContent(md)
		return
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		m.viewport.SetContent(md)
		return
	}
	m.viewport.SetContent(out)
}

func (m Model) currentBookID() string {
	if m.bookIdx < len(m.books) {
		return m.books[m.bookIdx].ID
	}
	return ""
}

func (m Model) loadCmd(bookID string) tea.Cmd {
	return func() tea.Msg {
		books, err := m.port.ListBooks(context.Background())
		if err != nil {
			return LoadedMsg{Err: err}
		}
		if bookID == "" {
			bookID = busiestBook(books)
		}
		notes, err := m.port.BookNotes(context.Background(), bookID)
		return LoadedMsg{Books: books, Notes: notes, Err: err}
	}
}

// busiestBook opens the notes browser on the most studied book.
func busiestBook(books []progressdto.BookOutput) string {
	best := ""
	most := -1
	for _, b := range books {
		if b.SessionsCompleted > most {
			best, most = b.ID, b.SessionsCompleted
		}
	}
	return best
}
