package books

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "studyquest/internal/modules/progress/dto"
	"studyquest/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListBooks(ctx context.Context) ([]progressdto.BookOutput, error)
	AddBook(ctx context.Context, title string) (progressdto.BookOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Books []progressdto.BookOutput
	Err   error
}

type AddedMsg struct {
	Book progressdto.BookOutput
	Err  error
}

// ─── list item ───────────────────────────────────────────────────────────────

type bookItem struct {
	book progressdto.BookOutput
}

func (i bookItem) Title() string { return i.book.Icon + " " + i.book.Title }
func (i bookItem) Description() string {
	return fmt.Sprintf("%s  %d%%  %d sessions", i.book.Subject, i.book.Progress, i.book.SessionsCompleted)
}
func (i bookItem) FilterValue() string { return i.book.Title }

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the book picker shown before a focus session. It also hosts the
// inline form for adding a custom book.
type Model struct {
	port    Port
	list    list.Model
	input   textinput.Model
	adding  bool
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Accent).BorderForeground(theme.Accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Info).BorderForeground(theme.Accent)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Choose a book"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "Book title"
	ti.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return Model{port: port, list: l, input: ti, spinner: sp, loading: true}
}

func (m *Model) Load() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-3)

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Books))
		for i, b := range msg.Books {
			items[i] = bookItem{book: b}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case AddedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		cmds = append(cmds, m.list.InsertItem(len(m.list.Items()), bookItem{book: msg.Book}))
		m.list.Select(len(m.list.Items()) - 1)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "esc":
				m.adding = false
				m.input.Blur()
				return m, nil
			case "enter":
				title := strings.TrimSpace(m.input.Value())
				m.adding = false
				m.input.Blur()
				if title == "" {
					return m, nil
				}
				return m, m.addCmd(title)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if msg.String() == "a" && !m.Filtering() {
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}

	if !m.loading && !m.adding {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading books…")
	}
	var footer string
	switch {
	case m.adding:
		footer = theme.Title.Render("New book: ") + m.input.View()
	case m.err != nil:
		footer = theme.Hot.Render(m.err.Error())
	default:
		footer = theme.Muted.Render("enter: start focus  a: add book  /: filter  esc: back")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), "", footer)
}

// SelectedBookID returns the highlighted book's ID, if any.
func (m Model) SelectedBookID() (string, bool) {
	if item, ok := m.list.SelectedItem().(bookItem); ok {
		return item.book.ID, true
	}
	return "", false
}

// SelectedBookTitle returns the highlighted book's title.
func (m Model) SelectedBookTitle() string {
	if item, ok := m.list.SelectedItem().(bookItem); ok {
		return item.book.Title
	}
	return ""
}

// Busy reports whether typed keys belong to this view rather than to the
// app's global bindings.
func (m Model) Busy() bool {
	return m.adding || m.Filtering()
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		books, err := m.port.ListBooks(context.Background())
		return LoadedMsg{Books: books, Err: err}
	}
}

func (m Model) addCmd(title string) tea.Cmd {
	return func() tea.Msg {
		book, err := m.port.AddBook(context.Background(), title)
		return AddedMsg{Book: book, Err: err}
	}
}
