package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyquest/internal/ui/theme"
)

type PaletteCommand struct {
	Name string
	Args string
}

// PaletteCommands must stay in sync with the switch in app/model.go executePalette.
var PaletteCommands = []PaletteCommand{
	{Name: "book:add", Args: "<title>"},
	{Name: "goal:claim", Args: "<goal-id>"},
	{Name: "note:delete", Args: "<note-id>"},
	{Name: "note:export", Args: "<dir>"},
	{Name: "theme", Args: "<dark|ocean|forest|sunset>"},
	{Name: "heatmap", Args: "<month|year>"},
	{Name: "flush"},
}

// Usage returns "name args" for a known command.
func Usage(name string) string {
	for _, c := range PaletteCommands {
		if c.Name == name {
			return strings.TrimSpace(c.Name + " " + c.Args)
		}
	}
	return name
}

// PaletteSubmitMsg carries the command name and everything after it.
type PaletteSubmitMsg struct {
	Name string
	Args string
}

type PaletteCancelMsg struct{}

const historySize = 20

// Palette is the ":" command line. Tab completes the command name and
// up/down walk previously submitted lines.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	cursor  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) matches() []PaletteCommand {
	value := strings.ToLower(strings.TrimSpace(p.input.Value()))
	head, _, _ := strings.Cut(value, " ")
	var out []PaletteCommand
	for _, c := range PaletteCommands {
		if value == "" || strings.HasPrefix(c.Name, head) {
			out = append(out, c)
		}
	}
	return out
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(line string) {
	if n := len(p.history); n > 0 && p.history[n-1] == line {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > historySize {
		p.history = p.history[len(p.history)-historySize:]
	}
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	switch key.String() {
	case "esc":
		p.close()
		return p, func() tea.Msg { return PaletteCancelMsg{} }

	case "enter":
		line := strings.TrimSpace(p.input.Value())
		p.close()
		if line == "" {
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		}
		p.remember(line)
		name, args, _ := strings.Cut(line, " ")
		submit := PaletteSubmitMsg{Name: strings.ToLower(name), Args: strings.TrimSpace(args)}
		return p, func() tea.Msg { return submit }

	case "tab":
		if m := p.matches(); len(m) == 1 {
			p.input.SetValue(m[0].Name + " ")
			p.input.CursorEnd()
		}
		return p, nil

	case "up":
		if p.cursor > 0 {
			p.cursor--
			p.input.SetValue(p.history[p.cursor])
			p.input.CursorEnd()
		}
		return p, nil

	case "down":
		if p.cursor < len(p.history) {
			p.cursor++
		}
		if p.cursor == len(p.history) {
			p.input.SetValue("")
		} else {
			p.input.SetValue(p.history[p.cursor])
		}
		p.input.CursorEnd()
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	lines := []string{theme.Title.Render("Command"), ": " + p.input.View()}
	if m := p.matches(); len(m) > 0 {
		lines = append(lines, "")
		for _, c := range m {
			lines = append(lines, theme.Muted.Render("  "+Usage(c.Name)))
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(w - 2).
		Render(strings.Join(lines, "\n"))
}
