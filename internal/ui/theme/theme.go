package theme

import "github.com/charmbracelet/lipgloss"

// Palette is one colour scheme. Dark is catppuccin mocha.
type Palette struct {
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Accent   lipgloss.Color
	Info     lipgloss.Color
	Good     lipgloss.Color
	Warm     lipgloss.Color
}

var palettes = map[string]Palette{
	"dark": {
		Base: "#1e1e2e", Mantle: "#181825", Surface0: "#313244", Surface1: "#45475a",
		Text: "#cdd6f4", Subtext0: "#a6adc8",
		Accent: "#b4befe", Info: "#74c7ec", Good: "#a6e3a1", Warm: "#fab387",
	},
	"ocean": {
		Base: "#0b1d2a", Mantle: "#08141d", Surface0: "#15354a", Surface1: "#1f4a66",
		Text: "#d8eef7", Subtext0: "#8fb3c4",
		Accent: "#4fc3f7", Info: "#80deea", Good: "#69f0ae", Warm: "#ffcc80",
	},
	"forest": {
		Base: "#1a2418", Mantle: "#131b12", Surface0: "#2b3a28", Surface1: "#3d5238",
		Text: "#e3ecd9", Subtext0: "#a3b596",
		Accent: "#9ccc65", Info: "#aed581", Good: "#c5e1a5", Warm: "#ffb74d",
	},
	"sunset": {
		Base: "#2a1a24", Mantle: "#1f131b", Surface0: "#42283a", Surface1: "#5c3850",
		Text: "#fbe3e8", Subtext0: "#c9a3b3",
		Accent: "#ff8a65", Info: "#f48fb1", Good: "#ffd54f", Warm: "#ff7043",
	},
}

var (
	Base, Mantle, Surface0, Surface1 lipgloss.Color
	Text, Subtext0                   lipgloss.Color
	Accent, Info, Good, Warm         lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Success    lipgloss.Style
)

func init() {
	Apply("dark")
}

// Names lists the selectable themes in display order.
func Names() []string {
	return []string{"dark", "ocean", "forest", "sunset"}
}

// Apply switches every exported colour and style to the named palette.
// Unknown names fall back to dark and report false.
func Apply(name string) bool {
	p, ok := palettes[name]
	if !ok {
		p = palettes["dark"]
	}
	Base, Mantle, Surface0, Surface1 = p.Base, p.Mantle, p.Surface0, p.Surface1
	Text, Subtext0 = p.Text, p.Subtext0
	Accent, Info, Good, Warm = p.Accent, p.Info, p.Good, p.Warm

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Accent)

	Title = lipgloss.NewStyle().Foreground(Info).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Warm).Bold(true)
	Success = lipgloss.NewStyle().Foreground(Good).Bold(true)
	return ok
}

