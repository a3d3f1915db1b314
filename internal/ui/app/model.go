package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	entitlementdto "studyquest/internal/modules/entitlement/dto"
	flowdto "studyquest/internal/modules/flow/dto"
	progressdto "studyquest/internal/modules/progress/dto"
	"studyquest/internal/platform/notify"
	"studyquest/internal/ui/components"
	"studyquest/internal/ui/theme"
	booksview "studyquest/internal/ui/views/books"
	dashboardview "studyquest/internal/ui/views/dashboard"
	focusview "studyquest/internal/ui/views/focus"
	notesview "studyquest/internal/ui/views/notes"
	reflectionview "studyquest/internal/ui/views/reflection"
	settingsview "studyquest/internal/ui/views/settings"
	"studyquest/internal/ui/views/static"
	statsview "studyquest/internal/ui/views/stats"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type flowPort interface {
	Current(ctx context.Context) (flowdto.ScreenOutput, error)
	Acknowledge(ctx context.Context) (flowdto.StepOutput, error)
	StartSession(ctx context.Context) (flowdto.StepOutput, error)
	BeginFocus(ctx context.Context, bookID string) (flowdto.StepOutput, error)
	Cancel(ctx context.Context) (flowdto.StepOutput, error)
	FinishFocus(ctx context.Context) (flowdto.StepOutput, error)
	Rate(ctx context.Context, rating int) (flowdto.StepOutput, error)
	SkipRating(ctx context.Context) (flowdto.StepOutput, error)
	SubmitReflection(ctx context.Context, reflection progressdto.ReflectionInput) (flowdto.StepOutput, error)
	SkipReflection(ctx context.Context) (flowdto.StepOutput, error)
	KeepSynthesis(ctx context.Context, edited *progressdto.SynthesisOutput) (flowdto.StepOutput, error)
	SkipSynthesis(ctx context.Context) (flowdto.StepOutput, error)
	Open(ctx context.Context, event string) (flowdto.StepOutput, error)
	Back(ctx context.Context) (flowdto.StepOutput, error)
	Upgrade(ctx context.Context) (flowdto.StepOutput, error)
}

type progressPort interface {
	dashboardview.Port
	booksview.Port
	notesview.Port
	statsview.Port
	settingsview.Port
	ClaimGoal(ctx context.Context, goalID string) (progressdto.CompleteGoalOutput, error)
	DeleteNote(ctx context.Context, noteID string) error
	ExportNotes(ctx context.Context, dir string) (progressdto.ExportOutput, error)
	Flush(ctx context.Context) error
}

type entitlementPort interface {
	Status(ctx context.Context) (entitlementdto.StatusOutput, error)
	Grant(ctx context.Context) (entitlementdto.StatusOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type screenLoadedMsg struct {
	out flowdto.ScreenOutput
	err error
}

type stepMsg struct {
	out flowdto.StepOutput
	err error
}

type entitlementMsg struct {
	status entitlementdto.StatusOutput
	err    error
}

type statusMsg struct{ text string }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Start   key.Binding
	Back    key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Back, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Start, k.Back}, {k.Help, k.Palette, k.Quit}}
}

// dashboardTargets maps dashboard keys to navigation events.
var dashboardTargets = map[string]string{
	"n": flowdto.EventOpenBookNotes,
	"t": flowdto.EventOpenStats,
	"e": flowdto.EventOpenEvolution,
	"a": flowdto.EventOpenAchievements,
	"o": flowdto.EventOpenSettings,
	"f": flowdto.EventOpenSocial,
	"u": flowdto.EventUpgrade,
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. The current screen is owned by the flow
// navigator; this model renders it and turns keys into flow events.
type Model struct {
	flow        flowPort
	progress    progressPort
	entitlement entitlementPort
	notices     <-chan notify.Notice
	focusLength time.Duration

	dashboard  dashboardview.Model
	books      booksview.Model
	focus      focusview.Model
	rating     focusview.Rating
	reflection reflectionview.Model
	notes      notesview.Model
	stats      statsview.Model
	settings   settingsview.Model

	screen     string
	prefs      progressdto.SettingsOutput
	entStatus  entitlementdto.StatusOutput
	focusTitle string
	keys       keyMap
	help       help.Model
	showHelp   bool
	palette    components.Palette
	toast      components.Toast
	status     string
	width      int
	height     int
}

func NewModel(
	flow flowPort,
	progress progressPort,
	entitlement entitlementPort,
	notices <-chan notify.Notice,
	focusLength time.Duration,
) Model {
	if focusLength <= 0 {
		focusLength = 30 * time.Minute
	}
	return Model{
		flow:        flow,
		progress:    progress,
		entitlement: entitlement,
		notices:     notices,
		focusLength: focusLength,
		dashboard:   dashboardview.New(progress),
		books:       booksview.New(progress),
		focus:       focusview.New(),
		rating:      focusview.NewRating(),
		reflection:  reflectionview.New(),
		notes:       notesview.New(progress),
		stats:       statsview.New(progress),
		settings:    settingsview.New(progress),
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.currentCmd(),
		m.settings.Load(),
		components.WaitForNotice(m.notices),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case screenLoadedMsg:
		if msg.err != nil {
			m.status = "flow: " + msg.err.Error()
			return m, nil
		}
		m.screen = msg.out.Screen
		cmd = m.enter(flowdto.StepOutput{Screen: msg.out.Screen})
		return m, cmd

	case stepMsg:
		return m.applyStep(msg)

	case entitlementMsg:
		if msg.err != nil {
			m.status = "entitlement: " + msg.err.Error()
		} else {
			m.entStatus = msg.status
		}
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case components.NoticeMsg:
		m.toast, cmd = m.toast.Update(msg)
		return m, tea.Batch(cmd, components.WaitForNotice(m.notices))

	case components.PaletteSubmitMsg:
		return m.executePalette(msg)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case dashboardview.LoadedMsg:
		if msg.Err == nil {
			m.applyPrefs(msg.Dashboard.Settings)
		}
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case settingsview.ChangedMsg:
		if msg.Err == nil {
			m.applyPrefs(msg.Settings)
		}
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd

	case booksview.LoadedMsg, booksview.AddedMsg:
		m.books, cmd = m.books.Update(msg)
		return m, cmd

	case notesview.LoadedMsg:
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd

	case statsview.LoadedMsg:
		m.stats, cmd = m.stats.Update(msg)
		return m, cmd

	case focusview.FinishedMsg:
		if m.screen == flowdto.ScreenFocusSession {
			return m, m.dispatch(m.flow.FinishFocus)
		}
		return m, nil

	case reflectionview.SubmitMsg:
		reflection := msg.Reflection
		return m, m.dispatch(func(ctx context.Context) (flowdto.StepOutput, error) {
			return m.flow.SubmitReflection(ctx, reflection)
		})

	case reflectionview.SkipMsg:
		return m, m.dispatch(m.flow.SkipReflection)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Timer, spinner and toast ticks belong to whichever part started them.
	switch m.screen {
	case flowdto.ScreenFocusSession:
		m.focus, cmd = m.focus.Update(msg)
	case flowdto.ScreenBookSelection:
		m.books, cmd = m.books.Update(msg)
	}
	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Update(msg)
	return m, tea.Batch(cmd, toastCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case flowdto.ScreenOnboarding:
		switch msg.String() {
		case "enter", " ":
			return m, m.dispatch(m.flow.Acknowledge)
		case "q":
			return m, tea.Quit
		}

	case flowdto.ScreenDashboard:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
		case ":":
			cmd = m.palette.Open()
			return m, cmd
		case "s":
			return m, m.dispatch(m.flow.StartSession)
		case "c":
			id, ok := m.dashboard.ReadyGoalID()
			if !ok {
				m.status = "no goal ready to claim"
				return m, nil
			}
			return m, m.claimGoalCmd(id)
		default:
			if ev, ok := dashboardTargets[msg.String()]; ok {
				return m, m.open(ev)
			}
		}

	case flowdto.ScreenBookSelection:
		if !m.books.Busy() {
			switch msg.String() {
			case "esc":
				return m, m.dispatch(m.flow.Back)
			case "enter":
				id, ok := m.books.SelectedBookID()
				if !ok {
					return m, nil
				}
				m.focusTitle = m.books.SelectedBookTitle()
				return m, m.dispatch(func(ctx context.Context) (flowdto.StepOutput, error) {
					return m.flow.BeginFocus(ctx, id)
				})
			}
		}
		m.books, cmd = m.books.Update(msg)
		return m, cmd

	case flowdto.ScreenFocusSession:
		if msg.String() == "esc" {
			m.focus.Stop()
			return m, m.dispatch(m.flow.Cancel)
		}
		m.focus, cmd = m.focus.Update(msg)
		return m, cmd

	case flowdto.ScreenFocusRating:
		switch msg.String() {
		case "enter":
			rating := m.rating.Value()
			return m, m.dispatch(func(ctx context.Context) (flowdto.StepOutput, error) {
				return m.flow.Rate(ctx, rating)
			})
		case "s":
			return m, m.dispatch(m.flow.SkipRating)
		}
		m.rating = m.rating.Update(msg)

	case flowdto.ScreenReflection:
		m.reflection, cmd = m.reflection.Update(msg)
		return m, cmd

	case flowdto.ScreenAISynthesis:
		switch msg.String() {
		case "enter", "k":
			return m, m.dispatch(func(ctx context.Context) (flowdto.StepOutput, error) {
				return m.flow.KeepSynthesis(ctx, nil)
			})
		case "s":
			return m, m.dispatch(m.flow.SkipSynthesis)
		}
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd

	case flowdto.ScreenStats:
		switch msg.String() {
		case "esc":
			return m, m.dispatch(m.flow.Back)
		case "e":
			return m, m.open(flowdto.EventOpenEvolution)
		}
		m.stats, cmd = m.stats.Update(msg)
		return m, cmd

	case flowdto.ScreenBookNotes:
		if msg.String() == "esc" {
			return m, m.dispatch(m.flow.Back)
		}
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd

	case flowdto.ScreenSettings:
		if msg.String() == "esc" {
			return m, m.dispatch(m.flow.Back)
		}
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd

	case flowdto.ScreenSoftLock:
		switch msg.String() {
		case "u":
			return m, m.dispatch(m.flow.Upgrade)
		case "esc":
			return m, m.dispatch(m.flow.Back)
		}

	case flowdto.ScreenUpgrade:
		switch msg.String() {
		case "g":
			return m, m.grantCmd()
		case "esc":
			return m, m.dispatch(m.flow.Back)
		}

	default:
		if msg.String() == "esc" || msg.String() == "enter" {
			return m, m.dispatch(m.flow.Back)
		}
	}
	return m, nil
}

// applyStep records the navigator's answer and prepares the next screen.
func (m Model) applyStep(msg stepMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = msg.err.Error()
		return m, nil
	}
	out := msg.out
	var cmds []tea.Cmd

	xp := 0
	if out.Session != nil {
		xp += out.Session.XPGained
	}
	for _, g := range out.XP {
		xp += g.XPGained
	}
	if xp > 0 {
		m.status = fmt.Sprintf("+%d XP", xp)
	}
	if !m.prefs.ReduceAnimations {
		for _, up := range out.LevelUps() {
			cmds = append(cmds, m.notice(notify.LevelSuccess, "Level up! "+up.To.Emoji,
				fmt.Sprintf("%s evolved into %s", up.From.Name, up.To.Name)))
		}
	}
	if out.Note != nil && !out.Note.Saved {
		cmds = append(cmds, m.notice(notify.LevelError, "Note limit reached", "This book already holds 50 notes."))
	}

	if out.From == flowdto.ScreenFocusSession {
		m.focus.Stop()
	}
	m.screen = out.Screen
	cmds = append(cmds, m.enter(out))
	return m, tea.Batch(cmds...)
}

// enter loads whatever the new screen shows.
func (m *Model) enter(out flowdto.StepOutput) tea.Cmd {
	switch out.Screen {
	case flowdto.ScreenDashboard:
		return m.dashboard.Load()
	case flowdto.ScreenBookSelection:
		return m.books.Load()
	case flowdto.ScreenFocusSession:
		return m.focus.Start(m.focusTitle, m.focusLength)
	case flowdto.ScreenFocusRating:
		m.rating = focusview.NewRating()
	case flowdto.ScreenReflection:
		return m.reflection.Reset()
	case flowdto.ScreenAISynthesis:
		if out.Synthesis != nil {
			m.notes.ShowSynthesis(*out.Synthesis)
		}
	case flowdto.ScreenBookNotes:
		return m.notes.LoadNotes()
	case flowdto.ScreenStats:
		return m.stats.Open(statsview.PageStats)
	case flowdto.ScreenEvolution:
		return m.stats.Open(statsview.PageEvolution)
	case flowdto.ScreenAchievements:
		return m.stats.Open(statsview.PageAchievements)
	case flowdto.ScreenSettings:
		return m.settings.Load()
	case flowdto.ScreenSoftLock, flowdto.ScreenUpgrade:
		return m.entitlementCmd()
	}
	return nil
}

func (m *Model) applyPrefs(s progressdto.SettingsOutput) {
	m.prefs = s
	theme.Apply(s.Theme)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = m.help.View(m.keys)
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.screenView()
	}
	content = lipgloss.NewStyle().Width(m.width).Height(contentH).Padding(0, 2).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) screenView() string {
	switch m.screen {
	case flowdto.ScreenOnboarding:
		return static.Onboarding()
	case flowdto.ScreenDashboard:
		return m.dashboard.View()
	case flowdto.ScreenBookSelection:
		return m.books.View()
	case flowdto.ScreenFocusSession:
		return m.focus.View()
	case flowdto.ScreenFocusRating:
		return m.rating.View()
	case flowdto.ScreenReflection:
		return m.reflection.View()
	case flowdto.ScreenAISynthesis, flowdto.ScreenBookNotes:
		return m.notes.View()
	case flowdto.ScreenStats, flowdto.ScreenEvolution, flowdto.ScreenAchievements:
		return m.stats.View()
	case flowdto.ScreenSettings:
		return m.settings.View()
	case flowdto.ScreenSocial:
		return static.Social()
	case flowdto.ScreenWaitlist:
		return static.Waitlist()
	case flowdto.ScreenSoftLock:
		return static.SoftLock(m.entStatus)
	case flowdto.ScreenUpgrade:
		return static.Upgrade(m.entStatus)
	}
	return theme.Muted.Render("Loading…")
}

func (m Model) renderHeader() string {
	bar := theme.Hot.Render(" StudyQuest ") + theme.Muted.Render(" "+m.screen)
	if m.toast.Visible() {
		bar += "   " + m.toast.View()
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  ::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(msg components.PaletteSubmitMsg) (tea.Model, tea.Cmd) {
	known := slices.ContainsFunc(components.PaletteCommands, func(c components.PaletteCommand) bool {
		return c.Name == msg.Name
	})
	if !known {
		m.status = "unknown command: " + msg.Name
		return m, nil
	}
	rest := msg.Args
	if rest == "" && msg.Name != "flush" {
		m.status = "usage: " + components.Usage(msg.Name)
		return m, nil
	}

	switch msg.Name {
	case "book:add":
		return m, m.run(func(ctx context.Context) (string, error) {
			b, err := m.progress.AddBook(ctx, rest)
			if err != nil {
				return "", err
			}
			return "added " + b.Icon + " " + b.Title, nil
		}, m.dashboard.Load())

	case "goal:claim":
		return m, m.claimGoalCmd(rest)

	case "note:delete":
		var reload tea.Cmd
		if m.screen == flowdto.ScreenBookNotes {
			reload = m.notes.LoadNotes()
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			return "note deleted", m.progress.DeleteNote(ctx, rest)
		}, reload)

	case "note:export":
		return m, m.run(func(ctx context.Context) (string, error) {
			out, err := m.progress.ExportNotes(ctx, rest)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("exported %d files to %s", len(out.Paths), out.Dir), nil
		}, nil)

	case "theme":
		return m, m.settings.SetTheme(rest)

	case "heatmap":
		if m.screen != flowdto.ScreenStats {
			m.status = "open stats first"
			return m, nil
		}
		cmd := m.stats.SetHeatRange(rest)
		return m, cmd

	case "flush":
		return m, m.run(func(ctx context.Context) (string, error) {
			return "progress saved", m.progress.Flush(ctx)
		}, nil)
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width - 4, Height: m.height - 4}
	m.dashboard, _ = m.dashboard.Update(sz)
	m.books, _ = m.books.Update(sz)
	m.focus, _ = m.focus.Update(sz)
	m.reflection, _ = m.reflection.Update(sz)
	m.notes, _ = m.notes.Update(sz)
	m.stats, _ = m.stats.Update(sz)
}

func (m Model) notice(level notify.Level, title, message string) tea.Cmd {
	return func() tea.Msg {
		return components.NoticeMsg{Notice: notify.Notice{Level: level, Title: title, Message: message}}
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) currentCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.flow.Current(context.Background())
		return screenLoadedMsg{out: out, err: err}
	}
}

func (m Model) dispatch(fn func(ctx context.Context) (flowdto.StepOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := fn(context.Background())
		return stepMsg{out: out, err: err}
	}
}

func (m Model) open(event string) tea.Cmd {
	return m.dispatch(func(ctx context.Context) (flowdto.StepOutput, error) {
		return m.flow.Open(ctx, event)
	})
}

// run reports fn's result in the status bar, then runs after.
func (m Model) run(fn func(ctx context.Context) (string, error), after tea.Cmd) tea.Cmd {
	return tea.Sequence(func() tea.Msg {
		text, err := fn(context.Background())
		if err != nil {
			return statusMsg{text: err.Error()}
		}
		return statusMsg{text: text}
	}, after)
}

func (m Model) claimGoalCmd(goalID string) tea.Cmd {
	return m.run(func(ctx context.Context) (string, error) {
		out, err := m.progress.ClaimGoal(ctx, goalID)
		if err != nil {
			return "", err
		}
		if !out.Granted {
			return "goal not ready or already claimed", nil
		}
		return fmt.Sprintf("goal complete! +%d XP", out.XP.XPGained), nil
	}, m.dashboard.Load())
}

func (m Model) entitlementCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.entitlement.Status(context.Background())
		return entitlementMsg{status: status, err: err}
	}
}

func (m Model) grantCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.entitlement.Grant(context.Background())
		return entitlementMsg{status: status, err: err}
	}
}
