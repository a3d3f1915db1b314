package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyquest/internal/platform/notify"
	"studyquest/internal/ui/theme"
)

const toastTTL = 4 * time.Second

// NoticeMsg carries one notice from the notifier channel.
type NoticeMsg struct{ Notice notify.Notice }

type toastExpiredMsg struct{ seq int }

// WaitForNotice blocks on ch and delivers the next notice. Re-issue it after
// every NoticeMsg to keep listening.
func WaitForNotice(ch <-chan notify.Notice) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Notice: n}
	}
}

// Toast shows the latest notice until it expires.
type Toast struct {
	current notify.Notice
	seq     int
	shown   bool
}

func (t Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	switch msg := msg.(type) {
	case NoticeMsg:
		t.seq++
		t.current = msg.Notice
		t.shown = true
		seq := t.seq
		return t, tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
	case toastExpiredMsg:
		if msg.seq == t.seq {
			t.shown = false
		}
	}
	return t, nil
}

func (t Toast) Visible() bool { return t.shown }

func (t Toast) View() string {
	if !t.shown {
		return ""
	}
	color := theme.Info
	switch t.current.Level {
	case notify.LevelSuccess:
		color = theme.Good
	case notify.LevelError:
		color = theme.Warm
	}
	text := lipgloss.NewStyle().Foreground(color).Bold(true).Render(t.current.Title)
	if t.current.Message != "" {
		text += "  " + theme.Muted.Render(t.current.Message)
	}
	return text
}
