package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"studyquest/internal/platform/notify"
)

func TestLevelRatioClamps(t *testing.T) {
	cases := []struct {
		current, next int
		want          float64
	}{
		{20, 200, 0.1},
		{0, 100, 0},
		{-5, 100, 0},
		{300, 200, 1},
		{5, 0, 1},
	}
	for _, tc := range cases {
		if got := LevelRatio(tc.current, tc.next); got != tc.want {
			t.Fatalf("LevelRatio(%d, %d) = %v, want %v", tc.current, tc.next, got, tc.want)
		}
	}
}

func TestToastOnlyLatestExpiryHides(t *testing.T) {
	var toast Toast
	toast, _ = toast.Update(NoticeMsg{Notice: notify.Notice{Level: notify.LevelSuccess, Title: "Welcome back!"}})
	toast, _ = toast.Update(NoticeMsg{Notice: notify.Notice{Level: notify.LevelInfo, Title: "Signed out"}})

	toast, _ = toast.Update(toastExpiredMsg{seq: 1})
	if !toast.Visible() {
		t.Fatalf("stale expiry must not hide the newer notice")
	}
	if !strings.Contains(toast.View(), "Signed out") {
		t.Fatalf("expected latest notice in view, got %q", toast.View())
	}
	toast, _ = toast.Update(toastExpiredMsg{seq: 2})
	if toast.Visible() {
		t.Fatalf("expected toast hidden after its own expiry")
	}
}

func TestPaletteSubmitSplitsCommand(t *testing.T) {
	p := NewPalette()
	p.Open()
	p.input.SetValue("  Theme ocean ")
	p, cmd := p.Update(keyEnter())
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Name != "theme" || msg.Args != "ocean" {
		t.Fatalf("unexpected submit message: %#v", msg)
	}
}

func TestPaletteTabCompletesAndHistoryRecalls(t *testing.T) {
	p := NewPalette()
	p.Open()
	p.input.SetValue("goal")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "goal:claim " {
		t.Fatalf("tab completion = %q", got)
	}
	p.input.SetValue("flush")
	p, _ = p.Update(keyEnter())

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := p.input.Value(); got != "flush" {
		t.Fatalf("history recall = %q", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := p.input.Value(); got != "" {
		t.Fatalf("down past newest should clear, got %q", got)
	}
}

func TestUsage(t *testing.T) {
	if got := Usage("note:export"); got != "note:export <dir>" {
		t.Fatalf("Usage = %q", got)
	}
	if got := Usage("flush"); got != "flush" {
		t.Fatalf("Usage = %q", got)
	}
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
