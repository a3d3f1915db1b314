package focus

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func space() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}} }

func TestCountdownFinishesAfterTotal(t *testing.T) {
	m := New()
	m.Start("Mathematics", 3*time.Second)

	var cmd tea.Cmd
	for i := 0; i < 2; i++ {
		m, cmd = m.Update(tickMsg{seq: m.seq})
		if cmd == nil {
			t.Fatalf("tick %d should schedule the next tick", i)
		}
	}
	m, cmd = m.Update(tickMsg{seq: m.seq})
	if m.Remaining() != 0 {
		t.Fatalf("expected countdown at zero, got %s", m.Remaining())
	}
	if _, ok := cmd().(FinishedMsg); !ok {
		t.Fatalf("expected FinishedMsg on the last tick")
	}
}

func TestPauseKeepsRemainingTime(t *testing.T) {
	m := New()
	m.Start("Mathematics", 10*time.Second)
	m, _ = m.Update(tickMsg{seq: m.seq})

	m, _ = m.Update(space())
	if !m.Paused() {
		t.Fatalf("expected paused after space")
	}
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tickMsg{seq: m.seq})
	}
	if m.Remaining() != 9*time.Second {
		t.Fatalf("paused ticks must not consume time, remaining %s", m.Remaining())
	}
	m, _ = m.Update(space())
	m, _ = m.Update(tickMsg{seq: m.seq})
	if m.Remaining() != 8*time.Second {
		t.Fatalf("expected resume to continue from 9s, remaining %s", m.Remaining())
	}
}

func TestStaleTicksAreIgnored(t *testing.T) {
	m := New()
	m.Start("Mathematics", 10*time.Second)
	old := m.seq
	m.Start("German Language", 10*time.Second)
	m, cmd := m.Update(tickMsg{seq: old})
	if cmd != nil || m.Remaining() != 10*time.Second {
		t.Fatalf("tick from the previous attempt must be dropped")
	}
}

func TestMotivationRotatesEveryThreeSeconds(t *testing.T) {
	m := New()
	m.Start("Mathematics", time.Minute)
	first := m.Motivation()
	for i := 0; i < rotateEvery-1; i++ {
		m, _ = m.Update(tickMsg{seq: m.seq})
	}
	if m.Motivation() != first {
		t.Fatalf("message changed before %d seconds", rotateEvery)
	}
	m, _ = m.Update(tickMsg{seq: m.seq})
	if m.Motivation() == first {
		t.Fatalf("message did not rotate after %d seconds", rotateEvery)
	}
}

func TestRatingClampsAndAcceptsDigits(t *testing.T) {
	r := NewRating()
	r = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	r = r.Update(tea.KeyMsg{Type: tea.KeyRight})
	if r.Value() != 5 {
		t.Fatalf("expected clamp at 5, got %d", r.Value())
	}
	for i := 0; i < 6; i++ {
		r = r.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	if r.Value() != 1 {
		t.Fatalf("expected clamp at 1, got %d", r.Value())
	}
}
