package reflection

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestTabMovesBetweenPrompts(t *testing.T) {
	m := New()
	m.Reset()
	m = typeText(m, "limits")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "continuity")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "one-sided")

	got := m.Value()
	if got.Understood != "limits" || got.Important != "continuity" || got.Remember != "one-sided" {
		t.Fatalf("unexpected reflection: %+v", got)
	}
}

func TestSubmitAndSkipEmitMessages(t *testing.T) {
	m := New()
	m.Reset()
	m = typeText(m, "x")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	submit, ok := cmd().(SubmitMsg)
	if !ok || submit.Reflection.Understood != "x" {
		t.Fatalf("expected submit with answer, got %#v", submit)
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(SkipMsg); !ok {
		t.Fatalf("expected skip message on esc")
	}
}
