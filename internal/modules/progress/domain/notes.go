package domain

import "sort"

// MaxNotesPerBook caps stored notes per book. Inserts past it are refused.
const MaxNotesPerBook = 50

type Reflection struct {
	Understood string `json:"understood"`
	Important  string `json:"important"`
	Remember   string `json:"remember"`
}

func (r Reflection) Empty() bool {
	return r.Understood == "" && r.Important == "" && r.Remember == ""
}

type Synthesis struct {
	Summary     string `json:"summary"`
	KeyTakeaway string `json:"keyTakeaway"`
}

type BookNote struct {
	ID          string     `json:"id"`
	BookID      string     `json:"bookId"`
	SessionID   string     `json:"sessionId"`
	Date        Date       `json:"date"`
	Reflection  Reflection `json:"reflection"`
	Synthesis   *Synthesis `json:"synthesis,omitempty"`
	FocusRating *Rating    `json:"focusRating,omitempty"`
}

func CountNotesForBook(notes []BookNote, bookID string) int {
	n := 0
	for _, note := range notes {
		if note.BookID == bookID {
			n++
		}
	}
	return n
}

// NotesForBook returns the book's notes newest first. Notes written on the
// same day are listed last-written first.
func NotesForBook(notes []BookNote, bookID string) []BookNote {
	out := make([]BookNote, 0)
	for i := len(notes) - 1; i >= 0; i-- {
		if notes[i].BookID == bookID {
			out = append(out, notes[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date)
	})
	return out
}

func cloneNotes(notes []BookNote) []BookNote {
	out := make([]BookNote, len(notes))
	for i, n := range notes {
		out[i] = n
		if n.Synthesis != nil {
			s := *n.Synthesis
			out[i].Synthesis = &s
		}
		if n.FocusRating != nil {
			r := *n.FocusRating
			out[i].FocusRating = &r
		}
	}
	return out
}
