package domain_test

import (
	"testing"

	"studyquest/internal/modules/progress/domain"
)

func TestNextStreak(t *testing.T) {
	t.Parallel()
	d := domain.Date{Year: 2026, Month: 2, Day: 28}
	prev := d
	cases := []struct {
		name    string
		current int
		last    *domain.Date
		today   domain.Date
		want    int
	}{
		{"first session ever", 0, nil, d, 1},
		{"consecutive day across month end", 4, &prev, d.AddDays(1), 5},
		{"same day", 4, &prev, d, 4},
		{"same day after reset value", 0, &prev, d, 1},
		{"gap of three days", 9, &prev, d.AddDays(3), 1},
		{"clock went backwards", 3, &prev, d.AddDays(-1), 1},
	}
	for _, tc := range cases {
		if got := domain.NextStreak(tc.current, tc.last, tc.today); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestDateTextRoundTripAndArithmetic(t *testing.T) {
	t.Parallel()
	d, err := domain.ParseDate("2024-02-28")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("leap day: got %s", got)
	}
	if got := d.DaysUntil(d.AddDays(367)); got != 367 {
		t.Fatalf("days until: got %d", got)
	}
	var back domain.Date
	if err := back.UnmarshalText([]byte("2024-03-01")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !d.Before(back) || back.Before(d) {
		t.Fatalf("ordering broken for %s and %s", d, back)
	}
	if err := back.UnmarshalText([]byte("yesterday")); err == nil {
		t.Fatalf("expected parse error")
	}
}
