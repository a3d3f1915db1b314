package domain_test

import (
	"testing"

	"studyquest/internal/modules/progress/domain"
)

func TestHeatmapWindowAndIntensity(t *testing.T) {
	t.Parallel()
	day := domain.Date{Year: 2026, Month: 3, Day: 31}
	history := []domain.SessionRecord{
		{BookID: "a", Date: day},
		{BookID: "a", Date: day},
		{BookID: "b", Date: day},
		{BookID: "b", Date: day},
		{BookID: "a", Date: day.AddDays(-1)},
		{BookID: "a", Date: day.AddDays(-40)},
	}

	month := domain.Heatmap(history, day, domain.RangeMonth)
	if len(month) != 35 {
		t.Fatalf("month window has %d cells", len(month))
	}
	if month[0].Date != day.AddDays(-34) || month[34].Date != day {
		t.Fatalf("window must end today, oldest first: %s..%s", month[0].Date, month[34].Date)
	}
	if month[34].Count != 4 || month[34].Intensity() != 3 {
		t.Fatalf("today: %+v", month[34])
	}
	if month[33].Intensity() != 1 || month[0].Intensity() != 0 {
		t.Fatalf("unexpected intensities")
	}

	year := domain.Heatmap(history, day, domain.RangeYear)
	total := 0
	for _, c := range year {
		total += c.Count
	}
	if len(year) != 365 || total != 6 {
		t.Fatalf("year window: %d cells, %d sessions", len(year), total)
	}
}
