package domain

type HeatmapRange string

const (
	RangeMonth HeatmapRange = "month"
	RangeYear  HeatmapRange = "year"
)

func (r HeatmapRange) Days() int {
	if r == RangeYear {
		return 365
	}
	return 35
}

type HeatCell struct {
	Date  Date
	Count int
}

// Intensity buckets the count into 0, 1, 2 or 3 (three or more sessions).
func (c HeatCell) Intensity() int {
	return min(c.Count, 3)
}

// Heatmap counts sessions per day for the window ending today, oldest first.
func Heatmap(history []SessionRecord, today Date, r HeatmapRange) []HeatCell {
	days := r.Days()
	start := today.AddDays(-(days - 1))
	counts := make(map[Date]int, len(history))
	for _, rec := range history {
		counts[rec.Date]++
	}
	cells := make([]HeatCell, days)
	for i := range cells {
		d := start.AddDays(i)
		cells[i] = HeatCell{Date: d, Count: counts[d]}
	}
	return cells
}
