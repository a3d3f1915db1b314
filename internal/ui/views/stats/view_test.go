package stats

import (
	"strings"
	"testing"

	progressdto "studyquest/internal/modules/progress/dto"
)

func TestHeatmapGridRowsOfSeven(t *testing.T) {
	cells := make([]progressdto.HeatCellOutput, 14)
	grid := HeatmapGrid(cells)
	rows := strings.Split(grid, "\n")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d:\n%s", len(rows), grid)
	}
	if strings.Count(rows[0], "·") != 7 {
		t.Fatalf("expected 7 empty days in first row, got %q", rows[0])
	}
}

func TestHeatmapGridClampsIntensity(t *testing.T) {
	grid := HeatmapGrid([]progressdto.HeatCellOutput{{Intensity: 9}, {Intensity: -1}})
	if !strings.Contains(grid, "█") || !strings.Contains(grid, "·") {
		t.Fatalf("expected clamped glyphs, got %q", grid)
	}
}
