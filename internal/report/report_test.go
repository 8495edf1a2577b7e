package report

import (
	"strings"
	"testing"
	"time"

	"github.com/dinerozz/tabsnoop-backend/internal/entity"
	service "github.com/dinerozz/tabsnoop-backend/internal/service/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ListsDomainsInOrder(t *testing.T) {
	day := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	start := day.Add(-time.Hour).UnixMilli()

	records := map[string]entity.DomainRecord{
		"b.com": {TotalTime: 60_000, Visits: []entity.VisitInterval{{Start: start, End: start + 60_000}}},
		"a.com": {TotalTime: 3_600_000, Visits: []entity.VisitInterval{{Start: start, End: start + 3_600_000}}},
	}

	out := Render(service.Aggregate(records, day, time.UTC), 10)

	assert.Contains(t, out, "Today (2024-05-01): 01:01:00")
	assert.Contains(t, out, "a.com: 01:00:00")
	assert.Contains(t, out, "b.com: 00:01:00")
	assert.Less(t, strings.Index(out, "a.com: "), strings.Index(out, "b.com: "))
	assert.Contains(t, out, strings.Repeat("█", 10))
}

func TestRender_Empty(t *testing.T) {
	out := Render(&entity.Summary{Date: "2024-05-01", TodayFormatted: "00:00:00"}, 0)

	assert.Contains(t, out, "No data recorded yet.")
	assert.Contains(t, out, "00:00:00")
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, top int64
		filled     int
	}{
		{10, 10, 8},
		{5, 10, 4},
		{0, 10, 0},
		{0, 0, 0},
	}

	for _, tt := range tests {
		out := bar(tt.value, tt.top, 8)
		require.Equal(t, 8, strings.Count(out, "█")+strings.Count(out, "░"))
		assert.Equal(t, tt.filled, strings.Count(out, "█"))
	}
}
