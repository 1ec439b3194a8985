package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowFor_Today(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 12, 0, time.UTC)

	w := WindowFor(WindowToday, now)

	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, now, w.End)
}

func TestWindowFor_RollingPreservesTimeOfDay(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 12, 0, time.UTC)

	for _, tc := range []struct {
		kind WindowKind
		days int
	}{
		{WindowLast7Days, 7},
		{WindowLast30Days, 30},
		{WindowLast90Days, 90},
	} {
		w := WindowFor(tc.kind, now)
		assert.Equal(t, now.AddDate(0, 0, -tc.days), w.Start, "kind %s", tc.kind)
		assert.Equal(t, now, w.End, "kind %s", tc.kind)
	}
}

func TestWindow_ContainsBoundaries(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 12, 0, time.UTC)
	w := WindowFor(WindowLast7Days, now)

	assert.True(t, w.Contains(w.Start), "event exactly at start is included")
	assert.True(t, w.Contains(w.End), "event exactly at end is included")
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)), "one instant before start is excluded")
	assert.False(t, w.Contains(w.End.Add(time.Nanosecond)))
}

func TestCustomWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	w, err := CustomWindow(start, end)
	require.NoError(t, err)
	assert.Equal(t, start, w.Start)
	assert.Equal(t, end, w.End)
}

func TestCustomWindow_RejectsInvertedRange(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := CustomWindow(start, end)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPriorPeriod_WeekDoesNotOverlap(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 12, 0, time.UTC)

	cur := WindowFor(WindowLast7Days, now)
	prior := PriorPeriod(WindowLast7Days, now)

	assert.Equal(t, now.AddDate(0, 0, -14), prior.Start)
	assert.True(t, prior.End.Before(cur.Start), "prior window must end before the current one begins")
	assert.False(t, prior.Contains(cur.Start))
	assert.True(t, prior.Contains(now.AddDate(0, 0, -10)))
}

func TestPriorPeriod_Today(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 12, 0, time.UTC)

	prior := PriorPeriod(WindowToday, now)

	assert.Equal(t, time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), prior.Start)
	assert.True(t, prior.End.Before(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, prior.Contains(time.Date(2024, 5, 14, 18, 0, 0, 0, time.UTC)))
}

func TestWindow_DayKeys(t *testing.T) {
	w, err := CustomWindow(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, w.DayKeys())
}

func TestWindow_DayKeysSingleDay(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	w := WindowFor(WindowToday, now)

	assert.Equal(t, []string{"2024-05-15"}, w.DayKeys())
}
