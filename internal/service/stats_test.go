package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/internal/metrics"
	"github.com/fittrack-id/fittrack-backend/internal/store"
	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

var statsNow = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

func newStatsFixture(t *testing.T) (*store.ActivityStore, *StatsService) {
	t.Helper()
	logger := zap.NewNop()
	st := store.NewActivityStore(logger)
	return st, NewStatsService(st, logger)
}

func seed(st *store.ActivityStore, email string, metric model.MetricType, ts time.Time, value float64) {
	st.Append(email, model.Event{Type: metric, Timestamp: ts, Value: value})
}

func seedGym(st *store.ActivityStore, email string, ts time.Time, category model.GymCategory, minutes float64) {
	st.Append(email, model.Event{Type: model.MetricGym, Timestamp: ts, Category: category, Duration: minutes})
}

func seedFood(st *store.ActivityStore, email string, ts time.Time, calories float64) {
	st.Append(email, model.Event{Type: model.MetricFood, Timestamp: ts, Name: "meal", Calories: calories})
}

func TestDashboard_TodayTotalsAndBurn(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	seed(st, email, model.MetricSteps, statsNow.Add(-2*time.Hour), 6000)
	seed(st, email, model.MetricSteps, statsNow.Add(-time.Hour), 4000)
	seed(st, email, model.MetricRunning, statsNow.Add(-3*time.Hour), 5)
	seedGym(st, email, statsNow.Add(-4*time.Hour), model.GymCardio, 30)
	seedFood(st, email, statsNow.Add(-time.Hour), 650)
	st.AddWater(email, model.DayKey(statsNow), 1.5)

	// Yesterday's data must not leak into today's totals.
	seed(st, email, model.MetricSteps, statsNow.AddDate(0, 0, -1), 9999)

	stats, err := svc.Dashboard(email, statsNow)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, stats.TodaySteps)
	assert.Equal(t, 5.0, stats.TodayRunningKm)
	assert.Equal(t, 30.0, stats.TodayGymMinutes)
	assert.Equal(t, 1.5, stats.TodayWaterLiters)
	assert.Equal(t, 650.0, stats.TodayCaloriesIn)

	// 10000*0.04 + 5*60 + 30*5
	assert.Equal(t, 850, stats.CaloriesBurned)
}

func TestDashboard_EmptyUserIsAllZeros(t *testing.T) {
	_, svc := newStatsFixture(t)

	stats, err := svc.Dashboard("nobody@example.com", statsNow)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.TodaySteps)
	assert.Equal(t, 0, stats.CaloriesBurned)
	assert.Equal(t, 0.0, stats.LastSleepHours)
	assert.Equal(t, 0, stats.StreakDays)
	assert.Equal(t, 0.0, stats.WeeklyGoalProgress)
}

func TestDashboard_RequiresEmail(t *testing.T) {
	_, svc := newStatsFixture(t)

	_, err := svc.Dashboard("", statsNow)
	assert.Error(t, err)
}

func TestDashboard_LastSleepIsMostRecentEntry(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	seed(st, email, model.MetricSleep, statsNow.AddDate(0, 0, -3), 6.0)
	seed(st, email, model.MetricSleep, statsNow.AddDate(0, 0, -1), 7.5)

	stats, err := svc.Dashboard(email, statsNow)
	require.NoError(t, err)

	assert.Equal(t, 7.5, stats.LastSleepHours)
}

func TestDashboard_MonthlyGymSessions(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	seedGym(st, email, statsNow.AddDate(0, 0, -1), model.GymCardio, 45)
	seedGym(st, email, statsNow.AddDate(0, 0, -5), model.GymStrength, 60)
	// Previous calendar month.
	seedGym(st, email, statsNow.AddDate(0, -1, 0), model.GymCardio, 60)

	stats, err := svc.Dashboard(email, statsNow)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.MonthlyGymSessions)
}

func TestDashboard_StreakCountsActiveDays(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	seed(st, email, model.MetricSteps, statsNow.Add(-time.Hour), 5000)
	seed(st, email, model.MetricSteps, statsNow.AddDate(0, 0, -1), 6000)
	st.AddWater(email, model.DayKey(statsNow.AddDate(0, 0, -2)), 2.0)

	stats, err := svc.Dashboard(email, statsNow)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.StreakDays)
}

func TestProgress_CapsAtHundred(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	seed(st, email, model.MetricSteps, statsNow.Add(-time.Hour), 25000)
	seed(st, email, model.MetricRunning, statsNow.Add(-time.Hour), 2.5)

	progress, err := svc.Progress(email, statsNow)
	require.NoError(t, err)

	assert.Equal(t, 100.0, progress.Steps)
	assert.Equal(t, 50.0, progress.Running)
	assert.Equal(t, 0.0, progress.Water)
}

func TestOverview_SevenDayTotals(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	seed(st, email, model.MetricSteps, statsNow.AddDate(0, 0, -1), 8000)
	seed(st, email, model.MetricSteps, statsNow.AddDate(0, 0, -3), 12000)
	seed(st, email, model.MetricSleep, statsNow.AddDate(0, 0, -1), 8)
	seed(st, email, model.MetricSleep, statsNow.AddDate(0, 0, -2), 6)
	seedFood(st, email, statsNow.AddDate(0, 0, -1), 2000)
	st.AddWater(email, model.DayKey(statsNow.AddDate(0, 0, -2)), 2.0)

	// Outside the window.
	seed(st, email, model.MetricSteps, statsNow.AddDate(0, 0, -10), 99999)

	overview, err := svc.Overview(email, "7days", statsNow)
	require.NoError(t, err)

	assert.Equal(t, "7days", overview.Period)
	assert.Equal(t, 20000.0, overview.Steps)
	assert.Equal(t, 7.0, overview.AvgSleepHours)
	assert.Equal(t, 2.0, overview.WaterLiters)
	assert.Equal(t, 2000.0, overview.CaloriesIn)

	// 20000*0.04 = 800 burned, so a 1200 kcal surplus.
	assert.Equal(t, 800, overview.CaloriesOut)
	assert.Equal(t, -1200.0, overview.Deficit)
}

func TestOverview_RejectsUnknownPeriod(t *testing.T) {
	_, svc := newStatsFixture(t)

	_, err := svc.Overview("a@example.com", "fortnight", statsNow)
	assert.Error(t, err)
}

func TestOverviewRange_InvalidBoundaries(t *testing.T) {
	_, svc := newStatsFixture(t)

	_, err := svc.OverviewRange("a@example.com", statsNow, statsNow.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, metrics.ErrInvalidRange)
}

func TestOverviewRange_CustomBoundariesVerbatim(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	start := statsNow.AddDate(0, 0, -3)
	end := statsNow.AddDate(0, 0, -1)

	seed(st, email, model.MetricSteps, start, 1000)                // at start, included
	seed(st, email, model.MetricSteps, end, 2000)                  // at end, included
	seed(st, email, model.MetricSteps, start.Add(-time.Hour), 500) // before start

	overview, err := svc.OverviewRange(email, start, end)
	require.NoError(t, err)

	assert.Equal(t, "custom", overview.Period)
	assert.Equal(t, 3000.0, overview.Steps)
}

func TestTrend_SevenDaysOldestFirst(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	seed(st, email, model.MetricSteps, statsNow, 3000)
	seed(st, email, model.MetricSteps, statsNow.AddDate(0, 0, -6), 1000)

	series, err := svc.Trend(email, statsNow)
	require.NoError(t, err)

	require.Len(t, series.Labels, 7)
	require.Len(t, series.Steps, 7)

	assert.Equal(t, "May 9", series.Labels[0])
	assert.Equal(t, "May 15", series.Labels[6])
	assert.Equal(t, 1000.0, series.Steps[0])
	assert.Equal(t, 3000.0, series.Steps[6])
}

func TestCalorieBalance_DailyBurnUsesFullModel(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	day := statsNow.AddDate(0, 0, -2)
	seed(st, email, model.MetricSteps, day, 10000)
	seed(st, email, model.MetricRunning, day, 5)
	seedGym(st, email, day, model.GymCardio, 30)
	seedFood(st, email, day, 1800)

	series, err := svc.CalorieBalance(email, statsNow)
	require.NoError(t, err)

	require.Len(t, series.CaloriesOut, 7)
	assert.Equal(t, 850.0, series.CaloriesOut[4])
	assert.Equal(t, 1800.0, series.CaloriesIn[4])
	assert.Equal(t, 0.0, series.CaloriesOut[6])
}

func TestComparison_WeeksDoNotOverlap(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	// This week: full weekly step target.
	seed(st, email, model.MetricSteps, statsNow.AddDate(0, 0, -1), 70000)
	// Prior week only.
	seed(st, email, model.MetricSteps, statsNow.AddDate(0, 0, -10), 35000)

	comparison, err := svc.Comparison(email, statsNow)
	require.NoError(t, err)

	require.Equal(t, comparisonAxes, comparison.Axes)
	require.Len(t, comparison.ThisWeek, 6)
	require.Len(t, comparison.LastWeek, 6)

	assert.Equal(t, 100.0, comparison.ThisWeek[0])
	assert.Equal(t, 50.0, comparison.LastWeek[0])
}

func TestComparison_FoodAxisCanGoNegative(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	// Big calorie surplus this week, no activity.
	seedFood(st, email, statsNow.AddDate(0, 0, -1), 8000)

	comparison, err := svc.Comparison(email, statsNow)
	require.NoError(t, err)

	foodScore := comparison.ThisWeek[5]
	assert.Less(t, foodScore, 0.0)
}

func TestDistribution_CountsAndOrder(t *testing.T) {
	st, svc := newStatsFixture(t)
	email := "a@example.com"

	seedGym(st, email, statsNow.AddDate(0, 0, -1), model.GymStrength, 60)
	seedGym(st, email, statsNow.AddDate(0, 0, -2), model.GymCardio, 30)
	seedGym(st, email, statsNow.AddDate(0, 0, -3), model.GymStrength, 45)

	dist, err := svc.Distribution(email, statsNow)
	require.NoError(t, err)

	require.Len(t, dist, 2)
	assert.Equal(t, "strength", dist[0].Category)
	assert.Equal(t, 2, dist[0].Count)
	assert.Equal(t, "cardio", dist[1].Category)
	assert.Equal(t, 1, dist[1].Count)
}

func TestDistribution_EmptyGetsPlaceholder(t *testing.T) {
	_, svc := newStatsFixture(t)

	dist, err := svc.Distribution("nobody@example.com", statsNow)
	require.NoError(t, err)

	require.Len(t, dist, 1)
	assert.Equal(t, "No data", dist[0].Label)
	assert.Equal(t, 1, dist[0].Count)
}
