package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/internal/metrics"
	"github.com/fittrack-id/fittrack-backend/internal/store"
	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// StatsService computes dashboard and analytics views by running the
// aggregation engine over immutable store snapshots. All methods take the
// current time explicitly so results are reproducible.
type StatsService struct {
	store  *store.ActivityStore
	logger *zap.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(store *store.ActivityStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// DashboardStats is the headline view: today's totals, the burn estimate
// and the goal and streak indicators.
type DashboardStats struct {
	TodaySteps         float64 `json:"today_steps"`
	TodayRunningKm     float64 `json:"today_running_km"`
	TodayWaterLiters   float64 `json:"today_water_liters"`
	TodayGymMinutes    float64 `json:"today_gym_minutes"`
	TodayCaloriesIn    float64 `json:"today_calories_in"`
	CaloriesBurned     int     `json:"calories_burned"`
	LastSleepHours     float64 `json:"last_sleep_hours"`
	MonthlyGymSessions int     `json:"monthly_gym_sessions"`
	WeeklyGoalProgress float64 `json:"weekly_goal_progress"`
	StreakDays         int     `json:"streak_days"`
}

// DailyProgress holds today's progress percentages against the fixed
// daily targets, one bar per metric.
type DailyProgress struct {
	Steps   float64 `json:"steps"`
	Running float64 `json:"running"`
	Water   float64 `json:"water"`
	Sleep   float64 `json:"sleep"`
	Gym     float64 `json:"gym"`
}

// PeriodOverview summarizes one aggregation period.
type PeriodOverview struct {
	Period        string  `json:"period"`
	Steps         float64 `json:"steps"`
	RunningKm     float64 `json:"running_km"`
	WaterLiters   float64 `json:"water_liters"`
	AvgSleepHours float64 `json:"avg_sleep_hours"`
	GymMinutes    float64 `json:"gym_minutes"`
	GymSessions   int     `json:"gym_sessions"`
	CaloriesIn    float64 `json:"calories_in"`
	CaloriesOut   int     `json:"calories_out"`
	Deficit       float64 `json:"deficit"`
}

// TrendSeries is a 7-day per-day series for the trend charts. Labels and
// value slices are index-aligned, oldest day first.
type TrendSeries struct {
	Labels      []string  `json:"labels"`
	Steps       []float64 `json:"steps"`
	RunningKm   []float64 `json:"running_km"`
	WaterLiters []float64 `json:"water_liters"`
}

// CalorieBalanceSeries is the 7-day intake versus burn series.
type CalorieBalanceSeries struct {
	Labels      []string  `json:"labels"`
	CaloriesIn  []float64 `json:"calories_in"`
	CaloriesOut []float64 `json:"calories_out"`
}

// WeeklyComparison holds normalized scores for this week and the prior
// week across the six tracked dimensions, axis-aligned for radar charts.
type WeeklyComparison struct {
	Axes     []string  `json:"axes"`
	ThisWeek []float64 `json:"this_week"`
	LastWeek []float64 `json:"last_week"`
}

// DistributionSlice is one gym category share for the distribution chart.
type DistributionSlice struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

var comparisonAxes = []string{"Steps", "Running", "Water", "Sleep", "Gym", "Food"}

// Dashboard computes the headline stats for a user.
func (s *StatsService) Dashboard(email string, now time.Time) (*DashboardStats, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	rec := s.store.Snapshot(email)

	today := metrics.WindowFor(metrics.WindowToday, now)
	week := metrics.WindowFor(metrics.WindowLast7Days, now)
	all := metrics.Window{Start: time.Time{}, End: now}

	steps := metrics.Aggregate(rec.Steps, model.MetricSteps, today, metrics.OpSum)
	running := metrics.Aggregate(rec.Running, model.MetricRunning, today, metrics.OpSum)
	gymMin := metrics.Aggregate(rec.Gym, model.MetricGym, today, metrics.OpSum)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	month, err := metrics.CustomWindow(monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build month window: %w", err)
	}

	weekSteps := metrics.Aggregate(rec.Steps, model.MetricSteps, week, metrics.OpSum)

	stats := &DashboardStats{
		TodaySteps:         steps,
		TodayRunningKm:     running,
		TodayWaterLiters:   metrics.AggregateWater(rec.Water, today),
		TodayGymMinutes:    gymMin,
		TodayCaloriesIn:    metrics.Aggregate(rec.Food, model.MetricFood, today, metrics.OpSum),
		CaloriesBurned:     metrics.EstimatedCaloriesBurned(steps, running, gymMin),
		LastSleepHours:     metrics.Aggregate(rec.Sleep, model.MetricSleep, all, metrics.OpLast),
		MonthlyGymSessions: int(metrics.Aggregate(rec.Gym, model.MetricGym, month, metrics.OpCount)),
		WeeklyGoalProgress: metrics.ProgressPercent(weekSteps, metrics.TargetStepsWeekly),
		StreakDays:         metrics.ActivityStreak(rec.Steps, rec.Running, rec.Water, now),
	}

	s.logger.Debug("dashboard computed",
		zap.String("user", email),
		zap.Int("streak_days", stats.StreakDays),
	)

	return stats, nil
}

// Progress computes today's progress bars against the daily targets.
func (s *StatsService) Progress(email string, now time.Time) (*DailyProgress, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	rec := s.store.Snapshot(email)

	today := metrics.WindowFor(metrics.WindowToday, now)
	all := metrics.Window{Start: time.Time{}, End: now}

	return &DailyProgress{
		Steps:   metrics.ProgressPercent(metrics.Aggregate(rec.Steps, model.MetricSteps, today, metrics.OpSum), metrics.TargetStepsDaily),
		Running: metrics.ProgressPercent(metrics.Aggregate(rec.Running, model.MetricRunning, today, metrics.OpSum), metrics.TargetRunningDaily),
		Water:   metrics.ProgressPercent(metrics.AggregateWater(rec.Water, today), metrics.TargetWaterDaily),
		Sleep:   metrics.ProgressPercent(metrics.Aggregate(rec.Sleep, model.MetricSleep, all, metrics.OpLast), metrics.TargetSleepDaily),
		Gym:     metrics.ProgressPercent(metrics.Aggregate(rec.Gym, model.MetricGym, today, metrics.OpSum), metrics.TargetGymDaily),
	}, nil
}

// Overview summarizes one predefined period. The period string must be one
// of today, 7days, 30days or 90days.
func (s *StatsService) Overview(email, period string, now time.Time) (*PeriodOverview, error) {
	kind := metrics.WindowKind(period)
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid period: %s", period)
	}
	return s.overview(email, string(kind), metrics.WindowFor(kind, now))
}

// OverviewRange summarizes a caller-supplied custom range. Boundaries are
// used verbatim; a start after end is rejected with metrics.ErrInvalidRange.
func (s *StatsService) OverviewRange(email string, start, end time.Time) (*PeriodOverview, error) {
	w, err := metrics.CustomWindow(start, end)
	if err != nil {
		return nil, err
	}
	return s.overview(email, "custom", w)
}

func (s *StatsService) overview(email, label string, w metrics.Window) (*PeriodOverview, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	rec := s.store.Snapshot(email)

	steps := metrics.Aggregate(rec.Steps, model.MetricSteps, w, metrics.OpSum)
	running := metrics.Aggregate(rec.Running, model.MetricRunning, w, metrics.OpSum)
	gymMin := metrics.Aggregate(rec.Gym, model.MetricGym, w, metrics.OpSum)
	caloriesIn := metrics.Aggregate(rec.Food, model.MetricFood, w, metrics.OpSum)
	caloriesOut := metrics.EstimatedCaloriesBurned(steps, running, gymMin)

	return &PeriodOverview{
		Period:        label,
		Steps:         steps,
		RunningKm:     running,
		WaterLiters:   metrics.AggregateWater(rec.Water, w),
		AvgSleepHours: metrics.Aggregate(rec.Sleep, model.MetricSleep, w, metrics.OpAverage),
		GymMinutes:    gymMin,
		GymSessions:   int(metrics.Aggregate(rec.Gym, model.MetricGym, w, metrics.OpCount)),
		CaloriesIn:    caloriesIn,
		CaloriesOut:   caloriesOut,
		Deficit:       metrics.CalorieDeficit(float64(caloriesOut), caloriesIn),
	}, nil
}

// Trend computes the 7-day per-day activity series, oldest day first.
func (s *StatsService) Trend(email string, now time.Time) (*TrendSeries, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	rec := s.store.Snapshot(email)

	series := &TrendSeries{}
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := model.DayKey(day)

		series.Labels = append(series.Labels, day.Format("Jan 2"))
		series.Steps = append(series.Steps, metrics.DayTotal(rec.Steps, model.MetricSteps, key))
		series.RunningKm = append(series.RunningKm, metrics.DayTotal(rec.Running, model.MetricRunning, key))
		series.WaterLiters = append(series.WaterLiters, rec.Water.Day(key))
	}
	return series, nil
}

// CalorieBalance computes the 7-day intake versus estimated burn series,
// oldest day first. The burn uses the same linear model as the dashboard.
func (s *StatsService) CalorieBalance(email string, now time.Time) (*CalorieBalanceSeries, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	rec := s.store.Snapshot(email)

	series := &CalorieBalanceSeries{}
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := model.DayKey(day)

		burned := metrics.EstimatedCaloriesBurned(
			metrics.DayTotal(rec.Steps, model.MetricSteps, key),
			metrics.DayTotal(rec.Running, model.MetricRunning, key),
			metrics.DayTotal(rec.Gym, model.MetricGym, key),
		)

		series.Labels = append(series.Labels, day.Format("Jan 2"))
		series.CaloriesIn = append(series.CaloriesIn, metrics.DayTotal(rec.Food, model.MetricFood, key))
		series.CaloriesOut = append(series.CaloriesOut, float64(burned))
	}
	return series, nil
}

// Comparison scores this week against the prior week across the six
// tracked dimensions. The prior week is the non-overlapping 7-day window
// immediately before the current one.
func (s *StatsService) Comparison(email string, now time.Time) (*WeeklyComparison, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	rec := s.store.Snapshot(email)

	cur := metrics.WindowFor(metrics.WindowLast7Days, now)
	prior := metrics.PriorPeriod(metrics.WindowLast7Days, now)

	return &WeeklyComparison{
		Axes:     comparisonAxes,
		ThisWeek: s.weekScores(rec, cur),
		LastWeek: s.weekScores(rec, prior),
	}, nil
}

// weekScores normalizes one week's totals against the weekly targets. The
// food axis uses the deficit score, which can go negative; the others are
// plain capped progress percentages.
func (s *StatsService) weekScores(rec *model.ActivityRecord, w metrics.Window) []float64 {
	steps := metrics.Aggregate(rec.Steps, model.MetricSteps, w, metrics.OpSum)
	running := metrics.Aggregate(rec.Running, model.MetricRunning, w, metrics.OpSum)
	gymMin := metrics.Aggregate(rec.Gym, model.MetricGym, w, metrics.OpSum)
	caloriesIn := metrics.Aggregate(rec.Food, model.MetricFood, w, metrics.OpSum)
	caloriesOut := metrics.EstimatedCaloriesBurned(steps, running, gymMin)

	return []float64{
		metrics.ProgressPercent(steps, metrics.TargetStepsWeekly),
		metrics.ProgressPercent(running, metrics.TargetRunningWeekly),
		metrics.ProgressPercent(metrics.AggregateWater(rec.Water, w), metrics.TargetWaterWeekly),
		metrics.ProgressPercent(metrics.Aggregate(rec.Sleep, model.MetricSleep, w, metrics.OpAverage), metrics.TargetSleepDaily),
		metrics.ProgressPercent(gymMin, metrics.TargetGymWeekly),
		metrics.WeeklyFoodScore(float64(caloriesOut), caloriesIn),
	}
}

// Distribution returns the 30-day gym category distribution. When the user
// has no gym sessions in the window a single "No data" placeholder slice is
// returned so charts always have something to render.
func (s *StatsService) Distribution(email string, now time.Time) ([]DistributionSlice, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	rec := s.store.Snapshot(email)

	w := metrics.WindowFor(metrics.WindowLast30Days, now)
	dist := metrics.CategoryDistribution(rec.Gym, w)
	if dist == nil {
		return []DistributionSlice{{Category: "none", Label: "No data", Count: 1}}, nil
	}

	out := make([]DistributionSlice, 0, len(dist))
	for _, d := range dist {
		out = append(out, DistributionSlice{
			Category: string(d.Category),
			Label:    d.Category.DisplayName(),
			Count:    d.Count,
		})
	}
	return out, nil
}
