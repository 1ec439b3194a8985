package metrics

import (
	"math"
	"time"

	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// EstimatedCaloriesBurned applies the fixed linear burn model:
// 0.04 kcal per step, 60 kcal per km run, 5 kcal per gym minute, rounded
// half away from zero. The model is a documented approximation and must
// stay exact for display parity.
func EstimatedCaloriesBurned(steps, runningKm, gymMinutes float64) int {
	return int(math.Round(steps*caloriesPerStep + runningKm*caloriesPerKmRunning + gymMinutes*caloriesPerGymMinute))
}

// CalorieDeficit returns caloriesOut minus caloriesIn, signed: positive is
// a deficit, negative a surplus.
func CalorieDeficit(caloriesOut, caloriesIn float64) float64 {
	return caloriesOut - caloriesIn
}

// ProgressPercent normalizes an actual value against its target, capped at
// 100. Targets are fixed positive constants; a non-positive target yields 0
// rather than a division by zero.
func ProgressPercent(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := actual / target * 100
	if p > 100 {
		return 100
	}
	return p
}

// WeeklyFoodScore scores the week's calorie balance against the 3500 kcal
// deficit target, capped at 100. A surplus yields a negative score; there
// is deliberately no floor at 0.
func WeeklyFoodScore(caloriesOut, caloriesIn float64) float64 {
	score := (caloriesOut - caloriesIn) / TargetWeeklyDeficit * 100
	if score > 100 {
		return 100
	}
	return score
}

// CategoryCount is one slice of the gym category distribution.
type CategoryCount struct {
	Category model.GymCategory
	Count    int
}

// CategoryDistribution counts gym events per category within the window.
// The order of first occurrence is preserved so chart legends stay stable
// across recomputations. Returns nil when no gym events fall in the window;
// the caller decides what placeholder to show.
func CategoryDistribution(gymEvents []model.Event, w Window) []CategoryCount {
	var (
		order  []model.GymCategory
		counts = make(map[model.GymCategory]int)
	)
	for _, e := range gymEvents {
		if !w.Contains(e.Timestamp) {
			continue
		}
		if _, seen := counts[e.Category]; !seen {
			order = append(order, e.Category)
		}
		counts[e.Category]++
	}

	if len(order) == 0 {
		return nil
	}
	out := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

// ActivityStreak counts consecutive active calendar days ending today,
// walking backward from now for at most StreakLookbackDays. A day is active
// when any steps, running distance or water was logged; gym-only days do
// not extend the streak. Returns 0 when today itself is inactive.
func ActivityStreak(steps, running []model.Event, water model.WaterLedger, now time.Time) int {
	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		day := now.AddDate(0, 0, -i)
		key := model.DayKey(day)

		active := DayTotal(steps, model.MetricSteps, key) > 0 ||
			DayTotal(running, model.MetricRunning, key) > 0 ||
			water.Day(key) > 0
		if !active {
			break
		}
		streak++
	}
	return streak
}
