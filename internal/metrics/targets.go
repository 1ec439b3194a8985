package metrics

// Fixed activity targets used for progress normalization. These are product
// constants, not configuration.
const (
	TargetStepsDaily    = 10000.0
	TargetStepsWeekly   = 70000.0
	TargetRunningDaily  = 5.0  // km
	TargetRunningWeekly = 35.0 // km
	TargetWaterDaily    = 2.0  // liters
	TargetWaterWeekly   = 14.0 // liters
	TargetSleepDaily    = 8.0  // hours
	TargetGymDaily      = 60.0 // minutes
	TargetGymWeekly     = 300.0
	TargetGymSessions   = 12 // sessions per month

	// TargetWeeklyDeficit is the weekly calorie deficit corresponding to
	// roughly 0.5 kg of weight loss.
	TargetWeeklyDeficit = 3500.0
)

// Per-unit calorie burn estimates for the linear burn model.
const (
	caloriesPerStep      = 0.04
	caloriesPerKmRunning = 60.0
	caloriesPerGymMinute = 5.0
)

// StreakLookbackDays bounds how far back the streak calculation walks.
const StreakLookbackDays = 30
