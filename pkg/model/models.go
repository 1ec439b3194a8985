package model

import "time"

// User represents a registered user. The email address is the partition key
// for all activity data.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	WeightKg  float64   `json:"weight_kg,omitempty"`
	HeightCm  float64   `json:"height_cm,omitempty"`
	BirthDate string    `json:"birth_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MetricType identifies the kind of activity an event records.
type MetricType string

const (
	MetricSteps   MetricType = "steps"
	MetricRunning MetricType = "running"
	MetricGym     MetricType = "gym"
	MetricSleep   MetricType = "sleep"
	MetricFood    MetricType = "food"
)

// MetricTypes lists all event-backed metric types. Water is tracked in a
// day-keyed ledger rather than an event log.
var MetricTypes = []MetricType{MetricSteps, MetricRunning, MetricGym, MetricSleep, MetricFood}

// Valid reports whether m is a known metric type.
func (m MetricType) Valid() bool {
	switch m {
	case MetricSteps, MetricRunning, MetricGym, MetricSleep, MetricFood:
		return true
	}
	return false
}

// GymCategory is the closed set of workout categories used for distribution
// charts. The specific exercise name stays free text on the event.
type GymCategory string

const (
	GymCardio      GymCategory = "cardio"
	GymStrength    GymCategory = "strength"
	GymFunctional  GymCategory = "functional"
	GymFlexibility GymCategory = "flexibility"
	GymSports      GymCategory = "sports"
)

// GymCategoryInfo carries the display attributes for a gym category.
type GymCategoryInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// GymCategories maps each category to its display record.
var GymCategories = map[GymCategory]GymCategoryInfo{
	GymCardio:      {Name: "Cardio & Aerobic", Icon: "🏃"},
	GymStrength:    {Name: "Strength Training", Icon: "🏋️"},
	GymFunctional:  {Name: "Functional Training", Icon: "🤸"},
	GymFlexibility: {Name: "Flexibility & Mobility", Icon: "🧘"},
	GymSports:      {Name: "Sports & Recreation", Icon: "⚽"},
}

// Valid reports whether c is a known gym category.
func (c GymCategory) Valid() bool {
	_, ok := GymCategories[c]
	return ok
}

// DisplayName returns the human-readable name for a category, falling back
// to the raw value for unknown categories from older logs.
func (c GymCategory) DisplayName() string {
	if info, ok := GymCategories[c]; ok {
		return info.Name
	}
	return string(c)
}

// Event is a single timestamped activity log entry. The payload fields used
// depend on Type: Value for steps (count), running (km) and sleep (hours);
// Category, Exercise and Duration for gym; Name and the macro fields for
// food. Unused fields stay at their zero value, and aggregation treats
// missing fields as zero rather than failing.
type Event struct {
	ID        string      `json:"id"`
	Type      MetricType  `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Value     float64     `json:"value,omitempty"`
	Category  GymCategory `json:"category,omitempty"`
	Exercise  string      `json:"exercise,omitempty"`
	Duration  float64     `json:"duration,omitempty"`
	Name      string      `json:"name,omitempty"`
	Calories  float64     `json:"calories,omitempty"`
	Carbs     float64     `json:"carbs,omitempty"`
	Protein   float64     `json:"protein,omitempty"`
	Fat       float64     `json:"fat,omitempty"`
}

// DayKeyLayout is the calendar-day key format used by the water ledger and
// day-bucketed aggregation.
const DayKeyLayout = "2006-01-02"

// DayKey returns the calendar-day key for t in t's location.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// WaterLedger records cumulative liters per calendar day. At most one entry
// exists per day; logging is additive.
type WaterLedger map[string]float64

// Add accumulates liters onto the given day's total.
func (w WaterLedger) Add(day string, liters float64) {
	w[day] += liters
}

// Set overwrites the given day's total. This is the explicit override
// operation; regular logging goes through Add.
func (w WaterLedger) Set(day string, liters float64) {
	w[day] = liters
}

// Day returns the total liters logged for the given day key, zero when the
// day has no entry.
func (w WaterLedger) Day(day string) float64 {
	return w[day]
}

// Clone returns an independent copy of the ledger.
func (w WaterLedger) Clone() WaterLedger {
	out := make(WaterLedger, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// ActivityRecord holds one append-only event log per metric type plus the
// water ledger for a single user. Records are created lazily on first
// access and events are never mutated or deleted.
type ActivityRecord struct {
	Steps   []Event     `json:"steps"`
	Running []Event     `json:"running"`
	Gym     []Event     `json:"gym"`
	Sleep   []Event     `json:"sleep"`
	Food    []Event     `json:"food"`
	Water   WaterLedger `json:"water"`
}

// NewActivityRecord returns an empty record with an initialized ledger.
func NewActivityRecord() *ActivityRecord {
	return &ActivityRecord{Water: make(WaterLedger)}
}

// Events returns the event log for the given metric type.
func (r *ActivityRecord) Events(m MetricType) []Event {
	switch m {
	case MetricSteps:
		return r.Steps
	case MetricRunning:
		return r.Running
	case MetricGym:
		return r.Gym
	case MetricSleep:
		return r.Sleep
	case MetricFood:
		return r.Food
	}
	return nil
}

// Append adds an event to the log matching its metric type.
func (r *ActivityRecord) Append(e Event) {
	switch e.Type {
	case MetricSteps:
		r.Steps = append(r.Steps, e)
	case MetricRunning:
		r.Running = append(r.Running, e)
	case MetricGym:
		r.Gym = append(r.Gym, e)
	case MetricSleep:
		r.Sleep = append(r.Sleep, e)
	case MetricFood:
		r.Food = append(r.Food, e)
	}
}

// Clone returns a deep copy of the record, safe to read after the original
// is mutated by further logging.
func (r *ActivityRecord) Clone() *ActivityRecord {
	return &ActivityRecord{
		Steps:   append([]Event(nil), r.Steps...),
		Running: append([]Event(nil), r.Running...),
		Gym:     append([]Event(nil), r.Gym...),
		Sleep:   append([]Event(nil), r.Sleep...),
		Food:    append([]Event(nil), r.Food...),
		Water:   r.Water.Clone(),
	}
}

// NutritionEstimate is the structured result of AI food detection. Calories
// are kcal, macros are grams for the detected portion.
type NutritionEstimate struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}
