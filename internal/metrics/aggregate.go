package metrics

import (
	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// Op selects how filtered events are reduced to a scalar.
type Op string

const (
	// OpSum totals the metric's numeric field over the window.
	OpSum Op = "sum"
	// OpAverage divides the sum by the number of matching events,
	// returning 0 for an empty window rather than NaN.
	OpAverage Op = "average"
	// OpLast returns the value of the chronologically last matching
	// event. Sleep is reported this way: last known night, not a total.
	OpLast Op = "last"
	// OpCount returns the number of matching events, used for gym
	// session counts.
	OpCount Op = "count"
)

// fieldOf extracts the numeric field appropriate to the metric type. Events
// missing the field contribute their zero value.
func fieldOf(e model.Event, metric model.MetricType) float64 {
	switch metric {
	case model.MetricFood:
		return e.Calories
	case model.MetricGym:
		return e.Duration
	default:
		return e.Value
	}
}

// Aggregate filters events to those timestamped within the window,
// boundaries inclusive, and reduces them with the given op. An empty log
// yields 0 for every op.
func Aggregate(events []model.Event, metric model.MetricType, w Window, op Op) float64 {
	var (
		sum   float64
		count int
		last  model.Event
		found bool
	)

	for _, e := range events {
		if !w.Contains(e.Timestamp) {
			continue
		}
		sum += fieldOf(e, metric)
		count++

		// Later insertion wins on equal timestamps.
		if !found || !e.Timestamp.Before(last.Timestamp) {
			last = e
			found = true
		}
	}

	switch op {
	case OpAverage:
		if count == 0 {
			return 0
		}
		return sum / float64(count)
	case OpLast:
		if !found {
			return 0
		}
		return fieldOf(last, metric)
	case OpCount:
		return float64(count)
	default:
		return sum
	}
}

// AggregateWater sums the ledger entries whose calendar day falls within
// the window's day range.
func AggregateWater(ledger model.WaterLedger, w Window) float64 {
	if len(ledger) == 0 {
		return 0
	}
	var total float64
	for _, day := range w.DayKeys() {
		total += ledger[day]
	}
	return total
}

// DayTotal sums the metric's field over the events logged on the calendar
// day identified by key. Used for trend series and streak calculation.
func DayTotal(events []model.Event, metric model.MetricType, key string) float64 {
	var total float64
	for _, e := range events {
		if model.DayKey(e.Timestamp) == key {
			total += fieldOf(e, metric)
		}
	}
	return total
}
