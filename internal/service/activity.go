package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/internal/store"
	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// ActivityService handles activity logging business logic: validation,
// identifier and timestamp assignment, and appending to the store. Event
// timestamps are set here at logging time and are not user-editable.
type ActivityService struct {
	store  *store.ActivityStore
	logger *zap.Logger
}

// NewActivityService creates a new ActivityService.
func NewActivityService(store *store.ActivityStore, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		store:  store,
		logger: logger,
	}
}

// LogRequest carries one activity entry to be logged. The fields used
// depend on Type, mirroring the event payload.
type LogRequest struct {
	Type     model.MetricType  `json:"type"`
	Value    float64           `json:"value"`
	Category model.GymCategory `json:"category"`
	Exercise string            `json:"exercise"`
	Duration float64           `json:"duration"`
	Name     string            `json:"name"`
	Calories float64           `json:"calories"`
	Carbs    float64           `json:"carbs"`
	Protein  float64           `json:"protein"`
	Fat      float64           `json:"fat"`
}

// LogActivity validates and appends one event to the user's log.
func (s *ActivityService) LogActivity(email string, req LogRequest) (*model.Event, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid metric type: %s", req.Type)
	}

	e := model.Event{
		ID:        uuid.New().String(),
		Type:      req.Type,
		Timestamp: time.Now(),
	}

	switch req.Type {
	case model.MetricSteps, model.MetricRunning, model.MetricSleep:
		if req.Value <= 0 {
			return nil, fmt.Errorf("value must be positive for %s", req.Type)
		}
		if req.Type == model.MetricSleep && req.Value > 24 {
			return nil, fmt.Errorf("sleep hours cannot exceed 24")
		}
		e.Value = req.Value

	case model.MetricGym:
		if !req.Category.Valid() {
			return nil, fmt.Errorf("invalid gym category: %s", req.Category)
		}
		if req.Duration <= 0 {
			return nil, fmt.Errorf("duration must be positive")
		}
		e.Category = req.Category
		e.Exercise = req.Exercise
		e.Duration = req.Duration

	case model.MetricFood:
		if req.Name == "" {
			return nil, fmt.Errorf("food name is required")
		}
		if req.Calories < 0 || req.Carbs < 0 || req.Protein < 0 || req.Fat < 0 {
			return nil, fmt.Errorf("nutrition values cannot be negative")
		}
		e.Name = req.Name
		e.Calories = req.Calories
		e.Carbs = req.Carbs
		e.Protein = req.Protein
		e.Fat = req.Fat
	}

	s.store.Append(email, e)

	s.logger.Info("activity logged",
		zap.String("event_id", e.ID),
		zap.String("user", email),
		zap.String("type", string(e.Type)),
	)

	return &e, nil
}

// LogWater adds liters onto today's water total and returns the new total.
// Water logging is always additive; overwriting goes through SetWater.
func (s *ActivityService) LogWater(email string, liters float64) (float64, error) {
	if email == "" {
		return 0, fmt.Errorf("user email is required")
	}
	if liters <= 0 {
		return 0, fmt.Errorf("liters must be positive")
	}

	day := model.DayKey(time.Now())
	total := s.store.AddWater(email, day, liters)

	s.logger.Info("water logged",
		zap.String("user", email),
		zap.String("day", day),
		zap.Float64("liters", liters),
		zap.Float64("day_total", total),
	)

	return total, nil
}

// SetWater overwrites a day's water total. This is the explicit override
// operation for correcting a day's entry.
func (s *ActivityService) SetWater(email, day string, liters float64) error {
	if email == "" {
		return fmt.Errorf("user email is required")
	}
	if liters < 0 {
		return fmt.Errorf("liters cannot be negative")
	}
	if _, err := time.Parse(model.DayKeyLayout, day); err != nil {
		return fmt.Errorf("invalid day %q: %w", day, err)
	}

	s.store.SetWater(email, day, liters)

	s.logger.Info("water total overwritten",
		zap.String("user", email),
		zap.String("day", day),
		zap.Float64("liters", liters),
	)

	return nil
}

// RecentEntries returns the user's entries for one metric over the last 7
// days, newest first, capped at 10 for history display.
func (s *ActivityService) RecentEntries(email string, metric model.MetricType, now time.Time) ([]model.Event, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	if !metric.Valid() {
		return nil, fmt.Errorf("invalid metric type: %s", metric)
	}

	cutoff := now.AddDate(0, 0, -7)
	var recent []model.Event
	for _, e := range s.store.Snapshot(email).Events(metric) {
		if !e.Timestamp.Before(cutoff) {
			recent = append(recent, e)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if len(recent) > 10 {
		recent = recent[:10]
	}
	return recent, nil
}
