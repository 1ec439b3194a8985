// Package store holds the in-process activity data, partitioned by user
// email. It is the only owner of mutable state: writers are serialized per
// store and readers receive immutable snapshots, so the aggregation engine
// never observes a log mid-mutation.
package store

import (
	"sync"

	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// ActivityStore keeps one ActivityRecord per user. Records are created
// lazily on first write and never deleted.
type ActivityStore struct {
	mu     sync.RWMutex
	users  map[string]*model.ActivityRecord
	logger *zap.Logger
}

// NewActivityStore creates an empty ActivityStore.
func NewActivityStore(logger *zap.Logger) *ActivityStore {
	return &ActivityStore{
		users:  make(map[string]*model.ActivityRecord),
		logger: logger,
	}
}

// record returns the user's record, creating it if needed. Callers must
// hold the write lock.
func (s *ActivityStore) record(email string) *model.ActivityRecord {
	rec, ok := s.users[email]
	if !ok {
		rec = model.NewActivityRecord()
		s.users[email] = rec
		s.logger.Debug("created activity record", zap.String("user", email))
	}
	return rec
}

// Append adds an event to the user's log for the event's metric type.
func (s *ActivityStore) Append(email string, e model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(email).Append(e)
}

// AddWater accumulates liters onto the user's total for the given day.
func (s *ActivityStore) AddWater(email, day string, liters float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(email)
	rec.Water.Add(day, liters)
	return rec.Water.Day(day)
}

// SetWater overwrites the user's total for the given day. This is the
// explicit override operation used by the daily summary editor.
func (s *ActivityStore) SetWater(email, day string, liters float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(email).Water.Set(day, liters)
}

// Snapshot returns a deep copy of the user's record. Unknown users get an
// empty record so the dashboard always has something to render.
func (s *ActivityStore) Snapshot(email string) *model.ActivityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[email]
	if !ok {
		return model.NewActivityRecord()
	}
	return rec.Clone()
}

// Users returns the emails with at least one record, mainly for tests.
func (s *ActivityStore) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.users))
	for email := range s.users {
		out = append(out, email)
	}
	return out
}
