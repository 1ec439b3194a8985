package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

func TestActivityStore_AppendAndSnapshot(t *testing.T) {
	s := NewActivityStore(zap.NewNop())

	e := model.Event{
		ID:        "evt-1",
		Type:      model.MetricSteps,
		Timestamp: time.Now(),
		Value:     5000,
	}
	s.Append("a@example.com", e)

	snap := s.Snapshot("a@example.com")
	assert.Len(t, snap.Steps, 1)
	assert.Equal(t, 5000.0, snap.Steps[0].Value)
}

func TestActivityStore_UnknownUserGetsEmptyRecord(t *testing.T) {
	s := NewActivityStore(zap.NewNop())

	snap := s.Snapshot("nobody@example.com")
	assert.NotNil(t, snap)
	assert.Empty(t, snap.Steps)
	assert.Empty(t, snap.Water)

	// Reading must not create a record.
	assert.Empty(t, s.Users())
}

func TestActivityStore_WaterAddIsAdditive(t *testing.T) {
	s := NewActivityStore(zap.NewNop())

	total := s.AddWater("a@example.com", "2024-05-15", 0.5)
	assert.Equal(t, 0.5, total)

	total = s.AddWater("a@example.com", "2024-05-15", 1.0)
	assert.Equal(t, 1.5, total)
}

func TestActivityStore_WaterSetOverwrites(t *testing.T) {
	s := NewActivityStore(zap.NewNop())

	s.AddWater("a@example.com", "2024-05-15", 2.5)
	s.SetWater("a@example.com", "2024-05-15", 1.0)

	snap := s.Snapshot("a@example.com")
	assert.Equal(t, 1.0, snap.Water.Day("2024-05-15"))
}

func TestActivityStore_SnapshotIsIsolatedFromLaterWrites(t *testing.T) {
	s := NewActivityStore(zap.NewNop())

	s.Append("a@example.com", model.Event{Type: model.MetricRunning, Timestamp: time.Now(), Value: 3})
	snap := s.Snapshot("a@example.com")

	s.Append("a@example.com", model.Event{Type: model.MetricRunning, Timestamp: time.Now(), Value: 7})
	s.AddWater("a@example.com", "2024-05-15", 2.0)

	assert.Len(t, snap.Running, 1)
	assert.Equal(t, 0.0, snap.Water.Day("2024-05-15"))
}

func TestActivityStore_ConcurrentWriters(t *testing.T) {
	s := NewActivityStore(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("user%d@example.com", n%4)
			for j := 0; j < 50; j++ {
				s.Append(email, model.Event{Type: model.MetricSteps, Timestamp: time.Now(), Value: 1})
				s.AddWater(email, "2024-05-15", 0.1)
				_ = s.Snapshot(email)
			}
		}(i)
	}
	wg.Wait()

	var events int
	for _, email := range s.Users() {
		events += len(s.Snapshot(email).Steps)
	}
	assert.Equal(t, 20*50, events)
}
