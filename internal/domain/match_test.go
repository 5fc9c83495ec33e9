package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(ts time.Time, entryID int64) TelemetryReading {
	return TelemetryReading{Time: ts, EntryID: entryID}
}

func TestClosestReading(t *testing.T) {
	target := time.Date(2025, time.November, 15, 1, 50, 0, 0, time.UTC)

	t.Run("picks minimum absolute distance", func(t *testing.T) {
		readings := []TelemetryReading{
			reading(target.Add(-30*time.Minute), 1),
			reading(target.Add(-2*time.Minute), 2),
			reading(target.Add(10*time.Minute), 3),
		}
		got := ClosestReading(target, readings)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.EntryID)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		readings := []TelemetryReading{
			reading(target.Add(10*time.Minute), 3),
			reading(target.Add(-30*time.Minute), 1),
			reading(target.Add(-2*time.Minute), 2),
		}
		got := ClosestReading(target, readings)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.EntryID)
	})

	t.Run("tie keeps first encountered", func(t *testing.T) {
		readings := []TelemetryReading{
			reading(target.Add(-5*time.Minute), 1),
			reading(target.Add(5*time.Minute), 2),
		}
		got := ClosestReading(target, readings)
		require.NotNil(t, got)
		assert.Equal(t, int64(1), got.EntryID)
	})

	t.Run("exact match wins", func(t *testing.T) {
		readings := []TelemetryReading{
			reading(target.Add(-time.Minute), 1),
			reading(target, 2),
			reading(target.Add(time.Minute), 3),
		}
		got := ClosestReading(target, readings)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.EntryID)
	})

	t.Run("empty sequence", func(t *testing.T) {
		assert.Nil(t, ClosestReading(target, nil))
		assert.Nil(t, ClosestReading(target, []TelemetryReading{}))
	})

	t.Run("zero target", func(t *testing.T) {
		readings := []TelemetryReading{reading(target, 1)}
		assert.Nil(t, ClosestReading(time.Time{}, readings))
	})
}

// The chosen reading's distance is never beaten by any other reading.
func TestClosestReading_MinimalityProperty(t *testing.T) {
	target := time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC)
	offsets := []time.Duration{
		47 * time.Minute, -3 * time.Hour, 12 * time.Second,
		-12 * time.Second, 90 * time.Minute, -88 * time.Minute,
	}
	readings := make([]TelemetryReading, len(offsets))
	for i, off := range offsets {
		readings[i] = reading(target.Add(off), int64(i))
	}

	got := ClosestReading(target, readings)
	require.NotNil(t, got)
	best := absDuration(got.Time.Sub(target))
	for _, r := range readings {
		assert.LessOrEqual(t, best, absDuration(r.Time.Sub(target)))
	}
}
