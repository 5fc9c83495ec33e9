package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		hour   int
		minute int
		ok     bool
	}{
		{"morning", "1:50 AM", 1, 50, true},
		{"afternoon", "2:20 PM", 14, 20, true},
		{"midnight", "12:00 AM", 0, 0, true},
		{"noon", "12:00 PM", 12, 0, true},
		{"lowercase", "1:50 am", 1, 50, true},
		{"space before colon", "1 :50 am", 1, 50, true},
		{"space after colon", "12: 00 am", 0, 0, true},
		{"spaces both sides", "12 : 00 pm", 12, 0, true},
		{"surrounding whitespace", "  11:05 PM  ", 23, 5, true},
		{"empty", "", 0, 0, false},
		{"no meridiem", "13:00", 0, 0, false},
		{"hour zero", "0:30 AM", 0, 0, false},
		{"hour thirteen", "13:00 PM", 0, 0, false},
		{"minute sixty", "1:60 AM", 0, 0, false},
		{"garbage", "N/A", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, ok := ParseClockTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.hour, h)
				assert.Equal(t, tt.minute, m)
			}
		})
	}
}

// Whatever whitespace the page renders around the colon, the normalized
// instant must match the canonical "H:MM AM/PM" form.
func TestParseClockTime_WhitespaceVariantsAgree(t *testing.T) {
	loc := london(t)
	date := time.Date(2025, time.November, 15, 0, 0, 0, 0, loc)

	canonical, ok := ObservationInstant("1:50 AM", date, loc)
	require.True(t, ok)

	for _, variant := range []string{"1 :50 AM", "1: 50 AM", "1 : 50 AM", " 1:50 am "} {
		got, ok := ObservationInstant(variant, date, loc)
		require.True(t, ok, "variant %q", variant)
		assert.Equal(t, canonical, got, "variant %q", variant)
	}
}

func TestObservationInstant(t *testing.T) {
	loc := london(t)

	t.Run("winter date is GMT", func(t *testing.T) {
		date := time.Date(2025, time.November, 15, 0, 0, 0, 0, loc)
		got, ok := ObservationInstant("1:50 AM", date, loc)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.November, 15, 1, 50, 0, 0, time.UTC), got.UTC())
	})

	t.Run("summer date applies BST offset", func(t *testing.T) {
		date := time.Date(2025, time.July, 1, 0, 0, 0, 0, loc)
		got, ok := ObservationInstant("1:50 AM", date, loc)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.July, 1, 0, 50, 0, 0, time.UTC), got.UTC())
	})

	t.Run("unparseable time", func(t *testing.T) {
		date := time.Date(2025, time.November, 15, 0, 0, 0, 0, loc)
		_, ok := ObservationInstant("soon", date, loc)
		assert.False(t, ok)
	})

	t.Run("idempotent", func(t *testing.T) {
		date := time.Date(2025, time.November, 15, 0, 0, 0, 0, loc)
		a, okA := ObservationInstant("11:20 PM", date, loc)
		b, okB := ObservationInstant("11:20 PM", date, loc)
		require.True(t, okA)
		require.True(t, okB)
		assert.Equal(t, a, b)
	})
}

func TestForecastInstant(t *testing.T) {
	loc := london(t)
	// Current local instant: 14:30 on 2025-11-15 (GMT).
	now := time.Date(2025, time.November, 15, 14, 30, 0, 0, loc)

	t.Run("future hour stays on same day", func(t *testing.T) {
		got, ok := ForecastInstant("3:00 PM", now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.November, 15, 15, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("midnight rolls to next day", func(t *testing.T) {
		got, ok := ForecastInstant("12:00 am", now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.November, 16, 0, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("hour equal to now rolls over", func(t *testing.T) {
		got, ok := ForecastInstant("2:30 PM", now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.November, 16, 14, 30, 0, 0, time.UTC), got.UTC())
	})

	t.Run("earlier hour rolls to next day", func(t *testing.T) {
		got, ok := ForecastInstant("9:00 AM", now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.November, 16, 9, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("unparseable hour", func(t *testing.T) {
		_, ok := ForecastInstant("later", now)
		assert.False(t, ok)
	})

	t.Run("rollover across DST end", func(t *testing.T) {
		// 2025-10-25 23:00 BST (UTC+1); "10:00 pm" wraps to Oct 26, after
		// clocks go back, so the local day is 25 hours long and the instant
		// lands at 22:00 GMT.
		dstNow := time.Date(2025, time.October, 25, 23, 0, 0, 0, loc)
		got, ok := ForecastInstant("10:00 pm", dstNow)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.October, 26, 22, 0, 0, 0, time.UTC), got.UTC())
	})
}
