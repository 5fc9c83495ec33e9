package domain

import "time"

// ClosestReading returns the telemetry reading nearest in time to target,
// scanning the sequence once. The input needs no particular ordering; ties
// keep the first reading encountered, so the result is deterministic for a
// fixed input order. Returns nil for an empty sequence or a zero target.
func ClosestReading(target time.Time, readings []TelemetryReading) *TelemetryReading {
	if target.IsZero() || len(readings) == 0 {
		return nil
	}
	best := 0
	bestDiff := absDuration(readings[0].Time.Sub(target))
	for i := 1; i < len(readings); i++ {
		if d := absDuration(readings[i].Time.Sub(target)); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return &readings[best]
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
