package domain

import (
	"strconv"
	"strings"
)

// The parse helpers below are total: any input string yields either a typed
// value or nil. Scraped cells are frequently empty, "N/A", or carry unit
// suffixes, and a bad cell must never abort the row it came from.

// ParseTemperature parses a temperature cell like "55 °F" or "55°" into
// degrees Fahrenheit. Returns nil when no numeric value remains after
// stripping the unit.
func ParseTemperature(s string) *float64 {
	s = strings.ReplaceAll(s, "°F", "")
	s = strings.ReplaceAll(s, "°", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParsePercentage parses a percentage cell like "77 %" into an integer.
func ParsePercentage(s string) *int {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// ParseInches parses an inches cell like "29.60 in" or "0.0 in", used for
// both pressure and precipitation amounts.
func ParseInches(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, "in", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseWind splits a combined wind cell like "12 mph E" or "23 mph" into
// speed and compass direction. Gust is not derivable from this cell layout
// and is always nil; the caller keeps the field for schema alignment.
// A malformed cell yields all three nil.
func ParseWind(s string) (speed *float64, direction *string, gust *float64) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return nil, nil, nil
	}
	v, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, nil, nil
	}
	speed = &v
	switch {
	case len(parts) > 2:
		direction = &parts[2]
	case len(parts) > 1 && parts[1] != "mph":
		direction = &parts[1]
	}
	return speed, direction, nil
}
