package domain

import (
	"strings"
	"time"
)

// RawRow is one scraped table row as an ordered tuple of column text.
// The scraping harness delivers whatever the page had; rows may be short,
// and missing trailing columns read as empty cells.
type RawRow []string

// Col returns the trimmed text of column i, or "" when the row is too short.
func (r RawRow) Col(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// Observation is one stored hourly weather observation, merged with the
// nearest water-temperature telemetry reading when one was available.
// Optional fields are pointers: nil means unmeasured, which is distinct
// from a measured zero.
type Observation struct {
	Location   string
	ObservedAt time.Time // UTC
	ScrapedAt  time.Time // UTC

	Temperature   *float64 // °F
	DewPoint      *float64 // °F
	Humidity      *int     // percent
	WindSpeed     *float64 // mph
	WindDirection *string
	WindGust      *float64 // mph
	Pressure      *float64 // inches of mercury
	PrecipAmount  *float64 // inches
	Condition     *string

	WaterTemp035m    *float64 // °C at 0.35m depth
	WaterTemp2m      *float64 // °C at 2m depth
	WaterTemp7m      *float64 // °C at 7m depth
	WaterTempEntryID *int64
}

// Forecast is one stored hourly forecast entry. The same forecast hour
// scraped at two different times yields two records: both are kept so
// forecast accuracy can be measured against observations later.
type Forecast struct {
	Location   string
	ForecastAt time.Time // UTC
	ScrapedAt  time.Time // UTC

	Temperature   *float64 // °F
	FeelsLike     *float64 // °F
	DewPoint      *float64 // °F
	Humidity      *int     // percent
	WindSpeed     *float64 // mph
	WindDirection *string
	Pressure      *float64 // inches of mercury
	PrecipChance  *int     // percent
	PrecipAmount  *float64 // inches
	CloudCover    *int     // percent
	Condition     *string
}

// TelemetryReading is one timestamped water-temperature measurement from the
// river sensor channel. Readings are held only for the duration of a run;
// they are matched against observations and then discarded.
type TelemetryReading struct {
	Time     time.Time // UTC
	Temp035m *float64  // °C at 0.35m depth
	Temp2m   *float64  // °C at 2m depth
	Temp7m   *float64  // °C at 7m depth
	EntryID  int64
}
