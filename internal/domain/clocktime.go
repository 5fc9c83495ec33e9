package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// clockTimeRe matches a 12-hour clock cell such as "1:50 AM" or "12 :00 am".
// The forecast page renders stray whitespace around the colon, so both sides
// of it are allowed to carry spaces.
var clockTimeRe = regexp.MustCompile(`(?i)^\s*(\d{1,2})\s*:\s*(\d{2})\s*([AP]M)\s*$`)

// ParseClockTime parses a 12-hour clock string into a 24-hour (hour, minute)
// pair. ok is false for anything the page should not have produced.
func ParseClockTime(s string) (hour, minute int, ok bool) {
	m := clockTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, false
	}
	if strings.EqualFold(m[3], "PM") {
		if hour != 12 {
			hour += 12
		}
	} else if hour == 12 {
		hour = 0
	}
	return hour, minute, true
}

// ObservationInstant combines an observation's wall-clock text with the
// reference date in loc and converts to UTC. History pages list the scrape
// date's own hours, so there is no rollover here. The zone's offset at that
// date, including DST, comes from loc.
func ObservationInstant(text string, date time.Time, loc *time.Location) (time.Time, bool) {
	h, m, ok := ParseClockTime(text)
	if !ok {
		return time.Time{}, false
	}
	local := time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, loc)
	return local.UTC(), true
}

// ForecastInstant resolves a forecast hour against the current local time.
// Hourly forecast listings start at the next hour and wrap past midnight, so
// a time-of-day at or before nowLocal belongs to the following day.
func ForecastInstant(text string, nowLocal time.Time) (time.Time, bool) {
	h, m, ok := ParseClockTime(text)
	if !ok {
		return time.Time{}, false
	}
	loc := nowLocal.Location()
	local := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), h, m, 0, 0, loc)
	if !local.After(nowLocal) {
		local = time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day()+1, h, m, 0, 0, loc)
	}
	return local.UTC(), true
}
