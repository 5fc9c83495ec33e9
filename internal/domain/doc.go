// Package domain models hourly weather observations and forecasts scraped
// from Weather Underground, and the river water-temperature telemetry they
// are reconciled with.
//
// # Data Sources
//
// Observation rows come from the daily history page
// (wunderground.com/history/daily/<region>/<location>/date/<date>), one table
// row per hourly observation. Forecast rows come from the hourly forecast
// page (wunderground.com/hourly/<location>), which lists the next ~24 hours
// starting from the upcoming hour. Both pages are rendered and stripped to
// raw cell text by an external scraping harness; this package only sees
// ordered tuples of column text.
//
// Water-temperature telemetry is a ThingSpeak channel feed sampled every few
// minutes, carrying up to three depth temperatures per entry. Readings are
// fetched fresh each run and matched to observations by nearest instant.
//
// # Cell Conventions
//
// Times are 12-hour wall-clock strings local to the station ("1:50 AM").
// Forecast cells sometimes carry stray whitespace around the colon
// ("12 :00 am"). Units ride along inside the cells:
//
//	temperature:  "55 °F"
//	percentage:   "77 %"
//	pressure:     "29.60 in"
//	precip:       "0.0 in"
//	wind:         "12 mph E"  (speed, unit literal, optional compass direction)
//
// Empty cells, "N/A", and other non-numeric residue all mean unmeasured. The
// parse helpers are total functions: they return nil for such cells and never
// fail, because one bad cell must not take down the row or the batch.
//
// # Time Normalization
//
// A wall-clock string plus a reference date in the station's zone resolves to
// a UTC instant via standard civil-time conversion, DST included. History
// rows use the scrape date as-is. Forecast rows roll over: the listing starts
// at the next hour and wraps past midnight, so a time-of-day at or before the
// current local time belongs to the following calendar day. See
// [ObservationInstant] and [ForecastInstant].
//
// # Natural Keys
//
// An observation is unique per (location, observation instant). A forecast is
// unique per (location, forecast instant, scrape instant): the same forecast
// hour scraped at two different times is two records, kept deliberately so
// forecast accuracy can be measured after the fact.
package domain
