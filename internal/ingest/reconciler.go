// Package ingest reconciles scraped weather rows with water-temperature
// telemetry and persists the merged records, deduplicating against what
// earlier runs already stored.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Yuxuan-Wu/weather-training-data/internal/domain"
	"github.com/Yuxuan-Wu/weather-training-data/internal/observability"
)

// RecordStore persists merged records with natural-key deduplication.
// Insert methods report false when the record's natural key already exists;
// that outcome is a normal skip, not an error.
type RecordStore interface {
	InsertObservation(ctx context.Context, obs domain.Observation) (bool, error)
	InsertForecast(ctx context.Context, fc domain.Forecast) (bool, error)
}

// Summary reports the outcome of one reconciliation pass. Discarded counts
// rows dropped for an unparseable time; they are neither new nor skipped.
type Summary struct {
	Inserted  int
	Skipped   int
	Discarded int
}

// Add returns the element-wise sum of two summaries.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Inserted:  s.Inserted + other.Inserted,
		Skipped:   s.Skipped + other.Skipped,
		Discarded: s.Discarded + other.Discarded,
	}
}

// Column layout of a scraped hourly-history row. The gust column exists on
// the page but gust is parsed from the combined wind cell, where it never
// appears; the constant documents the slot.
const (
	obsColTime = iota
	obsColTemperature
	obsColDewPoint
	obsColHumidity
	obsColWindDirection
	obsColWindSpeed
	obsColWindGust
	obsColPressure
	obsColPrecipAmount
	obsColCondition
)

// Column layout of a scraped hourly-forecast row.
const (
	fcColTime = iota
	fcColCondition
	fcColTemperature
	fcColFeelsLike
	fcColPrecipChance
	fcColPrecipAmount
	fcColCloudCover
	fcColDewPoint
	fcColHumidity
	fcColWind
	fcColPressure
)

// Reconciler composes time normalization, unit parsing, telemetry matching,
// and the store into one ingestion pass. It holds no run state; each
// Reconcile call is an independent single-threaded pass over its batch.
type Reconciler struct {
	store   RecordStore
	loc     *time.Location
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Reconciler. loc is the station's local timezone, used to
// resolve scraped wall-clock times to UTC.
func New(store RecordStore, loc *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Reconciler {
	return &Reconciler{
		store:   store,
		loc:     loc,
		logger:  logger,
		metrics: metrics,
	}
}

// ReconcileObservations normalizes each raw observation row against the
// scrape date, attaches the nearest telemetry reading, and persists the
// result. Rows with an unparseable time are logged and dropped without
// aborting the pass. A store failure is fatal: the summary so far is
// returned along with the error.
func (r *Reconciler) ReconcileObservations(ctx context.Context, rows []domain.RawRow, readings []domain.TelemetryReading, location string, scrapedAt time.Time) (Summary, error) {
	var sum Summary
	scrapeDate := scrapedAt.In(r.loc)

	for _, row := range rows {
		timeText := row.Col(obsColTime)
		observedAt, ok := domain.ObservationInstant(timeText, scrapeDate, r.loc)
		if !ok {
			r.logger.Warn("discarding observation row with unparseable time",
				"time_text", timeText, "location", location)
			r.metrics.RowsDiscarded.WithLabelValues("observation").Inc()
			sum.Discarded++
			continue
		}

		obs := buildObservation(row, location, observedAt, scrapedAt)
		if reading := domain.ClosestReading(observedAt, readings); reading != nil {
			obs.WaterTemp035m = reading.Temp035m
			obs.WaterTemp2m = reading.Temp2m
			obs.WaterTemp7m = reading.Temp7m
			entryID := reading.EntryID
			obs.WaterTempEntryID = &entryID
		}

		inserted, err := r.store.InsertObservation(ctx, obs)
		if err != nil {
			return sum, fmt.Errorf("insert observation %s: %w", observedAt.Format(time.RFC3339), err)
		}
		if inserted {
			sum.Inserted++
			r.metrics.RecordsInserted.WithLabelValues("observation").Inc()
		} else {
			sum.Skipped++
			r.metrics.RecordsSkipped.WithLabelValues("observation").Inc()
		}
	}

	return sum, nil
}

// ReconcileForecasts normalizes each raw forecast row against the current
// local time (hours at or before it roll over to the next day) and persists
// the result. No telemetry matching: water temperature is only meaningful
// against observed conditions.
func (r *Reconciler) ReconcileForecasts(ctx context.Context, rows []domain.RawRow, location string, scrapedAt time.Time) (Summary, error) {
	var sum Summary
	nowLocal := scrapedAt.In(r.loc)

	for _, row := range rows {
		timeText := row.Col(fcColTime)
		forecastAt, ok := domain.ForecastInstant(timeText, nowLocal)
		if !ok {
			r.logger.Warn("discarding forecast row with unparseable hour",
				"time_text", timeText, "location", location)
			r.metrics.RowsDiscarded.WithLabelValues("forecast").Inc()
			sum.Discarded++
			continue
		}

		fc := buildForecast(row, location, forecastAt, scrapedAt)

		inserted, err := r.store.InsertForecast(ctx, fc)
		if err != nil {
			return sum, fmt.Errorf("insert forecast %s: %w", forecastAt.Format(time.RFC3339), err)
		}
		if inserted {
			sum.Inserted++
			r.metrics.RecordsInserted.WithLabelValues("forecast").Inc()
		} else {
			sum.Skipped++
			r.metrics.RecordsSkipped.WithLabelValues("forecast").Inc()
		}
	}

	return sum, nil
}

// buildObservation assembles the typed record from a raw history row. The
// page splits wind across two cells (speed+unit, then direction); they are
// rejoined before parsing so one malformed half degrades gracefully.
func buildObservation(row domain.RawRow, location string, observedAt, scrapedAt time.Time) domain.Observation {
	windText := strings.TrimSpace(row.Col(obsColWindSpeed) + " " + row.Col(obsColWindDirection))
	speed, direction, gust := domain.ParseWind(windText)

	return domain.Observation{
		Location:      location,
		ObservedAt:    observedAt,
		ScrapedAt:     scrapedAt,
		Temperature:   domain.ParseTemperature(row.Col(obsColTemperature)),
		DewPoint:      domain.ParseTemperature(row.Col(obsColDewPoint)),
		Humidity:      domain.ParsePercentage(row.Col(obsColHumidity)),
		WindSpeed:     speed,
		WindDirection: direction,
		WindGust:      gust,
		Pressure:      domain.ParseInches(row.Col(obsColPressure)),
		PrecipAmount:  domain.ParseInches(row.Col(obsColPrecipAmount)),
		Condition:     optText(row.Col(obsColCondition)),
	}
}

func buildForecast(row domain.RawRow, location string, forecastAt, scrapedAt time.Time) domain.Forecast {
	speed, direction, _ := domain.ParseWind(row.Col(fcColWind))

	return domain.Forecast{
		Location:      location,
		ForecastAt:    forecastAt,
		ScrapedAt:     scrapedAt,
		Temperature:   domain.ParseTemperature(row.Col(fcColTemperature)),
		FeelsLike:     domain.ParseTemperature(row.Col(fcColFeelsLike)),
		DewPoint:      domain.ParseTemperature(row.Col(fcColDewPoint)),
		Humidity:      domain.ParsePercentage(row.Col(fcColHumidity)),
		WindSpeed:     speed,
		WindDirection: direction,
		Pressure:      domain.ParseInches(row.Col(fcColPressure)),
		PrecipChance:  domain.ParsePercentage(row.Col(fcColPrecipChance)),
		PrecipAmount:  domain.ParseInches(row.Col(fcColPrecipAmount)),
		CloudCover:    domain.ParsePercentage(row.Col(fcColCloudCover)),
		Condition:     optText(row.Col(fcColCondition)),
	}
}

// optText returns nil for an empty cell so absence stays distinct from a
// present-but-empty string downstream.
func optText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
