package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/Yuxuan-Wu/weather-training-data/internal/domain"
)

// DryRunStore satisfies RecordStore without touching a database. Every
// insert is logged and reported as new, with in-memory natural-key
// deduplication so a dry run still produces honest skip counts.
type DryRunStore struct {
	logger  *slog.Logger
	obsKeys map[string]struct{}
	fcKeys  map[string]struct{}
}

// NewDryRunStore creates a store that only logs would-be inserts.
func NewDryRunStore(logger *slog.Logger) *DryRunStore {
	return &DryRunStore{
		logger:  logger,
		obsKeys: make(map[string]struct{}),
		fcKeys:  make(map[string]struct{}),
	}
}

func (d *DryRunStore) InsertObservation(_ context.Context, obs domain.Observation) (bool, error) {
	key := obs.Location + "|" + obs.ObservedAt.Format(time.RFC3339)
	if _, dup := d.obsKeys[key]; dup {
		return false, nil
	}
	d.obsKeys[key] = struct{}{}
	d.logger.Info("dry-run: would insert observation",
		"location", obs.Location, "observed_at", obs.ObservedAt.Format(time.RFC3339))
	return true, nil
}

func (d *DryRunStore) InsertForecast(_ context.Context, fc domain.Forecast) (bool, error) {
	key := fc.Location + "|" + fc.ForecastAt.Format(time.RFC3339) + "|" + fc.ScrapedAt.Format(time.RFC3339)
	if _, dup := d.fcKeys[key]; dup {
		return false, nil
	}
	d.fcKeys[key] = struct{}{}
	d.logger.Info("dry-run: would insert forecast",
		"location", fc.Location, "forecast_at", fc.ForecastAt.Format(time.RFC3339))
	return true, nil
}
