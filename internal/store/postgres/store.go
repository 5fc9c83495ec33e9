// Package postgres persists reconciled weather records. Natural-key
// uniqueness is enforced by the database itself: every insert is a single
// INSERT ... ON CONFLICT DO NOTHING, so concurrent partitions cannot race a
// check-then-insert, and a duplicate is a reported skip rather than an error.
package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Yuxuan-Wu/weather-training-data/internal/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS weather_observations (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	scrape_timestamp TIMESTAMPTZ NOT NULL,
	observation_timestamp TIMESTAMPTZ NOT NULL,
	location TEXT NOT NULL,
	temperature_f DOUBLE PRECISION,
	dew_point_f DOUBLE PRECISION,
	humidity_pct INTEGER,
	wind_speed_mph DOUBLE PRECISION,
	wind_direction TEXT,
	wind_gust_mph DOUBLE PRECISION,
	pressure_in DOUBLE PRECISION,
	precip_amount_in DOUBLE PRECISION,
	condition TEXT,
	water_temp_0_35m_c DOUBLE PRECISION,
	water_temp_2m_c DOUBLE PRECISION,
	water_temp_7m_c DOUBLE PRECISION,
	water_temp_entry_id BIGINT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (location, observation_timestamp)
);

CREATE TABLE IF NOT EXISTS weather_forecasts (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	scrape_timestamp TIMESTAMPTZ NOT NULL,
	forecast_timestamp TIMESTAMPTZ NOT NULL,
	location TEXT NOT NULL,
	temperature_f DOUBLE PRECISION,
	feels_like_f DOUBLE PRECISION,
	dew_point_f DOUBLE PRECISION,
	humidity_pct INTEGER,
	wind_speed_mph DOUBLE PRECISION,
	wind_direction TEXT,
	pressure_in DOUBLE PRECISION,
	precip_chance_pct INTEGER,
	precip_amount_in DOUBLE PRECISION,
	cloud_cover_pct INTEGER,
	condition TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (location, forecast_timestamp, scrape_timestamp)
);

CREATE INDEX IF NOT EXISTS idx_obs_timestamp ON weather_observations (observation_timestamp);
CREATE INDEX IF NOT EXISTS idx_obs_location ON weather_observations (location);
CREATE INDEX IF NOT EXISTS idx_forecast_timestamp ON weather_forecasts (forecast_timestamp);
CREATE INDEX IF NOT EXISTS idx_forecast_scrape ON weather_forecasts (scrape_timestamp);
`

const insertObservationSQL = `
INSERT INTO weather_observations (
	scrape_timestamp, observation_timestamp, location,
	temperature_f, dew_point_f, humidity_pct,
	wind_speed_mph, wind_direction, wind_gust_mph,
	pressure_in, precip_amount_in, condition,
	water_temp_0_35m_c, water_temp_2m_c, water_temp_7m_c,
	water_temp_entry_id
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
ON CONFLICT (location, observation_timestamp) DO NOTHING`

const insertForecastSQL = `
INSERT INTO weather_forecasts (
	scrape_timestamp, forecast_timestamp, location,
	temperature_f, feels_like_f, dew_point_f, humidity_pct,
	wind_speed_mph, wind_direction, pressure_in,
	precip_chance_pct, precip_amount_in, cloud_cover_pct, condition
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (location, forecast_timestamp, scrape_timestamp) DO NOTHING`

// Store is a Postgres-backed record store. It implements ingest.RecordStore.
type Store struct {
	pool *pgxpool.Pool

	mu          sync.Mutex
	schemaReady bool
}

// Open connects to the database and verifies the connection. The schema is
// established lazily on first use, not here.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect record store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping record store: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// CheckReadiness reports whether the backend is reachable.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// ensureSchema creates tables and indexes if absent. Safe to call on every
// operation: it runs the DDL once per Store and retries on a later call if
// the first attempt failed.
func (s *Store) ensureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schemaReady {
		return nil
	}
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	s.schemaReady = true
	return nil
}

// InsertObservation persists one observation. Returns false without error
// when a record with the same (location, observation instant) already
// exists.
func (s *Store) InsertObservation(ctx context.Context, obs domain.Observation) (bool, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return false, err
	}
	tag, err := s.pool.Exec(ctx, insertObservationSQL,
		obs.ScrapedAt, obs.ObservedAt, obs.Location,
		obs.Temperature, obs.DewPoint, obs.Humidity,
		obs.WindSpeed, obs.WindDirection, obs.WindGust,
		obs.Pressure, obs.PrecipAmount, obs.Condition,
		obs.WaterTemp035m, obs.WaterTemp2m, obs.WaterTemp7m,
		obs.WaterTempEntryID,
	)
	if err != nil {
		return false, fmt.Errorf("insert observation: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertForecast persists one forecast entry. Returns false without error
// when a record with the same (location, forecast instant, scrape instant)
// already exists.
func (s *Store) InsertForecast(ctx context.Context, fc domain.Forecast) (bool, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return false, err
	}
	tag, err := s.pool.Exec(ctx, insertForecastSQL,
		fc.ScrapedAt, fc.ForecastAt, fc.Location,
		fc.Temperature, fc.FeelsLike, fc.DewPoint, fc.Humidity,
		fc.WindSpeed, fc.WindDirection, fc.Pressure,
		fc.PrecipChance, fc.PrecipAmount, fc.CloudCover, fc.Condition,
	)
	if err != nil {
		return false, fmt.Errorf("insert forecast: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ObservationCount returns the number of stored observations, optionally
// filtered by location. Pass "" for all locations.
func (s *Store) ObservationCount(ctx context.Context, location string) (int64, error) {
	return s.count(ctx, "weather_observations", location)
}

// ForecastCount returns the number of stored forecasts, optionally filtered
// by location. Pass "" for all locations.
func (s *Store) ForecastCount(ctx context.Context, location string) (int64, error) {
	return s.count(ctx, "weather_forecasts", location)
}

func (s *Store) count(ctx context.Context, table, location string) (int64, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return 0, err
	}
	query := "SELECT COUNT(*) FROM " + table
	args := []any{}
	if location != "" {
		query += " WHERE location = $1"
		args = append(args, location)
	}
	var n int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
