// Command ingest runs one reconciliation pass: it reads scraped weather rows
// from disk, fetches water-temperature telemetry, merges and deduplicates,
// and persists the result.
//
// Usage:
//
//	go run ./cmd/ingest -mode both \
//	  -obs-rows data/observed_rows.csv \
//	  -forecast-rows data/forecast_rows.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/Yuxuan-Wu/weather-training-data/internal/adapter/http"
	"github.com/Yuxuan-Wu/weather-training-data/internal/adapter/rowfile"
	"github.com/Yuxuan-Wu/weather-training-data/internal/adapter/thingspeak"
	"github.com/Yuxuan-Wu/weather-training-data/internal/config"
	"github.com/Yuxuan-Wu/weather-training-data/internal/domain"
	"github.com/Yuxuan-Wu/weather-training-data/internal/ingest"
	"github.com/Yuxuan-Wu/weather-training-data/internal/observability"
	"github.com/Yuxuan-Wu/weather-training-data/internal/store/postgres"
)

func main() {
	mode := flag.String("mode", "both", "what to ingest: actual, forecast, or both")
	obsRows := flag.String("obs-rows", "", "path to the scraped observation row batch")
	fcRows := flag.String("forecast-rows", "", "path to the scraped forecast row batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, metrics, *mode, *obsRows, *fcRows); err != nil {
		logger.Error("ingestion run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, mode, obsRows, fcRows string) error {
	ingestActual := mode == "actual" || mode == "both"
	ingestForecast := mode == "forecast" || mode == "both"
	if !ingestActual && !ingestForecast {
		return fmt.Errorf("unknown mode %q (want actual, forecast, or both)", mode)
	}
	if ingestActual && obsRows == "" {
		return errors.New("-obs-rows is required in actual mode")
	}
	if ingestForecast && fcRows == "" {
		return errors.New("-forecast-rows is required in forecast mode")
	}

	var store ingest.RecordStore
	var ready httpadapter.ReadinessChecker
	var pg *postgres.Store

	if cfg.DryRun {
		logger.Info("dry run: records will be logged, not persisted")
		store = ingest.NewDryRunStore(logger)
	} else {
		var err error
		pg, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		store = pg
		ready = pg
	}

	// Optional metrics listener for scrapes during the run.
	var srv *httpadapter.Server
	if cfg.MetricsAddr != "" {
		srv = httpadapter.NewServer(cfg.MetricsAddr, ready, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	scrapedAt := domain.Now().UTC().Truncate(time.Second)
	reconciler := ingest.New(store, cfg.LocationTZ, logger, metrics)

	var total ingest.Summary

	if ingestActual {
		sum, err := runActual(ctx, cfg, logger, metrics, reconciler, obsRows, scrapedAt)
		if err != nil {
			return err
		}
		total = total.Add(sum)
	}

	if ingestForecast {
		sum, err := runForecast(ctx, cfg, logger, metrics, reconciler, fcRows, scrapedAt)
		if err != nil {
			return err
		}
		total = total.Add(sum)
	}

	logger.Info("run complete",
		"mode", mode,
		"inserted", total.Inserted,
		"skipped", total.Skipped,
		"discarded", total.Discarded)

	if pg != nil {
		logTotals(ctx, pg, logger, cfg.Location)
	}
	return nil
}

func runActual(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, reconciler *ingest.Reconciler, path string, scrapedAt time.Time) (ingest.Summary, error) {
	rows, err := rowfile.ReadBatch(path)
	if err != nil {
		return ingest.Summary{}, err
	}
	logger.Info("loaded observation rows", "count", len(rows), "path", path)

	readings := fetchTelemetry(ctx, cfg, logger, metrics)

	start := domain.Now()
	sum, err := reconciler.ReconcileObservations(ctx, rows, readings, cfg.Location, scrapedAt)
	metrics.RunDuration.WithLabelValues("actual").Observe(domain.Now().Sub(start).Seconds())
	if err != nil {
		return sum, err
	}

	logger.Info("observations reconciled",
		"inserted", sum.Inserted, "skipped", sum.Skipped, "discarded", sum.Discarded)
	return sum, nil
}

func runForecast(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, reconciler *ingest.Reconciler, path string, scrapedAt time.Time) (ingest.Summary, error) {
	rows, err := rowfile.ReadBatch(path)
	if err != nil {
		return ingest.Summary{}, err
	}
	if len(rows) > cfg.ForecastHours {
		rows = rows[:cfg.ForecastHours]
	}
	logger.Info("loaded forecast rows", "count", len(rows), "path", path)

	start := domain.Now()
	sum, err := reconciler.ReconcileForecasts(ctx, rows, cfg.Location, scrapedAt)
	metrics.RunDuration.WithLabelValues("forecast").Observe(domain.Now().Sub(start).Seconds())
	if err != nil {
		return sum, err
	}

	logger.Info("forecasts reconciled",
		"inserted", sum.Inserted, "skipped", sum.Skipped, "discarded", sum.Discarded)
	return sum, nil
}

// fetchTelemetry pulls recent water-temperature readings. A failure degrades
// the run rather than aborting it: observations are still ingested, just
// without water temperatures attached.
func fetchTelemetry(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) []domain.TelemetryReading {
	client := thingspeak.NewClient(cfg.TelemetryURL, cfg.TelemetryTimeout, logger)
	readings, err := client.FetchReadings(ctx, cfg.TelemetryResults)
	if err != nil {
		logger.Warn("telemetry fetch failed, continuing without water temperatures", "error", err)
		return nil
	}
	metrics.TelemetryReadings.Set(float64(len(readings)))
	logger.Info("fetched telemetry readings", "count", len(readings))
	return readings
}

func logTotals(ctx context.Context, pg *postgres.Store, logger *slog.Logger, location string) {
	obsTotal, err := pg.ObservationCount(ctx, location)
	if err != nil {
		logger.Warn("could not count stored observations", "error", err)
		return
	}
	fcTotal, err := pg.ForecastCount(ctx, location)
	if err != nil {
		logger.Warn("could not count stored forecasts", "error", err)
		return
	}
	logger.Info("store totals", "location", location,
		"observations", obsTotal, "forecasts", fcTotal)
}
