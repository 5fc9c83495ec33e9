// Command genmock generates deterministic test fixtures: a scraped
// observation row batch, a forecast row batch, and a ThingSpeak-shaped
// telemetry feed whose timestamps bracket the observation instants. It uses
// the actual domain package so fixture instants match ingestion behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Yuxuan-Wu/weather-training-data/internal/domain"
)

var fixtureNow = time.Date(2025, time.November, 15, 14, 30, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/mock", "output directory for fixture files")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Freeze the clock so generated instants are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(fixtureNow))
	defer domain.SetClock(nil)

	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		return err
	}

	obsRows := observationRows()
	if err := writeCSV(filepath.Join(*out, "observed_rows.csv"), obsRows); err != nil {
		return fmt.Errorf("writing observation fixture: %w", err)
	}
	log.Printf("wrote %d observation rows", len(obsRows))

	fcRows := forecastRows()
	if err := writeCSV(filepath.Join(*out, "forecast_rows.csv"), fcRows); err != nil {
		return fmt.Errorf("writing forecast fixture: %w", err)
	}
	log.Printf("wrote %d forecast rows", len(fcRows))

	feed, err := telemetryFeed(obsRows, london)
	if err != nil {
		return fmt.Errorf("building telemetry fixture: %w", err)
	}
	if err := writeJSON(filepath.Join(*out, "telemetry_feed.json"), feed); err != nil {
		return fmt.Errorf("writing telemetry fixture: %w", err)
	}
	log.Printf("wrote %d telemetry entries", len(feed.Feeds))

	return nil
}

// observationRows covers the cell shapes ingestion has to handle: fully
// populated cells, empty cells, irregular whitespace in the time column, and
// one deliberately unparseable time.
func observationRows() [][]string {
	return [][]string{
		{"12:50 AM", "54 °F", "50 °F", "86 %", "SW", "9 mph", "", "29.59 in", "0.0 in", "Mostly Cloudy"},
		{"1:50 AM", "55 °F", "50 °F", "77 %", "", "12 mph", "", "29.60 in", "0.0 in", "Cloudy"},
		{" 2 : 50  AM ", "54 °F", "51 °F", "89 %", "WSW", "10 mph", "", "29.60 in", "0.0 in", "Cloudy"},
		{"3:50 am", "53 °F", "51 °F", "93 %", "W", "8 mph", "", "29.61 in", "0.1 in", "Light Rain"},
		{"4:50 AM", "", "", "", "", "", "", "", "", ""},
		{"n/a", "52 °F", "50 °F", "93 %", "W", "7 mph", "", "29.62 in", "0.0 in", "Rain"},
		{"12:50 PM", "58 °F", "49 °F", "72 %", "WNW", "14 mph", "", "29.65 in", "0.0 in", "Partly Cloudy"},
	}
}

func forecastRows() [][]string {
	return [][]string{
		{"3:00 pm", "Partly Cloudy", "57 °F", "54 °F", "10 %", "0.0 in", "45 %", "48 °F", "70 %", "13 mph WNW", "29.66 in"},
		{"4:00 pm", "Mostly Cloudy", "56 °F", "53 °F", "20 %", "0.0 in", "70 %", "48 °F", "74 %", "12 mph W", "29.66 in"},
		{"2:00 pm", "Cloudy", "55 °F", "52 °F", "40 %", "0.1 in", "90 %", "49 °F", "80 %", "11 mph SW", "29.64 in"},
		{"bad hour", "Cloudy", "55 °F", "", "", "", "", "", "", "", ""},
	}
}

// telemetryFeed builds entries two minutes before each parseable observation
// instant, so matching picks a distinct entry per row.
type tsFeed struct {
	Channel tsChannel `json:"channel"`
	Feeds   []tsEntry `json:"feeds"`
}

type tsChannel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type tsEntry struct {
	CreatedAt string `json:"created_at"`
	EntryID   int64  `json:"entry_id"`
	Field1    string `json:"field1"`
	Field2    string `json:"field2"`
	Field3    string `json:"field3"`
}

func telemetryFeed(rows [][]string, loc *time.Location) (*tsFeed, error) {
	feed := &tsFeed{
		Channel: tsChannel{ID: 521315, Name: "Water temperature"},
	}

	scrapeDate := domain.Now().In(loc)
	entryID := int64(4300)
	for _, row := range rows {
		instant, ok := domain.ObservationInstant(row[0], scrapeDate, loc)
		if !ok {
			continue
		}
		entryID++
		feed.Feeds = append(feed.Feeds, tsEntry{
			CreatedAt: instant.Add(-2 * time.Minute).Format(time.RFC3339),
			EntryID:   entryID,
			Field1:    fmt.Sprintf("%.1f", 10.8+0.1*float64(entryID%5)),
			Field2:    fmt.Sprintf("%.1f", 10.9),
			Field3:    "",
		})
	}
	if len(feed.Feeds) == 0 {
		return nil, fmt.Errorf("no parseable observation times in fixture rows")
	}
	return feed, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
