// Package thingspeak fetches water-temperature telemetry from a ThingSpeak
// channel feed. The feed is the narrow external contract the reconciler
// depends on: zone-aware ISO-8601 timestamps, up to three numeric fields,
// and an integer entry id per entry.
package thingspeak

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Yuxuan-Wu/weather-training-data/internal/domain"
)

// Client reads a ThingSpeak channel feed.
type Client struct {
	feedURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a telemetry client for the given feed URL
// (".../channels/<id>/feeds.json").
func NewClient(feedURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchReadings retrieves the most recent channel entries and converts them
// to telemetry readings with UTC instants. Entries whose timestamp cannot be
// parsed are skipped with a warning; a missing or non-numeric field value
// becomes nil on the reading. Retry and backoff are the caller's concern.
func (c *Client) FetchReadings(ctx context.Context, results int) ([]domain.TelemetryReading, error) {
	u := fmt.Sprintf("%s?results=%d", c.feedURL, results)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch telemetry feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("thingspeak API error: status %d: %s", resp.StatusCode, body)
	}

	var payload feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode telemetry feed: %w", err)
	}

	readings := make([]domain.TelemetryReading, 0, len(payload.Feeds))
	for _, f := range payload.Feeds {
		ts, err := time.Parse(time.RFC3339, f.CreatedAt)
		if err != nil {
			c.logger.Warn("skipping telemetry entry with malformed timestamp",
				"created_at", f.CreatedAt, "entry_id", f.EntryID)
			continue
		}
		readings = append(readings, domain.TelemetryReading{
			Time:     ts.UTC(),
			Temp035m: parseField(f.Field1),
			Temp2m:   parseField(f.Field2),
			Temp7m:   parseField(f.Field3),
			EntryID:  f.EntryID,
		})
	}
	return readings, nil
}

// parseField converts a ThingSpeak field value (always a string in the feed)
// to a float, or nil when empty or non-numeric.
func parseField(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ThingSpeak feed response types.

type feedResponse struct {
	Channel channelInfo `json:"channel"`
	Feeds   []feedEntry `json:"feeds"`
}

type channelInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type feedEntry struct {
	CreatedAt string `json:"created_at"`
	EntryID   int64  `json:"entry_id"`
	Field1    string `json:"field1"`
	Field2    string `json:"field2"`
	Field3    string `json:"field3"`
}
