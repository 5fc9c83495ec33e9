package thingspeak_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yuxuan-Wu/weather-training-data/internal/adapter/thingspeak"
)

const feedJSON = `{
  "channel": {"id": 521315, "name": "Thames water temperature"},
  "feeds": [
    {"created_at": "2025-11-15T01:48:00Z", "entry_id": 4321, "field1": "11.2", "field2": "11.0", "field3": "10.8"},
    {"created_at": "2025-11-15T01:53:00Z", "entry_id": 4322, "field1": "11.3", "field2": "", "field3": "abc"},
    {"created_at": "not-a-timestamp", "entry_id": 4323, "field1": "11.4"}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *thingspeak.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return thingspeak.NewClient(srv.URL+"/channels/521315/feeds.json", 5*time.Second, slog.Default())
}

func TestFetchReadings(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedJSON))
	})

	readings, err := client.FetchReadings(context.Background(), 300)
	require.NoError(t, err)
	assert.Equal(t, "results=300", gotQuery)

	// The malformed-timestamp entry is dropped; the rest survive.
	require.Len(t, readings, 2)

	first := readings[0]
	assert.Equal(t, time.Date(2025, time.November, 15, 1, 48, 0, 0, time.UTC), first.Time)
	assert.Equal(t, int64(4321), first.EntryID)
	require.NotNil(t, first.Temp035m)
	assert.Equal(t, 11.2, *first.Temp035m)
	require.NotNil(t, first.Temp2m)
	assert.Equal(t, 11.0, *first.Temp2m)
	require.NotNil(t, first.Temp7m)
	assert.Equal(t, 10.8, *first.Temp7m)

	// Empty and non-numeric fields become nil, not zero.
	second := readings[1]
	require.NotNil(t, second.Temp035m)
	assert.Equal(t, 11.3, *second.Temp035m)
	assert.Nil(t, second.Temp2m)
	assert.Nil(t, second.Temp7m)
}

func TestFetchReadings_ZoneAwareTimestamps(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"feeds":[{"created_at":"2025-07-01T02:48:00+01:00","entry_id":1,"field1":"14.5"}]}`))
	})

	readings, err := client.FetchReadings(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, time.Date(2025, time.July, 1, 1, 48, 0, 0, time.UTC), readings[0].Time)
}

func TestFetchReadings_EmptyFeed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"channel":{"id":521315},"feeds":[]}`))
	})

	readings, err := client.FetchReadings(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestFetchReadings_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	})

	_, err := client.FetchReadings(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestFetchReadings_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"feeds": [`))
	})

	_, err := client.FetchReadings(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode telemetry feed")
}
