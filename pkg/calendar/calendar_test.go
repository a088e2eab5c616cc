package calendar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestToAPIEvent(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	start := time.Date(2025, 10, 11, 18, 30, 0, 0, berlin)

	got := toAPIEvent(Event{
		Start:       start,
		End:         start.Add(30 * time.Minute),
		Summary:     "Bouldern Progress Update",
		ColorID:     "11",
		Description: "form-abc",
	})

	assert.Equal(t, "Bouldern Progress Update", got.Summary)
	assert.Equal(t, "form-abc", got.Description)
	assert.Equal(t, "11", got.ColorId)
	assert.Equal(t, "2025-10-11T18:30:00+02:00", got.Start.DateTime)
	assert.Equal(t, "2025-10-11T19:00:00+02:00", got.End.DateTime)
	assert.Equal(t, "Europe/Berlin", got.Start.TimeZone)
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(context.Background(), "primary",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return c
}

func TestLocation(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/primary", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"primary","timeZone":"Europe/Berlin"}`)
	})

	loc, err := c.Location(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestCreateEvent(t *testing.T) {
	var body map[string]interface{}
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"evt-1"}`)
	})

	start := time.Date(2025, 10, 11, 18, 30, 0, 0, time.UTC)
	err := c.CreateEvent(context.Background(), Event{
		Start:       start,
		End:         start.Add(30 * time.Minute),
		Summary:     "Bouldern Progress Update",
		ColorID:     "9",
		Description: "form-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "9", body["colorId"])
	assert.Equal(t, "form-abc", body["description"])
}

func TestCreateEventError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"code":401,"message":"invalid credentials"}}`)
	})

	err := c.CreateEvent(context.Background(), Event{Start: time.Now(), End: time.Now()})
	assert.ErrorContains(t, err, "failed to create event")
}
