package dailyco

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medtour-service/internal/app/config"
	"medtour-service/internal/pkg/clock"
	"medtour-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func newTestClient(baseURL string, now time.Time) *dailyClient {
	internalConfig := &config.InternalConfig{
		Daily: config.AppDaily{
			APIBaseURL:              baseURL,
			APIKey:                  "test-key",
			RequestTimeoutInSeconds: 5,
			RequestsPerSecond:       100,
			Burst:                   10,
		},
	}
	return NewDailyClient(internalConfig, clock.NewManaged(now), zap.NewNop()).(*dailyClient)
}

func TestCreateRoom(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	scheduledDate := now.Add(2 * time.Hour)

	var captured []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rooms", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		captured, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"r1","name":"medtour-appt1-1718010000000","url":"https://medtour.daily.co/medtour-appt1-1718010000000"}`))
	}))
	defer server.Close()

	room, err := newTestClient(server.URL, now).CreateRoom(context.Background(), "appt1", scheduledDate, 30*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, "https://medtour.daily.co/medtour-appt1-1718010000000", room.URL)
	assert.Equal(t, "medtour-appt1-1718010000000", room.Name)

	assert.Equal(t, "medtour-appt1-1718010000000", gjson.GetBytes(captured, "name").String())
	assert.Equal(t, scheduledDate.Add(-15*time.Minute).Unix(), gjson.GetBytes(captured, "properties.nbf").Int())
	assert.Equal(t, scheduledDate.Add(30*time.Minute).Unix(), gjson.GetBytes(captured, "properties.exp").Int())
	assert.Equal(t, int64(2), gjson.GetBytes(captured, "properties.max_participants").Int())
	assert.True(t, gjson.GetBytes(captured, "properties.enable_screenshare").Bool())
	assert.True(t, gjson.GetBytes(captured, "properties.enable_chat").Bool())
}

func TestCreateRoomErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid-request-error","info":"nbf must be in the future"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, time.Now()).CreateRoom(context.Background(), "appt1", time.Now(), 30*time.Minute)
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, customErr.StatusCode)
	assert.Contains(t, customErr.DevMessage, "400")
	assert.Contains(t, customErr.DevMessage, "invalid-request-error: nbf must be in the future")
}

func TestCreateRoomHonoursContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.ReadAll(r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := newTestClient(server.URL, time.Now()).CreateRoom(ctx, "appt1", time.Now(), 30*time.Minute)
	close(release)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDeleteRoom(t *testing.T) {
	t.Run("deletes the room", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/rooms/medtour-appt1-1", r.URL.Path)
			_, _ = w.Write([]byte(`{"deleted":true,"name":"medtour-appt1-1"}`))
		}))
		defer server.Close()

		assert.NoError(t, newTestClient(server.URL, time.Now()).DeleteRoom(context.Background(), "medtour-appt1-1"))
	})

	t.Run("missing room counts as deleted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not-found","info":"room not found"}`))
		}))
		defer server.Close()

		assert.NoError(t, newTestClient(server.URL, time.Now()).DeleteRoom(context.Background(), "medtour-appt1-1"))
	})
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "rate-limit: slow down", errorDetail([]byte(`{"error":"rate-limit","info":"slow down"}`)))
	assert.Equal(t, "boom", errorDetail([]byte(`{"error":"boom"}`)))
	assert.Equal(t, "upstream unavailable", errorDetail([]byte("upstream unavailable")))
}
