package azuracast

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:      baseURL,
		APIKey:       "station-key",
		StationID:    "1",
		PlaylistID:   7,
		RetryBackoff: time.Millisecond,
	})
}

func TestGetNowPlaying(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/nowplaying/1", r.URL.Path)
		assert.Equal(t, "station-key", r.Header.Get("X-API-Key"))

		_, _ = w.Write([]byte(`{
			"now_playing": {
				"elapsed": 42,
				"duration": 180,
				"song": {"artist": "Dave", "title": "Location", "genre": "UK Rap"}
			},
			"listeners": {"current": 12}
		}`))
	}))
	defer server.Close()

	np, err := newTestClient(server.URL).GetNowPlaying(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Dave", np.Song.Artist)
	assert.Equal(t, "Location", np.Song.Title)
	assert.Equal(t, "UK Rap", np.Song.Genre)
	assert.Equal(t, 42.0, np.Elapsed)
	assert.Equal(t, 180.0, np.Duration)
	assert.Equal(t, 12, np.ListenerCount)
}

func TestGetListeners(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/station/1/listeners", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"ip": "81.2.69.142", "user_agent": "VLC", "connected_time": 300},
			{"ip": "192.168.1.5", "user_agent": "curl", "connected_time": 10}
		]`))
	}))
	defer server.Close()

	listeners, err := newTestClient(server.URL).GetListeners(context.Background())
	require.NoError(t, err)
	require.Len(t, listeners, 2)
	assert.Equal(t, "81.2.69.142", listeners[0].IP)
	assert.Equal(t, 300, listeners[0].ConnectedTime)
}

func TestGetNowPlaying_RetriesRateLimit(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"now_playing": {"song": {"artist": "a"}}, "listeners": {"current": 1}}`))
	}))
	defer server.Close()

	np, err := newTestClient(server.URL).GetNowPlaying(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "a", np.Song.Artist)
}

func TestDeliver(t *testing.T) {
	audio := []byte("mpeg-frames")
	var gotUpload uploadRequest
	var gotAssignment playlistAssignment

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/station/1/files":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotUpload))
			_, _ = w.Write([]byte(`{"success": true}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/station/1/files":
			_, _ = w.Write([]byte(`[
				{"id": 3, "path": "music/track.mp3"},
				{"id": 9, "path": "ai-announcements/ai-host-1700000000000.mp3"}
			]`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/station/1/file/9":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotAssignment))
			_, _ = w.Write([]byte(`{"success": true}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	result := newTestClient(server.URL).Deliver(context.Background(), "ai-host-1700000000000.mp3", audio)

	assert.True(t, result.Uploaded)
	assert.Equal(t, "ai-announcements/ai-host-1700000000000.mp3", result.Path)
	assert.Equal(t, 9, result.MediaID)
	assert.True(t, result.Playlisted)
	assert.Empty(t, result.ErrorDetail)

	assert.Equal(t, "ai-announcements/ai-host-1700000000000.mp3", gotUpload.Path)
	decoded, err := base64.StdEncoding.DecodeString(gotUpload.File)
	require.NoError(t, err)
	assert.Equal(t, audio, decoded)
	assert.Equal(t, []int{7}, gotAssignment.Playlists)
}

func TestDeliver_UploadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "disk full"}`))
	}))
	defer server.Close()

	result := newTestClient(server.URL).Deliver(context.Background(), "x.mp3", []byte("a"))

	assert.False(t, result.Uploaded)
	assert.Zero(t, result.MediaID)
	assert.Contains(t, result.ErrorDetail, "disk full")
}

func TestDeliver_MediaNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"success": true}`))
		case http.MethodGet:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	result := newTestClient(server.URL).Deliver(context.Background(), "missing.mp3", []byte("a"))

	// Upload succeeded but the library never listed the file
	assert.True(t, result.Uploaded)
	assert.Zero(t, result.MediaID)
	assert.False(t, result.Playlisted)
	assert.Contains(t, result.ErrorDetail, "not found")
}

func TestDeliver_NotConfigured(t *testing.T) {
	client := NewClient(Config{})

	result := client.Deliver(context.Background(), "x.mp3", []byte("a"))
	assert.False(t, result.Uploaded)
	assert.Contains(t, result.ErrorDetail, "not configured")
}

func TestDeliver_NoPlaylistConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"success": true}`))
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id": 4, "path": "ai-announcements/x.mp3"}]`))
		case http.MethodPut:
			t.Error("playlist assignment should not happen without a playlist id")
		}
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:   server.URL,
		APIKey:    "k",
		StationID: "1",
	})

	result := client.Deliver(context.Background(), "x.mp3", []byte("a"))
	assert.True(t, result.Uploaded)
	assert.Equal(t, 4, result.MediaID)
	assert.False(t, result.Playlisted)
	assert.Empty(t, result.ErrorDetail)
}
