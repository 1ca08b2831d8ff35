package azuracast

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strings"
	"sync/atomic"
	"time"
)

var (
	// ErrNotConfigured indicates the base URL or API key is missing
	ErrNotConfigured = errors.New("azuracast base url or api key not configured")

	// ErrRateLimited indicates the station API rate limit was exceeded
	ErrRateLimited = errors.New("azuracast api rate limit exceeded")
)

// Config holds configuration for the AzuraCast client
type Config struct {
	BaseURL   string
	APIKey    string
	StationID string

	// UploadFolder is the library subdirectory announcements land in.
	// Default: "ai-announcements"
	UploadFolder string

	// PlaylistID is the playlist uploads get attached to. Zero disables
	// playlist assignment.
	PlaylistID int

	// HTTP configuration
	Timeout      time.Duration // Default: 15s
	MaxRetries   int           // Default: 3
	RetryBackoff time.Duration // Default: 1s
}

// Client handles communication with an AzuraCast station.
type Client struct {
	httpClient *http.Client
	config     Config

	// Metrics
	metrics *clientMetrics
}

// clientMetrics tracks client usage statistics
type clientMetrics struct {
	requests      atomic.Int64
	rateLimitHits atomic.Int64
	errors        atomic.Int64
	uploads       atomic.Int64
}

// NewClient creates a new AzuraCast API client
func NewClient(cfg Config) *Client {
	// Apply defaults
	if cfg.UploadFolder == "" {
		cfg.UploadFolder = "ai-announcements"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config:  cfg,
		metrics: &clientMetrics{},
	}
}

// GetNowPlaying fetches the station's current playback snapshot.
func (c *Client) GetNowPlaying(ctx context.Context) (*NowPlaying, error) {
	var resp nowPlayingResponse
	url := fmt.Sprintf("%s/api/nowplaying/%s", c.config.BaseURL, c.config.StationID)
	if err := c.getWithRetry(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("get now playing: %w", err)
	}

	return &NowPlaying{
		Song:          resp.NowPlaying.Song,
		Elapsed:       resp.NowPlaying.Elapsed,
		Duration:      resp.NowPlaying.Duration,
		ListenerCount: resp.Listeners.Current,
	}, nil
}

// GetListeners fetches the station's connected listeners.
func (c *Client) GetListeners(ctx context.Context) ([]Listener, error) {
	var listeners []Listener
	url := fmt.Sprintf("%s/api/station/%s/listeners", c.config.BaseURL, c.config.StationID)
	if err := c.getWithRetry(ctx, url, &listeners); err != nil {
		return nil, fmt.Errorf("get listeners: %w", err)
	}
	return listeners, nil
}

// Upload pushes one audio file into the station's media library under
// the configured upload folder and returns the library path.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if err := c.checkConfigured(); err != nil {
		return "", err
	}

	mediaPath := path.Join(c.config.UploadFolder, filename)
	body, err := json.Marshal(uploadRequest{
		Path: mediaPath,
		File: base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return "", fmt.Errorf("marshal upload request: %w", err)
	}

	url := fmt.Sprintf("%s/api/station/%s/files", c.config.BaseURL, c.config.StationID)
	if err := c.do(ctx, http.MethodPost, url, body, nil); err != nil {
		return "", fmt.Errorf("upload %s: %w", mediaPath, err)
	}

	c.metrics.uploads.Add(1)
	log.Printf("[DEBUG] Uploaded %d bytes to %s", len(data), mediaPath)
	return mediaPath, nil
}

// ListFiles fetches the station's media library listing.
func (c *Client) ListFiles(ctx context.Context) ([]StationFile, error) {
	var files []StationFile
	url := fmt.Sprintf("%s/api/station/%s/files", c.config.BaseURL, c.config.StationID)
	if err := c.getWithRetry(ctx, url, &files); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// FindMediaID resolves a freshly uploaded file to its library ID by
// filename match. Uploads do not return the assigned ID, so the library
// listing is the only way to recover it. The first match wins when the
// library holds duplicates.
func (c *Client) FindMediaID(ctx context.Context, filename string) (int, error) {
	files, err := c.ListFiles(ctx)
	if err != nil {
		return 0, err
	}
	for _, f := range files {
		if strings.Contains(f.Path, filename) {
			return f.ID, nil
		}
	}
	return 0, fmt.Errorf("media %s not found in station library", filename)
}

// SetPlaylists attaches a media file to the given playlists.
func (c *Client) SetPlaylists(ctx context.Context, mediaID int, playlistIDs []int) error {
	body, err := json.Marshal(playlistAssignment{Playlists: playlistIDs})
	if err != nil {
		return fmt.Errorf("marshal playlist assignment: %w", err)
	}

	url := fmt.Sprintf("%s/api/station/%s/file/%d", c.config.BaseURL, c.config.StationID, mediaID)
	if err := c.do(ctx, http.MethodPut, url, body, nil); err != nil {
		return fmt.Errorf("assign media %d to playlists: %w", mediaID, err)
	}
	return nil
}

// Deliver uploads an announcement, resolves its media ID, and attaches
// it to the configured playlist. Failures are folded into the result
// instead of returned, so callers can report a partial success when the
// audio exists but delivery did not complete.
func (c *Client) Deliver(ctx context.Context, filename string, data []byte) *UploadResult {
	mediaPath, err := c.Upload(ctx, filename, data)
	if err != nil {
		c.metrics.errors.Add(1)
		return &UploadResult{ErrorDetail: err.Error()}
	}

	result := &UploadResult{Uploaded: true, Path: mediaPath}

	mediaID, err := c.FindMediaID(ctx, filename)
	if err != nil {
		log.Printf("[ERROR] Media ID resolution failed for %s: %v", filename, err)
		result.ErrorDetail = err.Error()
		return result
	}
	result.MediaID = mediaID

	if c.config.PlaylistID == 0 {
		return result
	}
	if err := c.SetPlaylists(ctx, mediaID, []int{c.config.PlaylistID}); err != nil {
		log.Printf("[ERROR] Playlist assignment failed for media %d: %v", mediaID, err)
		result.ErrorDetail = err.Error()
		return result
	}
	result.Playlisted = true

	return result
}

// getWithRetry performs a GET with retry on rate limits and temporary
// network errors.
func (c *Client) getWithRetry(ctx context.Context, url string, out any) error {
	var lastErr error
	backoff := c.config.RetryBackoff

	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		err := c.do(ctx, http.MethodGet, url, nil, out)
		if err == nil {
			return nil
		}

		if errors.Is(err, ErrRateLimited) || isTemporaryError(err) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				lastErr = err
				continue
			}
		}

		// Non-retryable error
		return err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do performs a single authenticated request, decoding JSON into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, url string, body []byte, out any) error {
	if err := c.checkConfigured(); err != nil {
		return err
	}

	c.metrics.requests.Add(1)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.config.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.errors.Add(1)
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.metrics.rateLimitHits.Add(1)
		return ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.errors.Add(1)
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.errors.Add(1)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) checkConfigured() error {
	if c.config.BaseURL == "" || c.config.APIKey == "" || c.config.StationID == "" {
		return ErrNotConfigured
	}
	return nil
}

// GetMetrics returns current client metrics
func (c *Client) GetMetrics() map[string]int64 {
	return map[string]int64{
		"requests":        c.metrics.requests.Load(),
		"rate_limit_hits": c.metrics.rateLimitHits.Load(),
		"errors":          c.metrics.errors.Load(),
		"uploads":         c.metrics.uploads.Load(),
	}
}

// isTemporaryError checks if an error is temporary and should be retried
func isTemporaryError(err error) bool {
	if netErr, ok := err.(interface{ Temporary() bool }); ok {
		return netErr.Temporary()
	}
	if netErr, ok := err.(interface{ Timeout() bool }); ok {
		return netErr.Timeout()
	}
	return false
}
