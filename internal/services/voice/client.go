package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Config holds configuration for the ElevenLabs client
type Config struct {
	APIKey  string
	VoiceID string

	// ModelID selects the synthesis model. Default: eleven_turbo_v2_5
	ModelID string

	// HTTP configuration
	BaseURL string        // Default: https://api.elevenlabs.io
	Timeout time.Duration // Default: 30s

	// Defaults are the process-wide voice settings; per-call overrides
	// replace individual fields.
	Defaults Settings

	// FilenamePrefix names output artifacts. Default: "ai-host"
	FilenamePrefix string
}

// Client renders announcement text to audio via the ElevenLabs API.
type Client struct {
	httpClient *http.Client
	config     Config
	now        func() time.Time
}

// NewClient creates a new synthesis client
func NewClient(cfg Config) *Client {
	// Apply defaults
	if cfg.ModelID == "" {
		cfg.ModelID = "eleven_turbo_v2_5"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.elevenlabs.io"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.FilenamePrefix == "" {
		cfg.FilenamePrefix = "ai-host"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		now:    time.Now,
	}
}

// Synthesize renders text to audio. Voice settings default to the
// process-wide configuration; the override replaces individual fields
// per call. Provider rejections surface as *SynthesisError with the raw
// response body attached.
func (c *Client) Synthesize(ctx context.Context, text string, override *SettingsOverride) (*Audio, error) {
	if c.config.APIKey == "" || c.config.VoiceID == "" {
		return nil, ErrNotConfigured
	}
	if text == "" {
		return nil, ErrEmptyText
	}

	body, err := json.Marshal(synthesisRequest{
		Text:          text,
		ModelID:       c.config.ModelID,
		VoiceSettings: override.apply(c.config.Defaults),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.config.BaseURL, c.config.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Body: string(detail)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio response: %w", err)
	}

	audio := &Audio{
		Text:     text,
		Data:     data,
		Filename: announcementFilename(c.config.FilenamePrefix, c.now()),
	}
	log.Printf("[DEBUG] Synthesized %d bytes for %q", len(audio.Data), text)

	return audio, nil
}

// Save writes the audio to dir under its filename and returns the full
// path. The write goes through a temp file and rename so a failure
// never leaves a partial artifact behind.
func (c *Client) Save(audio *Audio, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, audio.Filename+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(audio.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}

	path := filepath.Join(dir, audio.Filename)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("finalize audio file: %w", err)
	}

	return path, nil
}
