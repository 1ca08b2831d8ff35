package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/urbanallinone/radio-host-api/internal/services/cache"
)

// ErrNotConfigured indicates the news API key is missing
var ErrNotConfigured = errors.New("news api key not configured")

const curatorPrompt = "You are a UK urban music news curator. Return 8 recent news stories as a JSON array. " +
	"Focus ONLY on UK artists: Central Cee, Stormzy, Dave, Little Simz, Skepta, Jorja Smith, Headie One, " +
	"Digga D, Raye, Knucks, Aitch, Tion Wayne, ArrDee, Cat Burns, Mahalia, etc. " +
	"Sources: GRM Daily, Link Up TV, BBC 1Xtra, NME, Clash Magazine, Complex UK. " +
	"Each story: title, summary (2 sentences), source, url, timeAgo. Return ONLY valid JSON array."

const curatorQuery = "Latest UK urban music news from the last 72 hours - grime, UK rap, UK drill, UK R&B, afroswing, British hip-hop"

// fallbackImages stand in when a story page yields no og:image.
var fallbackImages = []string{
	"https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=800&h=400&fit=crop",
	"https://images.unsplash.com/photo-1571266028243-3716f02d2d2e?w=800&h=400&fit=crop",
	"https://images.unsplash.com/photo-1514525253161-7a46d19cd819?w=800&h=400&fit=crop",
	"https://images.unsplash.com/photo-1501386761578-eac5c94b800a?w=800&h=400&fit=crop",
}

// Config holds configuration for the news service
type Config struct {
	APIKey string

	// BaseURL of the Perplexity-compatible API. Default: https://api.perplexity.ai
	BaseURL string

	// Model to query. Default: sonar
	Model string

	// CacheTTL bounds upstream spend. Default: 15m
	CacheTTL time.Duration

	Timeout time.Duration // Default: 20s
}

// Service proxies curated news with a TTL cache in front of the
// upstream model.
type Service struct {
	httpClient *http.Client
	cache      cache.Cache
	config     Config
}

// NewService creates a new news service
func NewService(cfg Config, store cache.Cache) *Service {
	// Apply defaults
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Model == "" {
		cfg.Model = "sonar"
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}

	return &Service{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  store,
		config: cfg,
	}
}

// GetFeed returns the curated feed for a topic, serving from cache
// inside the TTL window.
func (s *Service) GetFeed(ctx context.Context, topic string) (*Feed, error) {
	if topic == "" {
		topic = "uk"
	}

	key := "news:" + topic
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var stories []Story
			if err := json.Unmarshal(data, &stories); err == nil {
				log.Printf("[DEBUG] News cache hit for %s", topic)
				return &Feed{Stories: stories, FromCache: true}, nil
			}
		}
	}

	stories, err := s.fetchStories(ctx)
	if err != nil {
		return nil, err
	}
	s.attachImages(ctx, stories)

	if s.cache != nil {
		if data, err := json.Marshal(stories); err == nil {
			_ = s.cache.Set(ctx, key, data, s.config.CacheTTL)
		}
	}

	return &Feed{Stories: stories}, nil
}

// fetchStories queries the upstream model and parses its JSON payload.
func (s *Service) fetchStories(ctx context.Context) ([]Story, error) {
	if s.config.APIKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: curatorPrompt},
			{Role: "user", Content: curatorQuery},
		},
		MaxTokens:   1500,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal news request: %w", err)
	}

	url := s.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("empty completion")
	}

	// Models wrap JSON in markdown fences more often than not
	content := chat.Choices[0].Message.Content
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	var stories []Story
	if err := json.Unmarshal([]byte(content), &stories); err != nil {
		return nil, fmt.Errorf("parse stories: %w", err)
	}
	return stories, nil
}

// attachImages resolves preview images for all stories concurrently.
// Each page fetch fails independently; a dead link costs one fallback
// image, never the feed.
func (s *Service) attachImages(ctx context.Context, stories []Story) {
	var wg sync.WaitGroup
	for i := range stories {
		if stories[i].ImageURL != "" || stories[i].URL == "" {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stories[i].ImageURL = s.fetchOGImage(ctx, stories[i].URL)
		}(i)
	}
	wg.Wait()

	for i := range stories {
		if stories[i].ImageURL == "" {
			stories[i].ImageURL = fallbackImages[i%len(fallbackImages)]
		}
	}
}
