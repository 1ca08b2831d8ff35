package announcer

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/urbanallinone/radio-host-api/internal/models"
	"github.com/urbanallinone/radio-host-api/internal/services/decision"
	"github.com/urbanallinone/radio-host-api/internal/services/geo"
	apperrors "github.com/urbanallinone/radio-host-api/pkg/errors"
)

// Config holds configuration for the announcer service
type Config struct {
	StationName string

	// OutputDir is where synthesized audio lands locally. Default: ./announcements
	OutputDir string

	// ListenerAnnounceRate is the chance a new listener connection
	// triggers a shoutout. Default: 0.1
	ListenerAnnounceRate float64

	// Timezone drives the time-of-day bucket. Default: local time
	Timezone string
}

// Service orchestrates the full announcement pipeline: decide, phrase,
// synthesize, persist, deliver.
type Service struct {
	config    Config
	engine    *decision.Engine
	generator Generator
	synth     Synthesizer
	broadcast Broadcaster
	locator   Locator
	recorder  Recorder

	tz  *time.Location
	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a new announcer service
func NewService(cfg Config, engine *decision.Engine, generator Generator, synth Synthesizer, broadcast Broadcaster, locator Locator, recorder Recorder, rng *rand.Rand) *Service {
	// Apply defaults
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./announcements"
	}
	if cfg.ListenerAnnounceRate == 0 {
		cfg.ListenerAnnounceRate = 0.1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	tz := time.Local
	if cfg.Timezone != "" {
		if loaded, err := time.LoadLocation(cfg.Timezone); err == nil {
			tz = loaded
		} else {
			log.Printf("[ERROR] Unknown timezone %q, using local time", cfg.Timezone)
		}
	}

	return &Service{
		config:    cfg,
		engine:    engine,
		generator: generator,
		synth:     synth,
		broadcast: broadcast,
		locator:   locator,
		recorder:  recorder,
		tz:        tz,
		now:       time.Now,
		rng:       rng,
	}
}

// Evaluate runs one decision tick over a playback snapshot.
func (s *Service) Evaluate(state decision.PlaybackState) decision.Decision {
	return s.engine.Decide(state)
}

// ShouldShoutout draws the listener-connect gate. Most connections pass
// silently so shoutouts stay special.
func (s *Service) ShouldShoutout() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.config.ListenerAnnounceRate
}

// Announce runs the full pipeline for a mode. Delivery failure is a
// partial success: the audio exists locally and the result says what
// went wrong downstream.
func (s *Service) Announce(ctx context.Context, mode string, listenerIP string) (*Result, error) {
	c := Context{
		Mode:        mode,
		StationName: s.config.StationName,
		Now:         s.now().In(s.tz),
	}
	c.TimeOfDay = TimeOfDay(c.Now.Hour())

	var location *geo.Location
	if listenerIP != "" && s.locator != nil {
		loc := s.locator.Resolve(ctx, listenerIP)
		location = &loc
		log.Printf("[DEBUG] Listener from %s, %s", loc.City, loc.Country)
	}

	s.fillAudienceContext(ctx, &c, location)

	text, err := s.generator.Generate(ctx, c)
	if err != nil {
		return nil, apperrors.UpstreamError("text generation", err)
	}

	audio, err := s.synth.Synthesize(ctx, text, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSynthesisFailed, "synthesize announcement")
	}

	localPath, err := s.synth.Save(audio, s.config.OutputDir)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save announcement audio")
	}

	result := &Result{
		Mode:      mode,
		Text:      text,
		Filename:  audio.Filename,
		LocalPath: localPath,
		Location:  location,
	}
	if s.broadcast != nil {
		result.Upload = s.broadcast.Deliver(ctx, audio.Filename, audio.Data)
	}
	s.record(ctx, c, result)

	return result, nil
}

// fillAudienceContext loads whatever live context the mode can use.
// Context fetch failures degrade to emptier phrasing, never abort.
func (s *Service) fillAudienceContext(ctx context.Context, c *Context, location *geo.Location) {
	if s.broadcast == nil {
		return
	}

	if c.Mode == ModeLocation {
		cities, err := s.ListenerCities(ctx)
		if err != nil {
			log.Printf("[ERROR] Listener city lookup failed: %v", err)
		}
		if len(cities) == 0 && location != nil && location.City != "" {
			cities = []string{location.City}
		}
		c.Cities = cities
		return
	}

	np, err := s.broadcast.GetNowPlaying(ctx)
	if err != nil {
		log.Printf("[ERROR] Now-playing fetch failed: %v", err)
		return
	}
	c.Artist = np.Song.Artist
	c.Title = np.Song.Title
	c.ListenerCount = np.ListenerCount
}

// ListenerCities resolves every connected listener's city concurrently
// and reduces to a first-seen de-duplicated list. One failed lookup
// degrades one entry, not the batch.
func (s *Service) ListenerCities(ctx context.Context) ([]string, error) {
	listeners, err := s.broadcast.GetListeners(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch listeners: %w", err)
	}
	if len(listeners) == 0 || s.locator == nil {
		return nil, nil
	}

	resolved := make([]geo.Location, len(listeners))
	var wg sync.WaitGroup
	for i, l := range listeners {
		wg.Add(1)
		go func(i int, ip string) {
			defer wg.Done()
			resolved[i] = s.locator.Resolve(ctx, ip)
		}(i, l.IP)
	}
	wg.Wait()

	seen := make(map[string]bool)
	var cities []string
	for _, loc := range resolved {
		if loc.City == "" || seen[loc.City] {
			continue
		}
		seen[loc.City] = true
		cities = append(cities, loc.City)
	}
	return cities, nil
}

func (s *Service) record(ctx context.Context, c Context, r *Result) {
	if s.recorder == nil {
		return
	}

	a := &models.Announcement{
		Category: r.Mode,
		Text:     r.Text,
		Filename: r.Filename,
		Artist:   c.Artist,
		Title:    c.Title,
	}
	if r.Upload != nil {
		a.Uploaded = r.Upload.Uploaded
		a.MediaID = r.Upload.MediaID
		a.ErrorDetail = r.Upload.ErrorDetail
	}
	if err := s.recorder.Record(ctx, a); err != nil {
		log.Printf("[ERROR] Failed to record announcement history: %v", err)
	}
}
