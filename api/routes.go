package api

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/urbanallinone/radio-host-api/api/health"
	"github.com/urbanallinone/radio-host-api/api/host"
	newsroutes "github.com/urbanallinone/radio-host-api/api/news"
	"github.com/urbanallinone/radio-host-api/api/types"
	"github.com/urbanallinone/radio-host-api/api/version"
	"github.com/urbanallinone/radio-host-api/internal/services/announcer"
	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
	"github.com/urbanallinone/radio-host-api/internal/services/cache"
	"github.com/urbanallinone/radio-host-api/internal/services/decision"
	"github.com/urbanallinone/radio-host-api/internal/services/geo"
	"github.com/urbanallinone/radio-host-api/internal/services/history"
	newsservice "github.com/urbanallinone/radio-host-api/internal/services/news"
	"github.com/urbanallinone/radio-host-api/internal/services/voice"
	"github.com/urbanallinone/radio-host-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(router, deps)
	version.RegisterRoutes(router, deps)

	// Setup 404 handler
	router.NoRoute(NotFoundHandler())

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize services if not already set
	if deps == nil {
		deps = &types.Dependencies{}
	}

	deps.Decision = decisionConfig(cfg)

	if deps.Broadcast == nil {
		deps.Broadcast = newBroadcastClient(cfg)
	}
	if deps.History == nil && deps.DB != nil && deps.DB.DB != nil {
		deps.History = history.NewStore(deps.DB)
	}
	if deps.Announcer == nil {
		initializeAnnouncer(deps, cfg)
	}
	if deps.News == nil {
		initializeNewsService(deps, cfg)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Announcement routes run the full synthesis pipeline; keep the
	// rate low (2 req/s, burst of 5)
	hostGroup := v1.Group("/host")
	hostGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 5))
	host.RegisterRoutes(hostGroup, deps)

	// News is cache-backed; general rate limiting (10 req/s, burst of 20)
	newsGroup := v1.Group("/news")
	newsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	newsroutes.RegisterRoutes(newsGroup, deps)

	return nil
}

// decisionConfig maps configuration onto engine thresholds. The testing
// flag swaps in the staging profile wholesale.
func decisionConfig(cfg *config.Config) decision.Config {
	if cfg.Announcer.Testing {
		log.Printf("[DEBUG] Announcer running with testing profile")
		return decision.TestingConfig()
	}
	return decision.Config{
		OutroMinSeconds:    cfg.Announcer.OutroMinSeconds,
		OutroMaxSeconds:    cfg.Announcer.OutroMaxSeconds,
		IntroMinSeconds:    cfg.Announcer.IntroMinSeconds,
		IntroMaxSeconds:    cfg.Announcer.IntroMaxSeconds,
		IntroGenres:        cfg.Announcer.IntroGenres,
		RandomChance:       cfg.Announcer.RandomChance,
		CooldownPassRate:   cfg.Announcer.CooldownPassRate,
		PollInterval:       cfg.Announcer.PollInterval,
		TargetFireInterval: cfg.Announcer.TargetFireInterval,
	}
}

func newBroadcastClient(cfg *config.Config) *azuracast.Client {
	return azuracast.NewClient(azuracast.Config{
		BaseURL:      cfg.AzuraCast.BaseURL,
		APIKey:       cfg.AzuraCast.APIKey,
		StationID:    strconv.Itoa(cfg.AzuraCast.StationID),
		UploadFolder: cfg.AzuraCast.UploadFolder,
		PlaylistID:   int(cfg.AzuraCast.PlaylistID),
		Timeout:      cfg.AzuraCast.Timeout,
	})
}

// initializeAnnouncer creates and configures the announcement pipeline
func initializeAnnouncer(deps *types.Dependencies, cfg *config.Config) {
	synth := voice.NewClient(voice.Config{
		APIKey:  cfg.Voice.APIKey,
		VoiceID: cfg.Voice.VoiceID,
		ModelID: cfg.Voice.ModelID,
		BaseURL: cfg.Voice.BaseURL,
		Timeout: cfg.Voice.Timeout,
		Defaults: voice.Settings{
			Stability:       cfg.Voice.Stability,
			SimilarityBoost: cfg.Voice.SimilarityBoost,
			Style:           cfg.Voice.Style,
			SpeakerBoost:    cfg.Voice.SpeakerBoost,
		},
	})

	locator := geo.NewResolver(geo.Config{
		BaseURL:           cfg.GeoIP.BaseURL,
		Timeout:           cfg.GeoIP.Timeout,
		RequestsPerMinute: cfg.GeoIP.RequestsPerMinute,
		Default: geo.Location{
			City:        cfg.GeoIP.DefaultCity,
			Region:      cfg.GeoIP.DefaultRegion,
			Country:     cfg.GeoIP.DefaultCountry,
			CountryCode: cfg.GeoIP.DefaultCode,
		},
	})

	// Generative text is best-effort; template bank is the floor
	templates := announcer.NewTemplateGenerator(nil)
	var generator announcer.Generator = templates
	gemini, err := announcer.NewGeminiGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		log.Printf("[DEBUG] Generative backend disabled: %v", err)
	} else {
		generator = announcer.NewFallbackGenerator(gemini, templates)
	}

	var recorder announcer.Recorder
	if store, ok := deps.History.(*history.Store); ok {
		recorder = store
	}

	broadcast, _ := deps.Broadcast.(announcer.Broadcaster)
	engine := decision.NewEngine(deps.Decision, rand.New(rand.NewSource(rand.Int63())))

	deps.Announcer = announcer.NewService(announcer.Config{
		StationName:          cfg.Station.Name,
		OutputDir:            cfg.Voice.OutputDir,
		ListenerAnnounceRate: cfg.Announcer.ListenerAnnounceRate,
		Timezone:             cfg.Station.Timezone,
	}, engine, generator, synth, broadcast, locator, recorder, nil)
}

// initializeNewsService creates and configures the news proxy
func initializeNewsService(deps *types.Dependencies, cfg *config.Config) {
	store := cache.NewMemory(cfg.Cache.MaxSizeMB)
	deps.News = newsservice.NewService(newsservice.Config{
		APIKey:   cfg.News.APIKey,
		BaseURL:  cfg.News.BaseURL,
		Model:    cfg.News.Model,
		CacheTTL: cfg.News.CacheTTL,
		Timeout:  cfg.News.Timeout,
	}, store)
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
