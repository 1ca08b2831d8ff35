package types

import (
	"context"

	"github.com/urbanallinone/radio-host-api/internal/database"
	"github.com/urbanallinone/radio-host-api/internal/models"
	"github.com/urbanallinone/radio-host-api/internal/services/announcer"
	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
	"github.com/urbanallinone/radio-host-api/internal/services/decision"
	"github.com/urbanallinone/radio-host-api/internal/services/news"
)

// AnnouncerService is the announcement pipeline surface handlers use.
type AnnouncerService interface {
	Evaluate(state decision.PlaybackState) decision.Decision
	Announce(ctx context.Context, mode string, listenerIP string) (*announcer.Result, error)
	ListenerCities(ctx context.Context) ([]string, error)
	ShouldShoutout() bool
}

// BroadcastClient is the station-side surface handlers use.
type BroadcastClient interface {
	GetNowPlaying(ctx context.Context) (*azuracast.NowPlaying, error)
	GetListeners(ctx context.Context) ([]azuracast.Listener, error)
	SetPlaylists(ctx context.Context, mediaID int, playlistIDs []int) error
}

// HistoryStore reads recorded announcements.
type HistoryStore interface {
	Recent(ctx context.Context, limit int) ([]models.Announcement, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

// NewsService serves the curated news feed.
type NewsService interface {
	GetFeed(ctx context.Context, topic string) (*news.Feed, error)
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB        *database.DB
	Announcer AnnouncerService
	Broadcast BroadcastClient
	History   HistoryStore
	News      NewsService

	// Decision holds the active engine thresholds, surfaced in the
	// evaluate endpoint's debug block.
	Decision decision.Config
}
