package announcer

import (
	"context"

	"github.com/urbanallinone/radio-host-api/internal/models"
	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
	"github.com/urbanallinone/radio-host-api/internal/services/geo"
	"github.com/urbanallinone/radio-host-api/internal/services/voice"
)

// Generator produces announcement text for a context.
type Generator interface {
	Generate(ctx context.Context, c Context) (string, error)
}

// Synthesizer renders text to an audio artifact and persists it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, override *voice.SettingsOverride) (*voice.Audio, error)
	Save(audio *voice.Audio, dir string) (string, error)
}

// Broadcaster is the station-side surface the announcer needs.
type Broadcaster interface {
	GetNowPlaying(ctx context.Context) (*azuracast.NowPlaying, error)
	GetListeners(ctx context.Context) ([]azuracast.Listener, error)
	Deliver(ctx context.Context, filename string, data []byte) *azuracast.UploadResult
}

// Locator maps listener IPs to geography.
type Locator interface {
	Resolve(ctx context.Context, ip string) geo.Location
}

// Recorder persists announcement outcomes.
type Recorder interface {
	Record(ctx context.Context, a *models.Announcement) error
}
