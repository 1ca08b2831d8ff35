package announcer

import (
	"time"

	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
	"github.com/urbanallinone/radio-host-api/internal/services/geo"
)

// Announcement modes. The first three mirror the decision engine's
// categories; location and time are event-driven modes with no timing
// window behind them.
const (
	ModeOutro    = "outro"
	ModeIntro    = "intro"
	ModeRandom   = "random"
	ModeLocation = "location"
	ModeTime     = "time"
)

// Context carries everything a generator may phrase an announcement
// around. Fields are optional; generators work with whatever is set.
type Context struct {
	Mode        string
	StationName string

	// Now-playing metadata
	Artist string
	Title  string

	// Live audience
	Cities        []string
	ListenerCount int

	// Local clock
	TimeOfDay string
	Now       time.Time
}

// Time-of-day buckets.
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
	Night     = "night"
)

// TimeOfDay buckets an hour into the station's dayparts.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// greeting maps a daypart to its on-air opener.
func greeting(timeOfDay string) string {
	switch timeOfDay {
	case Morning:
		return "Good morning!"
	case Afternoon:
		return "Good afternoon!"
	case Evening:
		return "Good evening!"
	default:
		return "Late night vibes!"
	}
}

// Result is one completed announcement run.
type Result struct {
	Mode      string                  `json:"mode"`
	Text      string                  `json:"text"`
	Filename  string                  `json:"filename"`
	LocalPath string                  `json:"audioPath"`
	Location  *geo.Location           `json:"location,omitempty"`
	Upload    *azuracast.UploadResult `json:"uploadResult,omitempty"`
}
