package types

import (
	"github.com/urbanallinone/radio-host-api/internal/models"
	"github.com/urbanallinone/radio-host-api/internal/services/azuracast"
	"github.com/urbanallinone/radio-host-api/internal/services/geo"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// TimingInfo describes where in the track the evaluation happened.
type TimingInfo struct {
	Elapsed    int `json:"elapsed"`
	Remaining  int `json:"remaining"`
	Duration   int `json:"duration"`
	Percentage int `json:"percentage"`
}

// EvaluateResponse is the decision payload for one tick.
type EvaluateResponse struct {
	ShouldAnnounce     bool           `json:"shouldAnnounce"`
	AnnouncementType   string         `json:"announcementType"`
	AnnouncementTiming string         `json:"announcementTiming"`
	Reason             string         `json:"reason"`
	CurrentSong        NowPlayingSong `json:"currentSong"`
	Timing             TimingInfo     `json:"timing"`
	Debug              EvaluateDebug  `json:"debug"`
}

// EvaluateDebug exposes the gate inputs for operator tuning.
type EvaluateDebug struct {
	Genre            string  `json:"genre"`
	OutroWindow      string  `json:"outroWindow"`
	IntroWindow      string  `json:"introWindow"`
	CooldownPassRate float64 `json:"cooldownPassRate"`
}

// AnnounceResponse reports one produced announcement.
type AnnounceResponse struct {
	Success   bool                    `json:"success"`
	Text      string                  `json:"text"`
	AudioPath string                  `json:"audioPath"`
	Filename  string                  `json:"filename"`
	Location  *geo.Location           `json:"location,omitempty"`
	Uploaded  bool                    `json:"uploaded"`
	Upload    *azuracast.UploadResult `json:"uploadResult,omitempty"`
}

// ListenerConnectedResponse reports the shoutout gate outcome.
type ListenerConnectedResponse struct {
	Success          bool          `json:"success"`
	PlayAnnouncement bool          `json:"playAnnouncement"`
	Reason           string        `json:"reason,omitempty"`
	Text             string        `json:"text,omitempty"`
	AudioPath        string        `json:"audioPath,omitempty"`
	Location         *geo.Location `json:"location,omitempty"`
}

// ListenersResponse is the live audience snapshot.
type ListenersResponse struct {
	Success        bool                 `json:"success"`
	TotalListeners int                  `json:"totalListeners"`
	Cities         []string             `json:"cities"`
	Listeners      []azuracast.Listener `json:"listeners"`
}

// HistoryResponse lists recorded announcements.
type HistoryResponse struct {
	Count         int                   `json:"count"`
	Counts        map[string]int64      `json:"countsByCategory,omitempty"`
	Announcements []models.Announcement `json:"announcements"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse builds a failure envelope.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
