package voice

import (
	"fmt"
	"time"
)

// Settings are the voice rendering parameters sent with every request.
type Settings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	SpeakerBoost    bool    `json:"use_speaker_boost"`
}

// SettingsOverride selectively replaces process-wide defaults for one
// call. Nil fields keep the default.
type SettingsOverride struct {
	Stability       *float64
	SimilarityBoost *float64
	Style           *float64
	SpeakerBoost    *bool
}

// apply merges the override onto a copy of the defaults.
func (o *SettingsOverride) apply(defaults Settings) Settings {
	if o == nil {
		return defaults
	}
	s := defaults
	if o.Stability != nil {
		s.Stability = *o.Stability
	}
	if o.SimilarityBoost != nil {
		s.SimilarityBoost = *o.SimilarityBoost
	}
	if o.Style != nil {
		s.Style = *o.Style
	}
	if o.SpeakerBoost != nil {
		s.SpeakerBoost = *o.SpeakerBoost
	}
	return s
}

// Audio is a rendered announcement. Immutable after creation; the
// filename is timestamped so repeated uploads never collide.
type Audio struct {
	Text     string
	Data     []byte
	Filename string
}

// synthesisRequest is the provider wire format.
type synthesisRequest struct {
	Text          string   `json:"text"`
	ModelID       string   `json:"model_id"`
	VoiceSettings Settings `json:"voice_settings"`
}

// announcementFilename builds a collision-free output name.
func announcementFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d.mp3", prefix, now.UnixMilli())
}
