package decision

// Category classifies the kind of announcement a moment calls for.
type Category string

const (
	CategoryOutro  Category = "outro"
	CategoryIntro  Category = "intro"
	CategoryRandom Category = "random"
	CategoryNone   Category = ""
)

// Timing labels where in the track the announcement would land.
type Timing string

const (
	TimingStart  Timing = "start"
	TimingMiddle Timing = "middle"
	TimingEnd    Timing = "end"
	TimingNone   Timing = ""
)

// PlaybackState is a snapshot of the currently playing track at
// evaluation time. It is built fresh from the now-playing feed on each
// tick and discarded after one decision cycle.
type PlaybackState struct {
	Artist   string
	Title    string
	Genre    string
	Elapsed  int
	Duration int
}

// NewPlaybackState normalizes raw now-playing feed values. Empty artist
// and title are substituted so generated announcements never read blank.
func NewPlaybackState(artist, title, genre string, elapsed, duration int) PlaybackState {
	if artist == "" {
		artist = "Unknown"
	}
	if title == "" {
		title = "Unknown"
	}
	return PlaybackState{
		Artist:   artist,
		Title:    title,
		Genre:    genre,
		Elapsed:  elapsed,
		Duration: duration,
	}
}

// Remaining returns seconds until the track ends. A zero duration or a
// stale feed can make this non-positive; callers treat that as "no
// usable timing", never as an error.
func (s PlaybackState) Remaining() int {
	return s.Duration - s.Elapsed
}

// Percentage returns playback progress 0-100, or 0 when duration is
// unknown.
func (s PlaybackState) Percentage() int {
	if s.Duration <= 0 {
		return 0
	}
	return int(float64(s.Elapsed) / float64(s.Duration) * 100)
}

// Decision is the outcome of one evaluation tick.
//
// Invariant: Category == CategoryNone exactly when ShouldAnnounce is
// false. Reason is diagnostic only and never used for logic.
type Decision struct {
	ShouldAnnounce bool
	Category       Category
	Timing         Timing
	Reason         string
}
