package decision

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Engine decides whether the current playback moment deserves a voice
// break. It keeps no history: the cooldown is re-derived from fresh
// randomness on every call, so concurrent evaluation ticks never race
// over shared counters.
type Engine struct {
	cfg Config

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates an engine. A nil rng gets a default source; tests
// inject a seeded one for determinism.
func NewEngine(cfg Config, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Engine{cfg: cfg, rng: rng}
}

// Config returns the engine's active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Decide classifies the current moment. Windows are checked in order so
// the outcomes are mutually exclusive: outro beats intro beats the
// random slot. A detected opportunity still has to survive the cooldown
// gate before it fires.
func (e *Engine) Decide(state PlaybackState) Decision {
	d := e.classify(state)

	if !d.ShouldAnnounce {
		return d
	}

	// Cooldown gate: an independent draw throttles detections down to
	// roughly one fire per target interval without storing a
	// last-announcement timestamp.
	passRate := e.cfg.EffectivePassRate()
	if e.draw() > passRate {
		return Decision{
			ShouldAnnounce: false,
			Category:       CategoryNone,
			Timing:         TimingNone,
			Reason:         "cooldown skip - suppressed to bound announcement frequency",
		}
	}

	return d
}

// classify runs the window checks without the cooldown gate applied.
func (e *Engine) classify(state PlaybackState) Decision {
	remaining := state.Remaining()

	// A zero duration means the feed has no usable timing; a negative
	// remaining means the feed is stale. Neither is an error, they just
	// match no window.
	timingValid := state.Duration > 0 && remaining >= 0

	if timingValid && remaining >= e.cfg.OutroMinSeconds && remaining <= e.cfg.OutroMaxSeconds {
		return Decision{
			ShouldAnnounce: true,
			Category:       CategoryOutro,
			Timing:         TimingEnd,
			Reason:         fmt.Sprintf("song ending in %d seconds - outro window", remaining),
		}
	}

	if timingValid && state.Elapsed >= e.cfg.IntroMinSeconds && state.Elapsed <= e.cfg.IntroMaxSeconds {
		if e.genreMatches(state.Genre) {
			return Decision{
				ShouldAnnounce: true,
				Category:       CategoryIntro,
				Timing:         TimingStart,
				Reason:         fmt.Sprintf("song at %d seconds with a long-intro genre", state.Elapsed),
			}
		}
		return Decision{
			ShouldAnnounce: false,
			Category:       CategoryNone,
			Timing:         TimingNone,
			Reason:         "intro window but genre has no instrumental intro",
		}
	}

	if e.draw() < e.cfg.RandomChance {
		return Decision{
			ShouldAnnounce: true,
			Category:       CategoryRandom,
			Timing:         TimingMiddle,
			Reason:         "random announcement to keep engagement",
		}
	}

	return Decision{
		ShouldAnnounce: false,
		Category:       CategoryNone,
		Timing:         TimingNone,
		Reason:         "no announcement window matched",
	}
}

// genreMatches reports whether the track genre contains any of the
// configured long-intro keywords. An empty keyword set matches
// everything (the testing profile drops the gate entirely).
func (e *Engine) genreMatches(genre string) bool {
	if len(e.cfg.IntroGenres) == 0 {
		return true
	}
	g := strings.ToLower(genre)
	for _, kw := range e.cfg.IntroGenres {
		if kw != "" && strings.Contains(g, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (e *Engine) draw() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}
