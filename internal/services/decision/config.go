package decision

import "time"

// Config holds the scheduling thresholds for the engine. Every value is
// tunable so a staging profile can widen windows and disable the
// cooldown without code changes.
type Config struct {
	// Outro window: announce when Remaining() is inside [Min, Max].
	OutroMinSeconds int
	OutroMaxSeconds int

	// Intro window: announce when Elapsed is inside [Min, Max] AND the
	// genre matches one of IntroGenres (case-insensitive substring).
	// Genres with long instrumental intros leave room to talk over.
	IntroMinSeconds int
	IntroMaxSeconds int
	IntroGenres     []string

	// RandomChance is the probability of an opportunistic mid-track
	// announcement when neither window matches.
	RandomChance float64

	// CooldownPassRate is the probability that a detected opportunity
	// actually fires. When zero it is derived from PollInterval and
	// TargetFireInterval, so the average fire rate tracks the real
	// evaluation cadence instead of a hand-tuned constant.
	CooldownPassRate   float64
	PollInterval       time.Duration
	TargetFireInterval time.Duration
}

// DefaultConfig returns the production profile: narrow windows, 5%
// random slot, cooldown derived from a 5s poll against a ~3 minute
// target fire interval (≈ 0.028 pass rate).
func DefaultConfig() Config {
	return Config{
		OutroMinSeconds:    10,
		OutroMaxSeconds:    15,
		IntroMinSeconds:    15,
		IntroMaxSeconds:    30,
		IntroGenres:        []string{"hip hop", "rap", "urban"},
		RandomChance:       0.05,
		PollInterval:       5 * time.Second,
		TargetFireInterval: 3 * time.Minute,
	}
}

// TestingConfig returns the staging profile: wide windows, no genre
// gate on intros, high random chance and the cooldown removed, so the
// engine is observable in short runs.
func TestingConfig() Config {
	return Config{
		OutroMinSeconds:  10,
		OutroMaxSeconds:  60,
		IntroMinSeconds:  10,
		IntroMaxSeconds:  60,
		IntroGenres:      nil, // empty set disables the gate in testing
		RandomChance:     0.5,
		CooldownPassRate: 1,
	}
}

// EffectivePassRate resolves the cooldown pass-through probability.
// An explicit CooldownPassRate wins; otherwise it is PollInterval /
// TargetFireInterval (one fire per target interval on average), and 1
// (no cooldown) when neither is usable.
func (c Config) EffectivePassRate() float64 {
	if c.CooldownPassRate > 0 {
		return c.CooldownPassRate
	}
	if c.PollInterval > 0 && c.TargetFireInterval > c.PollInterval {
		return float64(c.PollInterval) / float64(c.TargetFireInterval)
	}
	return 1
}
