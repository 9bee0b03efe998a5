package cheer

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// StopThreshold is the group timer value (seconds) at which a cheer ends.
	StopThreshold = 2.0
	// SatelliteOffset pre-offsets every satellite group so its own active
	// window begins after a stagger delay.
	SatelliteOffset = -2.0
	// MinStagger and MaxStagger bound the random per-satellite delay.
	MinStagger = 0.1
	MaxStagger = 1.0
	// CheerVariants is the number of equally weighted cheer animations.
	CheerVariants = 4
)

// Defaults mirror the shipped settings page.
const (
	DefaultMeterThreshold       = 1
	DefaultLeadershipThreshold  = 300.0
	DefaultMaxMoraleGain        = 10.0
	DefaultUnassignedHeroRadius = 10.0
	DefaultTriggerKey           = ebiten.KeyV
)

// Config is the immutable tuning handed to the behavior at construction.
type Config struct {
	Enabled              bool
	TriggerKey           ebiten.Key
	MeterThreshold       int     // kills needed before the player may cheer
	LeadershipThreshold  float64 // leadership at which cheer fraction and morale gain saturate
	MaxMoraleGain        float64
	UnassignedHeroRadius float64 // metres
	LoggingEnabled       bool
}

// DefaultConfig returns the out-of-the-box configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		TriggerKey:           DefaultTriggerKey,
		MeterThreshold:       DefaultMeterThreshold,
		LeadershipThreshold:  DefaultLeadershipThreshold,
		MaxMoraleGain:        DefaultMaxMoraleGain,
		UnassignedHeroRadius: DefaultUnassignedHeroRadius,
	}
}

// sanitized replaces values the formulas cannot work with.
func (c Config) sanitized() Config {
	if c.LeadershipThreshold <= 0 || math.IsNaN(c.LeadershipThreshold) {
		c.LeadershipThreshold = DefaultLeadershipThreshold
	}
	if c.MeterThreshold < 0 {
		c.MeterThreshold = 0
	}
	if c.MaxMoraleGain < 0 {
		c.MaxMoraleGain = 0
	}
	if c.UnassignedHeroRadius < 0 {
		c.UnassignedHeroRadius = 0
	}
	return c
}

// CheerFraction is the share of the candidate pool that joins a cheer for a
// leader with the given skill, clamped to [0,1].
func (c Config) CheerFraction(leadership int) float64 {
	f := float64(leadership) / c.LeadershipThreshold
	return math.Max(0, math.Min(f, 1))
}

// SelectionCount is how many of poolSize candidates are picked.
func (c Config) SelectionCount(poolSize, leadership int) int {
	if poolSize <= 0 {
		return 0
	}
	n := int(math.Floor(float64(poolSize) * c.CheerFraction(leadership)))
	if n > poolSize {
		n = poolSize
	}
	return n
}

// MoraleGain is the morale added to every cheering member of a group led by
// someone with the given leadership skill. Halves round to even.
func (c Config) MoraleGain(leadership int) int {
	gain := c.MaxMoraleGain * (float64(leadership) / c.LeadershipThreshold)
	gain = math.Min(gain, c.MaxMoraleGain)
	return int(math.RoundToEven(gain))
}
