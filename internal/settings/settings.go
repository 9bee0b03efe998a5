// Package settings loads, overrides and persists the player-facing cheer
// settings and turns them into the immutable cheer.Config.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Cheer-Sense/internal/cheer"
)

// Allowed ranges, matching the settings page sliders.
const (
	MinKillsForCheer     = 0
	MaxKillsForCheer     = 20
	MinLeadershipCap     = 100
	MaxLeadershipCap     = 500
	MinMoraleGain        = 1
	MaxMoraleGain        = 20
	MinHeroRadius        = 1
	MaxHeroRadius        = 50
	DefaultCheerKey      = "V"
	DefaultKillsForCheer = 1
)

// Settings is the editable settings page. Field tags cover the yaml file and
// CHEER_* environment overrides.
type Settings struct {
	Enabled             bool   `yaml:"enabled" env:"CHEER_ENABLED"`
	CheerKey            string `yaml:"cheerKey" env:"CHEER_KEY"`
	KillsForPlayerCheer int    `yaml:"killsForPlayerCheer" env:"CHEER_KILLS_FOR_PLAYER_CHEER"`
	LeadershipThreshold int    `yaml:"leadershipThreshold" env:"CHEER_LEADERSHIP_THRESHOLD"`
	MaxMoraleGain       int    `yaml:"maxMoraleGain" env:"CHEER_MAX_MORALE_GAIN"`
	HeroCheerRadius     int    `yaml:"unassignedHeroCheerRadius" env:"CHEER_UNASSIGNED_HERO_RADIUS"`
	Logging             bool   `yaml:"logging" env:"CHEER_LOGGING"`
}

// Default returns the shipped settings.
func Default() Settings {
	return Settings{
		Enabled:             true,
		CheerKey:            DefaultCheerKey,
		KillsForPlayerCheer: DefaultKillsForCheer,
		LeadershipThreshold: int(cheer.DefaultLeadershipThreshold),
		MaxMoraleGain:       int(cheer.DefaultMaxMoraleGain),
		HeroCheerRadius:     int(cheer.DefaultUnassignedHeroRadius),
	}
}

// Load reads a yaml settings file on top of the defaults. A missing file is
// not an error.
func Load(path string) (Settings, error) {
	return LoadOver(Default(), path)
}

// LoadOver reads a yaml settings file on top of base. Fields the file leaves
// out keep base's values; on a read or parse failure base is returned as is.
func LoadOver(base Settings, path string) (Settings, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("failed to read settings: %w", err)
	}
	s := base
	if err := yaml.Unmarshal(data, &s); err != nil {
		return base, fmt.Errorf("failed to parse settings: %w", err)
	}
	return s, nil
}

// ApplyEnv overrides fields from CHEER_* environment variables.
func (s *Settings) ApplyEnv() error {
	if err := env.Parse(s); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyEnvFrom is ApplyEnv with an explicit environment, for tests.
func (s *Settings) ApplyEnvFrom(vars map[string]string) error {
	if err := env.ParseWithOptions(s, env.Options{Environment: vars}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Normalize clamps every numeric field into its allowed range and reports
// whether anything changed.
func (s *Settings) Normalize() bool {
	changed := false
	clampInt := func(v *int, lo, hi int) {
		switch {
		case *v < lo:
			*v = lo
			changed = true
		case *v > hi:
			*v = hi
			changed = true
		}
	}
	clampInt(&s.KillsForPlayerCheer, MinKillsForCheer, MaxKillsForCheer)
	clampInt(&s.LeadershipThreshold, MinLeadershipCap, MaxLeadershipCap)
	clampInt(&s.MaxMoraleGain, MinMoraleGain, MaxMoraleGain)
	clampInt(&s.HeroCheerRadius, MinHeroRadius, MaxHeroRadius)
	return changed
}

// ParseKey converts a key name into an ebiten key. Single letters are
// upper-cased first; anything unparseable yields V.
func ParseKey(name string) ebiten.Key {
	name = strings.TrimSpace(name)
	if len(name) == 1 {
		name = strings.ToUpper(name)
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return cheer.DefaultTriggerKey
	}
	return k
}

// Config builds the immutable controller configuration. Out-of-range values
// are clamped first.
func (s Settings) Config() cheer.Config {
	if s.Normalize() {
		log.Printf("[settings] Warning: out-of-range values clamped")
	}
	return cheer.Config{
		Enabled:              s.Enabled,
		TriggerKey:           ParseKey(s.CheerKey),
		MeterThreshold:       s.KillsForPlayerCheer,
		LeadershipThreshold:  float64(s.LeadershipThreshold),
		MaxMoraleGain:        float64(s.MaxMoraleGain),
		UnassignedHeroRadius: float64(s.HeroCheerRadius),
		LoggingEnabled:       s.Logging,
	}
}

// Resolve loads path, applies environment overrides and returns the result.
// Failures are logged and fall back to whatever was loaded so far.
func Resolve(path string) Settings {
	s, err := Load(path)
	if err != nil {
		log.Printf("[settings] Warning: %v (using defaults)", err)
	}
	if err := s.ApplyEnv(); err != nil {
		log.Printf("[settings] Warning: %v (ignoring environment)", err)
	}
	return s
}
