// Package voice synthesises the short "huzzah" cue played when a soldier
// starts cheering and mixes overlapping cues onto the speaker.
package voice

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue shape.
const (
	CueDuration   = 350 * time.Millisecond
	cueAttack     = 30 * time.Millisecond
	cueRelease    = 140 * time.Millisecond
	cueLowFreq    = 220.0 // first syllable
	cueHighFreq   = 330.0 // second syllable, a fifth up
	cueJitter     = 0.06  // +/- share of pitch varied per cue
	cueVolume     = 0.35
	cueSplitShare = 0.4 // fraction of the cue spent on the low syllable
)

// DefaultSampleRate is the speaker rate used by the viewer.
const DefaultSampleRate = beep.SampleRate(44100)

// syllable is a sine oscillator with a linear pitch glide.
type syllable struct {
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSyllable(from, to float64, d time.Duration, rate beep.SampleRate) *syllable {
	return &syllable{from: from, to: to, duration: rate.N(d), rate: rate}
}

func (s *syllable) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		// A touch of second harmonic makes it read as a voice, not a beep.
		val := 0.8*math.Sin(2*math.Pi*s.phase) + 0.2*math.Sin(4*math.Pi*s.phase)
		samples[i][0] = val
		samples[i][1] = val
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *syllable) Err() error { return nil }

// envelope applies a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			vol = float64(e.total-e.position) / float64(e.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// NewVictoryCue builds one rising two-syllable cue. Pitch is jittered per
// call so simultaneous cheers do not phase into a single tone.
func NewVictoryCue(rng *rand.Rand, rate beep.SampleRate) beep.Streamer {
	jitter := 1.0
	if rng != nil {
		jitter += (rng.Float64()*2 - 1) * cueJitter
	}
	low := cueLowFreq * jitter
	high := cueHighFreq * jitter

	lowLen := time.Duration(float64(CueDuration) * cueSplitShare)
	highLen := CueDuration - lowLen
	voice := beep.Seq(
		newSyllable(low, low*1.05, lowLen, rate),
		newSyllable(high*0.95, high, highLen, rate),
	)
	shaped := newEnvelope(voice, CueDuration, cueAttack, cueRelease, rate)
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: math.Log2(cueVolume)}
}
