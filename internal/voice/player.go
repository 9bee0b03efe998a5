package voice

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// maxConcurrentCues caps how many cues play at once so a general's whole
// army cheering does not clip.
const maxConcurrentCues = 8

// Player mixes cues onto the speaker. It stays silent until Init succeeds,
// and a nil *Player is always silent.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
}

// NewPlayer creates a player at rate. seed fixes the pitch jitter.
func NewPlayer(rate beep.SampleRate, seed int64) *Player {
	return &Player{
		rate:  rate,
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404 -- pitch jitter
	}
}

// Init opens the speaker and starts the mixer. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues s on the mixer. Dropped when the player is not initialised or
// too many cues are already playing.
func (p *Player) Play(s beep.Streamer) bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	if p.mixer.Len() >= maxConcurrentCues {
		return false
	}
	p.mixer.Add(s)
	return true
}

// PlayCue plays a fresh victory cue.
func (p *Player) PlayCue() {
	if p == nil {
		return
	}
	p.mu.Lock()
	cue := NewVictoryCue(p.rng, p.rate)
	p.mu.Unlock()
	p.Play(cue)
}

// Close silences everything that is still playing.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
