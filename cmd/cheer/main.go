package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Cheer-Sense/internal/settings"
	"github.com/Garsondee/Cheer-Sense/internal/view"
	"github.com/Garsondee/Cheer-Sense/internal/voice"
)

// closer is the part of the voice player main needs at shutdown.
type closer interface {
	Close()
}

// run plays game and closes player before returning, so main can exit via
// log.Fatal without leaving the audio device open.
func run(game ebiten.Game, player closer, play func(ebiten.Game) error) error {
	err := play(game)
	player.Close()
	return err
}

func main() {
	var configPath string
	var scenario string
	var seed int64
	var mute bool

	flag.StringVar(&configPath, "config", "", "yaml settings file applied on top of the saved settings for this launch")
	flag.StringVar(&scenario, "scenario", "general", "starting scenario (general|captain|hero)")
	flag.Int64Var(&seed, "seed", 1, "RNG seed for the first scenario")
	flag.BoolVar(&mute, "mute", false, "disable voice cues")
	flag.Parse()

	store := settings.OpenStore("cheer_sense")
	if err := store.Save(); err != nil {
		log.Printf("[settings] Warning: %v", err)
	}
	cfg := store.Layered(configPath, nil).Config()

	opts := []view.Option{view.WithSeed(seed), view.WithScenario(scenario)}
	var player *voice.Player
	if !mute {
		p := voice.NewPlayer(voice.DefaultSampleRate, seed)
		if err := p.Init(); err != nil {
			log.Printf("[voice] Warning: %v (continuing without sound)", err)
		} else {
			player = p
			opts = append(opts, view.WithVoice(p))
		}
	}

	ebiten.SetWindowTitle("Cheer Sense")
	ebiten.SetWindowSize(view.ScreenWidth, view.ScreenHeight)
	if err := run(view.New(cfg, opts...), player, ebiten.RunGame); err != nil {
		log.Fatal(err)
	}
}
