package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/darkdepths/common"
)

func main() {
	character := flag.String("character", "", "preselect a character preset (steve, alex, creeper)")
	debug := flag.Bool("debug", false, "enable debug logging")
	watch := flag.Bool("watch", false, "reload prefabs/ and levels/ from disk when they change")
	mute := flag.Bool("mute", false, "disable audio")
	skipIntro := flag.Bool("skip-intro", false, "start playing without the intro dialogue")
	seed := flag.Uint64("seed", 0, "random seed for particles and music (0 uses the clock)")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.WorldWidth, common.WorldHeight)
	ebiten.SetWindowTitle("The Dark Depths")

	game, err := NewGame(Options{
		Character: *character,
		Debug:     *debug,
		Watch:     *watch,
		Mute:      *mute,
		SkipIntro: *skipIntro,
		Seed:      *seed,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
