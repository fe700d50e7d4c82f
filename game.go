package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/darkdepths/assets"
	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/narrative"
	"github.com/milk9111/darkdepths/obj"
	"github.com/milk9111/darkdepths/prefabs"
	"github.com/milk9111/darkdepths/system"
)

var contentDirs = []string{"prefabs", "levels"}

type Options struct {
	Character string
	Debug     bool
	Watch     bool
	Mute      bool
	SkipIntro bool
	Seed      uint64
}

// Game adapts system.Game to ebiten. It owns the window-side pieces: input,
// audio, the overlay and content reloading.
type Game struct {
	opts Options

	sim      *system.Game
	ui       *UI
	renderer *Renderer
	sounds   *assets.Sounds
	watcher  *prefabs.Watcher

	reloadPending bool
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		opts:   opts,
		sounds: assets.NewSounds(opts.Seed, opts.Mute),
	}
	g.ui = NewUI(g)

	if err := g.newSession(); err != nil {
		return nil, err
	}

	if opts.Watch {
		var dirs []string
		for _, d := range contentDirs {
			if _, err := os.Stat(d); err == nil {
				dirs = append(dirs, d)
			}
		}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("content watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// newSession loads content fresh and starts a game at the menu.
func (g *Game) newSession() error {
	chars, err := prefabs.LoadCharacterSpec()
	if err != nil {
		return err
	}
	story, err := prefabs.LoadStorySpec()
	if err != nil {
		return err
	}

	sim, err := system.NewGame(system.Config{
		Characters: chars,
		Story:      story,
		Audio:      g.sounds,
		UI:         g.ui,
		Seed:       g.opts.Seed,
		Debug:      g.opts.Debug,
		SkipIntro:  g.opts.SkipIntro,
	})
	if err != nil {
		return err
	}

	if g.sim != nil {
		g.sounds.StopMusic()
	}
	g.sim = sim
	g.renderer = NewRenderer(chars)
	g.ui.Reset(chars)
	g.reloadPending = false

	if g.opts.Character != "" {
		g.OpenCharacterSelect()
		g.SelectCharacter(obj.CharacterType(g.opts.Character))
	}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollContent()
	g.handleKeys()

	in := obj.InputState{}
	if g.sim.State() == system.StatePlaying {
		in = readInput()
	}
	g.sim.Tick(frameDuration(), in)

	g.ui.Update(g.sim.View(), g.sim.Selected())
	return nil
}

func frameDuration() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

func (g *Game) handleKeys() {
	switch g.sim.State() {
	case system.StateMenu:
		if anyJustPressed(confirmKeys) {
			g.OpenCharacterSelect()
		}
	case system.StateCharacterSelect:
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
			g.cycleCharacter(-1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
			g.cycleCharacter(1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.ConfirmCharacter()
		}
	case system.StateIntro, system.StateDialogue, system.StateSacrifice:
		if anyJustPressed(confirmKeys) {
			g.AdvanceDialogue()
		}
		if i, ok := choicePressed(); ok {
			g.Choose(i)
		}
	case system.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.Retry()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.Restart()
		}
	case system.StateEnding:
		if g.sim.EndingPhase() == system.PhaseClosing && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.PlayAgain()
		}
	}
}

func (g *Game) cycleCharacter(step int) {
	presets := g.sim.Characters().Characters
	if len(presets) == 0 {
		return
	}
	idx := 0
	for i, p := range presets {
		if p.Type == g.sim.Selected() {
			idx = i
		}
	}
	idx = (idx + step + len(presets)) % len(presets)
	g.SelectCharacter(presets[idx].Type)
}

// pollContent validates changed files as they arrive. A valid change is
// applied the next time a session starts; at the menu that is immediately.
func (g *Game) pollContent() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("content watch: %v", err)
	default:
	}

	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	if err := checkContent(); err != nil {
		log.Printf("content reload rejected (%v): %v", changed, err)
		return
	}
	log.Printf("content changed: %v", changed)
	g.reloadPending = true

	if g.sim.State() == system.StateMenu {
		g.reload()
	}
}

func (g *Game) reload() {
	if err := g.newSession(); err != nil {
		log.Printf("content reload: %v", err)
	}
}

// checkContent loads every content file without touching the running game.
func checkContent() error {
	if _, err := prefabs.LoadCharacterSpec(); err != nil {
		return err
	}
	story, err := prefabs.LoadStorySpec()
	if err != nil {
		return err
	}
	_, err = system.LoadWorld(story)
	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	v := g.sim.View()
	g.renderer.Draw(screen, v)
	g.ui.Draw(screen, v)

	if g.opts.Debug {
		msg := fmt.Sprintf("FPS: %.2f  state: %s  t=%s", ebiten.ActualFPS(), v.State, g.sim.Now().Truncate(time.Millisecond))
		if p := v.Player; p != nil {
			msg += fmt.Sprintf("\npos: %.0f,%.0f  %s  strikes: %d", p.Position.X, p.Position.Y, p.MotionName(), p.FallDamageStrikes)
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.WorldWidth, common.WorldHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// The methods below implement actions for the overlay and the keyboard.
// Rejected intents are logged; a double click racing a state change is normal.

func (g *Game) OpenCharacterSelect() {
	g.check("open character select", g.sim.OpenCharacterSelect())
}

func (g *Game) SelectCharacter(t obj.CharacterType) {
	g.check("select character", g.sim.SelectCharacter(t))
}

func (g *Game) ConfirmCharacter() {
	g.check("confirm character", g.sim.ConfirmCharacter())
}

func (g *Game) AdvanceDialogue() {
	err := g.sim.AdvanceDialogue()
	if errors.Is(err, narrative.ErrNotManual) || errors.Is(err, narrative.ErrNothingPresented) {
		return
	}
	g.check("advance dialogue", err)
}

func (g *Game) Choose(i int) {
	err := g.sim.Choose(i)
	if errors.Is(err, narrative.ErrNoChoice) || errors.Is(err, narrative.ErrOptionOutOfRange) || errors.Is(err, narrative.ErrNothingPresented) {
		return
	}
	g.check("choose", err)
}

func (g *Game) Retry() {
	g.check("retry level", g.sim.RetryLevel())
}

func (g *Game) Restart() {
	g.check("restart game", g.sim.RestartGame())
}

func (g *Game) PlayAgain() {
	if g.reloadPending {
		log.Printf("applying reloaded content")
	}
	g.reload()
}

func (g *Game) check(op string, err error) {
	if err != nil && g.opts.Debug {
		log.Printf("%s: %v", op, err)
	}
}
