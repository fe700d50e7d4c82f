package system

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/component"
	"github.com/milk9111/darkdepths/narrative"
	"github.com/milk9111/darkdepths/obj"
	"github.com/milk9111/darkdepths/prefabs"
)

var (
	ErrWrongState     = errors.New("system: operation not allowed in this state")
	ErrMissingContent = errors.New("system: missing content")
)

type GameState string

const (
	StateMenu            GameState = "menu"
	StateCharacterSelect GameState = "character_select"
	StateIntro           GameState = "intro"
	StatePlaying         GameState = "playing"
	StateDialogue        GameState = "dialogue"
	StateSacrifice       GameState = "sacrifice"
	StateEnding          GameState = "ending"
	StatePaused          GameState = "paused"
)

// inNarrative reports whether the narrative engine owns the state.
func (s GameState) inNarrative() bool {
	return s == StateIntro || s == StateDialogue || s == StateSacrifice
}

const (
	ambientInterval = 0.5
	ambientChance   = 0.3
	ambientBandY    = 100.0
	seedMix         = 0x9e3779b97f4a7c15
)

type Config struct {
	Characters *prefabs.CharacterSpec
	Story      *prefabs.StorySpec
	// Levels overrides the layouts named by Story when set.
	Levels []*obj.GameLevel

	Audio AudioSink
	UI    UISink

	Seed      uint64
	Debug     bool
	SkipIntro bool

	ViewWidth  float64
	ViewHeight float64
}

// Game is the top-level state machine. It owns the actors, the levels, the
// narrative engine and every timer, and is only ever driven from one goroutine.
type Game struct {
	cfg   Config
	audio AudioSink
	ui    UISink
	rng   *rand.Rand

	state     GameState
	selected  obj.CharacterType
	world     *World
	player    *obj.Player
	companion *obj.Companion

	particles *component.Particles
	camera    *obj.Camera
	scheduler *Scheduler
	dialogue  *narrative.Engine

	sacrifices   []string
	ambientTimer float64

	ending      EndingType
	endingPhase EndingPhase
	blur        float64
	blurRising  bool
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.Characters == nil || cfg.Story == nil {
		return nil, fmt.Errorf("system: new game: %w", ErrMissingContent)
	}

	var (
		world *World
		err   error
	)
	if cfg.Levels != nil {
		world, err = NewWorld(cfg.Levels)
	} else {
		world, err = LoadWorld(cfg.Story)
	}
	if err != nil {
		return nil, err
	}

	if cfg.ViewWidth <= 0 || cfg.ViewHeight <= 0 {
		cfg.ViewWidth, cfg.ViewHeight = common.WorldWidth, common.WorldHeight
	}

	g := &Game{
		cfg:       cfg,
		audio:     cfg.Audio,
		ui:        cfg.UI,
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^seedMix)),
		state:     StateMenu,
		selected:  cfg.Characters.DefaultType(),
		world:     world,
		scheduler: NewScheduler(),
		camera:    obj.NewCamera(cfg.ViewWidth, cfg.ViewHeight, common.WorldWidth, common.WorldHeight),
	}
	if g.audio == nil {
		g.audio = nopAudio{}
	}
	if g.ui == nil {
		g.ui = nopUI{}
	}
	g.particles = component.NewParticles(g.rng)

	g.dialogue = narrative.NewEngine(func(d time.Duration, fn func()) { g.scheduler.After(d, fn) })
	g.dialogue.OnPresent = func(b narrative.Beat) {
		g.logf("beat %s (%s): %s", b.Speaker, b.Kind(), b.Text)
	}
	g.dialogue.OnChoose = func(o narrative.Option) {
		g.applyConsequence(o.Consequence)
	}
	g.dialogue.OnIdle = func() {
		if g.state.inNarrative() {
			g.setState(StatePlaying)
		}
	}

	return g, nil
}

func (g *Game) State() GameState                   { return g.state }
func (g *Game) Player() *obj.Player                { return g.player }
func (g *Game) Companion() *obj.Companion          { return g.companion }
func (g *Game) Level() *obj.GameLevel              { return g.world.Level() }
func (g *Game) LevelIndex() int                    { return g.world.Current }
func (g *Game) Selected() obj.CharacterType        { return g.selected }
func (g *Game) Characters() *prefabs.CharacterSpec { return g.cfg.Characters }
func (g *Game) Ending() EndingType                 { return g.ending }
func (g *Game) EndingPhase() EndingPhase           { return g.endingPhase }
func (g *Game) Blur() float64                      { return g.blur }
func (g *Game) Now() time.Duration                 { return g.scheduler.Now() }

// Sacrifices lists the sacrifice tags recorded so far, oldest first.
func (g *Game) Sacrifices() []string {
	return append([]string(nil), g.sacrifices...)
}

// Beat is the dialogue beat currently on screen.
func (g *Game) Beat() (narrative.Beat, bool) {
	return g.dialogue.Current()
}

func (g *Game) setState(s GameState) {
	if g.state == s {
		return
	}
	g.logf("state %s -> %s", g.state, s)
	g.state = s
	g.ui.Notify(Notice{Kind: NoticeStateChanged, State: s})
}

func (g *Game) logf(format string, args ...any) {
	if g.cfg.Debug {
		log.Printf("system: "+format, args...)
	}
}

func wrongState(op string, s GameState) error {
	return fmt.Errorf("system: %s in %s: %w", op, s, ErrWrongState)
}

// OpenCharacterSelect leaves the start menu.
func (g *Game) OpenCharacterSelect() error {
	if g.state != StateMenu {
		return wrongState("open character select", g.state)
	}
	g.setState(StateCharacterSelect)
	return nil
}

// SelectCharacter highlights a preset without starting the game.
func (g *Game) SelectCharacter(t obj.CharacterType) error {
	if g.state != StateCharacterSelect {
		return wrongState("select character", g.state)
	}
	if _, err := g.cfg.Characters.Preset(t); err != nil {
		return err
	}
	g.selected = t
	return nil
}

// ConfirmCharacter creates the player and companion and starts the intro.
func (g *Game) ConfirmCharacter() error {
	if g.state != StateCharacterSelect {
		return wrongState("confirm character", g.state)
	}
	preset, err := g.cfg.Characters.Preset(g.selected)
	if err != nil {
		return err
	}

	spawn := g.cfg.Story.Progression
	g.player = obj.NewPlayer(spawn.SpawnX, spawn.SpawnY, g.selected, preset.Stats(), g, g.rng)
	g.companion = obj.NewCompanion(g.player, g, g.rng)
	g.camera.SnapTo(g.player.Position)
	g.logf("started as %s %+v", g.selected, preset.Stats())

	g.audio.StartMusic()
	g.enteredLevel()

	if g.cfg.SkipIntro || len(g.cfg.Story.Intro) == 0 {
		g.setState(StatePlaying)
		return nil
	}
	g.setState(StateIntro)
	if err := g.dialogue.Enqueue(g.cfg.Story.Intro...); err != nil {
		g.setState(StatePlaying)
		return fmt.Errorf("system: intro: %w", err)
	}
	return nil
}

// Tick advances the game by one frame. Physics uses the frame time capped at
// common.MaxStep; timers use the full frame time.
func (g *Game) Tick(frame time.Duration, in obj.InputState) {
	if frame < 0 {
		frame = 0
	}
	dt := math.Min(frame.Seconds(), common.MaxStep)

	switch g.state {
	case StatePlaying:
		g.tickPlaying(dt, in)
	case StateEnding:
		g.tickEnding(dt)
	case StateIntro, StateDialogue, StateSacrifice:
		g.particles.Update(dt)
	}

	g.scheduler.Advance(frame)
}

func (g *Game) tickPlaying(dt float64, in obj.InputState) {
	lvl := g.world.Level()
	if lvl == nil || g.player == nil {
		return
	}

	in.Apply(g.player)
	g.player.Update(dt, lvl.Platforms)
	g.companion.Update(dt)
	lvl.Update(dt, g.player)
	g.particles.Update(dt)
	g.spawnAmbient(dt)
	g.camera.Follow(g.player.Position)
	g.ui.Health(g.player.Health.Fraction(), g.companion.Health.Fraction())

	// a fall death during the update already paused the game
	if g.state != StatePlaying {
		return
	}
	if !g.player.Health.IsAlive() {
		g.pause(NoticeHealthZero)
		return
	}
	g.checkLevelProgress()
}

func (g *Game) spawnAmbient(dt float64) {
	g.ambientTimer += dt
	if g.ambientTimer <= ambientInterval {
		return
	}
	g.ambientTimer = 0
	if g.rng.Float64() < ambientChance {
		at := common.Vec(g.rng.Float64()*common.WorldWidth, g.rng.Float64()*ambientBandY)
		g.particles.Burst(at, 1, component.ColorSpirit)
	}
}

func (g *Game) pause(kind NoticeKind) {
	g.setState(StatePaused)
	n := Notice{Kind: kind}
	if p, ok := g.cfg.Story.Popups[popupKey(kind)]; ok {
		n.Title = p.Title
		n.Lines = []string{p.Text}
	}
	g.ui.Notify(n)
}

func popupKey(kind NoticeKind) string {
	return kind.String()
}

// AdvanceDialogue dismisses the current manual beat.
func (g *Game) AdvanceDialogue() error {
	if !g.state.inNarrative() {
		return wrongState("advance dialogue", g.state)
	}
	return g.dialogue.Advance()
}

// Choose selects an option of the current choice beat.
func (g *Game) Choose(i int) error {
	if !g.state.inNarrative() {
		return wrongState("choose", g.state)
	}
	_, err := g.dialogue.Choose(i)
	return err
}

// RetryLevel resets both actors at the level's respawn point and resumes the
// current level.
func (g *Game) RetryLevel() error {
	if g.state != StatePaused {
		return wrongState("retry level", g.state)
	}
	g.resetActors()
	g.setState(StatePlaying)
	g.ui.Notify(Notice{Kind: NoticeResumed})
	return nil
}

// RestartGame resets both actors and goes back to the first level.
// Sacrificed abilities and companion weakening stay.
func (g *Game) RestartGame() error {
	if g.state != StatePaused {
		return wrongState("restart game", g.state)
	}
	g.world.Restart()
	g.resetActors()
	g.setState(StatePlaying)
	g.ui.Notify(Notice{Kind: NoticeResumed})
	g.enteredLevel()
	return nil
}

func (g *Game) resetActors() {
	x, y := g.respawnPoint()
	g.player.Reset(x, y)
	g.companion.Reset()
}

// respawnPoint is the session spawn on the first level and the entrance every
// later level is entered through, which sits over that level's first platform.
func (g *Game) respawnPoint() (float64, float64) {
	prog := g.cfg.Story.Progression
	if g.world.Current == 0 {
		return prog.SpawnX, prog.SpawnY
	}
	return prog.EntranceX, prog.EntranceY
}

// EmitParticles implements component.Effects.
func (g *Game) EmitParticles(at common.Vector2, count int, clr color.RGBA) {
	g.particles.Burst(at, count, clr)
}

// PlayCue implements component.Effects.
func (g *Game) PlayCue(cue component.Cue) {
	g.audio.Play(cue)
}

// FallStrike implements component.Effects.
func (g *Game) FallStrike(remaining int) {
	g.logf("fall strike, %d left", remaining)
	n := Notice{Kind: NoticeFallWarning, Remaining: remaining}
	if p, ok := g.cfg.Story.Popups[popupKey(NoticeFallWarning)]; ok {
		n.Title = p.Title
		n.Lines = []string{chancesText(p.Text, remaining)}
	}
	g.ui.Notify(n)
}

// FallDeath implements component.Effects.
func (g *Game) FallDeath() {
	g.logf("fall strikes exhausted")
	g.pause(NoticeGameOver)
}

func chancesText(format string, remaining int) string {
	noun := "chances"
	if remaining == 1 {
		noun = "chance"
	}
	return fmt.Sprintf(format, remaining, noun)
}
