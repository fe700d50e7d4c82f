package system

import (
	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/component"
	"github.com/milk9111/darkdepths/narrative"
	"github.com/milk9111/darkdepths/obj"
)

// OffscreenY is the depth past which fallen actors are no longer drawn.
const OffscreenY = 800.0

// View is everything the renderer needs for one frame. It borrows the game's
// objects; the renderer must not mutate them.
type View struct {
	State       GameState
	Level       *obj.GameLevel
	LevelIndex  int
	Player      *obj.Player
	Companion   *obj.Companion
	Particles   []component.Particle
	Camera      common.Vector2
	Overlay     float64
	Blur        float64
	Dialogue    *narrative.Beat
	Ending      EndingType
	EndingPhase EndingPhase
	Sacrifices  []string
}

// ShowLevelName reports whether the level title banner is drawn.
func (v View) ShowLevelName() bool {
	return v.State == StatePlaying && v.Level != nil
}

// Visible reports whether an actor at y is still on screen.
func Visible(y float64) bool {
	return y < OffscreenY
}

func (g *Game) View() View {
	v := View{
		State:       g.state,
		Level:       g.world.Level(),
		LevelIndex:  g.world.Current,
		Player:      g.player,
		Companion:   g.companion,
		Particles:   g.particles.Items(),
		Camera:      g.camera.Pos,
		Blur:        g.blur,
		Ending:      g.ending,
		EndingPhase: g.endingPhase,
		Sacrifices:  g.Sacrifices(),
	}
	if v.Level != nil {
		v.Overlay = v.Level.Overlay()
	}
	if b, ok := g.dialogue.Current(); ok {
		v.Dialogue = &b
	}
	return v
}
