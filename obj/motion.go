package obj

import (
	"image/color"
	"math/rand/v2"

	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/component"
)

// playerMotion is one variant of the player's movement state machine. Exactly
// one variant is active; each owns its own per-tick update.
type playerMotion interface {
	Name() string
	Enter(p *Player)
	Update(p *Player, dt float64, platforms []*Platform)
}

// singletons for each state to avoid allocating on every transition
var (
	motionGrounded playerMotion = &groundedMotion{}
	motionAirborne playerMotion = &airborneMotion{}
	motionFalling  playerMotion = &fallingMotion{}
)

type groundedMotion struct{}

func (groundedMotion) Name() string { return "grounded" }
func (groundedMotion) Enter(p *Player) {
	p.fallStartY = nil
}
func (groundedMotion) Update(p *Player, dt float64, platforms []*Platform) {
	if !p.step(dt, platforms) {
		p.setMotion(motionAirborne)
	}
}

type airborneMotion struct{}

func (airborneMotion) Name() string    { return "airborne" }
func (airborneMotion) Enter(p *Player) {}
func (airborneMotion) Update(p *Player, dt float64, platforms []*Platform) {
	if p.fallStartY == nil {
		y := p.Position.Y
		p.fallStartY = &y
	}
	if p.step(dt, platforms) {
		p.fx.PlayCue(component.CueLanding)
		p.setMotion(motionGrounded)
	}
}

// fallingMotion is the scripted ending drop: no platforms, no input, no drag.
type fallingMotion struct{}

func (fallingMotion) Name() string { return "falling" }
func (fallingMotion) Enter(p *Player) {
	p.drop = scriptedFall{}
	p.Velocity = common.Vector2{}
}
func (fallingMotion) Update(p *Player, dt float64, _ []*Platform) {
	p.drop.update(&p.Position, p.Size, dt, p.rng, p.fx, component.ColorBlood)
}

const (
	fallingGravity        = 500.0
	fallingParticleChance = 0.3
)

// scriptedFall integrates the ending drop shared by the player and the companion.
type scriptedFall struct {
	Velocity float64
}

func (f *scriptedFall) update(pos *common.Vector2, size common.Vector2, dt float64, rng *rand.Rand, fx component.Effects, clr color.RGBA) {
	f.Velocity += fallingGravity * dt
	pos.Y += f.Velocity * dt
	if rng != nil && rng.Float64() < fallingParticleChance {
		at := common.Vec(pos.X+rng.Float64()*size.X, pos.Y+rng.Float64()*size.Y)
		fx.EmitParticles(at, 1, clr)
	}
}
