package obj

import (
	"math/rand/v2"

	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/component"
)

const (
	playerGravity       = 800.0
	horizontalDrag      = 0.85
	fallDamageThreshold = 150.0
	crumbleRate         = 2.0
	// VoidY is the world bound below which the player is pulled back to safe ground.
	VoidY = 600.0
	// MaxFallStrikes is the number of qualifying falls that kills the player.
	MaxFallStrikes = 3
	deathBurst     = 15
)

// CharacterType selects a stat preset.
type CharacterType string

const (
	CharacterSteve   CharacterType = "steve"
	CharacterAlex    CharacterType = "alex"
	CharacterCreeper CharacterType = "creeper"
)

// Stats is a character preset. It is fixed when the player is created.
type Stats struct {
	Speed     float64
	JumpPower float64
	MaxHealth float64
}

type Player struct {
	Position    common.Vector2
	Velocity    common.Vector2
	Size        common.Vector2
	Health      component.Health
	Abilities   component.Abilities
	FacingRight bool

	FallDamageStrikes int
	LastGroundY       float64

	character  CharacterType
	stats      Stats
	motion     playerMotion
	fallStartY *float64
	drop       scriptedFall

	fx  component.Effects
	rng *rand.Rand
}

// NewPlayer creates a player at (x, y) with the given preset. fx may be nil.
func NewPlayer(x, y float64, character CharacterType, stats Stats, fx component.Effects, rng *rand.Rand) *Player {
	if fx == nil {
		fx = component.NopEffects{}
	}
	p := &Player{
		Position:    common.Vec(x, y),
		Size:        common.Vec(24, 32),
		Health:      component.NewHealth(stats.MaxHealth),
		Abilities:   component.AllAbilities(),
		FacingRight: true,
		LastGroundY: y,
		character:   character,
		stats:       stats,
		motion:      motionAirborne,
		fx:          fx,
		rng:         rng,
	}
	p.Health.OnDamage = func(*component.Health, float64) {
		p.fx.PlayCue(component.CueDamage)
	}
	p.Health.OnDeath = func(*component.Health) {
		p.fx.EmitParticles(p.Position.Add(p.Size.Mult(0.5)), deathBurst, component.ColorBlood)
	}
	p.motion.Enter(p)
	return p
}

func (p *Player) Character() CharacterType { return p.character }
func (p *Player) Stats() Stats             { return p.stats }

// OnGround reports whether the player stood on a platform after the last update.
func (p *Player) OnGround() bool { return p.motion == motionGrounded }

// Falling reports whether the player is in the scripted ending drop.
func (p *Player) Falling() bool { return p.motion == motionFalling }

// FallVelocity is the current speed of the scripted drop.
func (p *Player) FallVelocity() float64 { return p.drop.Velocity }

// MotionName is the active motion variant, for debugging overlays.
func (p *Player) MotionName() string { return p.motion.Name() }

func (p *Player) Rect() common.Rect {
	return common.RectAt(p.Position, p.Size)
}

func (p *Player) setMotion(m playerMotion) {
	p.motion = m
	p.motion.Enter(p)
}

// Update advances the player by dt seconds against the given platforms.
func (p *Player) Update(dt float64, platforms []*Platform) {
	p.motion.Update(p, dt, platforms)
}

// step runs gravity, integration, landing, drag and the void check. It
// reports whether the player landed on a platform this tick.
func (p *Player) step(dt float64, platforms []*Platform) bool {
	p.Velocity.Y += playerGravity * dt
	p.Position = p.Position.Add(p.Velocity.Mult(dt))

	landed := false
	for _, pl := range platforms {
		if pl == nil || !pl.Active || !p.Rect().Intersects(pl.Rect()) {
			continue
		}
		// landing-from-above heuristic, not swept collision
		if p.Velocity.Y > 0 && p.Position.Y < pl.Position.Y {
			p.land(pl, dt)
			landed = true
		}
	}

	p.Velocity.X *= horizontalDrag

	if p.Position.Y > VoidY {
		p.fallStrike()
		p.Position.Y = p.LastGroundY
		p.Velocity.Y = 0
		p.fallStartY = nil
	}
	return landed
}

// land resolves a landing on pl from the current (overlapping) position.
func (p *Player) land(pl *Platform, dt float64) {
	if p.fallStartY != nil && p.Position.Y-*p.fallStartY > fallDamageThreshold {
		p.fallStrike()
	}

	p.Position.Y = pl.Position.Y - p.Size.Y
	p.Velocity.Y = 0
	p.LastGroundY = p.Position.Y
	p.fallStartY = nil

	if pl.Kind == PlatformCrumbling {
		pl.Crumble(dt * crumbleRate)
	}
}

// fallStrike records one qualifying fall. The last allowed strike kills.
func (p *Player) fallStrike() {
	if p.FallDamageStrikes >= MaxFallStrikes {
		return
	}
	p.FallDamageStrikes++
	p.fx.PlayCue(component.CueDamage)

	if p.FallDamageStrikes >= MaxFallStrikes {
		p.Health.Kill()
		p.fx.FallDeath()
		return
	}
	p.fx.FallStrike(MaxFallStrikes - p.FallDamageStrikes)
}

// Move sets horizontal velocity from a direction in {-1, +1}.
func (p *Player) Move(direction float64) {
	if p.Falling() || direction == 0 {
		return
	}
	p.Velocity.X = direction * p.stats.Speed
	p.FacingRight = direction > 0
}

// Jump launches the player when grounded and the jump ability is held.
func (p *Player) Jump() bool {
	if p.motion != motionGrounded || !p.Abilities.Has(component.AbilityJump) {
		return false
	}
	p.Velocity.Y = -p.stats.JumpPower
	p.setMotion(motionAirborne)
	p.fx.PlayCue(component.CueJump)
	return true
}

// TakeDamage applies damage and reports whether it brought health to zero.
// The health hooks play the damage cue and the death burst.
func (p *Player) TakeDamage(amount float64) bool {
	return p.Health.TakeDamage(amount)
}

// SacrificeAbility permanently removes a capability.
func (p *Player) SacrificeAbility(a component.Ability) bool {
	return p.Abilities.Remove(a)
}

// StartFalling switches to the scripted ending drop.
func (p *Player) StartFalling() {
	p.setMotion(motionFalling)
}

// Reset puts the player back at (x, y) with full health and no strikes.
// Sacrificed abilities stay sacrificed.
func (p *Player) Reset(x, y float64) {
	p.Health.Reset()
	p.FallDamageStrikes = 0
	p.Position = common.Vec(x, y)
	p.Velocity = common.Vector2{}
	p.LastGroundY = y
	p.setMotion(motionAirborne)
	p.fallStartY = nil
}

// Teleport moves the player to a level entrance without touching health or
// strikes. The drop onto the entrance platform starts a fresh fall.
func (p *Player) Teleport(x, y float64) {
	p.Position = common.Vec(x, y)
	p.Velocity = common.Vector2{}
	p.setMotion(motionAirborne)
	p.fallStartY = nil
}
