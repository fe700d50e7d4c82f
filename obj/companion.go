package obj

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/component"
)

const (
	companionFollowRate = 3.0
	companionDecayRate  = 5.0
	companionMaxHealth  = 100.0
	companionMinGlow    = 0.2
)

// Companion trails the player with exponential smoothing. It never touches platforms.
type Companion struct {
	Position  common.Vector2
	Size      common.Vector2
	Offset    common.Vector2
	Health    component.Health
	Following bool
	Weakening bool
	Glow      float64

	player  *Player
	falling bool
	drop    scriptedFall

	fx  component.Effects
	rng *rand.Rand
}

func NewCompanion(player *Player, fx component.Effects, rng *rand.Rand) *Companion {
	if fx == nil {
		fx = component.NopEffects{}
	}
	c := &Companion{
		Size:      common.Vec(20, 16),
		Offset:    common.Vec(-40, -10),
		Health:    component.NewHealth(companionMaxHealth),
		Following: true,
		Glow:      1,
		player:    player,
		fx:        fx,
		rng:       rng,
	}
	c.Position = common.Vec(player.Position.X+c.Offset.X, player.Position.Y)
	c.Health.OnDamage = func(h *component.Health, _ float64) {
		c.Glow = math.Max(companionMinGlow, h.Fraction())
	}
	return c
}

func (c *Companion) Rect() common.Rect {
	return common.RectAt(c.Position, c.Size)
}

func (c *Companion) Falling() bool { return c.falling }

// Update moves the companion toward player+offset and applies weakening decay.
func (c *Companion) Update(dt float64) {
	if c.falling {
		c.drop.update(&c.Position, c.Size, dt, c.rng, c.fx, component.ColorSpirit)
		return
	}

	if c.Following && c.Health.IsAlive() && c.player != nil {
		target := c.player.Position.Add(c.Offset)
		c.Position = c.Position.Lerp(target, companionFollowRate*dt)
	}

	if c.Weakening {
		c.Health.Drain(companionDecayRate * dt)
		c.Glow = math.Max(companionMinGlow, c.Health.Fraction())
	}
}

// StartWeakening begins continuous health decay.
func (c *Companion) StartWeakening() {
	c.Weakening = true
	c.fx.PlayCue(component.CueCompanionWeaken)
}

// StopWeakening clears the decay flag.
func (c *Companion) StopWeakening() {
	c.Weakening = false
}

// TakeDamage applies damage and reports whether it brought health to zero.
func (c *Companion) TakeDamage(amount float64) bool {
	return c.Health.TakeDamage(amount)
}

// StartFalling switches to the scripted ending drop.
func (c *Companion) StartFalling() {
	c.falling = true
	c.drop = scriptedFall{}
}

// Reset refills health and snaps back next to the player.
func (c *Companion) Reset() {
	c.Health.Reset()
	c.Glow = 1
	if c.player != nil {
		c.Position = c.player.Position.Add(c.Offset)
	}
}

// Sacrifice gives up the companion's remaining life. It reports false when
// there was nothing left to give.
func (c *Companion) Sacrifice() bool {
	if !c.Health.IsAlive() {
		return false
	}
	c.Health.Kill()
	c.Following = false
	c.StopWeakening()
	c.Glow = companionMinGlow
	return true
}
