package component

import (
	"image/color"
	"math/rand/v2"

	"github.com/milk9111/darkdepths/common"
)

const (
	particleGravity = 200.0
	particleLife    = 2.0
	particleSpread  = 200.0
	particleSize    = 2.0
)

// Particle is a short-lived decaying visual. Life counts down in seconds.
type Particle struct {
	Position common.Vector2
	Velocity common.Vector2
	Life     float64
	MaxLife  float64
	Color    color.RGBA
	Size     float64
}

// Update advances the particle and reports whether it is still alive.
func (p *Particle) Update(dt float64) bool {
	p.Position = p.Position.Add(p.Velocity.Mult(dt))
	p.Velocity.Y += particleGravity * dt
	p.Life -= dt
	if p.Life < 0 {
		p.Life = 0
	}
	return p.Life > 0
}

// Alpha is the remaining-life fraction used for fading.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}

// Particles owns the active particle set.
type Particles struct {
	items []Particle
	rng   *rand.Rand
}

func NewParticles(rng *rand.Rand) *Particles {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &Particles{rng: rng}
}

// Burst spawns count particles at pos with random velocities.
func (ps *Particles) Burst(pos common.Vector2, count int, clr color.RGBA) {
	for i := 0; i < count; i++ {
		v := common.Vec((ps.rng.Float64()-0.5)*particleSpread, (ps.rng.Float64()-0.5)*particleSpread)
		ps.items = append(ps.items, Particle{
			Position: pos,
			Velocity: v,
			Life:     particleLife,
			MaxLife:  particleLife,
			Color:    clr,
			Size:     particleSize,
		})
	}
}

// Update advances every particle and drops the dead ones in place.
func (ps *Particles) Update(dt float64) {
	alive := ps.items[:0]
	for i := range ps.items {
		if ps.items[i].Update(dt) {
			alive = append(alive, ps.items[i])
		}
	}
	for i := len(alive); i < len(ps.items); i++ {
		ps.items[i] = Particle{}
	}
	ps.items = alive
}

func (ps *Particles) Items() []Particle {
	return ps.items
}

func (ps *Particles) Len() int {
	return len(ps.items)
}

func (ps *Particles) Clear() {
	ps.items = ps.items[:0]
}
