package obj

import "github.com/milk9111/darkdepths/common"

const (
	enemySpeed  = 20.0
	enemyHealth = 50.0
	enemyDamage = 15.0
	crawlRate   = 2.0
)

// Enemy is a snail that patrols a horizontal span and hurts on contact.
type Enemy struct {
	Position    common.Vector2
	Velocity    common.Vector2
	Size        common.Vector2
	Health      float64
	Damage      float64
	PatrolStart float64
	PatrolEnd   float64
	Direction   float64
	Active      bool
	// Crawl is the animation phase for the renderer.
	Crawl float64
}

// NewEnemy creates an enemy at (x, y) patrolling [start, end].
func NewEnemy(x, y, start, end float64) *Enemy {
	if end < start {
		start, end = end, start
	}
	return &Enemy{
		Position:    common.Vec(common.Clamp(x, start, end), y),
		Velocity:    common.Vec(enemySpeed, 0),
		Size:        common.Vec(16, 12),
		Health:      enemyHealth,
		Damage:      enemyDamage,
		PatrolStart: start,
		PatrolEnd:   end,
		Direction:   1,
		Active:      true,
	}
}

func (e *Enemy) Rect() common.Rect {
	return common.RectAt(e.Position, e.Size)
}

// Patrol moves the enemy and reflects it at the bounds. The position is
// clamped so it never leaves [PatrolStart, PatrolEnd].
func (e *Enemy) Patrol(dt float64) {
	e.Crawl += dt * crawlRate
	e.Position.X += e.Velocity.X * e.Direction * dt

	if e.Position.X <= e.PatrolStart {
		e.Position.X = e.PatrolStart
		e.Direction = 1
	} else if e.Position.X >= e.PatrolEnd {
		e.Position.X = e.PatrolEnd
		e.Direction = -1
	}
}
