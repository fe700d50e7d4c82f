package obj

import "math"

const (
	corruptionRate    = 0.1
	overlayPerCorrupt = 0.05
	overlayMax        = 0.3
)

// GameLevel is one hand-authored stage. Its shape never changes after
// creation; only per-entity runtime fields do.
type GameLevel struct {
	Name       string
	Platforms  []*Platform
	Enemies    []*Enemy
	Corruption float64
	Completed  bool
}

func NewGameLevel(name string) *GameLevel {
	return &GameLevel{Name: name}
}

func (l *GameLevel) AddPlatform(x, y, w, h float64, kind PlatformKind) *Platform {
	p := NewPlatform(x, y, w, h, kind)
	l.Platforms = append(l.Platforms, p)
	return p
}

func (l *GameLevel) AddEnemy(x, y, start, end float64) *Enemy {
	e := NewEnemy(x, y, start, end)
	l.Enemies = append(l.Enemies, e)
	return e
}

// Update patrols enemies, applies contact damage to player, collapses
// depleted platforms and accumulates corruption.
func (l *GameLevel) Update(dt float64, player *Player) {
	for _, e := range l.Enemies {
		if !e.Active {
			continue
		}
		e.Patrol(dt)

		// damage per second while overlapping
		if player != nil && player.Rect().Intersects(e.Rect()) {
			player.TakeDamage(e.Damage * dt)
		}
	}

	for _, p := range l.Platforms {
		if p.Depleted() {
			p.Active = false
		}
	}

	l.Corruption += dt * corruptionRate
}

// Overlay is the darkness opacity the renderer draws over the level.
func (l *GameLevel) Overlay() float64 {
	return math.Min(overlayMax, l.Corruption*overlayPerCorrupt)
}
