package obj

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/darkdepths/common"
	"github.com/milk9111/darkdepths/component"
)

const step = 1.0 / 60.0

var steveStats = Stats{Speed: 200, JumpPower: 400, MaxHealth: 100}

type recordingEffects struct {
	cues      []component.Cue
	strikes   []int
	deaths    int
	particles int
}

func (r *recordingEffects) EmitParticles(_ common.Vector2, count int, _ color.RGBA) {
	r.particles += count
}
func (r *recordingEffects) PlayCue(c component.Cue) { r.cues = append(r.cues, c) }
func (r *recordingEffects) FallStrike(remaining int) {
	r.strikes = append(r.strikes, remaining)
}
func (r *recordingEffects) FallDeath() { r.deaths++ }

func newTestPlayer(x, y float64, fx component.Effects) *Player {
	return NewPlayer(x, y, CharacterSteve, steveStats, fx, rand.New(rand.NewPCG(1, 1)))
}

// settle ticks until the player is grounded or the budget runs out.
func settle(t *testing.T, p *Player, platforms []*Platform) {
	t.Helper()
	for i := 0; i < 600; i++ {
		p.Update(step, platforms)
		if p.OnGround() {
			return
		}
	}
	t.Fatalf("player never landed, y=%v", p.Position.Y)
}

func TestFallDamageBoundary(t *testing.T) {
	cases := []struct {
		name        string
		distance    float64
		wantStrikes int
	}{
		{"exactly_threshold", 150, 0},
		{"one_over_threshold", 151, 1},
		{"short_hop", 20, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fx := &recordingEffects{}
			p := newTestPlayer(0, 0, fx)
			start := 100.0
			p.fallStartY = &start
			p.Position.Y = start + c.distance
			pl := NewPlatform(0, p.Position.Y+10, 100, 20, PlatformNormal)

			p.land(pl, step)

			if p.FallDamageStrikes != c.wantStrikes {
				t.Fatalf("strikes = %d, want %d", p.FallDamageStrikes, c.wantStrikes)
			}
			if p.Position.Y != pl.Position.Y-p.Size.Y {
				t.Fatalf("player not snapped to platform top: %v", p.Position.Y)
			}
		})
	}
}

func TestThreeFallsKill(t *testing.T) {
	fx := &recordingEffects{}
	floor := NewPlatform(0, 400, 1000, 20, PlatformNormal)
	platforms := []*Platform{floor}
	p := newTestPlayer(200, 0, fx)

	for drop := 1; drop <= MaxFallStrikes; drop++ {
		p.Teleport(200, 0)
		settle(t, p, platforms)

		if p.FallDamageStrikes != drop {
			t.Fatalf("drop %d: strikes = %d", drop, p.FallDamageStrikes)
		}
		if drop < MaxFallStrikes {
			if fx.deaths != 0 {
				t.Fatalf("drop %d: death signalled early", drop)
			}
			if p.Health.Current != p.Health.Max {
				t.Fatalf("drop %d: health changed to %v", drop, p.Health.Current)
			}
			if got := fx.strikes[len(fx.strikes)-1]; got != MaxFallStrikes-drop {
				t.Fatalf("drop %d: remaining = %d", drop, got)
			}
		}
	}

	if fx.deaths != 1 {
		t.Fatalf("expected exactly one death signal, got %d", fx.deaths)
	}
	if len(fx.strikes) != MaxFallStrikes-1 {
		t.Fatalf("expected %d warnings, got %d", MaxFallStrikes-1, len(fx.strikes))
	}
	if p.Health.Current != 0 {
		t.Fatalf("health should be zero after the last strike, got %v", p.Health.Current)
	}

	// more falls never push the counter past the cap
	p.Teleport(200, 0)
	settle(t, p, platforms)
	if p.FallDamageStrikes != MaxFallStrikes || fx.deaths != 1 {
		t.Fatalf("counter moved past cap: %d deaths=%d", p.FallDamageStrikes, fx.deaths)
	}

	p.Reset(100, 400)
	if p.FallDamageStrikes != 0 || p.Health.Current != p.Health.Max {
		t.Fatalf("reset did not clear state: strikes=%d hp=%v", p.FallDamageStrikes, p.Health.Current)
	}
}

func TestVoidPullsBackWithStrike(t *testing.T) {
	fx := &recordingEffects{}
	p := newTestPlayer(100, 500, fx)
	p.LastGroundY = 300

	for i := 0; i < 120 && p.FallDamageStrikes == 0; i++ {
		p.Update(step, nil)
	}
	if p.FallDamageStrikes != 1 {
		t.Fatalf("expected one strike from the void, got %d", p.FallDamageStrikes)
	}
	if p.Position.Y != 300 || p.Velocity.Y != 0 {
		t.Fatalf("expected teleport to last ground, got y=%v vy=%v", p.Position.Y, p.Velocity.Y)
	}
}

func TestJumpRequiresAbilityAndGround(t *testing.T) {
	floor := NewPlatform(0, 400, 1000, 20, PlatformNormal)

	t.Run("with_ability", func(t *testing.T) {
		p := newTestPlayer(100, 300, nil)
		settle(t, p, []*Platform{floor})
		if !p.Jump() {
			t.Fatalf("grounded player with jump should jump")
		}
		if p.Velocity.Y != -steveStats.JumpPower {
			t.Fatalf("vy = %v", p.Velocity.Y)
		}
		if p.OnGround() {
			t.Fatalf("jump should clear grounded")
		}
	})

	t.Run("airborne", func(t *testing.T) {
		p := newTestPlayer(100, 0, nil)
		p.Update(step, []*Platform{floor})
		vy := p.Velocity.Y
		if p.Jump() || p.Velocity.Y != vy {
			t.Fatalf("airborne jump changed velocity")
		}
	})

	t.Run("without_ability", func(t *testing.T) {
		p := newTestPlayer(100, 300, nil)
		p.SacrificeAbility(component.AbilityJump)
		settle(t, p, []*Platform{floor})
		for i := 0; i < 30; i++ {
			vy := p.Velocity.Y
			InputState{Jump: true}.Apply(p)
			if p.Velocity.Y != vy {
				t.Fatalf("jump input changed vy without ability")
			}
			p.Update(step, []*Platform{floor})
		}
	})
}

func TestCrumblingPlatformNeverReturns(t *testing.T) {
	lvl := NewGameLevel("test")
	crumble := lvl.AddPlatform(0, 400, 200, 20, PlatformCrumbling)
	lvl.AddPlatform(0, 560, 1000, 16, PlatformNormal)
	p := newTestPlayer(50, 300, nil)

	collapsed := false
	for i := 0; i < 600; i++ {
		p.Update(step, lvl.Platforms)
		lvl.Update(step, p)
		if !crumble.Active {
			collapsed = true
		} else if collapsed {
			t.Fatalf("platform reactivated at tick %d", i)
		}
	}
	if !collapsed {
		t.Fatalf("platform should collapse under the player, stability=%v", crumble.Stability)
	}
	if p.Position.Y <= 400 {
		t.Fatalf("player should have dropped through, y=%v", p.Position.Y)
	}
}

func TestHorizontalDrag(t *testing.T) {
	p := newTestPlayer(100, 0, nil)
	p.Move(1)
	if p.Velocity.X != steveStats.Speed || !p.FacingRight {
		t.Fatalf("move did not set velocity: %v", p.Velocity.X)
	}
	p.Update(step, nil)
	if math.Abs(p.Velocity.X-steveStats.Speed*horizontalDrag) > 1e-9 {
		t.Fatalf("drag not applied: %v", p.Velocity.X)
	}
}

func TestScriptedFallIgnoresPlatforms(t *testing.T) {
	floor := NewPlatform(0, 0, 1000, 1000, PlatformNormal)
	p := newTestPlayer(100, 100, nil)
	p.StartFalling()
	y := p.Position.Y
	for i := 0; i < 60; i++ {
		p.Update(step, []*Platform{floor})
	}
	if !p.Falling() || p.OnGround() {
		t.Fatalf("falling player should not land")
	}
	if p.Position.Y <= y {
		t.Fatalf("falling player should move down")
	}
	if math.Abs(p.FallVelocity()-fallingGravity) > 1e-6 {
		t.Fatalf("fall velocity after 1s = %v", p.FallVelocity())
	}
	if p.Jump() {
		t.Fatalf("falling player should not jump")
	}
}

func TestDamageCueAndDeathBurst(t *testing.T) {
	fx := &recordingEffects{}
	p := newTestPlayer(100, 100, fx)

	cases := []struct {
		name      string
		amount    float64
		wantCues  int
		wantBurst int
	}{
		{"hit", 30, 1, 0},
		{"zero_amount", 0, 1, 0},
		{"lethal", 200, 2, deathBurst},
		{"already_dead", 10, 2, deathBurst},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p.TakeDamage(c.amount)
			damage := 0
			for _, cue := range fx.cues {
				if cue == component.CueDamage {
					damage++
				}
			}
			if damage != c.wantCues {
				t.Fatalf("damage cues = %d, want %d", damage, c.wantCues)
			}
			if fx.particles != c.wantBurst {
				t.Fatalf("particles = %d, want %d", fx.particles, c.wantBurst)
			}
		})
	}
}
