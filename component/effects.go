package component

import (
	"image/color"

	"github.com/milk9111/darkdepths/common"
)

// Cue names a fire-and-forget sound.
type Cue string

const (
	CueJump            Cue = "jump"
	CueLanding         Cue = "landing"
	CueDamage          Cue = "damage"
	CueSacrifice       Cue = "sacrifice"
	CueCompanionWeaken Cue = "companion_weaken"
)

// Effects is the narrow set of side effects an actor may trigger. It is handed
// to actors at construction so they never reach for global state.
type Effects interface {
	EmitParticles(at common.Vector2, count int, clr color.RGBA)
	PlayCue(cue Cue)
	// FallStrike reports a non-fatal fall strike and how many remain.
	FallStrike(remaining int)
	// FallDeath reports that the last allowed strike was used.
	FallDeath()
}

// NopEffects discards every effect.
type NopEffects struct{}

func (NopEffects) EmitParticles(common.Vector2, int, color.RGBA) {}
func (NopEffects) PlayCue(Cue)                                   {}
func (NopEffects) FallStrike(int)                                {}
func (NopEffects) FallDeath()                                    {}

// Palette shared by gameplay effects.
var (
	ColorBlood  = color.RGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}
	ColorSpirit = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
)
