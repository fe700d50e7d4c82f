package system

import (
	"log"

	"github.com/milk9111/darkdepths/component"
	"github.com/milk9111/darkdepths/narrative"
)

// Sacrifice tags recorded by choices.
const (
	SacrificeJump            = "jump"
	SacrificeCompanionHealth = "companion_health"
)

const (
	companionSacrificeDamage = 30.0
	sacrificeBurst           = 10
)

// checkLevelProgress moves to the next level once the player passes the exit
// line, playing that level's scripted event if it has one.
func (g *Game) checkLevelProgress() {
	prog := g.cfg.Story.Progression
	if g.player.Position.X <= prog.ExitX {
		return
	}

	if _, ok := g.world.Advance(); !ok {
		g.startFinale()
		return
	}

	g.player.Teleport(prog.EntranceX, prog.EntranceY)
	g.enteredLevel()

	ev, ok := g.cfg.Story.EventFor(g.world.Current)
	if !ok {
		return
	}
	if ev.WeakenCompanion {
		g.companion.StartWeakening()
	}
	g.setState(StateDialogue)
	if err := g.dialogue.Enqueue(ev.Beats...); err != nil {
		log.Printf("system: level %d event: %v", g.world.Current, err)
		g.setState(StatePlaying)
	}
}

func (g *Game) enteredLevel() {
	lvl := g.world.Level()
	if lvl == nil {
		return
	}
	g.logf("entered level %d %q", g.world.Current, lvl.Name)
	g.ui.Notify(Notice{Kind: NoticeLevelEntered, Level: lvl.Name})
}

// startFinale plays the altar beats once every level is done.
func (g *Game) startFinale() {
	g.setState(StateSacrifice)
	if err := g.dialogue.Enqueue(g.cfg.Story.Finale...); err != nil {
		log.Printf("system: finale: %v", err)
	}
}

// applyConsequence mutates the world for a chosen option. It runs exactly once
// per choice, before the narrative engine moves on.
func (g *Game) applyConsequence(c narrative.Consequence) {
	g.logf("consequence %s", c)
	g.audio.Play(component.CueSacrifice)

	switch c {
	case narrative.ConsequenceLoseJump:
		g.player.SacrificeAbility(component.AbilityJump)
		g.sacrifices = append(g.sacrifices, SacrificeJump)
		g.particles.Burst(g.player.Position, sacrificeBurst, component.ColorBlood)
	case narrative.ConsequenceWeakenCompanion:
		g.companion.TakeDamage(companionSacrificeDamage)
		g.sacrifices = append(g.sacrifices, SacrificeCompanionHealth)
		g.particles.Burst(g.companion.Position, sacrificeBurst, component.ColorSpirit)
	case narrative.ConsequenceCompanionSacrifice:
		g.beginEnding(EndingCompanionSacrificed)
	case narrative.ConsequenceSelfSacrifice:
		g.beginEnding(EndingSelfSacrificed)
	}
}
