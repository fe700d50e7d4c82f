package system

import (
	"fmt"
	"log"
	"time"

	"github.com/milk9111/darkdepths/component"
	"github.com/milk9111/darkdepths/narrative"
)

type EndingType string

const (
	EndingCompanionSacrificed EndingType = "companion_sacrificed"
	EndingSelfSacrificed      EndingType = "self_sacrificed"
)

func (e EndingType) consequence() narrative.Consequence {
	if e == EndingCompanionSacrificed {
		return narrative.ConsequenceCompanionSacrifice
	}
	return narrative.ConsequenceSelfSacrifice
}

type EndingPhase string

const (
	PhaseNone     EndingPhase = ""
	PhaseFalling  EndingPhase = "falling"
	PhaseBlurring EndingPhase = "blurring"
	PhaseTheEnd   EndingPhase = "the_end"
	PhaseClosing  EndingPhase = "closing"
)

// Ending timeline, measured from the choice.
const (
	EndingFallDuration = 3 * time.Second
	EndingTheEndAt     = 5 * time.Second
	EndingClosingAt    = 8 * time.Second

	BlurMax  = 10.0
	blurRate = BlurMax / 2 // full blur two seconds after the fall
	endBurst = 20
)

// beginEnding stops normal play and schedules the closing cinematic. A second
// call while the first timeline is pending does not cancel the first one's
// timers; both run.
func (g *Game) beginEnding(ending EndingType) {
	if g.ending != "" {
		log.Printf("system: ending %s requested while %s is pending; earlier timers still fire", ending, g.ending)
	}

	g.setState(StateEnding)
	g.ending = ending
	g.endingPhase = PhaseFalling
	g.blur = 0
	g.blurRising = false

	switch ending {
	case EndingCompanionSacrificed:
		g.companion.Sacrifice()
		g.companion.StartFalling()
		g.particles.Burst(g.companion.Position, endBurst, component.ColorSpirit)
	case EndingSelfSacrificed:
		g.player.StartFalling()
		g.particles.Burst(g.player.Position, endBurst, component.ColorBlood)
	}
	g.ui.Notify(Notice{Kind: NoticeEnding, Ending: ending})

	g.scheduler.After(EndingFallDuration, func() {
		g.logf("ending: blur")
		g.endingPhase = PhaseBlurring
		g.blurRising = true
	})
	g.scheduler.After(EndingTheEndAt, func() {
		g.logf("ending: the end")
		g.endingPhase = PhaseTheEnd
		g.ui.Notify(Notice{Kind: NoticeTheEnd, Ending: ending, Title: "THE END"})
	})
	g.scheduler.After(EndingClosingAt, func() {
		g.logf("ending: closing notes")
		g.endingPhase = PhaseClosing
		g.audio.StopMusic()
		g.ui.Notify(g.closingNotice(ending))
	})
}

func (g *Game) closingNotice(ending EndingType) Notice {
	text := g.cfg.Story.Ending(ending.consequence())
	closing := g.cfg.Story.Closing

	lines := append([]string(nil), text.Text...)
	if closing.Quote != "" {
		lines = append(lines, fmt.Sprintf("%q", closing.Quote))
		if closing.Attribution != "" {
			lines = append(lines, "- "+closing.Attribution)
		}
	}
	lines = append(lines, closing.Lines...)

	return Notice{Kind: NoticeClosing, Ending: ending, Title: text.Title, Lines: lines}
}

// tickEnding runs only the scripted drop and the blur ramp. Actors that are
// not falling stay exactly where they were.
func (g *Game) tickEnding(dt float64) {
	if g.player != nil && g.player.Falling() {
		g.player.Update(dt, nil)
	}
	if g.companion != nil && g.companion.Falling() {
		g.companion.Update(dt)
	}

	if g.blurRising {
		g.blur += blurRate * dt
		if g.blur >= BlurMax {
			g.blur = BlurMax
			g.blurRising = false
		}
	}
	g.particles.Update(dt)
}
