package system

import (
	"github.com/milk9111/darkdepths/component"
)

// AudioSink plays fire-and-forget cues. The game never waits on it.
type AudioSink interface {
	Play(cue component.Cue)
	StartMusic()
	StopMusic()
}

// UISink receives health fractions and notifications that need a screen.
type UISink interface {
	Health(player, companion float64)
	Notify(n Notice)
}

type NoticeKind int

const (
	NoticeStateChanged NoticeKind = iota
	NoticeLevelEntered
	NoticeFallWarning
	NoticeGameOver
	NoticeHealthZero
	NoticeResumed
	NoticeEnding
	NoticeTheEnd
	NoticeClosing
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeStateChanged:
		return "state_changed"
	case NoticeLevelEntered:
		return "level_entered"
	case NoticeFallWarning:
		return "fall_warning"
	case NoticeGameOver:
		return "game_over"
	case NoticeHealthZero:
		return "health_zero"
	case NoticeResumed:
		return "resumed"
	case NoticeEnding:
		return "ending"
	case NoticeTheEnd:
		return "the_end"
	case NoticeClosing:
		return "closing"
	}
	return "unknown"
}

// Notice is one UI notification. Only the fields relevant to Kind are set.
type Notice struct {
	Kind      NoticeKind
	State     GameState
	Level     string
	Remaining int
	Ending    EndingType
	Title     string
	Lines     []string
}

// Terminal reports whether the notice needs a retry or restart to continue.
func (n Notice) Terminal() bool {
	return n.Kind == NoticeGameOver || n.Kind == NoticeHealthZero
}

// Recovery is a way out of a terminal pause.
type Recovery string

const (
	RecoveryRetry   Recovery = "retry"
	RecoveryRestart Recovery = "restart"
)

// Recoveries lists the ways out of the pause a notice announces. Both deaths
// recover the same way.
func (n Notice) Recoveries() []Recovery {
	if !n.Terminal() {
		return nil
	}
	return []Recovery{RecoveryRetry, RecoveryRestart}
}

type nopAudio struct{}

func (nopAudio) Play(component.Cue) {}
func (nopAudio) StartMusic()        {}
func (nopAudio) StopMusic()         {}

type nopUI struct{}

func (nopUI) Health(float64, float64) {}
func (nopUI) Notify(Notice)           {}
