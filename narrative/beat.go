package narrative

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMalformedBeat      = errors.New("narrative: malformed beat")
	ErrNothingPresented   = errors.New("narrative: no beat is being presented")
	ErrNotManual          = errors.New("narrative: beat does not take a manual advance")
	ErrNoChoice           = errors.New("narrative: beat offers no choice")
	ErrOptionOutOfRange   = errors.New("narrative: option index out of range")
	ErrUnknownConsequence = errors.New("narrative: unknown consequence")
)

// Consequence is the world mutation tagged on a choice option.
type Consequence string

const (
	ConsequenceLoseJump           Consequence = "lose_jump"
	ConsequenceWeakenCompanion    Consequence = "weaken_companion"
	ConsequenceCompanionSacrifice Consequence = "companion_sacrifice"
	ConsequenceSelfSacrifice      Consequence = "self_sacrifice"
)

// Valid reports whether c is one of the known consequences.
func (c Consequence) Valid() bool {
	switch c {
	case ConsequenceLoseJump, ConsequenceWeakenCompanion, ConsequenceCompanionSacrifice, ConsequenceSelfSacrifice:
		return true
	}
	return false
}

// Ends reports whether choosing c terminates the playthrough.
func (c Consequence) Ends() bool {
	return c == ConsequenceCompanionSacrifice || c == ConsequenceSelfSacrifice
}

type Option struct {
	Text        string      `yaml:"text"`
	Consequence Consequence `yaml:"consequence"`
}

// Kind is the shape of a beat: how it is dismissed.
type Kind int

const (
	KindManual Kind = iota
	KindAuto
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindChoice:
		return "choice"
	default:
		return "manual"
	}
}

// Beat is one unit of dialogue. A beat either auto-advances after Duration,
// waits for a manual advance, or offers Options of which exactly one must be
// chosen.
type Beat struct {
	Speaker     string        `yaml:"speaker"`
	Text        string        `yaml:"text"`
	AutoAdvance bool          `yaml:"auto_advance"`
	Duration    time.Duration `yaml:"duration"`
	Options     []Option      `yaml:"options"`
}

func (b Beat) Kind() Kind {
	switch {
	case b.Options != nil:
		return KindChoice
	case b.AutoAdvance:
		return KindAuto
	default:
		return KindManual
	}
}

// Validate checks that b has exactly one of the three valid shapes.
func (b Beat) Validate() error {
	if b.Text == "" {
		return fmt.Errorf("%w: %q has no text", ErrMalformedBeat, b.Speaker)
	}
	if b.AutoAdvance && b.Options != nil {
		return fmt.Errorf("%w: %q is auto-advancing and offers options", ErrMalformedBeat, b.Speaker)
	}
	if b.AutoAdvance && b.Duration <= 0 {
		return fmt.Errorf("%w: %q is auto-advancing without a duration", ErrMalformedBeat, b.Speaker)
	}
	if b.Options != nil && len(b.Options) == 0 {
		return fmt.Errorf("%w: %q is a choice with no options", ErrMalformedBeat, b.Speaker)
	}
	for i, o := range b.Options {
		if o.Text == "" {
			return fmt.Errorf("%w: %q option %d has no text", ErrMalformedBeat, b.Speaker, i)
		}
		if !o.Consequence.Valid() {
			return fmt.Errorf("%w: %q option %d: %w %q", ErrMalformedBeat, b.Speaker, i, ErrUnknownConsequence, o.Consequence)
		}
	}
	return nil
}

// ValidateAll validates every beat, reporting the first failure with its index.
func ValidateAll(beats []Beat) error {
	for i, b := range beats {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("beat %d: %w", i, err)
		}
	}
	return nil
}
