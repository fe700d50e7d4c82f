package narrative

import (
	"fmt"
	"time"
)

// PacingDelay is the gap between dismissing one beat and presenting the next.
const PacingDelay = 500 * time.Millisecond

// AfterFunc schedules fn to run once after d of simulation time.
type AfterFunc func(d time.Duration, fn func())

type State int

const (
	StateIdle State = iota
	StatePacing
	StatePresenting
)

func (s State) String() string {
	switch s {
	case StatePacing:
		return "pacing"
	case StatePresenting:
		return "presenting"
	default:
		return "idle"
	}
}

// Engine is a FIFO queue of beats with a single current slot. Timers it
// schedules carry the serial they were created under; a timer whose serial
// is no longer current belongs to a dismissed beat and does nothing.
type Engine struct {
	// OnPresent is called when a beat becomes current.
	OnPresent func(b Beat)
	// OnChoose is called with the selected option before the engine moves on.
	OnChoose func(o Option)
	// OnIdle is called when the queue runs dry.
	OnIdle func()

	after   AfterFunc
	pacing  time.Duration
	queue   []Beat
	current *Beat
	state   State
	serial  uint64
}

func NewEngine(after AfterFunc) *Engine {
	if after == nil {
		panic("narrative: NewEngine requires an AfterFunc")
	}
	return &Engine{after: after, pacing: PacingDelay}
}

func (e *Engine) State() State { return e.state }

// Pending is the number of queued beats not yet presented.
func (e *Engine) Pending() int { return len(e.queue) }

// Current returns the beat being presented.
func (e *Engine) Current() (Beat, bool) {
	if e.current == nil {
		return Beat{}, false
	}
	return *e.current, true
}

// Enqueue validates and appends beats. Nothing is queued if any beat is
// malformed. An idle engine starts pacing toward the first new beat.
func (e *Engine) Enqueue(beats ...Beat) error {
	if err := ValidateAll(beats); err != nil {
		return fmt.Errorf("narrative: enqueue: %w", err)
	}
	e.queue = append(e.queue, beats...)
	if e.state == StateIdle && len(e.queue) > 0 {
		e.Next()
	}
	return nil
}

// Next dismisses the current beat. With beats queued it pops the front one
// and presents it after the pacing delay; otherwise the engine goes idle.
func (e *Engine) Next() {
	e.serial++
	e.current = nil

	if len(e.queue) == 0 {
		e.state = StateIdle
		if e.OnIdle != nil {
			e.OnIdle()
		}
		return
	}

	b := e.queue[0]
	e.queue = e.queue[1:]
	e.state = StatePacing

	s := e.serial
	e.after(e.pacing, func() {
		if e.serial != s {
			return
		}
		e.present(b, s)
	})
}

func (e *Engine) present(b Beat, s uint64) {
	e.current = &b
	e.state = StatePresenting
	if e.OnPresent != nil {
		e.OnPresent(b)
	}

	if b.Kind() == KindAuto {
		e.after(b.Duration, func() {
			if e.serial != s {
				return
			}
			e.Next()
		})
	}
}

// Advance dismisses a manual beat.
func (e *Engine) Advance() error {
	if e.current == nil {
		return ErrNothingPresented
	}
	if e.current.Kind() != KindManual {
		return fmt.Errorf("%w: %s beat from %q", ErrNotManual, e.current.Kind(), e.current.Speaker)
	}
	e.Next()
	return nil
}

// Choose selects option i of the current choice beat. An out-of-range index
// leaves the beat in place. A consequence that ends the playthrough halts the
// engine instead of advancing to the next beat.
func (e *Engine) Choose(i int) (Option, error) {
	if e.current == nil {
		return Option{}, ErrNothingPresented
	}
	if e.current.Kind() != KindChoice {
		return Option{}, fmt.Errorf("%w: %q", ErrNoChoice, e.current.Speaker)
	}
	if i < 0 || i >= len(e.current.Options) {
		return Option{}, fmt.Errorf("%w: %d of %d", ErrOptionOutOfRange, i, len(e.current.Options))
	}

	opt := e.current.Options[i]
	// consume before running the hook so a re-entrant Choose fails
	e.current = nil
	e.serial++

	if e.OnChoose != nil {
		e.OnChoose(opt)
	}

	if opt.Consequence.Ends() {
		e.state = StateIdle
		return opt, nil
	}
	e.Next()
	return opt, nil
}

// Reset drops the queue and the current beat. Outstanding timers go stale.
func (e *Engine) Reset() {
	e.serial++
	e.queue = nil
	e.current = nil
	e.state = StateIdle
}
