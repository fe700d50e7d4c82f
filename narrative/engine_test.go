package narrative

import (
	"errors"
	"sort"
	"testing"
	"time"
)

type pendingCall struct {
	at  time.Duration
	seq int
	fn  func()
}

// fakeClock is a minimal simulation clock for driving engine timers.
type fakeClock struct {
	now   time.Duration
	seq   int
	calls []pendingCall
}

func (c *fakeClock) After(d time.Duration, fn func()) {
	c.seq++
	c.calls = append(c.calls, pendingCall{at: c.now + d, seq: c.seq, fn: fn})
}

func (c *fakeClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		sort.Slice(c.calls, func(i, j int) bool {
			if c.calls[i].at == c.calls[j].at {
				return c.calls[i].seq < c.calls[j].seq
			}
			return c.calls[i].at < c.calls[j].at
		})
		if len(c.calls) == 0 || c.calls[0].at > target {
			break
		}
		next := c.calls[0]
		c.calls = c.calls[1:]
		c.now = next.at
		next.fn()
	}
	c.now = target
}

type recorder struct {
	presented []string
	chosen    []Consequence
	idle      int
}

func newTestEngine() (*Engine, *fakeClock, *recorder) {
	clock := &fakeClock{}
	rec := &recorder{}
	e := NewEngine(clock.After)
	e.OnPresent = func(b Beat) { rec.presented = append(rec.presented, b.Text) }
	e.OnChoose = func(o Option) { rec.chosen = append(rec.chosen, o.Consequence) }
	e.OnIdle = func() { rec.idle++ }
	return e, clock, rec
}

func manual(text string) Beat { return Beat{Speaker: "s", Text: text} }

func auto(text string, d time.Duration) Beat {
	return Beat{Speaker: "s", Text: text, AutoAdvance: true, Duration: d}
}

func choice(text string, consequences ...Consequence) Beat {
	b := Beat{Speaker: "s", Text: text, Options: []Option{}}
	for _, c := range consequences {
		b.Options = append(b.Options, Option{Text: string(c), Consequence: c})
	}
	return b
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		beat    Beat
		wantErr bool
		kind    Kind
	}{
		{"manual", manual("hi"), false, KindManual},
		{"auto", auto("hi", time.Second), false, KindAuto},
		{"choice", choice("pick", ConsequenceLoseJump), false, KindChoice},
		{"auto_without_duration", Beat{Text: "hi", AutoAdvance: true}, true, KindAuto},
		{"choice_without_options", Beat{Text: "pick", Options: []Option{}}, true, KindChoice},
		{"auto_with_options", Beat{Text: "x", AutoAdvance: true, Duration: time.Second, Options: []Option{{Text: "a", Consequence: ConsequenceLoseJump}}}, true, KindChoice},
		{"unknown_consequence", Beat{Text: "x", Options: []Option{{Text: "a", Consequence: "fly"}}}, true, KindChoice},
		{"empty_text", Beat{Speaker: "s"}, true, KindManual},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.beat.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, c.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedBeat) {
				t.Fatalf("expected ErrMalformedBeat, got %v", err)
			}
			if got := c.beat.Kind(); got != c.kind {
				t.Fatalf("Kind() = %v, want %v", got, c.kind)
			}
		})
	}
}

func TestEnqueueRejectsMalformedBatch(t *testing.T) {
	e, _, _ := newTestEngine()
	err := e.Enqueue(manual("ok"), Beat{Text: "bad", AutoAdvance: true})
	if !errors.Is(err, ErrMalformedBeat) {
		t.Fatalf("expected ErrMalformedBeat, got %v", err)
	}
	if e.Pending() != 0 || e.State() != StateIdle {
		t.Fatalf("malformed batch should queue nothing")
	}
}

func TestFIFOOrderWithPacing(t *testing.T) {
	e, clock, rec := newTestEngine()
	if err := e.Enqueue(manual("one"), manual("two"), manual("three")); err != nil {
		t.Fatal(err)
	}
	if e.State() != StatePacing {
		t.Fatalf("state = %v, want pacing", e.State())
	}

	clock.Advance(PacingDelay - time.Millisecond)
	if len(rec.presented) != 0 {
		t.Fatalf("beat presented before pacing delay")
	}
	clock.Advance(time.Millisecond)

	for i := 0; i < 3; i++ {
		if e.State() != StatePresenting {
			t.Fatalf("step %d: state = %v", i, e.State())
		}
		if err := e.Advance(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		clock.Advance(PacingDelay)
	}

	want := []string{"one", "two", "three"}
	for i := range want {
		if rec.presented[i] != want[i] {
			t.Fatalf("presented %v, want %v", rec.presented, want)
		}
	}
	if e.State() != StateIdle || rec.idle != 1 {
		t.Fatalf("expected idle once, state=%v idle=%d", e.State(), rec.idle)
	}
}

func TestAutoAdvance(t *testing.T) {
	e, clock, rec := newTestEngine()
	_ = e.Enqueue(auto("a", 3*time.Second), auto("b", 3*time.Second), manual("c"))

	clock.Advance(PacingDelay)
	if len(rec.presented) != 1 {
		t.Fatalf("presented %v", rec.presented)
	}
	if err := e.Advance(); !errors.Is(err, ErrNotManual) {
		t.Fatalf("manual advance on auto beat: %v", err)
	}

	clock.Advance(3*time.Second + PacingDelay)
	clock.Advance(3*time.Second + PacingDelay)
	if len(rec.presented) != 3 || rec.presented[2] != "c" {
		t.Fatalf("presented %v", rec.presented)
	}

	// a manual beat never dismisses itself
	clock.Advance(time.Minute)
	if e.State() != StatePresenting {
		t.Fatalf("manual beat dismissed without input")
	}
}

func TestStaleAutoTimerIgnored(t *testing.T) {
	e, clock, rec := newTestEngine()
	_ = e.Enqueue(auto("a", 3*time.Second))
	clock.Advance(PacingDelay)

	e.Reset()
	_ = e.Enqueue(manual("b"))
	clock.Advance(PacingDelay)
	clock.Advance(10 * time.Second)

	if e.State() != StatePresenting {
		t.Fatalf("stale timer dismissed the new beat")
	}
	if cur, _ := e.Current(); cur.Text != "b" {
		t.Fatalf("current = %q", cur.Text)
	}
	if len(rec.presented) != 2 {
		t.Fatalf("presented %v", rec.presented)
	}
}

func TestChoiceBlocksUntilChosen(t *testing.T) {
	e, clock, rec := newTestEngine()
	_ = e.Enqueue(choice("pick", ConsequenceLoseJump, ConsequenceWeakenCompanion), manual("after"))
	clock.Advance(PacingDelay)

	if err := e.Advance(); !errors.Is(err, ErrNotManual) {
		t.Fatalf("advance on choice: %v", err)
	}
	clock.Advance(time.Minute)
	if len(rec.presented) != 1 {
		t.Fatalf("choice did not block: %v", rec.presented)
	}

	for _, i := range []int{-1, 2, 99} {
		if _, err := e.Choose(i); !errors.Is(err, ErrOptionOutOfRange) {
			t.Fatalf("Choose(%d) = %v", i, err)
		}
	}
	if e.State() != StatePresenting || len(rec.chosen) != 0 {
		t.Fatalf("out-of-range choice advanced the engine")
	}

	opt, err := e.Choose(1)
	if err != nil || opt.Consequence != ConsequenceWeakenCompanion {
		t.Fatalf("Choose(1) = %v, %v", opt, err)
	}
	if _, err := e.Choose(0); !errors.Is(err, ErrNothingPresented) {
		t.Fatalf("second choice accepted: %v", err)
	}
	if len(rec.chosen) != 1 {
		t.Fatalf("consequence applied %d times", len(rec.chosen))
	}

	clock.Advance(PacingDelay)
	if cur, ok := e.Current(); !ok || cur.Text != "after" {
		t.Fatalf("expected next beat after choice, got %v %v", cur, ok)
	}
}

func TestEndingChoiceHalts(t *testing.T) {
	e, clock, rec := newTestEngine()
	_ = e.Enqueue(choice("final", ConsequenceCompanionSacrifice, ConsequenceSelfSacrifice), manual("never"))
	clock.Advance(PacingDelay)

	if _, err := e.Choose(1); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Minute)

	if e.State() != StateIdle || rec.idle != 0 {
		t.Fatalf("ending choice should halt silently, state=%v idle=%d", e.State(), rec.idle)
	}
	if len(rec.presented) != 1 {
		t.Fatalf("engine advanced past an ending: %v", rec.presented)
	}
}

func TestChooseOnManualBeat(t *testing.T) {
	e, clock, _ := newTestEngine()
	_ = e.Enqueue(manual("hi"))
	clock.Advance(PacingDelay)
	if _, err := e.Choose(0); !errors.Is(err, ErrNoChoice) {
		t.Fatalf("Choose on manual beat = %v", err)
	}
}
