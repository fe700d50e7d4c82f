package system

import (
	"testing"
	"time"
)

func TestSchedulerOrder(t *testing.T) {
	cases := []struct {
		name   string
		delays []time.Duration
		want   []int
	}{
		{"in_order", []time.Duration{1, 2, 3}, []int{0, 1, 2}},
		{"reversed", []time.Duration{3, 2, 1}, []int{2, 1, 0}},
		{"ties_fifo", []time.Duration{2, 1, 2, 1}, []int{1, 3, 0, 2}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewScheduler()
			var got []int
			for i, d := range c.delays {
				i := i
				s.After(d*time.Second, func() { got = append(got, i) })
			}
			s.Advance(10 * time.Second)
			if len(got) != len(c.want) {
				t.Fatalf("ran %v, want %v", got, c.want)
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("ran %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestSchedulerAdvanceIsPartial(t *testing.T) {
	s := NewScheduler()
	ran := 0
	s.After(time.Second, func() { ran++ })
	s.Advance(999 * time.Millisecond)
	if ran != 0 {
		t.Fatalf("action ran early")
	}
	s.Advance(time.Millisecond)
	if ran != 1 || s.Len() != 0 {
		t.Fatalf("action should run exactly at its due time, ran=%d", ran)
	}
	if s.Now() != time.Second {
		t.Fatalf("now = %v", s.Now())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := map[string]bool{}
	a := s.After(time.Second, func() { ran["a"] = true })
	s.After(2*time.Second, func() { ran["b"] = true })

	if !s.Cancel(a) {
		t.Fatalf("cancel of pending action should succeed")
	}
	if s.Cancel(a) {
		t.Fatalf("double cancel should fail")
	}
	s.Advance(5 * time.Second)
	if ran["a"] || !ran["b"] {
		t.Fatalf("ran = %v", ran)
	}
}

func TestSchedulerChainedActions(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.After(time.Second, func() {
		at = append(at, s.Now())
		s.After(time.Second, func() { at = append(at, s.Now()) })
		s.After(10*time.Second, func() { at = append(at, s.Now()) })
	})

	s.Advance(3 * time.Second)
	if len(at) != 2 || at[0] != time.Second || at[1] != 2*time.Second {
		t.Fatalf("chained actions ran at %v", at)
	}
	if s.Len() != 1 {
		t.Fatalf("expected the far action to stay pending")
	}
	s.Clear()
	s.Advance(time.Minute)
	if len(at) != 2 {
		t.Fatalf("cleared action ran")
	}
}
