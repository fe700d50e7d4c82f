package system

import (
	"container/heap"
	"time"
)

// EventID identifies a scheduled action for cancellation.
type EventID uint64

type scheduledEvent struct {
	id     EventID
	fireAt time.Duration
	fn     func()
	index  int
}

type eventQueue []*scheduledEvent

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].fireAt == q[j].fireAt {
		return q[i].id < q[j].id
	}
	return q[i].fireAt < q[j].fireAt
}
func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *eventQueue) Push(x any) {
	ev := x.(*scheduledEvent)
	ev.index = len(*q)
	*q = append(*q, ev)
}
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*q = old[:n-1]
	return ev
}

// Scheduler runs deferred actions against simulation time. Time only moves
// when Advance is called, so sequencing is deterministic.
type Scheduler struct {
	now    time.Duration
	nextID EventID
	queue  eventQueue
	byID   map[EventID]*scheduledEvent
}

func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[EventID]*scheduledEvent)}
}

// Now is the simulation time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration { return s.now }

// Len is the number of pending actions.
func (s *Scheduler) Len() int { return len(s.queue) }

// After schedules fn to run once d from now. Actions due at the same time
// run in the order they were scheduled.
func (s *Scheduler) After(d time.Duration, fn func()) EventID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	ev := &scheduledEvent{id: s.nextID, fireAt: s.now + d, fn: fn}
	heap.Push(&s.queue, ev)
	s.byID[ev.id] = ev
	return ev.id
}

// Cancel removes a pending action. It reports false if the action already
// ran or was never scheduled.
func (s *Scheduler) Cancel(id EventID) bool {
	ev, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	heap.Remove(&s.queue, ev.index)
	return true
}

// Advance moves time forward by d and runs every action that comes due, in
// time order. Actions scheduled by an action run in the same call if they
// fall due before the new time.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d
	for len(s.queue) > 0 && s.queue[0].fireAt <= target {
		ev := heap.Pop(&s.queue).(*scheduledEvent)
		delete(s.byID, ev.id)
		s.now = ev.fireAt
		if ev.fn != nil {
			ev.fn()
		}
	}
	s.now = target
}

// Clear drops every pending action without running it.
func (s *Scheduler) Clear() {
	s.queue = nil
	clear(s.byID)
}
