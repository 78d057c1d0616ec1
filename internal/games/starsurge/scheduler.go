package starsurge

import "container/heap"

// EventID identifies a scheduled event so it can be cancelled.
type EventID uint64

// Timer is the narrow scheduling surface handed to subsystems.
type Timer interface {
	// After runs fn once the game clock has advanced by delay seconds.
	After(delay float64, fn func()) EventID
	// Cancel drops a pending event.
	Cancel(id EventID) bool
	// Now returns the game clock in seconds.
	Now() float64
}

type event struct {
	id    EventID
	at    float64
	gen   uint64
	fn    func()
	index int
}

// eventQueue is a min-heap ordered by fire time, then by scheduling order.
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].id < q[j].id
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	e := x.(*event)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Scheduler is the game-owned delayed event queue.
// It runs on the simulation clock, so pending events only fire from Advance
// and a Reset drops every event scheduled by the previous session.
type Scheduler struct {
	now    float64
	nextID EventID
	gen    uint64
	queue  eventQueue
	byID   map[EventID]*event
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{
		byID: make(map[EventID]*event),
	}
}

// Now returns the scheduler clock in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Generation returns the session token bumped on every Reset.
func (s *Scheduler) Generation() uint64 {
	return s.gen
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// After schedules fn to run once the clock reaches Now()+delay.
// Negative delays are treated as zero.
func (s *Scheduler) After(delay float64, fn func()) EventID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	e := &event{
		id:  s.nextID,
		at:  s.now + delay,
		gen: s.gen,
		fn:  fn,
	}
	heap.Push(&s.queue, e)
	s.byID[e.id] = e
	return e.id
}

// Cancel removes a pending event. Returns false if it already fired or was dropped.
func (s *Scheduler) Cancel(id EventID) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, e.index)
	delete(s.byID, id)
	return true
}

// Advance moves the clock forward by dt and fires every due event in order.
// Events scheduled while firing run no earlier than the next Advance.
func (s *Scheduler) Advance(dt float64) int {
	if dt > 0 {
		s.now += dt
	}
	limit := s.nextID
	gen := s.gen
	fired := 0

	for len(s.queue) > 0 {
		e := s.queue[0]
		if e.at > s.now || e.id > limit {
			break
		}
		heap.Pop(&s.queue)
		delete(s.byID, e.id)
		if e.gen != gen {
			continue
		}
		e.fn()
		fired++
		// A callback may reset the session; stop firing stale work.
		if s.gen != gen {
			break
		}
	}
	return fired
}

// Reset drops all pending events, rewinds the clock and bumps the generation.
func (s *Scheduler) Reset() {
	for _, e := range s.queue {
		e.index = -1
	}
	s.queue = s.queue[:0]
	clear(s.byID)
	s.now = 0
	s.gen++
}
