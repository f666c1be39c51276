package game

import (
	"container/heap"

	"github.com/oklog/ulid/v2"
)

// EventKind identifies a delayed callback.
type EventKind uint8

const (
	EventRespawn EventKind = iota
	EventTooltipExpire
)

func (k EventKind) String() string {
	switch k {
	case EventRespawn:
		return "respawn"
	case EventTooltipExpire:
		return "tooltip_expire"
	default:
		return "unknown"
	}
}

// Event is a one-shot callback payload. Handlers re-resolve Slot and ActorID against
// the roster when the event fires.
type Event struct {
	Kind      EventKind
	Slot      int
	ActorID   ulid.ULID
	Score     int
	TooltipID uint64
}

type scheduled struct {
	at  float64
	seq uint64
	ev  Event
}

type eventHeap []scheduled

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(scheduled)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler queues events on simulation time. Events due at the same instant fire in
// the order they were scheduled.
type Scheduler struct {
	now    float64
	seq    uint64
	events eventHeap
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current simulation time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules ev to fire delay seconds from now and returns the fire time.
func (s *Scheduler) After(delay float64, ev Event) float64 {
	at := s.now + delay
	heap.Push(&s.events, scheduled{at: at, seq: s.seq, ev: ev})
	s.seq++
	return at
}

// Advance moves the clock forward by dt and returns every event now due, in order.
func (s *Scheduler) Advance(dt float64) []Event {
	s.now += dt
	var due []Event
	for len(s.events) > 0 && s.events[0].at <= s.now {
		due = append(due, heap.Pop(&s.events).(scheduled).ev)
	}
	return due
}

// Next returns the fire time of the earliest pending event.
func (s *Scheduler) Next() (float64, bool) {
	if len(s.events) == 0 {
		return 0, false
	}
	return s.events[0].at, true
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return len(s.events)
}

// Clear drops every pending event.
func (s *Scheduler) Clear() {
	s.events = s.events[:0]
}
