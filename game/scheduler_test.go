package game

import "testing"

func TestSchedulerOrdersByTimeThenInsertion(t *testing.T) {
	s := NewScheduler()
	s.After(2.0, Event{Slot: 2})
	s.After(1.0, Event{Slot: 1})
	s.After(1.0, Event{Slot: 10})
	s.After(3.0, Event{Slot: 3})

	due := s.Advance(1.5)
	if len(due) != 2 || due[0].Slot != 1 || due[1].Slot != 10 {
		t.Fatalf("due = %+v, want slots 1 then 10", due)
	}
	if s.Len() != 2 {
		t.Errorf("pending = %d, want 2", s.Len())
	}

	at, ok := s.Next()
	if !ok || at != 2.0 {
		t.Errorf("next = %v/%v, want 2.0", at, ok)
	}

	due = s.Advance(10)
	if len(due) != 2 || due[0].Slot != 2 || due[1].Slot != 3 {
		t.Fatalf("due = %+v, want slots 2 then 3", due)
	}
	if _, ok := s.Next(); ok {
		t.Error("expected empty scheduler")
	}
}

func TestSchedulerDelayIsRelativeToNow(t *testing.T) {
	s := NewScheduler()
	s.Advance(5)
	if at := s.After(1, Event{}); at != 6 {
		t.Errorf("fire time = %v, want 6", at)
	}
	if due := s.Advance(0.5); len(due) != 0 {
		t.Errorf("fired early: %+v", due)
	}
	if due := s.Advance(0.5); len(due) != 1 {
		t.Errorf("did not fire at its time")
	}
	if s.Now() != 6 {
		t.Errorf("now = %v, want 6", s.Now())
	}
}

func TestSchedulerClear(t *testing.T) {
	s := NewScheduler()
	s.After(1, Event{Kind: EventRespawn})
	s.After(1, Event{Kind: EventTooltipExpire})
	s.Clear()

	if due := s.Advance(5); len(due) != 0 {
		t.Errorf("cleared events fired: %+v", due)
	}
}

func TestRosterOccupancy(t *testing.T) {
	r := NewRoster([]string{"Doux", "Mort", "Tard"})

	if r.Len() != 3 || r.LiveCount() != 0 {
		t.Fatalf("len = %d, live = %d", r.Len(), r.LiveCount())
	}
	if r.Name(1) != "Mort" {
		t.Errorf("name = %q, want Mort", r.Name(1))
	}

	tests := []struct {
		slot int
		want bool
	}{
		{-1, false},
		{0, false},
		{3, false},
	}
	for _, tt := range tests {
		if got := r.Occupied(tt.slot); got != tt.want {
			t.Errorf("Occupied(%d) = %v, want %v", tt.slot, got, tt.want)
		}
	}

	r.vacate(2, 9)
	if r.VacantScore(2) != 9 {
		t.Errorf("vacant score = %d, want 9", r.VacantScore(2))
	}
	if _, ok := r.Entity(2); ok {
		t.Error("vacant slot returned an entity")
	}
}
