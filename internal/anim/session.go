package anim

import (
	"slices"

	"github.com/google/uuid"
)

type Counters struct {
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
	// CurrentStep counts events forwarded to the Renderer since the last reset.
	CurrentStep int `json:"current_step"`
}

// Session is the state of one animation lifecycle between resets. It is
// owned by a Controller; callers only ever see copies returned by
// Controller.Session.
type Session struct {
	ID        string
	State     State
	Category  Category
	Algorithm Algorithm
	Speed     int
	Target    *int
	Counters
	Snapshot []int

	origin []int
}

func newSession(c Category, a Algorithm, values []int, speed int, target *int) *Session {
	return &Session{
		ID:        uuid.NewString(),
		State:     Idle,
		Category:  c,
		Algorithm: a,
		Speed:     speed,
		Target:    target,
		Snapshot:  slices.Clone(values),
		origin:    slices.Clone(values),
	}
}

// apply folds an event into the counters and snapshot.
func (s *Session) apply(ev StepEvent) {
	s.CurrentStep++
	switch ev.Kind {
	case EventCompare:
		s.Comparisons++
	case EventMutate:
		s.Snapshot = ev.Snapshot
		if ev.Swap {
			s.Swaps++
		}
	}
}

func (s *Session) reset() {
	s.State = Idle
	s.Counters = Counters{}
	s.Snapshot = slices.Clone(s.origin)
}

func (s *Session) clone() Session {
	c := *s
	c.Snapshot = slices.Clone(s.Snapshot)
	c.origin = slices.Clone(s.origin)
	if s.Target != nil {
		t := *s.Target
		c.Target = &t
	}
	return c
}
