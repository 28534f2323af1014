// Package trace records animation runs and persists or renders them.
package trace

import (
	"slices"
	"sync"

	"github.com/san-kum/algoviz/internal/anim"
)

// Entry is one forwarded event together with the counters after it.
type Entry struct {
	Step     int            `json:"step"`
	Kind     string         `json:"kind"`
	Indices  []int          `json:"indices,omitempty"`
	Role     string         `json:"role,omitempty"`
	Index    *int           `json:"index,omitempty"`
	Swap     bool           `json:"swap,omitempty"`
	Snapshot []int          `json:"snapshot"`
	Counters anim.Counters  `json:"counters"`
	event    anim.StepEvent
}

// Recorder is a Renderer that keeps every event, state change and error.
type Recorder struct {
	anim.NopRenderer

	mu       sync.Mutex
	entries  []Entry
	states   []anim.State
	counters anim.Counters
	snapshot []int
	errs     []error
	// SkipSnapshots drops per-entry snapshots to bound memory on large runs.
	SkipSnapshots bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnStepEvent(ev anim.StepEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := Entry{
		Kind:    ev.Kind.String(),
		Indices: slices.Clone(ev.Indices),
		Role:    ev.Role.String(),
		Swap:    ev.Swap,
		event:   ev,
	}
	if ev.Kind == anim.EventFound {
		i := ev.Index
		e.Index = &i
	}
	if !r.SkipSnapshots {
		e.Snapshot = slices.Clone(ev.Snapshot)
	}
	r.entries = append(r.entries, e)
}

// OnCountersChanged completes the most recent entry; the Controller always
// reports counters right after each event.
func (r *Recorder) OnCountersChanged(c anim.Counters) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = c
	if n := len(r.entries); n > 0 && r.entries[n-1].Step == 0 {
		r.entries[n-1].Step = c.CurrentStep
		r.entries[n-1].Counters = c
	}
}

func (r *Recorder) OnSnapshotReplaced(values []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = slices.Clone(values)
}

func (r *Recorder) OnStateChanged(s anim.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *Recorder) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.entries)
}

func (r *Recorder) Events() []anim.StepEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]anim.StepEvent, len(r.entries))
	for i, e := range r.entries {
		events[i] = e.event
	}
	return events
}

func (r *Recorder) Counters() anim.Counters {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters
}

// Snapshot is the last committed array.
func (r *Recorder) Snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.snapshot)
}

func (r *Recorder) States() []anim.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.states)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.errs)
}

// Outcome summarizes how the search ended: the found index, or -1 with
// found=false. decided is false when the stream ended without a verdict.
func (r *Recorder) Outcome() (index int, found, decided bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.entries) - 1; i >= 0; i-- {
		switch r.entries[i].event.Kind {
		case anim.EventFound:
			return r.entries[i].event.Index, true, true
		case anim.EventNotFound:
			return -1, false, true
		}
	}
	return -1, false, false
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.states = nil
	r.errs = nil
	r.counters = anim.Counters{}
	r.snapshot = nil
}
