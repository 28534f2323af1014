package anim

import "sync"

// Renderer consumes what the Controller produces. Callbacks arrive in
// emission order on the goroutine driving Start (or the one issuing a
// command for OnSnapshotReplaced/OnStateChanged after selection or reset).
type Renderer interface {
	OnStepEvent(ev StepEvent)
	OnCountersChanged(c Counters)
	OnSnapshotReplaced(values []int)
	OnStateChanged(s State)
	OnError(err error)
}

// NopRenderer ignores everything. Embed it to implement a subset.
type NopRenderer struct{}

func (NopRenderer) OnStepEvent(StepEvent)     {}
func (NopRenderer) OnCountersChanged(Counters) {}
func (NopRenderer) OnSnapshotReplaced([]int)   {}
func (NopRenderer) OnStateChanged(State)       {}
func (NopRenderer) OnError(error)              {}

// Renderers fans every callback out to each renderer in order.
type Renderers []Renderer

func (rs Renderers) OnStepEvent(ev StepEvent) {
	for _, r := range rs {
		r.OnStepEvent(ev)
	}
}

func (rs Renderers) OnCountersChanged(c Counters) {
	for _, r := range rs {
		r.OnCountersChanged(c)
	}
}

func (rs Renderers) OnSnapshotReplaced(values []int) {
	for _, r := range rs {
		r.OnSnapshotReplaced(values)
	}
}

func (rs Renderers) OnStateChanged(s State) {
	for _, r := range rs {
		r.OnStateChanged(s)
	}
}

func (rs Renderers) OnError(err error) {
	for _, r := range rs {
		r.OnError(err)
	}
}

// Serialized wraps r so callbacks from several Controllers never overlap.
func Serialized(r Renderer) Renderer {
	if _, ok := r.(*serialized); ok {
		return r
	}
	return &serialized{r: r}
}

type serialized struct {
	mu sync.Mutex
	r  Renderer
}

func (s *serialized) OnStepEvent(ev StepEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.OnStepEvent(ev)
}

func (s *serialized) OnCountersChanged(c Counters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.OnCountersChanged(c)
}

func (s *serialized) OnSnapshotReplaced(values []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.OnSnapshotReplaced(values)
}

func (s *serialized) OnStateChanged(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.OnStateChanged(st)
}

func (s *serialized) OnError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.OnError(err)
}
