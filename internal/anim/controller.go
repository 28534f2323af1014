package anim

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"
)

// ResumeMode selects what Start does from Paused.
type ResumeMode uint8

const (
	// ResumeRestart re-invokes the sequence from its beginning against the
	// current snapshot without resetting counters. Work done before the pause
	// is counted again for the re-executed portion.
	ResumeRestart ResumeMode = iota
	// ResumeContinue keeps the suspended sequence and continues it.
	ResumeContinue
)

func (m ResumeMode) String() string {
	if m == ResumeContinue {
		return "continue"
	}
	return "restart"
}

type Option func(*Controller)

func WithClock(clock Clock) Option { return func(c *Controller) { c.clock = clock } }

func WithPacing(p Pacing) Option { return func(c *Controller) { c.pacing = p } }

func WithLogger(l *slog.Logger) Option { return func(c *Controller) { c.log = l } }

func WithResumeMode(m ResumeMode) Option { return func(c *Controller) { c.resume = m } }

func WithGenerator(g Generator) Option { return func(c *Controller) { c.generator = g } }

// WithSpeed sets the initial speed level. Out-of-range levels are clamped.
func WithSpeed(level int) Option {
	return func(c *Controller) { c.speed = min(max(level, MinSpeed), MaxSpeed) }
}

// generator is one pulled, in-flight sequence.
type generator struct {
	next func() (StepEvent, error, bool)
	stop func()
	runs Algorithm
	// pending holds an event pulled by a loop that lost ownership before
	// forwarding it. The next loop forwards it first.
	pending *StepEvent
}

func (g *generator) pull() (StepEvent, error, bool) {
	if ev := g.pending; ev != nil {
		g.pending = nil
		return *ev, nil, true
	}
	return g.next()
}

// Controller owns a Session and the single in-flight sequence.
type Controller struct {
	mu        sync.Mutex
	resolver  Resolver
	renderer  Renderer
	generator Generator
	clock     Clock
	pacing    Pacing
	resume    ResumeMode
	log       *slog.Logger
	speed     int
	language  string

	session   *Session
	seq       *generator
	interrupt chan struct{}
	active    chan struct{}
}

func NewController(resolver Resolver, renderer Renderer, opts ...Option) *Controller {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	c := &Controller{
		resolver: resolver,
		renderer: renderer,
		clock:    RealClock{},
		pacing:   DefaultPacing(),
		log:      slog.Default(),
		speed:    DefaultSpeed,
	}
	for _, opt := range opts {
		opt(c)
	}

	first, err := resolver.First(Sorting)
	if err != nil {
		first = BubbleSort
	}
	c.session = newSession(Sorting, first, nil, c.speed, nil)
	return c
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.clone()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.State
}

// Capability resolves the current selection, reporting whether a fallback
// sequence stands in for it.
func (c *Controller) Capability() (Resolution, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolver.Resolve(c.session.Category, c.session.Algorithm)
}

// SetLanguage records the display language for code samples. It has no
// effect on execution.
func (c *Controller) SetLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = lang
}

func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// SelectCategory switches category and selects its first algorithm.
func (c *Controller) SelectCategory(cat Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Category == cat {
		return nil
	}
	first, err := c.resolver.First(cat)
	if err != nil {
		return err
	}
	c.replaceLocked(cat, first, c.session.Snapshot)
	return nil
}

// SelectAlgorithm replaces the session with one for a within the current
// category. Selecting the current algorithm is a no-op.
func (c *Controller) SelectAlgorithm(a Algorithm) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Algorithm == a {
		return nil
	}
	if _, err := c.resolver.Resolve(c.session.Category, a); err != nil {
		return err
	}
	c.replaceLocked(c.session.Category, a, c.session.Snapshot)
	return nil
}

// LoadArray replaces the session with one over values.
func (c *Controller) LoadArray(values []int) error {
	if err := CheckValues(values); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked(c.session.Category, c.session.Algorithm, values)
	return nil
}

// GenerateArray draws a fresh array of the given size from the configured
// Generator and loads it.
func (c *Controller) GenerateArray(size int) error {
	if c.generator == nil {
		return ErrNoGenerator
	}
	values, err := c.generator.Generate(size)
	if err != nil {
		return err
	}
	return c.LoadArray(values)
}

// SetSearchTarget sets or clears (nil) the search key.
func (c *Controller) SetSearchTarget(target *int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if target == nil {
		c.session.Target = nil
		return
	}
	t := *target
	c.session.Target = &t
}

// SetSpeed changes the speed level; it applies from the next suspension.
func (c *Controller) SetSpeed(level int) error {
	if level < MinSpeed || level > MaxSpeed {
		return &ValidationError{Field: "speed", Reason: fmt.Sprintf("level %d outside %d..%d", level, MinSpeed, MaxSpeed)}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = level
	c.session.Speed = level
	return nil
}

// Toggle pauses a running animation and starts it otherwise.
func (c *Controller) Toggle(ctx context.Context) error {
	if c.State() == Running {
		return c.Pause()
	}
	return c.Start(ctx)
}

// Play is Start.
func (c *Controller) Play(ctx context.Context) error { return c.Start(ctx) }

// Start runs the selected sequence and blocks until it completes, is paused
// or reset, fails, or ctx is done. It is valid from Idle and Paused.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	// A loop that was just paused or reset may still be winding down.
	for c.active != nil && c.session.State != Running {
		prev := c.active
		c.mu.Unlock()
		<-prev
		c.mu.Lock()
	}

	s := c.session
	switch s.State {
	case Running:
		c.mu.Unlock()
		return ErrAlreadyRunning
	case Completed:
		c.mu.Unlock()
		return fmt.Errorf("%w: start from %s, reset first", ErrInvalidTransition, s.State)
	}
	if s.Category == Searching && s.Target == nil {
		c.mu.Unlock()
		return &ValidationError{Field: "search target", Reason: "enter a valid number to search for"}
	}

	restarted := s.State == Paused && c.resume == ResumeRestart
	if c.seq == nil || c.resume == ResumeRestart {
		if err := c.openLocked(); err != nil {
			c.mu.Unlock()
			return err
		}
	}

	gen := c.seq
	interrupt := make(chan struct{})
	done := make(chan struct{})
	c.interrupt, c.active = interrupt, done
	s.State = Running
	c.renderer.OnStateChanged(Running)
	c.log.Info("animation started",
		"session", s.ID, "algorithm", s.Algorithm, "runs", gen.runs,
		"restart", restarted, "size", len(s.Snapshot))
	c.mu.Unlock()

	return c.run(ctx, gen, interrupt, done)
}

// Pause interrupts the pending suspension. The snapshot stays as last rendered.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.State != Running {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, c.session.State)
	}
	c.pauseLocked()
	c.log.Info("animation paused", "session", c.session.ID, "step", c.session.CurrentStep)
	return nil
}

// Reset is valid from any state. It drops the in-flight sequence, zeroes the
// counters and restores the snapshot the session started with.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.abortLocked()
	c.session.reset()
	c.renderer.OnSnapshotReplaced(c.session.Snapshot)
	c.renderer.OnCountersChanged(c.session.Counters)
	c.renderer.OnStateChanged(Idle)
	c.log.Debug("session reset", "session", c.session.ID)
	return nil
}

// StepForward is reserved for single-step advancement and changes nothing.
func (c *Controller) StepForward() error {
	c.log.Debug("step forward requested", "state", c.State())
	return ErrStepUnsupported
}

func (c *Controller) run(ctx context.Context, gen *generator, interrupt <-chan struct{}, done chan struct{}) error {
	defer c.finish(gen, done)

	for {
		if err := ctx.Err(); err != nil {
			c.cancel(gen)
			return err
		}

		ev, seqErr, ok := gen.pull()

		c.mu.Lock()
		if !c.ownsLocked(gen) {
			if ok && seqErr == nil {
				gen.pending = &ev
			}
			c.mu.Unlock()
			return nil
		}
		s := c.session
		if seqErr != nil {
			runErr := &RunError{SessionID: s.ID, Algorithm: gen.runs, Step: s.CurrentStep, Wrapped: seqErr}
			c.settleLocked(Idle)
			c.renderer.OnError(runErr)
			c.log.Error("animation failed", "session", s.ID, "algorithm", gen.runs, "error", seqErr)
			c.mu.Unlock()
			return runErr
		}
		if !ok {
			c.settleLocked(Completed)
			c.log.Info("animation completed",
				"session", s.ID, "algorithm", gen.runs,
				"comparisons", s.Comparisons, "swaps", s.Swaps, "steps", s.CurrentStep)
			c.mu.Unlock()
			return nil
		}

		s.apply(ev)
		c.renderer.OnStepEvent(ev)
		if ev.Kind == EventMutate {
			c.renderer.OnSnapshotReplaced(ev.Snapshot)
		}
		c.renderer.OnCountersChanged(s.Counters)
		d := c.pacing.Delay(s.Speed, ev.Pace)
		c.mu.Unlock()

		if d <= 0 {
			continue
		}
		select {
		case <-c.clock.After(d):
		case <-interrupt:
			return nil
		case <-ctx.Done():
			c.cancel(gen)
			return ctx.Err()
		}

		c.mu.Lock()
		running := c.ownsLocked(gen)
		c.mu.Unlock()
		if !running {
			return nil
		}
	}
}

// cancel treats a done context like a pause.
func (c *Controller) cancel(gen *generator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ownsLocked(gen) {
		c.pauseLocked()
		c.log.Info("animation interrupted", "session", c.session.ID)
	}
}

// finish runs on the loop goroutine, the only one allowed to pull from gen
// while the loop is alive. A paused sequence survives only in ResumeContinue.
func (c *Controller) finish(gen *generator, done chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	keep := c.seq == gen && c.session.State == Paused && c.resume == ResumeContinue
	if !keep {
		gen.stop()
		if c.seq == gen {
			c.seq = nil
		}
	}
	if c.active == done {
		c.active = nil
	}
	close(done)
}

func (c *Controller) openLocked() error {
	s := c.session
	res, err := c.resolver.Resolve(s.Category, s.Algorithm)
	if err != nil {
		return err
	}
	if res.Fallback {
		c.log.Warn("algorithm not fully implemented, running fallback",
			"session", s.ID, "algorithm", s.Algorithm, "fallback", res.Runs)
	}
	if c.seq != nil && c.active == nil {
		c.seq.stop()
	}

	in := Input{Values: slices.Clone(s.Snapshot)}
	if s.Target != nil {
		in.Target = *s.Target
	}
	next, stop := iter.Pull2(res.Factory(in))
	c.seq = &generator{next: next, stop: stop, runs: res.Runs}
	return nil
}

func (c *Controller) ownsLocked(gen *generator) bool {
	return c.seq == gen && c.session.State == Running
}

func (c *Controller) pauseLocked() {
	c.session.State = Paused
	if c.interrupt != nil {
		close(c.interrupt)
		c.interrupt = nil
	}
	c.renderer.OnStateChanged(Paused)
}

func (c *Controller) settleLocked(st State) {
	c.session.State = st
	c.interrupt = nil
	c.seq = nil
	c.renderer.OnStateChanged(st)
}

// abortLocked interrupts any suspension and detaches the in-flight sequence.
// A live loop notices on its next poll and stops the sequence itself.
func (c *Controller) abortLocked() {
	if c.interrupt != nil {
		close(c.interrupt)
		c.interrupt = nil
	}
	if c.seq != nil && c.active == nil {
		c.seq.stop()
	}
	c.seq = nil
}

func (c *Controller) replaceLocked(cat Category, alg Algorithm, values []int) {
	c.abortLocked()
	prev := c.session
	c.session = newSession(cat, alg, values, prev.Speed, prev.Target)
	c.renderer.OnSnapshotReplaced(c.session.Snapshot)
	c.renderer.OnCountersChanged(Counters{})
	c.renderer.OnStateChanged(Idle)
	c.log.Info("session created",
		"session", c.session.ID, "category", cat, "algorithm", alg, "size", len(values))
}
