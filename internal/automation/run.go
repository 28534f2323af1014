package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/dataset"
	"github.com/san-kum/algoviz/internal/trace"
)

// Job is one headless run. Values wins over Size/Shape/Seed.
type Job struct {
	Category  anim.Category   `yaml:"category" json:"category"`
	Algorithm anim.Algorithm  `yaml:"algorithm" json:"algorithm"`
	Values    []int           `yaml:"values,omitempty" json:"values,omitempty"`
	Size      int             `yaml:"size,omitempty" json:"size,omitempty"`
	Shape     dataset.Shape   `yaml:"shape,omitempty" json:"shape,omitempty"`
	Seed      int64           `yaml:"seed,omitempty" json:"seed,omitempty"`
	Min       int             `yaml:"min,omitempty" json:"min,omitempty"`
	Max       int             `yaml:"max,omitempty" json:"max,omitempty"`
	Target    *int            `yaml:"target,omitempty" json:"target,omitempty"`
	Speed     int             `yaml:"speed,omitempty" json:"speed,omitempty"`
	Resume    anim.ResumeMode `yaml:"-" json:"-"`

	// Observer, if set, receives every callback alongside the recorder.
	Observer anim.Renderer `yaml:"-" json:"-"`
}

// Input returns the job's array, generating one when Values is empty.
func (j Job) Input() ([]int, error) {
	if len(j.Values) > 0 {
		return slices.Clone(j.Values), nil
	}
	lo, hi := j.Min, j.Max
	if lo == 0 && hi == 0 {
		lo, hi = 10, 210
	}
	size := j.Size
	if size == 0 {
		size = 30
	}
	g, err := dataset.NewGenerator(lo, hi, j.Shape, j.Seed)
	if err != nil {
		return nil, err
	}
	return g.Generate(size)
}

// Execute drives a Controller over the job without pacing and returns the
// recorded trace. A run that fails mid-stream returns both the partial trace
// and the *anim.RunError.
func Execute(ctx context.Context, reg *catalog.Registry, job Job, log *slog.Logger, opts ...anim.Option) (*trace.Trace, error) {
	if log == nil {
		log = slog.Default()
	}
	if job.Category == "" {
		c, err := reg.CategoryOf(job.Algorithm)
		if err != nil {
			return nil, err
		}
		job.Category = c
	}
	values, err := job.Input()
	if err != nil {
		return nil, err
	}

	rec := trace.NewRecorder()
	base := []anim.Option{
		anim.WithClock(anim.InstantClock{}),
		anim.WithPacing(anim.Pacing{}),
		anim.WithLogger(log),
		anim.WithResumeMode(job.Resume),
	}
	if job.Speed != 0 {
		base = append(base, anim.WithSpeed(job.Speed))
	}
	var renderer anim.Renderer = rec
	if job.Observer != nil {
		renderer = anim.Renderers{rec, job.Observer}
	}
	ctrl := anim.NewController(reg, renderer, append(base, opts...)...)

	if err := ctrl.SelectCategory(job.Category); err != nil {
		return nil, err
	}
	if err := ctrl.SelectAlgorithm(job.Algorithm); err != nil {
		return nil, err
	}
	if err := ctrl.LoadArray(values); err != nil {
		return nil, err
	}
	ctrl.SetSearchTarget(job.Target)

	res, err := ctrl.Capability()
	if err != nil {
		return nil, err
	}

	rec.Reset()
	started := time.Now()
	runErr := ctrl.Start(ctx)
	var re *anim.RunError
	if runErr != nil && !errors.As(runErr, &re) {
		return nil, runErr
	}

	s := ctrl.Session()
	tr := &trace.Trace{
		Meta: trace.Meta{
			ID:        s.ID,
			Category:  s.Category,
			Algorithm: s.Algorithm,
			Runs:      res.Runs,
			Fallback:  res.Fallback,
			Timestamp: started,
			Seed:      job.Seed,
			Speed:     s.Speed,
			Target:    s.Target,
			Input:     values,
			Final:     s.Snapshot,
			State:     s.State.String(),
			Counters:  s.Counters,
		},
		Entries: rec.Entries(),
	}
	if s.Category == anim.Searching {
		if idx, found, decided := rec.Outcome(); decided {
			if found {
				tr.Meta.Outcome = "found"
				tr.Meta.Found = &idx
			} else {
				tr.Meta.Outcome = "not_found"
			}
		}
	}
	if re != nil {
		tr.Meta.Error = re.Wrapped.Error()
		return tr, runErr
	}

	log.Debug("headless run finished",
		"algorithm", s.Algorithm, "steps", s.CurrentStep, "elapsed", time.Since(started))
	return tr, nil
}

// Expect holds assertions on a finished trace. Unset fields are not checked.
type Expect struct {
	Comparisons *int   `yaml:"comparisons,omitempty"`
	Swaps       *int   `yaml:"swaps,omitempty"`
	Outcome     string `yaml:"outcome,omitempty"`
	Found       *int   `yaml:"found,omitempty"`
	Sorted      bool   `yaml:"sorted,omitempty"`
	Error       bool   `yaml:"error,omitempty"`
}

var ErrExpectation = errors.New("automation: expectation failed")

func (e Expect) Check(tr *trace.Trace) error {
	m := tr.Meta
	var errs []error
	if e.Comparisons != nil && *e.Comparisons != m.Counters.Comparisons {
		errs = append(errs, fmt.Errorf("%w: comparisons %d, want %d", ErrExpectation, m.Counters.Comparisons, *e.Comparisons))
	}
	if e.Swaps != nil && *e.Swaps != m.Counters.Swaps {
		errs = append(errs, fmt.Errorf("%w: swaps %d, want %d", ErrExpectation, m.Counters.Swaps, *e.Swaps))
	}
	if e.Outcome != "" && e.Outcome != m.Outcome {
		errs = append(errs, fmt.Errorf("%w: outcome %q, want %q", ErrExpectation, m.Outcome, e.Outcome))
	}
	if e.Found != nil && (m.Found == nil || *m.Found != *e.Found) {
		errs = append(errs, fmt.Errorf("%w: found %v, want %d", ErrExpectation, m.Found, *e.Found))
	}
	if e.Sorted && !slices.IsSorted(m.Final) {
		errs = append(errs, fmt.Errorf("%w: final array %v not sorted", ErrExpectation, m.Final))
	}
	if e.Error != (m.Error != "") {
		errs = append(errs, fmt.Errorf("%w: error %q, want error=%v", ErrExpectation, m.Error, e.Error))
	}
	return errors.Join(errs...)
}
