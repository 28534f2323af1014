package automation

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/trace"
)

// Ensemble runs one job numRuns times in parallel with seeds seedStart,
// seedStart+1, ... Searches without a target look for the middle element of
// each generated array.
type Ensemble struct {
	reg       *catalog.Registry
	base      Job
	numRuns   int
	seedStart int64
}

func NewEnsemble(reg *catalog.Registry, job Job, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{reg: reg, base: job, numRuns: max(numRuns, 1), seedStart: seedStart}
}

// Run returns one trace per run in seed order. A run that fails mid-stream
// still yields its trace with Meta.Error set; any other error aborts. A shared
// Observer is serialized across the parallel runs.
func (e *Ensemble) Run(ctx context.Context, log *slog.Logger) ([]*trace.Trace, error) {
	base := e.base
	if base.Category == "" {
		c, err := e.reg.CategoryOf(base.Algorithm)
		if err != nil {
			return nil, err
		}
		base.Category = c
	}
	if base.Observer != nil {
		base.Observer = anim.Serialized(base.Observer)
	}

	results := make([]*trace.Trace, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			job := base
			job.Seed = e.seedStart + int64(idx)
			if job.Category == anim.Searching && job.Target == nil {
				values, err := job.Input()
				if err != nil {
					errs[idx] = err
					return
				}
				job.Values = values
				t := values[len(values)/2]
				job.Target = &t
			}

			tr, err := Execute(ctx, e.reg, job, log)
			var re *anim.RunError
			if err != nil && !errors.As(err, &re) {
				errs[idx] = err
				return
			}
			results[idx] = tr
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
