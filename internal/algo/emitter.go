// Package algo implements the algorithm step sequences: each routine walks
// its own working copy of the data and yields anim.StepEvents, suspending at
// every yield. A false return from yield means the consumer stopped pulling;
// the routine then returns immediately without further work.
package algo

import (
	"errors"
	"slices"

	"github.com/san-kum/algoviz/internal/anim"
)

var (
	// ErrNegativeValue is raised by sequences that only accept non-negative data.
	ErrNegativeValue = errors.New("algo: negative value")
	// ErrRangeTooWide is raised by counting sort when max-min exceeds MaxCountingRange.
	ErrRangeTooWide = errors.New("algo: value range too wide")
)

// emitter wraps yield with the working array so each call site stays one line.
type emitter struct {
	yield func(anim.StepEvent, error) bool
	a     []int
}

func newEmitter(values []int, yield func(anim.StepEvent, error) bool) *emitter {
	return &emitter{yield: yield, a: slices.Clone(values)}
}

func (e *emitter) compare(pace anim.Pace, indices ...int) bool {
	return e.yield(anim.Compare(e.a, pace, indices...), nil)
}

func (e *emitter) mutate(swap bool, pace anim.Pace) bool {
	return e.yield(anim.Mutate(e.a, swap, pace), nil)
}

func (e *emitter) highlight(role anim.Role, pace anim.Pace, indices ...int) bool {
	return e.yield(anim.Highlight(e.a, role, pace, indices...), nil)
}

func (e *emitter) sorted(indices ...int) bool {
	return e.yield(anim.MarkSorted(e.a, indices...), nil)
}

// sortedAll marks every index; used by the sequences that finish in one sweep.
func (e *emitter) sortedAll() bool {
	if len(e.a) == 0 {
		return true
	}
	all := make([]int, len(e.a))
	for i := range all {
		all[i] = i
	}
	return e.sorted(all...)
}

func (e *emitter) clear() bool {
	return e.yield(anim.Clear(e.a), nil)
}

func (e *emitter) found(i int) bool {
	return e.yield(anim.Found(e.a, i), nil)
}

func (e *emitter) notFound() bool {
	return e.yield(anim.NotFound(e.a), nil)
}

func (e *emitter) fail(err error) {
	e.yield(anim.StepEvent{}, err)
}

func (e *emitter) swap(i, j int) {
	e.a[i], e.a[j] = e.a[j], e.a[i]
}
