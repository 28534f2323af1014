package algo

import (
	"fmt"
	"math"

	"github.com/san-kum/algoviz/internal/anim"
)

// MaxCountingRange bounds the count table of counting sort.
const MaxCountingRange = 1 << 21

// spread is hi-lo without overflow; lo <= hi.
func spread(lo, hi int) uint64 { return uint64(hi) - uint64(lo) }

// scale maps num/den onto [0, width] in floating point and clamps the result.
func scale(num, den uint64, width int) int {
	if den == 0 {
		return 0
	}
	k := int(float64(num) / float64(den) * float64(width))
	return min(max(k, 0), width)
}

// Counting sorts by value frequency. Negative values are handled by
// offsetting with the minimum.
func Counting(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		countingSort(newEmitter(in.Values, yield))
	}
}

func countingSort(e *emitter) {
	a := e.a
	if len(a) == 0 {
		return
	}
	lo, hi := a[0], a[0]
	for i, v := range a {
		if !e.highlight(anim.RoleCurrent, anim.PaceHalf, i) {
			return
		}
		lo, hi = min(lo, v), max(hi, v)
	}

	if spread(lo, hi) >= MaxCountingRange {
		e.fail(fmt.Errorf("%w: counting sort over [%d, %d]", ErrRangeTooWide, lo, hi))
		return
	}
	counts := make([]int, hi-lo+1)
	for _, v := range a {
		counts[v-lo]++
	}

	k := 0
	for off, c := range counts {
		for ; c > 0; c-- {
			a[k] = lo + off
			if !e.mutate(false, anim.PaceFull) {
				return
			}
			k++
		}
	}
	if e.clear() {
		e.sortedAll()
	}
}

// Radix is least-significant-digit first in base 10 and rejects negatives.
func Radix(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		radixSort(newEmitter(in.Values, yield))
	}
}

func radixSort(e *emitter) {
	a := e.a
	if len(a) == 0 {
		return
	}
	hi := 0
	for i, v := range a {
		if v < 0 {
			e.fail(fmt.Errorf("%w: radix sort got %d at index %d", ErrNegativeValue, v, i))
			return
		}
		hi = max(hi, v)
	}

	out := make([]int, len(a))
	for exp := 1; hi/exp > 0; exp *= 10 {
		var counts [10]int
		for i, v := range a {
			if !e.highlight(anim.RoleCurrent, anim.PaceHalf, i) {
				return
			}
			counts[(v/exp)%10]++
		}
		for d := 1; d < 10; d++ {
			counts[d] += counts[d-1]
		}
		for i := len(a) - 1; i >= 0; i-- {
			d := (a[i] / exp) % 10
			counts[d]--
			out[counts[d]] = a[i]
		}
		for i := range a {
			a[i] = out[i]
			if !e.mutate(false, anim.PaceFull) {
				return
			}
		}
		if !e.clear() {
			return
		}
		if exp > math.MaxInt/10 {
			break
		}
	}
	e.sortedAll()
}

// Bucket scatters values into len(a) equal-width buckets, writes the buckets
// back in order, then insertion-sorts each bucket's segment in place.
func Bucket(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		bucketSort(newEmitter(in.Values, yield))
	}
}

func bucketSort(e *emitter) {
	a := e.a
	n := len(a)
	if n == 0 {
		return
	}
	lo, hi := a[0], a[0]
	for _, v := range a {
		lo, hi = min(lo, v), max(hi, v)
	}

	buckets := make([][]int, n)
	for i, v := range a {
		if !e.highlight(anim.RoleCurrent, anim.PaceHalf, i) {
			return
		}
		b := scale(spread(lo, v), spread(lo, hi), n-1)
		buckets[b] = append(buckets[b], v)
	}

	bounds := make([]int, 0, n+1)
	k := 0
	for _, bucket := range buckets {
		bounds = append(bounds, k)
		for _, v := range bucket {
			a[k] = v
			if !e.mutate(false, anim.PaceNone) {
				return
			}
			k++
		}
	}
	bounds = append(bounds, n)
	if !e.clear() {
		return
	}

	for i := 0; i+1 < len(bounds); i++ {
		if bounds[i+1]-bounds[i] < 2 {
			continue
		}
		if !insertionRange(e, bounds[i], bounds[i+1]) {
			return
		}
	}
	e.sortedAll()
}
