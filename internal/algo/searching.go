package algo

import (
	"math"
	"slices"

	"github.com/san-kum/algoviz/internal/anim"
)

func Linear(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		e := newEmitter(in.Values, yield)
		for i, v := range e.a {
			if !e.highlight(anim.RoleComparing, anim.PaceNone, i) || !e.compare(anim.PaceFull, i) {
				return
			}
			if v == in.Target {
				e.found(i)
				return
			}
			if !e.clear() {
				return
			}
		}
		e.notFound()
	}
}

// sortForSearch replaces the snapshot with its ascending order. The
// replacement is visible and is not a swap.
func sortForSearch(e *emitter) bool {
	slices.Sort(e.a)
	return e.mutate(false, anim.PaceFull)
}

func Binary(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		e := newEmitter(in.Values, yield)
		if !sortForSearch(e) {
			return
		}
		bisect(e, 0, len(e.a)-1, in.Target)
	}
}

// bisect searches a[left..right] and always ends the stream with Found or
// NotFound unless the consumer stopped.
func bisect(e *emitter, left, right, target int) {
	a := e.a
	for left <= right {
		mid := left + (right-left)/2
		if !e.highlight(anim.RoleComparing, anim.PaceNone, left, right) ||
			!e.highlight(anim.RoleCurrent, anim.PaceNone, mid) ||
			!e.compare(anim.PaceFull, mid) {
			return
		}
		if a[mid] == target {
			e.found(mid)
			return
		}
		if !e.clear() {
			return
		}
		if a[mid] < target {
			left = mid + 1
		} else {
			right = mid - 1
		}
	}
	e.notFound()
}

// Jump probes block ends sqrt(n) apart, then scans the block linearly.
func Jump(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		e := newEmitter(in.Values, yield)
		if !sortForSearch(e) {
			return
		}
		a := e.a
		n := len(a)
		step := max(1, int(math.Sqrt(float64(n))))

		prev, cur := 0, step
		for {
			if prev >= n {
				e.notFound()
				return
			}
			end := min(cur, n) - 1
			if !e.highlight(anim.RoleCurrent, anim.PaceNone, end) || !e.compare(anim.PaceFull, end) {
				return
			}
			if a[end] >= in.Target {
				break
			}
			prev, cur = cur, cur+step
		}

		if !e.clear() {
			return
		}
		for i := prev; i < min(cur, n); i++ {
			if !e.compare(anim.PaceFull, i) {
				return
			}
			if a[i] == in.Target {
				e.found(i)
				return
			}
			if a[i] > in.Target {
				break
			}
		}
		e.notFound()
	}
}

// Exponential doubles the bound until it passes the target, then bisects.
func Exponential(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		e := newEmitter(in.Values, yield)
		if !sortForSearch(e) {
			return
		}
		a := e.a
		n := len(a)
		if n == 0 {
			e.notFound()
			return
		}
		if !e.compare(anim.PaceFull, 0) {
			return
		}
		if a[0] == in.Target {
			e.found(0)
			return
		}

		bound := 1
		for bound < n {
			if !e.highlight(anim.RoleCurrent, anim.PaceNone, bound) || !e.compare(anim.PaceFull, bound) {
				return
			}
			if a[bound] > in.Target {
				break
			}
			bound *= 2
		}
		if !e.clear() {
			return
		}
		bisect(e, bound/2, min(bound, n-1), in.Target)
	}
}

// Interpolation estimates the probe position from the value distribution.
// A zero-width bracket (a[left] == a[right]) is decided by one equality check
// instead of the position formula.
func Interpolation(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		e := newEmitter(in.Values, yield)
		if !sortForSearch(e) {
			return
		}
		a := e.a
		t := in.Target
		left, right := 0, len(a)-1
		for left <= right {
			if !e.compare(anim.PaceFull, left, right) {
				return
			}
			if t < a[left] || t > a[right] {
				break
			}
			if a[left] == a[right] {
				if a[left] == t {
					e.found(left)
					return
				}
				break
			}

			pos := left + scale(spread(a[left], t), spread(a[left], a[right]), right-left)
			if !e.highlight(anim.RoleCurrent, anim.PaceNone, pos) || !e.compare(anim.PaceFull, pos) {
				return
			}
			if a[pos] == t {
				e.found(pos)
				return
			}
			if !e.clear() {
				return
			}
			if a[pos] < t {
				left = pos + 1
			} else {
				right = pos - 1
			}
		}
		e.notFound()
	}
}
