package algo

import "github.com/san-kum/algoviz/internal/anim"

func Bubble(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		bubble(newEmitter(in.Values, yield))
	}
}

func bubble(e *emitter) {
	a := e.a
	n := len(a)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if !e.compare(anim.PaceFull, j, j+1) {
				return
			}
			if a[j] > a[j+1] {
				e.swap(j, j+1)
				if !e.mutate(true, anim.PaceHalf) {
					return
				}
			}
			if !e.clear() {
				return
			}
		}
		if !e.sorted(n - i - 1) {
			return
		}
	}
	if n > 0 {
		e.sorted(0)
	}
}

func Selection(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		selection(newEmitter(in.Values, yield))
	}
}

func selection(e *emitter) {
	a := e.a
	n := len(a)
	for i := 0; i < n-1; i++ {
		minIdx := i
		if !e.highlight(anim.RoleCurrent, anim.PaceNone, i) {
			return
		}
		for j := i + 1; j < n; j++ {
			if !e.compare(anim.PaceFull, j, minIdx) {
				return
			}
			if a[j] < a[minIdx] {
				minIdx = j
				if !e.highlight(anim.RoleComparing, anim.PaceNone, minIdx) {
					return
				}
			}
		}
		if minIdx != i {
			e.swap(i, minIdx)
			if !e.mutate(true, anim.PaceHalf) {
				return
			}
		}
		if !e.clear() || !e.sorted(i) {
			return
		}
	}
	if n > 0 {
		e.sorted(n - 1)
	}
}

func Insertion(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		e := newEmitter(in.Values, yield)
		if insertionRange(e, 0, len(e.a)) {
			e.sortedAll()
		}
	}
}

// insertionRange insertion-sorts a[lo:hi]. Every candidate check is a
// Compare, every shift a Mutate; placing the key counts as a swap only when
// the key moved.
func insertionRange(e *emitter, lo, hi int) bool {
	a := e.a
	for i := lo + 1; i < hi; i++ {
		key := a[i]
		j := i - 1
		if !e.highlight(anim.RoleCurrent, anim.PaceFull, i) {
			return false
		}
		for j >= lo {
			if !e.compare(anim.PaceNone, j) {
				return false
			}
			if a[j] <= key {
				break
			}
			a[j+1] = a[j]
			if !e.mutate(false, anim.PaceFull) {
				return false
			}
			j--
		}
		a[j+1] = key
		if !e.mutate(j+1 != i, anim.PaceNone) || !e.clear() {
			return false
		}
	}
	return true
}

func Merge(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		e := newEmitter(in.Values, yield)
		if mergeSort(e, 0, len(e.a)-1) {
			e.sortedAll()
		}
	}
}

// mergeSort animates the left half fully, then the right, then the merge.
func mergeSort(e *emitter, left, right int) bool {
	if left >= right {
		return true
	}
	mid := left + (right-left)/2
	return mergeSort(e, left, mid) && mergeSort(e, mid+1, right) && merge(e, left, mid, right)
}

func merge(e *emitter, left, mid, right int) bool {
	a := e.a
	l := append([]int(nil), a[left:mid+1]...)
	r := append([]int(nil), a[mid+1:right+1]...)

	i, j, k := 0, 0, left
	for i < len(l) && j < len(r) {
		if !e.compare(anim.PaceNone, k) {
			return false
		}
		if l[i] <= r[j] {
			a[k] = l[i]
			i++
		} else {
			a[k] = r[j]
			j++
		}
		if !e.mutate(false, anim.PaceNone) || !e.highlight(anim.RoleCurrent, anim.PaceFull, k) {
			return false
		}
		k++
	}

	// Drain whichever side is left; placements only, no comparisons.
	for ; i < len(l); i, k = i+1, k+1 {
		a[k] = l[i]
		if !e.mutate(false, anim.PaceNone) {
			return false
		}
	}
	for ; j < len(r); j, k = j+1, k+1 {
		a[k] = r[j]
		if !e.mutate(false, anim.PaceNone) {
			return false
		}
	}
	return e.clear()
}

func Quick(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		e := newEmitter(in.Values, yield)
		if quickSort(e, 0, len(e.a)-1) {
			e.sortedAll()
		}
	}
}

func quickSort(e *emitter, low, high int) bool {
	if low >= high {
		return true
	}
	p, ok := partition(e, low, high)
	if !ok {
		return false
	}
	return quickSort(e, low, p-1) && quickSort(e, p+1, high)
}

// partition is Lomuto with the last element as pivot.
func partition(e *emitter, low, high int) (int, bool) {
	a := e.a
	pivot := a[high]
	if !e.highlight(anim.RolePivot, anim.PaceNone, high) {
		return 0, false
	}
	i := low - 1
	for j := low; j < high; j++ {
		if !e.compare(anim.PaceFull, j, high) {
			return 0, false
		}
		if a[j] < pivot {
			i++
			e.swap(i, j)
			if !e.mutate(true, anim.PaceNone) {
				return 0, false
			}
		}
	}
	e.swap(i+1, high)
	if !e.mutate(true, anim.PaceNone) || !e.clear() {
		return 0, false
	}
	return i + 1, true
}
