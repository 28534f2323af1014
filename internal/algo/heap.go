package algo

import "github.com/san-kum/algoviz/internal/anim"

func Heap(in anim.Input) anim.Sequence {
	return func(yield func(anim.StepEvent, error) bool) {
		heapSort(newEmitter(in.Values, yield))
	}
}

func heapSort(e *emitter) {
	n := len(e.a)
	for i := n/2 - 1; i >= 0; i-- {
		if !siftDown(e, n, i) {
			return
		}
	}
	for end := n - 1; end > 0; end-- {
		e.swap(0, end)
		if !e.mutate(true, anim.PaceHalf) || !e.sorted(end) {
			return
		}
		if !siftDown(e, end, 0) {
			return
		}
	}
	if n > 0 {
		e.sorted(0)
	}
}

// siftDown restores the max-heap property below i within a[:n].
func siftDown(e *emitter, n, i int) bool {
	a := e.a
	for {
		largest := i
		if !e.highlight(anim.RoleCurrent, anim.PaceNone, i) {
			return false
		}
		for _, child := range [2]int{2*i + 1, 2*i + 2} {
			if child >= n {
				continue
			}
			if !e.compare(anim.PaceFull, child, largest) {
				return false
			}
			if a[child] > a[largest] {
				largest = child
			}
		}
		if largest == i {
			return e.clear()
		}
		e.swap(i, largest)
		if !e.mutate(true, anim.PaceHalf) {
			return false
		}
		i = largest
	}
}
