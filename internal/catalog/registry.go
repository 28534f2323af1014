package catalog

import (
	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/anim"
)

type key struct {
	category  anim.Category
	algorithm anim.Algorithm
}

// Registry is the capability table mapping (category, algorithm) to a
// sequence factory. Declared algorithms without a factory resolve to the
// category default and are reported as not fully implemented.
type Registry struct {
	factories map[key]anim.SequenceFactory
	defaults  map[anim.Category]anim.Algorithm
}

type Option func(*Registry)

// Baseline registers only the sequences the first release animated; every
// other declared algorithm falls back to Bubble or Linear.
func Baseline() Option {
	return func(r *Registry) {
		for k := range r.factories {
			switch k.algorithm {
			case anim.BubbleSort, anim.SelectionSort, anim.InsertionSort, anim.MergeSort, anim.QuickSort,
				anim.LinearSearch, anim.BinarySearch:
			default:
				delete(r.factories, k)
			}
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		factories: make(map[key]anim.SequenceFactory),
		defaults: map[anim.Category]anim.Algorithm{
			anim.Sorting:   anim.BubbleSort,
			anim.Searching: anim.LinearSearch,
		},
	}

	r.Register(anim.Sorting, anim.BubbleSort, algo.Bubble)
	r.Register(anim.Sorting, anim.SelectionSort, algo.Selection)
	r.Register(anim.Sorting, anim.InsertionSort, algo.Insertion)
	r.Register(anim.Sorting, anim.MergeSort, algo.Merge)
	r.Register(anim.Sorting, anim.QuickSort, algo.Quick)
	r.Register(anim.Sorting, anim.HeapSort, algo.Heap)
	r.Register(anim.Sorting, anim.CountingSort, algo.Counting)
	r.Register(anim.Sorting, anim.RadixSort, algo.Radix)
	r.Register(anim.Sorting, anim.BucketSort, algo.Bucket)

	r.Register(anim.Searching, anim.LinearSearch, algo.Linear)
	r.Register(anim.Searching, anim.BinarySearch, algo.Binary)
	r.Register(anim.Searching, anim.JumpSearch, algo.Jump)
	r.Register(anim.Searching, anim.ExponentialSearch, algo.Exponential)
	r.Register(anim.Searching, anim.InterpolationSearch, algo.Interpolation)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register installs or replaces the factory for a declared algorithm.
func (r *Registry) Register(c anim.Category, a anim.Algorithm, f anim.SequenceFactory) {
	r.factories[key{c, a}] = f
}

// Unregister removes a factory; the algorithm then resolves to its fallback.
func (r *Registry) Unregister(c anim.Category, a anim.Algorithm) {
	delete(r.factories, key{c, a})
}

func (r *Registry) Resolve(c anim.Category, a anim.Algorithm) (anim.Resolution, error) {
	if _, ok := lookup(c, a); !ok {
		return anim.Resolution{}, &anim.UnsupportedError{Category: c, Algorithm: a}
	}
	if f, ok := r.factories[key{c, a}]; ok {
		return anim.Resolution{Factory: f, Runs: a}, nil
	}
	def := r.defaults[c]
	f, ok := r.factories[key{c, def}]
	if !ok {
		return anim.Resolution{}, &anim.UnsupportedError{Category: c, Algorithm: a}
	}
	return anim.Resolution{Factory: f, Runs: def, Fallback: true}, nil
}

// First returns the first algorithm of a category in menu order.
func (r *Registry) First(c anim.Category) (anim.Algorithm, error) {
	ds := descriptors[c]
	if len(ds) == 0 {
		return "", &anim.UnsupportedError{Category: c}
	}
	return ds[0].Algorithm, nil
}

// Algorithms lists a category's algorithms in menu order.
func (r *Registry) Algorithms(c anim.Category) []anim.Algorithm {
	ds := descriptors[c]
	names := make([]anim.Algorithm, 0, len(ds))
	for _, d := range ds {
		names = append(names, d.Algorithm)
	}
	return names
}

// CategoryOf finds the category an algorithm is declared in.
func (r *Registry) CategoryOf(a anim.Algorithm) (anim.Category, error) {
	for _, c := range anim.Categories() {
		if _, ok := lookup(c, a); ok {
			return c, nil
		}
	}
	return "", &anim.UnsupportedError{Algorithm: a}
}

// Describe returns the descriptor for (c, a) with Implemented reflecting the
// current table.
func (r *Registry) Describe(c anim.Category, a anim.Algorithm) (Descriptor, error) {
	d, ok := lookup(c, a)
	if !ok {
		return Descriptor{}, &anim.UnsupportedError{Category: c, Algorithm: a}
	}
	_, d.Implemented = r.factories[key{c, a}]
	return d, nil
}

// Descriptors lists every descriptor of a category in menu order.
func (r *Registry) Descriptors(c anim.Category) []Descriptor {
	out := make([]Descriptor, 0, len(descriptors[c]))
	for _, a := range r.Algorithms(c) {
		d, _ := r.Describe(c, a)
		out = append(out, d)
	}
	return out
}
