package anim

import (
	"iter"
	"slices"
)

type Category string

const (
	Sorting   Category = "sorting"
	Searching Category = "searching"
)

// Categories lists the categories in menu order.
func Categories() []Category { return []Category{Sorting, Searching} }

// Algorithm identifies an algorithm kind within a category.
type Algorithm string

const (
	BubbleSort    Algorithm = "bubble_sort"
	SelectionSort Algorithm = "selection_sort"
	InsertionSort Algorithm = "insertion_sort"
	MergeSort     Algorithm = "merge_sort"
	QuickSort     Algorithm = "quick_sort"
	HeapSort      Algorithm = "heap_sort"
	CountingSort  Algorithm = "counting_sort"
	RadixSort     Algorithm = "radix_sort"
	BucketSort    Algorithm = "bucket_sort"

	LinearSearch        Algorithm = "linear_search"
	BinarySearch        Algorithm = "binary_search"
	JumpSearch          Algorithm = "jump_search"
	ExponentialSearch   Algorithm = "exponential_search"
	InterpolationSearch Algorithm = "interpolation_search"
)

type EventKind uint8

const (
	EventCompare EventKind = iota
	EventMutate
	EventHighlight
	EventMarkSorted
	EventFound
	EventNotFound
	EventClear
)

var eventKindNames = [...]string{"compare", "mutate", "highlight", "mark_sorted", "found", "not_found", "clear"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Role tells a renderer how a highlighted index participates in the step.
type Role uint8

const (
	RoleNone Role = iota
	RoleComparing
	RoleCurrent
	RolePivot
)

var roleNames = [...]string{"", "comparing", "current", "pivot"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Pace is the suspension the Controller observes after forwarding an event.
type Pace uint8

const (
	PaceNone Pace = iota
	PaceFull
	PaceHalf
)

type State uint8

const (
	Idle State = iota
	Running
	Paused
	Completed
)

var stateNames = [...]string{"idle", "running", "paused", "completed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// StepEvent is one observable unit of algorithm progress. Events are
// immutable: every slice is a private copy taken at emission.
type StepEvent struct {
	Kind     EventKind
	Indices  []int
	Role     Role
	Index    int
	Swap     bool
	Pace     Pace
	Snapshot []int
}

func newEvent(kind EventKind, snapshot []int, pace Pace, indices []int) StepEvent {
	return StepEvent{
		Kind:     kind,
		Indices:  slices.Clone(indices),
		Index:    -1,
		Pace:     pace,
		Snapshot: slices.Clone(snapshot),
	}
}

// Compare records one comparison involving indices.
func Compare(snapshot []int, pace Pace, indices ...int) StepEvent {
	ev := newEvent(EventCompare, snapshot, pace, indices)
	ev.Role = RoleComparing
	return ev
}

// Mutate commits a new snapshot. swap marks the mutation as one swap.
func Mutate(snapshot []int, swap bool, pace Pace) StepEvent {
	ev := newEvent(EventMutate, snapshot, pace, nil)
	ev.Swap = swap
	return ev
}

func Highlight(snapshot []int, role Role, pace Pace, indices ...int) StepEvent {
	ev := newEvent(EventHighlight, snapshot, pace, indices)
	ev.Role = role
	return ev
}

func MarkSorted(snapshot []int, indices ...int) StepEvent {
	return newEvent(EventMarkSorted, snapshot, PaceNone, indices)
}

func Found(snapshot []int, index int) StepEvent {
	ev := newEvent(EventFound, snapshot, PaceNone, []int{index})
	ev.Index = index
	return ev
}

func NotFound(snapshot []int) StepEvent {
	return newEvent(EventNotFound, snapshot, PaceNone, nil)
}

// Clear drops every transient highlight (comparing, current, pivot).
func Clear(snapshot []int) StepEvent {
	return newEvent(EventClear, snapshot, PaceNone, nil)
}

// Input seeds one invocation of a sequence.
type Input struct {
	Values []int
	Target int
}

// Sequence is a lazy, finite stream of events for one algorithm invocation.
// A non-nil error is fatal to the run and ends the stream.
type Sequence = iter.Seq2[StepEvent, error]

// SequenceFactory creates a fresh Sequence. The factory must not retain
// in.Values; sequences work on their own copy.
type SequenceFactory func(in Input) Sequence

// Resolution is the outcome of looking up a sequence for a selection.
type Resolution struct {
	Factory SequenceFactory
	// Runs is the algorithm actually executed.
	Runs Algorithm
	// Fallback is true when the requested algorithm has no dedicated
	// sequence and the category default runs instead.
	Fallback bool
}

// Resolver is the capability table the Controller consults.
type Resolver interface {
	Resolve(c Category, a Algorithm) (Resolution, error)
	First(c Category) (Algorithm, error)
}

// Generator produces fresh arrays for GenerateArray.
type Generator interface {
	Generate(size int) ([]int, error)
}
