package catalog

import "github.com/san-kum/algoviz/internal/anim"

// Descriptor is the static metadata shown next to an animation.
type Descriptor struct {
	Category        anim.Category  `json:"category" yaml:"category"`
	Algorithm       anim.Algorithm `json:"algorithm" yaml:"algorithm"`
	Name            string         `json:"name" yaml:"name"`
	Description     string         `json:"description" yaml:"description"`
	TimeComplexity  string         `json:"time_complexity" yaml:"time_complexity"`
	SpaceComplexity string         `json:"space_complexity" yaml:"space_complexity"`
	// Implemented is false when the capability table has no dedicated
	// sequence and a fallback runs instead.
	Implemented bool `json:"implemented" yaml:"implemented"`
}

// descriptors is in menu order per category.
var descriptors = map[anim.Category][]Descriptor{
	anim.Sorting: {
		{
			Algorithm: anim.BubbleSort, Name: "Bubble Sort",
			Description:    "Repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order.",
			TimeComplexity: "O(n²)", SpaceComplexity: "O(1)",
		},
		{
			Algorithm: anim.SelectionSort, Name: "Selection Sort",
			Description:    "Finds the minimum element and places it at the beginning, then repeats for the remaining unsorted portion.",
			TimeComplexity: "O(n²)", SpaceComplexity: "O(1)",
		},
		{
			Algorithm: anim.InsertionSort, Name: "Insertion Sort",
			Description:    "Builds the final sorted array one item at a time by inserting each element into its correct position.",
			TimeComplexity: "O(n²)", SpaceComplexity: "O(1)",
		},
		{
			Algorithm: anim.MergeSort, Name: "Merge Sort",
			Description:    "Divides the array into halves, sorts them separately, and then merges the sorted halves.",
			TimeComplexity: "O(n log n)", SpaceComplexity: "O(n)",
		},
		{
			Algorithm: anim.QuickSort, Name: "Quick Sort",
			Description:    "Selects a pivot element and partitions the array around it, then recursively sorts the sub-arrays.",
			TimeComplexity: "O(n log n) avg, O(n²) worst", SpaceComplexity: "O(log n)",
		},
		{
			Algorithm: anim.HeapSort, Name: "Heap Sort",
			Description:    "Builds a max heap from the array and repeatedly extracts the maximum element.",
			TimeComplexity: "O(n log n)", SpaceComplexity: "O(1)",
		},
		{
			Algorithm: anim.CountingSort, Name: "Counting Sort",
			Description:    "Counts the frequency of each element and uses this information to place elements in sorted order.",
			TimeComplexity: "O(n + k)", SpaceComplexity: "O(k)",
		},
		{
			Algorithm: anim.RadixSort, Name: "Radix Sort",
			Description:    "Sorts numbers digit by digit starting from the least significant digit.",
			TimeComplexity: "O(d × (n + k))", SpaceComplexity: "O(n + k)",
		},
		{
			Algorithm: anim.BucketSort, Name: "Bucket Sort",
			Description:    "Distributes elements into buckets, sorts each bucket, then concatenates the results.",
			TimeComplexity: "O(n + k) avg", SpaceComplexity: "O(n × k)",
		},
	},
	anim.Searching: {
		{
			Algorithm: anim.LinearSearch, Name: "Linear Search",
			Description:    "Sequentially checks each element until the target is found or the list ends.",
			TimeComplexity: "O(n)", SpaceComplexity: "O(1)",
		},
		{
			Algorithm: anim.BinarySearch, Name: "Binary Search",
			Description:    "Efficiently searches a sorted array by repeatedly dividing the search interval in half.",
			TimeComplexity: "O(log n)", SpaceComplexity: "O(1)",
		},
		{
			Algorithm: anim.JumpSearch, Name: "Jump Search",
			Description:    "Jumps ahead by fixed steps to find the range, then performs linear search within that range.",
			TimeComplexity: "O(√n)", SpaceComplexity: "O(1)",
		},
		{
			Algorithm: anim.ExponentialSearch, Name: "Exponential Search",
			Description:    "Finds the range by exponentially increasing the step size, then performs binary search.",
			TimeComplexity: "O(log n)", SpaceComplexity: "O(1)",
		},
		{
			Algorithm: anim.InterpolationSearch, Name: "Interpolation Search",
			Description:    "Estimates the position of the target based on the value distribution in a uniformly distributed array.",
			TimeComplexity: "O(log log n) avg", SpaceComplexity: "O(1)",
		},
	},
}

func lookup(c anim.Category, a anim.Algorithm) (Descriptor, bool) {
	for _, d := range descriptors[c] {
		if d.Algorithm == a {
			d.Category = c
			return d, true
		}
	}
	return Descriptor{}, false
}
