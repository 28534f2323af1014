package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/anim"
)

func TestResolveEveryDeclaredAlgorithm(t *testing.T) {
	r := NewRegistry()
	for _, c := range anim.Categories() {
		for _, a := range r.Algorithms(c) {
			res, err := r.Resolve(c, a)
			if err != nil {
				t.Fatalf("%s/%s: %v", c, a, err)
			}
			if res.Fallback || res.Runs != a {
				t.Errorf("%s/%s: resolved to %s (fallback=%v)", c, a, res.Runs, res.Fallback)
			}
			if res.Factory == nil {
				t.Errorf("%s/%s: nil factory", c, a)
			}
		}
	}
}

func TestBaselineFallsBack(t *testing.T) {
	r := NewRegistry(Baseline())

	tests := []struct {
		category anim.Category
		alg      anim.Algorithm
		runs     anim.Algorithm
		fallback bool
	}{
		{anim.Sorting, anim.QuickSort, anim.QuickSort, false},
		{anim.Sorting, anim.HeapSort, anim.BubbleSort, true},
		{anim.Sorting, anim.RadixSort, anim.BubbleSort, true},
		{anim.Searching, anim.BinarySearch, anim.BinarySearch, false},
		{anim.Searching, anim.JumpSearch, anim.LinearSearch, true},
	}

	for _, tt := range tests {
		res, err := r.Resolve(tt.category, tt.alg)
		if err != nil {
			t.Fatalf("%s: %v", tt.alg, err)
		}
		if res.Runs != tt.runs || res.Fallback != tt.fallback {
			t.Errorf("%s: got runs=%s fallback=%v, want %s %v", tt.alg, res.Runs, res.Fallback, tt.runs, tt.fallback)
		}

		d, err := r.Describe(tt.category, tt.alg)
		if err != nil {
			t.Fatal(err)
		}
		if d.Implemented == tt.fallback {
			t.Errorf("%s: implemented=%v", tt.alg, d.Implemented)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve(anim.Searching, anim.BubbleSort)
	var ue *anim.UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want UnsupportedError", err)
	}
	if !errors.Is(err, anim.ErrUnsupported) {
		t.Error("UnsupportedError does not unwrap to ErrUnsupported")
	}

	if _, err := r.First("graphs"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestFirstFollowsMenuOrder(t *testing.T) {
	r := NewRegistry()
	if a, _ := r.First(anim.Sorting); a != anim.BubbleSort {
		t.Errorf("sorting first = %s", a)
	}
	if a, _ := r.First(anim.Searching); a != anim.LinearSearch {
		t.Errorf("searching first = %s", a)
	}
	if n := len(r.Algorithms(anim.Sorting)); n != 9 {
		t.Errorf("sorting algorithms = %d, want 9", n)
	}
	if n := len(r.Algorithms(anim.Searching)); n != 5 {
		t.Errorf("searching algorithms = %d, want 5", n)
	}
}

func TestCategoryOf(t *testing.T) {
	r := NewRegistry()
	if c, err := r.CategoryOf(anim.InterpolationSearch); err != nil || c != anim.Searching {
		t.Errorf("got %s, %v", c, err)
	}
	if _, err := r.CategoryOf("bogo_sort"); err == nil {
		t.Error("expected error for undeclared algorithm")
	}
}

func TestDescribe(t *testing.T) {
	r := NewRegistry()
	d, err := r.Describe(anim.Sorting, anim.MergeSort)
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Merge Sort" || d.TimeComplexity != "O(n log n)" || d.SpaceComplexity != "O(n)" {
		t.Errorf("unexpected descriptor %+v", d)
	}
	if d.Category != anim.Sorting || !d.Implemented {
		t.Errorf("category=%s implemented=%v", d.Category, d.Implemented)
	}

	for _, c := range anim.Categories() {
		for _, d := range r.Descriptors(c) {
			if d.Name == "" || d.Description == "" {
				t.Errorf("%s/%s: empty descriptor text", c, d.Algorithm)
			}
		}
	}
}

func TestCodeSamples(t *testing.T) {
	langs := Languages()
	if strings.Join(langs, ",") != "cpp,java,python" {
		t.Fatalf("languages = %v", langs)
	}

	r := NewRegistry()
	for _, lang := range langs {
		for _, c := range anim.Categories() {
			for _, a := range r.Algorithms(c) {
				if !HasSample(lang, a) {
					t.Errorf("missing %s sample for %s", lang, a)
				}
			}
		}
	}

	if got := CodeSample("java", anim.BubbleSort); !strings.Contains(got, "bubbleSort") {
		t.Errorf("java bubble sample:\n%s", got)
	}
	if got := CodeSample("rust", anim.BubbleSort); got != Unavailable {
		t.Errorf("unknown language got %q", got)
	}
	if got := CodeSample("python", "bogo_sort"); got != Unavailable {
		t.Errorf("unknown algorithm got %q", got)
	}
}
