// Package dataset produces and parses the arrays animations run over.
package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/san-kum/algoviz/internal/anim"
)

const (
	MinSize = 1
	MaxSize = 200
)

var (
	ErrSize   = errors.New("dataset: size out of range")
	ErrRange  = errors.New("dataset: empty value range")
	ErrShape  = errors.New("dataset: unknown shape")
	ErrValue  = errors.New("dataset: invalid value")
	ErrTarget = errors.New("dataset: invalid search target")
)

type Shape string

const (
	Random       Shape = "random"
	Sorted       Shape = "sorted"
	Reversed     Shape = "reversed"
	NearlySorted Shape = "nearly_sorted"
	FewUnique    Shape = "few_unique"
)

func Shapes() []Shape { return []Shape{Random, Sorted, Reversed, NearlySorted, FewUnique} }

func ParseShape(s string) (Shape, error) {
	for _, sh := range Shapes() {
		if string(sh) == s {
			return sh, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrShape, s)
}

// Generator draws values uniformly from [Min, Max) and arranges them by
// Shape. It is safe for concurrent use.
type Generator struct {
	Min   int
	Max   int
	Shape Shape

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator seeds from seed; seed 0 picks a random seed. Bounds must lie
// within ±anim.MaxValue (hi is exclusive, so it may be one above).
func NewGenerator(lo, hi int, shape Shape, seed int64) (*Generator, error) {
	if lo >= hi {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrRange, lo, hi)
	}
	if lo < -anim.MaxValue || hi > anim.MaxValue+1 {
		return nil, fmt.Errorf("%w: [%d, %d) exceeds ±%d", ErrValue, lo, hi, anim.MaxValue)
	}
	if shape == "" {
		shape = Random
	}
	if _, err := ParseShape(string(shape)); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Generator{Min: lo, Max: hi, Shape: shape, rng: rand.New(rand.NewSource(seed))}, nil
}

func (g *Generator) Generate(size int) ([]int, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in %d..%d", ErrSize, size, MinSize, MaxSize)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	span := g.Max - g.Min
	if g.Shape == FewUnique {
		span = min(span, max(2, size/10))
	}
	values := make([]int, size)
	for i := range values {
		v := g.rng.Intn(span)
		if g.Shape == FewUnique {
			v = v * ((g.Max - g.Min) / span)
		}
		values[i] = g.Min + v
	}

	switch g.Shape {
	case Sorted:
		slices.Sort(values)
	case Reversed:
		slices.Sort(values)
		slices.Reverse(values)
	case NearlySorted:
		slices.Sort(values)
		for range max(1, size/10) {
			i, j := g.rng.Intn(size), g.rng.Intn(size)
			values[i], values[j] = values[j], values[i]
		}
	}
	return values, nil
}

// ParseValues accepts integers separated by commas and/or whitespace, each
// within ±anim.MaxValue.
func ParseValues(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no values", ErrValue)
	}
	if len(fields) > MaxSize {
		return nil, fmt.Errorf("%w: %d values", ErrSize, len(fields))
	}
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrValue, f)
		}
		if v < -anim.MaxValue || v > anim.MaxValue {
			return nil, fmt.Errorf("%w: %d exceeds ±%d", ErrValue, v, anim.MaxValue)
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseTarget parses a search key. Blank input clears the target (nil);
// anything else that is not an integer is an error. Zero is a valid key.
func ParseTarget(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTarget, s)
	}
	return &v, nil
}

// Format renders values the way ParseValues reads them.
func Format(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
