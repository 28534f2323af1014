package anim

import (
	"errors"
	"fmt"
)

// Domain errors for controller operations.
var (
	// ErrAlreadyRunning is returned by Start while a sequence is in flight.
	ErrAlreadyRunning = errors.New("anim: animation already running")

	// ErrInvalidTransition indicates a command that is not valid in the current state.
	ErrInvalidTransition = errors.New("anim: invalid state transition")

	// ErrValidation indicates invalid user input such as a missing search target.
	ErrValidation = errors.New("anim: validation failed")

	// ErrUnsupported indicates an unknown category, algorithm or language.
	ErrUnsupported = errors.New("anim: unsupported combination")

	// ErrStepUnsupported is returned by StepForward, which is a placeholder.
	ErrStepUnsupported = errors.New("anim: single-step advancement not implemented")

	// ErrNoGenerator indicates GenerateArray was called without a Generator.
	ErrNoGenerator = errors.New("anim: no array generator configured")
)

// ValidationError reports a rejected input. No steps run and the session
// state is left untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// MaxValue bounds the magnitude of every array value. Within it, max-min of
// any array fits comfortably in an int and in a counting table.
const MaxValue = 1_000_000

// CheckValues rejects arrays holding a value outside [-MaxValue, MaxValue].
func CheckValues(values []int) error {
	for i, v := range values {
		if v < -MaxValue || v > MaxValue {
			return &ValidationError{Field: "values", Reason: fmt.Sprintf("%d at index %d outside ±%d", v, i, MaxValue)}
		}
	}
	return nil
}

// UnsupportedError reports a lookup for a combination nothing is registered for.
type UnsupportedError struct {
	Category  Category
	Algorithm Algorithm
	Language  string
}

func (e *UnsupportedError) Error() string {
	if e.Language != "" {
		return fmt.Sprintf("no %s implementation of %s", e.Language, e.Algorithm)
	}
	if e.Algorithm == "" {
		return fmt.Sprintf("unknown category: %s", e.Category)
	}
	if e.Category == "" {
		return fmt.Sprintf("unknown algorithm: %s", e.Algorithm)
	}
	return fmt.Sprintf("unknown %s algorithm: %s", e.Category, e.Algorithm)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// RunError wraps a failure raised by a sequence. It is fatal to that run only.
type RunError struct {
	SessionID string
	Algorithm Algorithm
	Step      int
	Wrapped   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s run aborted at step %d: %v", e.Algorithm, e.Step, e.Wrapped)
}

func (e *RunError) Unwrap() error { return e.Wrapped }
