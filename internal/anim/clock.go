package anim

import "time"

const (
	MinSpeed     = 1
	MaxSpeed     = 10
	DefaultSpeed = 6
)

// Clock times the suspension between events.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type RealClock struct{}

func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// InstantClock never waits. Headless runs and tests use it.
type InstantClock struct{}

func (InstantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

// Pacing maps a speed level to a delay: Base - level*Step, floored at zero.
// Half-paced events wait half of that.
type Pacing struct {
	Base time.Duration
	Step time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{Base: 600 * time.Millisecond, Step: 50 * time.Millisecond}
}

func (p Pacing) Delay(level int, pace Pace) time.Duration {
	d := p.Base - time.Duration(level)*p.Step
	if d < 0 {
		d = 0
	}
	switch pace {
	case PaceFull:
		return d
	case PaceHalf:
		return d / 2
	default:
		return 0
	}
}
