package anim_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAnim(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Anim Suite")
}

// gateClock blocks every suspension until the test ticks it or opens it.
type gateClock struct {
	ticks chan time.Time
}

func newGateClock() *gateClock {
	return &gateClock{ticks: make(chan time.Time)}
}

func (g *gateClock) After(time.Duration) <-chan time.Time { return g.ticks }

// open releases every suspension until stop is closed.
func (g *gateClock) open(stop <-chan struct{}) {
	go func() {
		for {
			select {
			case g.ticks <- time.Time{}:
			case <-stop:
				return
			}
		}
	}()
}
