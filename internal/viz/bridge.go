package viz

import (
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/algoviz/internal/anim"
)

type (
	stepMsg     struct{ ev anim.StepEvent }
	countersMsg struct{ c anim.Counters }
	snapshotMsg struct{ values []int }
	stateMsg    struct{ s anim.State }
	errMsg      struct{ err error }
)

// Bridge forwards renderer callbacks into a running program. Messages sent
// before Attach are dropped.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

func (b *Bridge) forward(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (b *Bridge) OnStepEvent(ev anim.StepEvent)   { b.forward(stepMsg{ev}) }
func (b *Bridge) OnCountersChanged(c anim.Counters) { b.forward(countersMsg{c}) }
func (b *Bridge) OnSnapshotReplaced(values []int) { b.forward(snapshotMsg{slices.Clone(values)}) }
func (b *Bridge) OnStateChanged(s anim.State)     { b.forward(stateMsg{s}) }
func (b *Bridge) OnError(err error)               { b.forward(errMsg{err}) }
