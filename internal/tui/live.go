// Package tui renders animations as plain ANSI frames for terminals
// that are not driven by the interactive app.
package tui

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/anim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Bar glyphs by role.
const (
	glyphBar       = '#'
	glyphComparing = '?'
	glyphCurrent   = '*'
	glyphPivot     = 'P'
	glyphSorted    = '='
	glyphFound     = '@'
)

// LiveRenderer draws one vertical bar per element and a counter line. It
// implements anim.Renderer; frames are throttled to frameRate except on
// state changes, which always draw.
type LiveRenderer struct {
	mu        sync.Mutex
	out       io.Writer
	title     string
	frameRate int
	lastFrame time.Time
	canvas    [][]rune

	values   []int
	roles    map[int]anim.Role
	sorted   map[int]bool
	found    int
	notFound bool
	counters anim.Counters
	state    anim.State
	err      error
	frames   int
}

func NewLiveRenderer(out io.Writer, title string, frameRate int) *LiveRenderer {
	if out == nil {
		out = os.Stdout
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		title:     title,
		frameRate: frameRate,
		canvas:    canvas,
		roles:     make(map[int]anim.Role),
		sorted:    make(map[int]bool),
		found:     -1,
	}
}

func (r *LiveRenderer) OnStepEvent(ev anim.StepEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Kind {
	case anim.EventCompare, anim.EventHighlight:
		for _, i := range ev.Indices {
			r.roles[i] = ev.Role
		}
	case anim.EventClear:
		clear(r.roles)
	case anim.EventMarkSorted:
		for _, i := range ev.Indices {
			r.sorted[i] = true
		}
	case anim.EventFound:
		clear(r.roles)
		r.found = ev.Index
	case anim.EventNotFound:
		clear(r.roles)
		r.notFound = true
	}
	r.values = slices.Clone(ev.Snapshot)
}

func (r *LiveRenderer) OnCountersChanged(c anim.Counters) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = c
	r.draw(false)
}

func (r *LiveRenderer) OnSnapshotReplaced(values []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = slices.Clone(values)
}

func (r *LiveRenderer) OnStateChanged(s anim.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
	if s == anim.Idle {
		clear(r.roles)
		clear(r.sorted)
		r.found, r.notFound, r.err = -1, false, nil
	}
	r.draw(true)
}

func (r *LiveRenderer) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	r.draw(true)
}

// Frames reports how many frames were written.
func (r *LiveRenderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *LiveRenderer) draw(force bool) {
	if !force && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.clear()
	r.drawBars()
	r.render()
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) glyph(i int) rune {
	if i == r.found {
		return glyphFound
	}
	switch r.roles[i] {
	case anim.RoleComparing:
		return glyphComparing
	case anim.RoleCurrent:
		return glyphCurrent
	case anim.RolePivot:
		return glyphPivot
	}
	if r.sorted[i] {
		return glyphSorted
	}
	return glyphBar
}

// drawBars scales values into the canvas. With more elements than columns,
// neighbouring elements share a column and the last one drawn wins.
func (r *LiveRenderer) drawBars() {
	n := len(r.values)
	if n == 0 {
		return
	}
	lo, hi := min(0, slices.Min(r.values)), slices.Max(r.values)
	span := max(1, hi-lo)

	bw := max(1, width/n)
	for i, v := range r.values {
		x0 := i * width / n
		h := max(1, (v-lo)*height/span)
		c := r.glyph(i)
		for dx := 0; dx < bw-1 || dx == 0; dx++ {
			for y := height - 1; y >= height-h; y-- {
				r.set(x0+dx, y, c)
			}
		}
	}
}

func (r *LiveRenderer) render() {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  [%s]\n", r.title, r.state))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  comparisons=%d swaps=%d step=%d\n",
		r.counters.Comparisons, r.counters.Swaps, r.counters.CurrentStep))

	switch {
	case r.err != nil:
		b.WriteString(fmt.Sprintf("  error: %v\n", r.err))
	case r.found >= 0:
		b.WriteString(fmt.Sprintf("  found at index %d\n", r.found))
	case r.notFound:
		b.WriteString("  not found\n")
	}

	fmt.Fprint(r.out, b.String())
	r.frames++
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
