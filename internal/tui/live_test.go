package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/anim"
)

func TestLiveRendererDrawsOnStateChange(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "bubble_sort", 1)

	r.OnSnapshotReplaced([]int{10, 40, 20})
	r.OnStateChanged(anim.Running)

	out := buf.String()
	if !strings.Contains(out, "bubble_sort") || !strings.Contains(out, "[running]") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.Contains(out, string(glyphBar)) {
		t.Error("no bars drawn")
	}
	if r.Frames() != 1 {
		t.Errorf("frames = %d", r.Frames())
	}
}

func TestLiveRendererThrottles(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "x", 1)
	r.OnStateChanged(anim.Running)

	for i := 0; i < 10; i++ {
		r.OnStepEvent(anim.Compare([]int{2, 1}, anim.PaceFull, 0, 1))
		r.OnCountersChanged(anim.Counters{Comparisons: i + 1, CurrentStep: i + 1})
	}
	if r.Frames() != 1 {
		t.Errorf("frames = %d, want throttled to 1", r.Frames())
	}

	r.OnStateChanged(anim.Completed)
	if !strings.Contains(buf.String(), "comparisons=10") {
		t.Error("final frame lacks counters")
	}
}

func TestLiveRendererRoles(t *testing.T) {
	r := NewLiveRenderer(&bytes.Buffer{}, "x", 1)
	r.OnStepEvent(anim.Highlight([]int{3, 1, 2}, anim.RolePivot, anim.PaceNone, 2))
	r.OnStepEvent(anim.Compare([]int{3, 1, 2}, anim.PaceFull, 0))

	if r.glyph(2) != glyphPivot || r.glyph(0) != glyphComparing || r.glyph(1) != glyphBar {
		t.Errorf("glyphs %c %c %c", r.glyph(0), r.glyph(1), r.glyph(2))
	}

	r.OnStepEvent(anim.Clear([]int{3, 1, 2}))
	r.OnStepEvent(anim.MarkSorted([]int{1, 2, 3}, 2))
	if r.glyph(0) != glyphBar || r.glyph(2) != glyphSorted {
		t.Error("clear or mark sorted not applied")
	}

	r.OnStepEvent(anim.Found([]int{1, 2, 3}, 1))
	if r.glyph(1) != glyphFound {
		t.Error("found not drawn")
	}

	r.OnStateChanged(anim.Idle)
	if r.glyph(1) != glyphBar || r.glyph(2) != glyphBar {
		t.Error("idle did not drop highlights")
	}
}

func TestLiveRendererError(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "radix_sort", 10)
	r.OnError(errors.New("negative value"))
	if !strings.Contains(buf.String(), "error: negative value") {
		t.Errorf("error not rendered: %q", buf.String())
	}
}

func TestLiveRendererManyValues(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "x", 1)
	values := make([]int, 200)
	for i := range values {
		values[i] = i - 50
	}
	r.OnSnapshotReplaced(values)
	r.OnStateChanged(anim.Running)
	if r.Frames() != 1 {
		t.Error("no frame for large array")
	}
}
