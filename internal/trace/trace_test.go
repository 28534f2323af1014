package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/algoviz/internal/anim"
)

func feed(r *Recorder, events ...anim.StepEvent) {
	c := anim.Counters{}
	for _, ev := range events {
		c.CurrentStep++
		switch ev.Kind {
		case anim.EventCompare:
			c.Comparisons++
		case anim.EventMutate:
			if ev.Swap {
				c.Swaps++
			}
		}
		r.OnStepEvent(ev)
		if ev.Kind == anim.EventMutate {
			r.OnSnapshotReplaced(ev.Snapshot)
		}
		r.OnCountersChanged(c)
	}
}

func sample() *Recorder {
	r := NewRecorder()
	r.OnStateChanged(anim.Running)
	feed(r,
		anim.Compare([]int{3, 1}, anim.PaceFull, 0, 1),
		anim.Mutate([]int{1, 3}, true, anim.PaceHalf),
		anim.Clear([]int{1, 3}),
		anim.MarkSorted([]int{1, 3}, 0, 1),
	)
	r.OnStateChanged(anim.Completed)
	return r
}

func TestRecorderEntries(t *testing.T) {
	r := sample()
	entries := r.Entries()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Step != i+1 {
			t.Errorf("entry %d: step %d", i, e.Step)
		}
	}
	if entries[1].Kind != "mutate" || !entries[1].Swap || entries[1].Counters.Swaps != 1 {
		t.Errorf("unexpected mutate entry %+v", entries[1])
	}
	if c := r.Counters(); c.Comparisons != 1 || c.Swaps != 1 || c.CurrentStep != 4 {
		t.Errorf("counters = %+v", c)
	}
	if s := r.Snapshot(); len(s) != 2 || s[0] != 1 {
		t.Errorf("snapshot = %v", s)
	}
	if st := r.States(); len(st) != 2 || st[1] != anim.Completed {
		t.Errorf("states = %v", st)
	}
	if _, _, decided := r.Outcome(); decided {
		t.Error("sort run should have no search outcome")
	}

	r.Reset()
	if len(r.Entries()) != 0 || r.Counters() != (anim.Counters{}) {
		t.Error("reset kept data")
	}
}

func TestRecorderOutcome(t *testing.T) {
	r := NewRecorder()
	feed(r, anim.Compare([]int{1, 3, 5}, anim.PaceFull, 1), anim.Found([]int{1, 3, 5}, 1))
	idx, found, decided := r.Outcome()
	if !decided || !found || idx != 1 {
		t.Errorf("got %d %v %v", idx, found, decided)
	}
	if e := r.Entries()[1]; e.Index == nil || *e.Index != 1 {
		t.Errorf("found entry index = %v", e.Index)
	}

	r = NewRecorder()
	feed(r, anim.NotFound(nil))
	if _, found, decided := r.Outcome(); !decided || found {
		t.Errorf("not found: found=%v decided=%v", found, decided)
	}
}

func TestSkipSnapshots(t *testing.T) {
	r := NewRecorder()
	r.SkipSnapshots = true
	feed(r, anim.Compare([]int{3, 1}, anim.PaceFull, 0, 1))
	if r.Entries()[0].Snapshot != nil {
		t.Error("snapshot kept")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	entries := sample().Entries()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(entries) {
		t.Fatalf("expected %d rows, got %d", len(entries), len(got))
	}
	for i := range got {
		if got[i].Kind != entries[i].Kind || got[i].Counters != entries[i].Counters {
			t.Errorf("row %d: got %+v, want %+v", i, got[i], entries[i])
		}
	}
	if len(got[3].Indices) != 2 || got[3].Snapshot[1] != 3 {
		t.Errorf("list columns lost: %+v", got[3])
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	r := sample()
	tr := &Trace{
		Meta: Meta{
			ID: "abc", Category: anim.Sorting, Algorithm: anim.BubbleSort, Runs: anim.BubbleSort,
			Timestamp: time.Now(), Speed: 6, Input: []int{3, 1}, Final: r.Snapshot(),
			State: "completed", Counters: r.Counters(),
		},
		Entries: r.Entries(),
	}

	runID, err := st.Save(tr)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Algorithm != anim.BubbleSort || meta.Counters.Swaps != 1 {
		t.Errorf("unexpected meta %+v", meta)
	}

	entries, err := st.LoadEntries(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("expected 4 entries, got %d", len(entries))
	}

	runs, err := st.List()
	if err != nil || len(runs) != 1 {
		t.Errorf("list = %v, %v", runs, err)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(t.TempDir() + "/missing").List()
	if err != nil || len(runs) != 0 {
		t.Errorf("got %v, %v", runs, err)
	}
}

func TestWriteJSON(t *testing.T) {
	tr := &Trace{Meta: Meta{ID: "xyz", Algorithm: anim.MergeSort}, Entries: sample().Entries()}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, tr); err != nil {
		t.Fatal(err)
	}
	var decoded Trace
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Meta.ID != "xyz" || len(decoded.Entries) != 4 {
		t.Errorf("decoded %+v", decoded.Meta)
	}
}

func TestSnapshotSVG(t *testing.T) {
	svg := SnapshotSVG([]int{10, 50, 30}, []int{1}, 300, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("malformed svg")
	}
	if n := strings.Count(svg, "<title>"); n != 3 {
		t.Errorf("expected 3 bars, got %d", n)
	}
	if !strings.Contains(svg, barMarked) {
		t.Error("marked bar not highlighted")
	}

	if empty := SnapshotSVG(nil, nil, 10, 10); !strings.HasSuffix(empty, "</svg>") {
		t.Error("empty snapshot svg malformed")
	}
}

func TestCountersSVGAndChart(t *testing.T) {
	entries := sample().Entries()
	if svg := CountersSVG(entries, 200, 100, "#fff"); !strings.Contains(svg, "<path") {
		t.Error("missing path")
	}
	if CountersSVG(entries[:1], 200, 100, "#fff") != "" {
		t.Error("single entry should not plot")
	}
	if chart := Chart(entries, 40, 5); chart == "" {
		t.Error("empty chart")
	}
	if Chart(nil, 40, 5) != "" {
		t.Error("chart of nothing")
	}
}

func TestSummary(t *testing.T) {
	idx := 2
	s := Summary(Meta{Algorithm: anim.JumpSearch, Runs: anim.LinearSearch, Fallback: true, Outcome: "found", Found: &idx,
		Counters: anim.Counters{Comparisons: 3, CurrentStep: 7}})
	for _, want := range []string{"linear_search", "3 comparisons", "fallback for jump_search", "index 2"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary %q missing %q", s, want)
		}
	}
}
