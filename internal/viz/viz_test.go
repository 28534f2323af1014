package viz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/dataset"
)

func newTestApp(t *testing.T, opts Options) App {
	t.Helper()
	reg := catalog.NewRegistry()
	gen, err := dataset.NewGenerator(10, 210, dataset.Random, 1)
	if err != nil {
		t.Fatal(err)
	}
	ctrl := anim.NewController(reg, &Bridge{},
		anim.WithGenerator(gen),
		anim.WithClock(anim.InstantClock{}),
		anim.WithPacing(anim.Pacing{}))

	m := NewApp(context.Background(), ctrl, reg, opts)
	return apply(t, m, m.Init())
}

// apply runs cmd synchronously and feeds its message back into the model.
func apply(t *testing.T, m App, cmd tea.Cmd) App {
	t.Helper()
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	return next.(App)
}

func press(t *testing.T, m App, key string) (App, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(App), cmd
}

func TestBridgeDropsUntilAttached(t *testing.T) {
	var b Bridge
	b.OnStateChanged(anim.Running)

	var got []tea.Msg
	b.Attach(func(msg tea.Msg) { got = append(got, msg) })

	values := []int{3, 1, 2}
	b.OnSnapshotReplaced(values)
	b.OnCountersChanged(anim.Counters{Comparisons: 1})
	b.OnError(errors.New("boom"))
	values[0] = 99

	if len(got) != 3 {
		t.Fatalf("got %d messages, want 3", len(got))
	}
	snap, ok := got[0].(snapshotMsg)
	if !ok {
		t.Fatalf("first message = %T", got[0])
	}
	if snap.values[0] != 3 {
		t.Errorf("snapshot aliases caller slice: %v", snap.values)
	}

	b.Attach(nil)
	b.OnStateChanged(anim.Idle)
	if len(got) != 3 {
		t.Error("message forwarded after detach")
	}
}

func TestInitLoadsValues(t *testing.T) {
	m := newTestApp(t, Options{Values: []int{5, 3, 8, 1}})

	if m.err != nil {
		t.Fatalf("init error: %v", m.err)
	}
	if len(m.values) != 4 || m.values[2] != 8 {
		t.Errorf("values = %v", m.values)
	}
	if m.category != anim.Sorting || m.algorithm != anim.BubbleSort {
		t.Errorf("selection = %s/%s", m.category, m.algorithm)
	}
	if m.state != anim.Idle {
		t.Errorf("state = %s", m.state)
	}
}

func TestInitGeneratesArray(t *testing.T) {
	m := newTestApp(t, Options{Algorithm: anim.HeapSort, Size: 12})
	if len(m.values) != 12 {
		t.Errorf("generated %d values, want 12", len(m.values))
	}
	if m.algorithm != anim.HeapSort || m.cursor != 5 {
		t.Errorf("algorithm %s at cursor %d", m.algorithm, m.cursor)
	}
}

func TestStepMessagesMarkBars(t *testing.T) {
	m := newTestApp(t, Options{Values: []int{5, 3, 8, 1}})
	snap := []int{3, 5, 8, 1}

	next, _ := m.Update(stepMsg{anim.Compare(snap, anim.PaceFull, 0, 1)})
	m = next.(App)
	if m.roles[0] != anim.RoleComparing || m.roles[1] != anim.RoleComparing {
		t.Errorf("roles = %v", m.roles)
	}
	if m.values[0] != 3 {
		t.Errorf("values not taken from event: %v", m.values)
	}

	next, _ = m.Update(stepMsg{anim.MarkSorted(snap, 3)})
	m = next.(App)
	next, _ = m.Update(stepMsg{anim.Clear(snap)})
	m = next.(App)
	if len(m.roles) != 0 {
		t.Errorf("clear left roles %v", m.roles)
	}
	if !m.sorted[3] {
		t.Error("index 3 not marked sorted")
	}

	next, _ = m.Update(stateMsg{anim.Idle})
	m = next.(App)
	if len(m.sorted) != 0 || m.found != -1 {
		t.Error("idle did not clear marks")
	}
}

func TestFoundAndNotFound(t *testing.T) {
	m := newTestApp(t, Options{Category: anim.Searching, Values: []int{1, 3, 5, 8}})

	next, _ := m.Update(stepMsg{anim.Found([]int{1, 3, 5, 8}, 2)})
	m = next.(App)
	if m.found != 2 {
		t.Errorf("found = %d", m.found)
	}
	if !strings.Contains(m.View(), "found at 2") {
		t.Error("view does not report the hit")
	}

	next, _ = m.Update(stateMsg{anim.Idle})
	m = next.(App)
	next, _ = m.Update(stepMsg{anim.NotFound([]int{1, 3, 5, 8})})
	m = next.(App)
	if !m.notFound || !strings.Contains(m.View(), "not found") {
		t.Error("miss not shown")
	}
}

func TestCountersFeedHistory(t *testing.T) {
	m := newTestApp(t, Options{Values: []int{2, 1}})
	for i := 1; i <= 3; i++ {
		next, _ := m.Update(countersMsg{anim.Counters{Comparisons: i, CurrentStep: i}})
		m = next.(App)
	}
	if len(m.history) != 3 || m.counters.Comparisons != 3 {
		t.Errorf("history = %v counters = %+v", m.history, m.counters)
	}
}

func TestKeysDriveController(t *testing.T) {
	m := newTestApp(t, Options{Values: []int{5, 3, 8, 1}})

	m, cmd := press(t, m, "+")
	m = apply(t, m, cmd)
	if m.speed != anim.DefaultSpeed+1 {
		t.Errorf("speed = %d", m.speed)
	}

	m, cmd = press(t, m, "j")
	if cmd != nil || m.cursor != 1 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	m, cmd = press(t, m, "enter")
	m = apply(t, m, cmd)
	if m.algorithm != anim.SelectionSort {
		t.Errorf("algorithm = %s", m.algorithm)
	}

	m, cmd = press(t, m, "tab")
	m = apply(t, m, cmd)
	if m.category != anim.Searching || m.algorithm != anim.LinearSearch {
		t.Errorf("after tab: %s/%s", m.category, m.algorithm)
	}

	m, cmd = press(t, m, "]")
	m = apply(t, m, cmd)
	if len(m.values) != 35 {
		t.Errorf("size after grow = %d", len(m.values))
	}
}

func TestStepForwardShowsStatus(t *testing.T) {
	m := newTestApp(t, Options{Values: []int{2, 1}})
	m, cmd := press(t, m, "n")
	m = apply(t, m, cmd)
	if m.err != nil || m.status == "" {
		t.Errorf("err = %v status = %q", m.err, m.status)
	}
}

func TestToggleRunsToCompletion(t *testing.T) {
	m := newTestApp(t, Options{Values: []int{5, 3, 8, 1}})
	m, cmd := press(t, m, " ")
	if cmd == nil {
		t.Fatal("space returned no command")
	}
	msg := cmd()
	done, ok := msg.(runDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("run finished with %#v", msg)
	}
	if s := m.ctrl.Session(); s.State != anim.Completed || s.Comparisons != 6 {
		t.Errorf("session = %s with %d comparisons", s.State, s.Comparisons)
	}
}

func TestEditTarget(t *testing.T) {
	m := newTestApp(t, Options{Category: anim.Searching, Values: []int{1, 3, 5, 8}})

	m, _ = press(t, m, "/")
	if !m.editing {
		t.Fatal("not editing after /")
	}
	m, _ = press(t, m, "5")
	m, _ = press(t, m, "x")
	m, _ = press(t, m, "9")
	m, _ = press(t, m, "backspace")
	m, cmd := press(t, m, "enter")
	m = apply(t, m, cmd)
	if m.editing || m.target == nil || *m.target != 5 {
		t.Errorf("target = %v editing = %v", m.target, m.editing)
	}
	if s := m.ctrl.Session(); s.Target == nil || *s.Target != 5 {
		t.Error("target not pushed to controller")
	}

	m, _ = press(t, m, "/")
	m, _ = press(t, m, "7")
	m, _ = press(t, m, "esc")
	if m.editing || *m.target != 5 {
		t.Error("escape changed the target")
	}
}

func TestViewShowsCodeAndDescriptor(t *testing.T) {
	m := newTestApp(t, Options{Values: []int{5, 3, 8, 1}})
	out := m.View()
	for _, want := range []string{"ALGOVIZ", "Bubble Sort", "bubbleSort", "Comparisons"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = press(t, m, "v")
	if strings.Contains(m.View(), "bubbleSort") {
		t.Error("code panel still visible after v")
	}

	m, _ = press(t, m, "?")
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay missing")
	}
}

func TestViewMarksFallback(t *testing.T) {
	reg := catalog.NewRegistry(catalog.Baseline())
	ctrl := anim.NewController(reg, nil)
	m := NewApp(context.Background(), ctrl, reg, Options{Algorithm: anim.HeapSort, Values: []int{2, 1}})
	m = apply(t, m, m.Init())

	out := m.View()
	if !strings.Contains(out, "Heap Sort *") {
		t.Error("unimplemented algorithm not starred in list")
	}
	if !strings.Contains(out, "animated with bubble_sort") {
		t.Error("fallback note missing")
	}
}

func TestRenderBarsUsesCanvasWhenNarrow(t *testing.T) {
	m := newTestApp(t, Options{Values: []int{1, 2, 3, 4, 5, 6, 7, 8}})
	out := m.renderBars(4)
	if !strings.ContainsRune(out, '⣀') && !strings.ContainsRune(out, '⣿') {
		t.Errorf("expected braille output, got %q", out)
	}
	if rows := strings.Count(m.renderBars(80), "\n") + 1; rows != barRows {
		t.Errorf("block bars have %d rows", rows)
	}
}

func TestCanvasBars(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Bars([]int{0, 4, 4, 4})
	got := []rune(c.String())
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[1] != 0x28FF {
		t.Errorf("full cell = %U", got[1])
	}
	c.Clear()
	if c.String() != "⠀⠀" {
		t.Error("clear left dots")
	}
}

func TestThemeCycle(t *testing.T) {
	start := CurrentTheme.Name
	seen := map[string]bool{start: true}
	for range ThemeNames() {
		NextTheme()
		seen[CurrentTheme.Name] = true
	}
	if CurrentTheme.Name != start {
		t.Errorf("cycle ended on %s", CurrentTheme.Name)
	}
	if len(seen) != len(ThemeNames()) {
		t.Errorf("visited %d themes", len(seen))
	}
	SetTheme("ocean")
	if CurrentTheme.Name != "ocean" {
		t.Errorf("SetTheme(ocean) gave %s", CurrentTheme.Name)
	}
	SetTheme(start)
}
