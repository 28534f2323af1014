package viz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/dataset"
)

const (
	defaultWidth    = 110
	defaultHeight   = 32
	sidebarWidth    = 24
	statsWidth      = 34
	barRows         = 16
	historyCapacity = 600
	sizeStep        = 5
)

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Options seeds the first session of the app.
type Options struct {
	Category  anim.Category
	Algorithm anim.Algorithm
	Language  string
	Theme     string
	Size      int
	Values    []int
	Target    *int
}

type (
	sessionMsg struct {
		s   anim.Session
		err error
	}
	runDoneMsg struct{ err error }
)

// App is the Bubble Tea model. It mirrors controller state from Bridge
// messages and never reads the controller from Update or View.
type App struct {
	ctx  context.Context
	ctrl *anim.Controller
	reg  *catalog.Registry
	opts Options

	category  anim.Category
	algorithm anim.Algorithm
	cursor    int
	values    []int
	roles     map[int]anim.Role
	sorted    map[int]bool
	found     int
	notFound  bool
	counters  anim.Counters
	state     anim.State
	speed     int
	size      int
	target    *int
	language  string
	history   []float64

	editing  bool
	editBuf  string
	showCode bool
	showHelp bool
	status   string
	err      error

	width, height int
}

func NewApp(ctx context.Context, ctrl *anim.Controller, reg *catalog.Registry, opts Options) App {
	if opts.Size == 0 {
		opts.Size = 30
	}
	if opts.Language == "" {
		opts.Language = catalog.DefaultLanguage
	}
	if opts.Category == "" {
		opts.Category = anim.Sorting
	}
	s := ctrl.Session()
	return App{
		ctx:       ctx,
		ctrl:      ctrl,
		reg:       reg,
		opts:      opts,
		category:  s.Category,
		algorithm: s.Algorithm,
		roles:     make(map[int]anim.Role),
		sorted:    make(map[int]bool),
		found:     -1,
		speed:     s.Speed,
		size:      opts.Size,
		target:    opts.Target,
		language:  opts.Language,
		showCode:  true,
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

// Init applies Options to the controller.
func (m App) Init() tea.Cmd {
	opts, ctrl := m.opts, m.ctrl
	return m.do(func() error {
		ctrl.SetLanguage(opts.Language)
		if err := ctrl.SelectCategory(opts.Category); err != nil {
			return err
		}
		if opts.Algorithm != "" {
			if err := ctrl.SelectAlgorithm(opts.Algorithm); err != nil {
				return err
			}
		}
		ctrl.SetSearchTarget(opts.Target)
		if len(opts.Values) > 0 {
			return ctrl.LoadArray(opts.Values)
		}
		return ctrl.GenerateArray(opts.Size)
	})
}

// do runs fn off the event loop and reports the resulting session.
func (m App) do(fn func() error) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		err := fn()
		return sessionMsg{s: ctrl.Session(), err: err}
	}
}

func (m App) toggle() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return runDoneMsg{err: ctrl.Toggle(ctx)}
	}
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case stepMsg:
		m.applyStep(msg.ev)
	case countersMsg:
		m.counters = msg.c
		if msg.c.CurrentStep > 0 {
			m.history = append(m.history, float64(msg.c.Comparisons))
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
	case snapshotMsg:
		m.values = msg.values
	case stateMsg:
		m.state = msg.s
		switch msg.s {
		case anim.Idle:
			m.clearMarks()
			m.history = nil
		case anim.Running:
			m.err, m.status = nil, ""
		}
	case errMsg:
		m.err = msg.err
	case sessionMsg:
		m.sync(msg.s)
		m.setErr(msg.err)
	case runDoneMsg:
		var re *anim.RunError
		if !errors.As(msg.err, &re) && !errors.Is(msg.err, context.Canceled) {
			m.setErr(msg.err)
		}
	}
	return m, nil
}

func (m *App) setErr(err error) {
	switch {
	case err == nil:
	case errors.Is(err, anim.ErrStepUnsupported):
		m.status = "single-step is not available yet"
	default:
		m.err = err
	}
}

func (m *App) sync(s anim.Session) {
	m.category, m.algorithm = s.Category, s.Algorithm
	m.values = s.Snapshot
	m.counters = s.Counters
	m.state = s.State
	m.speed = s.Speed
	m.target = s.Target
	if i := slices.Index(m.reg.Algorithms(s.Category), s.Algorithm); i >= 0 {
		m.cursor = i
	}
}

func (m *App) clearMarks() {
	clear(m.roles)
	clear(m.sorted)
	m.found, m.notFound = -1, false
}

func (m *App) applyStep(ev anim.StepEvent) {
	switch ev.Kind {
	case anim.EventCompare, anim.EventHighlight:
		for _, i := range ev.Indices {
			m.roles[i] = ev.Role
		}
	case anim.EventClear:
		clear(m.roles)
	case anim.EventMarkSorted:
		for _, i := range ev.Indices {
			m.sorted[i] = true
		}
	case anim.EventFound:
		clear(m.roles)
		m.found = ev.Index
	case anim.EventNotFound:
		clear(m.roles)
		m.notFound = true
	}
	m.values = ev.Snapshot
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}
	ctrl := m.ctrl
	algorithms := m.reg.Algorithms(m.category)

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case " ":
		return m, m.toggle()
	case "r":
		m.err, m.status = nil, ""
		return m, m.do(ctrl.Reset)
	case "n":
		return m, m.do(ctrl.StepForward)
	case "+", "=":
		level := min(m.speed+1, anim.MaxSpeed)
		return m, m.do(func() error { return ctrl.SetSpeed(level) })
	case "-", "_":
		level := max(m.speed-1, anim.MinSpeed)
		return m, m.do(func() error { return ctrl.SetSpeed(level) })
	case "g":
		size := m.size
		return m, m.do(func() error { return ctrl.GenerateArray(size) })
	case "[", "]":
		if msg.String() == "[" {
			m.size = max(sizeStep, m.size-sizeStep)
		} else {
			m.size = min(dataset.MaxSize, m.size+sizeStep)
		}
		size := m.size
		return m, m.do(func() error { return ctrl.GenerateArray(size) })
	case "tab":
		next := anim.Sorting
		if m.category == anim.Sorting {
			next = anim.Searching
		}
		return m, m.do(func() error { return ctrl.SelectCategory(next) })
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(algorithms)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(algorithms) {
			alg := algorithms[m.cursor]
			return m, m.do(func() error { return ctrl.SelectAlgorithm(alg) })
		}
	case "/":
		if m.category == anim.Searching {
			m.editing, m.editBuf = true, ""
		}
	case "l":
		langs := catalog.Languages()
		if len(langs) > 0 {
			i := slices.Index(langs, m.language)
			m.language = langs[(i+1)%len(langs)]
			lang := m.language
			return m, m.do(func() error { ctrl.SetLanguage(lang); return nil })
		}
	case "v":
		m.showCode = !m.showCode
	case "t":
		NextTheme()
	}
	return m, nil
}

func (m App) editKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyEnter:
		m.editing = false
		t, err := dataset.ParseTarget(m.editBuf)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.target = t
		ctrl := m.ctrl
		return m, m.do(func() error { ctrl.SetSearchTarget(t); return nil })
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || (r == '-' && m.editBuf == "") {
				m.editBuf += string(r)
			}
		}
	}
	return m, nil
}

func (m App) roleColor(i int) lipgloss.Color {
	t := CurrentTheme
	if i == m.found {
		return t.Found
	}
	switch m.roles[i] {
	case anim.RoleComparing:
		return t.Comparing
	case anim.RoleCurrent:
		return t.Current
	case anim.RolePivot:
		return t.Pivot
	}
	if m.sorted[i] {
		return t.Sorted
	}
	return t.Bar
}

// renderBars draws colored block bars, or a Braille canvas when the array
// has more elements than columns.
func (m App) renderBars(width int) string {
	n := len(m.values)
	if n == 0 {
		return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render("(empty array)")
	}
	if n > width {
		c := NewCanvas((n+1)/2, barRows)
		c.Bars(m.values)
		return lipgloss.NewStyle().Foreground(CurrentTheme.Bar).Render(c.String())
	}

	lo, hi := min(0, slices.Min(m.values)), slices.Max(m.values)
	span := max(1, hi-lo)
	w := max(1, width/n)
	cols := make([]lipgloss.Style, n)
	for i := range cols {
		cols[i] = lipgloss.NewStyle().Foreground(m.roleColor(i))
	}

	var b strings.Builder
	for row := 0; row < barRows; row++ {
		base := (barRows - 1 - row) * 8
		for i, v := range m.values {
			level := max(1, (v-lo)*barRows*8/span)
			fill := min(max(level-base, 0), 8)
			cell := strings.Repeat(string(eighths[fill]), max(1, w-1))
			if w > 1 {
				cell += " "
			}
			b.WriteString(cols[i].Render(cell))
		}
		if row < barRows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m App) View() string {
	st := themeStyles(CurrentTheme)

	header := st.title.Render("ALGOVIZ") + "  " + m.viewTabs(st)
	sidebar := m.viewSidebar(st)
	barsWidth := max(20, m.width-sidebarWidth-statsWidth-6)
	bars := lipgloss.NewStyle().Padding(1, 2).Render(m.renderBars(barsWidth))
	stats := m.viewStats(st)

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, bars, stats)

	var b strings.Builder
	b.WriteString(header + "\n" + Separator(max(20, m.width-2)) + "\n")
	b.WriteString(main + "\n")
	if m.showCode {
		b.WriteString(m.viewCode(st) + "\n")
	}
	b.WriteString(m.viewFooter(st))

	if m.showHelp {
		return helpText + "\n\n" + b.String()
	}
	return b.String()
}

func (m App) viewTabs(st styles) string {
	tabs := make([]string, 0, 2)
	for _, c := range anim.Categories() {
		label := " " + strings.ToUpper(string(c)) + " "
		if c == m.category {
			tabs = append(tabs, st.selected.Underline(true).Render(label))
		} else {
			tabs = append(tabs, st.item.Render(label))
		}
	}
	return strings.Join(tabs, "│")
}

func (m App) viewSidebar(st styles) string {
	var b strings.Builder
	for i, alg := range m.reg.Algorithms(m.category) {
		d, _ := m.reg.Describe(m.category, alg)
		name := d.Name
		if !d.Implemented {
			name += " *"
		}
		marker := "  "
		if alg == m.algorithm {
			marker = "● "
		}
		if i == m.cursor {
			b.WriteString(st.selected.Render("▸ "+marker+name) + "\n")
		} else {
			b.WriteString(st.item.Render("  "+marker+name) + "\n")
		}
	}
	return lipgloss.NewStyle().Width(sidebarWidth).Padding(1, 1).Render(b.String())
}

func (m App) viewStats(st styles) string {
	var b strings.Builder

	status := st.value.Render(strings.ToUpper(m.state.String()))
	switch m.state {
	case anim.Running:
		status = st.running.Render("RUNNING")
	case anim.Paused:
		status = st.paused.Render("PAUSED")
	}
	b.WriteString(status + "\n\n")

	row := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Comparisons", fmt.Sprint(m.counters.Comparisons))
	row("Swaps", fmt.Sprint(m.counters.Swaps))
	row("Step", fmt.Sprint(m.counters.CurrentStep))
	row("Speed", fmt.Sprintf("%d/%d", m.speed, anim.MaxSpeed))
	row("Size", fmt.Sprint(len(m.values)))

	if m.category == anim.Searching {
		target := "unset"
		if m.editing {
			target = m.editBuf + "_"
		} else if m.target != nil {
			target = fmt.Sprint(*m.target)
		}
		row("Target", target)
		switch {
		case m.found >= 0:
			row("Result", fmt.Sprintf("found at %d", m.found))
		case m.notFound:
			row("Result", "not found")
		}
	} else if n := len(m.values); n > 0 {
		b.WriteString(st.label.Render("Sorted") + ProgressBar(float64(len(m.sorted))/float64(n), 14) + "\n")
	}

	b.WriteString("\n" + SparklineChart(m.history, statsWidth-6) + "\n")
	return lipgloss.NewStyle().Width(statsWidth).Padding(1, 1).Render(b.String())
}

func (m App) viewCode(st styles) string {
	d, err := m.reg.Describe(m.category, m.algorithm)
	if err != nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(st.title.Render(d.Name) + "  " + st.subtitle.Render(d.Description) + "\n")
	b.WriteString(st.label.Render("Time") + st.value.Render(d.TimeComplexity) + "   ")
	b.WriteString(st.label.Render("Space") + st.value.Render(d.SpaceComplexity) + "\n")
	if !d.Implemented {
		if res, err := m.reg.Resolve(m.category, m.algorithm); err == nil {
			b.WriteString(st.hint.Render(fmt.Sprintf("* animated with %s", res.Runs)) + "\n")
		}
	}
	b.WriteString("\n" + st.key.Render(m.language) + "\n")
	b.WriteString(catalog.CodeSample(m.language, m.algorithm))
	return st.panel.Width(max(40, m.width-4)).Render(b.String())
}

func (m App) viewFooter(st styles) string {
	keys := []struct{ k, v string }{
		{"space", "start/pause"}, {"r", "reset"}, {"+/-", "speed"}, {"g", "new array"},
		{"tab", "category"}, {"enter", "select"}, {"/", "target"}, {"?", "help"}, {"q", "quit"},
	}
	parts := make([]string, len(keys))
	for i, kv := range keys {
		parts[i] = st.key.Render(kv.k) + " " + st.hint.Render(kv.v)
	}
	line := strings.Join(parts, "  ")
	switch {
	case m.err != nil:
		line += "\n" + st.errText.Render(m.err.Error())
	case m.status != "":
		line += "\n" + st.hint.Render(m.status)
	}
	return line
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Start/Pause animation    ║
║  R        - Reset to starting array  ║
║  N        - Step forward             ║
║  +/-      - Change speed             ║
║  G        - Generate new array       ║
║  [ ]      - Shrink/grow array        ║
║  Tab      - Switch category          ║
║  J/K      - Move in algorithm list   ║
║  Enter    - Select algorithm         ║
║  /        - Edit search target       ║
║  L        - Cycle code language      ║
║  V        - Toggle code panel        ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the program and blocks until the user quits. The bridge must
// be the controller's renderer (or part of it).
func Run(ctx context.Context, ctrl *anim.Controller, reg *catalog.Registry, bridge *Bridge, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}
	p := tea.NewProgram(NewApp(ctx, ctrl, reg, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Attach(p.Send)
	defer bridge.Attach(nil)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
