package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bzl/internal/bazel"
	"bzl/internal/cache"
)

// Logger is the minimal diagnostic logging interface the TUI uses.
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// screen identifies which view the model is presenting.
type screen int

const (
	screenPackages screen = iota
	screenTargets
	screenKinds
)

// Result is what the browser hands back to the CLI when the user
// confirms a selection. Target may be empty for bare verbs like clean.
type Result struct {
	Target string
	Verb   string
}

// Options configures the interactive browser.
type Options struct {
	Index         bazel.Index
	Scope         string
	Verb          string
	Kinds         []string
	Client        *bazel.Client
	Store         cache.Store
	CacheAge      string
	OnKindsChange func([]string)
	Logger        Logger
}

type kindOption struct {
	name    string
	checked bool
}

// Model is the single bubbletea model driving all screens. Blocking work
// (queries) runs in tea.Cmd goroutines; results come back as messages so
// shared state is only ever touched on the update loop.
type Model struct {
	session *Session
	client  *bazel.Client
	store   cache.Store
	logger  Logger

	screen   screen
	prev     screen
	packages *Selector
	targets  *Selector
	pkg      string

	filter textinput.Model
	spin   spinner.Model

	// refreshing coalesces concurrent refresh requests: at most one
	// re-query is in flight, later requests are dropped.
	refreshing bool
	status     string

	kindsLoading bool
	kindOptions  []kindOption
	kindCursor   int

	width  int
	height int

	result *Result
}

// NewModel builds the browser model over an already-discovered index.
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter"
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	status := ""
	if opts.CacheAge != "" {
		status = "cached " + opts.CacheAge
	}

	session := NewSession(opts.Scope, opts.Verb, opts.Kinds, opts.Index, opts.OnKindsChange)
	return Model{
		session:  session,
		client:   opts.Client,
		store:    opts.Store,
		logger:   logger,
		packages: NewSelector(opts.Index.Packages()),
		filter:   ti,
		spin:     sp,
		status:   status,
		width:    80,
		height:   24,
	}
}

// Init satisfies the tea.Model interface.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update satisfies the tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.refreshing && !m.kindsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case refreshDoneMsg:
		return m.applyRefresh(msg)

	case kindsLoadedMsg:
		return m.applyKinds(msg)

	case tea.KeyMsg:
		if m.screen == screenKinds {
			return m.updateKindScreen(msg)
		}
		return m.updateBrowseScreen(msg)
	}

	return m, nil
}

// selector returns the list the current browse screen operates on.
func (m Model) selector() *Selector {
	if m.screen == screenTargets {
		return m.targets
	}
	return m.packages
}

func (m Model) updateBrowseScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.result = nil
		return m, tea.Quit

	case "esc":
		if m.screen == screenTargets {
			m.screen = screenPackages
			m.filter.SetValue(m.packages.Filter())
			return m, nil
		}
		m.result = nil
		return m, tea.Quit

	case "up":
		m.selector().MoveUp()
		return m, nil

	case "down":
		m.selector().MoveDown()
		return m, nil

	case "enter":
		return m.confirm()

	case "ctrl+v":
		m.session.CycleVerb()
		return m, nil

	case "ctrl+e":
		m.result = &Result{Verb: "clean"}
		return m, tea.Quit

	case "ctrl+x":
		m.result = &Result{Verb: "clean --expunge"}
		return m, tea.Quit

	case "ctrl+f":
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		m.status = "refreshing…"
		return m, tea.Batch(m.spin.Tick, m.refreshCmd())

	case "ctrl+k":
		m.prev = m.screen
		m.screen = screenKinds
		m.kindsLoading = true
		m.kindOptions = nil
		m.kindCursor = 0
		return m, tea.Batch(m.spin.Tick, m.loadKindsCmd())
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if value := m.filter.Value(); value != before {
		m.selector().SetFilter(value)
	}
	return m, cmd
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	item, ok := m.selector().Selected()
	if !ok {
		return m, nil
	}

	if m.screen == screenPackages {
		m.pkg = item
		m.targets = NewSelector(m.session.Index.Targets(item))
		m.filter.SetValue("")
		m.screen = screenTargets
		return m, nil
	}

	m.result = &Result{Target: m.pkg + ":" + item, Verb: m.session.Verb}
	return m, tea.Quit
}

func (m Model) updateKindScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.result = nil
		return m, tea.Quit

	case "esc":
		m.screen = m.prev
		return m, nil

	case "up":
		if m.kindCursor > 0 {
			m.kindCursor--
		}
		return m, nil

	case "down":
		if m.kindCursor < len(m.kindOptions)-1 {
			m.kindCursor++
		}
		return m, nil

	case " ":
		if len(m.kindOptions) > 0 {
			m.kindOptions[m.kindCursor].checked = !m.kindOptions[m.kindCursor].checked
		}
		return m, nil

	case "enter":
		var selected []string
		for _, opt := range m.kindOptions {
			if opt.checked {
				selected = append(selected, opt.name)
			}
		}
		if len(selected) == 0 {
			selected = []string{"genrule"}
		}
		m.screen = m.prev
		if m.session.SetKinds(selected) && !m.refreshing {
			m.refreshing = true
			m.status = "refreshing…"
			return m, tea.Batch(m.spin.Tick, m.refreshCmd())
		}
		return m, nil
	}

	return m, nil
}

// refreshCmd busts the cache record for the current identity and re-runs
// the discovery query off the event loop. There is no cancellation; a
// started query runs to completion.
func (m Model) refreshCmd() tea.Cmd {
	client := m.client
	store := m.store
	scope := m.session.Scope
	kinds := append([]string(nil), m.session.Kinds...)
	host := ""
	if client != nil && client.Endpoint != nil {
		host = client.Endpoint.Host
	}

	return func() tea.Msg {
		store.Bust(host, scope, kinds)
		idx, err := client.Query(context.Background(), scope, kinds)
		if err == nil && !idx.Empty() {
			store.Save(host, scope, kinds, idx)
		}
		return refreshDoneMsg{index: idx, err: err}
	}
}

func (m Model) loadKindsCmd() tea.Cmd {
	client := m.client
	scope := m.session.Scope
	return func() tea.Msg {
		kinds, err := client.Kinds(context.Background(), scope)
		return kindsLoadedMsg{kinds: kinds, err: err}
	}
}

// applyRefresh folds a finished background query back into shared state.
// On failure the old index is kept.
func (m Model) applyRefresh(msg refreshDoneMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false

	if msg.err != nil {
		m.logger.Printf("refresh failed: %v", msg.err)
		m.status = "refresh failed, showing stale results"
		return m, nil
	}
	if msg.index.Empty() {
		m.logger.Printf("refresh returned no targets for scope %s", m.session.Scope)
		m.status = "no targets found, showing stale results"
		return m, nil
	}

	m.session.SetIndex(msg.index)
	m.filter.SetValue("")
	m.packages.SetFilter("")
	m.packages.SetSource(msg.index.Packages())
	m.status = ""

	if m.screen == screenTargets {
		rules := msg.index.Targets(m.pkg)
		if len(rules) == 0 {
			// The package vanished; fall back to the package list.
			m.screen = screenPackages
			return m, nil
		}
		m.targets.SetFilter("")
		m.targets.SetSource(rules)
	}
	return m, nil
}

// applyKinds populates the kind-select screen, merging the enumerated
// kinds with whatever is currently selected. On failure only the current
// selection is offered.
func (m Model) applyKinds(msg kindsLoadedMsg) (tea.Model, tea.Cmd) {
	m.kindsLoading = false

	all := msg.kinds
	if msg.err != nil {
		m.logger.Printf("kind enumeration failed: %v", msg.err)
		all = nil
	}

	seen := map[string]bool{}
	for _, k := range all {
		seen[k] = true
	}
	for _, k := range m.session.Kinds {
		seen[k] = true
	}

	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)

	current := map[string]bool{}
	for _, k := range m.session.Kinds {
		current[k] = true
	}

	m.kindOptions = make([]kindOption, len(names))
	for i, name := range names {
		m.kindOptions[i] = kindOption{name: name, checked: current[name]}
	}
	m.kindCursor = 0
	return m, nil
}

// View satisfies the tea.Model interface.
func (m Model) View() string {
	if m.screen == screenKinds {
		return m.viewKindScreen()
	}
	return m.viewBrowseScreen()
}

const chromeRows = 4 // header, breadcrumb, filter bar, help line

func (m Model) listHeight() int {
	h := m.height - chromeRows
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) viewBrowseScreen() string {
	var b strings.Builder

	// Header: app name, context badge, verb badge.
	ctx := ScopeBadgeStyle.Render(m.session.Scope)
	if m.client != nil && m.client.Endpoint != nil {
		ctx = SSHBadgeStyle.Render(m.client.Endpoint.Label())
	}
	b.WriteString(TitleStyle.Render("bzl"))
	b.WriteString("  ")
	b.WriteString(ctx)
	b.WriteString(" ")
	b.WriteString(VerbStyle(m.session.Verb).Render(strings.ToUpper(m.session.Verb)))
	b.WriteByte('\n')

	// Breadcrumb with match counters and status.
	sel := m.selector()
	crumb := fmt.Sprintf("Packages  %d/%d", sel.Len(), sel.Total())
	if m.screen == screenTargets {
		crumb = fmt.Sprintf("Packages > %s  %d/%d targets", m.pkg, sel.Len(), sel.Total())
	}
	if m.refreshing {
		crumb += "  " + m.spin.View() + m.status
	} else if m.status != "" {
		crumb += "  " + m.status
	}
	b.WriteString(FaintStyle.Render(crumb))
	b.WriteByte('\n')

	// List with virtual scrolling.
	height := m.listHeight()
	rows := sel.Viewport(height)
	if len(rows) == 0 {
		b.WriteString(EmptyStyle.Render("  (no matches)"))
		b.WriteByte('\n')
		for i := 1; i < height; i++ {
			b.WriteByte('\n')
		}
	} else {
		for _, row := range rows {
			label := row.Item
			if m.screen == screenPackages {
				label = m.packageLabel(row.Item)
			}
			if row.Selected {
				b.WriteString(SelectedRowStyle.Render(" ▶ " + label))
			} else {
				b.WriteString("   " + label)
			}
			b.WriteByte('\n')
		}
		for i := len(rows); i < height; i++ {
			b.WriteByte('\n')
		}
	}

	// Filter bar and help line.
	b.WriteString(FaintStyle.Render("Filter: "))
	b.WriteString(m.filter.View())
	b.WriteByte('\n')
	b.WriteString(FaintStyle.Render("enter select · ctrl+v cmd · ctrl+f refresh · ctrl+k kinds · ctrl+e clean · esc back"))
	return b.String()
}

// packageLabel appends the target count to a package row.
func (m Model) packageLabel(pkg string) string {
	count := len(m.session.Index.Targets(pkg))
	noun := "targets"
	if count == 1 {
		noun = "target"
	}
	return fmt.Sprintf("%-48s %s", pkg, FaintStyle.Render(fmt.Sprintf("%d %s", count, noun)))
}

func (m Model) viewKindScreen() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Select Rule Kinds"))
	b.WriteByte('\n')
	b.WriteString(FaintStyle.Render("space toggle · enter apply · esc cancel"))
	b.WriteString("\n\n")

	if m.kindsLoading {
		b.WriteString(m.spin.View())
		b.WriteString(" enumerating rule kinds…\n")
		return b.String()
	}

	for i, opt := range m.kindOptions {
		mark := "[ ]"
		if opt.checked {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, opt.name)
		if i == m.kindCursor {
			b.WriteString(SelectedRowStyle.Render(" ▶ " + line))
		} else {
			b.WriteString("   " + line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Run launches the interactive browser and blocks until the user
// confirms a selection or quits. A nil Result means quit-without-choice.
func Run(opts Options) (*Result, error) {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if fm, ok := final.(Model); ok {
		return fm.result, nil
	}
	return nil, nil
}
