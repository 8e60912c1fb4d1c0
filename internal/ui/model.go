package ui

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ddraigan/diff-tool/internal/config"
	"github.com/Ddraigan/diff-tool/internal/git"
	"github.com/Ddraigan/diff-tool/internal/highlight"
	"github.com/Ddraigan/diff-tool/internal/logging"
	"github.com/Ddraigan/diff-tool/internal/nav"
)

const (
	// Minimum terminal size the layout fits in
	MinWidth  = 52
	MinHeight = 28

	headerHeight = 3
	footerHeight = 10

	tickRate = 250 * time.Millisecond
)

// Loader produces a fresh diff when the watched file changes
type Loader func(ctx context.Context) (git.Diff, error)

// Options configures a Model
type Options struct {
	Target    git.Target
	Status    git.FileStatus
	Diff      git.Diff
	Config    config.Config
	Console   *logging.Console
	Logger    *slog.Logger
	Highlight bool

	// Load re-runs the diff; nil uses git.Load with Target
	Load Loader
	// Changes and WatchErrors come from a file watcher; nil disables reloads
	Changes     <-chan string
	WatchErrors <-chan error
}

type (
	tickMsg        time.Time
	fileChangedMsg struct{ path string }
	watchErrMsg    struct{ err error }
	diffLoadedMsg  struct {
		diff git.Diff
		err  error
	}
)

// Model is the bubbletea model and the only owner of the application state
type Model struct {
	target    git.Target
	status    git.FileStatus
	diff      git.Diff
	oldRows   []string
	newRows   []string
	highlight bool

	cursor    nav.Pair
	oldScroll int
	newScroll int

	keys   keyMap
	styles styles

	console        *logging.Console
	consoleView    viewport.Model
	consoleVersion uint64
	log            *slog.Logger

	load        Loader
	changes     <-chan string
	watchErrors <-chan error

	width    int
	height   int
	ticks    uint64
	quitting bool
}

// New creates a new UI model
func New(opts Options) Model {
	console := opts.Console
	if console == nil {
		console = logging.NewConsole(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(console, logging.Options{})
	}
	keymap := opts.Config.Keymap
	if len(keymap) == 0 {
		keymap = config.DefaultKeymap()
	}
	load := opts.Load
	if load == nil {
		target := opts.Target
		load = func(ctx context.Context) (git.Diff, error) {
			return git.Load(ctx, target)
		}
	}

	m := Model{
		target:      opts.Target,
		status:      opts.Status,
		highlight:   opts.Highlight,
		keys:        newKeyMap(keymap),
		styles:      newStyles(opts.Config.Colors),
		console:     console,
		consoleView: viewport.New(0, 0),
		log:         logger,
		load:        load,
		changes:     opts.Changes,
		watchErrors: opts.WatchErrors,
	}
	m.setDiff(opts.Diff)
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	if m.watchErrors != nil {
		cmds = append(cmds, waitForWatchError(m.watchErrors))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, ok := m.keys.lookup(msg)
		if !ok {
			m.log.Debug("No action associated to key", "key", msg.String())
			m.refreshConsole()
			return m, nil
		}
		return m.run(cmd)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.run(nav.PrevRow)
		case tea.MouseButtonWheelDown:
			return m.run(nav.NextRow)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tickMsg:
		m.ticks++
		m.refreshConsole()
		return m, tick()

	case fileChangedMsg:
		m.log.Info("File changed, reloading", "path", msg.path)
		return m, tea.Batch(m.reload(), waitForChange(m.changes))

	case watchErrMsg:
		m.log.Warn("Watcher error", "err", msg.err)
		return m, waitForWatchError(m.watchErrors)

	case diffLoadedMsg:
		if msg.err != nil {
			m.log.Error("Reload failed", "err", msg.err)
			return m, nil
		}
		m.setDiff(msg.diff)
		added, removed := m.diff.Stats()
		m.log.Info("Diff reloaded", "rows", m.diff.Len(), "added", added, "removed", removed)
		m.refreshConsole()
	}
	return m, nil
}

// run applies a navigation command to both panes
func (m Model) run(cmd nav.Command) (tea.Model, tea.Cmd) {
	m.log.Info("Run action: " + cmd.Description())

	if cmd == nav.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	if m.diff.Empty() {
		return m, nil
	}

	m.cursor.Apply(cmd, len(m.diff.Old), len(m.diff.New), m.diff.LongestIndex())
	m.scrollToCursor()
	m.refreshConsole()
	return m, nil
}

// setDiff replaces the diff wholesale and keeps the selection valid
func (m *Model) setDiff(d git.Diff) {
	wasEmpty := m.diff.Empty()
	m.diff = d
	m.oldRows = m.prepareRows(d.Old)
	m.newRows = m.prepareRows(d.New)

	if wasEmpty && !d.Empty() {
		m.cursor = nav.NewPair()
	}
	m.cursor.Clamp(len(d.Old), len(d.New))
	m.scrollToCursor()
}

// prepareRows renders the content column of each line once per diff
func (m *Model) prepareRows(lines []git.Line) []string {
	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = expandTabs(l.Content)
	}
	if !m.highlight || len(rows) == 0 {
		return rows
	}

	highlighted := highlight.Lines(filepath.Base(m.target.Path), rows)
	for i, l := range lines {
		// changed lines are drawn on a coloured background instead
		if l.Kind == git.Neutral {
			rows[i] = highlighted[i]
		}
	}
	return rows
}

func (m *Model) resize() {
	m.consoleView.Width = max(m.consoleWidth()-2, 0)
	m.consoleView.Height = max(footerHeight-3, 0)
	m.syncConsole(m.console.Version())
	m.scrollToCursor()
}

// refreshConsole copies new log lines into the console pane
func (m *Model) refreshConsole() {
	v := m.console.Version()
	if v == m.consoleVersion {
		return
	}
	m.syncConsole(v)
}

func (m *Model) syncConsole(v uint64) {
	m.consoleVersion = v
	m.consoleView.SetContent(strings.Join(m.console.Lines(), "\n"))
	m.consoleView.GotoBottom()
}

// visibleRows is the number of diff rows each pane can show
func (m Model) visibleRows() int {
	// pane border (2) and pane title (1)
	return max(m.height-headerHeight-footerHeight-3, 1)
}

func (m *Model) scrollToCursor() {
	visible := m.visibleRows()
	m.oldScroll = scrollFor(m.oldScroll, m.cursor.Old.Index(), visible, len(m.diff.Old))
	m.newScroll = scrollFor(m.newScroll, m.cursor.New.Index(), visible, len(m.diff.New))
}

// scrollFor returns the first visible row so that cursor stays in view
func scrollFor(offset, cursor, visible, total int) int {
	if cursor >= 0 {
		if cursor < offset {
			offset = cursor
		} else if cursor >= offset+visible {
			offset = cursor - visible + 1
		}
	}
	return max(min(offset, total-visible), 0)
}

// TooSmall reports whether the terminal is below the minimum size
func (m Model) TooSmall() bool {
	return m.width < MinWidth || m.height < MinHeight
}

// Cursor returns the selection of both panes
func (m Model) Cursor() nav.Pair {
	return m.cursor
}

// Diff returns the diff being shown
func (m Model) Diff() git.Diff {
	return m.diff
}

// Quitting reports whether Quit was run
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) reload() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		d, err := load(context.Background())
		return diffLoadedMsg{diff: d, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{path: path}
	}
}

func waitForWatchError(ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return watchErrMsg{err: err}
	}
}
