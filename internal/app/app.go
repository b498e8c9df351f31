// Package app implements the Bubbletea state machine that sits between the
// scanner/cache layer and the render layer: modes, navigation, the
// multi-selection set, and delete orchestration.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/dux/internal/cache"
	"github.com/sadopc/dux/internal/scanner"
	"github.com/sadopc/dux/internal/tree"
	"github.com/sadopc/dux/internal/ui/style"
	"github.com/sadopc/dux/internal/views"
)

// tickInterval is the UI's event-poll cadence, matching spec's recommended
// 50ms tick for draining non-blocking result channels.
const tickInterval = 50 * time.Millisecond

// Mode is the app's current top-level state.
type Mode int

const (
	ModeScanning Mode = iota
	ModeFinalizing
	ModeBrowsing
	ModeHelp
	ModeConfirmDelete
	ModeConfirmMultiDelete
	ModeMultiDeleting
)

// ViewKind selects which derived projection is on screen while Browsing.
type ViewKind int

const (
	ViewTree ViewKind = iota
	ViewLargeFiles
	ViewArtifacts
	ViewFileTypes
)

// cursorPos is the (selected_index, scroll_offset) pair spec.md §4.5
// requires to be tracked independently per view.
type cursorPos struct {
	selected int
	offset   int
}

func (c *cursorPos) clamp(count int) {
	if c.selected >= count {
		c.selected = count - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
	if c.offset > c.selected {
		c.offset = c.selected
	}
}

func (c *cursorPos) ensureVisible(visibleHeight int) {
	if visibleHeight <= 0 {
		return
	}
	if c.selected < c.offset {
		c.offset = c.selected
	} else if c.selected >= c.offset+visibleHeight {
		c.offset = c.selected - visibleHeight + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

// SessionStats accumulates what a session has freed across every delete,
// single or batched.
type SessionStats struct {
	BytesFreed   int64
	ItemsDeleted int
}

// multiDeleteState tracks an in-flight batch delete.
type multiDeleteState struct {
	total      int
	completed  int
	bytesFreed int64
	failures   []string
	results    chan deleteResult
}

// App is the root Bubbletea model.
type App struct {
	rootPath  string
	scanCfg   scanner.Config
	cacheDir  string
	noCache   bool
	fromCache bool

	mode     Mode
	viewKind ViewKind
	width    int
	height   int

	tree     *tree.Tree
	views    *views.Views
	viewRoot tree.NodeId
	history  []tree.NodeId

	cursors map[ViewKind]*cursorPos

	selection *Selection
	stats     SessionStats

	scanCounters scanner.Counters
	scanCancel   context.CancelFunc
	scanCancelMu sync.Mutex

	pendingSingle *deleteCandidate
	pendingBatch  []deleteCandidate
	multiDelete   *multiDeleteState
	statusMsg     string
	statusIsError bool

	scanMessages <-chan scanner.Message
	scanResults  <-chan scanner.Result

	theme  style.Theme
	keys   KeyMap
	layout style.Layout

	fatalErr error
}

// Options configures a new App.
type Options struct {
	RootPath string
	ScanCfg  scanner.Config
	CacheDir string
	NoCache  bool
}

// New constructs an App in its initial Scanning mode.
func New(opts Options) *App {
	return &App{
		rootPath: opts.RootPath,
		scanCfg:  opts.ScanCfg,
		cacheDir: opts.CacheDir,
		noCache:  opts.NoCache,

		mode:     ModeScanning,
		viewKind: ViewTree,

		views:     views.New(),
		selection: NewSelection(),

		cursors: map[ViewKind]*cursorPos{
			ViewTree:       {},
			ViewLargeFiles: {},
			ViewArtifacts:  {},
			ViewFileTypes:  {},
		},

		theme: style.DefaultTheme(),
		keys:  DefaultKeyMap(),
	}
}

// FatalError returns a pre-scan error that should abort before the UI runs.
func (a *App) FatalError() error { return a.fatalErr }

func (a *App) setScanCancel(cancel context.CancelFunc) {
	a.scanCancelMu.Lock()
	a.scanCancel = cancel
	a.scanCancelMu.Unlock()
}

func (a *App) callScanCancel() {
	a.scanCancelMu.Lock()
	if a.scanCancel != nil {
		a.scanCancel()
	}
	a.scanCancelMu.Unlock()
}

// Messages exchanged over the Bubbletea event loop.

type scanStartedMsg struct{}
type scanMessageMsg scanner.Message
type scanChannelClosedMsg struct{}
type scanResultMsg scanner.Result
type cacheHitMsg struct {
	meta Metadata
	tree *tree.Tree
}
type deleteDoneMsg struct {
	id   tree.NodeId
	size int64
	err  error
}
type multiDeleteTickMsg struct{}

// Metadata aliases cache.Metadata so callers outside internal/cache don't
// need a second import for the one field the app reads from it.
type Metadata = cache.Metadata

func (a *App) Init() tea.Cmd {
	if !a.noCache {
		if meta, t, ok := a.tryLoadCache(); ok {
			return func() tea.Msg { return cacheHitMsg{meta: meta, tree: t} }
		}
	}
	return a.startScan()
}

// startScan launches the scanner and stashes its channels on the App; the
// actual message/result pumping happens via scanMessagesCmd/scanResultCmd,
// kept alive across Update calls the way a Bubbletea subscription works:
// each received message re-issues the same Cmd for the next one.
func (a *App) startScan() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		a.setScanCancel(cancel)
		s := scanner.New(a.scanCfg)
		messages, results := s.Scan(ctx, a.rootPath)
		a.scanMessages = messages
		a.scanResults = results
		return scanStartedMsg{}
	}
}

func scanMessagesCmd(messages <-chan scanner.Message) tea.Cmd {
	return func() tea.Msg {
		m, ok := <-messages
		if !ok {
			return scanChannelClosedMsg{}
		}
		return scanMessageMsg(m)
	}
}

func scanResultCmd(results <-chan scanner.Result) tea.Cmd {
	return func() tea.Msg {
		return scanResultMsg(<-results)
	}
}

func (a *App) tryLoadCache() (cache.Metadata, *tree.Tree, bool) {
	if a.cacheDir == "" {
		return cache.Metadata{}, nil, false
	}
	absRoot, err := filepath.Abs(a.rootPath)
	if err != nil {
		return cache.Metadata{}, nil, false
	}
	path := cache.PathFor(a.cacheDir, absRoot)
	meta, t, err := cache.Load(path)
	if err != nil {
		return cache.Metadata{}, nil, false
	}
	cfg := cache.ScanConfig{
		FollowSymlinks: a.scanCfg.FollowSymlinks,
		SameFilesystem: a.scanCfg.SameFilesystem,
		MaxDepth:       a.scanCfg.MaxDepth,
	}
	fresh := cache.IsFresh(meta, absRoot, cfg, t, statMtime)
	if !fresh {
		return cache.Metadata{}, nil, false
	}
	return meta, t, true
}

func statMtime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout = style.NewLayout(msg.Width, msg.Height)
		return a, nil

	case scanStartedMsg:
		return a, tea.Batch(scanMessagesCmd(a.scanMessages), scanResultCmd(a.scanResults))

	case scanMessageMsg:
		switch scanner.Message(msg).Kind {
		case scanner.MsgProgress:
			a.scanCounters = msg.Progress
		case scanner.MsgFinalizing:
			a.mode = ModeFinalizing
		}
		return a, scanMessagesCmd(a.scanMessages)

	case scanChannelClosedMsg:
		return a, nil

	case scanResultMsg:
		if msg.Err != nil && msg.Tree == nil {
			a.fatalErr = msg.Err
			return a, tea.Quit
		}
		a.tree = msg.Tree
		a.fromCache = false
		a.enterBrowsing()
		a.maybeSaveCache()
		return a, tea.ClearScreen

	case cacheHitMsg:
		a.tree = msg.tree
		a.fromCache = true
		a.enterBrowsing()
		return a, tea.ClearScreen

	case deleteDoneMsg:
		a.mode = ModeBrowsing
		if msg.err != nil {
			a.setError(fmt.Sprintf("delete failed: %v", msg.err))
		} else {
			a.stats.BytesFreed += msg.size
			a.stats.ItemsDeleted++
			a.refreshViews()
		}
		a.clampCursor(a.viewKind)
		return a, tea.ClearScreen

	case multiDeleteTickMsg:
		return a, a.pollMultiDelete()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) enterBrowsing() {
	a.mode = ModeBrowsing
	a.viewRoot = tree.NodeRoot
	a.history = nil
	for _, c := range a.cursors {
		*c = cursorPos{}
	}
	a.refreshViews()
}

func (a *App) maybeSaveCache() {
	if a.noCache || a.cacheDir == "" || a.tree == nil {
		return
	}
	absRoot, err := filepath.Abs(a.rootPath)
	if err != nil {
		return
	}
	root, ok := a.tree.Get(tree.NodeRoot)
	if !ok {
		return
	}
	meta := cache.Metadata{
		RootPath:  absRoot,
		ScanTime:  time.Now(),
		RootMtime: root.Mtime,
		TotalSize: a.tree.TotalSize(),
		Config: cache.ScanConfig{
			FollowSymlinks: a.scanCfg.FollowSymlinks,
			SameFilesystem: a.scanCfg.SameFilesystem,
			MaxDepth:       a.scanCfg.MaxDepth,
		},
	}
	_ = cache.Save(cache.PathFor(a.cacheDir, absRoot), a.tree, meta)
}

func (a *App) refreshViews() {
	if a.tree == nil {
		return
	}
	a.views.Rebuild(a.tree)
	for kind, c := range a.cursors {
		c.clamp(a.viewItemCount(kind))
	}
}

func (a *App) setError(msg string) {
	a.statusMsg = msg
	a.statusIsError = true
}

func (a *App) clearStatus() {
	a.statusMsg = ""
	a.statusIsError = false
}

// View-data accessors used by cmd/dux and the render layer.

func (a *App) Mode() Mode           { return a.mode }
func (a *App) ViewKind() ViewKind   { return a.viewKind }
func (a *App) Tree() *tree.Tree     { return a.tree }
func (a *App) Views() *views.Views  { return a.views }
func (a *App) Stats() SessionStats  { return a.stats }
func (a *App) FromCache() bool      { return a.fromCache }
func (a *App) StatusMessage() string { return a.statusMsg }

func (a *App) cursor(kind ViewKind) *cursorPos {
	c, ok := a.cursors[kind]
	if !ok {
		c = &cursorPos{}
		a.cursors[kind] = c
	}
	return c
}

func (a *App) clampCursor(kind ViewKind) {
	c := a.cursor(kind)
	c.clamp(a.viewItemCount(kind))
}

func (a *App) viewItemCount(kind ViewKind) int {
	switch kind {
	case ViewTree:
		if a.tree == nil {
			return 0
		}
		return len(a.tree.VisibleNodes(a.viewRoot))
	case ViewLargeFiles:
		return len(a.views.LargeFiles)
	case ViewArtifacts:
		return len(a.views.Artifacts)
	case ViewFileTypes:
		return len(a.views.FileTypes)
	default:
		return 0
	}
}

func (a *App) visibleHeight() int {
	h := a.layout.ContentHeight()
	if h < 1 {
		return 1
	}
	return h
}
