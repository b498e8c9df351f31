package scanner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sadopc/dux/internal/tree"
)

// Scanner walks a directory subtree under a fixed Config.
type Scanner struct {
	cfg Config
}

// New creates a Scanner.
func New(cfg Config) *Scanner { return &Scanner{cfg: cfg} }

// Result is the terminal outcome of a Scan: the built tree, or an error if
// the root couldn't be opened at all. A cancelled scan carries both the
// partial, unaggregated tree and ctx's error.
type Result struct {
	Tree *tree.Tree
	Err  error
}

// discovery is what a directory-walking goroutine hands to the single
// consumer that owns tree mutation. ParentPath is the logical path under
// which the entry should be attached — it differs from the directory
// actually read from disk when a symlink is being followed.
type discovery struct {
	parentPath string
	name       string
	kind       tree.Kind
	path       string
	size       int64
	mtime      time.Time
}

// Scan walks rootPath in the background and returns a channel of progress
// messages plus a single-value channel carrying the final result. Both
// channels are closed when the scan finishes, whether it completed,
// errored, or was cancelled via ctx.
func (s *Scanner) Scan(ctx context.Context, rootPath string) (<-chan Message, <-chan Result) {
	messages := make(chan Message, 16)
	results := make(chan Result, 1)
	go s.run(ctx, rootPath, messages, results)
	return messages, results
}

func (s *Scanner) run(ctx context.Context, rootPath string, messages chan<- Message, results chan<- Result) {
	defer close(messages)
	defer close(results)

	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		results <- Result{Err: err}
		return
	}
	info, err := os.Stat(absPath)
	if err != nil {
		results <- Result{Err: err}
		return
	}
	if !info.IsDir() {
		results <- Result{Err: &os.PathError{Op: "scan", Path: absPath, Err: os.ErrInvalid}}
		return
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}

	t := tree.New(absPath)
	t.SetMtime(tree.NodeRoot, info.ModTime())
	rootDev := getDeviceID(info)

	concurrency := s.cfg.NumThreads
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0) * 3
	}
	sem := make(chan struct{}, concurrency)

	var filesScanned, dirsScanned, bytesFound, errCount atomic.Int64
	var curMu sync.Mutex
	var curPath string
	startTime := time.Now()

	snapshot := func(done bool) Counters {
		curMu.Lock()
		defer curMu.Unlock()
		return Counters{
			Files:     filesScanned.Load(),
			Dirs:      dirsScanned.Load(),
			Bytes:     bytesFound.Load(),
			Errors:    errCount.Load(),
			StartTime: startTime,
			Duration:  time.Since(startTime),
		}
	}

	sendBlocking(messages, Message{Kind: MsgStartedDirectory, Path: absPath})

	heartbeatDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sendNonBlocking(messages, Message{Kind: MsgProgress, Progress: snapshot(false)})
			case <-heartbeatDone:
				return
			}
		}
	}()

	discoveries := make(chan discovery, 4096)
	var wg sync.WaitGroup
	wg.Add(1)
	go s.scanDir(ctx, absPath, absPath, absPath, rootDev, sem, &wg, discoveries,
		&filesScanned, &dirsScanned, &bytesFound, &errCount, &curMu, &curPath)
	go func() {
		wg.Wait()
		close(discoveries)
	}()

	pathToID := map[string]tree.NodeId{absPath: tree.NodeRoot}
	for d := range discoveries {
		if ctx.Err() != nil {
			continue // keep draining so workers never block on a full channel
		}
		parentID, ok := pathToID[d.parentPath]
		if !ok {
			continue
		}
		id := t.Add(d.name, d.kind, d.path, parentID)
		if d.kind == tree.KindDirectory {
			pathToID[d.path] = id
			t.SetMtime(id, d.mtime)
		} else {
			t.SetSize(id, d.size)
		}
	}
	close(heartbeatDone)

	if ctx.Err() != nil {
		sendBlocking(messages, Message{Kind: MsgCancelled})
		results <- Result{Tree: t, Err: ctx.Err()}
		return
	}

	sendBlocking(messages, Message{Kind: MsgFinalizing})
	t.AggregateSizes()
	t.SortBySize()

	sendBlocking(messages, Message{Kind: MsgProgress, Progress: snapshot(true)})
	sendBlocking(messages, Message{Kind: MsgCompleted})
	results <- Result{Tree: t}
}

func sendBlocking(ch chan<- Message, m Message) {
	ch <- m
}

func sendNonBlocking(ch chan<- Message, m Message) {
	select {
	case ch <- m:
	default:
	}
}
