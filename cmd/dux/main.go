// Command dux is an interactive terminal disk-usage analyzer: it scans a
// directory subtree, builds a sized tree, and lets the user browse, classify,
// and delete entries.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/dux/internal/app"
	"github.com/sadopc/dux/internal/scanner"
)

var version = "dev"

func main() {
	maxDepth := flag.Int("max-depth", 0, "Maximum recursion depth (0 = unlimited)")
	followSymlinks := flag.Bool("follow-symlinks", false, "Follow symbolic links during scan")
	crossFilesystems := flag.Bool("cross-filesystems", false, "Allow the scan to cross mounted filesystem boundaries")
	noCache := flag.Bool("no-cache", false, "Skip loading and writing the on-disk scan cache")
	numThreads := flag.Int("j", 0, "Max concurrent directory scans (0 = automatic)")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "dux - Interactive disk usage analyzer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dux [options] [path]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("dux %s\n", version)
		os.Exit(0)
	}

	if *numThreads < 0 {
		fmt.Fprintf(os.Stderr, "Error: -j must be >= 0\n")
		os.Exit(1)
	}
	if *maxDepth < 0 {
		fmt.Fprintf(os.Stderr, "Error: --max-depth must be >= 0\n")
		os.Exit(1)
	}
	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: too many positional arguments\n")
		os.Exit(1)
	}

	rootPath := "."
	if flag.NArg() == 1 {
		rootPath = flag.Arg(0)
	}

	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", absPath)
		os.Exit(1)
	}

	cfg := scanner.Config{
		FollowSymlinks: *followSymlinks,
		MaxDepth:       *maxDepth,
		SameFilesystem: !*crossFilesystems,
		NumThreads:     *numThreads,
	}

	opts := app.Options{
		RootPath: absPath,
		ScanCfg:  cfg,
		CacheDir: cacheDir(),
		NoCache:  *noCache,
	}

	a := app.New(opts)
	p := tea.NewProgram(a, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := a.FatalError(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cacheDir resolves the platform's per-user cache directory for dux's scan
// cache, per spec.md §6. A failure here just disables caching rather than
// aborting the run.
func cacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "dux")
}
