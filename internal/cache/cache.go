// Package cache implements dux's on-disk scan cache: a small framed binary
// file that lets a repeat scan of the same root skip the filesystem walk
// entirely when nothing relevant has changed.
package cache

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/crc32"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sadopc/dux/internal/tree"
)

// Magic identifies a dux cache file. Version is bumped whenever the framing
// or the encoded payload shape changes incompatibly.
const (
	Magic   = "DUXC"
	Version uint32 = 1
)

// ErrBadMagic/ErrBadVersion/ErrCorrupt are returned by Load.
var (
	ErrBadMagic   = errors.New("cache: not a dux cache file")
	ErrBadVersion = errors.New("cache: unsupported cache version")
	ErrCorrupt    = errors.New("cache: checksum mismatch")
	ErrTruncated  = errors.New("cache: truncated file")
)

// ScanConfig is the subset of scan configuration that, if changed, must
// invalidate a cache regardless of mtimes.
type ScanConfig struct {
	FollowSymlinks bool
	SameFilesystem bool
	MaxDepth       int
}

// Metadata describes a saved tree: when it was captured and under what
// configuration, so IsFresh can decide whether to trust it without
// re-walking the filesystem.
type Metadata struct {
	Version   uint32
	RootPath  string
	ScanTime  time.Time
	RootMtime time.Time
	TotalSize int64
	NodeCount int
	Config    ScanConfig
}

type payload struct {
	Meta Metadata
	Tree tree.Snapshot
}

// Save atomically writes t and meta to path: encode to a temp file in the
// same directory, fsync, then rename over the destination. A crash or a
// concurrent reader never observes a half-written cache file.
func Save(path string, t *tree.Tree, meta Metadata) error {
	meta.Version = Version
	meta.NodeCount = t.Len()

	var metaBuf bytes.Buffer
	if err := gob.NewEncoder(&metaBuf).Encode(meta); err != nil {
		return fmt.Errorf("cache: encode metadata: %w", err)
	}
	var treeBuf bytes.Buffer
	if err := gob.NewEncoder(&treeBuf).Encode(t.Snapshot()); err != nil {
		return fmt.Errorf("cache: encode tree: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(Magic)
	writeU32(&buf, Version)
	writeU32(&buf, uint32(metaBuf.Len()))
	buf.Write(metaBuf.Bytes())
	writeU32(&buf, uint32(treeBuf.Len()))
	buf.Write(treeBuf.Bytes())

	checksum := crc32.ChecksumIEEE(buf.Bytes())
	var crcSuffix [4]byte
	binary.LittleEndian.PutUint32(crcSuffix[:], checksum)
	buf.Write(crcSuffix[:])

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dux-cache-*")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename below succeeds

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("cache: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("cache: fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("cache: rename into place: %w", err)
	}
	return nil
}

// Load decodes and verifies a cache file, rebuilding node paths before
// returning the tree (paths are not part of the encoding).
func Load(path string) (Metadata, *tree.Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, nil, err
	}
	if len(raw) < len(Magic)+4+4+4+4 {
		return Metadata{}, nil, ErrTruncated
	}

	body, crcSuffix := raw[:len(raw)-4], raw[len(raw)-4:]
	want := binary.LittleEndian.Uint32(crcSuffix)
	if got := crc32.ChecksumIEEE(body); got != want {
		return Metadata{}, nil, ErrCorrupt
	}

	r := bytes.NewReader(body)
	magic := make([]byte, len(Magic))
	if _, err := r.Read(magic); err != nil || string(magic) != Magic {
		return Metadata{}, nil, ErrBadMagic
	}
	version, err := readU32(r)
	if err != nil {
		return Metadata{}, nil, ErrTruncated
	}
	if version != Version {
		return Metadata{}, nil, ErrBadVersion
	}

	metaLen, err := readU32(r)
	if err != nil {
		return Metadata{}, nil, ErrTruncated
	}
	metaBytes := make([]byte, metaLen)
	if _, err := r.Read(metaBytes); err != nil {
		return Metadata{}, nil, ErrTruncated
	}
	var meta Metadata
	if err := gob.NewDecoder(bytes.NewReader(metaBytes)).Decode(&meta); err != nil {
		return Metadata{}, nil, fmt.Errorf("cache: decode metadata: %w", err)
	}

	treeLen, err := readU32(r)
	if err != nil {
		return Metadata{}, nil, ErrTruncated
	}
	treeBytes := make([]byte, treeLen)
	if _, err := r.Read(treeBytes); err != nil {
		return Metadata{}, nil, ErrTruncated
	}
	var snap tree.Snapshot
	if err := gob.NewDecoder(bytes.NewReader(treeBytes)).Decode(&snap); err != nil {
		return Metadata{}, nil, fmt.Errorf("cache: decode tree: %w", err)
	}

	t := tree.FromSnapshot(snap)
	return meta, t, nil
}

// PathFor derives the cache file path for a scan root inside cacheDir. The
// filename is a content hash of the absolute root path; collisions are
// possible in principle and simply mean a fresh scan overwrites a stale
// entry, so a weak non-cryptographic hash is fine here.
func PathFor(cacheDir, rootPath string) string {
	h := fnv.New64a()
	h.Write([]byte(rootPath))
	name := hex.EncodeToString(h.Sum(nil)) + ".dux"
	return filepath.Join(cacheDir, name)
}

// spotCheckLimit is the number of largest live directories whose mtimes
// IsFresh re-stats before trusting a cache that otherwise looks current.
const spotCheckLimit = 32

// IsFresh runs the two-tier freshness check: cheap O(1) equality checks
// first, then an O(K) mtime spot check over the K largest live directories.
// statMtime is injected so tests can simulate filesystem state without
// touching a real directory tree.
func IsFresh(meta Metadata, rootPath string, cfg ScanConfig, t *tree.Tree, statMtime func(path string) (time.Time, bool)) bool {
	if meta.Config != cfg {
		return false
	}
	if meta.RootPath != rootPath {
		return false
	}
	rootMtime, ok := statMtime(rootPath)
	if !ok || !rootMtime.Equal(meta.RootMtime) {
		return false
	}
	return spotCheckMtimes(t, statMtime, spotCheckLimit)
}

func spotCheckMtimes(t *tree.Tree, statMtime func(path string) (time.Time, bool), limit int) bool {
	type dirMtime struct {
		path  string
		size  int64
		mtime time.Time
	}
	var dirs []dirMtime
	for n := range t.Iter {
		if n.Kind.IsDirectory() && !n.Mtime.IsZero() {
			dirs = append(dirs, dirMtime{path: n.Path, size: n.Size, mtime: n.Mtime})
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].size > dirs[j].size })
	if len(dirs) > limit {
		dirs = dirs[:limit]
	}
	for _, d := range dirs {
		actual, ok := statMtime(d.path)
		if !ok || !actual.Equal(d.mtime) {
			return false
		}
	}
	return true
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func readU32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
