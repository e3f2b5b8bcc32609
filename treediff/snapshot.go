package treediff

import (
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sync"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
)

// Option configures snapshot and compare operations.
type Option func(*config)

type config struct {
	workers  int
	excludes []string
}

// WithWorkers bounds the number of concurrent hashing goroutines.
// Values < 1 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithExcludes skips files and directories whose base name matches any of
// the given glob patterns (e.g. ".git", "*.log"). Matching directories are
// skipped entirely.
func WithExcludes(patterns ...string) Option {
	return func(c *config) {
		c.excludes = append(c.excludes, patterns...)
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}
	return cfg
}

// excluded reports whether the entry's base name matches an exclude pattern.
func (c *config) excluded(p string) bool {
	if p == "." {
		return false
	}
	base := path.Base(p)
	for _, pat := range c.excludes {
		if ok, err := path.Match(pat, base); err == nil && ok {
			return true
		}
	}
	return false
}

// Snapshot walks fsys and returns a content digest for every regular file,
// keyed by slash-separated path relative to the root. Directories with no
// listable files contribute no entries. Hashing runs on a bounded worker
// pool; a listing or read failure fails the whole snapshot.
func Snapshot(fsys fs.FS, opts ...Option) (map[string]digest.Digest, error) {
	return snapshot(fsys, newConfig(opts))
}

func snapshot(fsys fs.FS, cfg *config) (map[string]digest.Digest, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cfg.excluded(p) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("treediff: snapshot: %w", err)
	}

	snap := make(map[string]digest.Digest, len(paths))
	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(cfg.workers)
	for _, p := range paths {
		g.Go(func() error {
			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return fmt.Errorf("treediff: read %s: %w", p, err)
			}
			dgst := digest.FromBytes(data)
			mu.Lock()
			snap[p] = dgst
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// SnapshotBytes digests an in-memory path → content map, such as a decoded
// archive tree, producing the same digests Snapshot would for identical
// content on disk.
func SnapshotBytes(files map[string][]byte) map[string]digest.Digest {
	snap := make(map[string]digest.Digest, len(files))
	for p, data := range files {
		snap[p] = digest.FromBytes(data)
	}
	return snap
}
