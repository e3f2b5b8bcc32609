package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/extpack/inspect/asar"
	"github.com/extpack/inspect/render"
	"github.com/extpack/inspect/treediff"
)

// Inspector sequences the archive decoder, tree differ, and content diff
// engine. It is safe for concurrent use; concurrent DiffFile calls for the
// same file pair are deduplicated.
type Inspector struct {
	logger   *slog.Logger
	workers  int
	excludes []string
	style    string
	engine   *render.Engine

	diffGroup singleflight.Group
}

// New creates an Inspector.
func New(opts ...Option) *Inspector {
	ins := &Inspector{}
	for _, opt := range opts {
		opt(ins)
	}

	var engineOpts []render.Option
	if ins.logger != nil {
		engineOpts = append(engineOpts, render.WithLogger(ins.logger))
	}
	if ins.style != "" {
		engineOpts = append(engineOpts, render.WithStyle(ins.style))
	}
	ins.engine = render.NewEngine(engineOpts...)
	return ins
}

// log returns the logger, falling back to a discard logger if nil.
func (ins *Inspector) log() *slog.Logger {
	if ins.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ins.logger
}

// treeOpts builds the differ options from the inspector configuration.
func (ins *Inspector) treeOpts() []treediff.Option {
	var opts []treediff.Option
	if ins.workers > 0 {
		opts = append(opts, treediff.WithWorkers(ins.workers))
	}
	if len(ins.excludes) > 0 {
		opts = append(opts, treediff.WithExcludes(ins.excludes...))
	}
	return opts
}

// DecodeArchive decodes an archive from a random-access byte source into
// an in-memory file tree.
func (ins *Inspector) DecodeArchive(src io.ReaderAt) (asar.FileTree, error) {
	tree, err := asar.Decode(src)
	if err != nil {
		return nil, err
	}
	ins.log().Debug("archive decoded", "files", len(tree))
	return tree, nil
}

// ExtractArchive decodes an archive and materializes its files under
// destDir. The destination must be fully written before it is handed to
// CompareDirs.
func (ins *Inspector) ExtractArchive(src io.ReaderAt, destDir string) error {
	tree, err := ins.DecodeArchive(src)
	if err != nil {
		return err
	}
	if err := asar.Extract(tree, destDir); err != nil {
		return err
	}
	ins.log().Debug("archive extracted", "dir", destDir, "files", len(tree))
	return nil
}

// CompareDirs compares two fully materialized directory roots and returns
// the classified change tree.
func (ins *Inspector) CompareDirs(ctx context.Context, oldDir, newDir string) (*treediff.FolderDiff, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	diff, err := treediff.CompareDirs(oldDir, newDir, ins.treeOpts()...)
	if err != nil {
		return nil, err
	}
	ins.log().Debug("directories compared", "old", oldDir, "new", newDir, "changed", len(diff.Items))
	return diff, nil
}

// CompareArchives decodes two archives and classifies their contents
// entirely in memory, without extracting either to disk.
func (ins *Inspector) CompareArchives(ctx context.Context, oldSrc, newSrc io.ReaderAt) (*treediff.FolderDiff, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	oldTree, err := ins.DecodeArchive(oldSrc)
	if err != nil {
		return nil, fmt.Errorf("old archive: %w", err)
	}
	newTree, err := ins.DecodeArchive(newSrc)
	if err != nil {
		return nil, fmt.Errorf("new archive: %w", err)
	}

	states := treediff.Classify(treediff.SnapshotBytes(oldTree), treediff.SnapshotBytes(newTree))
	return &treediff.FolderDiff{Items: treediff.Unflatten(states, "")}, nil
}

// DiffFile reads both sides of a changed file and returns its render
// instruction streams. A missing file on either side is treated as an
// added or deleted file, not an error. Concurrent calls for the same pair
// share one computation; the returned FileDiff is read-only.
func (ins *Inspector) DiffFile(ctx context.Context, oldPath, newPath string) (*render.FileDiff, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := oldPath + "\x00" + newPath
	v, err, _ := ins.diffGroup.Do(key, func() (any, error) {
		return ins.diffFile(oldPath, newPath)
	})
	if err != nil {
		return nil, err
	}
	return v.(*render.FileDiff), nil
}

func (ins *Inspector) diffFile(oldPath, newPath string) (*render.FileDiff, error) {
	oldSrc, err := readIfExists(oldPath)
	if err != nil {
		return nil, err
	}
	newSrc, err := readIfExists(newPath)
	if err != nil {
		return nil, err
	}

	ext := extensionOf(newPath)
	if ext == "" {
		ext = extensionOf(oldPath)
	}

	diff := ins.engine.DiffFile(oldSrc, newSrc, ext)
	return &diff, nil
}

// readIfExists reads a whole file, mapping a missing file to a nil slice
// (the content diff engine's "side absent" marker) and preserving the
// present-but-empty distinction.
func readIfExists(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inspect: read %s: %w", path, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// extensionOf returns the file extension without the leading dot.
func extensionOf(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
