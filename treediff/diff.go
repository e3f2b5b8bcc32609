package treediff

import (
	"io/fs"
	"os"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
)

// FileState classifies a single path in a directory comparison.
type FileState int

const (
	// Added means the path exists only in the new snapshot.
	Added FileState = iota
	// Modified means the path exists in both snapshots with different digests.
	Modified
	// Removed means the path exists only in the old snapshot.
	Removed
)

// String returns the lowercase state name.
func (s FileState) String() string {
	switch s {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// FolderDiff is the result of comparing two directory roots. It is
// read-only once produced.
type FolderDiff struct {
	// OldRoot and NewRoot identify the compared roots. Empty when the
	// comparison ran over abstract filesystems.
	OldRoot string
	NewRoot string

	// Items is the classified presentation tree of every changed path.
	Items []Item
}

// Empty reports whether the comparison found no changes.
func (d *FolderDiff) Empty() bool { return len(d.Items) == 0 }

// Classify compares two snapshots path by path. Paths present only in old
// are Removed, present in both with differing digests Modified, present
// only in new Added. Paths with equal digests are omitted entirely.
func Classify(old, new map[string]digest.Digest) map[string]FileState {
	states := make(map[string]FileState)
	for p, oldDigest := range old {
		newDigest, ok := new[p]
		switch {
		case !ok:
			states[p] = Removed
		case oldDigest != newDigest:
			states[p] = Modified
		}
	}
	for p := range new {
		if _, ok := old[p]; !ok {
			states[p] = Added
		}
	}
	return states
}

// Compare snapshots both filesystems, classifies the union of their paths,
// and returns the unflattened change tree. The two snapshots run
// concurrently; both must be fully materialized trees.
func Compare(oldFS, newFS fs.FS, opts ...Option) (*FolderDiff, error) {
	cfg := newConfig(opts)

	var oldSnap, newSnap map[string]digest.Digest
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		oldSnap, err = snapshot(oldFS, cfg)
		return err
	})
	g.Go(func() (err error) {
		newSnap, err = snapshot(newFS, cfg)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	states := Classify(oldSnap, newSnap)
	return &FolderDiff{Items: Unflatten(states, "")}, nil
}

// CompareDirs compares two on-disk directory roots.
func CompareDirs(oldDir, newDir string, opts ...Option) (*FolderDiff, error) {
	d, err := Compare(os.DirFS(oldDir), os.DirFS(newDir), opts...)
	if err != nil {
		return nil, err
	}
	d.OldRoot = oldDir
	d.NewRoot = newDir
	return d, nil
}
