package asar

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Extract materializes a decoded tree under dir, creating parent
// directories as needed. Each file is written atomically via a temp file
// and rename so a failed extraction never leaves partially written files.
//
// Paths that do not satisfy fs.ValidPath are rejected; a hostile archive
// cannot write outside dir.
func Extract(tree FileTree, dir string) error {
	for path, data := range tree {
		if !fs.ValidPath(path) || path == "." {
			return &fs.PathError{Op: "extract", Path: path, Err: fs.ErrInvalid}
		}
		dest := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("asar: extract %s: %w", path, err)
		}
		if err := writeFileAtomic(dest, data); err != nil {
			return fmt.Errorf("asar: extract %s: %w", path, err)
		}
	}
	return nil
}

// writeFileAtomic writes data to dest via a temp file in the same
// directory followed by a rename.
func writeFileAtomic(dest string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".asar-")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return err
	}
	success = true
	return nil
}
