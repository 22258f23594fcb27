// Package merge moves staged extraction output into the final tree and
// reclaims the staging directory.
package merge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apocalyptech/wldata/internal/unrealpak"
)

// ErrIncompleteMerge means the staging directory was not empty after the
// merge: some staged file had no mapping entry, or a move failed. Partial
// merges are surfaced, never silently ignored.
var ErrIncompleteMerge = errors.New("staging directory not empty after merge")

// Merge moves every staged file with a mapping entry into finalDir at its
// normalized path, creating destination parents as needed, then removes
// the now-empty staging tree. Listed files missing from staging are fine
// (pruning may have removed them); staged files missing from the mapping
// are not, and show up as ErrIncompleteMerge when the staging root cannot
// be reclaimed.
//
// Merge is re-entrant: a missing or already-drained staging directory is a
// no-op.
func Merge(stagingDir, finalDir string, mapping unrealpak.NameMapping) error {
	if _, err := os.Stat(stagingDir); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	for raw, final := range mapping {
		src := filepath.Join(stagingDir, filepath.FromSlash(raw))
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(finalDir, filepath.FromSlash(final))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := moveFile(src, dst); err != nil {
			return fmt.Errorf("moving %s: %w", raw, err)
		}
	}

	removed, err := removeEmptyDirs(stagingDir)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrIncompleteMerge, stagingDir)
	}
	return nil
}

// moveFile renames src onto dst. Later archives overwrite earlier ones at
// the same final path, so an existing dst is removed first where rename
// refuses to replace it; a rename across filesystems falls back to
// copy-and-delete.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := os.Remove(dst); err == nil {
		if err := os.Rename(src, dst); err == nil {
			return nil
		}
	}
	return copyAndDelete(src, dst)
}

func copyAndDelete(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

// removeEmptyDirs depth-first removes empty directories under root,
// including root itself when everything inside it went away. Reports
// whether root was removed.
func removeEmptyDirs(root string) (bool, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false, err
	}

	remaining := len(entries)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		removed, err := removeEmptyDirs(filepath.Join(root, e.Name()))
		if err != nil {
			return false, err
		}
		if removed {
			remaining--
		}
	}

	if remaining > 0 {
		return false, nil
	}
	if err := os.Remove(root); err != nil {
		return false, err
	}
	return true, nil
}
