package merge

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// PruneStats reports what Prune removed.
type PruneStats struct {
	Files int
	Dirs  int
}

// Prune deletes staged files and directory trees whose basenames match the
// configured shell-style patterns, before the merge runs. Matching
// directories are removed whole and not descended into.
func Prune(root string, filePatterns, dirPatterns []string) (PruneStats, error) {
	var stats PruneStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			for _, pat := range dirPatterns {
				if ok, _ := filepath.Match(pat, name); ok {
					if err := os.RemoveAll(path); err != nil {
						return err
					}
					stats.Dirs++
					return filepath.SkipDir
				}
			}
			return nil
		}

		for _, pat := range filePatterns {
			if ok, _ := filepath.Match(pat, name); ok {
				if err := os.Remove(path); err != nil {
					return err
				}
				stats.Files++
				return nil
			}
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	return stats, err
}
