package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apocalyptech/wldata/internal/install"
	"github.com/apocalyptech/wldata/internal/naming"
)

// Discover expands the given paths into parsed pak descriptors. Each path
// may be a pakfile or a directory containing pakfiles; with no paths, the
// install root's pak directory is scanned instead. The returned label
// names the source for reporting.
//
// A filename that does not match the pak naming grammar is a hard error,
// never a silent skip.
func Discover(paths []string, installRoot string) ([]naming.PakFile, string, error) {
	label := "commandline arguments"
	if len(paths) == 0 {
		paths = []string{install.PakDir(installRoot)}
		label = installRoot
	}

	var paks []naming.PakFile
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", path, err)
		}

		if fi.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, "", err
			}
			for _, e := range entries {
				if e.IsDir() || !strings.HasSuffix(e.Name(), ".pak") {
					continue
				}
				pf, err := naming.NewPakFile(filepath.Join(path, e.Name()))
				if err != nil {
					return nil, "", err
				}
				paks = append(paks, pf)
			}
			continue
		}

		if !strings.HasSuffix(path, ".pak") {
			return nil, "", fmt.Errorf("specified file %s is not a .pak file", path)
		}
		pf, err := naming.NewPakFile(path)
		if err != nil {
			return nil, "", err
		}
		paks = append(paks, pf)
	}

	if len(paks) == 0 {
		return nil, "", fmt.Errorf("no pakfiles found to process in %s", label)
	}
	return paks, label, nil
}
