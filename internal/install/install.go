// Package install locates the game install root and its pak directory.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const steamAppID = 1286680

// reSteamLibrary extracts library locations from Steam's
// libraryfolders.vdf.
var reSteamLibrary = regexp.MustCompile(`\t+"\d+"\t+"(.+?)"`)

// PakDir returns the directory under an install root that holds the base
// game pakfiles.
func PakDir(root string) string {
	return filepath.Join(root, "OakGame", "Content", "Paks")
}

// FindRoot returns the first usable install location: the configured
// default when it exists, otherwise the first Steam library holding the
// game's app manifest. Falls back to the configured default when nothing
// better is found; the caller discovers the absence of pakfiles later.
func FindRoot(configured string) string {
	return FindRootIn(configured, defaultSteamappsDirs())
}

// FindRootIn is FindRoot with explicit steamapps candidates, for tests.
func FindRootIn(configured string, steamappsDirs []string) string {
	if isDir(configured) {
		return configured
	}

	manifest := fmt.Sprintf("appmanifest_%d.acf", steamAppID)
	for _, steamapps := range steamappsDirs {
		for _, folder := range libraryFolders(steamapps) {
			if !isFile(filepath.Join(folder, manifest)) {
				continue
			}
			root := filepath.Join(folder, "common", "Tiny Tina's Wonderlands")
			if isDir(root) {
				return root
			}
		}
	}
	return configured
}

// libraryFolders returns steamapps itself plus every extra library listed
// in its libraryfolders.vdf.
func libraryFolders(steamapps string) []string {
	folders := []string{steamapps}
	data, err := os.ReadFile(filepath.Join(steamapps, "libraryfolders.vdf"))
	if err != nil {
		return folders
	}
	for _, m := range reSteamLibrary.FindAllStringSubmatch(string(data), -1) {
		lib := strings.ReplaceAll(m[1], `\\`, string(filepath.Separator))
		if isDir(lib) {
			folders = append(folders, filepath.Join(lib, "steamapps"))
		}
	}
	return folders
}

func defaultSteamappsDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Program Files (x86)\Steam\steamapps`}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		return []string{filepath.Join(home, "Library", "Application Support", "Steam", "steamapps")}
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		return []string{filepath.Join(home, ".steam", "steam", "steamapps")}
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
