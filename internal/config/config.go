// Package config holds runtime configuration: defaults, config-file and
// environment loading, and validation. The fixed tables (audio datagroups,
// root-name overrides, case fixes, prune patterns) live here as injected
// configuration values rather than constants in the packages that consume
// them, so components can be tested against alternate tables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/apocalyptech/wldata/internal/naming"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// StagingDirName is the transient extraction subdirectory created under
// the extract root. It is fully drained after each archive's merge and is
// expected to be empty (absent) between runs.
const StagingDirName = "_wldata_tmp"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [Load] (config file and environment), and finally
// mutated by CLI flags before being passed by pointer to the packages that
// need it.
type Config struct {
	// Paths.
	InstallDir string   // Game install root; autodetected when the default is absent.
	ExtractDir string   // Final tree destination.
	CryptoPath string   // UnrealPak crypto config JSON. Created interactively when missing.
	Paths      []string // Explicit pakfiles or directories, overriding install discovery.

	// External tool.
	UnrealPak  string // Executable name or path. Default: "UnrealPak.exe".
	Wine       string // Optional wrapper command. Default on Linux: "wine64".
	WinePrefix string // Optional WINEPREFIX for the wrapper.

	// Behavior.
	SkipAudioPaks bool // Default: true. Cleared by --include-audio.
	DiskCheck     bool // Default: true. Cleared by --no-disk-check.
	PathLenCheck  bool // Default: true. Cleared by --no-path-len-check.
	DryRun        bool // List and map only; no extraction or merge.
	AssumeYes     bool // Answer pre-flight prompts with yes.

	// Fixed tables (immutable process-wide once loaded).
	AudioDatagroups   []int             // Datagroups that only ever carry audio bank data.
	RootOverrides     map[string]string // Content root-name aliases (e.g. OakGame -> Game).
	CaseFixes         []naming.CaseFix  // Ordered case-sensitivity fixes.
	PruneFilePatterns []string          // Staged files deleted before merging.
	PruneDirPatterns  []string          // Staged directory trees deleted before merging.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path (append).
}

// DefaultConfig returns a Config matching the legacy unpack script's
// defaults, wine wrapping included on Linux.
func DefaultConfig() Config {
	cfg := Config{
		InstallDir: `C:\Program Files (x86)\Steam\steamapps\common\Tiny Tina's Wonderlands`,
		ExtractDir: "extracted_new",
		CryptoPath: "crypto.json",
		UnrealPak:  "UnrealPak.exe",

		SkipAudioPaks: true,
		DiskCheck:     true,
		PathLenCheck:  true,

		AudioDatagroups: []int{2, 3, 48, 49, 50, 51, 52, 53},
		RootOverrides: map[string]string{
			"OakGame": "Game",
			"Wwise":   "WwiseEditor",
		},
		// Processed in order; a later fix's "from" must make sense given
		// the earlier fixes' output.
		CaseFixes: []naming.CaseFix{
			{Scope: "Game/Maps/Dungeons/Boss/Climb", From: "D_Boss_Climb_P", To: "D_Boss_Climb_p"},
		},
		PruneFilePatterns: []string{"*.wem", "*.bnk", "*ShaderArchive*"},
		PruneDirPatterns:  []string{"*PipelineCaches*", "*TritonData*"},

		ColorMode: ColorAuto,
	}
	if runtime.GOOS == "linux" {
		cfg.Wine = "wine64"
	}
	return cfg
}

// NormalizeDirArg strips trailing slashes from a directory path. The
// filesystem root "/" is returned unchanged so we don't produce an empty
// string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields, required paths, and that the configured
// prune patterns and case fixes are well formed.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.ExtractDir == "" {
		return errors.New("extraction directory must not be empty")
	}
	if c.CryptoPath == "" {
		return errors.New("crypto config path must not be empty")
	}
	if c.UnrealPak == "" {
		return errors.New("UnrealPak executable must not be empty")
	}

	for _, pat := range append(append([]string{}, c.PruneFilePatterns...), c.PruneDirPatterns...) {
		if _, err := filepath.Match(pat, "probe"); err != nil {
			return fmt.Errorf("invalid prune pattern %q: %w", pat, err)
		}
	}

	for i, fix := range c.CaseFixes {
		if fix.Scope == "" || fix.From == "" || fix.To == "" {
			return fmt.Errorf("case fix %d: scope, from and to must all be set", i)
		}
	}
	return nil
}

// AudioSet returns the audio-only datagroups as a membership set.
func (c *Config) AudioSet() map[int]bool {
	set := make(map[int]bool, len(c.AudioDatagroups))
	for _, n := range c.AudioDatagroups {
		set[n] = true
	}
	return set
}

// Normalizer builds the path normalizer from the configured tables.
func (c *Config) Normalizer() *naming.Normalizer {
	return naming.NewNormalizer(c.RootOverrides, c.CaseFixes)
}

// StagingDir returns the staging directory path under the extract root.
func (c *Config) StagingDir() string {
	return filepath.Join(c.ExtractDir, StagingDirName)
}
