// Package check provides pre-flight validation before extraction (tool
// availability, free disk space, predicted path length) and the
// diagnostics behind the `wldata check` subcommand.
package check

import (
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/apocalyptech/wldata/internal/config"
	"github.com/apocalyptech/wldata/internal/naming"
)

// Sentinel errors returned by Tools when a required executable is missing.
var (
	ErrUnrealPakNotFound = errors.New("UnrealPak executable not found")
	ErrWineNotFound      = errors.New("wine wrapper not found on PATH")
)

// When audio-only paks are skipped and the default prune patterns run,
// extracted data comes out at roughly this multiple of the pak bytes.
const pakSizeRatio = 1.6

// Longest known intra-archive path across all shipped paks. Storing the
// per-pak maximum would be more precise, but everything gets extracted
// together anyway.
const longestArchivePath = 157

// windowsMaxPath applies under wine as well as on Windows proper.
const windowsMaxPath = 260

// Logger is the minimal logging interface needed by Run, so diagnostics
// stay testable with a mock logger.
type Logger interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Tools verifies the configured UnrealPak executable can be found, along
// with the wine wrapper when one is configured. A path containing a
// separator is stat'ed directly; a bare name is resolved on PATH.
func Tools(toolPath, wine string) error {
	if wine != "" {
		if _, err := exec.LookPath(wine); err != nil {
			return fmt.Errorf("%w: %q", ErrWineNotFound, wine)
		}
		// Under wine the tool path is resolved by wine itself; only check
		// it directly when it points at an actual file.
		if strings.ContainsAny(toolPath, `/\`) {
			if _, err := os.Stat(toolPath); err != nil {
				return fmt.Errorf("%w: %q", ErrUnrealPakNotFound, toolPath)
			}
		}
		return nil
	}

	if strings.ContainsAny(toolPath, `/\`) {
		if _, err := os.Stat(toolPath); err != nil {
			return fmt.Errorf("%w: %q", ErrUnrealPakNotFound, toolPath)
		}
		return nil
	}
	if _, err := exec.LookPath(toolPath); err != nil {
		return fmt.Errorf("%w: %q", ErrUnrealPakNotFound, toolPath)
	}
	return nil
}

// DiskSpace estimates the space the extraction needs (all pak bytes, plus
// the largest pak again for its brief double life in staging, scaled by
// the observed extraction ratio, plus one spare GiB) and compares it with
// what is free at dir. ok is false when free space looks short.
func DiskSpace(dir string, paks []naming.PakFile) (requiredGB, freeGB uint64, ok bool, err error) {
	var total, largest int64
	for _, p := range paks {
		total += p.SizeBytes
		if p.SizeBytes > largest {
			largest = p.SizeBytes
		}
	}
	required := float64(total+largest) * pakSizeRatio
	requiredGB = uint64(math.Ceil(required/(1<<30))) + 1

	usage, err := disk.Usage(dir)
	if err != nil {
		return requiredGB, 0, false, fmt.Errorf("checking free space at %s: %w", dir, err)
	}
	freeGB = uint64(math.Ceil(float64(usage.Free) / (1 << 30)))

	return requiredGB, freeGB, freeGB >= requiredGB, nil
}

// PathLength predicts the longest final path the extraction will create
// under extractDir. ok is false when it exceeds the Windows limit.
func PathLength(extractDir string) (predicted int, ok bool) {
	predicted = len(extractDir) + longestArchivePath
	return predicted, predicted <= windowsMaxPath
}

// Run is the interactive `wldata check` flow: it reports tool, crypto
// config, install root, and disk status without stopping on failure.
func Run(cfg *config.Config, installRoot string, log Logger) {
	log.Info("=== System Check ===")

	if err := Tools(cfg.UnrealPak, cfg.Wine); err != nil {
		log.Error("%v", err)
	} else if cfg.Wine != "" {
		log.Success("Tool: %s (via %s)", cfg.UnrealPak, cfg.Wine)
	} else {
		log.Success("Tool: %s", cfg.UnrealPak)
	}

	if cfg.WinePrefix != "" {
		if _, err := os.Stat(cfg.WinePrefix); err != nil {
			log.Error("WINEPREFIX does not exist: %s", cfg.WinePrefix)
		} else {
			log.Success("WINEPREFIX: %s", cfg.WinePrefix)
		}
	}

	if _, err := os.Stat(cfg.CryptoPath); err != nil {
		log.Warn("Crypto config missing: %s (will be created on first run)", cfg.CryptoPath)
	} else {
		log.Success("Crypto config: %s", cfg.CryptoPath)
	}

	if fi, err := os.Stat(installRoot); err != nil || !fi.IsDir() {
		log.Warn("Install root not found: %s", installRoot)
	} else {
		log.Success("Install root: %s", installRoot)
	}

	if usage, err := disk.Usage("."); err == nil {
		log.Info("Free space here: %d GiB", usage.Free/(1<<30))
	}

	if predicted, ok := PathLength(cfg.ExtractDir); !ok {
		log.Warn("Predicted max path length %d exceeds %d", predicted, windowsMaxPath)
	} else {
		log.Success("Predicted max path length: %d", predicted)
	}
}
