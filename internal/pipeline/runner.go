// Package pipeline sequences archives through listing, extraction, and
// merge, and reports aggregate stats.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apocalyptech/wldata/internal/config"
	"github.com/apocalyptech/wldata/internal/display"
	"github.com/apocalyptech/wldata/internal/logging"
	"github.com/apocalyptech/wldata/internal/merge"
	"github.com/apocalyptech/wldata/internal/naming"
	"github.com/apocalyptech/wldata/internal/unrealpak"
)

// Stage identifies where an archive is in its processing lifecycle.
type Stage string

const (
	StagePending    Stage = "pending"
	StageListing    Stage = "listing"
	StageExtracting Stage = "extracting"
	StageMerging    Stage = "merging"
	StageDone       Stage = "done"
)

// Runner drives the per-archive pipeline. The staging directory is shared
// between archives, so each archive is fully listed, extracted, and
// merged before the next one begins; that strict sequencing is what makes
// later archives overwrite earlier ones at identical final paths.
type Runner struct {
	cfg  *config.Config
	log  *logging.Logger
	tool unrealpak.Runner
	norm *naming.Normalizer
}

// New builds a Runner. The normalizer and tool runner are injected so
// tests can substitute scripted implementations.
func New(cfg *config.Config, log *logging.Logger, tool unrealpak.Runner, norm *naming.Normalizer) *Runner {
	return &Runner{cfg: cfg, log: log, tool: tool, norm: norm}
}

// Run processes paks in ascending descriptor order. The first failure at
// any stage aborts the run; later archives are never attempted past a
// broken one, and whatever reached disk stays there for inspection.
func (r *Runner) Run(ctx context.Context, paks []naming.PakFile) (RunStats, error) {
	naming.Sort(paks)

	var stats RunStats
	stats.Archives = len(paks)
	for _, p := range paks {
		stats.TotalPakBytes += p.SizeBytes
	}

	staging := r.cfg.StagingDir()
	// Stale staging from an aborted earlier run would pollute the first
	// archive's merge.
	if err := os.RemoveAll(staging); err != nil {
		return stats, err
	}

	crypto, err := filepath.Abs(r.cfg.CryptoPath)
	if err != nil {
		return stats, err
	}

	for i, pak := range paks {
		stats.Current = i + 1
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		r.log.Info("[%d/%d] Processing %s (%s)",
			stats.Current, stats.Archives,
			filepath.Base(pak.Filename), display.FormatBytes(pak.SizeBytes))

		if err := r.processArchive(ctx, pak, staging, crypto, &stats); err != nil {
			return stats, err
		}
		stats.Processed++
	}

	r.logSummary(&stats)
	return stats, nil
}

// processArchive walks one archive through the stage machine. Every error
// is wrapped with the stage it happened in.
func (r *Runner) processArchive(ctx context.Context, pak naming.PakFile, staging, crypto string, stats *RunStats) error {
	base := filepath.Base(pak.Filename)
	stage := StagePending

	fail := func(err error) error {
		return fmt.Errorf("%s: %s: %w", base, stage, err)
	}

	stage = StageListing
	r.log.Debug("%s: %s", base, stage)
	mapping, err := unrealpak.List(ctx, r.tool, pak.Filename, crypto, r.norm)
	if err != nil {
		return fail(err)
	}
	r.log.Info("  Listed %s", display.Plural(len(mapping), "file"))
	stats.FilesMapped += len(mapping)

	if r.cfg.DryRun {
		r.log.Info("  Dry run, skipping extraction")
		return nil
	}

	stage = StageExtracting
	r.log.Debug("%s: %s", base, stage)
	extracted, err := unrealpak.Extract(ctx, r.tool, pak.Filename, staging, crypto, mapping, r.log)
	if err != nil {
		return fail(err)
	}
	stats.FilesExtracted += extracted

	stage = StageMerging
	r.log.Debug("%s: %s", base, stage)
	pruned, err := merge.Prune(staging, r.cfg.PruneFilePatterns, r.cfg.PruneDirPatterns)
	if err != nil {
		return fail(err)
	}
	if pruned.Files > 0 || pruned.Dirs > 0 {
		r.log.Info("  Pruned %s and %s per config",
			display.Plural(pruned.Files, "file"), display.Plural(pruned.Dirs, "dir"))
	}
	stats.PrunedFiles += pruned.Files
	stats.PrunedDirs += pruned.Dirs

	r.log.Info("  Moving files to in-game locations")
	if err := merge.Merge(staging, r.cfg.ExtractDir, mapping); err != nil {
		return fail(err)
	}

	stage = StageDone
	r.log.Debug("%s: %s", base, stage)
	return nil
}

func (r *Runner) logSummary(stats *RunStats) {
	if r.cfg.DryRun {
		r.log.Success("Dry run done: %s listed, %s mapped",
			display.Plural(stats.Processed, "archive"),
			display.Plural(stats.FilesMapped, "file"))
		return
	}
	r.log.Success("Done: %s processed (%s of pak data), %s extracted",
		display.Plural(stats.Processed, "archive"),
		display.FormatBytes(stats.TotalPakBytes),
		display.Plural(stats.FilesExtracted, "file"))
	if stats.PrunedFiles > 0 || stats.PrunedDirs > 0 {
		r.log.Info("Pruned %s and %s total",
			display.Plural(stats.PrunedFiles, "file"),
			display.Plural(stats.PrunedDirs, "dir"))
	}
}
