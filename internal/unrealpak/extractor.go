package unrealpak

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Progress reporting gates: at most one line per interval, plus every
// Nth confirmation. Purely observational; never affects correctness.
const (
	progressEvery    = 50
	progressInterval = time.Second
)

// Extract runs the tool in extraction mode, unpacking archive into destDir,
// and verifies every confirmation line against the expected raw names from
// the listing. A confirmation for a name outside the expected set is an
// ErrProtocolMismatch; a final confirmed count that differs from the
// expected count is an ErrCountMismatch. With a nil expected set both
// checks are skipped and confirmations are only counted.
//
// Returns the number of confirmed extractions.
func Extract(ctx context.Context, runner Runner, archive, destDir, cryptoPath string, expected NameMapping, log Logger) (int, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, err
	}

	stream, err := runner.Start(ctx, archive, "-extract", destDir, "-cryptokeys="+cryptoPath)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	confirmed := 0
	total := len(expected)
	var lastReport time.Time

	for {
		line, ok := stream.Next()
		if !ok {
			break
		}

		m := reExtracted.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]

		if expected != nil {
			if _, ok := expected[name]; !ok {
				return confirmed, fmt.Errorf(
					"%w: tool extracted %q, which the listing of %s never mentioned",
					ErrProtocolMismatch, name, archive)
			}
		}
		confirmed++

		now := time.Now()
		if confirmed%progressEvery == 0 || now.Sub(lastReport) >= progressInterval {
			if expected != nil {
				log.Info("  Unpacking files: %d/%d", confirmed, total)
			} else {
				log.Info("  Unpacking files: %d", confirmed)
			}
			lastReport = now
		}
	}

	if err := stream.Err(); err != nil {
		return confirmed, fmt.Errorf("reading extraction of %s: %w", archive, err)
	}
	if err := stream.Close(); err != nil {
		return confirmed, fmt.Errorf("extracting %s: %w", archive, err)
	}

	if expected != nil {
		log.Info("  Unpacking files: %d/%d", confirmed, total)
		if confirmed != total {
			return confirmed, fmt.Errorf(
				"%w: expected %d files from %s, tool confirmed %d",
				ErrCountMismatch, total, archive, confirmed)
		}
	} else {
		log.Info("  Unpacking files: %d", confirmed)
	}
	return confirmed, nil
}
