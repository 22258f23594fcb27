package unrealpak

import (
	"context"
	"fmt"
	"strings"

	"github.com/apocalyptech/wldata/internal/naming"
)

// NameMapping maps raw archive-relative names (exactly as listed, and as
// the tool extracts them) to their normalized final-tree paths. It is
// built fresh for each archive and discarded once the archive's merge
// completes.
type NameMapping map[string]string

// mountState tracks the lister's position in the tool's line protocol:
// no file entry is legal before the first mount announcement.
type mountState int

const (
	awaitingMount mountState = iota
	haveMount
)

// List runs the tool in listing mode against one archive and builds its
// NameMapping. Raw names are joined onto the current mount point and
// normalized; a file entry arriving before any mount announcement is an
// ErrProtocolMismatch. The archive itself is never modified.
func List(ctx context.Context, runner Runner, archive, cryptoPath string, norm *naming.Normalizer) (NameMapping, error) {
	stream, err := runner.Start(ctx, archive, "-list", "-cryptokeys="+cryptoPath)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	mapping := NameMapping{}
	state := awaitingMount
	mount := ""

	for {
		line, ok := stream.Next()
		if !ok {
			break
		}

		if m := reMountPoint.FindStringSubmatch(line); m != nil {
			mount = m[1]
			if strings.HasPrefix(mount, mountRelPrefix) {
				mount = mount[len(mountRelPrefix):]
			} else if mount == "/" {
				// A bare root mount only shows up in empty paks.
				mount = ""
			}
			state = haveMount
			continue
		}

		if m := reListedFile.FindStringSubmatch(line); m != nil {
			if state != haveMount {
				return nil, fmt.Errorf(
					"%w: file entry before any mount point in %s",
					ErrProtocolMismatch, archive)
			}
			raw := m[1]
			mapping[raw] = norm.Normalize(mount + raw)
		}
	}

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("reading listing of %s: %w", archive, err)
	}
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("listing %s: %w", archive, err)
	}
	return mapping, nil
}
