package unrealpak

import "regexp"

// Pre-compiled regexes for the three recognized tool output line shapes.
// Every other line in the stream carries no protocol meaning and is
// ignored.
var (
	// Mount-point announcement in listing mode. All file entries that
	// follow are relative to this path.
	reMountPoint = regexp.MustCompile(`Mount point (.*)$`)

	// File entry in listing mode: a quoted raw name followed by its offset.
	reListedFile = regexp.MustCompile(`"(.*)" offset`)

	// Per-file confirmation in extraction mode.
	reExtracted = regexp.MustCompile(`Extracted "(.*?)" to `)
)

// mountRelPrefix is the relative-path prefix the tool reports mount points
// under; it is stripped before joining raw names.
const mountRelPrefix = "../../../"
