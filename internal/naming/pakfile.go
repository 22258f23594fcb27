// Package naming parses pak archive filenames into ordered descriptors and
// rewrites raw intra-archive paths into their canonical in-game locations.
package naming

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
)

// ErrMalformedArchiveName is returned when a filename does not match the
// pakchunk naming grammar. Unrecognized names are always a hard failure,
// never silently skipped.
var ErrMalformedArchiveName = errors.New("unrecognized pak filename")

// rePak recognizes `pakchunk<N>[optional]-<PlatformTag>[_<P>_P].<ext>`,
// with an optional leading directory prefix.
var rePak = regexp.MustCompile(
	`^(?:.*[/\\])?pakchunk(\d+)(optional)?-(\w+?)(?:_(\d+)_P)?\.\w+$`)

// PakFile describes one pak archive, parsed from its filename. Processing
// order (and therefore overwrite precedence) is governed by the three-key
// ordering (Datagroup, Optional, PatchNum), never by lexical filename order.
type PakFile struct {
	Filename  string
	Datagroup int
	Optional  bool
	Platform  string
	PatchNum  int // -1 when the name carries no _<P>_P suffix
	SizeBytes int64
}

// ParsePakName parses filename into a PakFile without touching the
// filesystem. SizeBytes is left zero; use NewPakFile to record it.
func ParsePakName(filename string) (PakFile, error) {
	m := rePak.FindStringSubmatch(filename)
	if m == nil {
		return PakFile{}, fmt.Errorf("%w: %s", ErrMalformedArchiveName, filename)
	}
	pf := PakFile{
		Filename: filename,
		Optional: m[2] != "",
		Platform: m[3],
		PatchNum: -1,
	}
	pf.Datagroup, _ = strconv.Atoi(m[1])
	if m[4] != "" {
		pf.PatchNum, _ = strconv.Atoi(m[4])
	}
	return pf, nil
}

// NewPakFile parses filename and stats the archive for its on-disk size.
func NewPakFile(filename string) (PakFile, error) {
	pf, err := ParsePakName(filename)
	if err != nil {
		return PakFile{}, err
	}
	fi, err := os.Stat(filename)
	if err != nil {
		return PakFile{}, fmt.Errorf("stat %s: %w", filename, err)
	}
	pf.SizeBytes = fi.Size()
	return pf, nil
}

// CanonicalName reformats the parsed fields back into a pak filename,
// dropping any directory prefix the original name carried.
func (p PakFile) CanonicalName() string {
	name := "pakchunk" + strconv.Itoa(p.Datagroup)
	if p.Optional {
		name += "optional"
	}
	name += "-" + p.Platform
	if p.PatchNum >= 0 {
		name += fmt.Sprintf("_%d_P", p.PatchNum)
	}
	return name + ".pak"
}

// Less orders archives by (datagroup, optional, patch number) ascending.
// An optional archive sorts after the plain archive of the same datagroup,
// and unpatched archives (PatchNum -1) sort before every patch.
func (p PakFile) Less(other PakFile) bool {
	if p.Datagroup != other.Datagroup {
		return p.Datagroup < other.Datagroup
	}
	if p.Optional != other.Optional {
		return !p.Optional
	}
	return p.PatchNum < other.PatchNum
}

// AudioOnly reports whether the archive's datagroup belongs to the given
// set of datagroups known to only carry audio bank data.
func (p PakFile) AudioOnly(audioGroups map[int]bool) bool {
	return audioGroups[p.Datagroup]
}

func (p PakFile) String() string {
	return p.Filename
}

// Sort arranges paks into processing order. Archives with equal ordering
// keys have unspecified relative order.
func Sort(paks []PakFile) {
	sort.Slice(paks, func(i, j int) bool { return paks[i].Less(paks[j]) })
}
