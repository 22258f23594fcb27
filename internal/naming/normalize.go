package naming

import "regexp"

// Recognized raw-path shapes. Anything matching neither passes through
// unchanged (apart from case fixes).
var (
	rePluginWrapped  = regexp.MustCompile(`^.+?/Plugins/(.*?)\s*$`)
	reContentWrapped = regexp.MustCompile(`^(?:.*/)?(\w+)/Content/(.*?)\s*$`)
)

// Normalizer rewrites a raw intra-archive path (already relativized against
// the current mount point) into its canonical final-tree path. It is pure:
// identical input and configuration always produce identical output.
type Normalizer struct {
	rootOverrides map[string]string
	fixes         []caseFixRule
}

// NewNormalizer builds a Normalizer from the root-name override table and
// the ordered case-fix rules. Both tables are copied, so later mutation of
// the caller's values has no effect.
func NewNormalizer(rootOverrides map[string]string, fixes []CaseFix) *Normalizer {
	n := &Normalizer{
		rootOverrides: make(map[string]string, len(rootOverrides)),
		fixes:         make([]caseFixRule, 0, len(fixes)),
	}
	for k, v := range rootOverrides {
		n.rootOverrides[k] = v
	}
	for _, f := range fixes {
		n.fixes = append(n.fixes, compileCaseFix(f))
	}
	return n
}

// Normalize maps a raw path to its in-game location. Plugin-wrapped paths
// keep only the part after the Plugins/ segment; otherwise content-wrapped
// paths become <root>/<rest> with the root-name override table applied to
// <root>. Case fixes always run last, in declaration order.
func (n *Normalizer) Normalize(raw string) string {
	out := raw
	if m := rePluginWrapped.FindStringSubmatch(out); m != nil {
		out = m[1]
	} else if m := reContentWrapped.FindStringSubmatch(out); m != nil {
		root := m[1]
		if override, ok := n.rootOverrides[root]; ok {
			root = override
		}
		out = root + "/" + m[2]
	}
	for _, fix := range n.fixes {
		out = fix.apply(out)
	}
	return out
}
