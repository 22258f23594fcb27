package naming

import "regexp"

// CaseFix corrects a known case mismatch between the names recorded in a
// pak index and the expected final tree. A directory rule renames a whole
// path segment directly under Scope; a file rule renames a basename under
// Scope regardless of extension.
//
// Rules run in declaration order against every normalized path, so a later
// rule's From must assume all earlier rules have already been applied.
// The exported fields map 1:1 onto the config file's case_fixes entries.
type CaseFix struct {
	Scope string `yaml:"scope" mapstructure:"scope"`
	From  string `yaml:"from" mapstructure:"from"`
	To    string `yaml:"to" mapstructure:"to"`
	Dir   bool   `yaml:"dir" mapstructure:"dir"`
}

// caseFixRule is a CaseFix compiled into a ready-to-apply rewrite.
type caseFixRule struct {
	re *regexp.Regexp
	to string
}

func compileCaseFix(f CaseFix) caseFixRule {
	scope := regexp.QuoteMeta(f.Scope)
	from := regexp.QuoteMeta(f.From)
	if f.Dir {
		return caseFixRule{
			re: regexp.MustCompile(`^` + scope + `/` + from + `/(.*)$`),
			to: f.Scope + "/" + f.To + "/$1",
		}
	}
	return caseFixRule{
		re: regexp.MustCompile(`^` + scope + `/` + from + `\.(\w+)$`),
		to: f.Scope + "/" + f.To + ".$1",
	}
}

func (r caseFixRule) apply(path string) string {
	return r.re.ReplaceAllString(path, r.to)
}
