// matcher.go implements glob matching of directory entry names against
// an exclusion list.
package funcignore

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher decides whether a top-level entry name is excluded.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	patterns []string
}

// NewMatcher compiles an exclusion list into a Matcher. Every pattern is
// validated up front so a typo in .funcignore is reported once, with the
// offending pattern, rather than silently matching nothing.
func NewMatcher(list *ExclusionList) (*Matcher, error) {
	for _, p := range list.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclusion pattern %q", p)
		}
	}
	return &Matcher{patterns: list.Patterns}, nil
}

// Excluded reports whether the given entry name matches any exclusion
// pattern. Matching is against the bare name, not a path — directory
// entries are matched by name, which excludes their whole subtree
// because filtering happens before the archive walk descends into them.
func (m *Matcher) Excluded(name string) bool {
	for _, p := range m.patterns {
		// ValidatePattern ran at construction time, so Match cannot
		// return ErrBadPattern here.
		ok, _ := doublestar.Match(p, name)
		if ok {
			return true
		}
	}
	return false
}

// Patterns returns the compiled pattern list in file order.
func (m *Matcher) Patterns() []string {
	return m.patterns
}
