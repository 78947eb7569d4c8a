// Package pathfilter compiles the --include/--exclude regexes used by the
// counter and the tree collector. Patterns are anchored to both ends of
// the full path at compile time, so the regex must match the whole path,
// not just a prefix or a suffix.
package pathfilter

import "regexp"

// Filter holds the optional compiled include/exclude patterns. A nil
// *regexp.Regexp field means that dimension is unfiltered.
type Filter struct {
	include *regexp.Regexp
	exclude *regexp.Regexp
}

// Compile builds a Filter from raw, unanchored user patterns. Either may be
// empty, meaning that dimension imposes no filtering.
func Compile(includePattern, excludePattern string) (*Filter, error) {
	f := &Filter{}
	var err error
	if includePattern != "" {
		if f.include, err = compileAnchored(includePattern); err != nil {
			return nil, err
		}
	}
	if excludePattern != "" {
		if f.exclude, err = compileAnchored(excludePattern); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + pattern + ")$")
}

// HasInclude reports whether an include filter is configured.
func (f *Filter) HasInclude() bool { return f != nil && f.include != nil }

// HasExclude reports whether an exclude filter is configured.
func (f *Filter) HasExclude() bool { return f != nil && f.exclude != nil }

// Included reports whether fullPath passes the include filter. With no
// include filter configured, everything passes.
func (f *Filter) Included(fullPath string) bool {
	if !f.HasInclude() {
		return true
	}
	return f.include.MatchString(fullPath)
}

// Excluded reports whether fullPath is dropped by the exclude filter. With
// no exclude filter configured, nothing is excluded.
func (f *Filter) Excluded(fullPath string) bool {
	if !f.HasExclude() {
		return false
	}
	return f.exclude.MatchString(fullPath)
}
