package tree

import (
	"path/filepath"
	"sort"
	"strings"
)

// DedupRoots canonicalizes every root to an absolute, cleaned path,
// sorts them, and drops any root that is a subdirectory of an earlier
// one, so overlapping invocations like "/a /a/b" only walk "/a" once.
// Input order among the surviving, non-overlapping roots is preserved.
func DedupRoots(paths []string) ([]string, error) {
	type canon struct {
		orig string
		abs  string
	}
	canons := make([]canon, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		canons[i] = canon{orig: p, abs: filepath.Clean(abs)}
	}

	sorted := append([]canon(nil), canons...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].abs < sorted[j].abs })

	keep := make(map[string]bool, len(sorted))
	var kept []string
	for _, c := range sorted {
		covered := false
		for _, k := range kept {
			if c.abs == k || strings.HasPrefix(c.abs, k+string(filepath.Separator)) {
				covered = true
				break
			}
		}
		if !covered {
			kept = append(kept, c.abs)
			keep[c.abs] = true
		}
	}

	var out []string
	seen := make(map[string]bool, len(canons))
	for _, c := range canons {
		if keep[c.abs] && !seen[c.abs] {
			out = append(out, c.orig)
			seen[c.abs] = true
		}
	}
	return out, nil
}
