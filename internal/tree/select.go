package tree

import "dumon/internal/pathfilter"

// Row is one non-user-mode output line: a directory's rolled-up file
// count and byte total.
type Row struct {
	Path  string
	Count uint64
	Size  uint64
}

// UserRow is one --user-mode output line: one uid's slice of a
// directory's rolled-up buckets.
type UserRow struct {
	Path  string
	UID   uint32
	Count uint64
	Size  uint64
}

// SelectOptions configures which Nodes become output rows. MaxDepth < 0
// means unlimited.
type SelectOptions struct {
	Filter    *pathfilter.Filter
	MaxDepth  int
	FileLimit uint64
	SizeLimit uint64
	UserMode  bool
}

// Select turns a depth-first Node list into output rows, applying the
// zero-zero path filter, the depth cutoff, and the file/size thresholds.
// Nodes beyond --max-depth are still counted toward their ancestors by
// Walk (they were never excluded from roll-up); Select only decides
// whether a Node is itself emitted.
//
// Exactly one of the returned slices is populated, matching UserMode.
func Select(nodes []Node, opts SelectOptions) ([]Row, []UserRow) {
	var rows []Row
	var userRows []UserRow

	for _, n := range nodes {
		total := Total(n.PerUIDCount)
		totalSize := Total(n.PerUIDSize)

		if total == 0 && totalSize == 0 && zeroZeroDropped(opts.Filter, n.Path) {
			continue
		}
		if opts.MaxDepth >= 0 && n.Depth > opts.MaxDepth {
			continue
		}

		if opts.UserMode {
			for uid, count := range n.PerUIDCount {
				size := n.PerUIDSize[uid]
				if count > opts.FileLimit || size > opts.SizeLimit {
					userRows = append(userRows, UserRow{Path: n.Path, UID: uid, Count: count, Size: size})
				}
			}
			continue
		}

		if total >= opts.FileLimit && totalSize >= opts.SizeLimit {
			rows = append(rows, Row{Path: n.Path, Count: total, Size: totalSize})
		}
	}

	return rows, userRows
}

// zeroZeroDropped reports whether a zero-count, zero-size path should be
// dropped: true if it matches an exclude pattern, or an include pattern
// is configured and the path fails to match it.
func zeroZeroDropped(f *pathfilter.Filter, path string) bool {
	if f.Excluded(path) {
		return true
	}
	if f.HasInclude() && !f.Included(path) {
		return true
	}
	return false
}
