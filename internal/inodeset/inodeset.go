// Package inodeset tracks inode numbers already charged for size, shared
// by every worker goroutine so a file hard-linked across two subtrees is
// only counted once. Giving each worker its own set would under-dedup
// any file linked across worker boundaries, so this set is promoted to a
// single shared structure, backed by xsync's lock-free map instead of a
// mutex-guarded one so the dedup check doesn't become a contention point
// under a wide worker pool.
package inodeset

import "github.com/puzpuzpuz/xsync/v3"

// Set tracks which inodes have already had their size charged to a
// directory, so a hard-linked file is only counted once across the run.
type Set struct {
	seen *xsync.MapOf[uint64, struct{}]
}

// New returns an empty Set.
func New() *Set {
	return &Set{seen: xsync.NewMapOf[uint64, struct{}]()}
}

// ShouldChargeSize reports whether the caller's directory should add this
// file's size to its own-size bucket:
//
//   - nlink == 1: always charge (no dedup possible, not worth tracking).
//   - nlink > 1: charge only the first time this inode is observed.
//
// The file's count is always incremented by the caller regardless of this
// result; only size charging is deduplicated.
func (s *Set) ShouldChargeSize(inode uint64, nlink uint32) bool {
	if nlink <= 1 {
		return true
	}
	_, loaded := s.seen.LoadOrStore(inode, struct{}{})
	return !loaded
}

// Len returns the number of distinct hard-linked inodes observed so far.
func (s *Set) Len() int {
	return s.seen.Size()
}
