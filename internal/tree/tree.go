// Package tree builds the parent-to-children directory tree from a flat
// slice of counting results and walks it depth-first to produce the
// final, filtered, depth-bounded rows a report renders.
//
// The rolled-up total at any directory is the recursive sum of every
// descendant's own per-uid buckets; a directory never separately charges
// a placeholder entry for its subdirectories, since a subdirectory is
// already fully represented by its own contribution to the sum once the
// roll-up reaches it. Charging both would double-count every
// subdirectory relative to a directory's own recursive content.
package tree

import "dumon/internal/job"

// Index is the parent/child lookup structure built once from every
// DirResult a traversal produced.
type Index struct {
	all  map[uint64]*job.Result
	tree map[uint64][]uint64
}

// BuildIndex indexes results by inode and groups them by parent_inode, in
// the order they appear in results (insertion order is preserved per
// parent). Results from a concurrent dispatch.Run are in the order the
// directories finished counting, not the order they were discovered in.
func BuildIndex(results []*job.Result) *Index {
	idx := &Index{
		all:  make(map[uint64]*job.Result, len(results)),
		tree: make(map[uint64][]uint64),
	}
	for _, r := range results {
		idx.all[r.Inode] = r
		idx.tree[r.ParentInode] = append(idx.tree[r.ParentInode], r.Inode)
	}
	return idx
}

// Node is one directory's position in a depth-first walk: its
// reconstructed path, its depth from the root it was reached from (root
// is depth 0), and its per-uid buckets after roll-up (or, with
// ExcludeSubdirs, its own buckets untouched).
type Node struct {
	Path        string
	Depth       int
	PerUIDCount map[uint32]uint64
	PerUIDSize  map[uint32]uint64
}

// Options configures the depth-first walk. It carries no output
// filtering: filtering which Nodes become report rows is a separate,
// later decision (see Select) so the walk itself always visits the
// whole tree and every parent's roll-up is complete.
type Options struct {
	// ExcludeSubdirs suppresses roll-up: each directory's Node carries
	// only its own per-uid buckets, with no descendant merged in.
	ExcludeSubdirs bool
}

// Walk performs the depth-first collect over one root and returns every
// Node it visited, in pre-order (a directory before its children). A
// root whose inode has no entry in idx (an inaccessible root, per the
// access-denied tolerance policy) yields no nodes at all.
func Walk(idx *Index, rootInode uint64, rootName string, opts Options) []Node {
	w := &walker{idx: idx, opts: opts, rolledUp: make(map[uint64]bool)}
	w.visit(rootInode, []string{rootName}, 0)
	return w.nodes
}

type walker struct {
	idx      *Index
	opts     Options
	rolledUp map[uint64]bool
	nodes    []Node
}

// visit computes and records the Node for inode, recursing into its
// children first so their totals are available to merge, and returns the
// per-uid buckets that should be folded into whatever called it (the
// parent's roll-up, or nothing for the outermost call).
func (w *walker) visit(inode uint64, pathStack []string, depth int) (map[uint32]uint64, map[uint32]uint64) {
	res, ok := w.idx.all[inode]
	if !ok {
		// Lookup miss: an inaccessible directory never produced a
		// DirResult, but its parent may already have enqueued it as a
		// child inode. Tolerate the dangling reference by contributing
		// nothing.
		return map[uint32]uint64{}, map[uint32]uint64{}
	}

	count := cloneBucket(res.PerUIDCount)
	size := cloneBucket(res.PerUIDSize)

	path := joinPath(pathStack)
	nodeIdx := len(w.nodes)
	w.nodes = append(w.nodes, Node{Path: path, Depth: depth})

	for _, childInode := range w.idx.tree[inode] {
		child, ok := w.idx.all[childInode]
		if !ok {
			continue
		}
		childStack := append(append([]string{}, pathStack...), child.Name)
		childCount, childSize := w.visit(childInode, childStack, depth+1)

		if !w.opts.ExcludeSubdirs && !w.rolledUp[childInode] {
			mergeInto(count, childCount)
			mergeInto(size, childSize)
			w.rolledUp[childInode] = true
		}
	}

	w.nodes[nodeIdx].PerUIDCount = count
	w.nodes[nodeIdx].PerUIDSize = size
	return count, size
}

func cloneBucket(src map[uint32]uint64) map[uint32]uint64 {
	dst := make(map[uint32]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func mergeInto(dst, src map[uint32]uint64) {
	for k, v := range src {
		dst[k] += v
	}
}

func joinPath(stack []string) string {
	out := stack[0]
	for _, seg := range stack[1:] {
		out += "/" + seg
	}
	return out
}

// Total sums a Node's per-uid bucket across every uid.
func Total(bucket map[uint32]uint64) uint64 {
	var sum uint64
	for _, v := range bucket {
		sum += v
	}
	return sum
}
