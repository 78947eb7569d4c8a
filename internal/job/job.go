// Package job defines the data types passed between the directory reader,
// the per-directory counter, and the dispatcher: directory entries, file
// metadata, directory results, and the job queue items that drive descent.
package job

import "os"

// Kind classifies a directory entry without requiring a stat call.
type Kind int

const (
	// KindUnknown means the directory-read syscall did not carry a usable
	// entry type (no d_type support, or the filesystem returned DT_UNKNOWN).
	KindUnknown Kind = iota
	KindDir
	KindFile
	KindOther
)

// Entry is a transient (name, kind) pair as yielded by the directory reader.
type Entry struct {
	Name string
	Kind Kind
}

// Meta is the subset of lstat(2) fields the counter needs. Everything but
// Mode is used purely for bookkeeping; Mode is only inspected to confirm
// directory-ness when an Entry's Kind is KindUnknown.
type Meta struct {
	Size  int64
	UID   uint32
	Inode uint64
	Nlink uint32
	Mode  os.FileMode
}

// Result is the output of counting one directory: its own non-recursive
// file count/size, bucketed by owning uid. ParentInode is the inode of the
// directory that enqueued this one; root directories carry ParentInode 0.
type Result struct {
	Name        string
	ParentInode uint64
	Inode       uint64
	PerUIDCount map[uint32]uint64
	PerUIDSize  map[uint32]uint64
}

// NewResult allocates a Result with initialized per-uid buckets.
func NewResult(name string, parentInode, inode uint64) *Result {
	return &Result{
		Name:        name,
		ParentInode: parentInode,
		Inode:       inode,
		PerUIDCount: make(map[uint32]uint64),
		PerUIDSize:  make(map[uint32]uint64),
	}
}

// Job instructs a worker to descend into an absolute directory path.
//
// This carries a fully resolved absolute path rather than a parent
// directory plus a chdir into it, so a worker never has to serialize on a
// process-wide working directory and can hold several jobs' worth of
// state at once. AbsPath is the parent's AbsPath joined with Name; for a
// root job it is simply the root path itself.
type Job struct {
	AbsPath     string
	Name        string
	ParentInode uint64
	Inode       uint64
}
