// Package rawdir enumerates directory entries, preferring the directory
// syscall's own entry-type byte (d_type) over a per-entry stat call.
//
// This is the leaf of the traversal: it opens a directory, yields
// (name, kind) pairs for everything except "." and "..", and guarantees
// the directory handle is released on every exit path including a
// callback error. It never stats entries itself.
package rawdir

import "dumon/internal/job"

// VisitFunc is called once per directory entry. Returning a non-nil error
// stops enumeration early; Enumerate still releases the directory handle
// before returning that error to the caller.
type VisitFunc func(job.Entry) error
