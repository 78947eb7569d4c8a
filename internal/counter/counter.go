// Package counter implements the per-directory counting routine. For one
// directory it separates entries into subdirs and non-dirs, stats the
// non-dirs (fanning the stat calls out to helper goroutines for large
// directories), applies include/exclude filters, updates per-uid
// count/size buckets, dedups hard-linked inodes, and enqueues descent
// jobs for every subdirectory.
package counter

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"dumon/internal/fserr"
	"dumon/internal/fsmeta"
	"dumon/internal/inodeset"
	"dumon/internal/job"
	"dumon/internal/pathfilter"
	"dumon/internal/rawdir"
)

// LargeDirThreshold is the non-dir entry count above which stat calls are
// fanned out to helper goroutines instead of running inline.
const LargeDirThreshold = 1000

// Split is the number of contiguous slices a large directory's file list
// is divided into for the stat fan-out.
const Split = 2

// ProgressEvery is how many counted files trigger an intra-directory
// progress update.
const ProgressEvery = 10_000

// Counter performs the per-directory counting contract. It is safe for
// concurrent use by multiple workers: its only mutable shared state is the
// InodeSet (itself concurrency-safe) and the diagnostic writer, which is
// guarded by logMu since every worker shares one Counter.
type Counter struct {
	Filter *pathfilter.Filter
	Inodes *inodeset.Set
	Stderr io.Writer

	logMu sync.Mutex
}

// New builds a Counter. filter may be nil, meaning no include/exclude
// filtering. stderr receives the spec.md §7 "# "-prefixed diagnostic line
// for every recoverable (EACCES/ENOENT) error the counter hits; it may be
// nil to discard them.
func New(filter *pathfilter.Filter, inodes *inodeset.Set, stderr io.Writer) *Counter {
	return &Counter{Filter: filter, Inodes: inodes, Stderr: stderr}
}

// logSkip writes the spec.md §7 diagnostic line for a recoverable error
// hit at path, if one applies. Safe for concurrent use.
func (c *Counter) logSkip(path string, err error) {
	msg := fserr.Message(path, err)
	if msg == "" || c.Stderr == nil {
		return
	}
	c.logMu.Lock()
	defer c.logMu.Unlock()
	fmt.Fprintln(c.Stderr, msg)
}

// Progress is an intra-directory progress update: countDelta files were
// counted, charging sizeDelta additional bytes, since the last update.
type Progress struct {
	CountDelta int64
	SizeDelta  int64
}

// ErrSkipped is returned by Count when the directory itself could not be
// opened or read for a recoverable reason (EACCES/ENOENT): the job
// completes with no DirResult, but the barrier still balances. The
// matching spec.md §7 diagnostic line has already been written to
// c.Stderr by the time Count returns it.
var ErrSkipped = errors.New("counter: directory skipped (access denied or missing)")

// Count counts one directory. onProgress, if non-nil, is invoked every
// ProgressEvery counted files and once more at the end with the
// remainder.
//
// It returns the DirResult for j, the descent jobs for every subdirectory
// found (every subdirectory is enqueued for descent regardless of
// whether the include filter excludes it), and an error. A non-nil error
// that wraps ErrSkipped means the job produced no result and the caller
// must still account for it in the barrier; any other error is fatal for
// the worker processing it.
func (c *Counter) Count(j job.Job, onProgress func(Progress)) (*job.Result, []job.Job, error) {
	var dirs, files []job.Entry

	err := rawdir.Enumerate(j.AbsPath, func(e job.Entry) error {
		full := filepath.Join(j.AbsPath, e.Name)
		if c.Filter.Excluded(full) {
			return nil
		}
		if e.Kind == job.KindDir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
		return nil
	})
	if err != nil {
		if isRecoverable(err) {
			c.logSkip(j.AbsPath, err)
			return nil, nil, ErrSkipped
		}
		return nil, nil, err
	}

	result := job.NewResult(j.Name, j.ParentInode, j.Inode)

	var progressCount, progressSize int64
	flush := func() {
		if onProgress != nil && (progressCount != 0 || progressSize != 0) {
			onProgress(Progress{CountDelta: progressCount, SizeDelta: progressSize})
			progressCount, progressSize = 0, 0
		}
	}

	metas, valid, err := c.statAll(j.AbsPath, files)
	if err != nil {
		return nil, nil, err
	}

	for i, e := range files {
		if !valid[i] {
			continue
		}
		meta := metas[i]
		kind := e.Kind
		full := filepath.Join(j.AbsPath, e.Name)

		// The filesystem didn't carry d_type: resolve it from the stat
		// we just did.
		if kind == job.KindUnknown && meta.Mode.IsDir() {
			dirs = append(dirs, e)
			continue
		}

		if c.Filter != nil && c.Filter.HasInclude() && !c.Filter.Included(full) {
			continue
		}

		if c.Inodes.ShouldChargeSize(meta.Inode, meta.Nlink) {
			result.PerUIDSize[meta.UID] += uint64(meta.Size)
			progressSize += meta.Size
		}
		result.PerUIDCount[meta.UID]++
		progressCount++

		if progressCount >= ProgressEvery {
			flush()
		}
	}
	flush()

	// Subdirectories never contribute their own entry to this directory's
	// buckets: the roll-up in internal/tree recursively folds each
	// descendant's own-file buckets upward, and double-charging a
	// directory both as a one-entry placeholder here and again via its
	// rolled-up contents produces counts that don't match a plain
	// recursive sum. A subdirectory is stat'd only to resolve its inode
	// for the tree and to decide whether descending into it is still
	// worthwhile; it is always enqueued, include-filter notwithstanding,
	// so its own matching descendants can still be found.
	children := make([]job.Job, 0, len(dirs))
	for _, d := range dirs {
		full := filepath.Join(j.AbsPath, d.Name)
		meta, err := fsmeta.Lstat(full)
		if err != nil {
			if isRecoverable(err) {
				c.logSkip(full, err)
				continue
			}
			return nil, nil, err
		}

		children = append(children, job.Job{
			AbsPath:     full,
			Name:        d.Name,
			ParentInode: j.Inode,
			Inode:       meta.Inode,
		})
	}

	return result, children, nil
}

// statAll resolves metadata for every file entry, fanning the lstat calls
// out across Split helper goroutines when there are more than
// LargeDirThreshold of them, and running them inline otherwise.
func (c *Counter) statAll(dirPath string, files []job.Entry) ([]job.Meta, []bool, error) {
	metas := make([]job.Meta, len(files))
	valid := make([]bool, len(files))

	statOne := func(i int) error {
		full := filepath.Join(dirPath, files[i].Name)
		m, err := fsmeta.Lstat(full)
		if err != nil {
			if isRecoverable(err) {
				c.logSkip(full, err)
				return nil
			}
			return err
		}
		metas[i] = m
		valid[i] = true
		return nil
	}

	if len(files) <= LargeDirThreshold {
		for i := range files {
			if err := statOne(i); err != nil {
				return nil, nil, err
			}
		}
		return metas, valid, nil
	}

	var g errgroup.Group
	chunk := (len(files) + Split - 1) / Split
	for s := 0; s < len(files); s += chunk {
		end := s + chunk
		if end > len(files) {
			end = len(files)
		}
		s, end := s, end
		g.Go(func() error {
			for i := s; i < end; i++ {
				if err := statOne(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return metas, valid, nil
}

// isRecoverable reports whether err is one of the two error classes
// treated as "log and skip" rather than fatal: access denied (EACCES) or
// a missing path (ENOENT).
func isRecoverable(err error) bool {
	return fserr.Recoverable(err)
}
