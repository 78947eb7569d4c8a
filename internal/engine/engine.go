// Package engine wires the directory reader, counter, dispatcher, status
// reporter, tree collector, and report writer into the single pipeline
// the CLI drives: compile filters, dedup roots, run the worker pool,
// then walk and render the resulting tree for every surviving root.
package engine

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"dumon/internal/counter"
	"dumon/internal/dispatch"
	"dumon/internal/fserr"
	"dumon/internal/fsmeta"
	"dumon/internal/inodeset"
	"dumon/internal/job"
	"dumon/internal/pathfilter"
	"dumon/internal/progress"
	"dumon/internal/report"
	"dumon/internal/tree"
	"dumon/internal/userdb"
)

// Unlimited is the sentinel MaxDepth value meaning "no depth cutoff".
const Unlimited = -1

// Config holds every user-facing knob the CLI exposes.
type Config struct {
	Roots          []string
	Workers        int
	MaxDepth       int
	FileLimit      uint64
	SizeLimit      uint64
	Include        string
	Exclude        string
	ExcludeSubdirs bool
	Quiet          bool
	UserMode       bool
	Human          bool
	StatusInterval time.Duration
	Table          bool
}

// Run executes the whole pipeline once: enumerate, count, dispatch,
// collect, and render. It writes results to stdout and diagnostics to
// stderr, and returns the first fatal error the dispatcher observed (if
// any); partial results are always written before an error is returned,
// since the barrier is the only point at which work can be lost.
func Run(cfg Config, stdout, stderr io.Writer) error {
	filter, err := pathfilter.Compile(cfg.Include, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("invalid filter regex: %w", err)
	}

	roots, err := tree.DedupRoots(cfg.Roots)
	if err != nil {
		return err
	}

	var users *userdb.DB
	if cfg.UserMode {
		users = userdb.Build()
	}

	reporter := progress.New(stderr, cfg.StatusInterval)
	reporter.Start()

	inodes := inodeset.New()
	c := counter.New(filter, inodes, stderr)
	onProgress := func(path string, p counter.Progress) { reporter.Update(path, p) }
	d := dispatch.New(c, cfg.Workers, onProgress)

	var jobs []job.Job
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			fmt.Fprintf(stderr, "# could not resolve root %s: %v\n", r, err)
			continue
		}
		meta, err := fsmeta.Lstat(abs)
		if err != nil {
			if msg := fserr.Message(abs, err); msg != "" {
				fmt.Fprintln(stderr, msg)
			} else {
				fmt.Fprintf(stderr, "# could not access root %s: %v\n", abs, err)
			}
			continue
		}
		jobs = append(jobs, job.Job{AbsPath: abs, Name: r, ParentInode: 0, Inode: meta.Inode})
	}

	results, runErr := d.Run(jobs)
	reporter.Stop()

	idx := tree.BuildIndex(results)

	rw := report.New(stdout, cfg.Human, users)
	if !cfg.Quiet && !cfg.Table {
		rw.Header(cfg.UserMode)
	}

	selOpts := tree.SelectOptions{
		Filter:    filter,
		MaxDepth:  cfg.MaxDepth,
		FileLimit: cfg.FileLimit,
		SizeLimit: cfg.SizeLimit,
		UserMode:  cfg.UserMode,
	}

	for _, j := range jobs {
		nodes := tree.Walk(idx, j.Inode, j.Name, tree.Options{ExcludeSubdirs: cfg.ExcludeSubdirs})
		rows, userRows := tree.Select(nodes, selOpts)

		if cfg.Table {
			report.WriteTable(stdout, rows, userRows, cfg.Human, users)
			continue
		}
		for _, row := range rows {
			rw.WriteRow(row)
		}
		for _, ur := range userRows {
			rw.WriteUserRow(ur)
		}
	}

	if runErr != nil {
		fmt.Fprintln(stderr, runErr)
	}
	return runErr
}
