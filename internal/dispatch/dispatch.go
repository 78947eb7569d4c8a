// Package dispatch implements the worker pool and completion barrier. It
// is adapted from cwalk.go's Walker / walkWorker machinery — the
// per-worker job deque, the cross-worker work stealing, and the
// steal-fails-everywhere shutdown condition are kept close to the
// original design, generalized from walkBranch (a single rooted path) to
// job.Job (an absolute path plus the tree bookkeeping the counter
// needs).
//
// Termination relies on the proven mechanism inherited from cwalk (work
// exhausted and stealing fails everywhere) as the actual control flow;
// atomic submitted/completed counters are layered on top purely so
// callers can observe and assert that the barrier balances.
package dispatch

import (
	"errors"
	"sync"
	"sync/atomic"

	"dumon/internal/counter"
	"dumon/internal/job"
)

// ProgressFunc receives an intra-directory progress update tagged with the
// path of the directory it came from; it feeds the status reporter.
type ProgressFunc func(path string, p counter.Progress)

// Dispatcher owns the worker pool and the shared job queues. Create one
// with New and run it once with Run; like cwalk's Walker it is not meant
// to be reused.
type Dispatcher struct {
	counter    *counter.Counter
	numWorkers int
	onProgress ProgressFunc

	workerMu sync.Mutex
	workers  []*dirWorker

	resultsMu sync.Mutex
	results   []*job.Result

	submitted atomic.Int64
	completed atomic.Int64

	errMu sync.Mutex
	err   error

	wg sync.WaitGroup
}

// New builds a Dispatcher with numWorkers worker goroutines (minimum 1).
// onProgress may be nil.
func New(c *counter.Counter, numWorkers int, onProgress ProgressFunc) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &Dispatcher{counter: c, numWorkers: numWorkers, onProgress: onProgress}
}

// dirWorker holds one worker's local job deque.
//
// Each worker maintains a local queue of jobs to process and can steal
// work from other workers when its queue is empty, exactly as cwalk's
// walkWorker does for walkBranch values.
type dirWorker struct {
	id    int
	mu    sync.Mutex
	queue []job.Job
	pool  *Dispatcher
}

func (w *dirWorker) queueLen() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

func (w *dirWorker) queuePush(j job.Job) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue = append(w.queue, j)
}

func (w *dirWorker) queuePop() (job.Job, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.queue) == 0 {
		return job.Job{}, false
	}
	last := len(w.queue) - 1
	j := w.queue[last]
	w.queue = w.queue[:last]
	return j, true
}

// Run seeds the queue with roots, processes the whole tree to completion,
// and returns every DirResult produced along the way. Submitted() and
// Completed() are stable once Run returns, and equal whenever Run returns
// a nil error. After a fatal error the failing worker stops, and the job
// left in its queue (other workers only steal from a queue holding more
// than one) is never processed, so Completed() can be lower.
func (d *Dispatcher) Run(roots []job.Job) ([]*job.Result, error) {
	d.workerMu.Lock()
	for i := 0; i < d.numWorkers; i++ {
		w := &dirWorker{id: i, pool: d}
		d.workers = append(d.workers, w)
	}
	d.workerMu.Unlock()

	// Seed: distribute root jobs round-robin so a multi-root invocation
	// doesn't start out pinned to a single worker.
	for i, r := range roots {
		w := d.workers[i%len(d.workers)]
		w.queuePush(r)
	}
	d.submitted.Add(int64(len(roots)))

	d.wg.Add(d.numWorkers)
	for _, w := range d.workers {
		go d.runWorker(w)
	}
	d.wg.Wait()

	d.errMu.Lock()
	err := d.err
	d.errMu.Unlock()

	return d.results, err
}

// Submitted returns the total number of jobs ever enqueued, including the
// seeded roots.
func (d *Dispatcher) Submitted() int64 { return d.submitted.Load() }

// Completed returns the total number of jobs that have finished
// processing (successfully, skipped, or fatally).
func (d *Dispatcher) Completed() int64 { return d.completed.Load() }

func (d *Dispatcher) runWorker(w *dirWorker) {
	defer d.wg.Done()

	for {
		j, ok := w.queuePop()
		if !ok {
			if !d.stealWork(w) {
				return
			}
			continue
		}
		if fatal := d.processJob(w, j); fatal {
			return
		}
	}
}

// stealWork looks for another worker with more than one queued job and
// takes its most recently queued item (the same end queuePop serves).
// Kept close to cwalk.go's stealWork.
func (d *Dispatcher) stealWork(thief *dirWorker) bool {
	d.workerMu.Lock()
	defer d.workerMu.Unlock()

	for _, victim := range d.workers {
		if victim.id == thief.id {
			continue
		}
		if victim.queueLen() > 1 {
			if stolen, ok := victim.queuePop(); ok {
				thief.queuePush(stolen)
				return true
			}
		}
	}
	return false
}

// processJob counts one directory and enqueues its children. It reports
// whether the error it hit (if any) was fatal, meaning this worker
// goroutine should stop; a fatal job still counts toward Completed so the
// barrier stays consistent for the work already in flight.
func (d *Dispatcher) processJob(w *dirWorker, j job.Job) (fatal bool) {
	onProgress := func(p counter.Progress) {
		if d.onProgress != nil {
			d.onProgress(j.AbsPath, p)
		}
	}

	result, children, err := d.counter.Count(j, onProgress)
	d.completed.Add(1)

	if err != nil {
		if errors.Is(err, counter.ErrSkipped) {
			return false
		}
		d.errMu.Lock()
		if d.err == nil {
			d.err = err
		}
		d.errMu.Unlock()
		return true
	}

	d.resultsMu.Lock()
	d.results = append(d.results, result)
	d.resultsMu.Unlock()

	if len(children) > 0 {
		d.submitted.Add(int64(len(children)))
		for _, c := range children {
			w.queuePush(c)
		}
	}
	return false
}
