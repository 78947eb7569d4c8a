// Package progress implements the status reporter. It accumulates
// count/size progress updates from the dispatcher and, every S seconds,
// emits one rate-limited diagnostic line. cwalk has no progress output at
// all; the plain-line style is instead grounded on xBen-Harveyx-GoSize's
// 2-second stderr ticker rather than on a terminal progress bar, since a
// single diagnostic line fits a batch tool better than an interactive
// widget.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"dumon/internal/counter"
	"dumon/internal/humanize"
)

// Reporter accumulates progress and periodically writes a status line to
// w. A Reporter with a non-positive interval is a no-op: Update still
// accumulates totals (cheap), but Start never emits anything. S == 0
// disables output entirely and a negative interval disables it too.
type Reporter struct {
	w        io.Writer
	interval time.Duration

	mu          sync.Mutex
	count       int64
	size        int64
	path        string
	lastCount   int64
	lastEmit    time.Time
	stopped     bool
	stopc       chan struct{}
	wg          sync.WaitGroup
}

// New builds a Reporter writing to w with the given interval.
func New(w io.Writer, interval time.Duration) *Reporter {
	return &Reporter{w: w, interval: interval, lastEmit: time.Time{}}
}

// Update folds one progress tuple into the running totals. Safe to call
// concurrently from any number of dispatcher workers.
func (r *Reporter) Update(path string, p counter.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count += p.CountDelta
	r.size += p.SizeDelta
	r.path = path
}

// Start begins the periodic emission goroutine. It is a no-op if the
// configured interval is not positive.
func (r *Reporter) Start() {
	if r.interval <= 0 {
		return
	}
	r.stopc = make(chan struct{})
	r.lastEmit = time.Now()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		t := time.NewTicker(r.interval)
		defer t.Stop()
		for {
			select {
			case <-r.stopc:
				return
			case <-t.C:
				r.emit()
			}
		}
	}()
}

// Stop halts emission. No line should be emitted once traversal has
// finished, so the caller must call Stop before printing final results.
func (r *Reporter) Stop() {
	if r.interval <= 0 {
		return
	}
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopc)
	r.wg.Wait()
}

func (r *Reporter) emit() {
	r.mu.Lock()
	now := time.Now()
	elapsed := now.Sub(r.lastEmit).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(r.count-r.lastCount) / elapsed
	}
	count, size, path := r.count, r.size, r.path
	r.lastCount = r.count
	r.lastEmit = now
	r.mu.Unlock()

	fmt.Fprintf(r.w, "# %.1f %d %s %s\n", rate, count, humanize.Bytes(size, true), path)
}
