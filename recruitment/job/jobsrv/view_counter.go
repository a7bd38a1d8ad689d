package jobsrv

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/google/uuid"
)

type viewBatch struct {
	id   string
	jobs []kernel.JobID
}

// ViewCounter applies view increments on a small worker pool after the
// response has been produced. Record never blocks: when the queue is full
// the batch is dropped. Sink failures are logged and go nowhere else.
type ViewCounter struct {
	sink    job.ViewSink
	workers int
	timeout time.Duration
	queue   chan viewBatch

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	dropped atomic.Int64
	failed  atomic.Int64
}

func NewViewCounter(sink job.ViewSink, workers, queueSize int, timeout time.Duration) *ViewCounter {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &ViewCounter{
		sink:    sink,
		workers: workers,
		timeout: timeout,
		queue:   make(chan viewBatch, queueSize),
	}
}

func (w *ViewCounter) Start() {
	logx.Infof("Starting %d view counter workers", w.workers)

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}
}

// Record schedules one view for each id and reports whether the batch was
// accepted
func (w *ViewCounter) Record(ids []kernel.JobID) bool {
	if len(ids) == 0 {
		return true
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return false
	}

	batch := viewBatch{id: uuid.NewString(), jobs: slices.Clone(ids)}
	select {
	case w.queue <- batch:
		return true
	default:
		w.dropped.Add(1)
		logx.Debugf("View batch %s dropped: queue full (%d jobs)", batch.id, len(batch.jobs))
		return false
	}
}

// Stop refuses new batches, lets the workers drain the queue and waits for
// them until ctx is done
func (w *ViewCounter) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logx.Infof("View counter stopped (dropped=%d failed=%d)", w.dropped.Load(), w.failed.Load())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped returns how many batches were discarded because the queue was full
func (w *ViewCounter) Dropped() int64 {
	return w.dropped.Load()
}

// Failed returns how many batches the sink rejected
func (w *ViewCounter) Failed() int64 {
	return w.failed.Load()
}

func (w *ViewCounter) process(workerID int) {
	defer w.wg.Done()

	for batch := range w.queue {
		w.apply(workerID, batch)
	}
}

func (w *ViewCounter) apply(workerID int, batch viewBatch) {
	defer func() {
		if r := recover(); r != nil {
			w.failed.Add(1)
			logx.Errorf("View worker %d panic on batch %s: %v", workerID, batch.id, r)
		}
	}()

	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	if err := w.sink.IncrementViews(ctx, batch.jobs); err != nil {
		w.failed.Add(1)
		logx.Warnf("View worker %d failed batch %s (%d jobs): %v", workerID, batch.id, len(batch.jobs), err)
	}
}
