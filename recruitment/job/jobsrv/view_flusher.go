package jobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
)

// ViewBuffer holds view increments until they are flushed into a ViewStore
type ViewBuffer interface {
	Flush(ctx context.Context, store job.ViewStore) (int, error)
}

// ViewFlusher periodically moves buffered views into the store
type ViewFlusher struct {
	cron    *cron.Cron
	buffer  ViewBuffer
	store   job.ViewStore
	spec    string
	timeout time.Duration
}

func NewViewFlusher(buffer ViewBuffer, store job.ViewStore, spec string, timeout time.Duration) *ViewFlusher {
	return &ViewFlusher{
		cron:    cron.New(),
		buffer:  buffer,
		store:   store,
		spec:    spec,
		timeout: timeout,
	}
}

// Start registers the flush job and starts the schedule
func (f *ViewFlusher) Start() error {
	if _, err := f.cron.AddFunc(f.spec, f.FlushOnce); err != nil {
		return errors.Wrapf(err, "schedule view flush %q", f.spec)
	}
	f.cron.Start()
	logx.Infof("View flusher started (spec: %s)", f.spec)
	return nil
}

// Stop waits for a running flush, then flushes whatever is left
func (f *ViewFlusher) Stop(ctx context.Context) {
	select {
	case <-f.cron.Stop().Done():
	case <-ctx.Done():
		logx.Warnf("View flusher stop interrupted: %v", ctx.Err())
		return
	}
	f.FlushOnce()
	logx.Info("View flusher stopped")
}

// FlushOnce runs one flush; errors are logged
func (f *ViewFlusher) FlushOnce() {
	ctx := context.Background()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	n, err := f.buffer.Flush(ctx, f.store)
	if err != nil {
		logx.Errorf("View flush failed: %v", err)
		return
	}
	if n > 0 {
		logx.Debugf("Flushed views for %d jobs", n)
	}
}
