package jobsrv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSink struct {
	mu    sync.Mutex
	views map[kernel.JobID]int
}

func (s *countingSink) IncrementViews(ctx context.Context, ids []kernel.JobID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.views[id]++
	}
	return nil
}

func TestViewCounter_AppliesAllBatchesBeforeStop(t *testing.T) {
	sink := &countingSink{views: map[kernel.JobID]int{}}
	counter := NewViewCounter(sink, 3, 100, time.Second)
	counter.Start()

	for i := 0; i < 50; i++ {
		require.True(t, counter.Record([]kernel.JobID{"a", "b"}))
	}
	require.NoError(t, counter.Stop(context.Background()))

	assert.Equal(t, map[kernel.JobID]int{"a": 50, "b": 50}, sink.views)
	assert.False(t, counter.Record([]kernel.JobID{"a"}))
}

type blockingSink struct{ release chan struct{} }

func (s blockingSink) IncrementViews(ctx context.Context, ids []kernel.JobID) error {
	<-s.release
	return nil
}

func TestViewCounter_DropsWhenSaturated(t *testing.T) {
	sink := blockingSink{release: make(chan struct{})}
	counter := NewViewCounter(sink, 1, 1, time.Second)
	counter.Start()

	accepted := 0
	for i := 0; i < 10; i++ {
		if counter.Record([]kernel.JobID{"a"}) {
			accepted++
		}
	}

	// one batch in the worker at most, one in the queue
	assert.LessOrEqual(t, accepted, 2)
	assert.Equal(t, int64(10-accepted), counter.Dropped())

	close(sink.release)
	require.NoError(t, counter.Stop(context.Background()))
}

type panickySink struct{}

func (panickySink) IncrementViews(ctx context.Context, ids []kernel.JobID) error {
	panic("boom")
}

func TestViewCounter_SurvivesSinkPanic(t *testing.T) {
	counter := NewViewCounter(panickySink{}, 1, 4, time.Second)
	counter.Start()

	counter.Record([]kernel.JobID{"a"})
	counter.Record([]kernel.JobID{"b"})
	require.NoError(t, counter.Stop(context.Background()))

	assert.Equal(t, int64(2), counter.Failed())
}

type fakeBuffer struct {
	mu      sync.Mutex
	pending map[kernel.JobID]int64
}

func (b *fakeBuffer) Flush(ctx context.Context, store job.ViewStore) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := store.AddViews(ctx, b.pending); err != nil {
		return 0, err
	}
	n := len(b.pending)
	b.pending = map[kernel.JobID]int64{}
	return n, nil
}

func TestViewFlusher(t *testing.T) {
	store := jobinfra.NewMemoryJobStore(active("a", "A", now))
	buffer := &fakeBuffer{pending: map[kernel.JobID]int64{"a": 4}}

	flusher := NewViewFlusher(buffer, store, "@every 1h", time.Second)
	require.NoError(t, flusher.Start())
	flusher.Stop(context.Background())

	l, err := store.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int64(4), l.ViewCount)
}

func TestViewFlusher_BadSpec(t *testing.T) {
	flusher := NewViewFlusher(&fakeBuffer{}, jobinfra.NewMemoryJobStore(), "every now and then", time.Second)
	assert.Error(t, flusher.Start())
}
