package job

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// Store is the queryable listing backend
type Store interface {
	// Search returns the page selected by q and the total number of rows
	// matching q.Where, both from one execution
	Search(ctx context.Context, q Query) ([]Listing, int, error)

	// GetByID returns a listing regardless of status, or JOB.NOT_FOUND
	GetByID(ctx context.Context, id kernel.JobID) (*Listing, error)
}

// ViewSink receives best-effort popularity increments
type ViewSink interface {
	// IncrementViews adds one view to each listed job
	IncrementViews(ctx context.Context, ids []kernel.JobID) error
}

// ViewStore applies buffered view counts in bulk
type ViewStore interface {
	AddViews(ctx context.Context, counts map[kernel.JobID]int64) error
}
