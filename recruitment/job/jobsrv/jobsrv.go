package jobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobquery"
)

// ViewRecorder accepts view increments without waiting for them
type ViewRecorder interface {
	Record(ids []kernel.JobID) bool
}

// SearchEngine runs listing searches end to end: validation, query
// compilation, one bounded store call, annotation and the view side effect
type SearchEngine struct {
	store     job.Store
	annotator *Annotator
	views     ViewRecorder
	clock     kernel.Clock
	timeout   time.Duration
}

// NewSearchEngine creates a new search engine. views may be nil.
func NewSearchEngine(
	store job.Store,
	annotator *Annotator,
	views ViewRecorder,
	clock kernel.Clock,
	timeout time.Duration,
) *SearchEngine {
	if clock == nil {
		clock = kernel.SystemClock
	}
	return &SearchEngine{
		store:     store,
		annotator: annotator,
		views:     views,
		clock:     clock,
		timeout:   timeout,
	}
}

// Search returns one page of active listings matching spec
func (s *SearchEngine) Search(ctx context.Context, spec job.FilterSpec) (*job.ResultPage, error) {
	spec = spec.Normalize()
	if violations := spec.Validate(); len(violations) > 0 {
		return nil, job.ErrInvalidFilter(violations)
	}

	q, err := jobquery.Compile(spec, s.clock())
	if err != nil {
		return nil, err
	}

	items, total, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := s.annotate(ctx, items, spec.Identity); err != nil {
		return nil, err
	}

	page := &job.ResultPage{
		Paginated: jobquery.NewPage(items, spec.Pagination(), total),
		Filters:   spec,
	}

	s.recordViews(items)
	return page, nil
}

// ListByCompany searches within one company's listings
func (s *SearchEngine) ListByCompany(ctx context.Context, companyID kernel.CompanyID, spec job.FilterSpec) (*job.ResultPage, error) {
	if companyID.IsEmpty() {
		return nil, job.ErrInvalidFilter(job.Violations{{
			Field:   "companyId",
			Rule:    "required",
			Message: "company id is required",
		}})
	}
	if !kernel.IsUUID(companyID.String()) {
		return nil, job.ErrInvalidFilter(job.Violations{{
			Field:   "companyId",
			Rule:    "uuid",
			Message: "must be a UUID",
		}})
	}
	spec.CompanyID = &companyID
	return s.Search(ctx, spec)
}

// GetListing returns a single listing. Drafts and archived listings are
// reported as not found.
func (s *SearchEngine) GetListing(ctx context.Context, id kernel.JobID, identity *iam.Identity) (*job.Listing, error) {
	// malformed ids cannot name a listing and never reach the store
	if !kernel.IsUUID(id.String()) {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	qctx, cancel := s.withTimeout(ctx)
	defer cancel()

	listing, err := s.store.GetByID(qctx, id)
	if err != nil {
		if errx.IsCode(err, job.CodeJobNotFound) {
			return nil, err
		}
		logx.Errorf("Job lookup %s failed: %v", id, err)
		return nil, job.ErrBackendUnavailable(err)
	}
	if listing.Status == job.JobStatusDraft || listing.Status == job.JobStatusArchived {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
	}

	items := []job.Listing{*listing}
	if err := s.annotate(ctx, items, identity); err != nil {
		return nil, err
	}

	s.recordViews(items)
	return &items[0], nil
}

// Trending returns the most popular active listings of the trending window.
// limit must be within [1, MaxLimit]. It has no side effects.
func (s *SearchEngine) Trending(ctx context.Context, limit int) ([]job.Listing, error) {
	q, err := jobquery.Trending(s.clock(), limit)
	if err != nil {
		return nil, err
	}

	items, _, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SearchEngine) query(ctx context.Context, q job.Query) ([]job.Listing, int, error) {
	qctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, total, err := s.store.Search(qctx, q)
	if err != nil {
		logx.Errorf("Job search failed: %v", err)
		return nil, 0, job.ErrBackendUnavailable(err)
	}
	if items == nil {
		items = []job.Listing{}
	}
	return items, total, nil
}

func (s *SearchEngine) annotate(ctx context.Context, items []job.Listing, identity *iam.Identity) error {
	if s.annotator == nil {
		return nil
	}
	if err := s.annotator.Annotate(ctx, items, identity); err != nil {
		logx.Errorf("Job annotation failed: %v", err)
		return job.ErrBackendUnavailable(err)
	}
	return nil
}

func (s *SearchEngine) recordViews(items []job.Listing) {
	if s.views == nil || len(items) == 0 {
		return
	}
	ids := make([]kernel.JobID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	s.views.Record(ids)
}

func (s *SearchEngine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
