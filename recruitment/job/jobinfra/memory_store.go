package jobinfra

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/cockroachdb/errors"
)

// MemoryJobStore evaluates compiled queries against listings held in memory.
// It backs the memory store driver and the engine tests.
type MemoryJobStore struct {
	mu       sync.RWMutex
	listings map[kernel.JobID]job.Listing
}

func NewMemoryJobStore(listings ...job.Listing) *MemoryJobStore {
	s := &MemoryJobStore{listings: make(map[kernel.JobID]job.Listing, len(listings))}
	for _, l := range listings {
		s.listings[l.ID] = l
	}
	return s
}

// Put inserts or replaces a listing
func (s *MemoryJobStore) Put(l job.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[l.ID] = l
}

func (s *MemoryJobStore) Search(ctx context.Context, q job.Query) ([]job.Listing, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	matched := make([]job.Listing, 0, len(s.listings))
	for _, l := range s.listings {
		ok, err := matches(q.Where, &l)
		if err != nil {
			s.mu.RUnlock()
			return nil, 0, err
		}
		if ok {
			matched = append(matched, l)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(matched, func(a, b job.Listing) int {
		return compareListings(&a, &b, q.Order)
	})

	total := len(matched)
	if q.Offset >= total {
		return []job.Listing{}, total, nil
	}
	end := min(q.Offset+q.Limit, total)
	return slices.Clone(matched[q.Offset:end]), total, nil
}

func (s *MemoryJobStore) GetByID(ctx context.Context, id kernel.JobID) (*job.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return &l, nil
}

func (s *MemoryJobStore) IncrementViews(ctx context.Context, ids []kernel.JobID) error {
	counts := make(map[kernel.JobID]int64, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	return s.AddViews(ctx, counts)
}

func (s *MemoryJobStore) AddViews(ctx context.Context, counts map[kernel.JobID]int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, n := range counts {
		if l, ok := s.listings[id]; ok {
			l.ViewCount += n
			s.listings[id] = l
		}
	}
	return nil
}

func (s *MemoryJobStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// ============================================================================
// Evaluation
// ============================================================================

func matches(f job.Filter, l *job.Listing) (bool, error) {
	for _, p := range f.Predicates {
		if len(p.Fields) == 0 || len(p.Args) == 0 {
			return false, errors.Newf("predicate %s is missing fields or arguments", p.Op)
		}
		arg := f.Arg(p, 0)

		var ok bool
		switch p.Op {
		case job.OpContains:
			for _, field := range p.Fields {
				if job.ContainsFold(textOf(l, field), arg.Text()) {
					ok = true
					break
				}
			}
		case job.OpIn:
			ok = slices.Contains(arg.Set(), textOf(l, p.Fields[0]))
		case job.OpGTEOrNull:
			n := numberOf(l, p.Fields[0])
			ok = n == nil || *n >= arg.Number()
		case job.OpLTEOrNull:
			n := numberOf(l, p.Fields[0])
			ok = n == nil || *n <= arg.Number()
		case job.OpGTE:
			t := timeOf(l, p.Fields[0])
			ok = t != nil && !t.Before(arg.Time())
		case job.OpEq:
			if arg.Kind == job.BindBool {
				ok = p.Fields[0] == job.FieldRemote && l.Remote == arg.Bool()
			} else {
				ok = textOf(l, p.Fields[0]) == arg.Text()
			}
		case job.OpActive:
			ok = l.IsActive(arg.Time())
		default:
			return false, errors.Newf("unsupported operator %s", p.Op)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func compareListings(a, b *job.Listing, terms []job.OrderTerm) int {
	for _, t := range terms {
		var c int
		nulls := false
		switch t.Kind {
		case job.OrderRelevance:
			c = cmp.Compare(job.RelevanceTier(a, t.Keyword), job.RelevanceTier(b, t.Keyword))
		case job.OrderTrending:
			c = cmp.Compare(a.TrendingScore(), b.TrendingScore())
		default:
			c, nulls = compareField(a, b, t.Field)
		}
		// unset values sort last whichever the direction
		if t.Direction == job.SortDesc && !nulls {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// compareField reports nulls=true when at least one side is unset; the
// result then already places the unset side last
func compareField(a, b *job.Listing, f job.Field) (c int, nulls bool) {
	switch f {
	case job.FieldSalaryMin, job.FieldSalaryMax:
		x, y := numberOf(a, f), numberOf(b, f)
		if x == nil || y == nil {
			return nullsLast(x == nil, y == nil), true
		}
		return cmp.Compare(*x, *y), false
	case job.FieldPostedDate, job.FieldDeadline:
		x, y := timeOf(a, f), timeOf(b, f)
		if x == nil || y == nil {
			return nullsLast(x == nil, y == nil), true
		}
		return x.Compare(*y), false
	case job.FieldViewCount:
		return cmp.Compare(a.ViewCount, b.ViewCount), false
	case job.FieldApplicationCount:
		return cmp.Compare(a.ApplicationCount, b.ApplicationCount), false
	default:
		return cmp.Compare(textOf(a, f), textOf(b, f)), false
	}
}

func nullsLast(aNull, bNull bool) int {
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	default:
		return -1
	}
}

func textOf(l *job.Listing, f job.Field) string {
	switch f {
	case job.FieldID:
		return l.ID.String()
	case job.FieldTitle:
		return string(l.Title)
	case job.FieldDescription:
		return string(l.Description)
	case job.FieldCompanyID:
		return l.Company.ID.String()
	case job.FieldCompanyName:
		return string(l.Company.Name)
	case job.FieldCompanySize:
		return string(l.Company.Size)
	case job.FieldLocation:
		return string(l.Location)
	case job.FieldJobType:
		return string(l.JobType)
	case job.FieldExperienceLevel:
		return string(l.ExperienceLevel)
	case job.FieldIndustry:
		return l.Industry
	case job.FieldStatus:
		return string(l.Status)
	default:
		return ""
	}
}

func numberOf(l *job.Listing, f job.Field) *float64 {
	switch f {
	case job.FieldSalaryMin:
		return l.SalaryMin
	case job.FieldSalaryMax:
		return l.SalaryMax
	default:
		return nil
	}
}

func timeOf(l *job.Listing, f job.Field) *time.Time {
	switch f {
	case job.FieldPostedDate:
		return &l.PostedDate
	case job.FieldDeadline:
		return l.Deadline
	default:
		return nil
	}
}
