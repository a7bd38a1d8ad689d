package jobquery

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
)

// Compile builds the full bounded query for a validated spec
func Compile(spec job.FilterSpec, now time.Time) (job.Query, error) {
	where, err := BuildFilter(spec, now)
	if err != nil {
		return job.Query{}, err
	}
	offset, limit, err := Window(spec.Pagination())
	if err != nil {
		return job.Query{}, err
	}
	return job.Query{
		Where:  where,
		Order:  OrderKey(spec),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// Trending selects active listings posted within the trending window,
// ranked by score
func Trending(now time.Time, limit int) (job.Query, error) {
	_, limit, err := Window(kernel.PaginationOptions{Page: 1, PageSize: limit})
	if err != nil {
		return job.Query{}, err
	}

	var f job.Filter
	arg := f.Bind("postedSince", job.BindTime, now.Add(-job.TrendingWindow))
	f.Add(job.OpGTE, []job.Field{job.FieldPostedDate}, arg)
	addActive(&f, now)

	return job.Query{Where: f, Order: TrendingOrder(), Limit: limit}, nil
}
