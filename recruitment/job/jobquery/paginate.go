package jobquery

import (
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
)

// Window converts a page request into offset and limit. Out of range
// values are rejected, never clamped.
func Window(opts kernel.PaginationOptions) (offset, limit int, err error) {
	var bad job.Violations
	if opts.Page < 1 {
		bad = append(bad, job.Violation{Field: "page", Rule: "min", Message: "must be at least 1"})
	}
	if opts.PageSize < 1 || opts.PageSize > job.MaxLimit {
		bad = append(bad, job.Violation{Field: "limit", Rule: "range", Message: "must be between 1 and 50"})
	}
	if len(bad) > 0 {
		return 0, 0, job.ErrInvalidPagination().WithDetail("violations", bad)
	}
	return (opts.Page - 1) * opts.PageSize, opts.PageSize, nil
}

// TotalPages is ceil(total/limit), zero when there is nothing to page
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NewPage wraps one page of items with its position in the full result
func NewPage[T any](items []T, opts kernel.PaginationOptions, total int) kernel.Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return kernel.Paginated[T]{
		Items: items,
		Page: kernel.Page{
			Number: opts.Page,
			Size:   opts.PageSize,
			Total:  total,
			Pages:  TotalPages(total, opts.PageSize),
		},
	}
}
