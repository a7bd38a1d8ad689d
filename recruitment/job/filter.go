package job

import (
	"slices"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/iam"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type SortKey string

const (
	SortRelevance   SortKey = "relevance"
	SortPostedDate  SortKey = "posted_date"
	SortSalary      SortKey = "salary"
	SortTitle       SortKey = "title"
	SortCompanyName SortKey = "company_name"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPage          = 1
	DefaultLimit         = 20
	MaxLimit             = 50
	DefaultTrendingLimit = 10
	MaxPostedWithinDays  = 365
)

// SalaryRange bounds are open-ended: a listing without salary data passes either bound
type SalaryRange struct {
	Min *float64 `json:"min,omitempty" validate:"omitnil,gte=0"`
	Max *float64 `json:"max,omitempty" validate:"omitnil,gte=0"`
}

// FilterSpec is one search request. Every criterion is optional and all
// present criteria are combined with AND.
type FilterSpec struct {
	Keywords         *string           `json:"keywords,omitempty" validate:"omitempty,max=200"`
	Location         *string           `json:"location,omitempty" validate:"omitempty,max=200"`
	JobTypes         []JobType         `json:"jobTypes,omitempty" validate:"omitempty,max=10,dive,oneof=full_time part_time contract internship temporary freelance"`
	ExperienceLevels []ExperienceLevel `json:"experienceLevels,omitempty" validate:"omitempty,max=10,dive,oneof=entry junior mid senior lead executive"`
	Industries       []string          `json:"industries,omitempty" validate:"omitempty,max=20,dive,min=1,max=100"`
	CompanySizes     []CompanySize     `json:"companySizes,omitempty" validate:"omitempty,max=10,dive,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	SalaryRange      *SalaryRange      `json:"salaryRange,omitempty"`
	RemoteOnly       *bool             `json:"remoteOnly,omitempty"`
	PostedWithinDays *int              `json:"postedWithinDays,omitempty" validate:"omitnil,min=1,max=365"`
	CompanyID        *kernel.CompanyID `json:"companyId,omitempty"`

	// Accepted and echoed; radius search is not applied
	RadiusKm  *float64 `json:"radiusKm,omitempty" validate:"omitnil,gt=0,max=500"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitnil,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitnil,min=-180,max=180"`

	SortBy    SortKey   `json:"sortBy" validate:"oneof=relevance posted_date salary title company_name"`
	SortOrder SortOrder `json:"sortOrder" validate:"oneof=asc desc"`
	Page      int       `json:"page" validate:"min=1"`
	Limit     int       `json:"limit" validate:"min=1,max=50"`

	Identity *iam.Identity `json:"-"`
}

// NewFilterSpec returns a spec holding the defaults. Request decoding writes
// over it so explicit zero values stay visible to validation.
func NewFilterSpec() FilterSpec {
	return FilterSpec{
		SortBy:    SortPostedDate,
		SortOrder: SortDesc,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}

// Normalize trims text, turns blank text and empty sets into absent criteria
// and removes duplicate set entries. Sort keywords are case-insensitive.
func (f FilterSpec) Normalize() FilterSpec {
	f.Keywords = trimmed(f.Keywords)
	f.Location = trimmed(f.Location)
	f.JobTypes = dedupe(f.JobTypes)
	f.ExperienceLevels = dedupe(f.ExperienceLevels)
	f.CompanySizes = dedupe(f.CompanySizes)

	industries := make([]string, 0, len(f.Industries))
	for _, in := range f.Industries {
		industries = append(industries, strings.TrimSpace(in))
	}
	f.Industries = dedupe(industries)

	if f.SalaryRange != nil && f.SalaryRange.Min == nil && f.SalaryRange.Max == nil {
		f.SalaryRange = nil
	}
	if f.CompanyID != nil && f.CompanyID.IsEmpty() {
		f.CompanyID = nil
	}
	f.SortBy = SortKey(strings.ToLower(strings.TrimSpace(string(f.SortBy))))
	if f.SortBy == "" {
		f.SortBy = SortPostedDate
	}
	f.SortOrder = SortOrder(strings.ToLower(strings.TrimSpace(string(f.SortOrder))))
	if f.SortOrder == "" {
		f.SortOrder = SortDesc
	}
	return f
}

// HasKeywords reports whether a keyword criterion is present
func (f *FilterSpec) HasKeywords() bool {
	return f.Keywords != nil && *f.Keywords != ""
}

// Pagination returns the requested window
func (f *FilterSpec) Pagination() kernel.PaginationOptions {
	return kernel.PaginationOptions{Page: f.Page, PageSize: f.Limit}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func dedupe[T comparable](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
