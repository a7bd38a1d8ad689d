package job

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fields(vs Violations) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Field)
	}
	return out
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	assert.Empty(t, NewFilterSpec().Validate())
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	spec := NewFilterSpec()
	spec.Page = 0
	spec.Limit = 51
	spec.JobTypes = []JobType{JobTypeFullTime, "astronaut"}
	spec.SortBy = "popularity"
	spec.PostedWithinDays = ptr(0)
	spec.SalaryRange = &SalaryRange{Min: ptr(90000.0), Max: ptr(50000.0)}

	got := fields(spec.Validate())

	assert.ElementsMatch(t, []string{
		"page",
		"limit",
		"jobTypes[1]",
		"sortBy",
		"postedWithinDays",
		"salaryRange",
	}, got)
}

func TestValidate_NegativeSalaryBound(t *testing.T) {
	spec := NewFilterSpec()
	spec.SalaryRange = &SalaryRange{Min: ptr(-1.0)}

	vs := spec.Validate()
	require.Len(t, vs, 1)
	assert.Equal(t, "salaryRange.min", vs[0].Field)
	assert.Equal(t, "gte", vs[0].Rule)
}

func TestValidate_RadiusShapeOnly(t *testing.T) {
	spec := NewFilterSpec()
	spec.RadiusKm = ptr(25.0)
	spec.Latitude = ptr(52.52)
	spec.Longitude = ptr(13.40)
	assert.Empty(t, spec.Validate())

	spec.Latitude = ptr(91.0)
	assert.Equal(t, []string{"latitude"}, fields(spec.Validate()))
}

func TestNormalize(t *testing.T) {
	spec := NewFilterSpec()
	spec.Keywords = ptr("  engineer ")
	spec.Location = ptr("   ")
	spec.JobTypes = []JobType{JobTypeContract, JobTypeContract}
	spec.Industries = []string{" fintech", "fintech "}
	spec.CompanySizes = []CompanySize{}
	spec.SalaryRange = &SalaryRange{}
	spec.SortBy = ""
	spec.SortOrder = " ASC"

	n := spec.Normalize()

	assert.Equal(t, "engineer", *n.Keywords)
	assert.Nil(t, n.Location)
	assert.Equal(t, []JobType{JobTypeContract}, n.JobTypes)
	assert.Equal(t, []string{"fintech"}, n.Industries)
	assert.Nil(t, n.CompanySizes)
	assert.Nil(t, n.SalaryRange)
	assert.Equal(t, SortPostedDate, n.SortBy)
	assert.Equal(t, SortAsc, n.SortOrder)
	assert.True(t, n.HasKeywords())

	// original is untouched
	assert.Equal(t, "  engineer ", *spec.Keywords)
}

func TestFilterSpecFromQuery(t *testing.T) {
	spec, bad := FilterSpecFromQuery(url.Values{
		"keywords":         {"go"},
		"jobTypes":         {"full_time, contract"},
		"salaryMin":        {"50000"},
		"remoteOnly":       {"true"},
		"postedWithinDays": {"7"},
		"sortBy":           {"salary"},
		"sortOrder":        {"ASC"},
		"page":             {"3"},
		"limit":            {"10"},
	})

	require.Empty(t, bad)
	assert.Equal(t, "go", *spec.Keywords)
	assert.Equal(t, []JobType{JobTypeFullTime, JobTypeContract}, spec.JobTypes)
	require.NotNil(t, spec.SalaryRange)
	assert.Equal(t, 50000.0, *spec.SalaryRange.Min)
	assert.Nil(t, spec.SalaryRange.Max)
	assert.True(t, *spec.RemoteOnly)
	assert.Equal(t, 7, *spec.PostedWithinDays)
	assert.Equal(t, SortSalary, spec.SortBy)
	assert.Equal(t, SortAsc, spec.SortOrder)
	assert.Equal(t, 3, spec.Page)
	assert.Equal(t, 10, spec.Limit)
}

func TestFilterSpecFromQuery_Defaults(t *testing.T) {
	spec, bad := FilterSpecFromQuery(url.Values{})

	assert.Empty(t, bad)
	assert.Equal(t, NewFilterSpec(), spec)
}

func TestFilterSpecFromQuery_ParseFailures(t *testing.T) {
	_, bad := FilterSpecFromQuery(url.Values{
		"page":       {"two"},
		"salaryMax":  {"lots"},
		"remoteOnly": {"maybe"},
	})

	assert.ElementsMatch(t, []string{"page", "salaryMax", "remoteOnly"}, fields(bad))
}

func TestFilterSpecFromQuery_RepeatedKeys(t *testing.T) {
	spec, bad := FilterSpecFromQuery(url.Values{
		"jobTypes":   {"contract", "full_time,internship"},
		"industries": {"fintech", "health"},
		"page":       {"1", "2"},
		"sortBy":     {"title", "salary"},
	})

	assert.Equal(t, []JobType{JobTypeContract, JobTypeFullTime, JobTypeInternship}, spec.JobTypes)
	assert.Equal(t, []string{"fintech", "health"}, spec.Industries)
	assert.ElementsMatch(t, []string{"page", "sortBy"}, fields(bad))
	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, SortPostedDate, spec.SortBy)
}

func TestTrendingScore(t *testing.T) {
	assert.InDelta(t, 73.0, TrendingScore(100, 10), 1e-9)
	assert.InDelta(t, 68.0, TrendingScore(80, 40), 1e-9)
	assert.Greater(t, TrendingScore(100, 10), TrendingScore(80, 40))
}

func TestRelevanceTier(t *testing.T) {
	l := &Listing{
		Title:       "Backend Developer",
		Description: "We need an ENGINEER",
		Company:     Employer{Name: "Engineering Co"},
	}

	assert.Equal(t, 2, RelevanceTier(l, "engineer"))
	assert.Equal(t, 1, RelevanceTier(l, "backend"))
	assert.Equal(t, 3, RelevanceTier(l, "need"))
	assert.Equal(t, 4, RelevanceTier(l, "rust"))
}
