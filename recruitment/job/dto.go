package job

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// ResultPage - DTO returned by listing and search endpoints
type ResultPage struct {
	kernel.Paginated[Listing]
	Filters FilterSpec `json:"filters"`
}

// FilterSpecFromQuery decodes listing query parameters over the defaults.
// Lists are comma separated and may also repeat their key; salary bounds
// arrive as salaryMin and salaryMax. Values that fail to parse, and scalar
// keys given more than once, are reported as violations alongside the spec.
func FilterSpecFromQuery(q url.Values) (FilterSpec, Violations) {
	spec := NewFilterSpec()
	var bad Violations

	one := func(key string) (string, bool) {
		vs, ok := q[key]
		if !ok || len(vs) == 0 {
			return "", false
		}
		if len(vs) > 1 {
			bad = append(bad, Violation{Field: key, Rule: "single", Message: "must be given at most once"})
			return "", false
		}
		return vs[0], true
	}
	str := func(key string) *string {
		v, ok := one(key)
		if !ok {
			return nil
		}
		return &v
	}
	integer := func(key string, dst *int) bool {
		raw, ok := one(key)
		if !ok || strings.TrimSpace(raw) == "" {
			return false
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			bad = append(bad, Violation{Field: key, Rule: "integer", Message: "must be an integer"})
			return false
		}
		*dst = n
		return true
	}
	number := func(key string) *float64 {
		raw, ok := one(key)
		if !ok || strings.TrimSpace(raw) == "" {
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			bad = append(bad, Violation{Field: key, Rule: "number", Message: "must be a number"})
			return nil
		}
		return &n
	}

	spec.Keywords = str("keywords")
	spec.Location = str("location")
	spec.JobTypes = splitList[JobType](q["jobTypes"])
	spec.ExperienceLevels = splitList[ExperienceLevel](q["experienceLevels"])
	spec.Industries = splitList[string](q["industries"])
	spec.CompanySizes = splitList[CompanySize](q["companySizes"])

	lo, hi := number("salaryMin"), number("salaryMax")
	if lo != nil || hi != nil {
		spec.SalaryRange = &SalaryRange{Min: lo, Max: hi}
	}

	if raw, ok := one("remoteOnly"); ok && strings.TrimSpace(raw) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			bad = append(bad, Violation{Field: "remoteOnly", Rule: "boolean", Message: "must be true or false"})
		} else {
			spec.RemoteOnly = &b
		}
	}

	var days int
	if integer("postedWithinDays", &days) {
		spec.PostedWithinDays = &days
	}

	spec.RadiusKm = number("radiusKm")
	spec.Latitude = number("latitude")
	spec.Longitude = number("longitude")

	if v, ok := one("sortBy"); ok && strings.TrimSpace(v) != "" {
		spec.SortBy = SortKey(strings.TrimSpace(v))
	}
	if v, ok := one("sortOrder"); ok && strings.TrimSpace(v) != "" {
		spec.SortOrder = SortOrder(strings.ToLower(strings.TrimSpace(v)))
	}
	integer("page", &spec.Page)
	integer("limit", &spec.Limit)

	return spec, bad
}

func splitList[T ~string](raws []string) []T {
	var out []T
	for _, raw := range raws {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, T(p))
			}
		}
	}
	return out
}
