// Package jobquery turns a validated FilterSpec into a bounded store query.
// Everything here is pure: no I/O and no wall clock.
package jobquery

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/cockroachdb/errors"
)

var (
	jobTypes = set(job.JobTypeFullTime, job.JobTypePartTime, job.JobTypeContract,
		job.JobTypeInternship, job.JobTypeTemporary, job.JobTypeFreelance)
	experienceLevels = set(job.ExperienceEntry, job.ExperienceJunior, job.ExperienceMid,
		job.ExperienceSenior, job.ExperienceLead, job.ExperienceExecutive)
	companySizes = set(job.CompanySizeMicro, job.CompanySizeSmall, job.CompanySizeMedium,
		job.CompanySizeLarge, job.CompanySizeXLarge, job.CompanySizeEnterprise)
)

// BuildFilter compiles the present criteria of spec into predicates plus
// their bindings. The active-listing predicate is always last. spec must
// already be validated; an inconsistent spec yields JOB.FILTER_INVARIANT.
func BuildFilter(spec job.FilterSpec, now time.Time) (job.Filter, error) {
	var f job.Filter

	if spec.Keywords != nil && *spec.Keywords != "" {
		arg := f.Bind("keywords", job.BindPattern, *spec.Keywords)
		f.Add(job.OpContains, []job.Field{job.FieldTitle, job.FieldDescription, job.FieldCompanyName}, arg)
	}

	if spec.Location != nil && *spec.Location != "" {
		arg := f.Bind("location", job.BindPattern, *spec.Location)
		f.Add(job.OpContains, []job.Field{job.FieldLocation}, arg)
	}

	if err := addSet(&f, "jobTypes", job.FieldJobType, spec.JobTypes, jobTypes); err != nil {
		return job.Filter{}, err
	}
	if err := addSet(&f, "experienceLevels", job.FieldExperienceLevel, spec.ExperienceLevels, experienceLevels); err != nil {
		return job.Filter{}, err
	}
	if err := addSet(&f, "industries", job.FieldIndustry, spec.Industries, nil); err != nil {
		return job.Filter{}, err
	}
	if err := addSet(&f, "companySizes", job.FieldCompanySize, spec.CompanySizes, companySizes); err != nil {
		return job.Filter{}, err
	}

	if sr := spec.SalaryRange; sr != nil {
		if (sr.Min != nil && *sr.Min < 0) || (sr.Max != nil && *sr.Max < 0) {
			return job.Filter{}, invariant("salaryRange", "negative bound")
		}
		if sr.Min != nil && sr.Max != nil && *sr.Min > *sr.Max {
			return job.Filter{}, invariant("salaryRange", "min exceeds max")
		}
		if sr.Min != nil {
			arg := f.Bind("salaryMin", job.BindNumber, *sr.Min)
			f.Add(job.OpGTEOrNull, []job.Field{job.FieldSalaryMin}, arg)
		}
		if sr.Max != nil {
			arg := f.Bind("salaryMax", job.BindNumber, *sr.Max)
			f.Add(job.OpLTEOrNull, []job.Field{job.FieldSalaryMax}, arg)
		}
	}

	// remoteOnly=false is no restriction
	if spec.RemoteOnly != nil && *spec.RemoteOnly {
		arg := f.Bind("remoteOnly", job.BindBool, true)
		f.Add(job.OpEq, []job.Field{job.FieldRemote}, arg)
	}

	if spec.PostedWithinDays != nil {
		days := *spec.PostedWithinDays
		if days < 1 || days > job.MaxPostedWithinDays {
			return job.Filter{}, invariant("postedWithinDays", fmt.Sprintf("window of %d days", days))
		}
		arg := f.Bind("postedSince", job.BindTime, now.AddDate(0, 0, -days))
		f.Add(job.OpGTE, []job.Field{job.FieldPostedDate}, arg)
	}

	if spec.CompanyID != nil && !spec.CompanyID.IsEmpty() {
		arg := f.Bind("companyId", job.BindText, spec.CompanyID.String())
		f.Add(job.OpEq, []job.Field{job.FieldCompanyID}, arg)
	}

	addActive(&f, now)
	return f, nil
}

func addActive(f *job.Filter, now time.Time) {
	arg := f.Bind("now", job.BindTime, now)
	f.Add(job.OpActive, []job.Field{job.FieldStatus, job.FieldDeadline}, arg)
}

// addSet adds a membership predicate; an empty set adds nothing.
// allowed == nil accepts any non-blank value.
func addSet[T ~string](f *job.Filter, name string, field job.Field, values []T, allowed map[T]struct{}) error {
	if len(values) == 0 {
		return nil
	}
	members := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			return invariant(name, "blank entry")
		}
		if allowed != nil {
			if _, ok := allowed[v]; !ok {
				return invariant(name, fmt.Sprintf("unknown value %q", string(v)))
			}
		}
		members = append(members, string(v))
	}
	arg := f.Bind(name, job.BindSet, members)
	f.Add(job.OpIn, []job.Field{field}, arg)
	return nil
}

func invariant(field, reason string) error {
	return job.ErrFilterInvariant().
		WithDetail("field", field).
		WithCause(errors.Newf("%s: %s", field, reason))
}

func set[T comparable](vs ...T) map[T]struct{} {
	m := make(map[T]struct{}, len(vs))
	for _, v := range vs {
		m[v] = struct{}{}
	}
	return m
}
