package jobinfra

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/google/uuid"
)

// DemoListings builds a small catalogue for the memory driver, dated
// relative to now
func DemoListings(now time.Time) []job.Listing {
	acme := job.Employer{ID: kernel.CompanyID(uuid.NewString()), Name: "Acme Engineering", Size: job.CompanySizeLarge}
	nimbus := job.Employer{ID: kernel.CompanyID(uuid.NewString()), Name: "Nimbus Cloud", Size: job.CompanySizeSmall}
	orbit := job.Employer{ID: kernel.CompanyID(uuid.NewString()), Name: "Orbit Health", Size: job.CompanySizeEnterprise}

	salary := func(v float64) *float64 { return &v }
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	in := func(d int) *time.Time {
		t := now.AddDate(0, 0, d)
		return &t
	}

	listings := []job.Listing{
		{
			Title: "Senior Go Engineer", Description: "Build the search platform in Go and PostgreSQL.",
			Location: "Lima, Peru", SalaryMin: salary(90000), SalaryMax: salary(130000),
			JobType: job.JobTypeFullTime, ExperienceLevel: job.ExperienceSenior, Industry: "software",
			Remote: true, PostedDate: daysAgo(2), ViewCount: 340, ApplicationCount: 25, Company: acme,
		},
		{
			Title: "Platform Engineer", Description: "Operate Kubernetes clusters and CI pipelines.",
			Location: "Remote", SalaryMin: salary(80000),
			JobType: job.JobTypeFullTime, ExperienceLevel: job.ExperienceMid, Industry: "cloud",
			Remote: true, PostedDate: daysAgo(5), Deadline: in(20), ViewCount: 120, ApplicationCount: 14, Company: nimbus,
		},
		{
			Title: "Data Analyst", Description: "Work with engineers on clinical dashboards.",
			Location: "Bogota, Colombia",
			JobType: job.JobTypeContract, ExperienceLevel: job.ExperienceJunior, Industry: "healthcare",
			PostedDate: daysAgo(12), ViewCount: 75, ApplicationCount: 30, Company: orbit,
		},
		{
			Title: "Engineering Intern", Description: "Summer internship with the backend team.",
			Location: "Lima, Peru", SalaryMax: salary(20000),
			JobType: job.JobTypeInternship, ExperienceLevel: job.ExperienceEntry, Industry: "software",
			PostedDate: daysAgo(40), Deadline: in(10), ViewCount: 500, ApplicationCount: 90, Company: acme,
		},
		{
			Title: "Site Reliability Lead", Description: "Own uptime for the cloud platform.",
			Location: "Santiago, Chile", SalaryMin: salary(120000), SalaryMax: salary(160000),
			JobType: job.JobTypeFullTime, ExperienceLevel: job.ExperienceLead, Industry: "cloud",
			Remote: true, PostedDate: daysAgo(1), ViewCount: 12, ApplicationCount: 1, Company: nimbus,
		},
		{
			Title: "Product Designer", Description: "Design patient-facing apps.",
			Location: "Remote", SalaryMin: salary(60000), SalaryMax: salary(85000),
			JobType: job.JobTypePartTime, ExperienceLevel: job.ExperienceMid, Industry: "healthcare",
			Remote: true, PostedDate: daysAgo(8), Deadline: in(-1), ViewCount: 60, ApplicationCount: 8, Company: orbit,
		},
	}

	for i := range listings {
		listings[i].ID = kernel.JobID(uuid.NewString())
		listings[i].Status = job.JobStatusPublished
	}
	return listings
}
