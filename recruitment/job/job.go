package job

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"     // Created but not published
	JobStatusPublished JobStatus = "PUBLISHED" // Active and accepting applications
	JobStatusClosed    JobStatus = "CLOSED"    // No longer accepting applications
	JobStatusArchived  JobStatus = "ARCHIVED"  // Archived
)

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeTemporary  JobType = "temporary"
	JobTypeFreelance  JobType = "freelance"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceJunior    ExperienceLevel = "junior"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceLead      ExperienceLevel = "lead"
	ExperienceExecutive ExperienceLevel = "executive"
)

type CompanySize string

const (
	CompanySizeMicro      CompanySize = "1-10"
	CompanySizeSmall      CompanySize = "11-50"
	CompanySizeMedium     CompanySize = "51-200"
	CompanySizeLarge      CompanySize = "201-500"
	CompanySizeXLarge     CompanySize = "501-1000"
	CompanySizeEnterprise CompanySize = "1000+"
)

// Employer is the company summary embedded in every listing
type Employer struct {
	ID      kernel.CompanyID   `json:"id"`
	Name    kernel.CompanyName `json:"name"`
	LogoURL string             `json:"logoUrl,omitempty"`
	Size    CompanySize        `json:"size,omitempty"`
}

// Listing is the read-only projection returned by search. HasApplied and
// IsSaved are only set by the identity annotator.
type Listing struct {
	ID               kernel.JobID          `json:"id"`
	Title            kernel.JobTitle       `json:"title"`
	Description      kernel.JobDescription `json:"description"`
	Location         kernel.JobLocation    `json:"location"`
	SalaryMin        *float64              `json:"salaryMin"`
	SalaryMax        *float64              `json:"salaryMax"`
	JobType          JobType               `json:"jobType"`
	ExperienceLevel  ExperienceLevel       `json:"experienceLevel"`
	Industry         string                `json:"industry"`
	Remote           bool                  `json:"remote"`
	Status           JobStatus             `json:"status"`
	PostedDate       time.Time             `json:"postedDate"`
	Deadline         *time.Time            `json:"deadline,omitempty"`
	ViewCount        int64                 `json:"viewCount"`
	ApplicationCount int64                 `json:"applicationCount"`
	Company          Employer              `json:"company"`

	HasApplied *bool `json:"hasApplied,omitempty"`
	IsSaved    *bool `json:"isSaved,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the listing is published and its deadline has not passed at now
func (l *Listing) IsActive(now time.Time) bool {
	if l.Status != JobStatusPublished {
		return false
	}
	return l.Deadline == nil || l.Deadline.After(now)
}

// TrendingScore weights views and applications into the popularity score
func (l *Listing) TrendingScore() float64 {
	return TrendingScore(l.ViewCount, l.ApplicationCount)
}

const (
	TrendingViewWeight        = 0.7
	TrendingApplicationWeight = 0.3
	TrendingWindow            = 30 * 24 * time.Hour
)

// TrendingScore = 0.7·views + 0.3·applications
func TrendingScore(views, applications int64) float64 {
	return TrendingViewWeight*float64(views) + TrendingApplicationWeight*float64(applications)
}
