package iam

import "github.com/Abraxas-365/jobboard/pkg/kernel"

// Role is the caller's account type as asserted by the token
type Role string

const (
	RoleJobSeeker Role = "job_seeker" // Applicant browsing and applying to jobs
	RoleEmployer  Role = "employer"   // Company staff posting jobs
	RoleAdmin     Role = "admin"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// Identity is an authenticated caller
type Identity struct {
	SubjectID kernel.UserID `json:"subjectId"`
	Role      Role          `json:"role"`
}

// IsJobSeeker reports whether the caller applies to jobs. Only job seekers
// get per-listing applied/saved flags.
func (i *Identity) IsJobSeeker() bool {
	return i != nil && i.Role == RoleJobSeeker && !i.SubjectID.IsEmpty()
}
