package application

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

// ApplicationStatusSubmitted is the status of a new application. Later
// statuses are owned by the application lifecycle; any status counts as applied.
const ApplicationStatusSubmitted ApplicationStatus = "SUBMITTED"

// Application links a job seeker to a job they applied to. Only its
// existence matters to search; the lifecycle is owned elsewhere.
type Application struct {
	ID          kernel.ApplicationID `db:"id" json:"id"`
	JobID       kernel.JobID         `db:"job_id" json:"job_id"`
	CandidateID kernel.UserID        `db:"candidate_id" json:"candidate_id"`
	Status      ApplicationStatus    `db:"status" json:"status"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
}
