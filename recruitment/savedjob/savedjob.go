package savedjob

import (
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// SavedJob is a bookmark a job seeker keeps on a listing
type SavedJob struct {
	UserID    kernel.UserID `db:"user_id" json:"user_id"`
	JobID     kernel.JobID  `db:"job_id" json:"job_id"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}
