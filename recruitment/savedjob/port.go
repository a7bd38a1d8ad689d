package savedjob

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// Lookup answers which jobs a user has saved
type Lookup interface {
	// SavedJobIDs returns the subset of jobIDs the user saved
	SavedJobIDs(ctx context.Context, userID kernel.UserID, jobIDs []kernel.JobID) (map[kernel.JobID]bool, error)
}
