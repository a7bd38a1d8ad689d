package application

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

// Lookup answers which jobs a candidate has applied to
type Lookup interface {
	// AppliedJobIDs returns the subset of jobIDs the candidate applied to
	AppliedJobIDs(ctx context.Context, candidateID kernel.UserID, jobIDs []kernel.JobID) (map[kernel.JobID]bool, error)
}
