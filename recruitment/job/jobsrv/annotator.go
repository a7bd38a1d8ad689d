package jobsrv

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/iam"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob"
	"golang.org/x/sync/errgroup"
)

// Annotator adds the caller's applied and saved flags to a fixed page of
// listings. It never changes which items are on the page or their order.
type Annotator struct {
	applications application.Lookup
	saved        savedjob.Lookup
}

func NewAnnotator(applications application.Lookup, saved savedjob.Lookup) *Annotator {
	return &Annotator{
		applications: applications,
		saved:        saved,
	}
}

// Annotate sets HasApplied and IsSaved on every item for job seekers; any
// other caller, including an anonymous one, gets the items untouched
func (a *Annotator) Annotate(ctx context.Context, items []job.Listing, identity *iam.Identity) error {
	if !identity.IsJobSeeker() || len(items) == 0 {
		return nil
	}

	ids := make([]kernel.JobID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}

	var applied, saved map[kernel.JobID]bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		applied, err = a.applications.AppliedJobIDs(gctx, identity.SubjectID, ids)
		return err
	})
	g.Go(func() error {
		var err error
		saved, err = a.saved.SavedJobIDs(gctx, identity.SubjectID, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range items {
		hasApplied := applied[items[i].ID]
		isSaved := saved[items[i].ID]
		items[i].HasApplied = &hasApplied
		items[i].IsSaved = &isSaved
	}
	return nil
}
