package applicationinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/google/uuid"
)

type candidateJob struct {
	candidate kernel.UserID
	job       kernel.JobID
}

// MemoryApplicationRepository implements application.Lookup in memory
type MemoryApplicationRepository struct {
	mu   sync.RWMutex
	apps map[candidateJob]application.Application
}

func NewMemoryApplicationRepository() *MemoryApplicationRepository {
	return &MemoryApplicationRepository{apps: make(map[candidateJob]application.Application)}
}

// Apply records that candidateID applied to jobID
func (r *MemoryApplicationRepository) Apply(candidateID kernel.UserID, jobID kernel.JobID) application.Application {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := candidateJob{candidate: candidateID, job: jobID}
	if existing, ok := r.apps[key]; ok {
		return existing
	}
	app := application.Application{
		ID:          kernel.ApplicationID(uuid.NewString()),
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      application.ApplicationStatusSubmitted,
		CreatedAt:   time.Now().UTC(),
	}
	r.apps[key] = app
	return app
}

func (r *MemoryApplicationRepository) AppliedJobIDs(ctx context.Context, candidateID kernel.UserID, jobIDs []kernel.JobID) (map[kernel.JobID]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	applied := make(map[kernel.JobID]bool, len(jobIDs))
	for _, id := range jobIDs {
		if _, ok := r.apps[candidateJob{candidate: candidateID, job: id}]; ok {
			applied[id] = true
		}
	}
	return applied, nil
}
