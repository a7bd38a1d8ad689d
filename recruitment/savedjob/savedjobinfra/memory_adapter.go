package savedjobinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob"
)

// MemorySavedJobRepository implements savedjob.Lookup in memory
type MemorySavedJobRepository struct {
	mu    sync.RWMutex
	saved map[kernel.UserID]map[kernel.JobID]savedjob.SavedJob
}

func NewMemorySavedJobRepository() *MemorySavedJobRepository {
	return &MemorySavedJobRepository{saved: make(map[kernel.UserID]map[kernel.JobID]savedjob.SavedJob)}
}

// Save bookmarks jobID for userID
func (r *MemorySavedJobRepository) Save(userID kernel.UserID, jobID kernel.JobID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saved[userID] == nil {
		r.saved[userID] = make(map[kernel.JobID]savedjob.SavedJob)
	}
	if _, ok := r.saved[userID][jobID]; !ok {
		r.saved[userID][jobID] = savedjob.SavedJob{UserID: userID, JobID: jobID, CreatedAt: time.Now().UTC()}
	}
}

func (r *MemorySavedJobRepository) SavedJobIDs(ctx context.Context, userID kernel.UserID, jobIDs []kernel.JobID) (map[kernel.JobID]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[kernel.JobID]bool, len(jobIDs))
	for _, id := range jobIDs {
		if _, ok := r.saved[userID][id]; ok {
			out[id] = true
		}
	}
	return out, nil
}
