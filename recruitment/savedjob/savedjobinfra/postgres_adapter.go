package savedjobinfra

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSavedJobRepository implements savedjob.Lookup using PostgreSQL
type PostgresSavedJobRepository struct {
	db *sqlx.DB
}

func NewPostgresSavedJobRepository(db *sqlx.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) SavedJobIDs(ctx context.Context, userID kernel.UserID, jobIDs []kernel.JobID) (map[kernel.JobID]bool, error) {
	saved := make(map[kernel.JobID]bool, len(jobIDs))
	if len(jobIDs) == 0 || userID.IsEmpty() {
		return saved, nil
	}

	query := `SELECT job_id FROM saved_jobs WHERE user_id = $1 AND job_id = ANY($2)`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, userID.String(), pq.Array(kernel.JobIDStrings(jobIDs))); err != nil {
		return nil, errors.Wrap(err, "failed to look up saved jobs")
	}
	for _, id := range ids {
		saved[kernel.JobID(id)] = true
	}
	return saved, nil
}
