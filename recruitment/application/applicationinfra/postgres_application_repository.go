package applicationinfra

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Lookup using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// AppliedJobIDs checks a whole page of jobs in one query
func (r *PostgresApplicationRepository) AppliedJobIDs(ctx context.Context, candidateID kernel.UserID, jobIDs []kernel.JobID) (map[kernel.JobID]bool, error) {
	applied := make(map[kernel.JobID]bool, len(jobIDs))
	if len(jobIDs) == 0 || candidateID.IsEmpty() {
		return applied, nil
	}

	query := `
		SELECT DISTINCT job_id
		FROM applications
		WHERE candidate_id = $1 AND job_id = ANY($2)
	`

	var ids []string
	err := r.db.SelectContext(ctx, &ids, query, candidateID.String(), pq.Array(kernel.JobIDStrings(jobIDs)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up applied jobs")
	}

	for _, id := range ids {
		applied[kernel.JobID(id)] = true
	}
	return applied, nil
}
