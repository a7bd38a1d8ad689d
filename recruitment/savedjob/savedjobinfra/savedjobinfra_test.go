package savedjobinfra

import (
	"context"
	"regexp"
	"testing"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ savedjob.Lookup = (*PostgresSavedJobRepository)(nil)
	_ savedjob.Lookup = (*MemorySavedJobRepository)(nil)
)

func TestPostgresSavedJobRepository_SavedJobIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresSavedJobRepository(sqlx.NewDb(db, "postgres"))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM saved_jobs WHERE user_id = $1 AND job_id = ANY($2)`)).
		WithArgs("u-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"job_id"}).AddRow("j-1").AddRow("j-3"))

	saved, err := repo.SavedJobIDs(context.Background(), "u-1", []kernel.JobID{"j-1", "j-2", "j-3"})
	require.NoError(t, err)
	assert.Equal(t, map[kernel.JobID]bool{"j-1": true, "j-3": true}, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSavedJobRepository_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresSavedJobRepository(sqlx.NewDb(db, "postgres"))

	boom := errors.New("timeout")
	mock.ExpectQuery(`saved_jobs`).WillReturnError(boom)

	_, err = repo.SavedJobIDs(context.Background(), "u-1", []kernel.JobID{"j-1"})
	assert.ErrorIs(t, err, boom)
}

func TestMemorySavedJobRepository(t *testing.T) {
	repo := NewMemorySavedJobRepository()
	repo.Save("u-1", "j-2")
	repo.Save("u-1", "j-2")

	saved, err := repo.SavedJobIDs(context.Background(), "u-1", []kernel.JobID{"j-1", "j-2"})
	require.NoError(t, err)
	assert.Equal(t, map[kernel.JobID]bool{"j-2": true}, saved)

	saved, err = repo.SavedJobIDs(context.Background(), "u-9", []kernel.JobID{"j-2"})
	require.NoError(t, err)
	assert.Empty(t, saved)
}
