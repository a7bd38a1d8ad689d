package jobinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobStore implements job.Store, job.ViewSink and job.ViewStore using PostgreSQL
type PostgresJobStore struct {
	db *sqlx.DB
}

// NewPostgresJobStore creates a new PostgreSQL job store
func NewPostgresJobStore(db *sqlx.DB) *PostgresJobStore {
	return &PostgresJobStore{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type listingModel struct {
	ID               string     `db:"id"`
	Title            string     `db:"title"`
	Description      string     `db:"description"`
	Location         string     `db:"location"`
	SalaryMin        *float64   `db:"salary_min"`
	SalaryMax        *float64   `db:"salary_max"`
	JobType          string     `db:"job_type"`
	ExperienceLevel  string     `db:"experience_level"`
	Industry         string     `db:"industry"`
	Remote           bool       `db:"remote"`
	Status           string     `db:"status"`
	PostedDate       time.Time  `db:"posted_date"`
	Deadline         *time.Time `db:"deadline"`
	ViewCount        int64      `db:"view_count"`
	ApplicationCount int64      `db:"application_count"`
	CompanyID        string     `db:"company_id"`
	CompanyName      string     `db:"company_name"`
	CompanyLogoURL   *string    `db:"company_logo_url"`
	CompanySize      *string    `db:"company_size"`
}

// searchRow carries the window aggregate next to each listing
type searchRow struct {
	listingModel
	TotalCount int `db:"total_count"`
}

func (m *listingModel) toEntity() job.Listing {
	l := job.Listing{
		ID:               kernel.JobID(m.ID),
		Title:            kernel.JobTitle(m.Title),
		Description:      kernel.JobDescription(m.Description),
		Location:         kernel.JobLocation(m.Location),
		SalaryMin:        m.SalaryMin,
		SalaryMax:        m.SalaryMax,
		JobType:          job.JobType(m.JobType),
		ExperienceLevel:  job.ExperienceLevel(m.ExperienceLevel),
		Industry:         m.Industry,
		Remote:           m.Remote,
		Status:           job.JobStatus(m.Status),
		PostedDate:       m.PostedDate,
		Deadline:         m.Deadline,
		ViewCount:        m.ViewCount,
		ApplicationCount: m.ApplicationCount,
		Company: job.Employer{
			ID:   kernel.CompanyID(m.CompanyID),
			Name: kernel.CompanyName(m.CompanyName),
		},
	}
	if m.CompanyLogoURL != nil {
		l.Company.LogoURL = *m.CompanyLogoURL
	}
	if m.CompanySize != nil {
		l.Company.Size = job.CompanySize(*m.CompanySize)
	}
	return l
}

const listingColumns = `
			j.id, j.title, j.description, j.location,
			j.salary_min, j.salary_max, j.job_type, j.experience_level,
			j.industry, j.remote, j.status, j.posted_date, j.deadline,
			j.view_count, j.application_count,
			c.id AS company_id, c.name AS company_name,
			c.logo_url AS company_logo_url, c.size AS company_size`

const listingFrom = `
		FROM jobs j
		JOIN companies c ON c.id = j.company_id`

// ============================================================================
// Store Implementation
// ============================================================================

// Search runs q as one statement; the total comes from a window aggregate
// over the same predicates. A page past the end returns no rows and hence no
// aggregate, so the total is then counted separately.
func (r *PostgresJobStore) Search(ctx context.Context, q job.Query) ([]job.Listing, int, error) {
	var w sqlWriter
	where, err := w.where(q.Where)
	if err != nil {
		return nil, 0, err
	}
	whereArgs := len(w.args)

	orderBy, err := w.orderBy(q.Order)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() AS total_count
		%s
		%s
		ORDER BY %s
		LIMIT %s OFFSET %s
	`, listingColumns, listingFrom, where, orderBy, w.bind(q.Limit), w.bind(q.Offset))

	var rows []searchRow
	if err := r.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, 0, errors.Wrap(err, "failed to search jobs")
	}

	if len(rows) == 0 {
		if q.Offset == 0 {
			return []job.Listing{}, 0, nil
		}
		var total int
		countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", listingFrom, where)
		if err := r.db.GetContext(ctx, &total, countQuery, w.args[:whereArgs]...); err != nil {
			return nil, 0, errors.Wrap(err, "failed to count search results")
		}
		return []job.Listing{}, total, nil
	}

	listings := make([]job.Listing, 0, len(rows))
	for i := range rows {
		listings = append(listings, rows[i].toEntity())
	}
	return listings, rows[0].TotalCount, nil
}

// GetByID retrieves a listing by ID
func (r *PostgresJobStore) GetByID(ctx context.Context, id kernel.JobID) (*job.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE j.id = $1
	`, listingColumns, listingFrom)

	var model listingModel
	err := r.db.GetContext(ctx, &model, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound()
		}
		return nil, errors.Wrap(err, "failed to get job by id")
	}

	l := model.toEntity()
	return &l, nil
}

// IncrementViews adds one view to each job with a single atomic update
func (r *PostgresJobStore) IncrementViews(ctx context.Context, ids []kernel.JobID) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE jobs SET view_count = view_count + 1 WHERE id = ANY($1)`

	if _, err := r.db.ExecContext(ctx, query, pq.Array(kernel.JobIDStrings(ids))); err != nil {
		return errors.Wrap(err, "failed to increment job views")
	}
	return nil
}

// AddViews applies buffered view counts in one statement
func (r *PostgresJobStore) AddViews(ctx context.Context, counts map[kernel.JobID]int64) error {
	if len(counts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(counts))
	deltas := make([]int64, 0, len(counts))
	for id, n := range counts {
		ids = append(ids, id.String())
		deltas = append(deltas, n)
	}

	query := `
		UPDATE jobs AS j
		SET view_count = j.view_count + v.delta
		FROM unnest($1::text[], $2::bigint[]) AS v(id, delta)
		WHERE j.id::text = v.id
	`
	if _, err := r.db.ExecContext(ctx, query, pq.Array(ids), pq.Array(deltas)); err != nil {
		return errors.Wrap(err, "failed to add job views")
	}
	return nil
}

// Ping checks database connectivity
func (r *PostgresJobStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ============================================================================
// Statement rendering
// ============================================================================

// columns is the only path from a job.Field to statement text
var columns = map[job.Field]string{
	job.FieldID:               "j.id",
	job.FieldTitle:            "j.title",
	job.FieldDescription:      "j.description",
	job.FieldCompanyID:        "j.company_id",
	job.FieldCompanyName:      "c.name",
	job.FieldCompanySize:      "c.size",
	job.FieldLocation:         "j.location",
	job.FieldJobType:          "j.job_type",
	job.FieldExperienceLevel:  "j.experience_level",
	job.FieldIndustry:         "j.industry",
	job.FieldSalaryMin:        "j.salary_min",
	job.FieldSalaryMax:        "j.salary_max",
	job.FieldRemote:           "j.remote",
	job.FieldStatus:           "j.status",
	job.FieldPostedDate:       "j.posted_date",
	job.FieldDeadline:         "j.deadline",
	job.FieldViewCount:        "j.view_count",
	job.FieldApplicationCount: "j.application_count",
}

// sqlWriter accumulates positional arguments while rendering
type sqlWriter struct {
	args []any
}

func (w *sqlWriter) bind(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *sqlWriter) value(b job.Binding) any {
	switch b.Kind {
	case job.BindPattern:
		return "%" + escapeLike(b.Text()) + "%"
	case job.BindSet:
		return pq.Array(b.Set())
	default:
		return b.Value
	}
}

func column(f job.Field) (string, error) {
	col, ok := columns[f]
	if !ok {
		return "", errors.Newf("unsupported field %q", f)
	}
	return col, nil
}

func (w *sqlWriter) where(f job.Filter) (string, error) {
	if len(f.Predicates) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(f.Predicates))
	for _, p := range f.Predicates {
		clause, err := w.predicate(f, p)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}
	return "WHERE " + strings.Join(clauses, "\n\t\t  AND "), nil
}

func (w *sqlWriter) predicate(f job.Filter, p job.Predicate) (string, error) {
	if len(p.Fields) == 0 || len(p.Args) == 0 {
		return "", errors.Newf("predicate %s is missing fields or arguments", p.Op)
	}
	cols := make([]string, 0, len(p.Fields))
	for _, field := range p.Fields {
		col, err := column(field)
		if err != nil {
			return "", err
		}
		cols = append(cols, col)
	}
	arg := w.bind(w.value(f.Arg(p, 0)))

	switch p.Op {
	case job.OpContains:
		parts := make([]string, 0, len(cols))
		for _, col := range cols {
			parts = append(parts, fmt.Sprintf("%s ILIKE %s", col, arg))
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	case job.OpIn:
		return fmt.Sprintf("%s = ANY(%s)", cols[0], arg), nil
	case job.OpGTEOrNull:
		return fmt.Sprintf("(%s >= %s OR %s IS NULL)", cols[0], arg, cols[0]), nil
	case job.OpLTEOrNull:
		return fmt.Sprintf("(%s <= %s OR %s IS NULL)", cols[0], arg, cols[0]), nil
	case job.OpGTE:
		return fmt.Sprintf("%s >= %s", cols[0], arg), nil
	case job.OpEq:
		return fmt.Sprintf("%s = %s", cols[0], arg), nil
	case job.OpActive:
		if len(cols) != 2 {
			return "", errors.New("active predicate needs status and deadline")
		}
		status := w.bind(string(job.JobStatusPublished))
		return fmt.Sprintf("%s = %s AND (%s IS NULL OR %s > %s)", cols[0], status, cols[1], cols[1], arg), nil
	default:
		return "", errors.Newf("unsupported operator %s", p.Op)
	}
}

func (w *sqlWriter) orderBy(terms []job.OrderTerm) (string, error) {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		dir := "ASC"
		if t.Direction == job.SortDesc {
			dir = "DESC"
		}

		switch t.Kind {
		case job.OrderColumn:
			col, err := column(t.Field)
			if err != nil {
				return "", err
			}
			parts = append(parts, fmt.Sprintf("%s %s NULLS LAST", col, dir))
		case job.OrderRelevance:
			kw := w.bind("%" + escapeLike(t.Keyword) + "%")
			parts = append(parts, fmt.Sprintf(
				"CASE WHEN j.title ILIKE %[1]s THEN 1 WHEN c.name ILIKE %[1]s THEN 2 WHEN j.description ILIKE %[1]s THEN 3 ELSE 4 END %[2]s",
				kw, dir))
		case job.OrderTrending:
			parts = append(parts, fmt.Sprintf("(%g * j.view_count + %g * j.application_count) %s",
				job.TrendingViewWeight, job.TrendingApplicationWeight, dir))
		default:
			return "", errors.Newf("unsupported order kind %d", t.Kind)
		}
	}
	if len(parts) == 0 {
		return "j.posted_date DESC, j.id ASC", nil
	}
	return strings.Join(parts, ", "), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text match literally inside an ILIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
