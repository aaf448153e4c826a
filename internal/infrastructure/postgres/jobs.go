package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jobboard-api/internal/domain"
)

// JobRepo provides typed Postgres operations for job postings.
type JobRepo struct {
	db *sql.DB
}

func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{db: db}
}

const jobColumns = `job_id, employer_id, title, description, requirements, location, job_type, salary, company_name, active, created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(&j.JobID, &j.EmployerID, &j.Title, &j.Description, &j.Requirements,
		&j.Location, &j.JobType, &j.Salary, &j.CompanyName, &j.Active, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (`+jobColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		j.JobID, j.EmployerID, j.Title, j.Description, j.Requirements,
		j.Location, j.JobType, j.Salary, j.CompanyName, j.Active, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *JobRepo) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE job_id = $1`, jobID)
	return scanJob(row)
}

// ListActive returns active jobs, newest first.
func (r *JobRepo) ListActive(ctx context.Context) ([]domain.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs WHERE active ORDER BY created_at DESC`)
}

// ListByEmployer returns all jobs owned by the employer, active or not.
func (r *JobRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	return r.list(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
}

func (r *JobRepo) Update(ctx context.Context, j *domain.Job) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET title = $2, description = $3, requirements = $4, location = $5,
		        job_type = $6, salary = $7, active = $8, updated_at = $9
		 WHERE job_id = $1`,
		j.JobID, j.Title, j.Description, j.Requirements, j.Location,
		j.JobType, j.Salary, j.Active, j.UpdatedAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *JobRepo) Delete(ctx context.Context, jobID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE job_id = $1`, jobID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *JobRepo) list(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}
