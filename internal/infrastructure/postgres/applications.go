package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jobboard-api/internal/domain"
)

// ApplicationRepo provides typed Postgres operations for job applications.
type ApplicationRepo struct {
	db *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `a.application_id, a.job_id, a.applicant_id, a.cover_letter, a.status, a.applied_at, a.updated_at`

// Create inserts the application. The unique (job_id, applicant_id)
// constraint is the sole duplicate check; a violation maps to
// domain.ErrDuplicateApplication.
func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (application_id, job_id, applicant_id, cover_letter, status, applied_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ApplicationID, a.JobID, a.ApplicantID, a.CoverLetter, a.Status, a.AppliedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "applications_job_id_applicant_id_key") {
			return fmt.Errorf("apply to job %s: %w", a.JobID, domain.ErrDuplicateApplication)
		}
		return err
	}
	return nil
}

func (r *ApplicationRepo) Get(ctx context.Context, applicationID string) (*domain.Application, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.application_id = $1`, applicationID)
	var a domain.Application
	err := row.Scan(&a.ApplicationID, &a.JobID, &a.ApplicantID, &a.CoverLetter,
		&a.Status, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByApplicant returns the candidate's applications, newest first, with
// job title and company name joined in for display.
func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+`, j.title, j.company_name
		 FROM applications a JOIN jobs j ON j.job_id = a.job_id
		 WHERE a.applicant_id = $1 ORDER BY a.applied_at DESC`, applicantID)
}

// ListByEmployer returns applications to any of the employer's jobs.
func (r *ApplicationRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.Application, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+`, j.title, j.company_name
		 FROM applications a JOIN jobs j ON j.job_id = a.job_id
		 WHERE j.employer_id = $1 ORDER BY a.applied_at DESC`, employerID)
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, applicationID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE application_id = $1`,
		applicationID, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepo) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ApplicationID, &a.JobID, &a.ApplicantID, &a.CoverLetter,
			&a.Status, &a.AppliedAt, &a.UpdatedAt, &a.JobTitle, &a.CompanyName); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
