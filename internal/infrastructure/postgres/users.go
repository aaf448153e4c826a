package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jobboard-api/internal/domain"
)

// UserRepo provides typed Postgres operations for users and their profiles.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `user_id, email, password_hash, first_name, last_name, phone_number, role, profile_picture_file_id, active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.PictureFileID, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateWithProfile inserts the user and its role-appropriate profile record
// in a single transaction, so an identity without a profile is never
// observable. A duplicate email maps to domain.ErrDuplicateEmail.
func (r *UserRepo) CreateWithProfile(ctx context.Context, u *domain.User, p *domain.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.UserID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.Phone, u.Role, u.PictureFileID, u.Active, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return fmt.Errorf("insert user %s: %w", u.Email, domain.ErrDuplicateEmail)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	switch p.Kind {
	case domain.RoleCandidate:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO candidate_profiles (user_id, skills, education, experience, preferred_location)
			 VALUES ($1, $2, $3, $4, $5)`,
			u.UserID, p.Candidate.Skills, p.Candidate.Education,
			p.Candidate.Experience, p.Candidate.PreferredLocation)
	case domain.RoleEmployer:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO employer_profiles (user_id, company_name, company_description, company_website, company_size, industry)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			u.UserID, p.Employer.CompanyName, p.Employer.CompanyDescription,
			p.Employer.CompanyWebsite, p.Employer.CompanySize, p.Employer.Industry)
	default:
		err = fmt.Errorf("unknown profile kind %q: %w", p.Kind, domain.ErrBadRequest)
	}
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	return tx.Commit()
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	return scanUser(row)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`,
		domain.NormalizeEmail(email))
	return scanUser(row)
}

// UpdatePassword overwrites the password hash for the given user.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE user_id = $1`,
		userID, passwordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateBasics updates the mutable identity fields. Email and role are
// immutable after creation and intentionally not updatable here.
func (r *UserRepo) UpdateBasics(ctx context.Context, userID, firstName, lastName, phone string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, phone_number = $4, updated_at = now()
		 WHERE user_id = $1`,
		userID, firstName, lastName, phone)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetProfile loads the profile record matching the user's role.
func (r *UserRepo) GetProfile(ctx context.Context, userID, role string) (*domain.Profile, error) {
	switch role {
	case domain.RoleCandidate:
		var p domain.CandidateProfile
		p.UserID = userID
		err := r.db.QueryRowContext(ctx,
			`SELECT resume_file_id, skills, education, experience, expected_salary, preferred_location
			 FROM candidate_profiles WHERE user_id = $1`, userID).
			Scan(&p.ResumeFileID, &p.Skills, &p.Education, &p.Experience, &p.ExpectedSalary, &p.PreferredLocation)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		return &domain.Profile{Kind: domain.RoleCandidate, Candidate: &p}, nil
	case domain.RoleEmployer:
		var p domain.EmployerProfile
		p.UserID = userID
		err := r.db.QueryRowContext(ctx,
			`SELECT company_name, company_description, company_website, company_size, industry, logo_file_id
			 FROM employer_profiles WHERE user_id = $1`, userID).
			Scan(&p.CompanyName, &p.CompanyDescription, &p.CompanyWebsite, &p.CompanySize, &p.Industry, &p.LogoFileID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		return &domain.Profile{Kind: domain.RoleEmployer, Employer: &p}, nil
	}
	return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrBadRequest)
}

// UpdateProfile persists the kind-specific fields of p.
func (r *UserRepo) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	var res sql.Result
	var err error
	switch p.Kind {
	case domain.RoleCandidate:
		res, err = r.db.ExecContext(ctx,
			`UPDATE candidate_profiles
			 SET skills = $2, education = $3, experience = $4, expected_salary = $5, preferred_location = $6
			 WHERE user_id = $1`,
			p.Candidate.UserID, p.Candidate.Skills, p.Candidate.Education,
			p.Candidate.Experience, p.Candidate.ExpectedSalary, p.Candidate.PreferredLocation)
	case domain.RoleEmployer:
		res, err = r.db.ExecContext(ctx,
			`UPDATE employer_profiles
			 SET company_name = $2, company_description = $3, company_website = $4, company_size = $5, industry = $6
			 WHERE user_id = $1`,
			p.Employer.UserID, p.Employer.CompanyName, p.Employer.CompanyDescription,
			p.Employer.CompanyWebsite, p.Employer.CompanySize, p.Employer.Industry)
	default:
		return fmt.Errorf("unknown profile kind %q: %w", p.Kind, domain.ErrBadRequest)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetProfilePicture links an uploaded profile picture to the user. Unlike
// resumes and logos, pictures hang off the identity and exist for either role.
func (r *UserRepo) SetProfilePicture(ctx context.Context, userID, fileID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET profile_picture_file_id = $2, updated_at = now() WHERE user_id = $1`,
		userID, fileID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetProfileFile links an uploaded file to the profile: a resume for
// candidates, a company logo for employers.
func (r *UserRepo) SetProfileFile(ctx context.Context, userID, role, fileID string) error {
	var query string
	switch role {
	case domain.RoleCandidate:
		query = `UPDATE candidate_profiles SET resume_file_id = $2 WHERE user_id = $1`
	case domain.RoleEmployer:
		query = `UPDATE employer_profiles SET logo_file_id = $2 WHERE user_id = $1`
	default:
		return fmt.Errorf("unknown role %q: %w", role, domain.ErrBadRequest)
	}
	res, err := r.db.ExecContext(ctx, query, userID, fileID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
