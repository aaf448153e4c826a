package job

import (
	"context"
	"fmt"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type UpdateApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted reviewed accepted rejected"`
}

// Service owns job postings and applications. Job mutation is restricted to
// the owning employer; applying is restricted to candidates, with the unique
// (job, applicant) constraint as the duplicate check.
type Service interface {
	Create(ctx context.Context, userID, role string, req domain.CreateJobRequest) (*domain.Job, error)
	List(ctx context.Context, userID, role string) ([]domain.Job, error)
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	Update(ctx context.Context, userID string, jobID string, req domain.UpdateJobRequest) (*domain.Job, error)
	Delete(ctx context.Context, userID, jobID string) error

	Apply(ctx context.Context, userID, role, jobID string, req ApplyRequest) (*domain.Application, error)
	ListMyApplications(ctx context.Context, userID string) ([]domain.Application, error)
	ListEmployerApplications(ctx context.Context, userID, role string) ([]domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, userID, applicationID string, req UpdateApplicationRequest) (*domain.Application, error)
}

type jobStore interface {
	Create(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	ListActive(ctx context.Context) ([]domain.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
	Delete(ctx context.Context, jobID string) error
}

type applicationStore interface {
	Create(ctx context.Context, a *domain.Application) error
	Get(ctx context.Context, applicationID string) (*domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error)
	ListByEmployer(ctx context.Context, employerID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, applicationID, status string) error
}

type profileStore interface {
	GetProfile(ctx context.Context, userID, role string) (*domain.Profile, error)
}

type service struct {
	jobs     jobStore
	apps     applicationStore
	profiles profileStore
}

func NewService(jobs jobStore, apps applicationStore, profiles profileStore) Service {
	return &service{jobs: jobs, apps: apps, profiles: profiles}
}

func (s *service) Create(ctx context.Context, userID, role string, req domain.CreateJobRequest) (*domain.Job, error) {
	if role != domain.RoleEmployer {
		return nil, fmt.Errorf("only employers can post jobs: %w", domain.ErrPermissionDenied)
	}
	p, err := s.profiles.GetProfile(ctx, userID, domain.RoleEmployer)
	if err != nil {
		return nil, err
	}

	jobType := req.JobType
	if jobType == "" {
		jobType = domain.JobTypeFullTime
	}

	now := time.Now().UTC()
	j := &domain.Job{
		JobID:        id.New(),
		EmployerID:   userID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		JobType:      jobType,
		Salary:       req.Salary,
		CompanyName:  p.Employer.CompanyName,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// List shows employers their own postings (active or not) and everyone else
// the active board.
func (s *service) List(ctx context.Context, userID, role string) ([]domain.Job, error) {
	if role == domain.RoleEmployer {
		return s.jobs.ListByEmployer(ctx, userID)
	}
	return s.jobs.ListActive(ctx)
}

func (s *service) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.jobs.Get(ctx, jobID)
}

func (s *service) Update(ctx context.Context, userID, jobID string, req domain.UpdateJobRequest) (*domain.Job, error) {
	j, err := s.ownedJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Requirements != nil {
		j.Requirements = *req.Requirements
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.JobType != nil {
		j.JobType = *req.JobType
	}
	if req.Salary != nil {
		j.Salary = req.Salary
	}
	if req.Active != nil {
		j.Active = *req.Active
	}
	j.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Update(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *service) Delete(ctx context.Context, userID, jobID string) error {
	if _, err := s.ownedJob(ctx, userID, jobID); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, jobID)
}

func (s *service) Apply(ctx context.Context, userID, role, jobID string, req ApplyRequest) (*domain.Application, error) {
	if role != domain.RoleCandidate {
		return nil, fmt.Errorf("only candidates can apply: %w", domain.ErrPermissionDenied)
	}
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !j.Active {
		return nil, fmt.Errorf("job is closed: %w", domain.ErrNotFound)
	}

	now := time.Now().UTC()
	a := &domain.Application{
		ApplicationID: id.New(),
		JobID:         jobID,
		ApplicantID:   userID,
		CoverLetter:   req.CoverLetter,
		Status:        domain.ApplicationSubmitted,
		AppliedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.apps.Create(ctx, a); err != nil {
		return nil, err
	}
	a.JobTitle = j.Title
	a.CompanyName = j.CompanyName
	return a, nil
}

func (s *service) ListMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	return s.apps.ListByApplicant(ctx, userID)
}

func (s *service) ListEmployerApplications(ctx context.Context, userID, role string) ([]domain.Application, error) {
	if role != domain.RoleEmployer {
		return nil, fmt.Errorf("employer access only: %w", domain.ErrPermissionDenied)
	}
	return s.apps.ListByEmployer(ctx, userID)
}

func (s *service) UpdateApplicationStatus(ctx context.Context, userID, applicationID string, req UpdateApplicationRequest) (*domain.Application, error) {
	a, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.Get(ctx, a.JobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID != userID {
		return nil, fmt.Errorf("not the posting employer: %w", domain.ErrPermissionDenied)
	}
	if err := s.apps.UpdateStatus(ctx, applicationID, req.Status); err != nil {
		return nil, err
	}
	a.Status = req.Status
	return a, nil
}

func (s *service) ownedJob(ctx context.Context, userID, jobID string) (*domain.Job, error) {
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.EmployerID != userID {
		return nil, fmt.Errorf("not the posting employer: %w", domain.ErrPermissionDenied)
	}
	return j, nil
}
