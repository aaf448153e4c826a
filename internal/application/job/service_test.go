package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jobboard-api/internal/domain"
)

// --- mocks ---

type mockJobStore struct{ mock.Mock }

func (m *mockJobStore) Create(ctx context.Context, j *domain.Job) error {
	return m.Called(ctx, j).Error(0)
}
func (m *mockJobStore) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if j, _ := args.Get(0).(*domain.Job); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockJobStore) ListActive(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}
func (m *mockJobStore) ListByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	args := m.Called(ctx, employerID)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}
func (m *mockJobStore) Update(ctx context.Context, j *domain.Job) error {
	return m.Called(ctx, j).Error(0)
}
func (m *mockJobStore) Delete(ctx context.Context, jobID string) error {
	return m.Called(ctx, jobID).Error(0)
}

type mockApplicationStore struct{ mock.Mock }

func (m *mockApplicationStore) Create(ctx context.Context, a *domain.Application) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockApplicationStore) Get(ctx context.Context, applicationID string) (*domain.Application, error) {
	args := m.Called(ctx, applicationID)
	if a, _ := args.Get(0).(*domain.Application); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockApplicationStore) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	args := m.Called(ctx, applicantID)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}
func (m *mockApplicationStore) ListByEmployer(ctx context.Context, employerID string) ([]domain.Application, error) {
	args := m.Called(ctx, employerID)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}
func (m *mockApplicationStore) UpdateStatus(ctx context.Context, applicationID, status string) error {
	return m.Called(ctx, applicationID, status).Error(0)
}

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) GetProfile(ctx context.Context, userID, role string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, role)
	if p, _ := args.Get(0).(*domain.Profile); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func employerProfile(company string) *domain.Profile {
	return &domain.Profile{
		Kind:     domain.RoleEmployer,
		Employer: &domain.EmployerProfile{CompanyName: company},
	}
}

// --- Create ---

func TestCreateJob_CandidateDenied(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.Create(context.Background(), "u1", domain.RoleCandidate, domain.CreateJobRequest{
		Title: "Backend Engineer",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
}

func TestCreateJob_DenormalizesCompanyName(t *testing.T) {
	js := &mockJobStore{}
	ps := &mockProfileStore{}

	ps.On("GetProfile", mock.Anything, "emp1", domain.RoleEmployer).
		Return(employerProfile("Acme Corp"), nil)
	js.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
		return j.CompanyName == "Acme Corp" && j.EmployerID == "emp1" && j.Active
	})).Return(nil)

	svc := NewService(js, nil, ps)
	j, err := svc.Create(context.Background(), "emp1", domain.RoleEmployer, domain.CreateJobRequest{
		Title:       "Backend Engineer",
		Description: "Go services",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", j.CompanyName)
	assert.Equal(t, domain.JobTypeFullTime, j.JobType)
	assert.NotEmpty(t, j.JobID)
	js.AssertExpectations(t)
}

// --- List ---

func TestListJobs_EmployerSeesOwnPostings(t *testing.T) {
	js := &mockJobStore{}
	js.On("ListByEmployer", mock.Anything, "emp1").Return([]domain.Job{
		{JobID: "j1", Active: true},
		{JobID: "j2", Active: false},
	}, nil)

	svc := NewService(js, nil, nil)
	jobs, err := svc.List(context.Background(), "emp1", domain.RoleEmployer)

	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	js.AssertNotCalled(t, "ListActive", mock.Anything)
}

func TestListJobs_CandidateSeesActiveBoard(t *testing.T) {
	js := &mockJobStore{}
	js.On("ListActive", mock.Anything).Return([]domain.Job{{JobID: "j1", Active: true}}, nil)

	svc := NewService(js, nil, nil)
	jobs, err := svc.List(context.Background(), "u1", domain.RoleCandidate)

	require.NoError(t, err)
	assert.Len(t, jobs, 1)
	js.AssertNotCalled(t, "ListByEmployer", mock.Anything, mock.Anything)
}

// --- Update / Delete ownership ---

func TestUpdateJob_NotOwner(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(&domain.Job{JobID: "j1", EmployerID: "emp1"}, nil)

	svc := NewService(js, nil, nil)
	title := "New Title"
	_, err := svc.Update(context.Background(), "intruder", "j1", domain.UpdateJobRequest{Title: &title})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
	js.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateJob_PartialFields(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(&domain.Job{
		JobID:      "j1",
		EmployerID: "emp1",
		Title:      "Old Title",
		Location:   "Berlin",
		Active:     true,
	}, nil)
	js.On("Update", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

	svc := NewService(js, nil, nil)
	title := "New Title"
	active := false
	j, err := svc.Update(context.Background(), "emp1", "j1", domain.UpdateJobRequest{
		Title:  &title,
		Active: &active,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Title", j.Title)
	assert.Equal(t, "Berlin", j.Location)
	assert.False(t, j.Active)
}

func TestDeleteJob_NotOwner(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(&domain.Job{JobID: "j1", EmployerID: "emp1"}, nil)

	svc := NewService(js, nil, nil)
	err := svc.Delete(context.Background(), "intruder", "j1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
	js.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// --- Apply ---

func TestApply_EmployerDenied(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.Apply(context.Background(), "emp1", domain.RoleEmployer, "j1", ApplyRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
}

func TestApply_ClosedJob(t *testing.T) {
	js := &mockJobStore{}
	js.On("Get", mock.Anything, "j1").Return(&domain.Job{JobID: "j1", Active: false}, nil)

	svc := NewService(js, nil, nil)
	_, err := svc.Apply(context.Background(), "u1", domain.RoleCandidate, "j1", ApplyRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestApply_Duplicate(t *testing.T) {
	js := &mockJobStore{}
	as := &mockApplicationStore{}
	js.On("Get", mock.Anything, "j1").Return(&domain.Job{JobID: "j1", Active: true}, nil)
	as.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateApplication)

	svc := NewService(js, as, nil)
	_, err := svc.Apply(context.Background(), "u1", domain.RoleCandidate, "j1", ApplyRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateApplication))
}

func TestApply_HappyPath(t *testing.T) {
	js := &mockJobStore{}
	as := &mockApplicationStore{}
	js.On("Get", mock.Anything, "j1").Return(&domain.Job{
		JobID:       "j1",
		Title:       "Backend Engineer",
		CompanyName: "Acme Corp",
		Active:      true,
	}, nil)
	as.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Application) bool {
		return a.JobID == "j1" && a.ApplicantID == "u1" && a.Status == domain.ApplicationSubmitted
	})).Return(nil)

	svc := NewService(js, as, nil)
	a, err := svc.Apply(context.Background(), "u1", domain.RoleCandidate, "j1", ApplyRequest{
		CoverLetter: "Hi there",
	})

	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", a.JobTitle)
	assert.Equal(t, "Acme Corp", a.CompanyName)
	as.AssertExpectations(t)
}

// --- Application status ---

func TestUpdateApplicationStatus_NotPostingEmployer(t *testing.T) {
	js := &mockJobStore{}
	as := &mockApplicationStore{}
	as.On("Get", mock.Anything, "a1").Return(&domain.Application{ApplicationID: "a1", JobID: "j1"}, nil)
	js.On("Get", mock.Anything, "j1").Return(&domain.Job{JobID: "j1", EmployerID: "emp1"}, nil)

	svc := NewService(js, as, nil)
	_, err := svc.UpdateApplicationStatus(context.Background(), "other", "a1", UpdateApplicationRequest{
		Status: domain.ApplicationAccepted,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
	as.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateApplicationStatus_HappyPath(t *testing.T) {
	js := &mockJobStore{}
	as := &mockApplicationStore{}
	as.On("Get", mock.Anything, "a1").Return(&domain.Application{
		ApplicationID: "a1",
		JobID:         "j1",
		Status:        domain.ApplicationSubmitted,
	}, nil)
	js.On("Get", mock.Anything, "j1").Return(&domain.Job{JobID: "j1", EmployerID: "emp1"}, nil)
	as.On("UpdateStatus", mock.Anything, "a1", domain.ApplicationAccepted).Return(nil)

	svc := NewService(js, as, nil)
	a, err := svc.UpdateApplicationStatus(context.Background(), "emp1", "a1", UpdateApplicationRequest{
		Status: domain.ApplicationAccepted,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, a.Status)
}

func TestListEmployerApplications_CandidateDenied(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.ListEmployerApplications(context.Background(), "u1", domain.RoleCandidate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
}
