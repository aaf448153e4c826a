package domain

import "time"

const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeRemote     = "remote"
)

// Job is an employer-owned posting. EmployerID references the employer
// profile; CompanyName is denormalized from it at creation time.
type Job struct {
	JobID        string    `json:"id"`
	EmployerID   string    `json:"employer_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Location     string    `json:"location"`
	JobType      string    `json:"job_type"`
	Salary       *float64  `json:"salary,omitempty"`
	CompanyName  string    `json:"company_name"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateJobRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Location     string   `json:"location"`
	JobType      string   `json:"job_type" validate:"omitempty,oneof=full_time part_time contract internship remote"`
	Salary       *float64 `json:"salary"`
}

type UpdateJobRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Requirements *string  `json:"requirements"`
	Location     *string  `json:"location"`
	JobType      *string  `json:"job_type" validate:"omitempty,oneof=full_time part_time contract internship remote"`
	Salary       *float64 `json:"salary"`
	Active       *bool    `json:"is_active"`
}
