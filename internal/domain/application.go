package domain

import "time"

const (
	ApplicationSubmitted = "submitted"
	ApplicationReviewed  = "reviewed"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
)

// Application records a candidate applying to a job. The (job, applicant)
// pair is unique; the database constraint is the sole enforcement point.
type Application struct {
	ApplicationID string    `json:"id"`
	JobID         string    `json:"job_id"`
	ApplicantID   string    `json:"applicant_id"`
	CoverLetter   string    `json:"cover_letter"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// JobTitle and CompanyName are filled on list reads for display.
	JobTitle    string `json:"job_title,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}
