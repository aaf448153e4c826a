package domain

// CandidateProfile is the extended data attached to a candidate account.
type CandidateProfile struct {
	UserID            string   `json:"-"`
	ResumeFileID      *string  `json:"resume_file_id,omitempty"`
	Skills            string   `json:"skills"` // comma-separated list
	Education         string   `json:"education"`
	Experience        string   `json:"experience"`
	ExpectedSalary    *float64 `json:"expected_salary,omitempty"`
	PreferredLocation string   `json:"preferred_location"`
}

// EmployerProfile is the extended data attached to an employer account.
type EmployerProfile struct {
	UserID             string  `json:"-"`
	CompanyName        string  `json:"company_name"`
	CompanyDescription string  `json:"company_description"`
	CompanyWebsite     string  `json:"company_website"`
	CompanySize        string  `json:"company_size"`
	Industry           string  `json:"industry"`
	LogoFileID         *string `json:"company_logo_file_id,omitempty"`
}

// Profile is a tagged union over the two profile kinds. Kind always equals
// the owning user's role, and exactly one of the two pointers is set.
type Profile struct {
	Kind      string            `json:"kind"`
	Candidate *CandidateProfile `json:"-"`
	Employer  *EmployerProfile  `json:"-"`
}

// NewEmptyProfile returns the empty profile record for a freshly provisioned
// account with the given role.
func NewEmptyProfile(userID, role string) *Profile {
	switch role {
	case RoleEmployer:
		return &Profile{Kind: RoleEmployer, Employer: &EmployerProfile{UserID: userID}}
	default:
		return &Profile{Kind: RoleCandidate, Candidate: &CandidateProfile{UserID: userID}}
	}
}

// Data returns the kind-specific sub-object for JSON rendering.
func (p *Profile) Data() any {
	if p == nil {
		return map[string]any{}
	}
	switch p.Kind {
	case RoleCandidate:
		return p.Candidate
	case RoleEmployer:
		return p.Employer
	}
	return map[string]any{}
}
