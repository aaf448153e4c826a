package profile

import (
	"context"

	"github.com/jobboard-api/internal/domain"
)

type UpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone_number"`

	// Candidate-only fields.
	Skills            *string  `json:"skills"`
	Education         *string  `json:"education"`
	Experience        *string  `json:"experience"`
	ExpectedSalary    *float64 `json:"expected_salary"`
	PreferredLocation *string  `json:"preferred_location"`

	// Employer-only fields.
	CompanyName        *string `json:"company_name"`
	CompanyDescription *string `json:"company_description"`
	CompanyWebsite     *string `json:"company_website" validate:"omitempty,url"`
	CompanySize        *string `json:"company_size"`
	Industry           *string `json:"industry"`
}

// View pairs the identity with its role-matched profile record.
type View struct {
	User    *domain.User
	Profile *domain.Profile
}

// Service reads and updates the role-tagged profile attached to an identity.
// The role is immutable, so the profile kind never changes after signup.
type Service interface {
	Get(ctx context.Context, userID string) (*View, error)
	Update(ctx context.Context, userID string, req UpdateRequest) (*View, error)
	GetPublic(ctx context.Context, userID string) (*View, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateBasics(ctx context.Context, userID, firstName, lastName, phone string) error
	GetProfile(ctx context.Context, userID, role string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, p *domain.Profile) error
}

type service struct {
	users userStore
}

func NewService(users userStore) Service {
	return &service{users: users}
}

func (s *service) Get(ctx context.Context, userID string) (*View, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.users.GetProfile(ctx, userID, u.Role)
	if err != nil {
		return nil, err
	}
	return &View{User: u, Profile: p}, nil
}

// GetPublic returns the publicly viewable projection. The handler decides
// which identity fields to expose; the data loaded is the same.
func (s *service) GetPublic(ctx context.Context, userID string) (*View, error) {
	return s.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req UpdateRequest) (*View, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if err := s.users.UpdateBasics(ctx, userID, u.FirstName, u.LastName, u.Phone); err != nil {
		return nil, err
	}

	p, err := s.users.GetProfile(ctx, userID, u.Role)
	if err != nil {
		return nil, err
	}
	applyProfileFields(p, req)
	if err := s.users.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	return &View{User: u, Profile: p}, nil
}

// applyProfileFields copies the request fields matching the profile kind;
// fields for the other kind are ignored rather than rejected, mirroring
// partial-update semantics.
func applyProfileFields(p *domain.Profile, req UpdateRequest) {
	switch p.Kind {
	case domain.RoleCandidate:
		c := p.Candidate
		if req.Skills != nil {
			c.Skills = *req.Skills
		}
		if req.Education != nil {
			c.Education = *req.Education
		}
		if req.Experience != nil {
			c.Experience = *req.Experience
		}
		if req.ExpectedSalary != nil {
			c.ExpectedSalary = req.ExpectedSalary
		}
		if req.PreferredLocation != nil {
			c.PreferredLocation = *req.PreferredLocation
		}
	case domain.RoleEmployer:
		e := p.Employer
		if req.CompanyName != nil {
			e.CompanyName = *req.CompanyName
		}
		if req.CompanyDescription != nil {
			e.CompanyDescription = *req.CompanyDescription
		}
		if req.CompanyWebsite != nil {
			e.CompanyWebsite = *req.CompanyWebsite
		}
		if req.CompanySize != nil {
			e.CompanySize = *req.CompanySize
		}
		if req.Industry != nil {
			e.Industry = *req.Industry
		}
	}
}
