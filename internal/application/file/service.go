package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/id"
)

const presignTTL = 15 * time.Minute

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// Service stores profile attachments (candidate resumes, employer logos,
// profile pictures) in the object store and links them to the owner.
type Service interface {
	UploadResume(ctx context.Context, userID, role string, input UploadInput) (*domain.File, error)
	UploadLogo(ctx context.Context, userID, role string, input UploadInput) (*domain.File, error)
	UploadPicture(ctx context.Context, userID, role string, input UploadInput) (*domain.File, error)
	DownloadURL(ctx context.Context, fileID, requesterID string) (string, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type fileStore interface {
	Create(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
}

type profileLinker interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetProfile(ctx context.Context, userID, role string) (*domain.Profile, error)
	SetProfileFile(ctx context.Context, userID, role, fileID string) error
	SetProfilePicture(ctx context.Context, userID, fileID string) error
}

type service struct {
	objects  objectStore
	files    fileStore
	profiles profileLinker
}

func NewService(objects objectStore, files fileStore, profiles profileLinker) Service {
	return &service{objects: objects, files: files, profiles: profiles}
}

func (s *service) UploadResume(ctx context.Context, userID, role string, input UploadInput) (*domain.File, error) {
	if role != domain.RoleCandidate {
		return nil, fmt.Errorf("resumes belong to candidates: %w", domain.ErrPermissionDenied)
	}
	return s.upload(ctx, userID, role, domain.FileKindResume, "resumes", input)
}

func (s *service) UploadLogo(ctx context.Context, userID, role string, input UploadInput) (*domain.File, error) {
	if role != domain.RoleEmployer {
		return nil, fmt.Errorf("logos belong to employers: %w", domain.ErrPermissionDenied)
	}
	return s.upload(ctx, userID, role, domain.FileKindLogo, "company_logos", input)
}

// UploadPicture stores a profile picture. Either role can have one.
func (s *service) UploadPicture(ctx context.Context, userID, role string, input UploadInput) (*domain.File, error) {
	return s.upload(ctx, userID, role, domain.FileKindPicture, "profile_pics", input)
}

func (s *service) upload(ctx context.Context, userID, role, kind, prefix string, input UploadInput) (*domain.File, error) {
	oldFileID := s.currentFileID(ctx, userID, role, kind)

	safeName := sanitizeFilename(input.Filename)
	key := fmt.Sprintf("%s/%s/%s", prefix, userID, safeName)

	if err := s.objects.Upload(ctx, key, input.Reader, input.ContentType); err != nil {
		return nil, err
	}

	f := &domain.File{
		FileID:      id.New(),
		Kind:        kind,
		ObjectKey:   key,
		Name:        safeName,
		ContentType: input.ContentType,
		Size:        input.Size,
		OwnerID:     userID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.files.Create(ctx, f); err != nil {
		return nil, err
	}
	var linkErr error
	if kind == domain.FileKindPicture {
		linkErr = s.profiles.SetProfilePicture(ctx, userID, f.FileID)
	} else {
		linkErr = s.profiles.SetProfileFile(ctx, userID, role, f.FileID)
	}
	if linkErr != nil {
		return nil, linkErr
	}

	// A re-upload replaces the previous attachment; removing the old object
	// is best effort.
	if oldFileID != "" && oldFileID != f.FileID {
		if old, err := s.files.Get(ctx, oldFileID); err == nil && old.ObjectKey != key {
			if err := s.objects.Delete(ctx, old.ObjectKey); err != nil {
				slog.Warn("delete replaced object failed", "key", old.ObjectKey, "error", err)
			}
		}
	}
	return f, nil
}

// currentFileID returns the id of the attachment of the given kind currently
// linked to the user, if any.
func (s *service) currentFileID(ctx context.Context, userID, role, kind string) string {
	if kind == domain.FileKindPicture {
		u, err := s.profiles.Get(ctx, userID)
		if err != nil || u.PictureFileID == nil {
			return ""
		}
		return *u.PictureFileID
	}
	p, err := s.profiles.GetProfile(ctx, userID, role)
	if err != nil {
		return ""
	}
	switch {
	case p.Kind == domain.RoleCandidate && p.Candidate.ResumeFileID != nil:
		return *p.Candidate.ResumeFileID
	case p.Kind == domain.RoleEmployer && p.Employer.LogoFileID != nil:
		return *p.Employer.LogoFileID
	}
	return ""
}

// DownloadURL returns a presigned GET URL. Resumes are restricted to their
// owner; logos are public to any authenticated user.
func (s *service) DownloadURL(ctx context.Context, fileID, requesterID string) (string, error) {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return "", err
	}
	if f.Kind == domain.FileKindResume && f.OwnerID != requesterID {
		return "", fmt.Errorf("not the resume owner: %w", domain.ErrPermissionDenied)
	}
	return s.objects.PresignedURL(ctx, f.ObjectKey, presignTTL)
}

// sanitizeFilename reduces a client-supplied filename to a safe object-key
// segment. An empty or path-only name gets a generated one instead, so the
// key never ends in "." or "/".
func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if strings.Trim(safe, "._-") == "" {
		return id.New()
	}
	return safe
}
