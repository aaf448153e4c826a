package domain

import "time"

const (
	FileKindResume  = "resume"
	FileKindLogo    = "company_logo"
	FileKindPicture = "profile_picture"
)

// File records an object uploaded to the object store (resume, company logo
// or profile picture) and who owns it.
type File struct {
	FileID      string    `json:"id"`
	Kind        string    `json:"kind"`
	ObjectKey   string    `json:"-"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}
