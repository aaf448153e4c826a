package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jobboard-api/internal/domain"
)

// FileRepo provides typed Postgres operations for uploaded-file records.
type FileRepo struct {
	db *sql.DB
}

func NewFileRepo(db *sql.DB) *FileRepo {
	return &FileRepo{db: db}
}

func (r *FileRepo) Create(ctx context.Context, f *domain.File) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO files (file_id, kind, object_key, name, content_type, size, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.FileID, f.Kind, f.ObjectKey, f.Name, f.ContentType, f.Size, f.OwnerID, f.CreatedAt)
	return err
}

func (r *FileRepo) Get(ctx context.Context, fileID string) (*domain.File, error) {
	var f domain.File
	err := r.db.QueryRowContext(ctx,
		`SELECT file_id, kind, object_key, name, content_type, size, owner_id, created_at
		 FROM files WHERE file_id = $1`, fileID).
		Scan(&f.FileID, &f.Kind, &f.ObjectKey, &f.Name, &f.ContentType, &f.Size, &f.OwnerID, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}
