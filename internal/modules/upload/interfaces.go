package upload

import (
	"context"

	"blogapi/internal/domain"
)

// UploadRepositoryInterface — only the methods the upload service uses
type UploadRepositoryInterface interface {
	Create(ctx context.Context, u *domain.Upload) error
	GetByID(ctx context.Context, id string) (*domain.Upload, error)
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Upload, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, userID *int64, action, detail string) error
}
