package post

import (
	"context"

	"blogapi/internal/domain"
)

// PostRepositoryInterface — only the methods the post service uses
type PostRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
	ListVisible(ctx context.Context, viewerID int64, isAdmin bool, page, limit int) ([]domain.Post, int64, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, userID *int64, action, detail string) error
}
