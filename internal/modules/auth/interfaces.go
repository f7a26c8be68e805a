package auth

import (
	"context"
	"time"

	"blogapi/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	RecordFailedLogin(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error
	ResetLoginFailures(ctx context.Context, id int64) error
}

// RefreshTokenRepositoryInterface — storage for refresh tokens
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id int64, replacedByID *int64) (int64, error)
	RevokeByUser(ctx context.Context, userID int64) error
}

// AuditRecorder appends security events. Implementations must be safe to
// call best-effort; the service ignores recording failures.
type AuditRecorder interface {
	Record(ctx context.Context, userID *int64, action, detail string) error
}
