package admin

import (
	"context"

	"blogapi/internal/domain"
)

// UserLister — the slice of the user repository the admin service needs.
// The repository blanks password hashes before returning users.
type UserLister interface {
	List(ctx context.Context, page, limit int) ([]domain.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

type PostCounter interface {
	Count(ctx context.Context) (int64, error)
}

type UploadCounter interface {
	Count(ctx context.Context) (int64, error)
}
