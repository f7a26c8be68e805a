package admin

import (
	"context"

	"blogapi/internal/domain"
	"blogapi/internal/pkg/authz"
)

type Service struct {
	users   UserLister
	posts   PostCounter
	uploads UploadCounter
}

func NewService(users UserLister, posts PostCounter, uploads UploadCounter) *Service {
	return &Service{users: users, posts: posts, uploads: uploads}
}

// ListUsers returns a page of user records for the admin view. The route is
// already behind the admin middleware; the policy check here keeps the
// service safe even if it is ever wired without it.
func (s *Service) ListUsers(ctx context.Context, identity *authz.Identity, page, limit int) ([]domain.User, int64, error) {
	if d := authz.Authorize(identity, authz.UserList, authz.Resource{}); !d.Allowed {
		return nil, 0, ErrForbidden
	}
	return s.users.List(ctx, page, limit)
}

func (s *Service) Stats(ctx context.Context, identity *authz.Identity) (*StatsResponse, error) {
	if d := authz.Authorize(identity, authz.UserList, authz.Resource{}); !d.Allowed {
		return nil, ErrForbidden
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}
	uploads, err := s.uploads.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalUsers:   users,
		TotalPosts:   posts,
		TotalUploads: uploads,
	}, nil
}
