package post

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogapi/internal/domain"
	"blogapi/internal/pkg/authz"
)

// Service contains the business logic for posts. Every read or mutation of
// an existing post goes through authz.Authorize before the repository acts.
type Service struct {
	posts PostRepositoryInterface
	audit AuditRecorder
}

func NewService(posts PostRepositoryInterface, audit AuditRecorder) *Service {
	return &Service{posts: posts, audit: audit}
}

// Create stores a new post. The owner is always the authenticated identity;
// a client-supplied owner id is never accepted.
func (s *Service) Create(ctx context.Context, identity *authz.Identity, req CreatePostRequest) (*domain.Post, error) {
	if d := authz.Authorize(identity, authz.PostCreate, authz.Resource{}); !d.Allowed {
		return nil, ErrNotPostOwner
	}

	visibility := domain.VisibilityPublic
	if req.Visibility == string(domain.VisibilityPrivate) {
		visibility = domain.VisibilityPrivate
	}

	p := &domain.Post{
		Title:      req.Title,
		Content:    req.Content,
		OwnerID:    identity.UserID,
		Visibility: visibility,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	_ = s.audit.Record(ctx, &identity.UserID, "post.create", fmt.Sprintf("post %d", p.ID))
	return p, nil
}

// Get returns a post if the identity may read it. A private post that the
// identity may not see reports ErrPostNotFound, not a permission error, so
// its existence does not leak.
func (s *Service) Get(ctx context.Context, identity *authz.Identity, id int64) (*domain.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	res := authz.Resource{OwnerID: p.OwnerID, Public: p.IsPublic()}
	if d := authz.Authorize(identity, authz.PostRead, res); !d.Allowed {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// List returns the posts visible to the identity: public posts plus the
// identity's own, everything for an admin.
func (s *Service) List(ctx context.Context, identity *authz.Identity, page, limit int) ([]domain.Post, int64, error) {
	var viewerID int64
	var isAdmin bool
	if identity != nil {
		viewerID = identity.UserID
		isAdmin = identity.Role == domain.RoleAdmin
	}
	return s.posts.ListVisible(ctx, viewerID, isAdmin, page, limit)
}

// Delete removes a post after an ownership-or-admin check.
func (s *Service) Delete(ctx context.Context, identity *authz.Identity, id int64) error {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	res := authz.Resource{OwnerID: p.OwnerID, Public: p.IsPublic()}
	if d := authz.Authorize(identity, authz.PostDelete, res); !d.Allowed {
		return ErrNotPostOwner
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	if identity != nil {
		_ = s.audit.Record(ctx, &identity.UserID, "post.delete", fmt.Sprintf("post %d", id))
	}
	return nil
}
