package post

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapi/internal/domain"
	"blogapi/internal/pkg/authz"
)

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Create(ctx context.Context, p *domain.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPostRepo) ListVisible(ctx context.Context, viewerID int64, isAdmin bool, page, limit int) ([]domain.Post, int64, error) {
	args := m.Called(ctx, viewerID, isAdmin, page, limit)
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

type stubAudit struct{}

func (stubAudit) Record(ctx context.Context, userID *int64, action, detail string) error {
	return nil
}

var (
	alice = &authz.Identity{UserID: 1, Role: domain.RoleUser}
	bob   = &authz.Identity{UserID: 2, Role: domain.RoleUser}
	root  = &authz.Identity{UserID: 3, Role: domain.RoleAdmin}
)

func TestService_Create_OwnerFromIdentity(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, stubAudit{})

	p, err := service.Create(context.Background(), alice, CreatePostRequest{
		Title:   "first",
		Content: "hello",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), p.OwnerID)
	assert.Equal(t, domain.VisibilityPublic, p.Visibility)
}

func TestService_Create_Private(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, stubAudit{})

	p, err := service.Create(context.Background(), alice, CreatePostRequest{
		Title:      "draft",
		Content:    "secret",
		Visibility: "private",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VisibilityPrivate, p.Visibility)
}

func TestService_Create_AnonymousRejected(t *testing.T) {
	repo := new(mockPostRepo)
	service := NewService(repo, stubAudit{})

	_, err := service.Create(context.Background(), nil, CreatePostRequest{Title: "x", Content: "y"})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Get_PrivateVisibility(t *testing.T) {
	private := &domain.Post{ID: 7, Title: "draft", OwnerID: 1, Visibility: domain.VisibilityPrivate}

	tests := []struct {
		name     string
		identity *authz.Identity
		wantErr  error
	}{
		{"owner sees it", alice, nil},
		{"admin sees it", root, nil},
		{"stranger gets not found", bob, ErrPostNotFound},
		{"anonymous gets not found", nil, ErrPostNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockPostRepo)
			repo.On("GetByID", mock.Anything, int64(7)).Return(private, nil)

			service := NewService(repo, stubAudit{})

			p, err := service.Get(context.Background(), tt.identity, 7)
			if tt.wantErr != nil {
				// Denied reads look exactly like a missing post.
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), p.ID)
			}
		})
	}
}

func TestService_Get_Public(t *testing.T) {
	public := &domain.Post{ID: 8, Title: "hello", OwnerID: 1, Visibility: domain.VisibilityPublic}

	repo := new(mockPostRepo)
	repo.On("GetByID", mock.Anything, int64(8)).Return(public, nil)

	service := NewService(repo, stubAudit{})

	p, err := service.Get(context.Background(), nil, 8)
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Title)
}

func TestService_Get_Missing(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, stubAudit{})

	_, err := service.Get(context.Background(), alice, 99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestService_List_PassesViewer(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("ListVisible", mock.Anything, int64(0), false, 1, 20).Return([]domain.Post{}, int64(0), nil)
	repo.On("ListVisible", mock.Anything, int64(3), true, 1, 20).Return([]domain.Post{{ID: 1}}, int64(1), nil)

	service := NewService(repo, stubAudit{})

	_, total, err := service.List(context.Background(), nil, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	posts, total, err := service.List(context.Background(), root, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, posts, 1)

	repo.AssertExpectations(t)
}

func TestService_Delete(t *testing.T) {
	existing := &domain.Post{ID: 7, OwnerID: 1, Visibility: domain.VisibilityPublic}

	tests := []struct {
		name     string
		identity *authz.Identity
		wantErr  error
	}{
		{"owner deletes", alice, nil},
		{"admin deletes", root, nil},
		{"stranger forbidden", bob, ErrNotPostOwner},
		{"anonymous forbidden", nil, ErrNotPostOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockPostRepo)
			repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
			repo.On("Delete", mock.Anything, int64(7)).Return(nil)

			service := NewService(repo, stubAudit{})

			err := service.Delete(context.Background(), tt.identity, 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Delete_Missing(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, stubAudit{})

	assert.ErrorIs(t, service.Delete(context.Background(), alice, 99), ErrPostNotFound)
}
