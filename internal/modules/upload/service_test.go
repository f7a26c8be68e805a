package upload

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapi/internal/domain"
	"blogapi/internal/pkg/authz"
)

type mockUploadRepo struct {
	mock.Mock
}

func (m *mockUploadRepo) Create(ctx context.Context, u *domain.Upload) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUploadRepo) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Upload), args.Error(1)
}

func (m *mockUploadRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUploadRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Upload, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Upload), args.Error(1)
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

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(len(content)) + 10240)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestService_Save(t *testing.T) {
	dir := t.TempDir()
	repo := new(mockUploadRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, stubAudit{}, dir, 1<<20)

	fh := makeFileHeader(t, "cat.png", pngHeader)
	u, err := service.Save(context.Background(), alice, fh)

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.OwnerID)
	assert.Equal(t, "cat.png", u.OriginalName)
	assert.Equal(t, "image/png", u.MimeType)
	_, err = uuid.Parse(u.ID)
	assert.NoError(t, err)

	// The file really landed under the upload root.
	data, err := os.ReadFile(filepath.Join(dir, u.StoredPath))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	repo.AssertExpectations(t)
}

func TestService_Save_Anonymous(t *testing.T) {
	repo := new(mockUploadRepo)
	service := NewService(repo, stubAudit{}, t.TempDir(), 1<<20)

	fh := makeFileHeader(t, "cat.png", pngHeader)
	_, err := service.Save(context.Background(), nil, fh)

	assert.ErrorIs(t, err, ErrUploadNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Save_TooLarge(t *testing.T) {
	repo := new(mockUploadRepo)
	service := NewService(repo, stubAudit{}, t.TempDir(), 8)

	fh := makeFileHeader(t, "cat.png", pngHeader)
	_, err := service.Save(context.Background(), alice, fh)

	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestService_Save_Empty(t *testing.T) {
	repo := new(mockUploadRepo)
	service := NewService(repo, stubAudit{}, t.TempDir(), 1<<20)

	fh := makeFileHeader(t, "empty.txt", nil)
	_, err := service.Save(context.Background(), alice, fh)

	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestService_Save_DisallowedType(t *testing.T) {
	repo := new(mockUploadRepo)
	service := NewService(repo, stubAudit{}, t.TempDir(), 1<<20)

	// Sniffs as application/octet-stream regardless of the .png name.
	fh := makeFileHeader(t, "fake.png", []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe})
	_, err := service.Save(context.Background(), alice, fh)

	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestService_Save_TraversalNameContained(t *testing.T) {
	dir := t.TempDir()
	repo := new(mockUploadRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, stubAudit{}, dir, 1<<20)

	fh := makeFileHeader(t, "../../../etc/passwd.png", pngHeader)
	u, err := service.Save(context.Background(), alice, fh)

	require.NoError(t, err)
	assert.NotContains(t, u.StoredPath, "..")

	abs, err := filepath.Abs(filepath.Join(dir, u.StoredPath))
	require.NoError(t, err)
	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(abs, absDir+string(os.PathSeparator)),
		"stored file %q escaped upload root %q", abs, absDir)
}

func TestService_GetForDownload(t *testing.T) {
	id := uuid.New().String()
	owned := &domain.Upload{ID: id, OwnerID: 1, StoredPath: "2026/01/02/x.png"}

	tests := []struct {
		name     string
		identity *authz.Identity
		wantErr  error
	}{
		{"owner", alice, nil},
		{"admin", root, nil},
		{"stranger masked as missing", bob, ErrUploadNotFound},
		{"anonymous masked as missing", nil, ErrUploadNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUploadRepo)
			repo.On("GetByID", mock.Anything, id).Return(owned, nil)

			service := NewService(repo, stubAudit{}, "/var/uploads", 1<<20)

			u, path, err := service.GetForDownload(context.Background(), tt.identity, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, id, u.ID)
				assert.Equal(t, filepath.Join("/var/uploads", owned.StoredPath), path)
			}
		})
	}
}

func TestService_GetForDownload_BadID(t *testing.T) {
	repo := new(mockUploadRepo)
	service := NewService(repo, stubAudit{}, "/var/uploads", 1<<20)

	_, _, err := service.GetForDownload(context.Background(), alice, "not-a-uuid")

	assert.ErrorIs(t, err, ErrUploadNotFound)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_GetForDownload_Missing(t *testing.T) {
	id := uuid.New().String()
	repo := new(mockUploadRepo)
	repo.On("GetByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, stubAudit{}, "/var/uploads", 1<<20)

	_, _, err := service.GetForDownload(context.Background(), alice, id)
	assert.ErrorIs(t, err, ErrUploadNotFound)
}

func TestService_Delete(t *testing.T) {
	dir := t.TempDir()
	rel := filepath.Join("2026", "01", "02", "x.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, rel)), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, rel), pngHeader, 0644))

	id := uuid.New().String()
	owned := &domain.Upload{ID: id, OwnerID: 1, StoredPath: rel}

	repo := new(mockUploadRepo)
	repo.On("GetByID", mock.Anything, id).Return(owned, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	service := NewService(repo, stubAudit{}, dir, 1<<20)

	require.NoError(t, service.Delete(context.Background(), alice, id))

	_, err := os.Stat(filepath.Join(dir, rel))
	assert.True(t, os.IsNotExist(err))
	repo.AssertExpectations(t)
}

func TestService_Delete_Stranger(t *testing.T) {
	id := uuid.New().String()
	owned := &domain.Upload{ID: id, OwnerID: 1, StoredPath: "2026/01/02/x.png"}

	repo := new(mockUploadRepo)
	repo.On("GetByID", mock.Anything, id).Return(owned, nil)

	service := NewService(repo, stubAudit{}, t.TempDir(), 1<<20)

	err := service.Delete(context.Background(), bob, id)
	assert.ErrorIs(t, err, ErrUploadNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_ListOwn(t *testing.T) {
	repo := new(mockUploadRepo)
	repo.On("ListByOwner", mock.Anything, int64(1)).Return([]*domain.Upload{{ID: "a"}}, nil)

	service := NewService(repo, stubAudit{}, t.TempDir(), 1<<20)

	uploads, err := service.ListOwn(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, uploads, 1)

	_, err = service.ListOwn(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUploadNotFound)
}
