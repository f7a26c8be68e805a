package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapi/internal/domain"
	"blogapi/internal/pkg/authz"
)

// AllowedMimeTypes defines which file types are accepted
var AllowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/webm":      true,
	"application/pdf": true,
	"text/plain":      true,
}

// Service handles file uploads to local disk. The stored name is always
// server-generated (uuid plus a sanitized copy of the original base name)
// under a date-sharded directory, so a client-supplied filename can never
// escape the upload root.
type Service struct {
	repo    UploadRepositoryInterface
	audit   AuditRecorder
	baseDir string
	maxSize int64
}

func NewService(repo UploadRepositoryInterface, audit AuditRecorder, baseDir string, maxSize int64) *Service {
	return &Service{repo: repo, audit: audit, baseDir: baseDir, maxSize: maxSize}
}

// Save writes the file to disk and records it. The owner is always the
// authenticated identity.
func (s *Service) Save(ctx context.Context, identity *authz.Identity, fileHeader *multipart.FileHeader) (*domain.Upload, error) {
	if d := authz.Authorize(identity, authz.UploadCreate, authz.Resource{}); !d.Allowed {
		return nil, ErrUploadNotFound
	}
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Detect MIME type from first 512 bytes
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := http.DetectContentType(buf[:n])
	mimeType = strings.Split(mimeType, ";")[0] // strip charset params

	if !AllowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}

	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	// Build directory: uploads/YYYY/MM/DD/
	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	ext := filepath.Ext(fileHeader.Filename)
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	filename := fmt.Sprintf("%s_%s%s", id, sanitizeName(fileHeader.Filename), ext)

	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	u := &domain.Upload{
		ID:           id,
		OwnerID:      identity.UserID,
		OriginalName: fileHeader.Filename,
		StoredPath:   filepath.Join(relDir, filename),
		MimeType:     mimeType,
		Size:         fileHeader.Size,
		CreatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		_ = os.Remove(absPath) // rollback file on DB error
		return nil, fmt.Errorf("failed to save upload record: %w", err)
	}

	_ = s.audit.Record(ctx, &identity.UserID, "upload.create", id)
	return u, nil
}

// GetForDownload returns the upload record and the absolute path of its
// file. A non-owner gets ErrUploadNotFound rather than a permission error.
func (s *Service) GetForDownload(ctx context.Context, identity *authz.Identity, id string) (*domain.Upload, string, error) {
	u, err := s.getAuthorized(ctx, identity, id, authz.UploadRead)
	if err != nil {
		return nil, "", err
	}
	return u, filepath.Join(s.baseDir, u.StoredPath), nil
}

// Delete removes the physical file and the DB record.
func (s *Service) Delete(ctx context.Context, identity *authz.Identity, id string) error {
	u, err := s.getAuthorized(ctx, identity, id, authz.UploadDelete)
	if err != nil {
		return err
	}

	absPath := filepath.Join(s.baseDir, u.StoredPath)
	_ = os.Remove(absPath) // file may already be gone

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, &identity.UserID, "upload.delete", id)
	return nil
}

// ListOwn returns the identity's uploads.
func (s *Service) ListOwn(ctx context.Context, identity *authz.Identity) ([]*domain.Upload, error) {
	if identity == nil {
		return nil, ErrUploadNotFound
	}
	return s.repo.ListByOwner(ctx, identity.UserID)
}

func (s *Service) getAuthorized(ctx context.Context, identity *authz.Identity, id string, op authz.Operation) (*domain.Upload, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUploadNotFound
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}

	if d := authz.Authorize(identity, op, authz.Resource{OwnerID: u.OwnerID}); !d.Allowed {
		return nil, ErrUploadNotFound
	}
	return u, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name)) // strip extension (added separately)
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "application/pdf":
		return ".pdf"
	case "text/plain":
		return ".txt"
	default:
		return ".bin"
	}
}
