package repository

import (
	"context"

	"gorm.io/gorm"

	"blogapi/internal/domain"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	tx := r.db.WithContext(ctx).First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Post{}, id).Error
}

// ListVisible returns a page of posts the viewer may see: everything for an
// admin, public plus own posts for a regular user, public only for an
// anonymous viewer.
func (r *PostRepository) ListVisible(ctx context.Context, viewerID int64, isAdmin bool, page, limit int) ([]domain.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Post{})
	switch {
	case isAdmin:
		// no filter
	case viewerID > 0:
		q = q.Where("visibility = ? OR owner_id = ?", domain.VisibilityPublic, viewerID)
	default:
		q = q.Where("visibility = ?", domain.VisibilityPublic)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []domain.Post
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Count(&total).Error
	return total, err
}
