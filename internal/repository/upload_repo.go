package repository

import (
	"context"

	"gorm.io/gorm"

	"blogapi/internal/domain"
)

type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) Create(ctx context.Context, u *domain.Upload) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UploadRepository) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	var u domain.Upload
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UploadRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Upload{}).Error
}

func (r *UploadRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Upload, error) {
	var uploads []*domain.Upload
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Upload{}).Count(&total).Error
	return total, err
}
