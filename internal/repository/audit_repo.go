package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"blogapi/internal/domain"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, userID *int64, action, detail string) error {
	event := domain.AuditEvent{
		UserID: userID,
		Action: action,
		Detail: detail,
	}
	return r.db.WithContext(ctx).Create(&event).Error
}

func (r *AuditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.AuditEvent{})
	return tx.RowsAffected, tx.Error
}
