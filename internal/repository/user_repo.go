package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"blogapi/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                  int64      `gorm:"column:id;primaryKey"`
	Username            string     `gorm:"column:username"`
	Email               string     `gorm:"column:email"`
	PasswordHash        string     `gorm:"column:password_hash"`
	Role                string     `gorm:"column:role"`
	FailedLoginAttempts int        `gorm:"column:failed_login_attempts"`
	LockedUntil         *time.Time `gorm:"column:locked_until"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:                  m.ID,
		Username:            m.Username,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		Role:                domain.UserRole(m.Role),
		FailedLoginAttempts: m.FailedLoginAttempts,
		LockedUntil:         m.LockedUntil,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:                  u.ID,
		Username:            strings.TrimSpace(u.Username),
		Email:               strings.TrimSpace(strings.ToLower(u.Email)),
		PasswordHash:        u.PasswordHash,
		Role:                string(u.Role),
		FailedLoginAttempts: u.FailedLoginAttempts,
		LockedUntil:         u.LockedUntil,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// Create inserts a new user. Uniqueness of username and email is enforced by
// the database constraints, not by an application-level pre-check, so two
// concurrent registrations of the same name cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		switch duplicateKeyColumn(err) {
		case "username":
			return ErrDuplicateUsername
		case "email":
			return ErrDuplicateEmail
		}
		return err
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *UserRepository) RecordFailedLogin(ctx context.Context, id int64, attempts int, lockedUntil *time.Time) error {
	updates := map[string]any{"failed_login_attempts": attempts}
	if lockedUntil != nil {
		updates["locked_until"] = *lockedUntil
	}
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *UserRepository) ResetLoginFailures(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"failed_login_attempts": 0, "locked_until": nil}).Error
}

// List returns a page of users ordered by creation time, newest first.
// Password hashes stay inside the repository boundary: the returned users
// have PasswordHash blanked.
func (r *UserRepository) List(ctx context.Context, page, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []userModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		u := toDomainUser(m)
		u.PasswordHash = ""
		users = append(users, *u)
	}
	return users, total, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Count(&total).Error
	return total, err
}

// duplicateKeyColumn identifies which unique constraint a write violated.
// Postgres reports SQLSTATE 23505 with the constraint name; the sqlite
// driver reports "UNIQUE constraint failed: users.<column>".
func duplicateKeyColumn(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return "username"
		}
		if strings.Contains(pgErr.ConstraintName, "email") {
			return "email"
		}
	}

	msg := err.Error()
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505") {
		if strings.Contains(msg, "username") {
			return "username"
		}
		if strings.Contains(msg, "email") {
			return "email"
		}
	}
	return ""
}
