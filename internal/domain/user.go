package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID                  int64      `json:"id" gorm:"primaryKey"`
	Username            string     `json:"username" gorm:"size:64;uniqueIndex;not null" validate:"required,min=3,max=64"`
	Email               string     `json:"email" gorm:"size:255;uniqueIndex;not null" validate:"required,email"`
	PasswordHash        string     `json:"-" gorm:"column:password_hash;not null"`
	Role                UserRole   `json:"role" gorm:"size:16;default:user"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LockedUntil         *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
