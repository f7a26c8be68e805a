package domain

import "time"

// AuditEvent is an append-only record of security-relevant actions
// (logins, registrations, deletions). Writes are best-effort: a failed
// audit insert must never fail the request that produced it.
type AuditEvent struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    *int64    `json:"user_id" gorm:"index"`
	Action    string    `json:"action" gorm:"size:64;index;not null"`
	Detail    string    `json:"detail" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (AuditEvent) TableName() string { return "audit_events" }
