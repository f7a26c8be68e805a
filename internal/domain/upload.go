package domain

import "time"

// Upload represents a file stored on the local filesystem. The stored
// path is always server-generated; client-supplied names are recorded
// in OriginalName only and never used as a path segment.
type Upload struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	OwnerID      int64     `json:"owner_id" gorm:"index;not null"`
	Owner        User      `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	OriginalName string    `json:"original_name" gorm:"size:255"`
	StoredPath   string    `json:"-" gorm:"size:512;not null"` // relative to the upload root
	MimeType     string    `json:"mime_type" gorm:"size:128"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Upload) TableName() string { return "uploads" }
