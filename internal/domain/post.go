package domain

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type Post struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	Title      string     `json:"title" gorm:"size:255;not null"`
	Content    string     `json:"content" gorm:"type:text"`
	OwnerID    int64      `json:"owner_id" gorm:"index;not null"`
	Owner      User       `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Visibility Visibility `json:"visibility" gorm:"size:16;default:public;index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (p *Post) IsPublic() bool {
	return p.Visibility == VisibilityPublic
}
