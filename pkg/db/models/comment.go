package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a text reply on a post.
type Comment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"column:profile_id;type:uuid;not null" json:"profile_id"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	PostID    uuid.UUID `gorm:"column:post_id;type:uuid;not null" json:"post_id"`
	Text      string    `gorm:"column:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
