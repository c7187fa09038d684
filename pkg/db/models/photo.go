package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo is one image attached to a post.
type Photo struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"column:post_id;type:uuid;not null" json:"post_id"`
	ImageURL  string    `gorm:"column:image_url;not null" json:"image_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
