package models

import (
	"time"

	"github.com/google/uuid"
)

// Like marks a profile's approval of a post. One like per (profile, post).
type Like struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"column:profile_id;type:uuid;not null;uniqueIndex:idx_likes_pair" json:"profile_id"`
	PostID    uuid.UUID `gorm:"column:post_id;type:uuid;not null;uniqueIndex:idx_likes_pair" json:"post_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
