package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is one directed edge in the follow graph. The (follower, followee)
// pair is unique and self-follows are rejected before insert.
type Follow struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FollowerID uuid.UUID `gorm:"column:follower_id;type:uuid;not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FolloweeID uuid.UUID `gorm:"column:followee_id;type:uuid;not null;uniqueIndex:idx_follows_pair" json:"followee_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
