package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a caption plus attached photos published by a profile.
type Post struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"column:profile_id;type:uuid;not null" json:"profile_id"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Caption   string    `gorm:"column:caption" json:"caption"`
	Photos    []Photo   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
