package models

import (
	"time"

	"github.com/google/uuid"
)

// Picture is a user-submitted picture or gif on the board.
type Picture struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ImageURL    string    `gorm:"column:image_url;not null" json:"image_url"`
	Contributor string    `gorm:"column:contributor;not null" json:"contributor"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
