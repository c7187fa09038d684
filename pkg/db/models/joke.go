package models

import (
	"time"

	"github.com/google/uuid"
)

// Joke is a user-submitted joke on the board.
type Joke struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Text        string    `gorm:"column:text;not null" json:"text"`
	Contributor string    `gorm:"column:contributor;not null" json:"contributor"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
