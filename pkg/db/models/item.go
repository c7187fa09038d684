package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a tracked household good. CurrentQuantity is the running stock
// balance: the sum of all purchase quantities minus all usage quantities
// recorded against the item. It is only ever adjusted through the ledger and
// never goes negative.
type Item struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string    `gorm:"column:name;not null" json:"name"`
	Description     string    `gorm:"column:description" json:"description"`
	CategoryID      uuid.UUID `gorm:"column:category_id;type:uuid;not null" json:"category_id"`
	Category        *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CurrentQuantity int       `gorm:"column:current_quantity;not null;default:0" json:"current_quantity"`
	MinimumQuantity int       `gorm:"column:minimum_quantity;not null;default:0" json:"minimum_quantity"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// BelowMinimum reports whether the item should be reordered.
func (i Item) BelowMinimum() bool {
	return i.CurrentQuantity < i.MinimumQuantity
}
