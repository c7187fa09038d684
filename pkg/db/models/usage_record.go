package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord is an immutable ledger entry that decreased an item's stock.
type UsageRecord struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemID       uuid.UUID `gorm:"column:item_id;type:uuid;not null" json:"item_id"`
	Item         *Item     `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	UsageDate    time.Time `gorm:"column:usage_date;not null" json:"usage_date"`
	QuantityUsed int       `gorm:"column:quantity_used;not null" json:"quantity_used"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
