package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseRecord is an immutable ledger entry that increased an item's stock.
type PurchaseRecord struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemID       uuid.UUID       `gorm:"column:item_id;type:uuid;not null" json:"item_id"`
	Item         *Item           `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	PurchaseDate time.Time       `gorm:"column:purchase_date;not null" json:"purchase_date"`
	Quantity     int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitCost     decimal.Decimal `gorm:"column:unit_cost;type:numeric(10,2);not null" json:"unit_cost"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
