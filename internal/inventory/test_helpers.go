package inventory

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
)

func mustCreateTestCategory(t *testing.T, tx *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestItem(t *testing.T, tx *gorm.DB, categoryID uuid.UUID, name string, quantity int) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:              uuid.New(),
		Name:            name,
		CategoryID:      categoryID,
		CurrentQuantity: quantity,
	}
	if err := tx.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}
