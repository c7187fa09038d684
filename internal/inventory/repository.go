package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
)

// Repository wires together category, item, and ledger persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateCategory inserts a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates an existing category row.
func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category by ID. Items must already be reassigned
// or deleted.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

// FindCategoryByID loads a category without associations.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// CountItemsInCategory reports how many items reference the category.
func (r *Repository) CountItemsInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// ReassignItems moves every item in fromID to toID.
func (r *Repository) ReassignItems(ctx context.Context, fromID, toID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("category_id = ?", fromID).
		Update("category_id", toID).Error
}

// DeleteItemsInCategory removes every item in the category along with its
// ledger entries.
func (r *Repository) DeleteItemsInCategory(ctx context.Context, categoryID uuid.UUID) error {
	tx := r.db.WithContext(ctx)

	var itemIDs []uuid.UUID
	if err := tx.Model(&models.Item{}).
		Where("category_id = ?", categoryID).
		Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) == 0 {
		return nil
	}

	if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.PurchaseRecord{}).Error; err != nil {
		return err
	}
	if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.UsageRecord{}).Error; err != nil {
		return err
	}
	return tx.Where("category_id = ?", categoryID).Delete(&models.Item{}).Error
}

// CreateItem inserts a new item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem updates an existing item row.
func (r *Repository) UpdateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the item and its ledger entries.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("item_id = ?", id).Delete(&models.PurchaseRecord{}).Error; err != nil {
		return err
	}
	if err := tx.Where("item_id = ?", id).Delete(&models.UsageRecord{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Item{}).Error
}

// FindItemByID loads the item with its category preloaded.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemListFilters narrows the item listing.
type ItemListFilters struct {
	CategoryID   *uuid.UUID
	BelowMinimum bool
}

// ListItems returns items matching the filters ordered by name.
func (r *Repository) ListItems(ctx context.Context, filters ItemListFilters) ([]models.Item, error) {
	qb := r.db.WithContext(ctx).Preload("Category")
	if filters.CategoryID != nil {
		qb = qb.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.BelowMinimum {
		qb = qb.Where("current_quantity < minimum_quantity")
	}
	var rows []models.Item
	err := qb.Order("name ASC").Find(&rows).Error
	return rows, err
}

// IncrementQuantity adds quantity to the item's running balance.
func (r *Repository) IncrementQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", itemID).
		Update("current_quantity", gorm.Expr("current_quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementQuantity subtracts quantity from the item's balance only when
// enough stock is on hand. The guard in the WHERE clause keeps the balance
// from ever dipping below zero under concurrent writers. It reports whether
// the decrement was applied.
func (r *Repository) DecrementQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND current_quantity >= ?", itemID, quantity).
		Update("current_quantity", gorm.Expr("current_quantity - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreatePurchase inserts an immutable purchase ledger entry.
func (r *Repository) CreatePurchase(ctx context.Context, record *models.PurchaseRecord) (*models.PurchaseRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// CreateUsage inserts an immutable usage ledger entry.
func (r *Repository) CreateUsage(ctx context.Context, record *models.UsageRecord) (*models.UsageRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// ListPurchasesByItem returns purchase entries newest first.
func (r *Repository) ListPurchasesByItem(ctx context.Context, itemID uuid.UUID) ([]models.PurchaseRecord, error) {
	var rows []models.PurchaseRecord
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("purchase_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListUsagesByItem returns usage entries newest first.
func (r *Repository) ListUsagesByItem(ctx context.Context, itemID uuid.UUID) ([]models.UsageRecord, error) {
	var rows []models.UsageRecord
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("usage_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}
