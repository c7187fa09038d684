package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db"
	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	"github.com/homeboardhq/homeboard-backend/pkg/enums"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
	"github.com/homeboardhq/homeboard-backend/pkg/metrics"
)

// Service exposes category, item, and stock ledger operations.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID, input DeleteCategoryInput) error
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateItem(ctx context.Context, input CreateItemInput) (*models.Item, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*models.Item, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*ItemDetail, error)
	ListItems(ctx context.Context, filters ItemListFilters) ([]models.Item, error)

	RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*models.PurchaseRecord, error)
	RecordUsage(ctx context.Context, input RecordUsageInput) (*models.UsageRecord, error)
	ListPurchases(ctx context.Context, itemID uuid.UUID) ([]models.PurchaseRecord, error)
	ListUsages(ctx context.Context, itemID uuid.UUID) ([]models.UsageRecord, error)
	UpdatePurchase(ctx context.Context, purchaseID uuid.UUID) error
	DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error
	UpdateUsage(ctx context.Context, usageID uuid.UUID) error
	DeleteUsage(ctx context.Context, usageID uuid.UUID) error
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// DeleteCategoryInput carries the caller's choice for items left behind. A
// missing disposition refuses deletion of a non-empty category.
type DeleteCategoryInput struct {
	Disposition  *enums.CategoryDisposition
	ReassignToID *uuid.UUID
}

// CreateItemInput holds the validated payload to create an item.
type CreateItemInput struct {
	Name            string
	Description     string
	CategoryID      uuid.UUID
	MinimumQuantity int
}

// UpdateItemInput holds optional mutation values for an item. The running
// quantity is deliberately absent: stock only moves through the ledger.
type UpdateItemInput struct {
	Name            *string
	Description     *string
	CategoryID      *uuid.UUID
	MinimumQuantity *int
}

// RecordPurchaseInput captures one stock-increasing ledger entry.
type RecordPurchaseInput struct {
	ItemID       uuid.UUID
	PurchaseDate time.Time
	Quantity     int
	UnitCost     decimal.Decimal
}

// RecordUsageInput captures one stock-decreasing ledger entry.
type RecordUsageInput struct {
	ItemID       uuid.UUID
	UsageDate    time.Time
	QuantityUsed int
}

// ItemDetail is an item plus its full ledger history.
type ItemDetail struct {
	Item      models.Item             `json:"item"`
	Purchases []models.PurchaseRecord `json:"purchases"`
	Usages    []models.UsageRecord    `json:"usages"`
}

// InsufficientStockDetails names the requested and available quantities on a
// refused usage.
type InsufficientStockDetails struct {
	Requested int `json:"requested"`
	Available int `json:"available"`
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	ledger   *metrics.LedgerMetrics
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client, ledger *metrics.LedgerMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, ledger: ledger}, nil
}

// CreateCategory creates a category after trimming its name.
func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	return created, nil
}

// UpdateCategory applies the provided fields to an existing category.
func (s *service) UpdateCategory(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}

	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	return updated, nil
}

// DeleteCategory removes a category. When items still reference it the caller
// must pick a disposition: reassign them to another category or delete them
// together with their ledger entries. Without a disposition the delete is
// refused.
func (s *service) DeleteCategory(ctx context.Context, categoryID uuid.UUID, input DeleteCategoryInput) error {
	if _, err := s.loadCategory(ctx, categoryID); err != nil {
		return err
	}

	count, err := s.repo.CountItemsInCategory(ctx, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count items")
	}

	if count == 0 {
		if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
		}
		return nil
	}

	if input.Disposition == nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "category still has items; choose a disposition").
			WithDetails(map[string]any{"item_count": count})
	}

	switch *input.Disposition {
	case enums.CategoryDispositionReassign:
		if input.ReassignToID == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "reassign_to_id is required for reassign")
		}
		if *input.ReassignToID == categoryID {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot reassign items to the category being deleted")
		}
		if _, err := s.loadCategory(ctx, *input.ReassignToID); err != nil {
			return err
		}
		return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
			txRepo := s.repo.WithTx(tx)
			if err := txRepo.ReassignItems(ctx, categoryID, *input.ReassignToID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reassign items")
			}
			if err := txRepo.DeleteCategory(ctx, categoryID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
			}
			return nil
		})

	case enums.CategoryDispositionDeleteItems:
		return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
			txRepo := s.repo.WithTx(tx)
			if err := txRepo.DeleteItemsInCategory(ctx, categoryID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete items")
			}
			if err := txRepo.DeleteCategory(ctx, categoryID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
			}
			return nil
		})

	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid disposition %q", *input.Disposition))
	}
}

// GetCategory loads one category.
func (s *service) GetCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	return s.loadCategory(ctx, categoryID)
}

// ListCategories lists all categories.
func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return rows, nil
}

// CreateItem creates an item in an existing category with a zero balance.
func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*models.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.MinimumQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum_quantity must be non-negative")
	}
	if _, err := s.loadCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:            name,
		Description:     strings.TrimSpace(input.Description),
		CategoryID:      input.CategoryID,
		CurrentQuantity: 0,
		MinimumQuantity: input.MinimumQuantity,
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
	}
	return created, nil
}

// UpdateItem applies the provided fields to an existing item. The running
// quantity cannot be edited here.
func (s *service) UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*models.Item, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.CategoryID != nil {
		if _, err := s.loadCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = *input.CategoryID
	}
	if input.MinimumQuantity != nil {
		if *input.MinimumQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum_quantity must be non-negative")
		}
		item.MinimumQuantity = *input.MinimumQuantity
	}

	item.Category = nil
	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
	}
	return updated, nil
}

// DeleteItem removes the item and its ledger history in one transaction.
func (s *service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return err
	}
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteItem(ctx, itemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete item")
		}
		return nil
	})
}

// GetItem loads the item together with both sides of its ledger.
func (s *service) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemDetail, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	purchases, err := s.repo.ListPurchasesByItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list purchases")
	}
	usages, err := s.repo.ListUsagesByItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list usages")
	}
	return &ItemDetail{Item: *item, Purchases: purchases, Usages: usages}, nil
}

// ListPurchases returns the purchase side of an item's ledger, newest first.
func (s *service) ListPurchases(ctx context.Context, itemID uuid.UUID) ([]models.PurchaseRecord, error) {
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListPurchasesByItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list purchases")
	}
	return rows, nil
}

// ListUsages returns the usage side of an item's ledger, newest first.
func (s *service) ListUsages(ctx context.Context, itemID uuid.UUID) ([]models.UsageRecord, error) {
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListUsagesByItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list usages")
	}
	return rows, nil
}

// ListItems lists items matching the filters.
func (s *service) ListItems(ctx context.Context, filters ItemListFilters) ([]models.Item, error) {
	rows, err := s.repo.ListItems(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	return rows, nil
}

// RecordPurchase appends a purchase entry and raises the item's balance by
// the purchased quantity, atomically.
func (s *service) RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*models.PurchaseRecord, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.UnitCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit_cost must be non-negative")
	}
	if input.PurchaseDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase_date is required")
	}
	if _, err := s.loadItem(ctx, input.ItemID); err != nil {
		return nil, err
	}

	record := &models.PurchaseRecord{
		ItemID:       input.ItemID,
		PurchaseDate: input.PurchaseDate,
		Quantity:     input.Quantity,
		UnitCost:     input.UnitCost,
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.CreatePurchase(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert purchase")
		}
		if err := txRepo.IncrementQuantity(ctx, input.ItemID, input.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: increment quantity")
		}
		return nil
	}); err != nil {
		s.ledger.IncOperation("purchase", "error")
		return nil, err
	}

	s.ledger.IncOperation("purchase", "ok")
	return record, nil
}

// RecordUsage appends a usage entry and lowers the item's balance, atomically
// and only when enough stock is on hand. A short usage refuses with the
// requested and available quantities and leaves both the balance and the
// ledger untouched.
func (s *service) RecordUsage(ctx context.Context, input RecordUsageInput) (*models.UsageRecord, error) {
	if input.QuantityUsed <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_used must be positive")
	}
	if input.UsageDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "usage_date is required")
	}
	if _, err := s.loadItem(ctx, input.ItemID); err != nil {
		return nil, err
	}

	record := &models.UsageRecord{
		ItemID:       input.ItemID,
		UsageDate:    input.UsageDate,
		QuantityUsed: input.QuantityUsed,
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		applied, err := txRepo.DecrementQuantity(ctx, input.ItemID, input.QuantityUsed)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement quantity")
		}
		if !applied {
			current, err := txRepo.FindItemByID(ctx, input.ItemID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
			}
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock to record usage").
				WithDetails(InsufficientStockDetails{
					Requested: input.QuantityUsed,
					Available: current.CurrentQuantity,
				})
		}

		if _, err := txRepo.CreateUsage(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert usage")
		}
		return nil
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeInsufficientStock {
			s.ledger.IncOperation("usage", "insufficient_stock")
		} else {
			s.ledger.IncOperation("usage", "error")
		}
		return nil, err
	}

	s.ledger.IncOperation("usage", "ok")
	return record, nil
}

// UpdatePurchase always refuses: ledger entries are immutable. Corrections
// are made with compensating entries.
func (s *service) UpdatePurchase(ctx context.Context, purchaseID uuid.UUID) error {
	return s.refuseLedgerMutation()
}

// DeletePurchase always refuses: ledger entries are immutable.
func (s *service) DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error {
	return s.refuseLedgerMutation()
}

// UpdateUsage always refuses: ledger entries are immutable.
func (s *service) UpdateUsage(ctx context.Context, usageID uuid.UUID) error {
	return s.refuseLedgerMutation()
}

// DeleteUsage always refuses: ledger entries are immutable.
func (s *service) DeleteUsage(ctx context.Context, usageID uuid.UUID) error {
	return s.refuseLedgerMutation()
}

func (s *service) refuseLedgerMutation() error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "ledger entries are immutable; record a compensating entry instead")
}

func (s *service) loadCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func (s *service) loadItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}
