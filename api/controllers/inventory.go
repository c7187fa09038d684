package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeboardhq/homeboard-backend/api/responses"
	"github.com/homeboardhq/homeboard-backend/api/validators"
	inventorysvc "github.com/homeboardhq/homeboard-backend/internal/inventory"
	"github.com/homeboardhq/homeboard-backend/pkg/enums"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
	"github.com/homeboardhq/homeboard-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type deleteCategoryRequest struct {
	Disposition  string  `json:"disposition,omitempty"`
	ReassignToID *string `json:"reassign_to_id,omitempty"`
}

type createItemRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	CategoryID      string `json:"category_id" validate:"required,uuid"`
	MinimumQuantity int    `json:"minimum_quantity" validate:"min=0"`
}

type updateItemRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	CategoryID      *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	MinimumQuantity *int    `json:"minimum_quantity,omitempty" validate:"omitempty,min=0"`
}

type recordPurchaseRequest struct {
	PurchaseDate string `json:"purchase_date" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,min=1"`
	UnitCost     string `json:"unit_cost" validate:"required"`
}

type recordUsageRequest struct {
	UsageDate    string `json:"usage_date" validate:"required"`
	QuantityUsed int    `json:"quantity_used" validate:"required,min=1"`
}

func CategoryCreate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), inventorysvc.CreateCategoryInput{
			Name:        body.Name,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func CategoryList(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func CategoryDetail(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.GetCategory(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

func CategoryUpdate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.UpdateCategory(r.Context(), id, inventorysvc.UpdateCategoryInput{
			Name:        body.Name,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// CategoryDelete removes a category. A non-empty category needs a
// disposition: reassign its items or delete them with their ledgers.
func CategoryDelete(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventorysvc.DeleteCategoryInput{}
		if r.ContentLength > 0 {
			var body deleteCategoryRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if raw := strings.TrimSpace(body.Disposition); raw != "" {
				disposition, err := enums.ParseCategoryDisposition(raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid disposition"))
					return
				}
				input.Disposition = &disposition
			}
			if body.ReassignToID != nil {
				target, err := uuid.Parse(strings.TrimSpace(*body.ReassignToID))
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid reassign_to_id"))
					return
				}
				input.ReassignToID = &target
			}
		}

		if err := svc.DeleteCategory(r.Context(), id, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ItemCreate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryID, err := uuid.Parse(body.CategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id"))
			return
		}

		item, err := svc.CreateItem(r.Context(), inventorysvc.CreateItemInput{
			Name:            body.Name,
			Description:     body.Description,
			CategoryID:      categoryID,
			MinimumQuantity: body.MinimumQuantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// ItemList supports ?category_id= and ?below_minimum=true filters.
func ItemList(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := inventorysvc.ItemListFilters{}

		if raw := strings.TrimSpace(r.URL.Query().Get("category_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id"))
				return
			}
			filters.CategoryID = &id
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("below_minimum")); raw != "" {
			filters.BelowMinimum = strings.EqualFold(raw, "true") || raw == "1"
		}

		items, err := svc.ListItems(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ItemDetail(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func ItemUpdate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventorysvc.UpdateItemInput{
			Name:            body.Name,
			Description:     body.Description,
			MinimumQuantity: body.MinimumQuantity,
		}
		if body.CategoryID != nil {
			categoryID, err := uuid.Parse(*body.CategoryID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id"))
				return
			}
			input.CategoryID = &categoryID
		}

		item, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func ItemDelete(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func PurchaseCreate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body recordPurchaseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purchaseDate, err := time.Parse("2006-01-02", body.PurchaseDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid purchase_date"))
			return
		}
		unitCost, err := decimal.NewFromString(strings.TrimSpace(body.UnitCost))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit_cost"))
			return
		}

		purchase, err := svc.RecordPurchase(r.Context(), inventorysvc.RecordPurchaseInput{
			ItemID:       itemID,
			PurchaseDate: purchaseDate,
			Quantity:     body.Quantity,
			UnitCost:     unitCost,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, purchase)
	}
}

func UsageCreate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body recordUsageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		usageDate, err := time.Parse("2006-01-02", body.UsageDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid usage_date"))
			return
		}

		usage, err := svc.RecordUsage(r.Context(), inventorysvc.RecordUsageInput{
			ItemID:       itemID,
			UsageDate:    usageDate,
			QuantityUsed: body.QuantityUsed,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, usage)
	}
}

// PurchaseList returns the purchase ledger for one item, newest first.
func PurchaseList(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListPurchases(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// UsageList returns the usage ledger for one item, newest first.
func UsageList(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListUsages(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// PurchaseMutation refuses in-place ledger edits; the service returns the
// STATE_CONFLICT explaining the compensating-entry policy.
func PurchaseMutation(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "purchaseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if r.Method == http.MethodDelete {
			err = svc.DeletePurchase(r.Context(), id)
		} else {
			err = svc.UpdatePurchase(r.Context(), id)
		}
		responses.WriteError(r.Context(), logg, w, err)
	}
}

// UsageMutation refuses in-place ledger edits.
func UsageMutation(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "usageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if r.Method == http.MethodDelete {
			err = svc.DeleteUsage(r.Context(), id)
		} else {
			err = svc.UpdateUsage(r.Context(), id)
		}
		responses.WriteError(r.Context(), logg, w, err)
	}
}
