package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementQuantityGuardsBalance(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)

	category := mustCreateTestCategory(t, db, "Pantry")
	item := mustCreateTestItem(t, db, category.ID, "Flour", 5)

	applied, err := repo.DecrementQuantity(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.DecrementQuantity(ctx, item.ID, 4)
	require.NoError(t, err)
	assert.False(t, applied)

	reloaded, err := repo.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.CurrentQuantity)
}

func TestIncrementQuantityMissingItem(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)

	err := repo.IncrementQuantity(ctx, uuid.New(), 5)
	require.Error(t, err)
}

func TestListItemsFilters(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)

	pantry := mustCreateTestCategory(t, db, "Pantry")
	cleaning := mustCreateTestCategory(t, db, "Cleaning")

	flour := mustCreateTestItem(t, db, pantry.ID, "Flour", 10)
	soap := mustCreateTestItem(t, db, cleaning.ID, "Soap", 1)
	require.NoError(t, db.Model(soap).Update("minimum_quantity", 3).Error)

	all, err := repo.ListItems(ctx, ItemListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inPantry, err := repo.ListItems(ctx, ItemListFilters{CategoryID: &pantry.ID})
	require.NoError(t, err)
	require.Len(t, inPantry, 1)
	assert.Equal(t, flour.ID, inPantry[0].ID)

	low, err := repo.ListItems(ctx, ItemListFilters{BelowMinimum: true})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, soap.ID, low[0].ID)
	assert.True(t, low[0].BelowMinimum())
}

func TestReassignItems(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)

	from := mustCreateTestCategory(t, db, "Old")
	to := mustCreateTestCategory(t, db, "New")
	item := mustCreateTestItem(t, db, from.ID, "Sponge", 2)

	require.NoError(t, repo.ReassignItems(ctx, from.ID, to.ID))

	reloaded, err := repo.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, to.ID, reloaded.CategoryID)
}
