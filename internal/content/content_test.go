package content

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
)

func TestQuotesRandomDrawsFromCollection(t *testing.T) {
	t.Parallel()

	quotes := NewQuotes()
	all := quotes.All()

	for i := 0; i < 20; i++ {
		pair := quotes.Random()
		assert.Contains(t, all.Quotes, pair.Quote)
		assert.Contains(t, all.Images, pair.ImageURL)
	}
}

func TestQuotesPinnedPick(t *testing.T) {
	t.Parallel()

	quotes := NewQuotes(WithQuotePicker(func(n int) int { return 0 }))
	pair := quotes.Random()
	all := quotes.All()

	assert.Equal(t, all.Quotes[0], pair.Quote)
	assert.Equal(t, all.Images[0], pair.ImageURL)
}

func TestMenuIncludesSpecialAndItems(t *testing.T) {
	t.Parallel()

	restaurant := NewRestaurant(WithRestaurantPicker(func(n int) int { return 0 }))
	menu := restaurant.Menu()

	assert.Equal(t, "Pho", menu.Special.Name)
	assert.Len(t, menu.MenuItems, 7)
}

func TestPlaceOrderTotalsAndETA(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	restaurant := NewRestaurant(
		WithRestaurantPicker(func(n int) int { return 0 }),
		WithRestaurantClock(func() time.Time { return now }),
	)

	confirmation, err := restaurant.PlaceOrder(OrderInput{
		Name:  "Pat",
		Phone: "617-555-0101",
		Email: "pat@example.com",
		Items: []string{"Scallion Pancakes", "Pho"},
	})
	require.NoError(t, err)

	assert.True(t, confirmation.TotalPrice.Equal(decimal.RequireFromString("22.98")),
		"got total %s", confirmation.TotalPrice)
	assert.Equal(t, now.Add(30*time.Minute), confirmation.ReadyAt)
	require.Len(t, confirmation.Items, 2)
}

func TestPlaceOrderUnknownItem(t *testing.T) {
	t.Parallel()

	restaurant := NewRestaurant()

	_, err := restaurant.PlaceOrder(OrderInput{
		Name:  "Pat",
		Items: []string{"Flaming Moe"},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestPlaceOrderValidation(t *testing.T) {
	t.Parallel()

	restaurant := NewRestaurant()

	_, err := restaurant.PlaceOrder(OrderInput{Name: "  ", Items: []string{"Pho"}})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = restaurant.PlaceOrder(OrderInput{Name: "Pat"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
