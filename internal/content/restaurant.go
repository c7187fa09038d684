package content

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
)

// MenuItem is a named dish with a fixed price.
type MenuItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Menu is the order page payload: today's special plus the standing menu.
type Menu struct {
	Special   MenuItem   `json:"special"`
	MenuItems []MenuItem `json:"menu_items"`
}

// OrderInput is a customer order off the menu.
type OrderInput struct {
	Name                string   `json:"name" validate:"required"`
	Phone               string   `json:"phone" validate:"required"`
	Email               string   `json:"email" validate:"required,email"`
	SpecialInstructions string   `json:"special_instructions"`
	Items               []string `json:"items" validate:"required,min=1"`
}

// OrderConfirmation is the receipt: the priced items, the total, and when
// the order will be ready.
type OrderConfirmation struct {
	Name                string          `json:"name"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	Items               []MenuItem      `json:"items"`
	TotalPrice          decimal.Decimal `json:"total_price"`
	ReadyAt             time.Time       `json:"ready_at"`
}

func menuItem(name string, price string) MenuItem {
	return MenuItem{Name: name, Price: decimal.RequireFromString(price)}
}

var defaultSpecials = []MenuItem{
	menuItem("Pho", "13.99"),
	menuItem("Bun Mam", "14.99"),
	menuItem("Canh Bun", "12.99"),
	menuItem("Dan Dan Noodles", "11.99"),
	menuItem("Hu Tieu", "12.99"),
}

var defaultMenuItems = []MenuItem{
	menuItem("23 Layer Chocolate Cake", "19.99"),
	menuItem("Honey Glazed Ribs", "15.99"),
	menuItem("Scallion Pancakes", "8.99"),
	menuItem("Lychee Mocktail", "5.99"),
	menuItem("Small Matcha Latte", "4.99"),
	menuItem("Medium Matcha Latte", "5.99"),
	menuItem("Large Matcha Latte", "6.99"),
}

const (
	etaMinMinutes = 30
	etaMaxMinutes = 60
)

// Restaurant serves the static ordering toy. Specials rotate randomly per
// request; orders are priced and confirmed but never persisted.
type Restaurant struct {
	specials []MenuItem
	menu     []MenuItem
	pick     func(n int) int
	now      func() time.Time
}

type RestaurantOption func(*Restaurant)

func WithRestaurantPicker(pick func(n int) int) RestaurantOption {
	return func(r *Restaurant) {
		r.pick = pick
	}
}

func WithRestaurantClock(now func() time.Time) RestaurantOption {
	return func(r *Restaurant) {
		r.now = now
	}
}

func NewRestaurant(opts ...RestaurantOption) *Restaurant {
	r := &Restaurant{
		specials: defaultSpecials,
		menu:     defaultMenuItems,
		pick:     rand.IntN,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Menu returns today's special and the standing menu.
func (r *Restaurant) Menu() Menu {
	return Menu{
		Special:   r.specials[r.pick(len(r.specials))],
		MenuItems: append([]MenuItem(nil), r.menu...),
	}
}

// PlaceOrder prices the named items and returns a confirmation with a
// 30 to 60 minute ready time. Unknown item names are refused.
func (r *Restaurant) PlaceOrder(input OrderInput) (*OrderConfirmation, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order at least one item")
	}

	priced := make([]MenuItem, 0, len(input.Items))
	total := decimal.Zero
	for _, requested := range input.Items {
		item, ok := r.lookupItem(requested)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown menu item").
				WithDetails(map[string]string{"item": requested})
		}
		priced = append(priced, item)
		total = total.Add(item.Price)
	}

	etaMinutes := etaMinMinutes + r.pick(etaMaxMinutes-etaMinMinutes+1)
	readyAt := r.now().Add(time.Duration(etaMinutes) * time.Minute)

	return &OrderConfirmation{
		Name:                name,
		Phone:               strings.TrimSpace(input.Phone),
		Email:               strings.TrimSpace(input.Email),
		SpecialInstructions: strings.TrimSpace(input.SpecialInstructions),
		Items:               priced,
		TotalPrice:          total,
		ReadyAt:             readyAt,
	}, nil
}

func (r *Restaurant) lookupItem(name string) (MenuItem, bool) {
	for _, item := range append(r.menu, r.specials...) {
		if strings.EqualFold(item.Name, strings.TrimSpace(name)) {
			return item, true
		}
	}
	return MenuItem{}, false
}
