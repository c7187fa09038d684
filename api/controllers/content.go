package controllers

import (
	"net/http"

	"github.com/homeboardhq/homeboard-backend/api/responses"
	"github.com/homeboardhq/homeboard-backend/api/validators"
	"github.com/homeboardhq/homeboard-backend/internal/content"
	"github.com/homeboardhq/homeboard-backend/pkg/logger"
)

func QuoteRandom(quotes *content.Quotes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, quotes.Random())
	}
}

func QuoteAll(quotes *content.Quotes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, quotes.All())
	}
}

func RestaurantMenu(restaurant *content.Restaurant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, restaurant.Menu())
	}
}

// RestaurantOrder prices an order and returns the confirmation with an ETA.
func RestaurantOrder(restaurant *content.Restaurant, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body content.OrderInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		confirmation, err := restaurant.PlaceOrder(body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
