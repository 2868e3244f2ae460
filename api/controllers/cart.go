package controllers

import (
	"context"
	"net/http"

	"github.com/alunakitchen/pickup-backend/api/responses"
	"github.com/alunakitchen/pickup-backend/api/validators"
	cartsvc "github.com/alunakitchen/pickup-backend/internal/cart"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
)

// CartGet returns the caller's cart for the current session.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.GetCart(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartAddItem adds one unit of a menu item, merging with an existing line.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartItemAction(svc.AddItem, logg)
}

// CartIncrement bumps a line's quantity by one.
func CartIncrement(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartItemAction(svc.Increment, logg)
}

// CartDecrement lowers a line's quantity by one, removing it at zero.
func CartDecrement(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartItemAction(svc.Decrement, logg)
}

// CartRemoveItem drops a line regardless of quantity.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartItemAction(svc.RemoveItem, logg)
}

type setQuantityRequest struct {
	Quantity string `json:"quantity"`
}

// CartSetQuantity sets a line's quantity from free-form input. Anything
// that does not parse to a positive number removes the line.
func CartSetQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := validators.Int64Param(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.SetQuantity(r.Context(), sessionID, itemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartClear empties the cart but keeps the checkout overrides.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

type overridesRequest struct {
	Phone         string `json:"phone" validate:"max=32"`
	Notes         string `json:"notes" validate:"max=500"`
	PaymentMethod string `json:"payment_method" validate:"max=32"`
}

// CartSetOverrides stores the transient checkout-form values for the session.
func CartSetOverrides(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload overridesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		overrides := cartsvc.Overrides{
			Phone:         payload.Phone,
			Notes:         payload.Notes,
			PaymentMethod: payload.PaymentMethod,
		}
		if err := svc.SetOverrides(r.Context(), sessionID, overrides); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overrides)
	}
}

type cartItemFunc func(ctx context.Context, sessionID string, itemID int64) (*cartsvc.CartDTO, error)

func cartItemAction(action cartItemFunc, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := validators.Int64Param(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := action(r.Context(), sessionID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}
