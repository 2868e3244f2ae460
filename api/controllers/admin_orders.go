package controllers

import (
	"net/http"

	"github.com/alunakitchen/pickup-backend/api/responses"
	"github.com/alunakitchen/pickup-backend/api/validators"
	orderssvc "github.com/alunakitchen/pickup-backend/internal/orders"
	"github.com/alunakitchen/pickup-backend/pkg/enums"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
)

// AdminOrdersList serves the operator console view. Supports
// ?status=<status|all> and ?q=<text> query filters over the cached set.
func AdminOrdersList(console *orderssvc.Console, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		query := r.URL.Query().Get("q")

		list := console.Filter(status)
		if query != "" {
			matched := make(map[string]struct{})
			for _, order := range console.Search(query) {
				matched[order.ID.String()] = struct{}{}
			}
			filtered := list[:0:0]
			for _, order := range list {
				if _, ok := matched[order.ID.String()]; ok {
					filtered = append(filtered, order)
				}
			}
			list = filtered
		}

		if list == nil {
			list = []orderssvc.AdminOrderDTO{}
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminOrdersRefresh reloads the console cache from the database.
func AdminOrdersRefresh(console *orderssvc.Console, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := console.Load(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, console.Orders())
	}
}

type transitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminOrderTransition advances an order one status step. The console
// applies the change optimistically and rolls back if the write fails.
func AdminOrderTransition(console *orderssvc.Console, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload transitionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		next, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
			return
		}

		if err := console.Transition(r.Context(), orderID, next); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		for _, order := range console.Orders() {
			if order.ID == orderID {
				responses.WriteSuccess(w, order)
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": next.String()})
	}
}
