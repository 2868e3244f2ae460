package controllers

import (
	"net/http"

	"github.com/alunakitchen/pickup-backend/api/responses"
	"github.com/alunakitchen/pickup-backend/api/validators"
	orderssvc "github.com/alunakitchen/pickup-backend/internal/orders"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
)

// OrdersListMine returns the caller's orders, newest first.
func OrdersListMine(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OrdersGetMine returns one of the caller's orders. Orders belonging
// to other customers read as not found.
func OrdersGetMine(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetMine(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
