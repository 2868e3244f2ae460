package controllers

import (
	"net/http"
	"strconv"

	"github.com/alunakitchen/pickup-backend/api/responses"
	"github.com/alunakitchen/pickup-backend/api/validators"
	menusvc "github.com/alunakitchen/pickup-backend/internal/menu"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
)

// MenuList returns the menu with featured items first. An optional
// featured query parameter narrows the listing to featured or regular
// items so the storefront can render the two sections separately.
func MenuList(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := menusvc.FeaturedAll
		if raw := r.URL.Query().Get("featured"); raw != "" {
			featured, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "featured must be a boolean"))
				return
			}
			if featured {
				filter = menusvc.FeaturedOnly
			} else {
				filter = menusvc.RegularOnly
			}
		}

		items, err := svc.ListMenu(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// MenuItem returns a single menu entry by id.
func MenuItem(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.Int64Param(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
