package checkout

import (
	"strings"

	"github.com/alunakitchen/pickup-backend/internal/cart"
	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	"github.com/alunakitchen/pickup-backend/pkg/enums"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/alunakitchen/pickup-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Resolution holds the effective submission fields after merging the
// cart, the saved profile, and the checkout overrides.
type Resolution struct {
	Lines         []cart.Line
	Total         decimal.Decimal
	Phone         string
	Notes         string
	PaymentMethod enums.PaymentMethod
	PickupAddress string
}

// effectiveField returns the override when its trimmed value is
// non-empty, otherwise the profile fallback.
func effectiveField(override, fallback string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(fallback)
}

// resolve merges the session state and the profile into the effective
// submission fields. It does not validate.
func resolve(session *cart.Session, profile *models.Profile, pickupAddress string) Resolution {
	profilePhone := ""
	profileNotes := ""
	if profile != nil {
		profilePhone = profile.Phone
		if profile.Notes != nil {
			profileNotes = *profile.Notes
		}
	}
	method := enums.PaymentMethodPickup
	if parsed, err := enums.ParsePaymentMethod(session.Overrides.PaymentMethod); err == nil {
		method = parsed
	}
	return Resolution{
		Lines:         session.Cart.Snapshot(),
		Total:         session.Cart.Total(),
		Phone:         effectiveField(session.Overrides.Phone, profilePhone),
		Notes:         effectiveField(session.Overrides.Notes, profileNotes),
		PaymentMethod: method,
		PickupAddress: pickupAddress,
	}
}

// validate enforces the submission preconditions.
func (r Resolution) validate() error {
	if len(r.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty").
			WithDetails(map[string]string{"reason": "empty_cart"})
	}
	if r.Phone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact phone is required").
			WithDetails(map[string]string{"reason": "missing_contact"})
	}
	return nil
}

// submission builds the order row from the resolved fields. The item
// lines are copied into an immutable snapshot and the total is
// computed here, never recomputed later.
func (r Resolution) submission(userID uuid.UUID) models.Order {
	items := make(types.OrderItemSnapshots, 0, len(r.Lines))
	for _, line := range r.Lines {
		items = append(items, types.OrderItemSnapshot{
			ItemID:    line.ItemID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	order := models.Order{
		UserID:        userID,
		Items:         items,
		Total:         r.Total,
		Phone:         r.Phone,
		PickupAddress: r.PickupAddress,
		PaymentMethod: r.PaymentMethod,
		Status:        enums.OrderStatusPending,
	}
	if r.Notes != "" {
		notes := r.Notes
		order.Notes = &notes
	}
	return order
}
