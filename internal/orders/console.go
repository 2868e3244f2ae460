package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alunakitchen/pickup-backend/pkg/enums"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
	"github.com/google/uuid"
)

// Console is the operator's projection over all orders. It caches the
// last loaded set, narrows it with pure filter/search, and applies
// status transitions optimistically with a rollback path when the
// write fails.
type Console struct {
	mu      sync.RWMutex
	svc     Service
	logg    *logger.Logger
	orders  []AdminOrderDTO
	pending map[uuid.UUID]bool
}

// NewConsole constructs an operator console over the order service.
func NewConsole(svc Service, logg *logger.Logger) (*Console, error) {
	if svc == nil {
		return nil, fmt.Errorf("order service required")
	}
	return &Console{
		svc:     svc,
		logg:    logg,
		pending: make(map[uuid.UUID]bool),
	}, nil
}

// Load replaces the cached projection with the authoritative list.
func (c *Console) Load(ctx context.Context) error {
	rows, err := c.svc.ListAll(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.orders = rows
	c.mu.Unlock()
	return nil
}

// Orders returns a copy of the cached projection.
func (c *Console) Orders() []AdminOrderDTO {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]AdminOrderDTO(nil), c.orders...)
}

// Filter narrows the cached set by status. The literal "all" (or an
// empty string) returns everything. The cached set is never mutated.
func (c *Console) Filter(status string) []AdminOrderDTO {
	all := c.Orders()
	if status == "" || strings.EqualFold(status, "all") {
		return all
	}
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil
	}
	filtered := make([]AdminOrderDTO, 0, len(all))
	for _, order := range all {
		if order.Status == parsed {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// Search narrows the cached set by a case-insensitive match against
// the order id, phone, user id, customer name, and a flattened string
// of the item lines. The cached set is never mutated.
func (c *Console) Search(text string) []AdminOrderDTO {
	all := c.Orders()
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return all
	}
	matched := make([]AdminOrderDTO, 0, len(all))
	for _, order := range all {
		if strings.Contains(searchHaystack(order), needle) {
			matched = append(matched, order)
		}
	}
	return matched
}

func searchHaystack(order AdminOrderDTO) string {
	parts := []string{
		order.ID.String(),
		order.Phone,
		order.UserID.String(),
		order.CustomerName,
	}
	for _, item := range order.Items {
		parts = append(parts, fmt.Sprintf("%s %s x%d", item.Name, item.UnitPrice.String(), item.Quantity))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// transitionCommand captures one optimistic status change: the
// pre-transition snapshot, the local apply, and the exact revert.
type transitionCommand struct {
	console  *Console
	previous AdminOrderDTO
	next     enums.OrderStatus
}

// Apply sets the new status on the cached projection only.
func (cmd *transitionCommand) Apply() {
	cmd.console.replaceCached(cmd.previous.ID, func(order *AdminOrderDTO) {
		order.Status = cmd.next
	})
}

// Revert restores the full pre-transition snapshot, not just the
// status field.
func (cmd *transitionCommand) Revert() {
	cmd.console.replaceCached(cmd.previous.ID, func(order *AdminOrderDTO) {
		*order = cmd.previous
	})
}

// Transition applies the status change optimistically, persists it,
// and on failure rolls the cached row back to its exact previous
// snapshot. On success the authoritative list is reloaded. A second
// transition on the same order while one is in flight is rejected.
func (c *Console) Transition(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) error {
	cmd, err := c.begin(orderID, next)
	if err != nil {
		return err
	}
	defer c.finish(orderID)

	cmd.Apply()
	if _, err := c.svc.Transition(ctx, orderID, next); err != nil {
		cmd.Revert()
		return err
	}
	if err := c.Load(ctx); err != nil {
		// The write committed; the stale projection heals on the
		// next reload.
		if c.logg != nil {
			c.logg.Error(ctx, "failed to reload orders after transition", err)
		}
	}
	return nil
}

func (c *Console) begin(orderID uuid.UUID, next enums.OrderStatus) (*transitionCommand, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[orderID] {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "transition already in flight for order")
	}
	for _, order := range c.orders {
		if order.ID == orderID {
			c.pending[orderID] = true
			return &transitionCommand{console: c, previous: order, next: next}, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not loaded in console")
}

func (c *Console) finish(orderID uuid.UUID) {
	c.mu.Lock()
	delete(c.pending, orderID)
	c.mu.Unlock()
}

func (c *Console) replaceCached(orderID uuid.UUID, fn func(*AdminOrderDTO)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.orders {
		if c.orders[i].ID == orderID {
			fn(&c.orders[i])
			return
		}
	}
}

// Watch reloads the projection whenever the change feed fires,
// treating every notification as a bare "something changed" signal.
// It returns when the context is cancelled or the feed closes.
func (c *Console) Watch(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := c.Load(ctx); err != nil && c.logg != nil {
				c.logg.Error(ctx, "failed to reload orders on change signal", err)
			}
		}
	}
}
