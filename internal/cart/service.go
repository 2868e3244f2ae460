package cart

import (
	"context"
	"fmt"

	"github.com/alunakitchen/pickup-backend/pkg/db/models"
)

type menuReader interface {
	FindByID(ctx context.Context, id int64) (*models.MenuItem, error)
}

// Service exposes the per-session cart operations.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (*CartDTO, error)
	AddItem(ctx context.Context, sessionID string, itemID int64) (*CartDTO, error)
	Increment(ctx context.Context, sessionID string, itemID int64) (*CartDTO, error)
	Decrement(ctx context.Context, sessionID string, itemID int64) (*CartDTO, error)
	SetQuantity(ctx context.Context, sessionID string, itemID int64, raw string) (*CartDTO, error)
	RemoveItem(ctx context.Context, sessionID string, itemID int64) (*CartDTO, error)
	Clear(ctx context.Context, sessionID string) (*CartDTO, error)
	SetOverrides(ctx context.Context, sessionID string, overrides Overrides) error
}

type service struct {
	store Store
	menu  menuReader
}

// NewService constructs a cart service instance.
func NewService(store Store, menu menuReader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if menu == nil {
		return nil, fmt.Errorf("menu reader required")
	}
	return &service{store: store, menu: menu}, nil
}

// GetCart loads the session cart.
func (s *service) GetCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toCartDTO(&session.Cart), nil
}

// AddItem looks up the menu item and adds one unit of it. The item
// name and price are captured into the line at add time.
func (s *service) AddItem(ctx context.Context, sessionID string, itemID int64) (*CartDTO, error) {
	item, err := s.menu.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Add(item.ID, item.Name, item.Price)
	})
}

// Increment bumps a line quantity by one.
func (s *service) Increment(ctx context.Context, sessionID string, itemID int64) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Increment(itemID)
	})
}

// Decrement lowers a line quantity, dropping the line at zero.
func (s *service) Decrement(ctx context.Context, sessionID string, itemID int64) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Decrement(itemID)
	})
}

// SetQuantity applies a free-form quantity value to a line.
func (s *service) SetQuantity(ctx context.Context, sessionID string, itemID int64, raw string) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.SetQuantity(itemID, raw)
	})
}

// RemoveItem deletes a line.
func (s *service) RemoveItem(ctx context.Context, sessionID string, itemID int64) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Remove(itemID)
	})
}

// Clear empties the cart while keeping checkout overrides intact.
func (s *service) Clear(ctx context.Context, sessionID string) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Clear()
	})
}

// SetOverrides replaces the session checkout overrides.
func (s *service) SetOverrides(ctx context.Context, sessionID string, overrides Overrides) error {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Overrides = overrides
	return s.store.Save(ctx, sessionID, session)
}

func (s *service) mutate(ctx context.Context, sessionID string, fn func(*Cart)) (*CartDTO, error) {
	session, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(&session.Cart)
	if err := s.store.Save(ctx, sessionID, session); err != nil {
		return nil, err
	}
	return toCartDTO(&session.Cart), nil
}
