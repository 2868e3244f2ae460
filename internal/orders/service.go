package orders

import (
	"context"
	"fmt"

	"github.com/alunakitchen/pickup-backend/pkg/enums"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
	"github.com/google/uuid"
)

type changePublisher interface {
	OrdersChanged(ctx context.Context)
}

type nameResolver interface {
	DisplayNames(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

// Service exposes order reads and the status workflow.
type Service interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	GetMine(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	ListAll(ctx context.Context) ([]AdminOrderDTO, error)
	Transition(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*OrderDTO, error)
}

type service struct {
	repo      *Repository
	profiles  nameResolver
	publisher changePublisher
	logg      *logger.Logger
}

// NewService constructs an order service instance.
func NewService(repo *Repository, profiles nameResolver, publisher changePublisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile resolver required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("change publisher required")
	}
	return &service{repo: repo, profiles: profiles, publisher: publisher, logg: logg}, nil
}

// ListMine returns the caller's orders, newest first.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toOrderDTO(row))
	}
	return dtos, nil
}

// GetMine returns one order, refusing records owned by other users.
func (s *service) GetMine(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	dto := toOrderDTO(*order)
	return &dto, nil
}

// ListAll returns every order for the operator console, newest first,
// with a best-effort display-name lookup. A failed lookup degrades to
// truncated user ids instead of failing the listing.
func (s *service) ListAll(ctx context.Context) ([]AdminOrderDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.profiles.DisplayNames(ctx, DistinctUserIDs(rows))
	if err != nil {
		if s.logg != nil {
			ctx := s.logg.WithField(ctx, "error", err.Error())
			s.logg.Warn(ctx, "display name lookup failed, degrading to user ids")
		}
		names = nil
	}
	dtos := make([]AdminOrderDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toAdminOrderDTO(row, names))
	}
	return dtos, nil
}

// Transition moves an order one step through the status workflow.
// The write is conditional on the status the caller observed, so a
// concurrent transition surfaces as a state conflict instead of a
// silent overwrite.
func (s *service) Transition(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*OrderDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]string{"status": next.String()})
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "illegal status transition").
			WithDetails(map[string]string{
				"from": order.Status.String(),
				"to":   next.String(),
			})
	}
	if err := s.repo.UpdateStatus(ctx, orderID, order.Status, next); err != nil {
		return nil, err
	}
	order.Status = next
	s.publisher.OrdersChanged(ctx)
	dto := toOrderDTO(*order)
	return &dto, nil
}
