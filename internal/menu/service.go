package menu

import (
	"context"
	"fmt"
)

// Service exposes the customer-facing menu read operations.
type Service interface {
	ListMenu(ctx context.Context, filter FeaturedFilter) ([]ItemDTO, error)
	GetItem(ctx context.Context, id int64) (*ItemDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a menu service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	return &service{repo: repo}, nil
}

// ListMenu returns the menu items matching the filter, featured first.
func (s *service) ListMenu(ctx context.Context, filter FeaturedFilter) ([]ItemDTO, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toItemDTO(item))
	}
	return dtos, nil
}

// GetItem returns one menu item by id.
func (s *service) GetItem(ctx context.Context, id int64) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toItemDTO(*item)
	return &dto, nil
}
