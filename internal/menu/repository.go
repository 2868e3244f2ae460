package menu

import (
	"context"
	"errors"

	"github.com/alunakitchen/pickup-backend/internal/repo"
	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"gorm.io/gorm"
)

// FeaturedFilter narrows a menu listing to featured or regular items.
type FeaturedFilter int

const (
	// FeaturedAll returns the whole menu.
	FeaturedAll FeaturedFilter = iota
	// FeaturedOnly returns featured items only.
	FeaturedOnly
	// RegularOnly returns non-featured items only.
	RegularOnly
)

// Repository exposes persistence operations for menu items.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.WithConn(tx)}
}

// List returns the menu matching the filter, featured items first, then by name.
func (r *Repository) List(ctx context.Context, filter FeaturedFilter) ([]models.MenuItem, error) {
	query := r.DB(ctx).Order("is_featured DESC, name ASC")
	switch filter {
	case FeaturedOnly:
		query = query.Where("is_featured = ?", true)
	case RegularOnly:
		query = query.Where("is_featured = ?", false)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list menu items")
	}
	return items, nil
}

// FindByID loads a single menu item.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load menu item")
	}
	return &item, nil
}

// FindByIDs loads the given menu items keyed by id. Missing ids are
// simply absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error) {
	result := make(map[int64]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var items []models.MenuItem
	if err := r.DB(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load menu items")
	}
	for _, item := range items {
		result[item.ID] = item
	}
	return result, nil
}
