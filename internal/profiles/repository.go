package profiles

import (
	"context"
	"errors"

	"github.com/alunakitchen/pickup-backend/internal/repo"
	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes persistence operations for customer profiles.
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

// FindByUserID loads the profile owned by the given user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.DB(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load profile")
	}
	return &profile, nil
}

// Upsert inserts the profile or updates the mutable fields when a row
// for the user already exists.
func (r *Repository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	err := r.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "phone", "notes", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to upsert profile")
	}
	return r.FindByUserID(ctx, profile.UserID)
}

// IsAdmin reads the operator flag off the user's profile. A missing
// profile means a regular customer.
func (r *Repository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var profile models.Profile
	if err := r.DB(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load profile")
	}
	return profile.IsAdmin, nil
}

// DisplayNames resolves user ids to their profile full names. Users
// without a profile are simply absent from the result.
func (r *Repository) DisplayNames(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	result := make(map[uuid.UUID]string, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var rows []models.Profile
	if err := r.DB(ctx).
		Select("user_id", "full_name").
		Where("user_id IN ?", userIDs).
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to resolve display names")
	}
	for _, row := range rows {
		result[row.UserID] = row.FullName
	}
	return result, nil
}
