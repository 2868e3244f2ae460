package auth

import (
	"context"
	"errors"
	"time"

	"github.com/alunakitchen/pickup-backend/internal/repo"
	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository exposes persistence operations for user accounts.
type UserRepository struct {
	repo.Base
}

// NewUserRepository builds a repository tied to the provided GORM DB.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{Base: r.WithConn(tx)}
}

// Create inserts the user row.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail loads a user by their lowercased email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load user")
	}
	return &user, nil
}

// UpdateLastLogin stamps the most recent successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
