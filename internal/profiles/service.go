package profiles

import (
	"context"
	"fmt"
	"strings"

	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	pkgerrors "github.com/alunakitchen/pickup-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service exposes profile management operations.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
	EnsureProfile(ctx context.Context, userID uuid.UUID, fullName string) (*models.Profile, error)
}

// UpdateProfileInput holds the validated mutation payload.
type UpdateProfileInput struct {
	FullName string
	Phone    string
	Notes    *string
}

type service struct {
	repo *Repository
}

// NewService constructs a profile service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	return &service{repo: repo}, nil
}

// GetProfile loads the caller's profile, creating an empty one on
// first access.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.EnsureProfile(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	dto := toProfileDTO(profile)
	return &dto, nil
}

// UpdateProfile replaces the caller's profile fields.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	updated, err := s.repo.Upsert(ctx, &models.Profile{
		UserID:   userID,
		FullName: fullName,
		Phone:    strings.TrimSpace(input.Phone),
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, err
	}
	dto := toProfileDTO(updated)
	return &dto, nil
}

// EnsureProfile returns the user's profile, creating a blank row
// lazily when none exists yet.
func (s *service) EnsureProfile(ctx context.Context, userID uuid.UUID, fullName string) (*models.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}
	return s.repo.Upsert(ctx, &models.Profile{
		UserID:   userID,
		FullName: strings.TrimSpace(fullName),
	})
}
