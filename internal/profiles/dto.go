package profiles

import (
	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ProfileDTO is the public projection of a customer profile.
type ProfileDTO struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone"`
	Notes    *string   `json:"notes,omitempty"`
	IsAdmin  bool      `json:"is_admin"`
}

func toProfileDTO(profile *models.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:   profile.UserID,
		FullName: profile.FullName,
		Phone:    profile.Phone,
		Notes:    profile.Notes,
		IsAdmin:  profile.IsAdmin,
	}
}
