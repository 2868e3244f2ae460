package auth

import (
	"github.com/alunakitchen/pickup-backend/pkg/db/models"
	"github.com/google/uuid"
)

// SignupRequest contains the payload for creating an account.
type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FullName        string `json:"full_name" validate:"required"`
	Phone           string `json:"phone,omitempty"`
}

// LoginRequest contains the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserSummary is the public projection of an account.
type UserSummary struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
}

// SessionResponse carries a freshly minted access token.
type SessionResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

func userSummary(user *models.User, isAdmin bool) UserSummary {
	return UserSummary{
		ID:      user.ID,
		Email:   user.Email,
		IsAdmin: isAdmin,
	}
}
