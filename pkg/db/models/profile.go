package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the customer-facing contact details keyed one-to-one by user.
// Created lazily on first authenticated access; only its owner may mutate it.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	FullName  string    `gorm:"column:full_name;not null;default:''"`
	Phone     string    `gorm:"column:phone;not null;default:''"`
	Notes     *string   `gorm:"column:notes"`
	IsAdmin   bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
