package models

import (
	"time"

	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/google/uuid"
)

// Farmer represents the canonical identity entity.
type Farmer struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName    string           `gorm:"column:first_name;not null"`
	MiddleName   *string          `gorm:"column:middle_name"`
	LastName     string           `gorm:"column:last_name;not null"`
	Phone        string           `gorm:"column:phone;type:text;not null;uniqueIndex"`
	Location     *string          `gorm:"column:location"`
	LandArea     *float64         `gorm:"column:land_area;type:numeric(10,2)"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	Role         enums.FarmerRole `gorm:"column:role;type:text;not null;default:farmer"`
	LastLoginAt  *time.Time       `gorm:"column:last_login_at"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
