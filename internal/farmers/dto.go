package farmers

import (
	"time"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateFarmerDTO carries the fields persisted at registration time.
type CreateFarmerDTO struct {
	FirstName    string
	MiddleName   *string
	LastName     string
	Phone        string
	Location     *string
	LandArea     *float64
	PasswordHash string
	Role         enums.FarmerRole
}

// ToModel maps the DTO onto a persistable Farmer.
func (d CreateFarmerDTO) ToModel() *models.Farmer {
	role := d.Role
	if role == "" {
		role = enums.FarmerRoleFarmer
	}
	return &models.Farmer{
		FirstName:    d.FirstName,
		MiddleName:   d.MiddleName,
		LastName:     d.LastName,
		Phone:        d.Phone,
		Location:     d.Location,
		LandArea:     d.LandArea,
		PasswordHash: d.PasswordHash,
		Role:         role,
	}
}

// FarmerDTO is the public representation returned by the API.
type FarmerDTO struct {
	ID          uuid.UUID        `json:"id"`
	FirstName   string           `json:"first_name"`
	MiddleName  *string          `json:"middle_name,omitempty"`
	LastName    string           `json:"last_name"`
	Phone       string           `json:"phone"`
	Location    *string          `json:"location,omitempty"`
	LandArea    *float64         `json:"land_area,omitempty"`
	Role        enums.FarmerRole `json:"role"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// FromModel converts a persisted farmer into its API shape.
func FromModel(m *models.Farmer) FarmerDTO {
	if m == nil {
		return FarmerDTO{}
	}
	return FarmerDTO{
		ID:          m.ID,
		FirstName:   m.FirstName,
		MiddleName:  m.MiddleName,
		LastName:    m.LastName,
		Phone:       m.Phone,
		Location:    m.Location,
		LandArea:    m.LandArea,
		Role:        m.Role,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
	}
}
