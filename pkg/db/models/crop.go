package models

import (
	"time"

	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/google/uuid"
)

// Crop is a planted crop whose availability is derived from recorded sales
// against its estimated yield.
type Crop struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string           `gorm:"column:name;not null"`
	PlantingDate   *time.Time       `gorm:"column:planting_date;type:date"`
	HarvestDate    *time.Time       `gorm:"column:harvest_date;type:date"`
	EstimatedYield float64          `gorm:"column:estimated_yield;type:numeric(12,2);not null;default:0"`
	Status         enums.CropStatus `gorm:"column:status;type:text;not null;default:available"`
	Sales          []Sale           `gorm:"foreignKey:CropID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
