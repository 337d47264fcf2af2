package models

import (
	"time"

	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/google/uuid"
)

// Product is a fertilizer or pesticide applied to one or more crops.
type Product struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string            `gorm:"column:name;not null"`
	Type         enums.ProductType `gorm:"column:type;type:text;not null"`
	QuantityUsed float64           `gorm:"column:quantity_used;type:numeric(12,2);not null;default:0"`
	Cost         float64           `gorm:"column:cost;type:numeric(12,2);not null;default:0"`
	CropLinks    []CropProduct     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
