package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale records a quantity of a crop sold by a farmer. Earnings is a cached
// derived value (price * quantity * the quintal conversion factor), never
// settable independently.
type Sale struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DateOfSale   *time.Time `gorm:"column:date_of_sale;type:date"`
	PricePerUnit float64    `gorm:"column:price_per_unit;type:numeric(12,2);not null"`
	QuantitySold float64    `gorm:"column:quantity_sold;type:numeric(12,2);not null"`
	Earnings     float64    `gorm:"column:earnings;type:numeric(14,2);not null"`
	CropID       uuid.UUID  `gorm:"column:crop_id;type:uuid;not null"`
	FarmerID     uuid.UUID  `gorm:"column:farmer_id;type:uuid;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
