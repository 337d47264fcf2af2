package models

import (
	"time"

	"github.com/google/uuid"
)

// CropProduct links a product to a crop it is applied to. One row per
// (crop, product).
type CropProduct struct {
	CropID    uuid.UUID `gorm:"column:crop_id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
