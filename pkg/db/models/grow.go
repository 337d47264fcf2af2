package models

import (
	"time"

	"github.com/google/uuid"
)

// Grow links a farmer to a crop they cultivate. One row per (farmer, crop).
type Grow struct {
	FarmerID  uuid.UUID `gorm:"column:farmer_id;type:uuid;primaryKey"`
	CropID    uuid.UUID `gorm:"column:crop_id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
