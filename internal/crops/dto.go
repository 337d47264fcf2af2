package crops

import (
	"time"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateCropInput holds the validated payload to plant a crop.
type CreateCropInput struct {
	Name           string
	PlantingDate   *time.Time
	HarvestDate    *time.Time
	EstimatedYield float64
}

// UpdateCropInput holds optional mutation values for a crop. Status set here
// is taken as-is; the next sale mutation re-derives it from recorded totals.
type UpdateCropInput struct {
	Name           *string
	PlantingDate   *time.Time
	HarvestDate    *time.Time
	EstimatedYield *float64
	Status         *enums.CropStatus
}

// CropDTO is the public representation of a crop.
type CropDTO struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	PlantingDate   *time.Time       `json:"planting_date,omitempty"`
	HarvestDate    *time.Time       `json:"harvest_date,omitempty"`
	EstimatedYield float64          `json:"estimated_yield"`
	Status         enums.CropStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// NewCropDTO converts a persisted crop into its API shape.
func NewCropDTO(m *models.Crop) *CropDTO {
	if m == nil {
		return nil
	}
	return &CropDTO{
		ID:             m.ID,
		Name:           m.Name,
		PlantingDate:   m.PlantingDate,
		HarvestDate:    m.HarvestDate,
		EstimatedYield: m.EstimatedYield,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// NewCropDTOs maps a slice of crops.
func NewCropDTOs(rows []models.Crop) []CropDTO {
	out := make([]CropDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewCropDTO(&rows[i]))
	}
	return out
}
