package products

import (
	"time"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateProductInput holds the validated payload to record a product. An
// empty CropIDs slice links the product to every crop the farmer cultivates.
type CreateProductInput struct {
	Name         string
	Type         enums.ProductType
	QuantityUsed float64
	Cost         float64
	CropIDs      []uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name         *string
	Type         *enums.ProductType
	QuantityUsed *float64
	Cost         *float64
}

// ProductDTO is the public representation of a product.
type ProductDTO struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Type         enums.ProductType `json:"type"`
	QuantityUsed float64           `json:"quantity_used"`
	Cost         float64           `json:"cost"`
	CropIDs      []uuid.UUID       `json:"crop_ids,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// NewProductDTO converts a persisted product into its API shape.
func NewProductDTO(m *models.Product, cropIDs []uuid.UUID) *ProductDTO {
	if m == nil {
		return nil
	}
	return &ProductDTO{
		ID:           m.ID,
		Name:         m.Name,
		Type:         m.Type,
		QuantityUsed: m.QuantityUsed,
		Cost:         m.Cost,
		CropIDs:      cropIDs,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
