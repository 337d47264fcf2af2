package sales

import (
	"time"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/google/uuid"
)

// RecordSaleInput holds the validated payload to record a sale.
type RecordSaleInput struct {
	CropID       uuid.UUID
	DateOfSale   *time.Time
	PricePerUnit float64
	QuantitySold float64
}

// UpdateSaleInput holds optional mutation values for a sale. Earnings is
// always recomputed from the effective price and quantity, never accepted.
type UpdateSaleInput struct {
	DateOfSale   *time.Time
	PricePerUnit *float64
	QuantitySold *float64
}

// SaleDTO is the public representation of a sale.
type SaleDTO struct {
	ID           uuid.UUID  `json:"id"`
	CropID       uuid.UUID  `json:"crop_id"`
	CropName     string     `json:"crop_name,omitempty"`
	DateOfSale   *time.Time `json:"date_of_sale,omitempty"`
	PricePerUnit float64    `json:"price_per_unit"`
	QuantitySold float64    `json:"quantity_sold"`
	Earnings     float64    `json:"earnings"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewSaleDTO converts a persisted sale into its API shape.
func NewSaleDTO(m *models.Sale) *SaleDTO {
	if m == nil {
		return nil
	}
	return &SaleDTO{
		ID:           m.ID,
		CropID:       m.CropID,
		DateOfSale:   m.DateOfSale,
		PricePerUnit: m.PricePerUnit,
		QuantitySold: m.QuantitySold,
		Earnings:     m.Earnings,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// NewSaleDTOs maps joined sale rows, carrying the crop name through.
func NewSaleDTOs(rows []SaleWithCrop) []SaleDTO {
	out := make([]SaleDTO, 0, len(rows))
	for i := range rows {
		dto := NewSaleDTO(&rows[i].Sale)
		dto.CropName = rows[i].CropName
		out = append(out, *dto)
	}
	return out
}
