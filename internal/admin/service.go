package admin

import (
	"context"
	"fmt"

	"github.com/farmtrack/farmtrack-backend/internal/crops"
	"github.com/farmtrack/farmtrack-backend/internal/farmers"
	"github.com/farmtrack/farmtrack-backend/internal/products"
	"github.com/farmtrack/farmtrack-backend/internal/sales"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/google/uuid"
)

// GrowDTO is the admin view of a grows link row.
type GrowDTO struct {
	FarmerID uuid.UUID `json:"farmer_id"`
	CropID   uuid.UUID `json:"crop_id"`
}

// CropProductDTO is the admin view of a crop_products link row.
type CropProductDTO struct {
	CropID    uuid.UUID `json:"crop_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// Overview is the full-table dump returned to administrators. Password
// digests are never included; farmer rows go through the public DTO.
type Overview struct {
	Farmers      []farmers.FarmerDTO    `json:"farmers"`
	Crops        []crops.CropDTO        `json:"crops"`
	Grows        []GrowDTO              `json:"grows"`
	Sales        []sales.SaleDTO        `json:"sales"`
	Products     []products.ProductDTO  `json:"products"`
	CropProducts []CropProductDTO       `json:"crop_products"`
}

// Service exposes the admin read surface.
type Service interface {
	GetOverview(ctx context.Context) (*Overview, error)
}

type service struct {
	repo *Repository
}

// NewService constructs an admin service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	return &service{repo: repo}, nil
}

// GetOverview loads every table and maps the rows to their public shapes.
func (s *service) GetOverview(ctx context.Context) (*Overview, error) {
	farmerRows, err := s.repo.ListFarmers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list farmers")
	}
	cropRows, err := s.repo.ListCrops(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list crops")
	}
	growRows, err := s.repo.ListGrows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list grows")
	}
	saleRows, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales")
	}
	productRows, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	linkRows, err := s.repo.ListCropProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list crop products")
	}

	overview := &Overview{
		Farmers:      make([]farmers.FarmerDTO, 0, len(farmerRows)),
		Crops:        crops.NewCropDTOs(cropRows),
		Grows:        make([]GrowDTO, 0, len(growRows)),
		Sales:        make([]sales.SaleDTO, 0, len(saleRows)),
		Products:     make([]products.ProductDTO, 0, len(productRows)),
		CropProducts: make([]CropProductDTO, 0, len(linkRows)),
	}
	for i := range farmerRows {
		overview.Farmers = append(overview.Farmers, farmers.FromModel(&farmerRows[i]))
	}
	for _, g := range growRows {
		overview.Grows = append(overview.Grows, GrowDTO{FarmerID: g.FarmerID, CropID: g.CropID})
	}
	for i := range saleRows {
		overview.Sales = append(overview.Sales, *sales.NewSaleDTO(&saleRows[i]))
	}
	for i := range productRows {
		overview.Products = append(overview.Products, *products.NewProductDTO(&productRows[i], nil))
	}
	for _, l := range linkRows {
		overview.CropProducts = append(overview.CropProducts, CropProductDTO{CropID: l.CropID, ProductID: l.ProductID})
	}
	return overview, nil
}
