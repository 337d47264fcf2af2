package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmtrack/farmtrack-backend/internal/crops"
	"github.com/farmtrack/farmtrack-backend/pkg/db"
	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// kgPerQuintal converts recorded quantities (quintals) into the kilograms
// that price_per_unit is quoted against when computing earnings.
const kgPerQuintal = 1000

// Service exposes sale accounting operations scoped to the acting farmer.
// Every mutation holds the crop row lock and re-derives crop availability
// from the new sales total before committing.
type Service interface {
	RecordSale(ctx context.Context, farmerID uuid.UUID, input RecordSaleInput) (*SaleDTO, error)
	UpdateSale(ctx context.Context, farmerID, saleID uuid.UUID, input UpdateSaleInput) (*SaleDTO, error)
	DeleteSale(ctx context.Context, farmerID, saleID uuid.UUID) error
	ListSales(ctx context.Context, farmerID uuid.UUID) ([]SaleDTO, error)
}

// service implements the sale service.
type service struct {
	repo     *Repository
	cropRepo *crops.Repository
	dbClient *db.Client
}

// NewService constructs a sale service instance.
func NewService(repo *Repository, cropRepo *crops.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	if cropRepo == nil {
		return nil, fmt.Errorf("crop repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, cropRepo: cropRepo, dbClient: dbClient}, nil
}

// RecordSale inserts a sale against an available crop the farmer cultivates.
func (s *service) RecordSale(ctx context.Context, farmerID uuid.UUID, input RecordSaleInput) (*SaleDTO, error) {
	if input.PricePerUnit < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_unit cannot be negative")
	}
	if input.QuantitySold <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_sold must be positive")
	}

	owned, err := s.cropRepo.OwnedBy(ctx, farmerID, input.CropID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check crop ownership")
	}
	if !owned {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "crop not found")
	}

	sale := &models.Sale{
		DateOfSale:   input.DateOfSale,
		PricePerUnit: input.PricePerUnit,
		QuantitySold: input.QuantitySold,
		Earnings:     computeEarnings(input.PricePerUnit, input.QuantitySold),
		CropID:       input.CropID,
		FarmerID:     farmerID,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txCrops := s.cropRepo.WithTx(tx)
		crop, err := txCrops.FindByIDForUpdate(ctx, input.CropID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "crop not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock crop")
		}
		if crop.Status == enums.CropStatusUnavailable {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "crop is sold out")
		}

		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale")
		}
		return s.reconcileStatus(ctx, txRepo, txCrops, crop)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale")
	}

	return NewSaleDTO(sale), nil
}

// UpdateSale overwrites the provided fields, recomputes earnings, and
// re-derives the crop's availability in either direction.
func (s *service) UpdateSale(ctx context.Context, farmerID, saleID uuid.UUID, input UpdateSaleInput) (*SaleDTO, error) {
	if input.PricePerUnit != nil && *input.PricePerUnit < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_unit cannot be negative")
	}
	if input.QuantitySold != nil && *input.QuantitySold <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_sold must be positive")
	}

	var updated *models.Sale
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		sale, err := s.loadOwnedSale(ctx, txRepo, farmerID, saleID)
		if err != nil {
			return err
		}

		txCrops := s.cropRepo.WithTx(tx)
		crop, err := txCrops.FindByIDForUpdate(ctx, sale.CropID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock crop")
		}

		if input.DateOfSale != nil {
			sale.DateOfSale = input.DateOfSale
		}
		if input.PricePerUnit != nil {
			sale.PricePerUnit = *input.PricePerUnit
		}
		if input.QuantitySold != nil {
			sale.QuantitySold = *input.QuantitySold
		}
		sale.Earnings = computeEarnings(sale.PricePerUnit, sale.QuantitySold)

		if err := txRepo.Save(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update sale")
		}
		updated = sale
		return s.reconcileStatus(ctx, txRepo, txCrops, crop)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sale")
	}

	return NewSaleDTO(updated), nil
}

// DeleteSale removes a sale and re-derives the crop's availability, which may
// flip a sold-out crop back to available.
func (s *service) DeleteSale(ctx context.Context, farmerID, saleID uuid.UUID) error {
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		sale, err := s.loadOwnedSale(ctx, txRepo, farmerID, saleID)
		if err != nil {
			return err
		}

		txCrops := s.cropRepo.WithTx(tx)
		crop, err := txCrops.FindByIDForUpdate(ctx, sale.CropID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock crop")
		}

		if err := txRepo.Delete(ctx, sale.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete sale")
		}
		return s.reconcileStatus(ctx, txRepo, txCrops, crop)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sale")
	}
	return nil
}

// ListSales returns the farmer's sales with crop names.
func (s *service) ListSales(ctx context.Context, farmerID uuid.UUID) ([]SaleDTO, error) {
	rows, err := s.repo.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales")
	}
	return NewSaleDTOs(rows), nil
}

// reconcileStatus recomputes availability from the committed sales total. The
// crop row must already be locked by the surrounding transaction.
func (s *service) reconcileStatus(ctx context.Context, txRepo *Repository, txCrops *crops.Repository, crop *models.Crop) error {
	total, err := txRepo.SumQuantityByCrop(ctx, crop.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sum sold quantity")
	}

	status := enums.CropStatusAvailable
	if total >= crop.EstimatedYield {
		status = enums.CropStatusUnavailable
	}
	if status == crop.Status {
		return nil
	}
	if err := txCrops.UpdateStatus(ctx, crop.ID, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update crop status")
	}
	crop.Status = status
	return nil
}

func (s *service) loadOwnedSale(ctx context.Context, txRepo *Repository, farmerID, saleID uuid.UUID) (*models.Sale, error) {
	sale, err := txRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sale")
	}
	if sale.FarmerID != farmerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	}
	return sale, nil
}

func computeEarnings(pricePerUnit, quantitySold float64) float64 {
	return pricePerUnit * quantitySold * kgPerQuintal
}
