package crops

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmtrack/farmtrack-backend/pkg/db"
	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes crop lifecycle operations scoped to the acting farmer.
type Service interface {
	CreateCrop(ctx context.Context, farmerID uuid.UUID, input CreateCropInput) (*CropDTO, error)
	GetCrop(ctx context.Context, farmerID, cropID uuid.UUID) (*CropDTO, error)
	ListCrops(ctx context.Context, farmerID uuid.UUID) ([]CropDTO, error)
	UpdateCrop(ctx context.Context, farmerID, cropID uuid.UUID, input UpdateCropInput) (*CropDTO, error)
	DeleteCrop(ctx context.Context, farmerID, cropID uuid.UUID) error
}

// service implements the crop service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a crop service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("crop repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateCrop inserts the crop and its grows link atomically. A failure in
// either insert leaves no partial rows behind.
func (s *service) CreateCrop(ctx context.Context, farmerID uuid.UUID, input CreateCropInput) (*CropDTO, error) {
	if input.PlantingDate != nil && input.HarvestDate != nil && input.HarvestDate.Before(*input.PlantingDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "harvest_date cannot precede planting_date")
	}

	crop := &models.Crop{
		Name:           input.Name,
		PlantingDate:   input.PlantingDate,
		HarvestDate:    input.HarvestDate,
		EstimatedYield: input.EstimatedYield,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Create(ctx, crop); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert crop")
		}
		if err := txRepo.CreateGrow(ctx, farmerID, crop.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert grow")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create crop")
	}

	return NewCropDTO(crop), nil
}

// GetCrop loads a crop the farmer cultivates.
func (s *service) GetCrop(ctx context.Context, farmerID, cropID uuid.UUID) (*CropDTO, error) {
	crop, err := s.loadOwnedCrop(ctx, farmerID, cropID)
	if err != nil {
		return nil, err
	}
	return NewCropDTO(crop), nil
}

// ListCrops returns the crops the farmer cultivates.
func (s *service) ListCrops(ctx context.Context, farmerID uuid.UUID) ([]CropDTO, error) {
	rows, err := s.repo.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list crops")
	}
	return NewCropDTOs(rows), nil
}

// UpdateCrop overwrites the provided fields. Yield and status changes are not
// reconciled against recorded sales here; the next sale mutation (or the
// nightly reconciliation job) re-derives availability.
func (s *service) UpdateCrop(ctx context.Context, farmerID, cropID uuid.UUID, input UpdateCropInput) (*CropDTO, error) {
	crop, err := s.loadOwnedCrop(ctx, farmerID, cropID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		crop.Name = *input.Name
	}
	if input.PlantingDate != nil {
		crop.PlantingDate = input.PlantingDate
	}
	if input.HarvestDate != nil {
		crop.HarvestDate = input.HarvestDate
	}
	if input.EstimatedYield != nil {
		if *input.EstimatedYield < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimated_yield cannot be negative")
		}
		crop.EstimatedYield = *input.EstimatedYield
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown crop status")
		}
		crop.Status = *input.Status
	}
	if crop.PlantingDate != nil && crop.HarvestDate != nil && crop.HarvestDate.Before(*crop.PlantingDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "harvest_date cannot precede planting_date")
	}

	if err := s.repo.Save(ctx, crop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update crop")
	}
	return NewCropDTO(crop), nil
}

// DeleteCrop removes the crop together with its sales, grows links, product
// links, and any products left without a crop, all in one transaction.
func (s *service) DeleteCrop(ctx context.Context, farmerID, cropID uuid.UUID) error {
	if _, err := s.loadOwnedCrop(ctx, farmerID, cropID); err != nil {
		return err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		linked, err := txRepo.ListLinkedProductIDs(ctx, cropID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list linked products")
		}
		if err := txRepo.DeleteSales(ctx, cropID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete sales")
		}
		if err := txRepo.DeleteProductLinks(ctx, cropID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product links")
		}
		if err := txRepo.DeleteOrphanedProducts(ctx, linked); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete orphaned products")
		}
		if err := txRepo.DeleteGrows(ctx, cropID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete grows")
		}
		if err := txRepo.Delete(ctx, cropID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete crop")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete crop")
	}

	return nil
}

func (s *service) loadOwnedCrop(ctx context.Context, farmerID, cropID uuid.UUID) (*models.Crop, error) {
	owned, err := s.repo.OwnedBy(ctx, farmerID, cropID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check crop ownership")
	}
	if !owned {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "crop not found")
	}

	crop, err := s.repo.FindByID(ctx, cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "crop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load crop")
	}
	return crop, nil
}
