package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmtrack/farmtrack-backend/internal/crops"
	"github.com/farmtrack/farmtrack-backend/pkg/db"
	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes product management operations scoped to the acting farmer.
type Service interface {
	CreateProduct(ctx context.Context, farmerID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, farmerID, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, farmerID uuid.UUID) ([]ProductDTO, error)
	UpdateProduct(ctx context.Context, farmerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, farmerID, productID uuid.UUID) error
}

// service implements the product service.
type service struct {
	repo     *Repository
	cropRepo *crops.Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, cropRepo *crops.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if cropRepo == nil {
		return nil, fmt.Errorf("crop repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, cropRepo: cropRepo, dbClient: dbClient}, nil
}

// CreateProduct inserts the product and its crop links atomically. Crop IDs
// outside the farmer's grows set are rejected; an empty list links the
// product to every crop the farmer cultivates.
func (s *service) CreateProduct(ctx context.Context, farmerID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product type")
	}
	if input.QuantityUsed < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_used cannot be negative")
	}
	if input.Cost < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}

	cropIDs, err := s.resolveCropIDs(ctx, farmerID, input.CropIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:         input.Name,
		Type:         input.Type,
		QuantityUsed: input.QuantityUsed,
		Cost:         input.Cost,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Create(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		if err := txRepo.CreateLinks(ctx, product.ID, cropIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert crop links")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return NewProductDTO(product, cropIDs), nil
}

// GetProduct loads a product linked to one of the farmer's crops.
func (s *service) GetProduct(ctx context.Context, farmerID, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadOwnedProduct(ctx, farmerID, productID)
	if err != nil {
		return nil, err
	}
	linked, err := s.repo.ListLinkedCropIDs(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list crop links")
	}
	return NewProductDTO(product, linked), nil
}

// ListProducts returns the products applied to the farmer's crops.
func (s *service) ListProducts(ctx context.Context, farmerID uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i], nil))
	}
	return out, nil
}

// UpdateProduct overwrites the provided fields. Crop links are not touched.
func (s *service) UpdateProduct(ctx context.Context, farmerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwnedProduct(ctx, farmerID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product type")
		}
		product.Type = *input.Type
	}
	if input.QuantityUsed != nil {
		if *input.QuantityUsed < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_used cannot be negative")
		}
		product.QuantityUsed = *input.QuantityUsed
	}
	if input.Cost != nil {
		if *input.Cost < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
		}
		product.Cost = *input.Cost
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	linked, err := s.repo.ListLinkedCropIDs(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list crop links")
	}
	return NewProductDTO(product, linked), nil
}

// DeleteProduct removes the product and its crop links in one transaction.
func (s *service) DeleteProduct(ctx context.Context, farmerID, productID uuid.UUID) error {
	if _, err := s.loadOwnedProduct(ctx, farmerID, productID); err != nil {
		return err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.DeleteLinks(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete crop links")
		}
		if err := txRepo.Delete(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// resolveCropIDs dedupes the requested crop IDs and verifies each belongs to
// the farmer. An empty request resolves to all of the farmer's crops.
func (s *service) resolveCropIDs(ctx context.Context, farmerID uuid.UUID, requested []uuid.UUID) ([]uuid.UUID, error) {
	owned, err := s.cropRepo.ListIDsByFarmer(ctx, farmerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list farmer crops")
	}

	if len(requested) == 0 {
		return owned, nil
	}

	ownedSet := make(map[uuid.UUID]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(requested))
	resolved := make([]uuid.UUID, 0, len(requested))
	for _, id := range requested {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := ownedSet[id]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "crop_ids contains a crop you do not cultivate")
		}
		resolved = append(resolved, id)
	}
	return resolved, nil
}

func (s *service) loadOwnedProduct(ctx context.Context, farmerID, productID uuid.UUID) (*models.Product, error) {
	linked, err := s.repo.LinkedToFarmer(ctx, farmerID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product ownership")
	}
	if !linked {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}
