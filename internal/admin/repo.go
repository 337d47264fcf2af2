package admin

import (
	"context"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads every table for the admin overview dump.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an admin repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	var rows []models.Farmer
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *Repository) ListCrops(ctx context.Context) ([]models.Crop, error) {
	var rows []models.Crop
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *Repository) ListGrows(ctx context.Context) ([]models.Grow, error) {
	var rows []models.Grow
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *Repository) ListSales(ctx context.Context) ([]models.Sale, error) {
	var rows []models.Sale
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *Repository) ListCropProducts(ctx context.Context) ([]models.CropProduct, error) {
	var rows []models.CropProduct
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}
