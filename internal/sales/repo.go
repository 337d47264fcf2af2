package sales

import (
	"context"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleWithCrop joins a sale row with the name of the crop it was sold from.
type SaleWithCrop struct {
	models.Sale
	CropName string
}

// Repository exposes sale persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sales repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new sale row.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByID loads a sale by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// Save persists all mutable columns of an already loaded sale.
func (r *Repository) Save(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// Delete removes a sale row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Sale{}, "id = ?", id).Error
}

// SumQuantityByCrop totals quantity_sold across all sales of a crop. Run
// inside the same transaction as the crop row lock when deriving status.
func (r *Repository) SumQuantityByCrop(ctx context.Context, cropID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("crop_id = ?", cropID).
		Select("COALESCE(SUM(quantity_sold), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListByFarmer returns the farmer's sales with crop names, newest first.
func (r *Repository) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]SaleWithCrop, error) {
	var rows []SaleWithCrop
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("sales.*, crops.name AS crop_name").
		Joins("JOIN crops ON crops.id = sales.crop_id").
		Where("sales.farmer_id = ?", farmerID).
		Order("sales.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every sale in the system, newest first. Admin read path.
func (r *Repository) ListAll(ctx context.Context) ([]models.Sale, error) {
	var rows []models.Sale
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
