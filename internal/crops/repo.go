package crops

import (
	"context"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes crop persistence, including the grows link table and the
// cascading cleanup that a crop removal implies.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a crops repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new crop row.
func (r *Repository) Create(ctx context.Context, crop *models.Crop) error {
	if crop.ID == uuid.Nil {
		crop.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(crop).Error
}

// CreateGrow records that a farmer cultivates a crop.
func (r *Repository) CreateGrow(ctx context.Context, farmerID, cropID uuid.UUID) error {
	grow := models.Grow{FarmerID: farmerID, CropID: cropID}
	return r.db.WithContext(ctx).Create(&grow).Error
}

// FindByID loads a crop by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Crop, error) {
	var crop models.Crop
	if err := r.db.WithContext(ctx).First(&crop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &crop, nil
}

// FindByIDForUpdate loads a crop and takes a row lock so concurrent sale
// mutations against the same crop serialize. SQLite has a single writer and
// no SELECT FOR UPDATE, so the clause is postgres-only.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Crop, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var crop models.Crop
	if err := q.First(&crop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &crop, nil
}

// OwnedBy reports whether the farmer has a grows row for the crop.
func (r *Repository) OwnedBy(ctx context.Context, farmerID, cropID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Grow{}).
		Where("farmer_id = ? AND crop_id = ?", farmerID, cropID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByFarmer returns the crops a farmer cultivates, newest first.
func (r *Repository) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]models.Crop, error) {
	var rows []models.Crop
	err := r.db.WithContext(ctx).
		Joins("JOIN grows ON grows.crop_id = crops.id").
		Where("grows.farmer_id = ?", farmerID).
		Order("crops.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListIDsByFarmer returns the crop IDs a farmer cultivates.
func (r *Repository) ListIDsByFarmer(ctx context.Context, farmerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Grow{}).
		Where("farmer_id = ?", farmerID).
		Pluck("crop_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Save persists all mutable columns of an already loaded crop.
func (r *Repository) Save(ctx context.Context, crop *models.Crop) error {
	return r.db.WithContext(ctx).Save(crop).Error
}

// UpdateStatus sets the availability column directly.
func (r *Repository) UpdateStatus(ctx context.Context, cropID uuid.UUID, status enums.CropStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Crop{}).
		Where("id = ?", cropID).
		Update("status", status).Error
}

// Delete removes the crop row itself. Callers are expected to have run the
// cascade helpers first inside the same transaction.
func (r *Repository) Delete(ctx context.Context, cropID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Crop{}, "id = ?", cropID).Error
}

// DeleteGrows removes all grows rows for a crop.
func (r *Repository) DeleteGrows(ctx context.Context, cropID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Grow{}, "crop_id = ?", cropID).Error
}

// DeleteSales removes all sale rows recorded against a crop.
func (r *Repository) DeleteSales(ctx context.Context, cropID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Sale{}, "crop_id = ?", cropID).Error
}

// ListLinkedProductIDs returns the products currently applied to a crop.
func (r *Repository) ListLinkedProductIDs(ctx context.Context, cropID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.CropProduct{}).
		Where("crop_id = ?", cropID).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteProductLinks removes all crop_products rows for a crop.
func (r *Repository) DeleteProductLinks(ctx context.Context, cropID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CropProduct{}, "crop_id = ?", cropID).Error
}

// DeleteOrphanedProducts drops the given products if they no longer link to
// any crop. Run after DeleteProductLinks while deleting a crop.
func (r *Repository) DeleteOrphanedProducts(ctx context.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Where("NOT EXISTS (SELECT 1 FROM crop_products WHERE crop_products.product_id = products.id)").
		Delete(&models.Product{}).Error
}

// AvailabilityRow pairs a crop with its committed sales total.
type AvailabilityRow struct {
	ID             uuid.UUID
	EstimatedYield float64
	Status         enums.CropStatus
	TotalSold      float64
}

// ListAvailabilityRows returns every crop with its summed quantity_sold, for
// the nightly reconciliation sweep.
func (r *Repository) ListAvailabilityRows(ctx context.Context) ([]AvailabilityRow, error) {
	var rows []AvailabilityRow
	err := r.db.WithContext(ctx).
		Model(&models.Crop{}).
		Select("crops.id, crops.estimated_yield, crops.status, COALESCE(SUM(sales.quantity_sold), 0) AS total_sold").
		Joins("LEFT JOIN sales ON sales.crop_id = crops.id").
		Group("crops.id, crops.estimated_yield, crops.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every crop in the system, newest first. Admin read path.
func (r *Repository) ListAll(ctx context.Context) ([]models.Crop, error) {
	var rows []models.Crop
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
