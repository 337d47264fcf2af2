package products

import (
	"context"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes product persistence, including the crop_products link
// table.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads a product by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Save persists all mutable columns of an already loaded product.
func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes the product row. Link rows are removed separately inside the
// same transaction.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// CreateLinks inserts one crop_products row per crop ID.
func (r *Repository) CreateLinks(ctx context.Context, productID uuid.UUID, cropIDs []uuid.UUID) error {
	if len(cropIDs) == 0 {
		return nil
	}
	links := make([]models.CropProduct, 0, len(cropIDs))
	for _, cropID := range cropIDs {
		links = append(links, models.CropProduct{CropID: cropID, ProductID: productID})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

// DeleteLinks removes all crop_products rows for a product.
func (r *Repository) DeleteLinks(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CropProduct{}, "product_id = ?", productID).Error
}

// ListLinkedCropIDs returns the crops a product is applied to.
func (r *Repository) ListLinkedCropIDs(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.CropProduct{}).
		Where("product_id = ?", productID).
		Pluck("crop_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListByFarmer returns the products linked to any crop the farmer cultivates,
// newest first.
func (r *Repository) ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Distinct("products.*").
		Joins("JOIN crop_products ON crop_products.product_id = products.id").
		Joins("JOIN grows ON grows.crop_id = crop_products.crop_id").
		Where("grows.farmer_id = ?", farmerID).
		Order("products.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LinkedToFarmer reports whether a product is applied to at least one crop the
// farmer cultivates.
func (r *Repository) LinkedToFarmer(ctx context.Context, farmerID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CropProduct{}).
		Joins("JOIN grows ON grows.crop_id = crop_products.crop_id").
		Where("crop_products.product_id = ? AND grows.farmer_id = ?", productID, farmerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAll returns every product in the system, newest first. Admin read path.
func (r *Repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
