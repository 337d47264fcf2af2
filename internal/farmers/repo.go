package farmers

import (
	"context"
	"time"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes farmer-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a farmers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new farmer and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateFarmerDTO) (*models.Farmer, error) {
	farmer := dto.ToModel()
	if farmer.ID == uuid.Nil {
		farmer.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(farmer).Error; err != nil {
		return nil, err
	}
	return farmer, nil
}

// FindByPhone retrieves the farmer registered with the provided phone number.
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&farmer).Error; err != nil {
		return nil, err
	}
	return &farmer, nil
}

// FindByID loads a farmer by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := r.db.WithContext(ctx).First(&farmer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &farmer, nil
}

// UpdateLastLogin refreshes the farmer's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Farmer{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// ListAll returns every registered farmer, newest first. Admin read path.
func (r *Repository) ListAll(ctx context.Context) ([]models.Farmer, error) {
	var rows []models.Farmer
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
