package admin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAdminTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS farmers (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  middle_name TEXT,
  last_name TEXT NOT NULL,
  phone TEXT NOT NULL UNIQUE,
  location TEXT,
  land_area REAL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'farmer',
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS crops (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  planting_date DATETIME,
  harvest_date DATETIME,
  estimated_yield REAL NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'available',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS grows (
  farmer_id TEXT NOT NULL,
  crop_id TEXT NOT NULL,
  created_at DATETIME,
  PRIMARY KEY (farmer_id, crop_id)
);`,
		`CREATE TABLE IF NOT EXISTS sales (
  id TEXT PRIMARY KEY,
  date_of_sale DATETIME,
  price_per_unit REAL NOT NULL,
  quantity_sold REAL NOT NULL,
  earnings REAL NOT NULL,
  crop_id TEXT NOT NULL,
  farmer_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  quantity_used REAL NOT NULL DEFAULT 0,
  cost REAL NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS crop_products (
  crop_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME,
  PRIMARY KEY (crop_id, product_id)
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func TestGetOverviewDumpsEveryTable(t *testing.T) {
	conn := setupAdminTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	const digest = "$argon2id$v=19$m=65536,t=3,p=2$c2VjcmV0$ZGlnZXN0"
	farmer := &models.Farmer{
		ID:           uuid.New(),
		FirstName:    "Abebe",
		LastName:     "Kebede",
		Phone:        "+251911" + uuid.NewString()[:6],
		PasswordHash: digest,
		Role:         enums.FarmerRoleFarmer,
	}
	require.NoError(t, conn.Create(farmer).Error)

	crop := &models.Crop{
		ID:             uuid.New(),
		Name:           "Teff",
		EstimatedYield: 100,
		Status:         enums.CropStatusAvailable,
	}
	require.NoError(t, conn.Create(crop).Error)
	require.NoError(t, conn.Create(&models.Grow{FarmerID: farmer.ID, CropID: crop.ID}).Error)

	sale := &models.Sale{
		ID:           uuid.New(),
		PricePerUnit: 50,
		QuantitySold: 60,
		Earnings:     3000000,
		CropID:       crop.ID,
		FarmerID:     farmer.ID,
	}
	require.NoError(t, conn.Create(sale).Error)

	product := &models.Product{
		ID:   uuid.New(),
		Name: "Urea",
		Type: enums.ProductTypeFertilizer,
		Cost: 1200,
	}
	require.NoError(t, conn.Create(product).Error)
	require.NoError(t, conn.Create(&models.CropProduct{CropID: crop.ID, ProductID: product.ID}).Error)

	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	foundFarmer := false
	for _, f := range overview.Farmers {
		if f.ID == farmer.ID {
			foundFarmer = true
			assert.Equal(t, farmer.Phone, f.Phone)
			assert.Equal(t, enums.FarmerRoleFarmer, f.Role)
		}
	}
	assert.True(t, foundFarmer)

	assert.Contains(t, overview.Grows, GrowDTO{FarmerID: farmer.ID, CropID: crop.ID})
	assert.Contains(t, overview.CropProducts, CropProductDTO{CropID: crop.ID, ProductID: product.ID})

	foundSale := false
	for _, sl := range overview.Sales {
		if sl.ID == sale.ID {
			foundSale = true
			assert.Equal(t, float64(3000000), sl.Earnings)
		}
	}
	assert.True(t, foundSale)
}

func TestGetOverviewNeverExposesPasswordDigests(t *testing.T) {
	conn := setupAdminTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)

	const digest = "$argon2id$v=19$m=65536,t=3,p=2$bGVhaw$bm90aGVyZQ"
	farmer := &models.Farmer{
		ID:           uuid.New(),
		FirstName:    "Sara",
		LastName:     "Tesfaye",
		Phone:        "+251922" + uuid.NewString()[:6],
		PasswordHash: digest,
		Role:         enums.FarmerRoleAdmin,
	}
	require.NoError(t, conn.Create(farmer).Error)

	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	body, err := json.Marshal(overview)
	require.NoError(t, err)
	assert.NotContains(t, string(body), digest)
	assert.NotContains(t, string(body), "password")
}

func TestNewServiceRequiresRepository(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}
