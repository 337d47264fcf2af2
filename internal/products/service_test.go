package products

import (
	"context"
	"testing"

	"github.com/farmtrack/farmtrack-backend/internal/crops"
	"github.com/farmtrack/farmtrack-backend/pkg/db"
	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	cropsTable := `
CREATE TABLE IF NOT EXISTS crops (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  planting_date DATETIME,
  harvest_date DATETIME,
  estimated_yield REAL NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'available',
  created_at DATETIME,
  updated_at DATETIME
);`
	grows := `
CREATE TABLE IF NOT EXISTS grows (
  farmer_id TEXT NOT NULL,
  crop_id TEXT NOT NULL,
  created_at DATETIME,
  PRIMARY KEY (farmer_id, crop_id)
);`
	productsTable := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  quantity_used REAL NOT NULL DEFAULT 0,
  cost REAL NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	cropProducts := `
CREATE TABLE IF NOT EXISTS crop_products (
  crop_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME,
  PRIMARY KEY (crop_id, product_id)
);`
	require.NoError(t, conn.Exec(cropsTable).Error)
	require.NoError(t, conn.Exec(grows).Error)
	require.NoError(t, conn.Exec(productsTable).Error)
	require.NoError(t, conn.Exec(cropProducts).Error)
	return conn
}

func newProductService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), crops.NewRepository(conn), db.NewFromConn(conn))
	require.NoError(t, err)
	return svc
}

func growCrop(t *testing.T, conn *gorm.DB, farmerID uuid.UUID, name string) *models.Crop {
	t.Helper()

	crop := &models.Crop{ID: uuid.New(), Name: name, EstimatedYield: 100, Status: enums.CropStatusAvailable}
	require.NoError(t, conn.Create(crop).Error)
	require.NoError(t, conn.Create(&models.Grow{FarmerID: farmerID, CropID: crop.ID}).Error)
	return crop
}

func TestCreateProductLinksRequestedCrops(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newProductService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	cropA := growCrop(t, conn, farmerID, "Maize")
	growCrop(t, conn, farmerID, "Beans")

	// Duplicate IDs in the request collapse into one link.
	dto, err := svc.CreateProduct(ctx, farmerID, CreateProductInput{
		Name:         "DAP",
		Type:         enums.ProductTypeFertilizer,
		QuantityUsed: 25,
		Cost:         1800,
		CropIDs:      []uuid.UUID{cropA.ID, cropA.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{cropA.ID}, dto.CropIDs)

	var count int64
	require.NoError(t, conn.Model(&models.CropProduct{}).
		Where("product_id = ?", dto.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateProductEmptyCropIDsLinksAllCrops(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newProductService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	cropA := growCrop(t, conn, farmerID, "Maize")
	cropB := growCrop(t, conn, farmerID, "Beans")

	dto, err := svc.CreateProduct(ctx, farmerID, CreateProductInput{
		Name: "Neem Oil",
		Type: enums.ProductTypePesticide,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{cropA.ID, cropB.ID}, dto.CropIDs)
}

func TestCreateProductRejectsForeignCrop(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newProductService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	growCrop(t, conn, farmerID, "Maize")
	foreign := growCrop(t, conn, uuid.New(), "Tomato")

	_, err := svc.CreateProduct(ctx, farmerID, CreateProductInput{
		Name:    "Urea",
		Type:    enums.ProductTypeFertilizer,
		CropIDs: []uuid.UUID{foreign.ID},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "crop_ids contains a crop you do not cultivate", typed.Message())
}

func TestCreateProductRejectsUnknownType(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newProductService(t, conn)

	_, err := svc.CreateProduct(context.Background(), uuid.New(), CreateProductInput{
		Name: "Mystery",
		Type: enums.ProductType("growth_serum"),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateProductKeepsLinks(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newProductService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	crop := growCrop(t, conn, farmerID, "Maize")

	dto, err := svc.CreateProduct(ctx, farmerID, CreateProductInput{
		Name:    "DAP",
		Type:    enums.ProductTypeFertilizer,
		Cost:    1800,
		CropIDs: []uuid.UUID{crop.ID},
	})
	require.NoError(t, err)

	cost := 2100.0
	updated, err := svc.UpdateProduct(ctx, farmerID, dto.ID, UpdateProductInput{Cost: &cost})
	require.NoError(t, err)
	assert.Equal(t, 2100.0, updated.Cost)
	assert.Equal(t, []uuid.UUID{crop.ID}, updated.CropIDs)
}

func TestDeleteProductRemovesLinks(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newProductService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	crop := growCrop(t, conn, farmerID, "Maize")

	dto, err := svc.CreateProduct(ctx, farmerID, CreateProductInput{
		Name:    "Urea",
		Type:    enums.ProductTypeFertilizer,
		CropIDs: []uuid.UUID{crop.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, farmerID, dto.ID))

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", dto.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, conn.Model(&models.CropProduct{}).Where("product_id = ?", dto.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProductOwnershipHidesForeignProducts(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newProductService(t, conn)
	ctx := context.Background()

	owner := uuid.New()
	crop := growCrop(t, conn, owner, "Maize")

	dto, err := svc.CreateProduct(ctx, owner, CreateProductInput{
		Name:    "DAP",
		Type:    enums.ProductTypeFertilizer,
		CropIDs: []uuid.UUID{crop.ID},
	})
	require.NoError(t, err)

	_, err = svc.GetProduct(ctx, uuid.New(), dto.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "product not found", typed.Message())
}

func TestListProductsScopedToFarmer(t *testing.T) {
	conn := setupProductsTestDB(t)
	svc := newProductService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	crop := growCrop(t, conn, farmerID, "Maize")

	_, err := svc.CreateProduct(ctx, farmerID, CreateProductInput{
		Name:    "DAP",
		Type:    enums.ProductTypeFertilizer,
		CropIDs: []uuid.UUID{crop.ID},
	})
	require.NoError(t, err)

	rows, err := svc.ListProducts(ctx, farmerID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "DAP", rows[0].Name)

	other, err := svc.ListProducts(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
