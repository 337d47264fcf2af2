package sales

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

func setupSalesTestDB(t *testing.T) *gorm.DB {
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
	salesTable := `
CREATE TABLE IF NOT EXISTS sales (
  id TEXT PRIMARY KEY,
  date_of_sale DATETIME,
  price_per_unit REAL NOT NULL,
  quantity_sold REAL NOT NULL,
  earnings REAL NOT NULL,
  crop_id TEXT NOT NULL,
  farmer_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(cropsTable).Error)
	require.NoError(t, conn.Exec(grows).Error)
	require.NoError(t, conn.Exec(salesTable).Error)
	return conn
}

func newSalesService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), crops.NewRepository(conn), db.NewFromConn(conn))
	require.NoError(t, err)
	return svc
}

func plantCrop(t *testing.T, conn *gorm.DB, farmerID uuid.UUID, name string, yield float64) *models.Crop {
	t.Helper()

	crop := &models.Crop{
		ID:             uuid.New(),
		Name:           name,
		EstimatedYield: yield,
		Status:         enums.CropStatusAvailable,
	}
	require.NoError(t, conn.Create(crop).Error)
	require.NoError(t, conn.Create(&models.Grow{FarmerID: farmerID, CropID: crop.ID}).Error)
	return crop
}

func cropStatus(t *testing.T, conn *gorm.DB, cropID uuid.UUID) enums.CropStatus {
	t.Helper()

	var crop models.Crop
	require.NoError(t, conn.First(&crop, "id = ?", cropID).Error)
	return crop.Status
}

func TestRecordSaleDerivesCropAvailability(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	crop := plantCrop(t, conn, farmerID, "Maize", 100)

	first, err := svc.RecordSale(ctx, farmerID, RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: 50,
		QuantitySold: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(50*60*1000), first.Earnings)
	assert.Equal(t, enums.CropStatusAvailable, cropStatus(t, conn, crop.ID))

	second, err := svc.RecordSale(ctx, farmerID, RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: 50,
		QuantitySold: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.CropStatusUnavailable, cropStatus(t, conn, crop.ID))

	_, err = svc.RecordSale(ctx, farmerID, RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: 50,
		QuantitySold: 1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	assert.Equal(t, "crop is sold out", typed.Message())

	require.NoError(t, svc.DeleteSale(ctx, farmerID, second.ID))
	assert.Equal(t, enums.CropStatusAvailable, cropStatus(t, conn, crop.ID))
}

func TestRecordSaleExactYieldMarksUnavailable(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	crop := plantCrop(t, conn, farmerID, "Beans", 80)

	_, err := svc.RecordSale(ctx, farmerID, RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: 30,
		QuantitySold: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.CropStatusUnavailable, cropStatus(t, conn, crop.ID))
}

func TestRecordSaleRejectsForeignCrop(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	ctx := context.Background()

	owner := uuid.New()
	crop := plantCrop(t, conn, owner, "Sorghum", 100)

	_, err := svc.RecordSale(ctx, uuid.New(), RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: 10,
		QuantitySold: 5,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRecordSaleValidatesInput(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	crop := plantCrop(t, conn, farmerID, "Wheat", 100)

	_, err := svc.RecordSale(ctx, farmerID, RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: -1,
		QuantitySold: 5,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.RecordSale(ctx, farmerID, RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: 10,
		QuantitySold: 0,
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateSaleRecomputesEarningsAndStatus(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	crop := plantCrop(t, conn, farmerID, "Rice", 100)

	sale, err := svc.RecordSale(ctx, farmerID, RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: 50,
		QuantitySold: 60,
	})
	require.NoError(t, err)

	bigger := 120.0
	updated, err := svc.UpdateSale(ctx, farmerID, sale.ID, UpdateSaleInput{QuantitySold: &bigger})
	require.NoError(t, err)
	assert.Equal(t, float64(50*120*1000), updated.Earnings)
	assert.Equal(t, enums.CropStatusUnavailable, cropStatus(t, conn, crop.ID))

	smaller := 30.0
	price := 20.0
	updated, err = svc.UpdateSale(ctx, farmerID, sale.ID, UpdateSaleInput{
		PricePerUnit: &price,
		QuantitySold: &smaller,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(20*30*1000), updated.Earnings)
	assert.Equal(t, enums.CropStatusAvailable, cropStatus(t, conn, crop.ID))
}

func TestUpdateSaleRejectsForeignSale(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	ctx := context.Background()

	owner := uuid.New()
	crop := plantCrop(t, conn, owner, "Barley", 100)

	sale, err := svc.RecordSale(ctx, owner, RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: 10,
		QuantitySold: 5,
	})
	require.NoError(t, err)

	qty := 9.0
	_, err = svc.UpdateSale(ctx, uuid.New(), sale.ID, UpdateSaleInput{QuantitySold: &qty})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "sale not found", typed.Message())
}

func TestDeleteSaleUnknownID(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)

	err := svc.DeleteSale(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListSalesCarriesCropName(t *testing.T) {
	conn := setupSalesTestDB(t)
	svc := newSalesService(t, conn)
	ctx := context.Background()

	farmerID := uuid.New()
	crop := plantCrop(t, conn, farmerID, "Cassava", 200)

	_, err := svc.RecordSale(ctx, farmerID, RecordSaleInput{
		CropID:       crop.ID,
		PricePerUnit: 15,
		QuantitySold: 10,
	})
	require.NoError(t, err)

	rows, err := svc.ListSales(ctx, farmerID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cassava", rows[0].CropName)
	assert.Equal(t, crop.ID, rows[0].CropID)

	other, err := svc.ListSales(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
