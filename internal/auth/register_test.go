package auth

import (
	"context"
	"testing"

	"github.com/farmtrack/farmtrack-backend/pkg/config"
	"github.com/farmtrack/farmtrack-backend/pkg/db"
	"github.com/farmtrack/farmtrack-backend/pkg/db/models"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/farmtrack/farmtrack-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	farmersTable := `
CREATE TABLE IF NOT EXISTS farmers (
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
);`
	require.NoError(t, conn.Exec(farmersTable).Error)
	return conn
}

func testPasswordConfig() config.PasswordConfig {
	// Low-cost parameters keep the suite fast; the clamps in pkg/security
	// raise them to their floors.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newRegisterService(t *testing.T, conn *gorm.DB) RegisterService {
	t.Helper()

	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             db.NewFromConn(conn),
		PasswordConfig: testPasswordConfig(),
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newRegisterService(t, conn)
	ctx := context.Background()

	dto, err := svc.Register(ctx, RegisterRequest{
		FirstName: "Abebe",
		LastName:  "Bikila",
		Phone:     "+251911000001",
		Password:  "marathon-gold",
	})
	require.NoError(t, err)
	assert.Equal(t, "+251911000001", dto.Phone)
	assert.Equal(t, enums.FarmerRoleFarmer, dto.Role)

	var stored models.Farmer
	require.NoError(t, conn.First(&stored, "id = ?", dto.ID).Error)
	assert.NotEqual(t, "marathon-gold", stored.PasswordHash)
	assert.Contains(t, stored.PasswordHash, "$argon2id$")

	ok, err := security.VerifyPassword("marathon-gold", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newRegisterService(t, conn)
	ctx := context.Background()

	req := RegisterRequest{
		FirstName: "Chaltu",
		LastName:  "Dika",
		Phone:     "+251911000002",
		Password:  "first-harvest",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "phone already registered", typed.Message())
}

func TestRegisterRejectsNegativeLandArea(t *testing.T) {
	conn := setupAuthTestDB(t)
	svc := newRegisterService(t, conn)

	area := -2.5
	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Kebede",
		LastName:  "Alemu",
		Phone:     "+251911000003",
		Password:  "terraces",
		LandArea:  &area,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
