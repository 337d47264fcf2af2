package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/farmtrack/farmtrack-backend/pkg/auth"
	"github.com/farmtrack/farmtrack-backend/pkg/config"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionChecker struct {
	active map[string]bool
}

func (f *fakeSessionChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	return f.active[accessID], nil
}

func authTestJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "middleware-test-secret",
		Issuer:            "farmtrack",
		ExpirationMinutes: 15,
	}
}

func mintTestToken(t *testing.T, farmerID uuid.UUID, role enums.FarmerRole, jti string) string {
	t.Helper()

	token, err := pkgAuth.MintAccessToken(authTestJWTConfig(), time.Now().UTC(), pkgAuth.AccessTokenPayload{
		FarmerID: farmerID,
		Role:     role,
		JTI:      jti,
	})
	require.NoError(t, err)
	return token
}

func TestAuthSeedsRequestContext(t *testing.T) {
	farmerID := uuid.New()
	checker := &fakeSessionChecker{active: map[string]bool{"session-1": true}}

	var gotFarmerID, gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFarmerID = FarmerIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Auth(authTestJWTConfig(), checker, nil)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crops", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, farmerID, enums.FarmerRoleFarmer, "session-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, farmerID.String(), gotFarmerID)
	assert.Equal(t, "farmer", gotRole)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(authTestJWTConfig(), &fakeSessionChecker{}, nil)(passthroughHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crops", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, rec.Body.Bytes()))
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler := Auth(authTestJWTConfig(), &fakeSessionChecker{}, nil)(passthroughHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crops", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	checker := &fakeSessionChecker{active: map[string]bool{}}
	handler := Auth(authTestJWTConfig(), checker, nil)(passthroughHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/crops", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, uuid.New(), enums.FarmerRoleFarmer, "revoked-session"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
