package auth

import (
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	FarmerID uuid.UUID
	Role     enums.FarmerRole
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	FarmerID uuid.UUID        `json:"farmer_id"`
	Role     enums.FarmerRole `json:"role"`
	jwt.RegisteredClaims
}
