package auth

import (
	"github.com/farmtrack/farmtrack-backend/internal/farmers"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens and farmer produced by a successful login.
type LoginResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	Farmer       farmers.FarmerDTO `json:"farmer"`
}
