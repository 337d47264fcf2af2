package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/farmtrack/farmtrack-backend/internal/farmers"
	"github.com/farmtrack/farmtrack-backend/pkg/config"
	"github.com/farmtrack/farmtrack-backend/pkg/db"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/farmtrack/farmtrack-backend/pkg/security"
	"gorm.io/gorm"
)

// RegisterRequest contains the payload required for onboarding a new farmer.
type RegisterRequest struct {
	FirstName  string   `json:"first_name" validate:"required"`
	MiddleName *string  `json:"middle_name,omitempty"`
	LastName   string   `json:"last_name" validate:"required"`
	Phone      string   `json:"phone" validate:"required,e164"`
	Password   string   `json:"password" validate:"required,min=8"`
	Location   *string  `json:"location,omitempty"`
	LandArea   *float64 `json:"land_area,omitempty" validate:"omitempty,gte=0"`
}

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*farmers.FarmerDTO, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*farmers.FarmerDTO, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if req.LandArea != nil && *req.LandArea < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "land_area cannot be negative")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created farmers.FarmerDTO
	if err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		farmerRepo := farmers.NewRepository(tx)

		if _, err := farmerRepo.FindByPhone(ctx, phone); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check farmer phone")
		}

		farmer, err := farmerRepo.Create(ctx, farmers.CreateFarmerDTO{
			FirstName:    strings.TrimSpace(req.FirstName),
			MiddleName:   req.MiddleName,
			LastName:     strings.TrimSpace(req.LastName),
			Phone:        phone,
			Location:     req.Location,
			LandArea:     req.LandArea,
			PasswordHash: passwordHash,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "uq_farmers_phone") {
				return pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create farmer")
		}

		created = farmers.FromModel(farmer)
		return nil
	}); err != nil {
		return nil, err
	}

	return &created, nil
}
