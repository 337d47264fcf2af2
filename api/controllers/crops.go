package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmtrack/farmtrack-backend/api/responses"
	"github.com/farmtrack/farmtrack-backend/api/validators"
	cropsvc "github.com/farmtrack/farmtrack-backend/internal/crops"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/farmtrack/farmtrack-backend/pkg/logger"
)

type createCropRequest struct {
	Name           string  `json:"name" validate:"required"`
	PlantingDate   *string `json:"planting_date,omitempty"`
	HarvestDate    *string `json:"harvest_date,omitempty"`
	EstimatedYield float64 `json:"estimated_yield" validate:"gte=0"`
}

type updateCropRequest struct {
	Name           *string  `json:"name,omitempty"`
	PlantingDate   *string  `json:"planting_date,omitempty"`
	HarvestDate    *string  `json:"harvest_date,omitempty"`
	EstimatedYield *float64 `json:"estimated_yield,omitempty" validate:"omitempty,gte=0"`
	Status         *string  `json:"status,omitempty"`
}

func (req createCropRequest) toInput() (cropsvc.CreateCropInput, error) {
	planting, err := parseDate(req.PlantingDate, "planting_date")
	if err != nil {
		return cropsvc.CreateCropInput{}, err
	}
	harvest, err := parseDate(req.HarvestDate, "harvest_date")
	if err != nil {
		return cropsvc.CreateCropInput{}, err
	}
	return cropsvc.CreateCropInput{
		Name:           req.Name,
		PlantingDate:   planting,
		HarvestDate:    harvest,
		EstimatedYield: req.EstimatedYield,
	}, nil
}

func (req updateCropRequest) toInput() (cropsvc.UpdateCropInput, error) {
	planting, err := parseDate(req.PlantingDate, "planting_date")
	if err != nil {
		return cropsvc.UpdateCropInput{}, err
	}
	harvest, err := parseDate(req.HarvestDate, "harvest_date")
	if err != nil {
		return cropsvc.UpdateCropInput{}, err
	}

	input := cropsvc.UpdateCropInput{
		Name:           req.Name,
		PlantingDate:   planting,
		HarvestDate:    harvest,
		EstimatedYield: req.EstimatedYield,
	}
	if req.Status != nil {
		status, err := enums.ParseCropStatus(*req.Status)
		if err != nil {
			return cropsvc.UpdateCropInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	return input, nil
}

// CreateCrop handles planting a new crop for the authenticated farmer.
func CreateCrop(svc cropsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "crop service unavailable"))
			return
		}

		farmerID, err := actorFarmerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createCropRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		crop, err := svc.CreateCrop(r.Context(), farmerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, crop)
	}
}

// ListCrops returns the authenticated farmer's crops.
func ListCrops(svc cropsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "crop service unavailable"))
			return
		}

		farmerID, err := actorFarmerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		crops, err := svc.ListCrops(r.Context(), farmerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, crops)
	}
}

// GetCrop returns a single crop the authenticated farmer cultivates.
func GetCrop(svc cropsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "crop service unavailable"))
			return
		}

		farmerID, err := actorFarmerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cropID, err := pathUUID(chi.URLParam(r, "cropID"), "crop id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		crop, err := svc.GetCrop(r.Context(), farmerID, cropID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, crop)
	}
}

// UpdateCrop mutates crop fields, including direct status overrides.
func UpdateCrop(svc cropsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "crop service unavailable"))
			return
		}

		farmerID, err := actorFarmerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cropID, err := pathUUID(chi.URLParam(r, "cropID"), "crop id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCropRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		crop, err := svc.UpdateCrop(r.Context(), farmerID, cropID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, crop)
	}
}

// DeleteCrop removes a crop and everything hanging off it.
func DeleteCrop(svc cropsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "crop service unavailable"))
			return
		}

		farmerID, err := actorFarmerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cropID, err := pathUUID(chi.URLParam(r, "cropID"), "crop id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCrop(r.Context(), farmerID, cropID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
