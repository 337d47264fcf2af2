package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmtrack/farmtrack-backend/api/responses"
	"github.com/farmtrack/farmtrack-backend/api/validators"
	salesvc "github.com/farmtrack/farmtrack-backend/internal/sales"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/farmtrack/farmtrack-backend/pkg/logger"
	"github.com/google/uuid"
)

type recordSaleRequest struct {
	CropID       string  `json:"crop_id" validate:"required,uuid"`
	DateOfSale   *string `json:"date_of_sale,omitempty"`
	PricePerUnit float64 `json:"price_per_unit" validate:"gte=0"`
	QuantitySold float64 `json:"quantity_sold" validate:"required,gt=0"`
}

type updateSaleRequest struct {
	DateOfSale   *string  `json:"date_of_sale,omitempty"`
	PricePerUnit *float64 `json:"price_per_unit,omitempty" validate:"omitempty,gte=0"`
	QuantitySold *float64 `json:"quantity_sold,omitempty" validate:"omitempty,gt=0"`
}

func (req recordSaleRequest) toInput() (salesvc.RecordSaleInput, error) {
	cropID, err := uuid.Parse(req.CropID)
	if err != nil {
		return salesvc.RecordSaleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid crop_id")
	}
	date, err := parseDate(req.DateOfSale, "date_of_sale")
	if err != nil {
		return salesvc.RecordSaleInput{}, err
	}
	return salesvc.RecordSaleInput{
		CropID:       cropID,
		DateOfSale:   date,
		PricePerUnit: req.PricePerUnit,
		QuantitySold: req.QuantitySold,
	}, nil
}

func (req updateSaleRequest) toInput() (salesvc.UpdateSaleInput, error) {
	date, err := parseDate(req.DateOfSale, "date_of_sale")
	if err != nil {
		return salesvc.UpdateSaleInput{}, err
	}
	return salesvc.UpdateSaleInput{
		DateOfSale:   date,
		PricePerUnit: req.PricePerUnit,
		QuantitySold: req.QuantitySold,
	}, nil
}

// RecordSale handles logging a sale against one of the farmer's crops.
func RecordSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		farmerID, err := actorFarmerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.RecordSale(r.Context(), farmerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

// ListSales returns the authenticated farmer's sales history.
func ListSales(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		farmerID, err := actorFarmerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sales, err := svc.ListSales(r.Context(), farmerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sales)
	}
}

// UpdateSale mutates a sale and re-derives crop availability.
func UpdateSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		farmerID, err := actorFarmerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saleID, err := pathUUID(chi.URLParam(r, "saleID"), "sale id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.UpdateSale(r.Context(), farmerID, saleID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sale)
	}
}

// DeleteSale removes a sale, which can return a sold-out crop to available.
func DeleteSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sale service unavailable"))
			return
		}

		farmerID, err := actorFarmerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saleID, err := pathUUID(chi.URLParam(r, "saleID"), "sale id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSale(r.Context(), farmerID, saleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
