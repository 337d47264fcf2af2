package controllers

import (
	"net/http"

	"github.com/farmtrack/farmtrack-backend/api/responses"
	adminsvc "github.com/farmtrack/farmtrack-backend/internal/admin"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/farmtrack/farmtrack-backend/pkg/logger"
)

// AdminOverview dumps every table for operators. The route is admin-gated;
// password digests are stripped by the service layer.
func AdminOverview(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		overview, err := svc.GetOverview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, overview)
	}
}
