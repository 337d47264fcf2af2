package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/farmtrack/farmtrack-backend/api/middleware"
	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/google/uuid"
)

// actorFarmerID resolves the authenticated farmer from the request context.
func actorFarmerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.FarmerIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "farmer context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid farmer id")
	}
	return id, nil
}

// pathUUID parses a UUID route parameter.
func pathUUID(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

const dateLayout = "2006-01-02"

// parseDate converts an optional YYYY-MM-DD string into a time pointer.
func parseDate(value *string, field string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field+", expected YYYY-MM-DD")
	}
	return &parsed, nil
}
