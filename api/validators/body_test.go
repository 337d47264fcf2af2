package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/farmtrack/farmtrack-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required,min=8"`
}

func decodeRequest(t *testing.T, body string, dest any) error {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	return DecodeJSONBody(req, dest)
}

func TestDecodeJSONBodyValid(t *testing.T) {
	var payload loginPayload
	err := decodeRequest(t, `{"phone":"+251911000001","password":"long-enough"}`, &payload)
	require.NoError(t, err)
	assert.Equal(t, "+251911000001", payload.Phone)
}

func TestDecodeJSONBodyMalformedJSON(t *testing.T) {
	var payload loginPayload
	err := decodeRequest(t, `{"phone":`, &payload)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	var payload loginPayload
	err := decodeRequest(t, `{"phone":"+251911000001","password":"long-enough","admin":true}`, &payload)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONBodyFieldMessagesUseJSONNames(t *testing.T) {
	var payload loginPayload
	err := decodeRequest(t, `{"phone":"0911000001","password":"short"}`, &payload)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid phone number in E.164 format", details["phone"])
	assert.Equal(t, "must be at least 8", details["password"])
}
