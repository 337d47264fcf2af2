package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateLimitStore struct {
	counts map[string]int64
}

func newFakeRateLimitStore() *fakeRateLimitStore {
	return &fakeRateLimitStore{counts: map[string]int64{}}
}

func (f *fakeRateLimitStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	f.counts[key]++
	return f.counts[key], nil
}

func decodeErrorCode(t *testing.T, body []byte) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error.Code
}

func postLogin(handler http.Handler, ip, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("X-Forwarded-For", ip)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func passthroughHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRateLimitBlocksIPAfterLimit(t *testing.T) {
	store := newFakeRateLimitStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, nil)(passthroughHandler())

	for i := 0; i < 2; i++ {
		rec := postLogin(handler, "10.0.0.1", `{"phone":"+251911000001"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := postLogin(handler, "10.0.0.1", `{"phone":"+251911000001"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", decodeErrorCode(t, rec.Body.Bytes()))

	// A different client IP is unaffected.
	rec = postLogin(handler, "10.0.0.2", `{"phone":"+251911000001"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRateLimitBlocksPhoneAcrossIPs(t *testing.T) {
	store := newFakeRateLimitStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)
	handler := AuthRateLimit(policy, store, nil)(passthroughHandler())

	body := `{"phone":"+251911000002"}`
	assert.Equal(t, http.StatusOK, postLogin(handler, "10.0.0.1", body).Code)
	assert.Equal(t, http.StatusOK, postLogin(handler, "10.0.0.2", body).Code)

	rec := postLogin(handler, "10.0.0.3", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Raw phone numbers never appear in the keys, only their hashes.
	for key := range store.counts {
		assert.NotContains(t, key, "+251911000002")
	}
}

func TestAuthRateLimitBodyStaysReadable(t *testing.T) {
	store := newFakeRateLimitStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)

	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Phone string `json:"phone"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		seen = payload.Phone
		w.WriteHeader(http.StatusOK)
	})

	rec := postLogin(AuthRateLimit(policy, store, nil)(inner), "10.0.0.1", `{"phone":"+251911000003"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "+251911000003", seen)
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, newFakeRateLimitStore(), nil)(passthroughHandler())

	for i := 0; i < 20; i++ {
		rec := postLogin(handler, "10.0.0.1", `{"phone":"+251911000004"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
