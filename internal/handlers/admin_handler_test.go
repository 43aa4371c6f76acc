package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signAdminToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := &adminClaims{
		Email: "admin@negar.ir",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func postVerify(h *AdminHandler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/admin/verify", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.Verify(rr, req)
	return rr
}

func TestVerify_ValidToken(t *testing.T) {
	h := NewAdminHandler(testSecret, zerolog.Nop())
	rr := postVerify(h, "Bearer "+signAdminToken(t, testSecret, time.Hour))

	assert.Equal(t, http.StatusOK, rr.Code)

	var body verifyResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.True(t, body.Valid)
	assert.Equal(t, "admin@negar.ir", body.Email)
}

func TestVerify_WrongSecret(t *testing.T) {
	h := NewAdminHandler(testSecret, zerolog.Nop())
	rr := postVerify(h, "Bearer "+signAdminToken(t, "other-secret", time.Hour))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	var body verifyResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.False(t, body.Valid)
}

func TestVerify_ExpiredToken(t *testing.T) {
	h := NewAdminHandler(testSecret, zerolog.Nop())
	rr := postVerify(h, "Bearer "+signAdminToken(t, testSecret, -time.Minute))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestVerify_MissingOrMalformedHeader(t *testing.T) {
	h := NewAdminHandler(testSecret, zerolog.Nop())

	assert.Equal(t, http.StatusUnauthorized, postVerify(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, postVerify(h, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, postVerify(h, "Bearer").Code)
}
