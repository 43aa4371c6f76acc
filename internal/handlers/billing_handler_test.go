package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"negar/internal/balance"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubFetcher struct {
	result  balance.Result
	lastKey string
}

func (s *stubFetcher) Fetch(apiKey string) balance.Result {
	s.lastKey = apiKey
	return s.result
}

func getBalance(h *BillingHandler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/billing/balance", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.GetBalance(rr, req)
	return rr
}

func TestGetBalance_Available(t *testing.T) {
	stub := &stubFetcher{result: balance.Result{Amount: 1250, Available: true}}
	h := NewBillingHandler(stub, zerolog.Nop())

	rr := getBalance(h, "Bearer api-key-123")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "api-key-123", stub.lastKey)

	var body balance.Result
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, 1250, body.Amount)
	assert.True(t, body.Available)
}

func TestGetBalance_UnavailableStillAnswers200(t *testing.T) {
	stub := &stubFetcher{result: balance.Result{}}
	h := NewBillingHandler(stub, zerolog.Nop())

	rr := getBalance(h, "Bearer api-key-123")
	assert.Equal(t, http.StatusOK, rr.Code)

	var body balance.Result
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, 0, body.Amount)
	assert.False(t, body.Available)
}

func TestGetBalance_MissingKey(t *testing.T) {
	stub := &stubFetcher{}
	h := NewBillingHandler(stub, zerolog.Nop())

	assert.Equal(t, http.StatusUnauthorized, getBalance(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, getBalance(h, "Bearer").Code)
	assert.Empty(t, stub.lastKey, "fetcher must not run without a key")
}
