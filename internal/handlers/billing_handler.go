package handlers

import (
	"net/http"
	"strings"

	"negar/internal/balance"

	"github.com/rs/zerolog"
)

// balanceFetcher is the narrow seam in front of the scraper so the strategy
// can be swapped for an official API without touching this handler.
type balanceFetcher interface {
	Fetch(apiKey string) balance.Result
}

type BillingHandler struct {
	fetcher balanceFetcher
	logger  zerolog.Logger
}

func NewBillingHandler(fetcher balanceFetcher, logger zerolog.Logger) *BillingHandler {
	return &BillingHandler{
		fetcher: fetcher,
		logger:  logger,
	}
}

// GetBalance renders the vendor balance for the billing page. An unavailable
// scrape still answers 200 with balance 0, matching what the storefront has
// always shown; the available flag lets the client render it differently.
func (h *BillingHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		respondWithError(w, http.StatusUnauthorized, "missing_api_key", "کلید دسترسی ارسال نشده است")
		return
	}

	result := h.fetcher.Fetch(parts[1])
	if !result.Available {
		h.logger.Warn().Msg("Balance unavailable, rendering zero")
	}
	respondWithJSON(w, http.StatusOK, result)
}
