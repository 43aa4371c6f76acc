package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"negar/internal/models"
	"negar/internal/services"

	"github.com/rs/zerolog"
)

// User-facing messages are Persian; the storefront has no other locale.
const (
	msgFieldsRequired   = "تمام فیلدها الزامی هستند"
	msgInvalidName      = "نام باید حداقل ۳ حرف باشد"
	msgInvalidPhone     = "شماره موبایل معتبر نیست"
	msgInvalidEmail     = "ایمیل معتبر نیست"
	msgInvalidPassword  = "رمز عبور باید حداقل ۸ کاراکتر و شامل حروف بزرگ، کوچک و عدد باشد"
	msgInvalidBrandName = "نام برند باید حداقل ۲ حرف باشد"
	msgEmailTaken       = "این ایمیل قبلا ثبت شده است"
	msgServerError      = "خطای سرور، لطفا دوباره تلاش کنید"
)

type AccountHandler struct {
	accountService *services.AccountService
	logger         zerolog.Logger
}

func NewAccountHandler(accountService *services.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", msgFieldsRequired)
		return
	}

	summary, err := h.accountService.Register(r.Context(), &req)
	if err != nil {
		h.respondRegisterError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, summary)
}

func (h *AccountHandler) respondRegisterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrFieldsRequired):
		respondWithError(w, http.StatusBadRequest, "fields_required", msgFieldsRequired)
	case errors.Is(err, services.ErrInvalidName):
		respondWithError(w, http.StatusBadRequest, "invalid_name", msgInvalidName)
	case errors.Is(err, services.ErrInvalidPhone):
		respondWithError(w, http.StatusBadRequest, "invalid_phone", msgInvalidPhone)
	case errors.Is(err, services.ErrInvalidEmail):
		respondWithError(w, http.StatusBadRequest, "invalid_email", msgInvalidEmail)
	case errors.Is(err, services.ErrInvalidPassword):
		respondWithError(w, http.StatusBadRequest, "invalid_password", msgInvalidPassword)
	case errors.Is(err, services.ErrInvalidBrandName):
		respondWithError(w, http.StatusBadRequest, "invalid_brand_name", msgInvalidBrandName)
	case errors.Is(err, services.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, "email_taken", msgEmailTaken)
	default:
		h.logger.Error().Err(err).Msg("Registration failed")
		respondWithError(w, http.StatusInternalServerError, "internal_error", msgServerError)
	}
}
