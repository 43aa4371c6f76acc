package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SetupHandler owns the local JSON file holding BaaS connection settings.
// The file is a fallback for deployments that cannot set environment
// variables; its absence just means "not configured yet".
type SetupHandler struct {
	configFile string
	logger     zerolog.Logger
}

type setupConfig struct {
	SupabaseURL    string `json:"supabaseUrl"`
	AnonKey        string `json:"anonKey"`
	ServiceRoleKey string `json:"serviceRoleKey"`
	UpdatedAt      string `json:"updatedAt"`
}

type configureRequest struct {
	SupabaseURL    string `json:"supabaseUrl"`
	AnonKey        string `json:"anonKey"`
	ServiceRoleKey string `json:"serviceRoleKey"`
}

type configStatus struct {
	Configured  bool   `json:"configured"`
	SupabaseURL string `json:"supabaseUrl"`
}

func NewSetupHandler(configFile string, logger zerolog.Logger) *SetupHandler {
	return &SetupHandler{
		configFile: configFile,
		logger:     logger,
	}
}

func (h *SetupHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.configFile)
	if err != nil {
		respondWithJSON(w, http.StatusOK, configStatus{Configured: false, SupabaseURL: ""})
		return
	}

	var cfg setupConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		h.logger.Warn().Err(err).Str("file", h.configFile).Msg("Corrupt setup config file")
		respondWithJSON(w, http.StatusOK, configStatus{Configured: false, SupabaseURL: ""})
		return
	}

	respondWithJSON(w, http.StatusOK, configStatus{
		Configured:  cfg.SupabaseURL != "" && cfg.AnonKey != "",
		SupabaseURL: cfg.SupabaseURL,
	})
}

func (h *SetupHandler) Configure(w http.ResponseWriter, r *http.Request) {
	var req configureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", msgFieldsRequired)
		return
	}

	if req.SupabaseURL == "" || req.AnonKey == "" || req.ServiceRoleKey == "" {
		respondWithError(w, http.StatusBadRequest, "fields_required", msgFieldsRequired)
		return
	}
	if !strings.HasPrefix(req.SupabaseURL, "https://") {
		respondWithError(w, http.StatusBadRequest, "invalid_url", "آدرس باید با https شروع شود")
		return
	}

	cfg := setupConfig{
		SupabaseURL:    req.SupabaseURL,
		AnonKey:        req.AnonKey,
		ServiceRoleKey: req.ServiceRoleKey,
		UpdatedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		h.logger.Error().Err(err).Msg("Error encoding setup config")
		respondWithError(w, http.StatusInternalServerError, "internal_error", msgServerError)
		return
	}

	if err := os.MkdirAll(filepath.Dir(h.configFile), 0o755); err != nil {
		h.logger.Error().Err(err).Msg("Error creating config directory")
		respondWithError(w, http.StatusInternalServerError, "internal_error", msgServerError)
		return
	}
	if err := os.WriteFile(h.configFile, data, 0o600); err != nil {
		h.logger.Error().Err(err).Str("file", h.configFile).Msg("Error writing setup config")
		respondWithError(w, http.StatusInternalServerError, "internal_error", msgServerError)
		return
	}

	h.logger.Info().Str("file", h.configFile).Msg("Setup config saved")
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
