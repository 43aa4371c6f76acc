package handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type AdminHandler struct {
	jwtSecret []byte
	logger    zerolog.Logger
}

type adminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type verifyResponse struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
}

func NewAdminHandler(jwtSecret string, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// Verify checks the bearer token. A 401 tells the client to drop whatever
// token it was holding.
func (h *AdminHandler) Verify(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		respondWithJSON(w, http.StatusUnauthorized, verifyResponse{Valid: false})
		return
	}

	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.jwtSecret, nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn().Err(err).Msg("Admin token rejected")
		respondWithJSON(w, http.StatusUnauthorized, verifyResponse{Valid: false})
		return
	}

	respondWithJSON(w, http.StatusOK, verifyResponse{Valid: true, Email: claims.Email})
}
