package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var dataURLRe = regexp.MustCompile(`^data:image/(jpeg|jpg|png|webp);base64,(.+)$`)

type UploadHandler struct {
	uploadDir string
	publicURL string
	port      string
	logger    zerolog.Logger
}

type uploadRequest struct {
	ImageData string `json:"imageData"`
}

type uploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func NewUploadHandler(uploadDir, publicURL, port string, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploadDir: uploadDir,
		publicURL: publicURL,
		port:      port,
		logger:    logger,
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "تصویری ارسال نشده است")
		return
	}

	m := dataURLRe.FindStringSubmatch(req.ImageData)
	if m == nil {
		respondWithError(w, http.StatusBadRequest, "unsupported_format", "فرمت تصویر پشتیبانی نمی‌شود")
		return
	}
	ext, payload := m[1], m[2]

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_encoding", "تصویر ارسالی معتبر نیست")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error().Err(err).Str("dir", h.uploadDir).Msg("Error creating upload directory")
		respondWithError(w, http.StatusInternalServerError, "internal_error", msgServerError)
		return
	}

	filename := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), randomHex(4), ext)
	path := filepath.Join(h.uploadDir, filename)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("Error writing upload")
		respondWithError(w, http.StatusInternalServerError, "internal_error", msgServerError)
		return
	}

	base := h.resolveBaseURL(r)
	h.logger.Info().Str("file", filename).Int("bytes", len(raw)).Msg("Image uploaded")

	respondWithJSON(w, http.StatusCreated, uploadResponse{
		URL:      base + "/uploads/" + filename,
		Filename: filename,
	})
}

// resolveBaseURL picks, in order: the configured public URL, the forwarded
// proto/host pair when it is not localhost, and finally a localhost fallback
// that external consumers cannot reach.
func (h *UploadHandler) resolveBaseURL(r *http.Request) string {
	if h.publicURL != "" {
		return strings.TrimSuffix(h.publicURL, "/")
	}

	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	if host != "" && !strings.HasPrefix(host, "localhost") && !strings.HasPrefix(host, "127.0.0.1") {
		proto := r.Header.Get("X-Forwarded-Proto")
		if proto == "" {
			proto = "http"
		}
		return proto + "://" + host
	}

	h.logger.Warn().Msg("No public URL configured, returning a localhost URL unreachable from outside")
	return "http://localhost:" + h.port
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(b)
}
