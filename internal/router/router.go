package router

import (
	"database/sql"
	"net/http"

	"negar/internal/balance"
	"negar/internal/config"
	"negar/internal/handlers"
	"negar/internal/middleware"
	"negar/internal/services"
	"negar/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(db *sql.DB, fetcher *balance.Fetcher, cfg config.Config, logger zerolog.Logger) *mux.Router {
	accountStore := storage.NewPostgresAccountStore(db, logger)
	accountService := services.NewAccountService(accountStore, logger)

	accountHandler := handlers.NewAccountHandler(accountService, logger)
	adminHandler := handlers.NewAdminHandler(cfg.JWTSecret, logger)
	setupHandler := handlers.NewSetupHandler(cfg.SetupFile, logger)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir, cfg.PublicURL, cfg.Port, logger)
	billingHandler := handlers.NewBillingHandler(fetcher, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", accountHandler.Register).Methods("POST")
	api.HandleFunc("/admin/verify", adminHandler.Verify).Methods("POST")
	api.HandleFunc("/setup/config", setupHandler.GetConfig).Methods("GET")
	api.HandleFunc("/setup/configure", setupHandler.Configure).Methods("POST")
	api.HandleFunc("/upload", uploadHandler.Upload).Methods("POST")
	api.HandleFunc("/billing/balance", billingHandler.GetBalance).Methods("GET")

	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
