package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBUrl      string
	JWTSecret  string
	PublicURL  string
	UploadDir  string
	SetupFile  string
	ChromePath string
	BillingURL string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, using environment only")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	setupFile := os.Getenv("SETUP_CONFIG_FILE")
	if setupFile == "" {
		setupFile = filepath.Join("data", "setup-config.json")
	}

	billingURL := os.Getenv("BILLING_URL")
	if billingURL == "" {
		billingURL = "https://kie.ai/billing"
	}

	return Config{
		Port:       port,
		DBUrl:      os.Getenv("DB_URL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		PublicURL:  os.Getenv("PUBLIC_URL"),
		UploadDir:  uploadDir,
		SetupFile:  setupFile,
		ChromePath: os.Getenv("CHROME_PATH"),
		BillingURL: billingURL,
	}
}
