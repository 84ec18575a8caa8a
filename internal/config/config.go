package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

const AppName = "dwellcheck-backend"

// Data source selection. Postgres is the production path; memory runs
// the full API with no external services for demos and tests.
const (
	DataSourcePostgres = "postgres"
	DataSourceMemory   = "memory"
)

type Config struct {
	AppName string
	AppPort string

	// AppURL is the externally reachable base URL, used for media and
	// public-report links baked into PDFs.
	AppURL string

	DataSource string
	DBUrl      string

	MediaDir string

	// Auth. The service only verifies tokens; the private key lives
	// with the identity provider.
	RSAPublicKey *rsa.PublicKey
}

func LoadConfig() *Config {
	// Not required to exist; real deployments set env directly.
	if err := godotenv.Load(); err == nil {
		utils.Logger.Info("Loaded environment from .env")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}

	dataSource := os.Getenv("DATA_SOURCE")
	if dataSource == "" {
		dataSource = DataSourcePostgres
	}
	if dataSource != DataSourcePostgres && dataSource != DataSourceMemory {
		utils.Logger.Fatalf("DATA_SOURCE must be %q or %q, got %q",
			DataSourcePostgres, DataSourceMemory, dataSource)
	}

	dbURL := os.Getenv("DB_URL")
	if dataSource == DataSourcePostgres && dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	mediaDir := os.Getenv("MEDIA_DIR")
	if mediaDir == "" {
		mediaDir = "./media"
	}

	pubB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	return &Config{
		AppName:      AppName,
		AppPort:      appPort,
		AppURL:       appURL,
		DataSource:   dataSource,
		DBUrl:        dbURL,
		MediaDir:     mediaDir,
		RSAPublicKey: pubKey,
	}
}
