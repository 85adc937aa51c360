package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	// Receipt storage
	ReceiptStorageDir    string
	ReceiptBaseURL       string
	ReceiptSigningSecret string

	// Bootstrap admin, created only when the user table is empty. Skipped
	// when the password is unset.
	BootstrapAdminUsername string
	BootstrapAdminName     string
	BootstrapAdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "hroffice-backend")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("RECEIPT_STORAGE_DIR", "./data/receipts")
	viper.SetDefault("RECEIPT_BASE_URL", "http://localhost:8080")
	viper.SetDefault("RECEIPT_SIGNING_SECRET", "default_insecure_receipt_secret_please_change_this")
	viper.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "admin")
	viper.SetDefault("BOOTSTRAP_ADMIN_NAME", "HR Administrator")
	viper.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.ReceiptStorageDir = viper.GetString("RECEIPT_STORAGE_DIR")
	cfg.ReceiptBaseURL = viper.GetString("RECEIPT_BASE_URL")
	cfg.ReceiptSigningSecret = viper.GetString("RECEIPT_SIGNING_SECRET")
	if cfg.ReceiptSigningSecret == "default_insecure_receipt_secret_please_change_this" {
		log.Println("Warning: RECEIPT_SIGNING_SECRET not set. Using default insecure secret.")
	}

	cfg.BootstrapAdminUsername = viper.GetString("BOOTSTRAP_ADMIN_USERNAME")
	cfg.BootstrapAdminName = viper.GetString("BOOTSTRAP_ADMIN_NAME")
	cfg.BootstrapAdminPassword = viper.GetString("BOOTSTRAP_ADMIN_PASSWORD")

	return cfg, nil
}
