package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds configuration for all three binaries. Each binary reads only
// the fields it needs.
type Config struct {
	DatabaseURL  string
	AuthPort     string
	BackendPort  string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// ResetTokenExpiryDuration bounds how long a forgot-password token stays
	// redeemable.
	ResetTokenExpiryDuration time.Duration

	// AuthServiceURL is the base URL the backend service calls for token
	// verification.
	AuthServiceURL string

	FrontendBaseURL string

	// ETL settings.
	APODAPIURL        string
	APODAPIKey        string
	APODCSVPath       string
	DataRepoDir       string
	ETLCommandTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("AUTH_PORT", "8081")
	viper.SetDefault("BACKEND_PORT", "8082")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "user-platform-auth")
	viper.SetDefault("RESET_TOKEN_EXPIRY_DURATION", "1h")
	viper.SetDefault("AUTH_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("APOD_API_URL", "https://api.nasa.gov/planetary/apod")
	viper.SetDefault("APOD_API_KEY", "DEMO_KEY")
	viper.SetDefault("APOD_CSV_PATH", "data/apod_data.csv")
	viper.SetDefault("DATA_REPO_DIR", ".")
	viper.SetDefault("ETL_COMMAND_TIMEOUT", "2m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.AuthPort = viper.GetString("AUTH_PORT")
	cfg.BackendPort = viper.GetString("BACKEND_PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.JWTExpiryDuration = parseDurationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.ResetTokenExpiryDuration = parseDurationOrDefault("RESET_TOKEN_EXPIRY_DURATION", time.Hour)
	cfg.ETLCommandTimeout = parseDurationOrDefault("ETL_COMMAND_TIMEOUT", 2*time.Minute)

	cfg.AuthServiceURL = viper.GetString("AUTH_SERVICE_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	cfg.APODAPIURL = viper.GetString("APOD_API_URL")
	cfg.APODAPIKey = viper.GetString("APOD_API_KEY")
	cfg.APODCSVPath = viper.GetString("APOD_CSV_PATH")
	cfg.DataRepoDir = viper.GetString("DATA_REPO_DIR")

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
