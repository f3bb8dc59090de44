package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Report server connection
	ReportServerHost string
	ReportServerPort int
	GatewayUser      string
	GatewayPass      string
	ReportTimeout    time.Duration

	// Read cache for report queries
	ReportCacheTTL      time.Duration
	ReportCacheCapacity int

	// Device password encryption
	CryptoSecret string
	CryptoSalt   string

	// Rate limiting, e.g. "100-M" for 100 requests per minute
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("REPORT_SERVER_HOST", "localhost")
	viper.SetDefault("REPORT_SERVER_PORT", 8585)
	viper.SetDefault("GATEWAY_USER", "")
	viper.SetDefault("GATEWAY_PASS", "")
	viper.SetDefault("REPORT_TIMEOUT", "30s")
	viper.SetDefault("REPORT_CACHE_TTL", "30s")
	viper.SetDefault("REPORT_CACHE_CAPACITY", 1000)
	viper.SetDefault("CRYPTO_SECRET", "default_insecure_crypto_secret_please_change_this")
	viper.SetDefault("CRYPTO_SALT", "default_insecure_salt")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.ReportServerHost = viper.GetString("REPORT_SERVER_HOST")
	cfg.ReportServerPort = viper.GetInt("REPORT_SERVER_PORT")

	cfg.GatewayUser = viper.GetString("GATEWAY_USER")
	cfg.GatewayPass = viper.GetString("GATEWAY_PASS")
	if cfg.GatewayUser == "" || cfg.GatewayPass == "" {
		log.Println("Warning: GATEWAY_USER or GATEWAY_PASS not set. Report server calls will be rejected.")
	}

	cfg.ReportTimeout = parseDurationOrDefault("REPORT_TIMEOUT", 30*time.Second)
	cfg.ReportCacheTTL = parseDurationOrDefault("REPORT_CACHE_TTL", 30*time.Second)
	cfg.ReportCacheCapacity = viper.GetInt("REPORT_CACHE_CAPACITY")

	cfg.CryptoSecret = viper.GetString("CRYPTO_SECRET")
	if cfg.CryptoSecret == "default_insecure_crypto_secret_please_change_this" {
		log.Println("Warning: CRYPTO_SECRET environment variable not set. Using default insecure secret.")
	}
	cfg.CryptoSalt = viper.GetString("CRYPTO_SALT")
	if cfg.CryptoSalt == "default_insecure_salt" {
		log.Println("Warning: CRYPTO_SALT environment variable not set. Using default insecure salt.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

func parseDurationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		return def
	}
	return d
}
