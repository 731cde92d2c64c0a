package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Gateway  GatewayConfig
	Billing  BillingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type GatewayConfig struct {
	ServerKey    string
	IsProduction bool
	FinishURL    string
}

type BillingConfig struct {
	Currency           string
	CurrencyExponent   int   // decimal places of the minor unit (0 for IDR)
	TaxRateBasisPoints int64 // e.g. 1100 = 11%
	EnrollRetryTopic   string
	CatalogCacheTTL    int // seconds
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "EduCommerce"),
		},
		Gateway: GatewayConfig{
			ServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
			IsProduction: getEnv("MIDTRANS_IS_PRODUCTION", "false") == "true",
			FinishURL:    getEnv("PAYMENT_FINISH_URL", getEnv("CLIENT_URL", "http://localhost:5173")+"/app?payment=success"),
		},
		Billing: BillingConfig{
			Currency:           getEnv("BILLING_CURRENCY", "IDR"),
			CurrencyExponent:   getEnvAsInt("BILLING_CURRENCY_EXPONENT", 0),
			TaxRateBasisPoints: int64(getEnvAsInt("BILLING_TAX_RATE_BPS", 1100)),
			EnrollRetryTopic:   getEnv("ENROLL_RETRY_TOPIC_NAME", "FINALIZE_ENROLLMENT"),
			CatalogCacheTTL:    getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
