package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/reweara/api/internal/models"
)

type Config struct {
	Env           string
	Port          string
	DatabaseURL   string
	JWTSecret     string
	SessionSecret string
	LogLevel      string

	KafkaAddress string
	ESURL        string
	ESUser       string
	ESPassword   string

	// Integration keys from the environment; DB settings rows override
	// these when an admin has configured them.
	StripeSecretKey string
	SendGridAPIKey  string
	FromEmail       string
	GeminiAPIKey    string

	TaxRate           float64
	ShippingFee       float64
	FreeShippingAbove float64
}

const defaultDevSecret = "dev-secret-change-me"

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", defaultDevSecret),
		SessionSecret: getEnv("SESSION_SECRET", defaultDevSecret),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),
		ESURL:        os.Getenv("ES_URL"),
		ESUser:       os.Getenv("ES_USER"),
		ESPassword:   os.Getenv("ES_PASSWORD"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		FromEmail:       getEnv("FROM_EMAIL", "hello@reweara.example"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),

		TaxRate:           getEnvFloat("TAX_RATE", 0.05),
		ShippingFee:       getEnvFloat("SHIPPING_FEE", 49),
		FreeShippingAbove: getEnvFloat("FREE_SHIPPING_ABOVE", 999),
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate reports startup problems. The caller decides whether to serve in
// a degraded mode instead of exiting; a missing database or an insecure
// production secret must never take down the health endpoints.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.IsProduction() {
		if c.JWTSecret == defaultDevSecret {
			errs = append(errs, errors.New("JWT_SECRET must be set in production"))
		}
		if c.SessionSecret == defaultDevSecret {
			errs = append(errs, errors.New("SESSION_SECRET must be set in production"))
		}
	}
	return errors.Join(errs...)
}

// OpenDB connects to postgres and migrates the schema. The *gorm.DB handle
// is built once here and passed down explicitly; nothing else in the
// repository opens connections.
func OpenDB(c *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(c.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
