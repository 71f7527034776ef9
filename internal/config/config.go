package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBConn        string
	LogLevel      string
	JWTSecret     string
	ECBURL        string
	SweepSpec     string
	OperatorEmail string
	SenderEmail   string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5432 user=landmark password=landmark dbname=landmark sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		ECBURL:        getEnv("ECB_URL", "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"),
		SweepSpec:     getEnv("SWEEP_SPEC", "@every 1m"),
		OperatorEmail: getEnv("OPERATOR_EMAIL", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "noreply@landmark.local"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
