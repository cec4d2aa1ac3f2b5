// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config keeps runtime settings for the server.
type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret   string
	Port        string
	CORSOrigins []string
	Environment string
	UploadDir   string
}

// Load reads configuration from environment variables with sane defaults.
// JWT_SECRET and the database settings without defaults are required.
func Load() (Config, error) {
	cfg := Config{
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnvInt("DB_PORT", 5432),
		DBUser:      strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      strings.TrimSpace(os.Getenv("DB_NAME")),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("APP_ENV", "development"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
	}

	if origins := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:5173"}
	}

	if cfg.DBUser == "" {
		return cfg, fmt.Errorf("DB_USER is required")
	}
	if cfg.DBName == "" {
		return cfg, fmt.Errorf("DB_NAME is required")
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// DSN assembles the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Development reports whether error details may be exposed to clients.
func (c Config) Development() bool { return c.Environment == "development" }

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
