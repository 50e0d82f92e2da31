package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Storage drivers understood by Load.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// TokenTTL is the lifetime of every issued access token.
const TokenTTL = time.Hour

// Config holds runtime configuration sourced from env vars.
type Config struct {
	ServiceName   string
	LoggerLevel   string
	Port          string
	StorageDriver string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTL        time.Duration
	CORSOrigins   []string
	AdminEmail    string
	AdminPassword string
	UploadDir     string
	MaxUploadSize int64
	RateLimitRPS  float64
	RateBurst     int
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		ServiceName:   fallback(os.Getenv("SERVICE_NAME"), "driveops-backend"),
		LoggerLevel:   fallback(os.Getenv("LOGGER_LEVEL"), "info"),
		Port:          fallback(os.Getenv("PORT"), "8080"),
		StorageDriver: strings.ToLower(fallback(os.Getenv("STORAGE_DRIVER"), DriverPostgres)),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:     fallback(os.Getenv("JWT_ISSUER"), "driveops-backend"),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		AdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		UploadDir:     fallback(os.Getenv("UPLOAD_DIR"), "uploads"),
		JWTTTL:        TokenTTL,
	}

	uploadMB := cast.ToInt64(fallback(os.Getenv("MAX_UPLOAD_MB"), "5"))
	if uploadMB <= 0 {
		uploadMB = 5
	}
	cfg.MaxUploadSize = uploadMB << 20

	cfg.RateLimitRPS = cast.ToFloat64(fallback(os.Getenv("RATE_LIMIT_RPS"), "10"))
	cfg.RateBurst = cast.ToInt(fallback(os.Getenv("RATE_LIMIT_BURST"), "20"))
	if cfg.RateLimitRPS <= 0 || cfg.RateBurst <= 0 {
		cfg.RateLimitRPS, cfg.RateBurst = 10, 20
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// BootstrapAdmin reports whether a default admin account should be ensured at startup.
func (c Config) BootstrapAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
