package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAddr          = ":8080"
	defaultAccessTTL     = "15m"
	defaultRefreshTTL    = "168h"
	defaultUploadDir     = "./uploads"
	defaultMaxUploadSize = "16777216" // 16 MB
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultRefreshPepper = "change-me-refresh-pepper"

	// Access tokens are session tokens, not long-lived credentials.
	maxAccessTTL = 24 * time.Hour
)

type Config struct {
	AppEnv             string
	Addr               string
	DatabaseURL        string
	JWTSecret          string
	JWTAccessTTL       time.Duration
	RefreshTTL         time.Duration
	RefreshTokenPepper string
	UploadDir          string
	MaxUploadSize      int64
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = strings.TrimSpace(getEnv("ADDR", defaultAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "blog.db"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RefreshTokenPepper = strings.TrimSpace(getEnv("REFRESH_TOKEN_PEPPER", defaultRefreshPepper))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadSize, err = parseInt64Env("MAX_UPLOAD_SIZE", defaultMaxUploadSize)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.JWTAccessTTL > maxAccessTTL {
		return fmt.Errorf("JWT_ACCESS_TTL must not exceed %s", maxAccessTTL)
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if cfg.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be > 0")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RefreshTokenPepper, defaultRefreshPepper) {
			return fmt.Errorf("in prod/release REFRESH_TOKEN_PEPPER must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseInt64Env(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
