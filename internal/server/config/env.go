package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config values from process environment variables,
// loading a .env file first when one exists next to the binary.
//
// Recognized variables:
//
//	ADDRESS              HTTP bind address
//	DATABASE_DSN         PostgreSQL DSN
//	SESSION_SECRET       HMAC signing secret
//	SESSION_TTL          token lifetime, Go duration syntax ("24h")
//	MIN_PASSWORD_LENGTH  minimum password length
//	BCRYPT_COST          bcrypt cost for new password hashes
//	VERIFY_CONCURRENCY   concurrent password verification bound
//	ROUTE_RULES          extra route rules ("public:/docs/*,authonly:/auth/reset")
//	SIGNIN_PATH          sign-in redirect target
//	PROTECTED_HOME       post-login redirect target
func parseEnv(cfg *Config) error {
	// Missing .env is the normal case in production; only real variables
	// matter then.
	_ = godotenv.Load()

	cfg.HTTPAddr = getEnv("ADDRESS", cfg.HTTPAddr)
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.RouteRules = getEnv("ROUTE_RULES", cfg.RouteRules)
	cfg.SignInPath = getEnv("SIGNIN_PATH", cfg.SignInPath)
	cfg.ProtectedHome = getEnv("PROTECTED_HOME", cfg.ProtectedHome)

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = d
	}

	var err error
	if cfg.MinPasswordLength, err = getEnvAsInt("MIN_PASSWORD_LENGTH", cfg.MinPasswordLength); err != nil {
		return err
	}
	if cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", cfg.BcryptCost); err != nil {
		return err
	}
	if cfg.VerifyConcurrency, err = getEnvAsInt("VERIFY_CONCURRENCY", cfg.VerifyConcurrency); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
