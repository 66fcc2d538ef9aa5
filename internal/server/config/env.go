package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration values from environment variables.
//
// Supported variables:
//
//	ADDRESS         HTTP bind address (e.g., ":3000")
//	DATABASE_DSN    PostgreSQL DSN
//	STORE_DRIVER    credential store backend ("postgres", "redis", "memory")
//	REDIS_ADDR      redis address
//	REDIS_PASSWORD  redis password
//	REDIS_DB        redis database number
//	JWT_SECRET      HMAC signing secret
//	JWT_EXPIRATION  token validity in seconds; unparsable values are ignored
//	BCRYPT_COST     password hashing cost factor
//	LOG_LEVEL       log verbosity
//	ALLOWED_ORIGINS comma-separated CORS origins
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		config.StoreDriver = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		config.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			config.RedisDB = db
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("JWT_EXPIRATION"); v != "" {
		// seconds; invalid or non-positive values keep the default
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			config.TokenValidityDuration = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = cost
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		config.AllowedOrigins = splitOrigins(v)
	}
}
