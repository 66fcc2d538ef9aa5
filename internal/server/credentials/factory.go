package credentials

import (
	"fmt"
	"strings"
)

// Config describes the driver selection parameters.
type Config struct {
	Driver string
	DSN    string
	Redis  RedisConfig
}

// New builds the repository backend selected by cfg.Driver.
func New(cfg Config) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory":
		return NewMemoryRepository(), nil
	case "redis":
		return NewRedisRepository(cfg.Redis)
	case "postgres":
		return NewPostgresRepository(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported credential store driver: %s", cfg.Driver)
	}
}
