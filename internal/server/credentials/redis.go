package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/redis/go-redis/v9"
)

// RedisConfig captures connection options for the redis driver.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisRepository keeps credential records as JSON values under email-derived
// keys. SetNX provides the create-if-absent semantics the uniqueness
// invariant needs; records carry no TTL, the store is durable.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRepository(cfg RedisConfig) (*RedisRepository, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "credentials:email:"
	}

	return &RedisRepository{client: client, prefix: prefix}, nil
}

func (r *RedisRepository) key(email string) string {
	return r.prefix + email
}

func (r *RedisRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	raw, err := r.client.Get(ctx, r.key(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	cred := &Credential{}
	if err := json.Unmarshal(raw, cred); err != nil {
		return nil, fmt.Errorf("credential decode failed: %w", err)
	}
	return cred, nil
}

func (r *RedisRepository) Create(ctx context.Context, cred *Credential) (*Credential, error) {
	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now

	data, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("credential encode failed: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(cred.Email), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx failed: %w", err)
	}
	if !ok {
		return nil, common.ErrorAlreadyExists
	}

	return cred, nil
}

func (r *RedisRepository) Close(ctx context.Context) error {
	return r.client.Close()
}
