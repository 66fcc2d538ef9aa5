package credentials

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// MemoryRepository is a map-backed driver used in tests and development.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]Credential
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]Credential)}
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cred, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &cred, nil
}

func (r *MemoryRepository) Create(ctx context.Context, cred *Credential) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[cred.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now
	r.byEmail[cred.Email] = *cred

	return cred, nil
}

func (r *MemoryRepository) Close(ctx context.Context) error {
	return nil
}
