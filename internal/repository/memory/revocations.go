package memory

import (
	"context"
	"sync"
	"time"

	"github.com/devdesk/queue-api/internal/repository"
)

// TokenRevocationRepository is an in-process revocation list. Entries are
// dropped once the token would have expired anyway.
type TokenRevocationRepository struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewTokenRevocationRepository returns an empty list.
func NewTokenRevocationRepository() *TokenRevocationRepository {
	return &TokenRevocationRepository{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

var _ repository.TokenRevocationRepository = (*TokenRevocationRepository)(nil)

func (r *TokenRevocationRepository) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleanupLocked()
	if !expiresAt.After(r.now()) {
		return nil
	}
	r.entries[tokenID] = expiresAt
	return nil
}

func (r *TokenRevocationRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiresAt, ok := r.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !expiresAt.After(r.now()) {
		delete(r.entries, tokenID)
		return false, nil
	}
	return true, nil
}

func (r *TokenRevocationRepository) cleanupLocked() {
	now := r.now()
	for id, expiresAt := range r.entries {
		if !expiresAt.After(now) {
			delete(r.entries, id)
		}
	}
}
