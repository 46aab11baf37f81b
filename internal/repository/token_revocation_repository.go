package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocationRepository records access tokens invalidated before their
// natural expiry.
type TokenRevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedTokenPrefix = "revoked_token:"

type redisTokenRevocationRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewTokenRevocationRepository stores revoked token IDs in Redis. Keys expire
// with the token so the set never outgrows the live token population.
func NewTokenRevocationRepository(client *redis.Client) TokenRevocationRepository {
	return &redisTokenRevocationRepository{client: client, now: time.Now}
}

func (r *redisTokenRevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedTokenPrefix+tokenID, 1, ttl).Err()
}

func (r *redisTokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
