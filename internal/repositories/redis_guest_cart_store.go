package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
)

const guestCartKeyPrefix = "guest_cart:"

// RedisGuestCartStore is a Redis-backed GuestCartStore. Blobs expire
// after the configured TTL (7 days by default); expiry is enforced by
// Redis, not by the domain core.
type RedisGuestCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGuestCartStore creates a new instance of RedisGuestCartStore.
func NewRedisGuestCartStore(client *redis.Client, ttl time.Duration) *RedisGuestCartStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisGuestCartStore{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the blob stored for a token.
func (s *RedisGuestCartStore) Get(ctx context.Context, token string) (*GuestCartBlob, error) {
	data, err := s.client.Get(ctx, guestCartKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.NewPersistenceError("failed to read guest cart", err)
	}
	var blob GuestCartBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		// A corrupt blob is treated the same as an absent one; the
		// client simply starts over with an empty cart.
		return nil, domain.ErrCartNotFound
	}
	return &blob, nil
}

// Put stores the blob for a token and refreshes its TTL.
func (s *RedisGuestCartStore) Put(ctx context.Context, token string, blob *GuestCartBlob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return domain.NewPersistenceError("failed to encode guest cart", err)
	}
	if err := s.client.Set(ctx, guestCartKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return domain.NewPersistenceError("failed to write guest cart", err)
	}
	return nil
}

// Delete removes the blob for a token.
func (s *RedisGuestCartStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, guestCartKeyPrefix+token).Err(); err != nil {
		return domain.NewPersistenceError("failed to delete guest cart", err)
	}
	return nil
}
