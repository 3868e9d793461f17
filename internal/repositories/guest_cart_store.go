package repositories

import (
	"context"
	"sync"

	"github.com/olegkovalyov/next-ecommerce-sub000/internal/domain"
)

// GuestCartLine is one entry of the anonymous cart blob. Only line id,
// product id and quantity cross the trust boundary; price and name are
// re-resolved from the catalog on every read.
type GuestCartLine struct {
	LineID    string `json:"lineId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// GuestCartBlob is the value stored per client-held token.
type GuestCartBlob struct {
	CartID string          `json:"cartId"`
	Lines  []GuestCartLine `json:"lines"`
}

// GuestCartStore is the key-value backing store for anonymous carts,
// keyed by a token the client holds in a cookie. Consistency is last
// write wins; readers must treat stale or unresolvable entries as
// absent rather than erroring.
type GuestCartStore interface {
	Get(ctx context.Context, token string) (*GuestCartBlob, error)
	Put(ctx context.Context, token string, blob *GuestCartBlob) error
	Delete(ctx context.Context, token string) error
}

// MemoryGuestCartStore is an in-memory GuestCartStore for tests and
// single-node runs.
type MemoryGuestCartStore struct {
	blobs map[string]GuestCartBlob
	mu    sync.RWMutex
}

// NewMemoryGuestCartStore creates a new instance of MemoryGuestCartStore.
func NewMemoryGuestCartStore() *MemoryGuestCartStore {
	return &MemoryGuestCartStore{
		blobs: make(map[string]GuestCartBlob),
	}
}

// Get returns the blob stored for a token.
func (s *MemoryGuestCartStore) Get(_ context.Context, token string) (*GuestCartBlob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[token]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return &blob, nil
}

// Put stores the blob for a token.
func (s *MemoryGuestCartStore) Put(_ context.Context, token string, blob *GuestCartBlob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[token] = *blob
	return nil
}

// Delete removes the blob for a token. Deleting an absent token is not
// an error.
func (s *MemoryGuestCartStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, token)
	return nil
}
