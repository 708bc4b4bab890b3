// Package cache stores resolved staff-id sets so the fuzzy roster matching
// runs once per session instead of on every history request.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type IdentityCache interface {
	Get(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error)
	Set(ctx context.Context, userID uuid.UUID, staffIDs []uuid.UUID, ttl time.Duration) error
}

type NoopIdentityCache struct{}

func (NoopIdentityCache) Get(_ context.Context, _ uuid.UUID) ([]uuid.UUID, bool, error) {
	return nil, false, nil
}

func (NoopIdentityCache) Set(_ context.Context, _ uuid.UUID, _ []uuid.UUID, _ time.Duration) error {
	return nil
}
