package scenario

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the primary store for scenario configs, upserting by user ID.
type Repository interface {
	// GetByUser returns ErrNotFound for users that never saved a config.
	GetByUser(ctx context.Context, userID uuid.UUID) (*Config, error)
	// Upsert inserts or replaces the user's single config row.
	Upsert(ctx context.Context, cfg *Config) error
}

// ReplicaStore is the fail-soft replica tier. Reads return ErrReplicaMiss for
// absent entries; writes are best effort and must not be treated as
// authoritative.
type ReplicaStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*Config, error)
	Put(ctx context.Context, cfg *Config) error
}
