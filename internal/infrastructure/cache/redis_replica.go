package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fleetops/internal/config"
	"fleetops/internal/domain/scenario"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const scenarioKeyPrefix = "scenario:config:"

// RedisReplica is the fail-soft replica tier for scenario configs. It mirrors
// every saved config so a primary-store outage degrades to last-known state
// instead of losing the user's session.
type RedisReplica struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReplica(cfg *config.RedisConfig) *RedisReplica {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisReplica{
		client: client,
		// Replica entries outlive any realistic session but are not forever:
		// the primary remains the source of truth.
		ttl: 30 * 24 * time.Hour,
	}
}

// NewRedisReplicaWithClient is used by tests to back the replica with
// miniredis.
func NewRedisReplicaWithClient(client *redis.Client) *RedisReplica {
	return &RedisReplica{client: client, ttl: 30 * 24 * time.Hour}
}

func (r *RedisReplica) Get(ctx context.Context, userID uuid.UUID) (*scenario.Config, error) {
	payload, err := r.client.Get(ctx, scenarioKeyPrefix+userID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, scenario.ErrReplicaMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario replica: %w", err)
	}

	var cfg scenario.Config
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scenario replica: %w", err)
	}

	return &cfg, nil
}

func (r *RedisReplica) Put(ctx context.Context, cfg *scenario.Config) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode scenario replica: %w", err)
	}

	if err := r.client.Set(ctx, scenarioKeyPrefix+cfg.UserID.String(), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write scenario replica: %w", err)
	}

	return nil
}

func (r *RedisReplica) Close() error {
	return r.client.Close()
}
