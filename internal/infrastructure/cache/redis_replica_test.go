package cache

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/domain/scenario"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReplica(t *testing.T) (*RedisReplica, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisReplicaWithClient(client), mr
}

func TestReplicaRoundTrip(t *testing.T) {
	replica, _ := newTestReplica(t)
	ctx := context.Background()

	userID := uuid.New()
	unitID := uuid.New()
	cfg := &scenario.Config{
		UserID:         userID,
		ColumnOrder:    []uuid.UUID{unitID},
		ColumnColors:   map[uuid.UUID]string{unitID: "bg-orange-400"},
		SelectedFleets: []uuid.UUID{uuid.New()},
	}

	require.NoError(t, replica.Put(ctx, cfg))

	got, err := replica.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cfg.ColumnOrder, got.ColumnOrder)
	assert.Equal(t, cfg.ColumnColors, got.ColumnColors)
	assert.Equal(t, cfg.SelectedFleets, got.SelectedFleets)
}

func TestReplicaMiss(t *testing.T) {
	replica, _ := newTestReplica(t)

	_, err := replica.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, scenario.ErrReplicaMiss)
}

func TestReplicaEntriesExpire(t *testing.T) {
	replica, mr := newTestReplica(t)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, replica.Put(ctx, &scenario.Config{UserID: userID}))

	key := scenarioKeyPrefix + userID.String()
	assert.Greater(t, mr.TTL(key), time.Duration(0))
}
