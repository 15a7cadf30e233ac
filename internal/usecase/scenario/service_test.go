package scenario

import (
	"context"
	"errors"
	"testing"

	"fleetops/internal/domain/fleet"
	domainScenario "fleetops/internal/domain/scenario"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

type fakePrimary struct {
	configs   map[uuid.UUID]*domainScenario.Config
	getErr    error
	upsertErr error
	upserts   int
}

func newFakePrimary() *fakePrimary {
	return &fakePrimary{configs: make(map[uuid.UUID]*domainScenario.Config)}
}

func (r *fakePrimary) GetByUser(_ context.Context, userID uuid.UUID) (*domainScenario.Config, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	cfg, ok := r.configs[userID]
	if !ok {
		return nil, domainScenario.ErrNotFound
	}
	return cfg.Clone(), nil
}

func (r *fakePrimary) Upsert(_ context.Context, cfg *domainScenario.Config) error {
	r.upserts++
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.configs[cfg.UserID] = cfg.Clone()
	return nil
}

type fakeReplica struct {
	configs map[uuid.UUID]*domainScenario.Config
	getErr  error
	putErr  error
	puts    int
}

func newFakeReplica() *fakeReplica {
	return &fakeReplica{configs: make(map[uuid.UUID]*domainScenario.Config)}
}

func (r *fakeReplica) Get(_ context.Context, userID uuid.UUID) (*domainScenario.Config, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	cfg, ok := r.configs[userID]
	if !ok {
		return nil, domainScenario.ErrReplicaMiss
	}
	return cfg.Clone(), nil
}

func (r *fakeReplica) Put(_ context.Context, cfg *domainScenario.Config) error {
	r.puts++
	if r.putErr != nil {
		return r.putErr
	}
	r.configs[cfg.UserID] = cfg.Clone()
	return nil
}

type stubFleetRepo struct {
	units []*fleet.Unit
	err   error
}

func (r *stubFleetRepo) CreateUnit(context.Context, *fleet.Unit) error                 { return nil }
func (r *stubFleetRepo) UpdateUnit(context.Context, *fleet.Unit) error                 { return nil }
func (r *stubFleetRepo) DeactivateUnit(context.Context, uuid.UUID) error               { return nil }
func (r *stubFleetRepo) CreateFleet(context.Context, *fleet.Fleet) error               { return nil }
func (r *stubFleetRepo) UpdateFleet(context.Context, *fleet.Fleet) error               { return nil }
func (r *stubFleetRepo) DeactivateFleet(context.Context, uuid.UUID) error              { return nil }
func (r *stubFleetRepo) CreateStoppageType(context.Context, *fleet.StoppageType) error { return nil }
func (r *stubFleetRepo) UpdateStoppageType(context.Context, *fleet.StoppageType) error { return nil }
func (r *stubFleetRepo) DeactivateStoppageType(context.Context, uuid.UUID) error       { return nil }
func (r *stubFleetRepo) ListStoppageTypes(context.Context, bool) ([]*fleet.StoppageType, error) {
	return nil, nil
}
func (r *stubFleetRepo) GetFleet(context.Context, uuid.UUID) (*fleet.Fleet, error) {
	return nil, fleet.ErrFleetNotFound
}

func (r *stubFleetRepo) ListUnits(context.Context, bool) ([]*fleet.Unit, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.units, nil
}

func testHierarchy() ([]*fleet.Unit, []uuid.UUID) {
	var unitIDs []uuid.UUID
	var units []*fleet.Unit
	for i := 0; i < 8; i++ {
		u := &fleet.Unit{ID: uuid.New(), Active: true}
		u.Fleets = []*fleet.Fleet{
			{ID: uuid.New(), UnitID: u.ID, Active: true},
			{ID: uuid.New(), UnitID: u.ID, Active: false},
		}
		units = append(units, u)
		unitIDs = append(unitIDs, u.ID)
	}
	return units, unitIDs
}

func savedConfig(userID uuid.UUID) *domainScenario.Config {
	unitID := uuid.New()
	return &domainScenario.Config{
		UserID:         userID,
		ColumnOrder:    []uuid.UUID{unitID},
		ColumnColors:   map[uuid.UUID]string{unitID: "bg-red-500"},
		MinimizedUnits: []uuid.UUID{},
		SelectedFleets: []uuid.UUID{uuid.New()},
	}
}

func TestLoadFromPrimary(t *testing.T) {
	userID := uuid.New()
	primary := newFakePrimary()
	primary.configs[userID] = savedConfig(userID)

	svc := NewService(primary, newFakeReplica(), &stubFleetRepo{})

	resp := svc.Load(context.Background(), userID)
	assert.Equal(t, SourcePrimary, resp.Source)
	assert.False(t, resp.Degraded)
	assert.Equal(t, primary.configs[userID].ColumnOrder, resp.ColumnOrder)
}

func TestLoadNewUserGetsGeneratedDefault(t *testing.T) {
	units, unitIDs := testHierarchy()
	svc := NewService(newFakePrimary(), newFakeReplica(), &stubFleetRepo{units: units})

	resp := svc.Load(context.Background(), uuid.New())

	assert.Equal(t, SourceDefault, resp.Source)
	assert.False(t, resp.Degraded)
	assert.Equal(t, unitIDs, resp.ColumnOrder)
	assert.Empty(t, resp.MinimizedUnits)

	// Colors cycle the palette by unit position; the seventh unit wraps.
	assert.Equal(t, "bg-blue-500", resp.ColumnColors[unitIDs[0]])
	assert.Equal(t, "bg-pink-500", resp.ColumnColors[unitIDs[5]])
	assert.Equal(t, "bg-blue-500", resp.ColumnColors[unitIDs[6]])
	assert.Equal(t, "bg-green-500", resp.ColumnColors[unitIDs[7]])

	// Only active fleets are selected.
	assert.Len(t, resp.SelectedFleets, len(units))
	for _, u := range units {
		assert.Contains(t, resp.SelectedFleets, u.Fleets[0].ID)
		assert.NotContains(t, resp.SelectedFleets, u.Fleets[1].ID)
	}
}

func TestLoadFallsBackToReplica(t *testing.T) {
	userID := uuid.New()
	primary := newFakePrimary()
	primary.getErr = errStoreDown

	replica := newFakeReplica()
	replica.configs[userID] = savedConfig(userID)

	svc := NewService(primary, replica, &stubFleetRepo{})

	resp := svc.Load(context.Background(), userID)
	assert.Equal(t, SourceReplica, resp.Source)
	assert.True(t, resp.Degraded)
	assert.Equal(t, replica.configs[userID].ColumnOrder, resp.ColumnOrder)
}

func TestLoadReplicaMissFallsToDefault(t *testing.T) {
	units, unitIDs := testHierarchy()
	primary := newFakePrimary()
	primary.getErr = errStoreDown

	svc := NewService(primary, newFakeReplica(), &stubFleetRepo{units: units})

	resp := svc.Load(context.Background(), uuid.New())
	assert.Equal(t, SourceDefault, resp.Source)
	assert.True(t, resp.Degraded)
	assert.Equal(t, unitIDs, resp.ColumnOrder)
}

func TestLoadWithoutReplicaConfigured(t *testing.T) {
	primary := newFakePrimary()
	primary.getErr = errStoreDown

	svc := NewService(primary, nil, &stubFleetRepo{})

	resp := svc.Load(context.Background(), uuid.New())
	assert.Equal(t, SourceDefault, resp.Source)
	assert.True(t, resp.Degraded)
}

func TestLoadDefaultSurvivesHierarchyFailure(t *testing.T) {
	svc := NewService(newFakePrimary(), newFakeReplica(), &stubFleetRepo{err: errStoreDown})

	resp := svc.Load(context.Background(), uuid.New())
	assert.Equal(t, SourceDefault, resp.Source)
	assert.Empty(t, resp.ColumnOrder)
	assert.Empty(t, resp.SelectedFleets)
}

func TestSaveWritesPrimaryAndReplica(t *testing.T) {
	userID := uuid.New()
	primary := newFakePrimary()
	replica := newFakeReplica()
	svc := NewService(primary, replica, &stubFleetRepo{})

	unitID := uuid.New()
	resp, err := svc.Save(context.Background(), userID, &SaveConfigRequest{
		ColumnOrder:  []uuid.UUID{unitID},
		ColumnColors: map[uuid.UUID]string{unitID: "bg-purple-500"},
	})
	require.NoError(t, err)

	assert.Equal(t, SourcePrimary, resp.Source)
	assert.False(t, resp.Degraded)
	assert.Equal(t, 1, primary.upserts)
	assert.Equal(t, 1, replica.puts)

	stored := svc.Load(context.Background(), userID)
	assert.Equal(t, []uuid.UUID{unitID}, stored.ColumnOrder)
}

func TestSavePrimaryFailureDegradesToReplica(t *testing.T) {
	userID := uuid.New()
	primary := newFakePrimary()
	primary.upsertErr = errStoreDown
	replica := newFakeReplica()
	svc := NewService(primary, replica, &stubFleetRepo{})

	unitID := uuid.New()
	resp, err := svc.Save(context.Background(), userID, &SaveConfigRequest{
		ColumnOrder:  []uuid.UUID{unitID},
		ColumnColors: map[uuid.UUID]string{unitID: "bg-green-500"},
	})
	require.NoError(t, err)

	assert.Equal(t, SourceReplica, resp.Source)
	assert.True(t, resp.Degraded)
	assert.Equal(t, 1, replica.puts)

	// The replica keeps the session recoverable.
	recovered := svc.Load(context.Background(), userID)
	assert.Equal(t, SourceDefault, recovered.Source)

	primary.getErr = errStoreDown
	recovered = svc.Load(context.Background(), userID)
	assert.Equal(t, SourceReplica, recovered.Source)
	assert.Equal(t, []uuid.UUID{unitID}, recovered.ColumnOrder)
}

func TestSaveReportsLostWriteWhenBothTiersFail(t *testing.T) {
	primary := newFakePrimary()
	primary.upsertErr = errStoreDown
	replica := newFakeReplica()
	replica.putErr = errStoreDown
	svc := NewService(primary, replica, &stubFleetRepo{})

	unitID := uuid.New()
	resp, err := svc.Save(context.Background(), uuid.New(), &SaveConfigRequest{
		ColumnOrder:  []uuid.UUID{unitID},
		ColumnColors: map[uuid.UUID]string{unitID: "bg-blue-500"},
	})
	require.NoError(t, err)

	// Neither tier took the write; the response must not claim the replica
	// holds it.
	assert.Equal(t, SourceDefault, resp.Source)
	assert.True(t, resp.Degraded)
}

func TestSavePrimaryFailureWithoutReplica(t *testing.T) {
	primary := newFakePrimary()
	primary.upsertErr = errStoreDown
	svc := NewService(primary, nil, &stubFleetRepo{})

	unitID := uuid.New()
	resp, err := svc.Save(context.Background(), uuid.New(), &SaveConfigRequest{
		ColumnOrder:  []uuid.UUID{unitID},
		ColumnColors: map[uuid.UUID]string{unitID: "bg-red-500"},
	})
	require.NoError(t, err)

	assert.Equal(t, SourceDefault, resp.Source)
	assert.True(t, resp.Degraded)
}

func TestSaveValidatesInput(t *testing.T) {
	svc := NewService(newFakePrimary(), newFakeReplica(), &stubFleetRepo{})

	_, err := svc.Save(context.Background(), uuid.New(), &SaveConfigRequest{})
	assert.Error(t, err)
}

func TestSaveOrderRoundTrips(t *testing.T) {
	userID := uuid.New()
	svc := NewService(newFakePrimary(), newFakeReplica(), &stubFleetRepo{})

	order := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	_, err := svc.Save(context.Background(), userID, &SaveConfigRequest{
		ColumnOrder:  order,
		ColumnColors: map[uuid.UUID]string{order[0]: "bg-blue-500"},
	})
	require.NoError(t, err)

	resp := svc.Load(context.Background(), userID)
	assert.Equal(t, order, resp.ColumnOrder)
}

func TestAssignColorsIsDeterministic(t *testing.T) {
	units, _ := testHierarchy()

	first := assignColors(units, defaultPalette)
	second := assignColors(units, defaultPalette)
	assert.Equal(t, first, second)

	for i, u := range units {
		assert.Equal(t, defaultPalette[i%len(defaultPalette)], first[u.ID])
	}
}
