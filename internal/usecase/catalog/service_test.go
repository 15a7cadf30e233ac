package catalog

import (
	"context"
	"testing"

	"fleetops/internal/domain/fleet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFleetRepo struct {
	units       map[uuid.UUID]*fleet.Unit
	fleets      map[uuid.UUID]*fleet.Fleet
	types       map[uuid.UUID]*fleet.StoppageType
	unitCodes   map[string]bool
	deactivated []uuid.UUID
}

func newMemFleetRepo() *memFleetRepo {
	return &memFleetRepo{
		units:     make(map[uuid.UUID]*fleet.Unit),
		fleets:    make(map[uuid.UUID]*fleet.Fleet),
		types:     make(map[uuid.UUID]*fleet.StoppageType),
		unitCodes: make(map[string]bool),
	}
}

func (r *memFleetRepo) CreateUnit(_ context.Context, u *fleet.Unit) error {
	if r.unitCodes[u.Code] {
		return fleet.ErrCodeAlreadyExists
	}
	u.ID = uuid.New()
	u.Active = true
	r.units[u.ID] = u
	r.unitCodes[u.Code] = true
	return nil
}

func (r *memFleetRepo) UpdateUnit(_ context.Context, u *fleet.Unit) error {
	if _, ok := r.units[u.ID]; !ok {
		return fleet.ErrUnitNotFound
	}
	r.units[u.ID] = u
	return nil
}

func (r *memFleetRepo) DeactivateUnit(_ context.Context, unitID uuid.UUID) error {
	u, ok := r.units[unitID]
	if !ok {
		return fleet.ErrUnitNotFound
	}
	u.Active = false
	r.deactivated = append(r.deactivated, unitID)
	return nil
}

func (r *memFleetRepo) ListUnits(_ context.Context, activeOnly bool) ([]*fleet.Unit, error) {
	var out []*fleet.Unit
	for _, u := range r.units {
		if activeOnly && !u.Active {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *memFleetRepo) CreateFleet(_ context.Context, f *fleet.Fleet) error {
	f.ID = uuid.New()
	f.Active = true
	r.fleets[f.ID] = f
	return nil
}

func (r *memFleetRepo) UpdateFleet(_ context.Context, f *fleet.Fleet) error {
	if _, ok := r.fleets[f.ID]; !ok {
		return fleet.ErrFleetNotFound
	}
	r.fleets[f.ID] = f
	return nil
}

func (r *memFleetRepo) DeactivateFleet(_ context.Context, fleetID uuid.UUID) error {
	f, ok := r.fleets[fleetID]
	if !ok {
		return fleet.ErrFleetNotFound
	}
	f.Active = false
	return nil
}

func (r *memFleetRepo) GetFleet(_ context.Context, fleetID uuid.UUID) (*fleet.Fleet, error) {
	f, ok := r.fleets[fleetID]
	if !ok {
		return nil, fleet.ErrFleetNotFound
	}
	return f, nil
}

func (r *memFleetRepo) CreateStoppageType(_ context.Context, st *fleet.StoppageType) error {
	st.ID = uuid.New()
	st.Active = true
	r.types[st.ID] = st
	return nil
}

func (r *memFleetRepo) UpdateStoppageType(_ context.Context, st *fleet.StoppageType) error {
	if _, ok := r.types[st.ID]; !ok {
		return fleet.ErrStoppageTypeNotFound
	}
	r.types[st.ID] = st
	return nil
}

func (r *memFleetRepo) DeactivateStoppageType(_ context.Context, typeID uuid.UUID) error {
	st, ok := r.types[typeID]
	if !ok {
		return fleet.ErrStoppageTypeNotFound
	}
	st.Active = false
	return nil
}

func (r *memFleetRepo) ListStoppageTypes(_ context.Context, activeOnly bool) ([]*fleet.StoppageType, error) {
	var out []*fleet.StoppageType
	for _, st := range r.types {
		if activeOnly && !st.Active {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

func TestCreateUnit(t *testing.T) {
	repo := newMemFleetRepo()
	svc := NewService(repo)

	resp, err := svc.CreateUnit(context.Background(), &CreateUnitRequest{Name: "Mina Norte", Code: "MN"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.True(t, resp.Active)

	_, err = svc.CreateUnit(context.Background(), &CreateUnitRequest{Name: "Mina Nova", Code: "MN"})
	assert.ErrorIs(t, err, fleet.ErrCodeAlreadyExists)
}

func TestCreateUnitValidation(t *testing.T) {
	svc := NewService(newMemFleetRepo())

	_, err := svc.CreateUnit(context.Background(), &CreateUnitRequest{Name: "X", Code: ""})
	assert.Error(t, err)
}

func TestDeactivateUnitIsSoft(t *testing.T) {
	repo := newMemFleetRepo()
	svc := NewService(repo)

	created, err := svc.CreateUnit(context.Background(), &CreateUnitRequest{Name: "Mina Sul", Code: "MS"})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUnit(context.Background(), created.ID))

	// The record survives for historical references; it only drops out of the
	// active listing.
	active, err := svc.ListUnits(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListUnits(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFleetLifecycle(t *testing.T) {
	repo := newMemFleetRepo()
	svc := NewService(repo)
	ctx := context.Background()

	unit, err := svc.CreateUnit(ctx, &CreateUnitRequest{Name: "Mina Leste", Code: "ML"})
	require.NoError(t, err)

	created, err := svc.CreateFleet(ctx, &CreateFleetRequest{
		Code: "CAM-010", Description: "Caminhao fora de estrada", UnitID: unit.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, unit.ID, created.UnitID)

	updated, err := svc.UpdateFleet(ctx, created.ID, &UpdateFleetRequest{
		Code: "CAM-010", Description: "Caminhao fora de estrada 90t",
	})
	require.NoError(t, err)
	assert.Equal(t, "Caminhao fora de estrada 90t", updated.Description)
	// The fleet never changes unit.
	assert.Equal(t, unit.ID, updated.UnitID)

	require.NoError(t, svc.DeactivateFleet(ctx, created.ID))
	_, err = svc.UpdateFleet(ctx, uuid.New(), &UpdateFleetRequest{Code: "X-1", Description: "Inexistente"})
	assert.ErrorIs(t, err, fleet.ErrFleetNotFound)
}

func TestStoppageTypeLifecycle(t *testing.T) {
	svc := NewService(newMemFleetRepo())
	ctx := context.Background()

	icon := "wrench"
	created, err := svc.CreateStoppageType(ctx, &CreateStoppageTypeRequest{Name: "Manutencao", Icon: &icon})
	require.NoError(t, err)
	require.NotNil(t, created.Icon)

	require.NoError(t, svc.DeactivateStoppageType(ctx, created.ID))

	active, err := svc.ListStoppageTypes(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}
