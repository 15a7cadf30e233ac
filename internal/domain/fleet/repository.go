package fleet

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for the unit/fleet hierarchy and
// the stoppage type taxonomy.
type Repository interface {
	CreateUnit(ctx context.Context, unit *Unit) error
	UpdateUnit(ctx context.Context, unit *Unit) error
	DeactivateUnit(ctx context.Context, unitID uuid.UUID) error
	// ListUnits returns units ordered by name with their fleets attached.
	ListUnits(ctx context.Context, activeOnly bool) ([]*Unit, error)

	CreateFleet(ctx context.Context, f *Fleet) error
	UpdateFleet(ctx context.Context, f *Fleet) error
	DeactivateFleet(ctx context.Context, fleetID uuid.UUID) error
	GetFleet(ctx context.Context, fleetID uuid.UUID) (*Fleet, error)

	CreateStoppageType(ctx context.Context, st *StoppageType) error
	UpdateStoppageType(ctx context.Context, st *StoppageType) error
	DeactivateStoppageType(ctx context.Context, typeID uuid.UUID) error
	ListStoppageTypes(ctx context.Context, activeOnly bool) ([]*StoppageType, error)
}
