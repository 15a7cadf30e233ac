package fleet

import (
	"time"

	"github.com/google/uuid"
)

// Unit represents a physical or organizational site owning a set of fleets.
// Units are soft-deactivated once stoppages reference them, never deleted.
type Unit struct {
	ID     uuid.UUID
	Name   string
	Code   string
	Active bool

	Fleets []*Fleet

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fleet represents a tracked vehicle or equipment item. A fleet belongs to
// exactly one unit for its lifetime.
type Fleet struct {
	ID          uuid.UUID
	Code        string
	Description string
	Kind        string
	UnitID      uuid.UUID
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoppageType is a reason taxonomy entry (maintenance, no operator, ...).
// Types are only deactivated because historical stoppages reference them.
type StoppageType struct {
	ID     uuid.UUID
	Name   string
	Icon   *string
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
