package stoppage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Window is a half-open time interval [Start, End) in the operational
// timezone.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DayWindow computes the window covering the calendar day of date in loc.
func DayWindow(date time.Time, loc *time.Location) Window {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Repository defines persistence operations for stoppage records. Open and
// Close are conditional writes so the at-most-one-open invariant holds at the
// store, not just in callers.
type Repository interface {
	// Open inserts a new open stoppage unless the fleet already has one, in
	// which case it returns ErrAlreadyOpen.
	Open(ctx context.Context, s *Stoppage) error
	// Close sets the end timestamp of the fleet's open stoppage. When no open
	// stoppage exists it returns ErrNoOpenStoppage; the closed record is
	// returned otherwise.
	Close(ctx context.Context, fleetID uuid.UUID, endedAt time.Time) (*Stoppage, error)
	// GetOpenByFleet returns the fleet's open stoppage or ErrNoOpenStoppage.
	GetOpenByFleet(ctx context.Context, fleetID uuid.UUID) (*Stoppage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Stoppage, error)
	// ListForWindow returns stoppages starting inside the window plus open
	// stoppages started before the window end, newest first.
	ListForWindow(ctx context.Context, w Window) ([]*Stoppage, error)
	// ListByFleetForWindow returns one fleet's stoppages starting inside the
	// window, newest first.
	ListByFleetForWindow(ctx context.Context, fleetID uuid.UUID, w Window) ([]*Stoppage, error)
	// CountByFleetForWindow counts stoppages started inside the window,
	// grouped by fleet.
	CountByFleetForWindow(ctx context.Context, w Window) (map[uuid.UUID]int, error)
	// Update applies a historical correction to an existing record.
	Update(ctx context.Context, id uuid.UUID, patch *Patch) (*Stoppage, error)
}
