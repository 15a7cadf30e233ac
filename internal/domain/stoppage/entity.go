package stoppage

import (
	"time"

	"fleetops/internal/domain/fleet"

	"github.com/google/uuid"
)

// FleetState is the derived operational state of a fleet for a given date.
type FleetState string

const (
	StateOperating FleetState = "operando"
	StateStopped   FleetState = "parado"
)

// Stoppage is a time interval during which a fleet is not operating. A nil
// EndedAt means the stoppage is still open; at most one open stoppage may
// exist per fleet at any time.
type Stoppage struct {
	ID              uuid.UUID
	FleetID         uuid.UUID
	TypeID          uuid.UUID
	Reason          string
	StartedAt       time.Time
	EndedAt         *time.Time
	ExpectedMinutes *int

	// Expanded via join
	Type  *fleet.StoppageType
	Fleet *fleet.Fleet

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the stoppage has no end timestamp yet.
func (s *Stoppage) Open() bool {
	return s.EndedAt == nil
}

// Duration returns the elapsed stoppage time. Open stoppages are measured
// against the supplied reference instant.
func (s *Stoppage) Duration(now time.Time) time.Duration {
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	return end.Sub(s.StartedAt).Truncate(time.Second)
}

// FleetStatus is the derived, never-persisted snapshot entry for one fleet on
// one date.
type FleetStatus struct {
	Fleet           *fleet.Fleet
	ActiveStoppage  *Stoppage
	HistoricalCount int
}

// State derives the date-scoped operational state.
func (fs *FleetStatus) State() FleetState {
	if fs.ActiveStoppage != nil {
		return StateStopped
	}
	return StateOperating
}

// Snapshot maps fleet IDs to their status for the snapshot's date. A refresh
// always replaces the whole snapshot, never merges into it.
type Snapshot struct {
	Date     time.Time
	Statuses map[uuid.UUID]*FleetStatus
	TakenAt  time.Time
}

// Patch carries a full-field historical correction, including re-opening
// (End set to nil through Clear) or re-closing a record.
type Patch struct {
	TypeID          *uuid.UUID
	Reason          *string
	ExpectedMinutes *int
	Start           *time.Time
	End             *time.Time
	ClearEnd        bool
}
