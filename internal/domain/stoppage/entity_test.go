package stoppage

import (
	"testing"
	"time"

	"fleetops/internal/domain/fleet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testZone = time.FixedZone("BRT", -3*60*60)

func TestDayWindowIsHalfOpen(t *testing.T) {
	date := time.Date(2025, 3, 10, 15, 30, 0, 0, testZone)
	w := DayWindow(date, testZone)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, testZone), w.Start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, testZone), w.End)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(time.Date(2025, 3, 10, 23, 59, 59, 0, testZone)))
	assert.False(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
}

func TestDayWindowNormalizesToZone(t *testing.T) {
	// 01:00 UTC on March 11 is still March 10 at UTC-3.
	date := time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)
	w := DayWindow(date, testZone)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, testZone), w.Start)
}

func TestStoppageDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, testZone)
	now := start.Add(90 * time.Minute)

	open := &Stoppage{StartedAt: start}
	assert.True(t, open.Open())
	assert.Equal(t, 90*time.Minute, open.Duration(now))

	end := start.Add(45 * time.Minute)
	closed := &Stoppage{StartedAt: start, EndedAt: &end}
	assert.False(t, closed.Open())
	assert.Equal(t, 45*time.Minute, closed.Duration(now))
}

func TestFleetStatusState(t *testing.T) {
	f := &fleet.Fleet{ID: uuid.New(), Code: "CAM-001"}

	operating := &FleetStatus{Fleet: f}
	assert.Equal(t, StateOperating, operating.State())

	stopped := &FleetStatus{Fleet: f, ActiveStoppage: &Stoppage{FleetID: f.ID}}
	assert.Equal(t, StateStopped, stopped.State())
}
