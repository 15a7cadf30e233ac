package scenario

import (
	"time"

	"github.com/google/uuid"
)

// Config is one user's saved dashboard personalization: unit column ordering,
// per-unit color tokens, minimized columns and the selected fleet subset.
// Exactly one row exists per user; saves upsert by user ID.
type Config struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	ColumnOrder    []uuid.UUID
	ColumnColors   map[uuid.UUID]string
	MinimizedUnits []uuid.UUID
	SelectedFleets []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy so callers can mutate without aliasing the cached
// value.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{
		ID:        c.ID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	out.ColumnOrder = append([]uuid.UUID(nil), c.ColumnOrder...)
	out.MinimizedUnits = append([]uuid.UUID(nil), c.MinimizedUnits...)
	out.SelectedFleets = append([]uuid.UUID(nil), c.SelectedFleets...)
	if c.ColumnColors != nil {
		out.ColumnColors = make(map[uuid.UUID]string, len(c.ColumnColors))
		for k, v := range c.ColumnColors {
			out.ColumnColors[k] = v
		}
	}
	return out
}
