package scenario

import (
	"time"

	domainScenario "fleetops/internal/domain/scenario"

	"github.com/google/uuid"
)

// Source identifies which storage tier served a config.
type Source string

const (
	SourcePrimary Source = "primary"
	SourceReplica Source = "replica"
	SourceDefault Source = "default"
)

// Request DTOs
type SaveConfigRequest struct {
	ColumnOrder    []uuid.UUID          `json:"column_order" validate:"required,min=1"`
	ColumnColors   map[uuid.UUID]string `json:"column_colors" validate:"required"`
	MinimizedUnits []uuid.UUID          `json:"minimized_columns"`
	SelectedFleets []uuid.UUID          `json:"selected_frotas"`
}

// Response DTOs
type ConfigResponse struct {
	UserID         uuid.UUID            `json:"user_id"`
	ColumnOrder    []uuid.UUID          `json:"column_order"`
	ColumnColors   map[uuid.UUID]string `json:"column_colors"`
	MinimizedUnits []uuid.UUID          `json:"minimized_columns"`
	SelectedFleets []uuid.UUID          `json:"selected_frotas"`
	UpdatedAt      *time.Time           `json:"updated_at,omitempty"`

	// Source reports the tier that served the config; Degraded is set when
	// the primary store was unreachable and the caller should surface a
	// non-blocking notification.
	Source   Source `json:"source"`
	Degraded bool   `json:"degraded,omitempty"`
}

func toConfigResponse(cfg *domainScenario.Config, source Source, degraded bool) *ConfigResponse {
	resp := &ConfigResponse{
		UserID:         cfg.UserID,
		ColumnOrder:    cfg.ColumnOrder,
		ColumnColors:   cfg.ColumnColors,
		MinimizedUnits: cfg.MinimizedUnits,
		SelectedFleets: cfg.SelectedFleets,
		Source:         source,
		Degraded:       degraded,
	}
	if !cfg.UpdatedAt.IsZero() {
		t := cfg.UpdatedAt
		resp.UpdatedAt = &t
	}
	if resp.ColumnColors == nil {
		resp.ColumnColors = map[uuid.UUID]string{}
	}
	if resp.MinimizedUnits == nil {
		resp.MinimizedUnits = []uuid.UUID{}
	}
	if resp.SelectedFleets == nil {
		resp.SelectedFleets = []uuid.UUID{}
	}
	return resp
}
