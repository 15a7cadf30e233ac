package models

import (
	"time"

	"github.com/google/uuid"
)

// ScenarioConfigModel represents the database model for per-user dashboard
// personalization. One row per user, upserted on the user_id unique key.
type ScenarioConfigModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	ColumnOrder      []byte    `gorm:"column:column_order;type:jsonb;not null"`
	ColumnColors     []byte    `gorm:"column:column_colors;type:jsonb;not null"`
	MinimizedColumns []byte    `gorm:"column:minimized_columns;type:jsonb;not null"`
	SelectedFleets   []byte    `gorm:"column:selected_frotas;type:jsonb;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ScenarioConfigModel) TableName() string {
	return "scenario_configs"
}
