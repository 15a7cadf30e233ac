package models

import (
	"time"

	"github.com/google/uuid"
)

// StoppageModel represents the database model for stoppages ("paradas").
// The partial unique index keeps at most one open stoppage per fleet at the
// store level.
type StoppageModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FleetID         uuid.UUID  `gorm:"column:frota_id;type:uuid;not null;index;uniqueIndex:uniq_paradas_frota_aberta,where:fim IS NULL"`
	TypeID          uuid.UUID  `gorm:"column:tipo_parada_id;type:uuid;not null;index"`
	Reason          string     `gorm:"column:motivo;type:text;not null"`
	StartedAt       time.Time  `gorm:"column:inicio;type:timestamptz;not null;index"`
	EndedAt         *time.Time `gorm:"column:fim;type:timestamptz"`
	ExpectedMinutes *int       `gorm:"column:previsao_minutos;type:integer"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Fleet *FleetModel        `gorm:"foreignKey:FleetID"`
	Type  *StoppageTypeModel `gorm:"foreignKey:TypeID"`
}

func (StoppageModel) TableName() string {
	return "paradas"
}
