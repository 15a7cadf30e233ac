package models

import (
	"time"

	"github.com/google/uuid"
)

// UnitModel represents the database model for units ("unidades")
type UnitModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name   string    `gorm:"column:nome;type:text;not null"`
	Code   string    `gorm:"column:codigo;type:text;not null;uniqueIndex"`
	Active bool      `gorm:"column:ativo;not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Fleets []FleetModel `gorm:"foreignKey:UnitID"`
}

func (UnitModel) TableName() string {
	return "unidades"
}

// FleetModel represents the database model for fleets ("frotas")
type FleetModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code        string    `gorm:"column:frota;type:text;not null"`
	Description string    `gorm:"column:descricao;type:text;not null"`
	Kind        string    `gorm:"column:tipo;type:text"`
	UnitID      uuid.UUID `gorm:"column:unidade_id;type:uuid;not null;index"`
	Active      bool      `gorm:"column:ativo;not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Unit *UnitModel `gorm:"foreignKey:UnitID"`
}

func (FleetModel) TableName() string {
	return "frotas"
}

// StoppageTypeModel represents the database model for the stoppage reason
// taxonomy ("tipos_parada")
type StoppageTypeModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name   string    `gorm:"column:nome;type:text;not null;uniqueIndex"`
	Icon   *string   `gorm:"column:icone;type:text"`
	Active bool      `gorm:"column:ativo;not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StoppageTypeModel) TableName() string {
	return "tipos_parada"
}
