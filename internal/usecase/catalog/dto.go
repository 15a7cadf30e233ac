package catalog

import (
	"fleetops/internal/domain/fleet"

	"github.com/google/uuid"
)

// Request DTOs
type CreateUnitRequest struct {
	Name string `json:"nome" validate:"required,min=2,max=120"`
	Code string `json:"codigo" validate:"required,min=1,max=30"`
}

type UpdateUnitRequest struct {
	Name string `json:"nome" validate:"required,min=2,max=120"`
	Code string `json:"codigo" validate:"required,min=1,max=30"`
}

type CreateFleetRequest struct {
	Code        string    `json:"frota" validate:"required,min=1,max=30"`
	Description string    `json:"descricao" validate:"required,min=2,max=200"`
	Kind        string    `json:"tipo" validate:"omitempty,max=60"`
	UnitID      uuid.UUID `json:"unidade_id" validate:"required"`
}

type UpdateFleetRequest struct {
	Code        string `json:"frota" validate:"required,min=1,max=30"`
	Description string `json:"descricao" validate:"required,min=2,max=200"`
	Kind        string `json:"tipo" validate:"omitempty,max=60"`
}

type CreateStoppageTypeRequest struct {
	Name string  `json:"nome" validate:"required,min=2,max=120"`
	Icon *string `json:"icone" validate:"omitempty,max=120"`
}

type UpdateStoppageTypeRequest struct {
	Name string  `json:"nome" validate:"required,min=2,max=120"`
	Icon *string `json:"icone" validate:"omitempty,max=120"`
}

// Response DTOs
type UnitResponse struct {
	ID     uuid.UUID        `json:"id"`
	Name   string           `json:"nome"`
	Code   string           `json:"codigo"`
	Active bool             `json:"ativo"`
	Fleets []*FleetResponse `json:"frotas,omitempty"`
}

type FleetResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"frota"`
	Description string    `json:"descricao"`
	Kind        string    `json:"tipo,omitempty"`
	UnitID      uuid.UUID `json:"unidade_id"`
	Active      bool      `json:"ativo"`
}

type StoppageTypeResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"nome"`
	Icon   *string   `json:"icone,omitempty"`
	Active bool      `json:"ativo"`
}

func toUnitResponse(u *fleet.Unit) *UnitResponse {
	resp := &UnitResponse{
		ID:     u.ID,
		Name:   u.Name,
		Code:   u.Code,
		Active: u.Active,
	}
	for _, f := range u.Fleets {
		resp.Fleets = append(resp.Fleets, toFleetResponse(f))
	}
	return resp
}

func toFleetResponse(f *fleet.Fleet) *FleetResponse {
	return &FleetResponse{
		ID:          f.ID,
		Code:        f.Code,
		Description: f.Description,
		Kind:        f.Kind,
		UnitID:      f.UnitID,
		Active:      f.Active,
	}
}

func toStoppageTypeResponse(st *fleet.StoppageType) *StoppageTypeResponse {
	return &StoppageTypeResponse{
		ID:     st.ID,
		Name:   st.Name,
		Icon:   st.Icon,
		Active: st.Active,
	}
}
