package tracker

import (
	"time"

	"fleetops/internal/domain/fleet"
	"fleetops/internal/domain/stoppage"

	"github.com/google/uuid"
)

// Request DTOs
type RegisterStoppageRequest struct {
	FleetID         uuid.UUID `json:"frota_id" validate:"required"`
	TypeID          uuid.UUID `json:"tipo_parada_id" validate:"required"`
	Reason          string    `json:"motivo" validate:"required,min=3,max=500"`
	ExpectedMinutes *int      `json:"previsao_minutos" validate:"omitempty,min=1,max=1440"`
}

type EditStoppageRequest struct {
	TypeID          *uuid.UUID `json:"tipo_parada_id" validate:"omitempty"`
	Reason          *string    `json:"motivo" validate:"omitempty,min=3,max=500"`
	ExpectedMinutes *int       `json:"previsao_minutos" validate:"omitempty,min=1,max=1440"`
	StartedAt       *time.Time `json:"inicio" validate:"omitempty"`
	EndedAt         *time.Time `json:"fim" validate:"omitempty"`
	// Reopen clears the end timestamp, turning the record back into the
	// fleet's open stoppage.
	Reopen bool `json:"reabrir"`
}

// Response DTOs
type StoppageTypeInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nome"`
	Icon *string   `json:"icone,omitempty"`
}

type StoppageResponse struct {
	ID              uuid.UUID         `json:"id"`
	FleetID         uuid.UUID         `json:"frota_id"`
	TypeID          uuid.UUID         `json:"tipo_parada_id"`
	Type            *StoppageTypeInfo `json:"tipo,omitempty"`
	Reason          string            `json:"motivo"`
	StartedAt       time.Time         `json:"inicio"`
	EndedAt         *time.Time        `json:"fim,omitempty"`
	ExpectedMinutes *int              `json:"previsao_minutos,omitempty"`
	DurationSeconds int64             `json:"duracao_segundos"`
}

type FleetStatusResponse struct {
	FleetID         uuid.UUID           `json:"frota_id"`
	FleetCode       string              `json:"frota"`
	Description     string              `json:"descricao"`
	UnitID          uuid.UUID           `json:"unidade_id"`
	State           stoppage.FleetState `json:"estado"`
	ActiveStoppage  *StoppageResponse   `json:"parada_atual,omitempty"`
	HistoricalCount int                 `json:"historico_count"`
}

type SnapshotResponse struct {
	Date    string                             `json:"data"`
	TakenAt time.Time                          `json:"gerado_em"`
	Fleets  map[uuid.UUID]*FleetStatusResponse `json:"frotas"`
}

type UnitInfo struct {
	ID     uuid.UUID    `json:"id"`
	Name   string       `json:"nome"`
	Code   string       `json:"codigo"`
	Fleets []*FleetInfo `json:"frotas"`
}

type FleetInfo struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"frota"`
	Description string    `json:"descricao"`
	Kind        string    `json:"tipo,omitempty"`
	UnitID      uuid.UUID `json:"unidade_id"`
}

func ToStoppageResponse(s *stoppage.Stoppage, now time.Time) *StoppageResponse {
	if s == nil {
		return nil
	}
	resp := &StoppageResponse{
		ID:              s.ID,
		FleetID:         s.FleetID,
		TypeID:          s.TypeID,
		Reason:          s.Reason,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		ExpectedMinutes: s.ExpectedMinutes,
		DurationSeconds: int64(s.Duration(now).Seconds()),
	}
	if s.Type != nil {
		resp.Type = &StoppageTypeInfo{
			ID:   s.Type.ID,
			Name: s.Type.Name,
			Icon: s.Type.Icon,
		}
	}
	return resp
}

func ToSnapshotResponse(snap *stoppage.Snapshot, now time.Time) *SnapshotResponse {
	resp := &SnapshotResponse{
		Date:    snap.Date.Format("2006-01-02"),
		TakenAt: snap.TakenAt,
		Fleets:  make(map[uuid.UUID]*FleetStatusResponse, len(snap.Statuses)),
	}
	for id, fs := range snap.Statuses {
		resp.Fleets[id] = &FleetStatusResponse{
			FleetID:         fs.Fleet.ID,
			FleetCode:       fs.Fleet.Code,
			Description:     fs.Fleet.Description,
			UnitID:          fs.Fleet.UnitID,
			State:           fs.State(),
			ActiveStoppage:  ToStoppageResponse(fs.ActiveStoppage, now),
			HistoricalCount: fs.HistoricalCount,
		}
	}
	return resp
}

func ToUnitInfos(units []*fleet.Unit) []*UnitInfo {
	out := make([]*UnitInfo, len(units))
	for i, u := range units {
		info := &UnitInfo{
			ID:     u.ID,
			Name:   u.Name,
			Code:   u.Code,
			Fleets: make([]*FleetInfo, 0, len(u.Fleets)),
		}
		for _, f := range u.Fleets {
			info.Fleets = append(info.Fleets, &FleetInfo{
				ID:          f.ID,
				Code:        f.Code,
				Description: f.Description,
				Kind:        f.Kind,
				UnitID:      f.UnitID,
			})
		}
		out[i] = info
	}
	return out
}
