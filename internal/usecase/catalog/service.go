package catalog

import (
	"context"

	"fleetops/internal/domain/fleet"
	"fleetops/internal/logger"
	appErrors "fleetops/pkg/errors"
	"fleetops/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the administrative registry for units, fleets and the
// stoppage reason taxonomy. Records referenced by stoppages are only ever
// soft-deactivated.
type Service struct {
	fleetRepo fleet.Repository
}

func NewService(fleetRepo fleet.Repository) *Service {
	return &Service{fleetRepo: fleetRepo}
}

func (s *Service) CreateUnit(ctx context.Context, req *CreateUnitRequest) (*UnitResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	unit := &fleet.Unit{
		Name: req.Name,
		Code: req.Code,
	}
	if err := s.fleetRepo.CreateUnit(ctx, unit); err != nil {
		return nil, err
	}

	logger.Info("Unit created",
		zap.String("unit_id", unit.ID.String()),
		zap.String("code", unit.Code),
	)

	return toUnitResponse(unit), nil
}

func (s *Service) UpdateUnit(ctx context.Context, unitID uuid.UUID, req *UpdateUnitRequest) (*UnitResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	unit := &fleet.Unit{
		ID:   unitID,
		Name: req.Name,
		Code: req.Code,
	}
	if err := s.fleetRepo.UpdateUnit(ctx, unit); err != nil {
		return nil, err
	}

	return toUnitResponse(unit), nil
}

func (s *Service) DeactivateUnit(ctx context.Context, unitID uuid.UUID) error {
	if err := s.fleetRepo.DeactivateUnit(ctx, unitID); err != nil {
		return err
	}

	logger.Info("Unit deactivated", zap.String("unit_id", unitID.String()))
	return nil
}

func (s *Service) ListUnits(ctx context.Context, activeOnly bool) ([]*UnitResponse, error) {
	units, err := s.fleetRepo.ListUnits(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]*UnitResponse, len(units))
	for i, u := range units {
		out[i] = toUnitResponse(u)
	}
	return out, nil
}

func (s *Service) CreateFleet(ctx context.Context, req *CreateFleetRequest) (*FleetResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	f := &fleet.Fleet{
		Code:        req.Code,
		Description: req.Description,
		Kind:        req.Kind,
		UnitID:      req.UnitID,
	}
	if err := s.fleetRepo.CreateFleet(ctx, f); err != nil {
		return nil, err
	}

	logger.Info("Fleet created",
		zap.String("fleet_id", f.ID.String()),
		zap.String("code", f.Code),
		zap.String("unit_id", f.UnitID.String()),
	)

	return toFleetResponse(f), nil
}

func (s *Service) UpdateFleet(ctx context.Context, fleetID uuid.UUID, req *UpdateFleetRequest) (*FleetResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	existing, err := s.fleetRepo.GetFleet(ctx, fleetID)
	if err != nil {
		return nil, err
	}

	existing.Code = req.Code
	existing.Description = req.Description
	existing.Kind = req.Kind
	if err := s.fleetRepo.UpdateFleet(ctx, existing); err != nil {
		return nil, err
	}

	return toFleetResponse(existing), nil
}

func (s *Service) DeactivateFleet(ctx context.Context, fleetID uuid.UUID) error {
	if err := s.fleetRepo.DeactivateFleet(ctx, fleetID); err != nil {
		return err
	}

	logger.Info("Fleet deactivated", zap.String("fleet_id", fleetID.String()))
	return nil
}

func (s *Service) CreateStoppageType(ctx context.Context, req *CreateStoppageTypeRequest) (*StoppageTypeResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	st := &fleet.StoppageType{
		Name: req.Name,
		Icon: req.Icon,
	}
	if err := s.fleetRepo.CreateStoppageType(ctx, st); err != nil {
		return nil, err
	}

	logger.Info("Stoppage type created",
		zap.String("type_id", st.ID.String()),
		zap.String("name", st.Name),
	)

	return toStoppageTypeResponse(st), nil
}

func (s *Service) UpdateStoppageType(ctx context.Context, typeID uuid.UUID, req *UpdateStoppageTypeRequest) (*StoppageTypeResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	st := &fleet.StoppageType{
		ID:   typeID,
		Name: req.Name,
		Icon: req.Icon,
	}
	if err := s.fleetRepo.UpdateStoppageType(ctx, st); err != nil {
		return nil, err
	}

	return toStoppageTypeResponse(st), nil
}

func (s *Service) DeactivateStoppageType(ctx context.Context, typeID uuid.UUID) error {
	if err := s.fleetRepo.DeactivateStoppageType(ctx, typeID); err != nil {
		return err
	}

	logger.Info("Stoppage type deactivated", zap.String("type_id", typeID.String()))
	return nil
}

func (s *Service) ListStoppageTypes(ctx context.Context, activeOnly bool) ([]*StoppageTypeResponse, error) {
	types, err := s.fleetRepo.ListStoppageTypes(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]*StoppageTypeResponse, len(types))
	for i, st := range types {
		out[i] = toStoppageTypeResponse(st)
	}
	return out, nil
}
