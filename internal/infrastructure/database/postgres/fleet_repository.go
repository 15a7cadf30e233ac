package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain/fleet"
	"fleetops/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FleetRepository struct {
	db *DB
}

func NewFleetRepository(db *DB) *FleetRepository {
	return &FleetRepository{db: db}
}

func (r *FleetRepository) CreateUnit(ctx context.Context, u *fleet.Unit) error {
	u.ID = uuid.New()
	u.Active = true
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()

	dbModel := toUnitModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fleet.ErrCodeAlreadyExists
		}
		return fmt.Errorf("failed to create unit: %w", err)
	}

	u.ID = dbModel.ID
	return nil
}

func (r *FleetRepository) UpdateUnit(ctx context.Context, u *fleet.Unit) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.UnitModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"nome":       u.Name,
			"codigo":     u.Code,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "duplicate key") {
			return fleet.ErrCodeAlreadyExists
		}
		return fmt.Errorf("failed to update unit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fleet.ErrUnitNotFound
	}

	return nil
}

func (r *FleetRepository) DeactivateUnit(ctx context.Context, unitID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.UnitModel{}).
		Where("id = ? AND ativo = true", unitID).
		Updates(map[string]interface{}{
			"ativo":      false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate unit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fleet.ErrUnitNotFound
	}

	return nil
}

func (r *FleetRepository) ListUnits(ctx context.Context, activeOnly bool) ([]*fleet.Unit, error) {
	var dbModels []models.UnitModel

	db := r.db.DB.WithContext(ctx).
		Preload("Fleets", func(db *gorm.DB) *gorm.DB {
			return db.Order("frota ASC")
		}).
		Order("nome ASC")
	if activeOnly {
		db = db.Where("ativo = true")
	}

	if err := db.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	units := make([]*fleet.Unit, len(dbModels))
	for i := range dbModels {
		units[i] = toUnitEntity(&dbModels[i])
	}

	return units, nil
}

func (r *FleetRepository) CreateFleet(ctx context.Context, f *fleet.Fleet) error {
	f.ID = uuid.New()
	f.Active = true
	f.CreatedAt = time.Now()
	f.UpdatedAt = time.Now()

	dbModel := toFleetModel(f)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fleet.ErrCodeAlreadyExists
		}
		return fmt.Errorf("failed to create fleet: %w", err)
	}

	f.ID = dbModel.ID
	return nil
}

func (r *FleetRepository) UpdateFleet(ctx context.Context, f *fleet.Fleet) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.FleetModel{}).
		Where("id = ?", f.ID).
		Updates(map[string]interface{}{
			"frota":      f.Code,
			"descricao":  f.Description,
			"tipo":       f.Kind,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update fleet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fleet.ErrFleetNotFound
	}

	return nil
}

func (r *FleetRepository) DeactivateFleet(ctx context.Context, fleetID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.FleetModel{}).
		Where("id = ? AND ativo = true", fleetID).
		Updates(map[string]interface{}{
			"ativo":      false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate fleet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fleet.ErrFleetNotFound
	}

	return nil
}

func (r *FleetRepository) GetFleet(ctx context.Context, fleetID uuid.UUID) (*fleet.Fleet, error) {
	var dbModel models.FleetModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", fleetID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fleet.ErrFleetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fleet: %w", err)
	}

	return toFleetEntity(&dbModel), nil
}

func (r *FleetRepository) CreateStoppageType(ctx context.Context, st *fleet.StoppageType) error {
	st.ID = uuid.New()
	st.Active = true
	st.CreatedAt = time.Now()
	st.UpdatedAt = time.Now()

	dbModel := toStoppageTypeModel(st)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fleet.ErrCodeAlreadyExists
		}
		return fmt.Errorf("failed to create stoppage type: %w", err)
	}

	st.ID = dbModel.ID
	return nil
}

func (r *FleetRepository) UpdateStoppageType(ctx context.Context, st *fleet.StoppageType) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.StoppageTypeModel{}).
		Where("id = ?", st.ID).
		Updates(map[string]interface{}{
			"nome":       st.Name,
			"icone":      st.Icon,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "duplicate key") {
			return fleet.ErrCodeAlreadyExists
		}
		return fmt.Errorf("failed to update stoppage type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fleet.ErrStoppageTypeNotFound
	}

	return nil
}

func (r *FleetRepository) DeactivateStoppageType(ctx context.Context, typeID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.StoppageTypeModel{}).
		Where("id = ? AND ativo = true", typeID).
		Updates(map[string]interface{}{
			"ativo":      false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate stoppage type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fleet.ErrStoppageTypeNotFound
	}

	return nil
}

func (r *FleetRepository) ListStoppageTypes(ctx context.Context, activeOnly bool) ([]*fleet.StoppageType, error) {
	var dbModels []models.StoppageTypeModel

	db := r.db.DB.WithContext(ctx).Order("nome ASC")
	if activeOnly {
		db = db.Where("ativo = true")
	}

	if err := db.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list stoppage types: %w", err)
	}

	types := make([]*fleet.StoppageType, len(dbModels))
	for i := range dbModels {
		types[i] = toStoppageTypeEntity(&dbModels[i])
	}

	return types, nil
}

// Helper functions to convert between domain entities and database models
func toUnitModel(u *fleet.Unit) *models.UnitModel {
	return &models.UnitModel{
		ID:        u.ID,
		Name:      u.Name,
		Code:      u.Code,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUnitEntity(m *models.UnitModel) *fleet.Unit {
	u := &fleet.Unit{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for i := range m.Fleets {
		u.Fleets = append(u.Fleets, toFleetEntity(&m.Fleets[i]))
	}
	return u
}

func toFleetModel(f *fleet.Fleet) *models.FleetModel {
	return &models.FleetModel{
		ID:          f.ID,
		Code:        f.Code,
		Description: f.Description,
		Kind:        f.Kind,
		UnitID:      f.UnitID,
		Active:      f.Active,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func toFleetEntity(m *models.FleetModel) *fleet.Fleet {
	return &fleet.Fleet{
		ID:          m.ID,
		Code:        m.Code,
		Description: m.Description,
		Kind:        m.Kind,
		UnitID:      m.UnitID,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toStoppageTypeModel(st *fleet.StoppageType) *models.StoppageTypeModel {
	return &models.StoppageTypeModel{
		ID:        st.ID,
		Name:      st.Name,
		Icon:      st.Icon,
		Active:    st.Active,
		CreatedAt: st.CreatedAt,
		UpdatedAt: st.UpdatedAt,
	}
}

func toStoppageTypeEntity(m *models.StoppageTypeModel) *fleet.StoppageType {
	return &fleet.StoppageType{
		ID:        m.ID,
		Name:      m.Name,
		Icon:      m.Icon,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
