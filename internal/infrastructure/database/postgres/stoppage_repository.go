package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain/stoppage"
	"fleetops/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoppageRepository struct {
	db *DB
}

func NewStoppageRepository(db *DB) *StoppageRepository {
	return &StoppageRepository{db: db}
}

// Open inserts a new open stoppage for the fleet. The existence check runs
// inside a transaction and the partial unique index on (frota_id) WHERE fim
// IS NULL backstops the race between two concurrent registrations.
func (r *StoppageRepository) Open(ctx context.Context, s *stoppage.Stoppage) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var openCount int64
		if err := tx.Model(&models.StoppageModel{}).
			Where("frota_id = ? AND fim IS NULL", s.FleetID).
			Count(&openCount).Error; err != nil {
			return fmt.Errorf("failed to check open stoppage: %w", err)
		}
		if openCount > 0 {
			return stoppage.ErrAlreadyOpen
		}

		dbModel := toStoppageModel(s)
		if err := tx.Create(dbModel).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				return stoppage.ErrAlreadyOpen
			}
			return fmt.Errorf("failed to create stoppage: %w", err)
		}

		s.ID = dbModel.ID
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// Close ends the fleet's open stoppage. The update is conditional on fim IS
// NULL, so closing an already-closed stoppage affects zero rows and never
// rewrites an existing end timestamp.
func (r *StoppageRepository) Close(ctx context.Context, fleetID uuid.UUID, endedAt time.Time) (*stoppage.Stoppage, error) {
	var closedID uuid.UUID

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dbModel models.StoppageModel
		err := tx.Where("frota_id = ? AND fim IS NULL", fleetID).
			Order("inicio DESC").
			First(&dbModel).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return stoppage.ErrNoOpenStoppage
		}
		if err != nil {
			return fmt.Errorf("failed to find open stoppage: %w", err)
		}

		result := tx.Model(&models.StoppageModel{}).
			Where("id = ? AND fim IS NULL", dbModel.ID).
			Updates(map[string]interface{}{
				"fim":        endedAt,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to close stoppage: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return stoppage.ErrNoOpenStoppage
		}

		closedID = dbModel.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, closedID)
}

func (r *StoppageRepository) GetOpenByFleet(ctx context.Context, fleetID uuid.UUID) (*stoppage.Stoppage, error) {
	var dbModel models.StoppageModel
	err := r.db.DB.WithContext(ctx).
		Preload("Type").
		Preload("Fleet").
		Where("frota_id = ? AND fim IS NULL", fleetID).
		Order("inicio DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, stoppage.ErrNoOpenStoppage
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open stoppage: %w", err)
	}

	return toStoppageEntity(&dbModel), nil
}

func (r *StoppageRepository) GetByID(ctx context.Context, id uuid.UUID) (*stoppage.Stoppage, error) {
	var dbModel models.StoppageModel
	err := r.db.DB.WithContext(ctx).
		Preload("Type").
		Preload("Fleet").
		Where("id = ?", id).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, stoppage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stoppage: %w", err)
	}

	return toStoppageEntity(&dbModel), nil
}

// ListForWindow fetches stoppages starting inside the window plus still-open
// stoppages started before the window end, keeping yesterday's open stoppage
// visible today.
func (r *StoppageRepository) ListForWindow(ctx context.Context, w stoppage.Window) ([]*stoppage.Stoppage, error) {
	var dbModels []models.StoppageModel

	err := r.db.DB.WithContext(ctx).
		Preload("Type").
		Preload("Fleet").
		Where("(inicio >= ? AND inicio < ?) OR (fim IS NULL AND inicio < ?)", w.Start, w.End, w.End).
		Order("inicio DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stoppages: %w", err)
	}

	stoppages := make([]*stoppage.Stoppage, len(dbModels))
	for i := range dbModels {
		stoppages[i] = toStoppageEntity(&dbModels[i])
	}

	return stoppages, nil
}

func (r *StoppageRepository) ListByFleetForWindow(ctx context.Context, fleetID uuid.UUID, w stoppage.Window) ([]*stoppage.Stoppage, error) {
	var dbModels []models.StoppageModel

	err := r.db.DB.WithContext(ctx).
		Preload("Type").
		Where("frota_id = ? AND inicio >= ? AND inicio < ?", fleetID, w.Start, w.End).
		Order("inicio DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list fleet stoppages: %w", err)
	}

	stoppages := make([]*stoppage.Stoppage, len(dbModels))
	for i := range dbModels {
		stoppages[i] = toStoppageEntity(&dbModels[i])
	}

	return stoppages, nil
}

// CountByFleetForWindow replaces the per-fleet count queries of the dashboard
// with a single grouped query.
func (r *StoppageRepository) CountByFleetForWindow(ctx context.Context, w stoppage.Window) (map[uuid.UUID]int, error) {
	var rows []struct {
		FleetID uuid.UUID `gorm:"column:frota_id"`
		Count   int
	}

	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT frota_id, COUNT(*) as count
		FROM paradas
		WHERE inicio >= ? AND inicio < ?
		GROUP BY frota_id
	`, w.Start, w.End).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count stoppages: %w", err)
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.FleetID] = row.Count
	}

	return counts, nil
}

func (r *StoppageRepository) Update(ctx context.Context, id uuid.UUID, patch *stoppage.Patch) (*stoppage.Stoppage, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if patch.TypeID != nil {
		updates["tipo_parada_id"] = *patch.TypeID
	}
	if patch.Reason != nil {
		updates["motivo"] = *patch.Reason
	}
	if patch.ExpectedMinutes != nil {
		updates["previsao_minutos"] = *patch.ExpectedMinutes
	}
	if patch.Start != nil {
		updates["inicio"] = *patch.Start
	}
	if patch.ClearEnd {
		updates["fim"] = gorm.Expr("NULL")
	} else if patch.End != nil {
		updates["fim"] = *patch.End
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.StoppageModel{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "duplicate key") {
			// Re-opening collided with another open stoppage for the fleet.
			return nil, stoppage.ErrAlreadyOpen
		}
		return nil, fmt.Errorf("failed to update stoppage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, stoppage.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Helper functions to convert between domain entities and database models
func toStoppageModel(s *stoppage.Stoppage) *models.StoppageModel {
	return &models.StoppageModel{
		ID:              s.ID,
		FleetID:         s.FleetID,
		TypeID:          s.TypeID,
		Reason:          s.Reason,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		ExpectedMinutes: s.ExpectedMinutes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toStoppageEntity(m *models.StoppageModel) *stoppage.Stoppage {
	s := &stoppage.Stoppage{
		ID:              m.ID,
		FleetID:         m.FleetID,
		TypeID:          m.TypeID,
		Reason:          m.Reason,
		StartedAt:       m.StartedAt,
		EndedAt:         m.EndedAt,
		ExpectedMinutes: m.ExpectedMinutes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Type != nil {
		s.Type = toStoppageTypeEntity(m.Type)
	}
	if m.Fleet != nil {
		s.Fleet = toFleetEntity(m.Fleet)
	}
	return s
}
