package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fleetops/internal/domain/scenario"
	"fleetops/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScenarioRepository struct {
	db *DB
}

func NewScenarioRepository(db *DB) *ScenarioRepository {
	return &ScenarioRepository{db: db}
}

func (r *ScenarioRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*scenario.Config, error) {
	var dbModel models.ScenarioConfigModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, scenario.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario config: %w", err)
	}

	return toScenarioEntity(&dbModel)
}

// Upsert keeps one row per user; the user_id unique constraint is the merge
// key and last write wins.
func (r *ScenarioRepository) Upsert(ctx context.Context, cfg *scenario.Config) error {
	now := time.Now()
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	dbModel, err := toScenarioModel(cfg)
	if err != nil {
		return err
	}

	err = r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"column_order", "column_colors", "minimized_columns", "selected_frotas", "updated_at",
			}),
		}).
		Create(dbModel).Error
	if err != nil {
		return fmt.Errorf("failed to upsert scenario config: %w", err)
	}

	return nil
}

func toScenarioModel(cfg *scenario.Config) (*models.ScenarioConfigModel, error) {
	order, err := json.Marshal(cfg.ColumnOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to encode column order: %w", err)
	}
	colors, err := json.Marshal(cfg.ColumnColors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode column colors: %w", err)
	}
	minimized, err := json.Marshal(cfg.MinimizedUnits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode minimized columns: %w", err)
	}
	selected, err := json.Marshal(cfg.SelectedFleets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode selected fleets: %w", err)
	}

	return &models.ScenarioConfigModel{
		ID:               cfg.ID,
		UserID:           cfg.UserID,
		ColumnOrder:      order,
		ColumnColors:     colors,
		MinimizedColumns: minimized,
		SelectedFleets:   selected,
		CreatedAt:        cfg.CreatedAt,
		UpdatedAt:        cfg.UpdatedAt,
	}, nil
}

func toScenarioEntity(m *models.ScenarioConfigModel) (*scenario.Config, error) {
	cfg := &scenario.Config{
		ID:        m.ID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if err := json.Unmarshal(m.ColumnOrder, &cfg.ColumnOrder); err != nil {
		return nil, fmt.Errorf("failed to decode column order: %w", err)
	}
	if err := json.Unmarshal(m.ColumnColors, &cfg.ColumnColors); err != nil {
		return nil, fmt.Errorf("failed to decode column colors: %w", err)
	}
	if err := json.Unmarshal(m.MinimizedColumns, &cfg.MinimizedUnits); err != nil {
		return nil, fmt.Errorf("failed to decode minimized columns: %w", err)
	}
	if err := json.Unmarshal(m.SelectedFleets, &cfg.SelectedFleets); err != nil {
		return nil, fmt.Errorf("failed to decode selected fleets: %w", err)
	}

	return cfg, nil
}
