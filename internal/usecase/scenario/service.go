package scenario

import (
	"context"
	"errors"

	"fleetops/internal/domain/fleet"
	domainScenario "fleetops/internal/domain/scenario"
	"fleetops/internal/logger"
	appErrors "fleetops/pkg/errors"
	"fleetops/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service persists one user's dashboard personalization over a tiered store:
// primary (Postgres) first, replica (Redis) as fail-soft fallback, generated
// default last. Persistence failures degrade, they never propagate to the UI.
type Service struct {
	primary   domainScenario.Repository
	replica   domainScenario.ReplicaStore
	fleetRepo fleet.Repository
	palette   []string
}

func NewService(
	primary domainScenario.Repository,
	replica domainScenario.ReplicaStore,
	fleetRepo fleet.Repository,
) *Service {
	return &Service{
		primary:   primary,
		replica:   replica,
		fleetRepo: fleetRepo,
		palette:   defaultPalette,
	}
}

// Load resolves the user's config through the tier chain. Read order:
// primary, then replica on primary failure, then generated default. A missing
// row is the normal new-user case and goes straight to the default; it is not
// a failure.
func (s *Service) Load(ctx context.Context, userID uuid.UUID) *ConfigResponse {
	cfg, err := s.primary.GetByUser(ctx, userID)
	if err == nil {
		return toConfigResponse(cfg, SourcePrimary, false)
	}

	if errors.Is(err, domainScenario.ErrNotFound) {
		return toConfigResponse(s.generateDefault(ctx, userID), SourceDefault, false)
	}

	logger.Warn("Scenario primary read failed, falling back to replica",
		zap.String("user_id", userID.String()),
		zap.Error(err),
	)

	if s.replica != nil {
		replicated, replicaErr := s.replica.Get(ctx, userID)
		if replicaErr == nil {
			return toConfigResponse(replicated, SourceReplica, true)
		}
		if !errors.Is(replicaErr, domainScenario.ErrReplicaMiss) {
			logger.Warn("Scenario replica read failed",
				zap.String("user_id", userID.String()),
				zap.Error(replicaErr),
			)
		}
	}

	return toConfigResponse(s.generateDefault(ctx, userID), SourceDefault, true)
}

// Save upserts the user's single config row. The replica is written
// regardless of the primary's outcome, so a primary failure still leaves the
// session recoverable; the caller sees it as a degraded save, not an error.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, req *SaveConfigRequest) (*ConfigResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	cfg := &domainScenario.Config{
		UserID:         userID,
		ColumnOrder:    req.ColumnOrder,
		ColumnColors:   req.ColumnColors,
		MinimizedUnits: req.MinimizedUnits,
		SelectedFleets: req.SelectedFleets,
	}

	primaryErr := s.primary.Upsert(ctx, cfg)

	replicated := false
	if s.replica != nil {
		if err := s.replica.Put(ctx, cfg.Clone()); err != nil {
			logger.Warn("Scenario replica write failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		} else {
			replicated = true
		}
	}

	if primaryErr != nil {
		logger.Warn("Scenario primary write failed",
			zap.String("user_id", userID.String()),
			zap.Bool("replicated", replicated),
			zap.Error(primaryErr),
		)
		// Report the tier that actually holds the config. When neither tier
		// took the write, nothing durable exists and the caller must not be
		// told otherwise.
		if replicated {
			return toConfigResponse(cfg, SourceReplica, true), nil
		}
		return toConfigResponse(cfg, SourceDefault, true), nil
	}

	logger.Info("Scenario config saved",
		zap.String("user_id", userID.String()),
		zap.Int("columns", len(cfg.ColumnOrder)),
		zap.Int("selected_fleets", len(cfg.SelectedFleets)),
	)

	return toConfigResponse(cfg, SourcePrimary, false), nil
}

// generateDefault builds the first-time config: units in natural load order,
// palette cycled by position, nothing minimized, every fleet selected.
func (s *Service) generateDefault(ctx context.Context, userID uuid.UUID) *domainScenario.Config {
	cfg := &domainScenario.Config{
		UserID:         userID,
		ColumnOrder:    []uuid.UUID{},
		ColumnColors:   map[uuid.UUID]string{},
		MinimizedUnits: []uuid.UUID{},
		SelectedFleets: []uuid.UUID{},
	}

	units, err := s.fleetRepo.ListUnits(ctx, true)
	if err != nil {
		// Still serve an empty layout rather than blocking the dashboard.
		logger.Warn("Hierarchy fetch for default scenario failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return cfg
	}

	cfg.ColumnColors = assignColors(units, s.palette)
	for _, u := range units {
		cfg.ColumnOrder = append(cfg.ColumnOrder, u.ID)
		for _, f := range u.Fleets {
			if f.Active {
				cfg.SelectedFleets = append(cfg.SelectedFleets, f.ID)
			}
		}
	}

	return cfg
}
