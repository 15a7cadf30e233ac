package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"fleetops/internal/domain/fleet"
	"fleetops/internal/domain/stoppage"
	"fleetops/internal/events"
	"fleetops/internal/logger"
	appErrors "fleetops/pkg/errors"
	"fleetops/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service answers "what is the operational status of every fleet on date D"
// and drives the two per-fleet transitions: open a stoppage and close the
// active one. One instance exists per process; all dependencies are injected.
type Service struct {
	stoppageRepo stoppage.Repository
	fleetRepo    fleet.Repository
	publisher    events.Publisher
	loc          *time.Location

	now func() time.Time

	mu       sync.RWMutex
	units    []*fleet.Unit
	fleets   []*fleet.Fleet
	loaded   bool
	snapshot *stoppage.Snapshot

	// Monotonic refresh sequencing: a response is applied only if no newer
	// refresh has been applied since it was issued, so a slow early request
	// can never overwrite a later snapshot.
	issuedSeq  uint64
	appliedSeq uint64
}

func NewService(
	stoppageRepo stoppage.Repository,
	fleetRepo fleet.Repository,
	publisher events.Publisher,
	loc *time.Location,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		stoppageRepo: stoppageRepo,
		fleetRepo:    fleetRepo,
		publisher:    publisher,
		loc:          loc,
		now:          time.Now,
	}
}

// LoadUnitsAndFleets loads the unit/fleet hierarchy once per session. The
// hierarchy is read-mostly shared state; fleet changes require an explicit
// ReloadHierarchy, never automatic invalidation.
func (s *Service) LoadUnitsAndFleets(ctx context.Context) ([]*fleet.Unit, error) {
	s.mu.RLock()
	if s.loaded {
		units := s.units
		s.mu.RUnlock()
		return units, nil
	}
	s.mu.RUnlock()

	return s.loadHierarchy(ctx)
}

// ReloadHierarchy forces a fresh hierarchy fetch.
func (s *Service) ReloadHierarchy(ctx context.Context) ([]*fleet.Unit, error) {
	return s.loadHierarchy(ctx)
}

func (s *Service) loadHierarchy(ctx context.Context) ([]*fleet.Unit, error) {
	units, err := s.fleetRepo.ListUnits(ctx, true)
	if err != nil {
		return nil, err
	}

	fleets := make([]*fleet.Fleet, 0)
	for _, u := range units {
		for _, f := range u.Fleets {
			if f.Active {
				fleets = append(fleets, f)
			}
		}
	}

	s.mu.Lock()
	s.units = units
	s.fleets = fleets
	s.loaded = true
	s.mu.Unlock()

	logger.Info("Fleet hierarchy loaded",
		zap.Int("units", len(units)),
		zap.Int("fleets", len(fleets)),
	)

	return units, nil
}

// RefreshSnapshot recomputes the per-fleet status map for the given calendar
// date and replaces the whole snapshot. On fetch error the previous snapshot
// is left untouched and the error is returned without retry.
func (s *Service) RefreshSnapshot(ctx context.Context, date time.Time) (*stoppage.Snapshot, error) {
	if _, err := s.LoadUnitsAndFleets(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.issuedSeq++
	seq := s.issuedSeq
	fleets := s.fleets
	s.mu.Unlock()

	window := stoppage.DayWindow(date, s.loc)

	stoppages, err := s.stoppageRepo.ListForWindow(ctx, window)
	if err != nil {
		return nil, err
	}

	counts, err := s.stoppageRepo.CountByFleetForWindow(ctx, window)
	if err != nil {
		return nil, err
	}

	today := stoppage.DayWindow(s.now(), s.loc).Start.Equal(window.Start)

	byFleet := make(map[uuid.UUID][]*stoppage.Stoppage, len(fleets))
	for _, p := range stoppages {
		byFleet[p.FleetID] = append(byFleet[p.FleetID], p)
	}

	statuses := make(map[uuid.UUID]*stoppage.FleetStatus, len(fleets))
	for _, f := range fleets {
		statuses[f.ID] = &stoppage.FleetStatus{
			Fleet:           f,
			ActiveStoppage:  selectActive(byFleet[f.ID], today),
			HistoricalCount: counts[f.ID],
		}
	}

	snap := &stoppage.Snapshot{
		Date:     window.Start,
		Statuses: statuses,
		TakenAt:  s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq {
		// A newer refresh resolved first; keep its snapshot.
		logger.Debug("Discarding stale snapshot refresh",
			zap.Uint64("seq", seq),
			zap.Uint64("applied_seq", s.appliedSeq),
		)
		return s.snapshot, nil
	}
	s.appliedSeq = seq
	s.snapshot = snap

	return snap, nil
}

// selectActive picks the fleet's displayed stoppage from the fetched set,
// which arrives sorted newest first. For today only an unclosed stoppage
// counts as active; historical dates display the most recent stoppage in the
// window regardless of its end timestamp.
func selectActive(candidates []*stoppage.Stoppage, today bool) *stoppage.Stoppage {
	if len(candidates) == 0 {
		return nil
	}
	if !today {
		return candidates[0]
	}
	for _, c := range candidates {
		if c.Open() {
			return c
		}
	}
	return nil
}

// Snapshot returns the last applied snapshot, or nil before the first
// successful refresh.
func (s *Service) Snapshot() *stoppage.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// RegisterStoppage opens a stoppage for a fleet currently operating. The
// store enforces the at-most-one-open invariant, so a concurrent duplicate
// registration is rejected rather than silently accepted.
func (s *Service) RegisterStoppage(ctx context.Context, req *RegisterStoppageRequest) (*StoppageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.fleetRepo.GetFleet(ctx, req.FleetID); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	record := &stoppage.Stoppage{
		FleetID:         req.FleetID,
		TypeID:          req.TypeID,
		Reason:          req.Reason,
		StartedAt:       now,
		ExpectedMinutes: req.ExpectedMinutes,
	}

	if err := s.stoppageRepo.Open(ctx, record); err != nil {
		return nil, err
	}

	logger.Info("Stoppage registered",
		zap.String("stoppage_id", record.ID.String()),
		zap.String("fleet_id", req.FleetID.String()),
		zap.String("type_id", req.TypeID.String()),
		zap.String("event", "stoppage_registered"),
	)

	s.publisher.StoppageOpened(record)

	if _, err := s.RefreshSnapshot(ctx, now); err != nil {
		logger.Warn("Snapshot refresh after register failed", zap.Error(err))
	}

	created, err := s.stoppageRepo.GetByID(ctx, record.ID)
	if err != nil {
		created = record
	}

	return ToStoppageResponse(created, s.now()), nil
}

// CloseStoppage ends the fleet's active stoppage. Closing a fleet without an
// open stoppage is a benign no-op, tolerating a concurrent close.
func (s *Service) CloseStoppage(ctx context.Context, fleetID uuid.UUID) (*StoppageResponse, error) {
	now := s.now().In(s.loc)

	closed, err := s.stoppageRepo.Close(ctx, fleetID, now)
	if errors.Is(err, stoppage.ErrNoOpenStoppage) {
		logger.Debug("Close requested with no open stoppage",
			zap.String("fleet_id", fleetID.String()),
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Stoppage closed",
		zap.String("stoppage_id", closed.ID.String()),
		zap.String("fleet_id", fleetID.String()),
		zap.String("event", "stoppage_closed"),
	)

	s.publisher.StoppageClosed(closed)

	if _, err := s.RefreshSnapshot(ctx, now); err != nil {
		logger.Warn("Snapshot refresh after close failed", zap.Error(err))
	}

	return ToStoppageResponse(closed, s.now()), nil
}

// EditHistoricalStoppage applies a full-field correction to a past record,
// including re-opening or re-closing it. When the resulting record has both
// timestamps, start must precede end.
func (s *Service) EditHistoricalStoppage(ctx context.Context, id uuid.UUID, req *EditStoppageRequest) (*StoppageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	existing, err := s.stoppageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start := existing.StartedAt
	if req.StartedAt != nil {
		start = *req.StartedAt
	}
	end := existing.EndedAt
	if req.Reopen {
		end = nil
	} else if req.EndedAt != nil {
		end = req.EndedAt
	}
	if end != nil && !start.Before(*end) {
		return nil, stoppage.ErrInvalidInterval
	}

	patch := &stoppage.Patch{
		TypeID:          req.TypeID,
		Reason:          req.Reason,
		ExpectedMinutes: req.ExpectedMinutes,
		Start:           req.StartedAt,
		End:             req.EndedAt,
		ClearEnd:        req.Reopen,
	}

	updated, err := s.stoppageRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	logger.Info("Stoppage corrected",
		zap.String("stoppage_id", id.String()),
		zap.Bool("reopened", req.Reopen),
		zap.String("event", "stoppage_corrected"),
	)

	return ToStoppageResponse(updated, s.now()), nil
}

// CurrentStoppage returns the fleet's open stoppage straight from the store,
// or ErrNoOpenStoppage when the fleet is operating.
func (s *Service) CurrentStoppage(ctx context.Context, fleetID uuid.UUID) (*StoppageResponse, error) {
	record, err := s.stoppageRepo.GetOpenByFleet(ctx, fleetID)
	if err != nil {
		return nil, err
	}
	return ToStoppageResponse(record, s.now()), nil
}

// ParseDate interprets a YYYY-MM-DD value as a calendar day in the
// operational timezone. Parsing in UTC would shift the resulting window to
// the previous day for zones west of it.
func (s *Service) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, s.loc)
}

// History lists one fleet's stoppages for a calendar day, newest first.
func (s *Service) History(ctx context.Context, fleetID uuid.UUID, date time.Time) ([]*StoppageResponse, error) {
	window := stoppage.DayWindow(date, s.loc)

	records, err := s.stoppageRepo.ListByFleetForWindow(ctx, fleetID, window)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]*StoppageResponse, len(records))
	for i, r := range records {
		out[i] = ToStoppageResponse(r, now)
	}

	return out, nil
}
