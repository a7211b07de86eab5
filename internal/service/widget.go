package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"number_generator/internal/models"
	"number_generator/internal/repository"
	"number_generator/internal/widget"
)

// WidgetService applies widget reducers and persists their results.
type WidgetService struct {
	stateRepo   repository.StateRepo
	historyRepo repository.HistoryRepo
	generations repository.GenerationWriter
	eventRepo   repository.EventRepo
	maxCount    int

	// mu serializes read-modify-write of session rows and guards rng,
	// which is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewWidgetService(stateRepo repository.StateRepo, historyRepo repository.HistoryRepo,
	generations repository.GenerationWriter, eventRepo repository.EventRepo, rng *rand.Rand, maxCount int) *WidgetService {
	if rng == nil {
		rng = NewRand(0)
	}
	return &WidgetService{
		stateRepo:   stateRepo,
		historyRepo: historyRepo,
		generations: generations,
		eventRepo:   eventRepo,
		maxCount:    maxCount,
		rng:         rng,
	}
}

// load returns the stored row or the defaults for a new session.
func (s *WidgetService) load(ctx context.Context, sessionID int) (models.WidgetState, error) {
	row, err := s.stateRepo.Load(ctx, sessionID)
	if err != nil {
		return models.WidgetState{}, err
	}
	if row.SessionID == 0 {
		return models.NewWidgetState(sessionID), nil
	}
	return row, nil
}

// update loads the session, applies fn and saves the result.
func (s *WidgetService) update(ctx context.Context, sessionID int, now time.Time,
	fn func(widget.State) (widget.State, error)) (widget.State, error) {
	row, err := s.load(ctx, sessionID)
	if err != nil {
		return widget.State{}, err
	}
	next, err := fn(row.State(nil))
	if err != nil {
		return widget.State{}, err
	}
	row = row.Apply(next)
	row.UpdatedAt = now
	if err := s.stateRepo.Save(ctx, row); err != nil {
		return widget.State{}, err
	}
	return next, nil
}

func (s *WidgetService) logEvent(ctx context.Context, sessionID int, now time.Time, typ, desc string, meta map[string]any) error {
	return s.eventRepo.Append(ctx, models.Event{
		SessionID:   sessionID,
		OccurredAt:  now,
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
}

// Generate draws with the session's params, makes the result current and
// prepends it to the history. The history row and the session row are
// written together; on error neither changes.
func (s *WidgetService) Generate(ctx context.Context, sessionID int) (widget.ResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	row, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	params := row.Params
	next, rs := row.State(nil).Generate(s.rng)
	row = row.Apply(next)
	row.UpdatedAt = now

	if _, err := s.generations.SaveGeneration(ctx, row, models.Generation{
		SessionID: sessionID,
		Numbers:   rs,
		Params:    params,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := s.logEvent(ctx, sessionID, now, models.EventGenerate,
		fmt.Sprintf("Generated %d of %d numbers", len(rs), params.Count),
		map[string]any{
			"min":      params.Min,
			"max":      params.Max,
			"count":    params.Count,
			"filter":   params.Filter,
			"produced": len(rs),
		}); err != nil {
		return rs, err
	}
	return rs, nil
}

// Clear empties the current result; history stays.
func (s *WidgetService) Clear(ctx context.Context, sessionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if _, err := s.update(ctx, sessionID, now, func(st widget.State) (widget.State, error) {
		return st.Cleared(), nil
	}); err != nil {
		return err
	}
	return s.logEvent(ctx, sessionID, now, models.EventClear, "Current numbers cleared", nil)
}

// SetParams validates p and stores it. Invalid params leave the session untouched.
func (s *WidgetService) SetParams(ctx context.Context, sessionID int, p widget.Params) error {
	return s.UpdateParams(ctx, sessionID, func(widget.Params) (widget.Params, error) {
		return p, nil
	})
}

// UpdateParams derives the new params from the stored ones with fn and
// stores the result. fn runs under the session lock, so concurrent partial
// updates do not overwrite each other.
func (s *WidgetService) UpdateParams(ctx context.Context, sessionID int, fn func(widget.Params) (widget.Params, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	var p widget.Params
	if _, err := s.update(ctx, sessionID, now, func(st widget.State) (widget.State, error) {
		next, err := fn(st.Params)
		if err != nil {
			return st, err
		}
		if next.Filter == "" {
			next.Filter = widget.FilterAll
		}
		p = next
		return st.WithParams(next, s.maxCount)
	}); err != nil {
		return err
	}
	return s.logEvent(ctx, sessionID, now, models.EventParams,
		fmt.Sprintf("Parameters set to [%d, %d] x%d (%s)", p.Min, p.Max, p.Count, p.Filter),
		map[string]any{"min": p.Min, "max": p.Max, "count": p.Count, "filter": p.Filter})
}

// SetTheme switches the display theme.
func (s *WidgetService) SetTheme(ctx context.Context, sessionID int, t widget.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if _, err := s.update(ctx, sessionID, now, func(st widget.State) (widget.State, error) {
		return st.WithTheme(t)
	}); err != nil {
		return err
	}
	return s.logEvent(ctx, sessionID, now, models.EventTheme, "Theme set to "+string(t), nil)
}

// ToggleTheme flips light and dark and returns the new theme.
func (s *WidgetService) ToggleTheme(ctx context.Context, sessionID int) (widget.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	next, err := s.update(ctx, sessionID, now, func(st widget.State) (widget.State, error) {
		return st.ToggledTheme(), nil
	})
	if err != nil {
		return "", err
	}
	return next.Theme, s.logEvent(ctx, sessionID, now, models.EventTheme, "Theme set to "+string(next.Theme), nil)
}

// SaveAutoGenerate stores the flag. Starting or stopping the timer is the
// AutoGenerateService's job.
func (s *WidgetService) SaveAutoGenerate(ctx context.Context, sessionID int, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if _, err := s.update(ctx, sessionID, now, func(st widget.State) (widget.State, error) {
		return st.WithAutoGenerate(on), nil
	}); err != nil {
		return err
	}
	typ, desc := models.EventAutoOff, "Auto-generate disabled"
	if on {
		typ, desc = models.EventAutoOn, "Auto-generate enabled"
	}
	return s.logEvent(ctx, sessionID, now, typ, desc, nil)
}

// GetState returns the session's widget with its full history, most recent first.
func (s *WidgetService) GetState(ctx context.Context, sessionID int) (widget.State, error) {
	row, err := s.load(ctx, sessionID)
	if err != nil {
		return widget.State{}, err
	}
	gens, err := s.historyRepo.List(ctx, sessionID, 0)
	if err != nil {
		return widget.State{}, err
	}
	history := make([]widget.ResultSet, len(gens))
	for i, g := range gens {
		history[i] = g.Numbers
	}
	return row.State(history), nil
}
