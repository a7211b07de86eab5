package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"number_generator/internal/models"
	"number_generator/internal/repository"
)

// ErrRangeInverted is returned when an activity query starts after it ends.
var ErrRangeInverted = errors.New("activity range starts after it ends")

// ActivityLogService reads back what a session did to its widget:
// generations, clears, parameter and theme changes, auto-generate toggles.
type ActivityLogService struct {
	events repository.EventRepo
}

func NewActivityLogService(events repository.EventRepo) *ActivityLogService {
	return &ActivityLogService{events: events}
}

func inUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// canonicalEventType maps " generate " to "GENERATE".
func canonicalEventType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// canonical returns f with UTC bounds and an upper-case event type.
// Zero bounds stay open.
func (f LogFilter) canonical() (LogFilter, error) {
	out := LogFilter{From: inUTC(f.From), To: inUTC(f.To), Type: canonicalEventType(f.Type)}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, ErrRangeInverted
	}
	return out, nil
}

// List returns the session's widget activity, oldest first.
func (s *ActivityLogService) List(ctx context.Context, sessionID int, f LogFilter) ([]models.Event, error) {
	q, err := f.canonical()
	if err != nil {
		return nil, err
	}
	return s.events.List(ctx, sessionID, q.From, q.To, q.Type)
}
