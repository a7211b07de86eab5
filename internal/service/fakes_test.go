package service

import (
	"context"
	"sync"
	"time"

	"number_generator/internal/models"
)

// memStore is a goroutine-safe in-memory stand-in for the three widget repositories.
type memStore struct {
	mu        sync.Mutex
	states    map[int]models.WidgetState
	history   []models.Generation
	events    []models.Event
	nextSeq   int64
	saveErr   error
	appendErr error
}

func newMemStore() *memStore {
	return &memStore{states: map[int]models.WidgetState{}}
}

type memStateRepo struct{ *memStore }
type memHistoryRepo struct{ *memStore }
type memEventRepo struct{ *memStore }
type memGenerationRepo struct{ *memStore }

func (m memStateRepo) Save(ctx context.Context, s models.WidgetState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.states[s.SessionID] = s
	return nil
}

func (m memStateRepo) Load(ctx context.Context, sessionID int) (models.WidgetState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[sessionID], nil
}

func (m memStateRepo) ListAutoGenerate(ctx context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int
	for id, s := range m.states {
		if s.AutoGenerate {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m memHistoryRepo) Append(ctx context.Context, g models.Generation) (models.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return models.Generation{}, m.appendErr
	}
	return m.appendLocked(g), nil
}

func (m *memStore) appendLocked(g models.Generation) models.Generation {
	m.nextSeq++
	g.Seq = m.nextSeq
	m.history = append(m.history, g)
	return g
}

// SaveGeneration applies both writes or, when either would fail, neither.
func (m memGenerationRepo) SaveGeneration(ctx context.Context, s models.WidgetState, g models.Generation) (models.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return models.Generation{}, m.appendErr
	}
	if m.saveErr != nil {
		return models.Generation{}, m.saveErr
	}
	g = m.appendLocked(g)
	m.states[s.SessionID] = s
	return g, nil
}

func (m memHistoryRepo) List(ctx context.Context, sessionID, limit int) ([]models.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Generation
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].SessionID == sessionID {
			out = append(out, m.history[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m memEventRepo) Append(ctx context.Context, e models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m memEventRepo) List(ctx context.Context, sessionID int, from, to time.Time, typ string) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Event
	for _, e := range m.events {
		if e.SessionID == sessionID && (typ == "" || e.Type == typ) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) setSaveErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

func (m *memStore) eventTypes(sessionID int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		if e.SessionID == sessionID {
			out = append(out, e.Type)
		}
	}
	return out
}

func newTestWidgetService(store *memStore, maxCount int) *WidgetService {
	return NewWidgetService(memStateRepo{store}, memHistoryRepo{store}, memGenerationRepo{store}, memEventRepo{store}, NewRand(42), maxCount)
}
