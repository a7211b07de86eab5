package repository

import (
	"context"
	"database/sql"
	"time"

	"number_generator/internal/models"
)

type Authorization interface {
	Create(username, hash string, guest bool) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// StateRepo keeps one widget_state row per session.
type StateRepo interface {
	Save(ctx context.Context, s models.WidgetState) error
	Load(ctx context.Context, sessionID int) (models.WidgetState, error)
	ListAutoGenerate(ctx context.Context) ([]int, error)
}

// HistoryRepo is the append-only per-session list of generations.
type HistoryRepo interface {
	Append(ctx context.Context, g models.Generation) (models.Generation, error)
	List(ctx context.Context, sessionID, limit int) ([]models.Generation, error)
}

// GenerationWriter stores a generation together with the session row that
// shows it as current. Either both writes land or neither does.
type GenerationWriter interface {
	SaveGeneration(ctx context.Context, st models.WidgetState, g models.Generation) (models.Generation, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, sessionID int, from, to time.Time, typ string) ([]models.Event, error)
}

type Repository struct {
	StateRepo   StateRepo
	HistoryRepo HistoryRepo
	Generations GenerationWriter
	EventRepo   EventRepo
	Auth        Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo:   NewStateSQLite(db),
		HistoryRepo: NewHistorySQLite(db),
		Generations: NewGenerationSQLite(db),
		EventRepo:   NewEventSQLite(db),
		Auth:        NewUserRepository(db),
	}
}
