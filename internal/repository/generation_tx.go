package repository

import (
	"context"
	"database/sql"
	"fmt"

	"number_generator/internal/models"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type GenerationSQLite struct {
	db *sql.DB
}

func NewGenerationSQLite(db *sql.DB) *GenerationSQLite { return &GenerationSQLite{db: db} }

// SaveGeneration inserts g and upserts st in one transaction.
func (r *GenerationSQLite) SaveGeneration(ctx context.Context, st models.WidgetState, g models.Generation) (models.Generation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Generation{}, fmt.Errorf("begin generation tx for session %d: %w", g.SessionID, err)
	}
	defer func() { _ = tx.Rollback() }()

	saved, err := appendGeneration(ctx, tx, g)
	if err != nil {
		return models.Generation{}, err
	}
	if err := saveState(ctx, tx, st); err != nil {
		return models.Generation{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Generation{}, fmt.Errorf("commit generation for session %d: %w", g.SessionID, err)
	}
	return saved, nil
}
