package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"number_generator/internal/models"
	"number_generator/internal/widget"

	"github.com/google/uuid"
)

type HistorySQLite struct {
	db *sql.DB
}

func NewHistorySQLite(db *sql.DB) *HistorySQLite { return &HistorySQLite{db: db} }

const (
	insertGenerationSQL = `
		INSERT INTO generations (id, session_id, numbers, min, max, count, filter, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectGenerationsSQL = `
		SELECT seq, id, session_id, numbers, min, max, count, filter, created_at
		FROM generations WHERE session_id = ?
		ORDER BY seq DESC
	`
)

// Append stores g and returns it with ID, Seq and CreatedAt filled in.
func (r *HistorySQLite) Append(ctx context.Context, g models.Generation) (models.Generation, error) {
	return appendGeneration(ctx, r.db, g)
}

func appendGeneration(ctx context.Context, ex execer, g models.Generation) (models.Generation, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	} else {
		g.CreatedAt = g.CreatedAt.UTC()
	}

	numbers, err := marshalNumbers(g.Numbers)
	if err != nil {
		return models.Generation{}, err
	}

	res, err := ex.ExecContext(ctx, insertGenerationSQL,
		g.ID,
		g.SessionID,
		numbers,
		g.Params.Min,
		g.Params.Max,
		g.Params.Count,
		string(g.Params.Filter),
		g.CreatedAt,
	)
	if err != nil {
		return models.Generation{}, fmt.Errorf("insert generation for session %d: %w", g.SessionID, err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return models.Generation{}, fmt.Errorf("get generation seq: %w", err)
	}
	g.Seq = seq
	return g, nil
}

// List returns the session's generations most-recent-first. limit <= 0 means all.
func (r *HistorySQLite) List(ctx context.Context, sessionID, limit int) ([]models.Generation, error) {
	q := selectGenerationsSQL
	args := []any{sessionID}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list generations for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	out := make([]models.Generation, 0, 16)
	for rows.Next() {
		var (
			g          models.Generation
			numbersStr string
			filter     string
		)
		if err := rows.Scan(&g.Seq, &g.ID, &g.SessionID, &numbersStr,
			&g.Params.Min, &g.Params.Max, &g.Params.Count, &filter, &g.CreatedAt); err != nil {
			return nil, err
		}
		if g.Numbers, err = unmarshalNumbers(numbersStr); err != nil {
			return nil, err
		}
		g.Params.Filter = widget.Filter(filter)
		g.CreatedAt = g.CreatedAt.UTC()
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
