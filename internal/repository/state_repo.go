package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"number_generator/internal/models"
	"number_generator/internal/widget"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	upsertStateSQL = `
		INSERT INTO widget_state (session_id, min, max, count, filter, current, theme, auto_generate, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			min=excluded.min,
			max=excluded.max,
			count=excluded.count,
			filter=excluded.filter,
			current=excluded.current,
			theme=excluded.theme,
			auto_generate=excluded.auto_generate,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT session_id, min, max, count, filter, current, theme, auto_generate, updated_at
		FROM widget_state WHERE session_id=?
	`

	selectAutoSessionsSQL = `SELECT session_id FROM widget_state WHERE auto_generate = 1 ORDER BY session_id`
)

// Save upserts the session's row. A zero UpdatedAt is stamped with now.
func (r *StateSQLite) Save(ctx context.Context, st models.WidgetState) error {
	return saveState(ctx, r.db, st)
}

func saveState(ctx context.Context, ex execer, st models.WidgetState) error {
	current, err := marshalNumbers(st.Current)
	if err != nil {
		return err
	}

	ts := st.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err = ex.ExecContext(ctx, upsertStateSQL,
		st.SessionID,
		st.Params.Min,
		st.Params.Max,
		st.Params.Count,
		string(st.Params.Filter),
		current,
		string(st.Theme),
		st.AutoGenerate,
		ts,
	)
	if err != nil {
		return fmt.Errorf("save widget state for session %d: %w", st.SessionID, err)
	}
	return nil
}

// Load returns the session's row, or a zero WidgetState (SessionID == 0) if none exists.
func (r *StateSQLite) Load(ctx context.Context, sessionID int) (models.WidgetState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, sessionID)

	var (
		st         models.WidgetState
		filter     string
		theme      string
		currentStr string
	)
	if err := row.Scan(
		&st.SessionID,
		&st.Params.Min,
		&st.Params.Max,
		&st.Params.Count,
		&filter,
		&currentStr,
		&theme,
		&st.AutoGenerate,
		&st.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WidgetState{}, nil // no state yet
		}
		return models.WidgetState{}, fmt.Errorf("load widget state for session %d: %w", sessionID, err)
	}

	current, err := unmarshalNumbers(currentStr)
	if err != nil {
		return models.WidgetState{}, err
	}
	st.Current = current
	st.Params.Filter = widget.Filter(filter)
	st.Theme = widget.Theme(theme)
	st.UpdatedAt = st.UpdatedAt.UTC()

	return st, nil
}

// ListAutoGenerate returns the sessions whose auto-generate flag is stored as on.
func (r *StateSQLite) ListAutoGenerate(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, selectAutoSessionsSQL)
	if err != nil {
		return nil, fmt.Errorf("list auto-generate sessions: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
