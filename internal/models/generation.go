package models

import (
	"time"

	"number_generator/internal/widget"
)

// Generation is one History entry: the filtered numbers plus the params that produced them.
type Generation struct {
	ID        string           `json:"id"`
	SessionID int              `json:"session_id"`
	Seq       int64            `json:"seq"` // assigned by the store, increases per insert
	Numbers   widget.ResultSet `json:"numbers"`
	Params    widget.Params    `json:"params"`
	CreatedAt time.Time        `json:"created_at"`
}
