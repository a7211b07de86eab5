package models

import (
	"time"

	"number_generator/internal/widget"
)

// WidgetState is the persisted part of a session's widget. History lives in
// its own table.
type WidgetState struct {
	SessionID    int              `json:"session_id"`
	Params       widget.Params    `json:"params"`
	Current      widget.ResultSet `json:"current"`
	Theme        widget.Theme     `json:"theme"`
	AutoGenerate bool             `json:"auto_generate"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewWidgetState returns the defaults for a session that has no row yet.
func NewWidgetState(sessionID int) WidgetState {
	st := widget.NewState()
	return WidgetState{
		SessionID: sessionID,
		Params:    st.Params,
		Current:   st.Current,
		Theme:     st.Theme,
	}
}

// State converts to the widget core state with the given history.
func (w WidgetState) State(history []widget.ResultSet) widget.State {
	if history == nil {
		history = []widget.ResultSet{}
	}
	current := w.Current
	if current == nil {
		current = widget.ResultSet{}
	}
	return widget.State{
		Params:       w.Params,
		Current:      current,
		History:      history,
		Theme:        w.Theme,
		AutoGenerate: w.AutoGenerate,
	}
}

// Apply copies the persisted fields of st back into w.
func (w WidgetState) Apply(st widget.State) WidgetState {
	w.Params = st.Params
	w.Current = st.Current
	w.Theme = st.Theme
	w.AutoGenerate = st.AutoGenerate
	return w
}
