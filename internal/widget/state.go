// Package widget holds the random-number widget state and the pure functions
// that move it forward. Nothing here does I/O; services persist the results
// and views render them.
package widget

import "math/rand/v2"

// State is everything one session's widget shows.
type State struct {
	Params       Params      `json:"params"`
	Current      ResultSet   `json:"current"`
	History      []ResultSet `json:"history"`
	Theme        Theme       `json:"theme"`
	AutoGenerate bool        `json:"auto_generate"`
}

// NewState returns the state of a fresh session.
func NewState() State {
	return State{
		Params:  DefaultParams(),
		Current: ResultSet{},
		History: []ResultSet{},
		Theme:   ThemeLight,
	}
}

// Record makes rs the current result and prepends it to the history.
func (s State) Record(rs ResultSet) State {
	rs = rs.Clone()
	history := make([]ResultSet, 0, len(s.History)+1)
	history = append(history, rs)
	history = append(history, s.History...)
	s.Current = rs
	s.History = history
	return s
}

// Generate draws with the state's params and records the result.
func (s State) Generate(rng *rand.Rand) (State, ResultSet) {
	rs := Draw(rng, s.Params)
	return s.Record(rs), rs
}

// Cleared empties the current result. History is untouched.
func (s State) Cleared() State {
	s.Current = ResultSet{}
	return s
}

// WithParams validates p against maxCount before applying it.
func (s State) WithParams(p Params, maxCount int) (State, error) {
	if err := p.Validate(maxCount); err != nil {
		return s, err
	}
	s.Params = p
	return s, nil
}

// WithTheme sets the display theme.
func (s State) WithTheme(t Theme) (State, error) {
	if t != ThemeLight && t != ThemeDark {
		return s, ErrInvalidTheme
	}
	s.Theme = t
	return s, nil
}

// ToggledTheme flips the display theme.
func (s State) ToggledTheme() State {
	s.Theme = s.Theme.Toggled()
	return s
}

// WithAutoGenerate sets the auto-generate flag.
func (s State) WithAutoGenerate(on bool) State {
	s.AutoGenerate = on
	return s
}
