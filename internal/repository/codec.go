package repository

import (
	"encoding/json"
	"fmt"

	"number_generator/internal/widget"
)

// marshalNumbers stores a result set as a JSON array; nil becomes "[]".
func marshalNumbers(rs widget.ResultSet) (string, error) {
	if rs == nil {
		rs = widget.ResultSet{}
	}
	b, err := json.Marshal(rs)
	if err != nil {
		return "", fmt.Errorf("marshal numbers: %w", err)
	}
	return string(b), nil
}

// unmarshalNumbers parses a JSON array; empty input is an empty set.
func unmarshalNumbers(s string) (widget.ResultSet, error) {
	if s == "" {
		return widget.ResultSet{}, nil
	}
	var rs widget.ResultSet
	if err := json.Unmarshal([]byte(s), &rs); err != nil {
		return nil, fmt.Errorf("unmarshal numbers %q: %w", s, err)
	}
	if rs == nil {
		rs = widget.ResultSet{}
	}
	return rs, nil
}
