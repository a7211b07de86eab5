package widget

import (
	"errors"
	"strings"
)

// Filter narrows generated numbers by parity.
type Filter string

const (
	FilterAll  Filter = "all"
	FilterEven Filter = "even"
	FilterOdd  Filter = "odd"
)

var ErrInvalidFilter = errors.New("invalid filter: must be all, even, or odd")

// ParseFilter accepts any casing and surrounding spaces. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterEven, FilterOdd:
		return f, nil
	default:
		return "", ErrInvalidFilter
	}
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterEven || f == FilterOdd
}

// Match reports whether v passes the filter.
func (f Filter) Match(v int64) bool {
	switch f {
	case FilterEven:
		return v%2 == 0
	case FilterOdd:
		return v%2 != 0
	default:
		return true
	}
}

// Apply keeps the values matching f, preserving order. The input is not modified.
func (f Filter) Apply(values []int64) ResultSet {
	out := make(ResultSet, 0, len(values))
	for _, v := range values {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}
