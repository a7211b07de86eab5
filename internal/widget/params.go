package widget

import (
	"errors"
	"fmt"
)

// Defaults shown when a session has never changed its parameters.
const (
	DefaultMin   int64 = 1
	DefaultMax   int64 = 100
	DefaultCount       = 10

	// DefaultMaxCount bounds a single draw unless the caller sets its own limit.
	DefaultMaxCount = 10_000
)

var (
	ErrInvalidRange  = errors.New("invalid range: min must be <= max")
	ErrNegativeCount = errors.New("invalid count: must be >= 0")
	ErrCountTooLarge = errors.New("invalid count: exceeds limit")
)

// Params are the user-editable generation inputs.
type Params struct {
	Min    int64  `json:"min"`
	Max    int64  `json:"max"`
	Count  int    `json:"count"`
	Filter Filter `json:"filter"`
}

// DefaultParams returns min=1, max=100, count=10, filter=all.
func DefaultParams() Params {
	return Params{Min: DefaultMin, Max: DefaultMax, Count: DefaultCount, Filter: FilterAll}
}

// Validate rejects bounds out of order, negative or oversized counts and
// unknown filters. maxCount <= 0 means DefaultMaxCount.
func (p Params) Validate(maxCount int) error {
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}
	if p.Min > p.Max {
		return fmt.Errorf("%w (min=%d, max=%d)", ErrInvalidRange, p.Min, p.Max)
	}
	if p.Count < 0 {
		return ErrNegativeCount
	}
	if p.Count > maxCount {
		return fmt.Errorf("%w of %d", ErrCountTooLarge, maxCount)
	}
	if !p.Filter.Valid() {
		return ErrInvalidFilter
	}
	return nil
}

// IsValidation reports whether err came from Params or Theme validation.
func IsValidation(err error) bool {
	for _, target := range []error{ErrInvalidRange, ErrNegativeCount, ErrCountTooLarge, ErrInvalidFilter, ErrInvalidTheme} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
