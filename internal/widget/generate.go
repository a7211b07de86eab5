package widget

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// ResultSet is one generation's filtered output.
type ResultSet []int64

// String joins the values with ", ".
func (rs ResultSet) String() string {
	if len(rs) == 0 {
		return ""
	}
	parts := make([]string, len(rs))
	for i, v := range rs {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ", ")
}

// Clone returns a copy that never aliases rs. A nil set clones to an empty one.
func (rs ResultSet) Clone() ResultSet {
	out := make(ResultSet, len(rs))
	copy(out, rs)
	return out
}

// UniformInRange returns a value drawn uniformly from [lo, hi].
// Callers must ensure lo <= hi. The span is computed in uint64 so the whole
// int64 range is supported.
func UniformInRange(rng *rand.Rand, lo, hi int64) int64 {
	span := uint64(hi-lo) + 1
	if span == 0 {
		return int64(rng.Uint64())
	}
	return int64(uint64(lo) + rng.Uint64N(span))
}

// Draw samples p.Count values from [p.Min, p.Max] and applies p.Filter.
// Params are expected to be validated; an empty range or a non-positive
// count yields an empty set.
func Draw(rng *rand.Rand, p Params) ResultSet {
	if p.Count <= 0 || p.Min > p.Max {
		return ResultSet{}
	}
	raw := make([]int64, p.Count)
	for i := range raw {
		raw[i] = UniformInRange(rng, p.Min, p.Max)
	}
	return p.Filter.Apply(raw)
}
