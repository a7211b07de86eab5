package service

import (
	"math/rand/v2"
	"time"

	"number_generator/internal/widget"
)

const (
	DefaultAutoPeriod = 3 * time.Second
	DefaultTokenTTL   = time.Hour
)

// Options carries the tunables NewService needs from config.
type Options struct {
	MaxCount   int           // upper bound on Params.Count
	AutoPeriod time.Duration // auto-generate tick
	SigningKey string        // HMAC key for session tokens
	TokenTTL   time.Duration
	Rand       *rand.Rand // nil means a time-seeded PCG
}

func (o Options) withDefaults() Options {
	if o.MaxCount <= 0 {
		o.MaxCount = widget.DefaultMaxCount
	}
	if o.AutoPeriod <= 0 {
		o.AutoPeriod = DefaultAutoPeriod
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = DefaultTokenTTL
	}
	if o.Rand == nil {
		o.Rand = NewRand(0)
	}
	return o
}

// NewRand returns a PCG generator. seed == 0 seeds from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>32))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// LogFilter narrows the activity log by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "GENERATE", "CLEAR", "PARAMS", "THEME", "AUTO_ON", "AUTO_OFF"
}
