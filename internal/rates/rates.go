package rates

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PrimeRate is the published prime lending rate benchmark. The engine treats
// it as just another decimal input; ownership of fetching and caching lives
// here.
type PrimeRate struct {
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effective_date"`
}

// Source supplies the current prime rate.
type Source interface {
	Current(ctx context.Context) (PrimeRate, error)
}

// StaticSource always returns a fixed rate. Used as the configured fallback
// and in tests.
type StaticSource struct {
	rate PrimeRate
}

func NewStaticSource(rate decimal.Decimal, effectiveDate time.Time) *StaticSource {
	return &StaticSource{
		rate: PrimeRate{
			Rate:          rate,
			EffectiveDate: effectiveDate,
		},
	}
}

func (s *StaticSource) Current(_ context.Context) (PrimeRate, error) {
	return s.rate, nil
}
