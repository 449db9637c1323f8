package calc

import (
	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/internal/domain"
	customError "github.com/homebond/bond-engine/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// Normalize converts an annual nominal rate and a term in years into the
// periodic rate and period count for the given payment frequency.
func Normalize(annualRatePercent decimal.Decimal, termYears int, frequency domain.PaymentFrequency) (decimal.Decimal, int, error) {
	if annualRatePercent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, 0, customError.WrapInvalidRate(annualRatePercent.String())
	}

	if termYears <= 0 {
		return decimal.Zero, 0, customError.WrapInvalidTerm(termYears)
	}

	periodsPerYear := frequency.PeriodsPerYear()
	if periodsPerYear == 0 {
		return decimal.Zero, 0, customError.WrapUnsupportedFrequency(string(frequency))
	}

	periodicRate := annualRatePercent.
		Div(oneHundred).
		Div(decimal.NewFromInt(int64(periodsPerYear)))

	return periodicRate, termYears * periodsPerYear, nil
}
