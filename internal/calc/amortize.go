package calc

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/internal/domain"
	customError "github.com/homebond/bond-engine/pkg/errors"
)

// PaymentPerPeriod returns the fixed installment for a standard annuity loan
// without building the full schedule:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// The power term is computed in float64 and the result converted back to
// decimal for monetary arithmetic; float64 carries ample precision for any
// realistic rate/term combination.
func PaymentPerPeriod(principal, periodicRate decimal.Decimal, totalPeriods int) decimal.Decimal {
	if periodicRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(totalPeriods))).Round(2)
	}

	p := principal.InexactFloat64()
	r := periodicRate.InexactFloat64()
	n := float64(totalPeriods)

	factor := math.Pow(1+r, n)
	payment := p * r * factor / (factor - 1)

	return decimal.NewFromFloat(payment).Round(2)
}

// BuildSchedule produces the full amortization schedule for a fixed-payment
// loan. Interest is computed on the running balance and rounded to the cent
// each period; the closing period absorbs the residual so that the balance
// lands on exactly zero and the principal portions sum to the principal.
// When cent rounding lets the level payment retire the balance ahead of the
// nominal term, the schedule ends at that period.
func BuildSchedule(principal, periodicRate decimal.Decimal, totalPeriods int) (domain.AmortizationSchedule, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidPrincipal(principal.String())
	}

	if totalPeriods <= 0 {
		return nil, customError.NewBusinessError(
			customError.ErrCodeInvalidInput,
			fmt.Sprintf("%d is not a positive number of periods", totalPeriods),
			customError.ErrInvalidTerm,
		)
	}

	if periodicRate.IsNegative() {
		return nil, customError.WrapInvalidRate(periodicRate.String())
	}

	payment := PaymentPerPeriod(principal, periodicRate, totalPeriods)

	schedule := make(domain.AmortizationSchedule, 0, totalPeriods)
	remaining := principal.Round(2)

	for period := 1; period <= totalPeriods && remaining.IsPositive(); period++ {
		interest := remaining.Mul(periodicRate).Round(2)
		principalPortion := payment.Sub(interest)

		// Closing period, nominal or early: clear the balance exactly,
		// absorbing rounding residue. The level payment must never push
		// the balance negative.
		if period == totalPeriods || principalPortion.GreaterThanOrEqual(remaining) {
			principalPortion = remaining
		}
		paymentAmount := principalPortion.Add(interest)

		remaining = remaining.Sub(principalPortion)

		schedule = append(schedule, domain.AmortizationPeriod{
			PeriodIndex:      period,
			PaymentAmount:    paymentAmount,
			PrincipalPortion: principalPortion,
			InterestPortion:  interest,
			RemainingBalance: remaining,
		})
	}

	return schedule, nil
}
