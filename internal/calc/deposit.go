package calc

import (
	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/internal/domain"
	customError "github.com/homebond/bond-engine/pkg/errors"
)

// DefaultSavingsHorizonMonths caps the deposit projection at 100 years.
const DefaultSavingsHorizonMonths = 1200

var twelveHundred = decimal.NewFromInt(1200)

// MonthsToTarget simulates month-by-month growth of the current savings at
// the monthly equivalent of the annual return, adding the monthly savings
// amount each period, until the balance reaches the target deposit.
//
// With no monthly contribution the target is reported unreachable rather
// than relying on compounding alone; a projection that runs past
// horizonMonths (DefaultSavingsHorizonMonths when <= 0) reports a distinct
// horizon-exceeded outcome. Neither is an error.
func MonthsToTarget(
	targetDeposit, currentSavings, monthlySavingsAmount, annualReturnPercent decimal.Decimal,
	horizonMonths int,
) (*domain.DepositSavingsResult, error) {
	if targetDeposit.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapNegativeAmount("target deposit", targetDeposit.String())
	}

	if currentSavings.IsNegative() {
		return nil, customError.WrapNegativeAmount("current savings", currentSavings.String())
	}

	if monthlySavingsAmount.IsNegative() {
		return nil, customError.WrapNegativeAmount("monthly savings amount", monthlySavingsAmount.String())
	}

	if annualReturnPercent.IsNegative() {
		return nil, customError.WrapNegativeAmount("annual return", annualReturnPercent.String())
	}

	if horizonMonths <= 0 {
		horizonMonths = DefaultSavingsHorizonMonths
	}

	result := &domain.DepositSavingsResult{
		TargetDeposit:        targetDeposit,
		CurrentSavings:       currentSavings,
		MonthlySavingsAmount: monthlySavingsAmount,
		AnnualReturnPercent:  annualReturnPercent,
	}

	if currentSavings.GreaterThanOrEqual(targetDeposit) {
		result.Outcome = domain.DepositOutcomeReached
		result.MonthsToTarget = 0
		result.ProjectedBalance = currentSavings
		return result, nil
	}

	if !monthlySavingsAmount.IsPositive() {
		result.Outcome = domain.DepositOutcomeUnreachable
		result.ProjectedBalance = currentSavings
		return result, nil
	}

	// annualReturnPercent / 100 / 12
	monthlyRate := annualReturnPercent.Div(twelveHundred)

	balance := currentSavings
	for month := 1; month <= horizonMonths; month++ {
		interest := balance.Mul(monthlyRate).Round(2)
		balance = balance.Add(interest).Add(monthlySavingsAmount)

		if balance.GreaterThanOrEqual(targetDeposit) {
			result.Outcome = domain.DepositOutcomeReached
			result.MonthsToTarget = month
			result.ProjectedBalance = balance
			return result, nil
		}
	}

	result.Outcome = domain.DepositOutcomeHorizonExceeded
	result.MonthsToTarget = horizonMonths
	result.ProjectedBalance = balance
	return result, nil
}
