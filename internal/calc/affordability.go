package calc

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/internal/domain"
	customError "github.com/homebond/bond-engine/pkg/errors"
)

var one = decimal.NewFromInt(1)

// MaxAffordableLoan inverts the annuity formula: given what the applicant
// can put toward an installment each month, it solves for the largest
// principal that installment services over the term.
//
//	principal = installment * (1 - (1+r)^-n) / r
//
// A zero or negative affordable installment is a valid "cannot afford
// anything" outcome, returned as a zero principal rather than an error.
func MaxAffordableLoan(
	netMonthlyIncome, monthlyExpenses, existingDebtPayments decimal.Decimal,
	annualRatePercent decimal.Decimal,
	termYears int,
	affordabilityRatio decimal.Decimal,
) (*domain.AffordabilityResult, error) {
	if netMonthlyIncome.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapNegativeAmount("net monthly income", netMonthlyIncome.String())
	}

	if monthlyExpenses.IsNegative() {
		return nil, customError.WrapNegativeAmount("monthly expenses", monthlyExpenses.String())
	}

	if existingDebtPayments.IsNegative() {
		return nil, customError.WrapNegativeAmount("existing debt payments", existingDebtPayments.String())
	}

	if affordabilityRatio.LessThanOrEqual(decimal.Zero) || affordabilityRatio.GreaterThan(one) {
		return nil, customError.NewBusinessError(
			customError.ErrCodeInvalidInput,
			"affordability ratio must be between 0 and 1",
			customError.ErrInvalidInput,
		)
	}

	// A zero rate is a valid interest-free scenario here, so the rate is
	// checked locally rather than through Normalize.
	if annualRatePercent.IsNegative() {
		return nil, customError.WrapInvalidRate(annualRatePercent.String())
	}

	if termYears <= 0 {
		return nil, customError.WrapInvalidTerm(termYears)
	}

	periodicRate := annualRatePercent.Div(oneHundred).Div(decimal.NewFromInt(12))
	totalPeriods := termYears * 12

	result := &domain.AffordabilityResult{
		NetMonthlyIncome:     netMonthlyIncome,
		MonthlyExpenses:      monthlyExpenses,
		ExistingDebtPayments: existingDebtPayments,
		AnnualRatePercent:    annualRatePercent,
		TermYears:            termYears,
		AffordabilityRatio:   affordabilityRatio,
	}

	installment := netMonthlyIncome.Mul(affordabilityRatio).
		Sub(existingDebtPayments).
		Sub(monthlyExpenses)

	if installment.LessThanOrEqual(decimal.Zero) {
		result.MaxMonthlyInstallment = decimal.Zero
		result.MaxAffordableLoan = decimal.Zero
		return result, nil
	}

	result.MaxMonthlyInstallment = installment.Round(2)

	if periodicRate.IsZero() {
		result.MaxAffordableLoan = installment.Mul(decimal.NewFromInt(int64(totalPeriods))).Round(2)
		return result, nil
	}

	r := periodicRate.InexactFloat64()
	m := installment.InexactFloat64()
	n := float64(totalPeriods)

	principal := m * (1 - math.Pow(1+r, -n)) / r
	result.MaxAffordableLoan = decimal.NewFromFloat(principal).Round(2)

	return result, nil
}
