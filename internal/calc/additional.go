package calc

import (
	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/internal/domain"
	customError "github.com/homebond/bond-engine/pkg/errors"
)

// SimulationResult is the outcome of replaying a loan with extra payments,
// measured against the untouched baseline schedule.
type SimulationResult struct {
	MonthlyPayment       decimal.Decimal
	NominalTermPeriods   int
	ActualTermPeriods    int
	TermReducedPeriods   int
	InterestPaid         decimal.Decimal
	BaselineInterestPaid decimal.Decimal
	InterestSaved        decimal.Decimal
	Schedule             domain.AmortizationSchedule
}

// Simulate replays the amortization period by period, injecting the
// scenario's recurring extra amount and one-time lump sum as direct
// principal reductions. The loop terminates as soon as the balance reaches
// zero; extra amounts never push the balance negative.
func Simulate(scenario domain.AdditionalPaymentScenario) (*SimulationResult, error) {
	periodicRate, totalPeriods, err := Normalize(scenario.AnnualRatePercent, scenario.TermYears, scenario.Frequency())
	if err != nil {
		return nil, err
	}

	if err := validateScenario(scenario, totalPeriods); err != nil {
		return nil, err
	}

	principal := scenario.BorrowedAmount()

	baseline, err := BuildSchedule(principal, periodicRate, totalPeriods)
	if err != nil {
		return nil, err
	}
	baselineInterest := baseline.TotalInterest()

	payment := PaymentPerPeriod(principal, periodicRate, totalPeriods)

	schedule := make(domain.AmortizationSchedule, 0, totalPeriods)
	remaining := principal.Round(2)
	interestPaid := decimal.Zero

	startPeriod := scenario.ExtraMonthlyStartPeriod
	if startPeriod == 0 {
		startPeriod = 1
	}
	endPeriod := scenario.ExtraMonthlyEndPeriod
	if endPeriod == 0 {
		endPeriod = totalPeriods
	}

	// An unset lump sum period means the lump sum goes in immediately.
	lumpSumPeriod := scenario.LumpSumPeriod
	if lumpSumPeriod == 0 && scenario.LumpSumAmount.IsPositive() {
		lumpSumPeriod = 1
	}

	for period := 1; period <= totalPeriods && remaining.IsPositive(); period++ {
		interest := remaining.Mul(periodicRate).Round(2)
		principalReduction := payment.Sub(interest)

		if extra := extraForPeriod(scenario, period, startPeriod, endPeriod); extra.IsPositive() {
			principalReduction = principalReduction.Add(extra)
		}

		if period == lumpSumPeriod {
			principalReduction = principalReduction.Add(scenario.LumpSumAmount)
		}

		// Never reduce past zero; excess in the closing period is dropped.
		// The final nominal period clears the balance exactly, absorbing the
		// same rounding residue BuildSchedule corrects for.
		if period == totalPeriods || principalReduction.GreaterThanOrEqual(remaining) {
			principalReduction = remaining
		}

		remaining = remaining.Sub(principalReduction)
		interestPaid = interestPaid.Add(interest)

		schedule = append(schedule, domain.AmortizationPeriod{
			PeriodIndex:      period,
			PaymentAmount:    principalReduction.Add(interest),
			PrincipalPortion: principalReduction,
			InterestPortion:  interest,
			RemainingBalance: remaining,
		})
	}

	actualTerm := len(schedule)

	return &SimulationResult{
		MonthlyPayment:       payment,
		NominalTermPeriods:   totalPeriods,
		ActualTermPeriods:    actualTerm,
		TermReducedPeriods:   totalPeriods - actualTerm,
		InterestPaid:         interestPaid,
		BaselineInterestPaid: baselineInterest,
		InterestSaved:        baselineInterest.Sub(interestPaid),
		Schedule:             schedule,
	}, nil
}

// extraForPeriod returns the recurring extra amount for the period, with the
// optional escalator applied every IncreaseFrequencyMonths periods since the
// window opened.
func extraForPeriod(scenario domain.AdditionalPaymentScenario, period, startPeriod, endPeriod int) decimal.Decimal {
	if !scenario.ExtraMonthlyAmount.IsPositive() {
		return decimal.Zero
	}

	if period < startPeriod || period > endPeriod {
		return decimal.Zero
	}

	extra := scenario.ExtraMonthlyAmount
	if scenario.IncreaseFrequencyMonths > 0 && scenario.MonthlyIncreaseAmount.IsPositive() {
		steps := (period - startPeriod) / scenario.IncreaseFrequencyMonths
		if steps > 0 {
			extra = extra.Add(scenario.MonthlyIncreaseAmount.Mul(decimal.NewFromInt(int64(steps))))
		}
	}

	return extra
}

func validateScenario(scenario domain.AdditionalPaymentScenario, totalPeriods int) error {
	if scenario.ExtraMonthlyAmount.IsNegative() {
		return customError.WrapNegativeAmount("extra monthly amount", scenario.ExtraMonthlyAmount.String())
	}

	if scenario.LumpSumAmount.IsNegative() {
		return customError.WrapNegativeAmount("lump sum amount", scenario.LumpSumAmount.String())
	}

	if scenario.MonthlyIncreaseAmount.IsNegative() {
		return customError.WrapNegativeAmount("monthly increase amount", scenario.MonthlyIncreaseAmount.String())
	}

	if scenario.ExtraMonthlyStartPeriod < 0 || scenario.ExtraMonthlyStartPeriod > totalPeriods {
		return customError.WrapPeriodOutOfRange("extra payment start period", scenario.ExtraMonthlyStartPeriod, totalPeriods)
	}

	if scenario.ExtraMonthlyEndPeriod < 0 {
		return customError.WrapPeriodOutOfRange("extra payment end period", scenario.ExtraMonthlyEndPeriod, totalPeriods)
	}

	if scenario.LumpSumPeriod < 0 {
		return customError.WrapPeriodOutOfRange("lump sum period", scenario.LumpSumPeriod, totalPeriods)
	}

	if scenario.IncreaseFrequencyMonths < 0 {
		return customError.WrapPeriodOutOfRange("increase frequency months", scenario.IncreaseFrequencyMonths, totalPeriods)
	}

	if scenario.LumpSumAmount.IsPositive() && scenario.LumpSumPeriod > totalPeriods {
		return customError.WrapPeriodOutOfRange("lump sum period", scenario.LumpSumPeriod, totalPeriods)
	}

	return nil
}
