package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homebond/bond-engine/internal/domain"
	customError "github.com/homebond/bond-engine/pkg/errors"
)

func twentyYearBond() domain.LoanInput {
	return domain.LoanInput{
		Principal:         decimal.NewFromInt(1_000_000),
		AnnualRatePercent: decimal.NewFromFloat(11.25),
		TermYears:         20,
	}
}

func TestSimulate_ExtraMonthlyReducesTermAndInterest(t *testing.T) {
	result, err := Simulate(domain.AdditionalPaymentScenario{
		LoanInput:          twentyYearBond(),
		ExtraMonthlyAmount: decimal.NewFromInt(1_000),
	})
	require.NoError(t, err)

	assert.Equal(t, 240, result.NominalTermPeriods)
	assert.Less(t, result.ActualTermPeriods, result.NominalTermPeriods)
	assert.Equal(t, result.NominalTermPeriods-result.ActualTermPeriods, result.TermReducedPeriods)
	assert.True(t, result.InterestSaved.IsPositive(),
		"interest saved should be positive, got %s", result.InterestSaved)
	assert.True(t, result.InterestPaid.Add(result.InterestSaved).Equal(result.BaselineInterestPaid))

	// The schedule still lands on exactly zero.
	last := result.Schedule[len(result.Schedule)-1]
	assert.True(t, last.RemainingBalance.IsZero())
}

func TestSimulate_NoExtrasMatchesBaseline(t *testing.T) {
	result, err := Simulate(domain.AdditionalPaymentScenario{LoanInput: twentyYearBond()})
	require.NoError(t, err)

	assert.Equal(t, result.NominalTermPeriods, result.ActualTermPeriods)
	assert.Equal(t, 0, result.TermReducedPeriods)
	assert.True(t, result.InterestSaved.IsZero(),
		"no extras should save nothing, got %s", result.InterestSaved)
}

func TestSimulate_LumpSumClampsAndTerminates(t *testing.T) {
	// A lump sum larger than the remaining balance ends the loan in that period.
	result, err := Simulate(domain.AdditionalPaymentScenario{
		LoanInput:     twentyYearBond(),
		LumpSumAmount: decimal.NewFromInt(2_000_000),
		LumpSumPeriod: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, result.ActualTermPeriods)
	last := result.Schedule[len(result.Schedule)-1]
	assert.True(t, last.RemainingBalance.IsZero())
	// The clamped payment never exceeds balance plus interest.
	assert.True(t, last.PrincipalPortion.LessThan(decimal.NewFromInt(2_000_000)))
}

func TestSimulate_ExtraCoversLoanInFirstPeriod(t *testing.T) {
	result, err := Simulate(domain.AdditionalPaymentScenario{
		LoanInput: domain.LoanInput{
			Principal:         decimal.NewFromInt(50_000),
			AnnualRatePercent: decimal.NewFromInt(10),
			TermYears:         5,
		},
		ExtraMonthlyAmount: decimal.NewFromInt(100_000),
	})
	require.NoError(t, err)

	require.Len(t, result.Schedule, 1)
	assert.Equal(t, 1, result.ActualTermPeriods)
	assert.True(t, result.Schedule[0].RemainingBalance.IsZero())
}

func TestSimulate_ExtraWindowOnlyAppliesInside(t *testing.T) {
	windowed, err := Simulate(domain.AdditionalPaymentScenario{
		LoanInput:               twentyYearBond(),
		ExtraMonthlyAmount:      decimal.NewFromInt(2_000),
		ExtraMonthlyStartPeriod: 13,
		ExtraMonthlyEndPeriod:   24,
	})
	require.NoError(t, err)

	unlimited, err := Simulate(domain.AdditionalPaymentScenario{
		LoanInput:          twentyYearBond(),
		ExtraMonthlyAmount: decimal.NewFromInt(2_000),
	})
	require.NoError(t, err)

	// Twelve months of extras saves something, but less than paying for the
	// whole term.
	assert.True(t, windowed.InterestSaved.IsPositive())
	assert.True(t, windowed.InterestSaved.LessThan(unlimited.InterestSaved))

	// Inside the window the principal reduction carries the extra amount.
	inWindow := windowed.Schedule[12] // period 13
	outside := windowed.Schedule[0]
	assert.True(t, inWindow.PaymentAmount.GreaterThan(outside.PaymentAmount))
}

func TestSimulate_EscalatorGrowsExtraAmount(t *testing.T) {
	flat, err := Simulate(domain.AdditionalPaymentScenario{
		LoanInput:          twentyYearBond(),
		ExtraMonthlyAmount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	escalating, err := Simulate(domain.AdditionalPaymentScenario{
		LoanInput:               twentyYearBond(),
		ExtraMonthlyAmount:      decimal.NewFromInt(500),
		MonthlyIncreaseAmount:   decimal.NewFromInt(250),
		IncreaseFrequencyMonths: 12,
	})
	require.NoError(t, err)

	assert.True(t, escalating.InterestSaved.GreaterThan(flat.InterestSaved))
	assert.Less(t, escalating.ActualTermPeriods, flat.ActualTermPeriods)
}

func TestSimulate_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		scenario domain.AdditionalPaymentScenario
	}{
		{
			name: "negative extra monthly",
			scenario: domain.AdditionalPaymentScenario{
				LoanInput:          twentyYearBond(),
				ExtraMonthlyAmount: decimal.NewFromInt(-100),
			},
		},
		{
			name: "negative lump sum",
			scenario: domain.AdditionalPaymentScenario{
				LoanInput:     twentyYearBond(),
				LumpSumAmount: decimal.NewFromInt(-100),
			},
		},
		{
			name: "lump sum period beyond term",
			scenario: domain.AdditionalPaymentScenario{
				LoanInput:     twentyYearBond(),
				LumpSumAmount: decimal.NewFromInt(10_000),
				LumpSumPeriod: 241,
			},
		},
		{
			name: "extra start period beyond term",
			scenario: domain.AdditionalPaymentScenario{
				LoanInput:               twentyYearBond(),
				ExtraMonthlyAmount:      decimal.NewFromInt(500),
				ExtraMonthlyStartPeriod: 500,
			},
		},
		{
			name: "negative extra start period",
			scenario: domain.AdditionalPaymentScenario{
				LoanInput:               twentyYearBond(),
				ExtraMonthlyAmount:      decimal.NewFromInt(100),
				ExtraMonthlyStartPeriod: -120,
				MonthlyIncreaseAmount:   decimal.NewFromInt(100),
				IncreaseFrequencyMonths: 12,
			},
		},
		{
			name: "negative extra end period",
			scenario: domain.AdditionalPaymentScenario{
				LoanInput:             twentyYearBond(),
				ExtraMonthlyAmount:    decimal.NewFromInt(100),
				ExtraMonthlyEndPeriod: -1,
			},
		},
		{
			name: "negative lump sum period",
			scenario: domain.AdditionalPaymentScenario{
				LoanInput:     twentyYearBond(),
				LumpSumAmount: decimal.NewFromInt(10_000),
				LumpSumPeriod: -6,
			},
		},
		{
			name: "negative increase frequency",
			scenario: domain.AdditionalPaymentScenario{
				LoanInput:               twentyYearBond(),
				ExtraMonthlyAmount:      decimal.NewFromInt(100),
				MonthlyIncreaseAmount:   decimal.NewFromInt(50),
				IncreaseFrequencyMonths: -12,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Simulate(tt.scenario)
			require.Error(t, err)
			assert.True(t, customError.IsInvalidInput(err))
		})
	}
}
