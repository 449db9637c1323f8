package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customError "github.com/homebond/bond-engine/pkg/errors"
)

func TestMaxAffordableLoan_RoundTripsThroughSchedule(t *testing.T) {
	// The first installment of a schedule built on the affordable principal
	// should land back on the affordability-derived installment.
	result, err := MaxAffordableLoan(
		decimal.NewFromInt(60_000), // net monthly income
		decimal.NewFromInt(8_000),  // monthly expenses
		decimal.NewFromInt(4_000),  // existing debt payments
		decimal.NewFromFloat(11.25),
		20,
		decimal.NewFromFloat(0.30),
	)
	require.NoError(t, err)

	// 60,000 * 0.30 - 4,000 - 8,000 = 6,000
	assert.True(t, result.MaxMonthlyInstallment.Equal(decimal.NewFromInt(6_000)),
		"installment %s", result.MaxMonthlyInstallment)
	assert.True(t, result.MaxAffordableLoan.IsPositive())

	periodicRate, totalPeriods, err := Normalize(result.AnnualRatePercent, result.TermYears, "monthly")
	require.NoError(t, err)

	schedule, err := BuildSchedule(result.MaxAffordableLoan, periodicRate, totalPeriods)
	require.NoError(t, err)

	diff := schedule[0].PaymentAmount.Sub(result.MaxMonthlyInstallment).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.05)),
		"schedule payment %s should match installment %s", schedule[0].PaymentAmount, result.MaxMonthlyInstallment)
}

func TestMaxAffordableLoan_NothingAffordableIsNotAnError(t *testing.T) {
	result, err := MaxAffordableLoan(
		decimal.NewFromInt(10_000),
		decimal.NewFromInt(9_000),
		decimal.NewFromInt(5_000),
		decimal.NewFromFloat(11.25),
		20,
		decimal.NewFromFloat(0.30),
	)
	require.NoError(t, err)

	assert.True(t, result.MaxAffordableLoan.IsZero())
	assert.True(t, result.MaxMonthlyInstallment.IsZero())
}

func TestMaxAffordableLoan_HigherRatioAffordsMore(t *testing.T) {
	lower, err := MaxAffordableLoan(
		decimal.NewFromInt(50_000), decimal.NewFromInt(5_000), decimal.Zero,
		decimal.NewFromFloat(11.25), 20, decimal.NewFromFloat(0.25),
	)
	require.NoError(t, err)

	higher, err := MaxAffordableLoan(
		decimal.NewFromInt(50_000), decimal.NewFromInt(5_000), decimal.Zero,
		decimal.NewFromFloat(11.25), 20, decimal.NewFromFloat(0.35),
	)
	require.NoError(t, err)

	assert.True(t, higher.MaxAffordableLoan.GreaterThan(lower.MaxAffordableLoan))
}

func TestMaxAffordableLoan_ZeroRateIsDirectMultiplication(t *testing.T) {
	// Interest-free: the affordable principal is just installment * periods.
	result, err := MaxAffordableLoan(
		decimal.NewFromInt(50_000), decimal.NewFromInt(5_000), decimal.Zero,
		decimal.Zero, 10, decimal.NewFromFloat(0.30),
	)
	require.NoError(t, err)

	// 50,000 * 0.30 - 5,000 = 10,000 over 120 periods.
	assert.True(t, result.MaxMonthlyInstallment.Equal(decimal.NewFromInt(10_000)),
		"installment %s", result.MaxMonthlyInstallment)
	assert.True(t, result.MaxAffordableLoan.Equal(decimal.NewFromInt(1_200_000)),
		"principal %s", result.MaxAffordableLoan)
}

func TestMaxAffordableLoan_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		income   decimal.Decimal
		expenses decimal.Decimal
		debt     decimal.Decimal
		rate     decimal.Decimal
		years    int
		ratio    decimal.Decimal
	}{
		{"zero income", decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(11), 20, decimal.NewFromFloat(0.3)},
		{"negative expenses", decimal.NewFromInt(50_000), decimal.NewFromInt(-1), decimal.Zero, decimal.NewFromInt(11), 20, decimal.NewFromFloat(0.3)},
		{"negative debt", decimal.NewFromInt(50_000), decimal.Zero, decimal.NewFromInt(-1), decimal.NewFromInt(11), 20, decimal.NewFromFloat(0.3)},
		{"negative rate", decimal.NewFromInt(50_000), decimal.Zero, decimal.Zero, decimal.NewFromInt(-1), 20, decimal.NewFromFloat(0.3)},
		{"zero term", decimal.NewFromInt(50_000), decimal.Zero, decimal.Zero, decimal.NewFromInt(11), 0, decimal.NewFromFloat(0.3)},
		{"ratio above one", decimal.NewFromInt(50_000), decimal.Zero, decimal.Zero, decimal.NewFromInt(11), 20, decimal.NewFromFloat(1.5)},
		{"zero ratio", decimal.NewFromInt(50_000), decimal.Zero, decimal.Zero, decimal.NewFromInt(11), 20, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MaxAffordableLoan(tt.income, tt.expenses, tt.debt, tt.rate, tt.years, tt.ratio)
			require.Error(t, err)
			assert.True(t, customError.IsInvalidInput(err))
		})
	}
}
