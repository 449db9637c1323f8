package domain

import (
	"github.com/shopspring/decimal"
)

// AdditionalPaymentScenario extends a loan with extra recurring and/or
// one-time payments applied directly against principal.
//
// ExtraMonthlyStartPeriod/EndPeriod bound the recurring extra payment
// (1-based, inclusive); zero means unbounded on that side. The escalator
// grows the recurring amount by MonthlyIncreaseAmount every
// IncreaseFrequencyMonths periods.
type AdditionalPaymentScenario struct {
	LoanInput

	ExtraMonthlyAmount      decimal.Decimal `json:"extra_monthly_amount"`
	ExtraMonthlyStartPeriod int             `json:"extra_monthly_start_period,omitempty"`
	ExtraMonthlyEndPeriod   int             `json:"extra_monthly_end_period,omitempty"`

	LumpSumAmount decimal.Decimal `json:"lump_sum_amount"`
	LumpSumPeriod int             `json:"lump_sum_period,omitempty"`

	MonthlyIncreaseAmount   decimal.Decimal `json:"monthly_increase_amount"`
	IncreaseFrequencyMonths int             `json:"increase_frequency_months,omitempty"`
}
