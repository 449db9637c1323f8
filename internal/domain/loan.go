package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentFrequency determines how many installments fall in a year.
type PaymentFrequency string

const (
	FrequencyMonthly  PaymentFrequency = "monthly"
	FrequencyBiweekly PaymentFrequency = "biweekly"
)

// PeriodsPerYear returns the number of payment periods in one year,
// or 0 for an unrecognised frequency.
func (f PaymentFrequency) PeriodsPerYear() int {
	switch f {
	case FrequencyMonthly:
		return 12
	case FrequencyBiweekly:
		return 26
	default:
		return 0
	}
}

// LoanInput is the immutable set of assumptions every calculator starts from.
type LoanInput struct {
	Principal         decimal.Decimal  `json:"principal"`
	AnnualRatePercent decimal.Decimal  `json:"annual_rate_percent"`
	TermYears         int              `json:"term_years"`
	DepositAmount     decimal.Decimal  `json:"deposit_amount"`
	PaymentFrequency  PaymentFrequency `json:"payment_frequency"`
}

// Frequency returns the configured frequency, defaulting to monthly when unset.
func (l LoanInput) Frequency() PaymentFrequency {
	if l.PaymentFrequency == "" {
		return FrequencyMonthly
	}
	return l.PaymentFrequency
}

// BorrowedAmount is the principal net of any deposit put down.
func (l LoanInput) BorrowedAmount() decimal.Decimal {
	borrowed := l.Principal.Sub(l.DepositAmount)
	if borrowed.IsNegative() {
		return decimal.Zero
	}
	return borrowed
}
