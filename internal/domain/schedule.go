package domain

import (
	"github.com/shopspring/decimal"
)

// AmortizationPeriod is one row of an amortization schedule: the fixed
// installment split into its interest and principal portions, and the
// balance left after the payment.
type AmortizationPeriod struct {
	PeriodIndex      int             `json:"period_index"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// AmortizationSchedule is the ordered sequence of payment periods.
// The final period's RemainingBalance is exactly zero and the principal
// portions sum to the original principal.
type AmortizationSchedule []AmortizationPeriod

// TotalInterest sums the interest portion across all periods.
func (s AmortizationSchedule) TotalInterest() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s {
		total = total.Add(p.InterestPortion)
	}
	return total
}

// TotalPrincipal sums the principal portion across all periods.
func (s AmortizationSchedule) TotalPrincipal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s {
		total = total.Add(p.PrincipalPortion)
	}
	return total
}

// TotalPaid sums the payment amounts across all periods.
func (s AmortizationSchedule) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s {
		total = total.Add(p.PaymentAmount)
	}
	return total
}
