package calc

import (
	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/internal/domain"
	customError "github.com/homebond/bond-engine/pkg/errors"
)

// Compare runs the closed-form repayment figures for the base loan and each
// variant, returning entries in input order with each variant's deltas
// against the base. Inputs are never mutated.
func Compare(base domain.LoanInput, variants []domain.LoanInput) (*domain.ComparisonResult, error) {
	baseEntry, err := comparisonEntry(base)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ComparisonEntry, 0, len(variants))
	for _, variant := range variants {
		entry, err := comparisonEntry(variant)
		if err != nil {
			return nil, err
		}

		entry.PaymentDelta = entry.MonthlyPayment.Sub(baseEntry.MonthlyPayment)
		entry.InterestDelta = entry.TotalInterest.Sub(baseEntry.TotalInterest)
		entries = append(entries, entry)
	}

	return &domain.ComparisonResult{
		Base:     baseEntry,
		Variants: entries,
	}, nil
}

func comparisonEntry(input domain.LoanInput) (domain.ComparisonEntry, error) {
	periodicRate, totalPeriods, err := Normalize(input.AnnualRatePercent, input.TermYears, input.Frequency())
	if err != nil {
		return domain.ComparisonEntry{}, err
	}

	principal := input.BorrowedAmount()
	if !principal.IsPositive() {
		return domain.ComparisonEntry{}, customError.WrapInvalidPrincipal(principal.String())
	}

	payment := PaymentPerPeriod(principal, periodicRate, totalPeriods)
	totalPaid := payment.Mul(decimal.NewFromInt(int64(totalPeriods)))

	return domain.ComparisonEntry{
		Input:          input,
		MonthlyPayment: payment,
		TotalInterest:  totalPaid.Sub(principal),
		TotalPaid:      totalPaid,
	}, nil
}
