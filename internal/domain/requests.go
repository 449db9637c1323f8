package domain

import (
	"github.com/shopspring/decimal"
)

// Request DTOs for the calculator endpoints. Numeric range validation of
// the amounts happens in the calc package; the validator tags here only
// reject structurally bad requests early. A zero AnnualRatePercent means
// "use the current prime rate".

type LoanRequest struct {
	UserID            string           `json:"user_id,omitempty"`
	Principal         decimal.Decimal  `json:"principal" validate:"required,gt=0"`
	AnnualRatePercent decimal.Decimal  `json:"annual_rate_percent" validate:"gte=0"`
	TermYears         int              `json:"term_years" validate:"required,gt=0"`
	DepositAmount     decimal.Decimal  `json:"deposit_amount" validate:"gte=0"`
	PaymentFrequency  PaymentFrequency `json:"payment_frequency" validate:"omitempty,oneof=monthly biweekly"`
}

func (r *LoanRequest) ToLoanInput() LoanInput {
	return LoanInput{
		Principal:         r.Principal,
		AnnualRatePercent: r.AnnualRatePercent,
		TermYears:         r.TermYears,
		DepositAmount:     r.DepositAmount,
		PaymentFrequency:  r.PaymentFrequency,
	}
}

type AdditionalPaymentRequest struct {
	LoanRequest

	ExtraMonthlyAmount      decimal.Decimal `json:"extra_monthly_amount" validate:"gte=0"`
	ExtraMonthlyStartPeriod int             `json:"extra_monthly_start_period" validate:"gte=0"`
	ExtraMonthlyEndPeriod   int             `json:"extra_monthly_end_period" validate:"gte=0"`
	LumpSumAmount           decimal.Decimal `json:"lump_sum_amount" validate:"gte=0"`
	LumpSumPeriod           int             `json:"lump_sum_period" validate:"gte=0"`
	MonthlyIncreaseAmount   decimal.Decimal `json:"monthly_increase_amount" validate:"gte=0"`
	IncreaseFrequencyMonths int             `json:"increase_frequency_months" validate:"gte=0"`
}

func (r *AdditionalPaymentRequest) ToScenario() AdditionalPaymentScenario {
	return AdditionalPaymentScenario{
		LoanInput:               r.ToLoanInput(),
		ExtraMonthlyAmount:      r.ExtraMonthlyAmount,
		ExtraMonthlyStartPeriod: r.ExtraMonthlyStartPeriod,
		ExtraMonthlyEndPeriod:   r.ExtraMonthlyEndPeriod,
		LumpSumAmount:           r.LumpSumAmount,
		LumpSumPeriod:           r.LumpSumPeriod,
		MonthlyIncreaseAmount:   r.MonthlyIncreaseAmount,
		IncreaseFrequencyMonths: r.IncreaseFrequencyMonths,
	}
}

type AffordabilityRequest struct {
	UserID               string          `json:"user_id,omitempty"`
	NetMonthlyIncome     decimal.Decimal `json:"net_monthly_income" validate:"required,gt=0"`
	MonthlyExpenses      decimal.Decimal `json:"monthly_expenses" validate:"gte=0"`
	ExistingDebtPayments decimal.Decimal `json:"existing_debt_payments" validate:"gte=0"`
	AnnualRatePercent    decimal.Decimal `json:"annual_rate_percent" validate:"gte=0"`
	TermYears            int             `json:"term_years" validate:"required,gt=0"`
	AffordabilityRatio   decimal.Decimal `json:"affordability_ratio" validate:"gte=0,lte=1"`
}

type DepositSavingsRequest struct {
	UserID               string          `json:"user_id,omitempty"`
	TargetDeposit        decimal.Decimal `json:"target_deposit" validate:"required,gt=0"`
	CurrentSavings       decimal.Decimal `json:"current_savings" validate:"gte=0"`
	MonthlySavingsAmount decimal.Decimal `json:"monthly_savings_amount" validate:"gte=0"`
	AnnualReturnPercent  decimal.Decimal `json:"annual_return_percent" validate:"gte=0"`
}

type TransferCostRequest struct {
	UserID         string          `json:"user_id,omitempty"`
	PurchasePrice  decimal.Decimal `json:"purchase_price" validate:"required,gt=0"`
	LoanAmount     decimal.Decimal `json:"loan_amount" validate:"gte=0"`
	FirstTimeBuyer bool            `json:"first_time_buyer"`
}

type ComparisonRequest struct {
	UserID   string        `json:"user_id,omitempty"`
	Base     LoanRequest   `json:"base" validate:"required"`
	Variants []LoanRequest `json:"variants" validate:"required,min=1,dive"`
}
