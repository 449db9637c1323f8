package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/pkg/utils"
)

// CalculationKind discriminates the calculator that produced a result.
type CalculationKind string

const (
	KindBond          CalculationKind = "bond"
	KindAffordability CalculationKind = "affordability"
	KindDeposit       CalculationKind = "deposit"
	KindTransfer      CalculationKind = "transfer"
	KindAdditional    CalculationKind = "additional"
	KindAmortisation  CalculationKind = "amortisation"
	KindComparison    CalculationKind = "comparison"
)

// DisplayRow is one rendered label/value pair. Handing these back alongside
// the raw figures keeps presentation formatting out of the callers.
type DisplayRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Result is the tagged union over calculator outcomes. Each variant carries
// its raw numeric inputs and headline figures; DisplayRows renders the
// figures for direct display.
type Result interface {
	Kind() CalculationKind
	DisplayRows() []DisplayRow
}

// BondResult is the headline repayment figure for a bond.
type BondResult struct {
	Input          LoanInput       `json:"input"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
}

func (r *BondResult) Kind() CalculationKind { return KindBond }

func (r *BondResult) DisplayRows() []DisplayRow {
	return []DisplayRow{
		{Label: "Monthly repayment", Value: utils.FormatRand(r.MonthlyPayment)},
		{Label: "Total interest", Value: utils.FormatRand(r.TotalInterest)},
		{Label: "Total repaid", Value: utils.FormatRand(r.TotalPaid)},
	}
}

// AmortisationResult carries the full period-by-period schedule.
type AmortisationResult struct {
	Input          LoanInput            `json:"input"`
	MonthlyPayment decimal.Decimal      `json:"monthly_payment"`
	TotalInterest  decimal.Decimal      `json:"total_interest"`
	Schedule       AmortizationSchedule `json:"schedule"`
}

func (r *AmortisationResult) Kind() CalculationKind { return KindAmortisation }

func (r *AmortisationResult) DisplayRows() []DisplayRow {
	return []DisplayRow{
		{Label: "Monthly repayment", Value: utils.FormatRand(r.MonthlyPayment)},
		{Label: "Total interest", Value: utils.FormatRand(r.TotalInterest)},
		{Label: "Number of payments", Value: fmt.Sprintf("%d", len(r.Schedule))},
	}
}

// AdditionalPaymentResult reports the effect of extra payments against the
// baseline loan.
type AdditionalPaymentResult struct {
	Scenario             AdditionalPaymentScenario `json:"scenario"`
	MonthlyPayment       decimal.Decimal           `json:"monthly_payment"`
	NominalTermPeriods   int                       `json:"nominal_term_periods"`
	ActualTermPeriods    int                       `json:"actual_term_periods"`
	TermReducedPeriods   int                       `json:"term_reduced_periods"`
	InterestPaid         decimal.Decimal           `json:"interest_paid"`
	BaselineInterestPaid decimal.Decimal           `json:"baseline_interest_paid"`
	InterestSaved        decimal.Decimal           `json:"interest_saved"`
	Schedule             AmortizationSchedule      `json:"schedule"`
}

func (r *AdditionalPaymentResult) Kind() CalculationKind { return KindAdditional }

func (r *AdditionalPaymentResult) DisplayRows() []DisplayRow {
	return []DisplayRow{
		{Label: "Loan paid off in", Value: fmt.Sprintf("%d months", r.ActualTermPeriods)},
		{Label: "Term reduced by", Value: fmt.Sprintf("%d months", r.TermReducedPeriods)},
		{Label: "Interest paid", Value: utils.FormatRand(r.InterestPaid)},
		{Label: "Interest saved", Value: utils.FormatRand(r.InterestSaved)},
	}
}

// AffordabilityResult is the inverse calculation: the largest loan the
// stated income can service.
type AffordabilityResult struct {
	NetMonthlyIncome      decimal.Decimal `json:"net_monthly_income"`
	MonthlyExpenses       decimal.Decimal `json:"monthly_expenses"`
	ExistingDebtPayments  decimal.Decimal `json:"existing_debt_payments"`
	AnnualRatePercent     decimal.Decimal `json:"annual_rate_percent"`
	TermYears             int             `json:"term_years"`
	AffordabilityRatio    decimal.Decimal `json:"affordability_ratio"`
	MaxMonthlyInstallment decimal.Decimal `json:"max_monthly_installment"`
	MaxAffordableLoan     decimal.Decimal `json:"max_affordable_loan"`
}

func (r *AffordabilityResult) Kind() CalculationKind { return KindAffordability }

func (r *AffordabilityResult) DisplayRows() []DisplayRow {
	return []DisplayRow{
		{Label: "You could qualify for", Value: utils.FormatRand(r.MaxAffordableLoan)},
		{Label: "Maximum monthly instalment", Value: utils.FormatRand(r.MaxMonthlyInstallment)},
		{Label: "At interest rate", Value: utils.FormatPercent(r.AnnualRatePercent)},
	}
}

// DepositOutcome classifies the deposit-savings projection.
type DepositOutcome string

const (
	DepositOutcomeReached         DepositOutcome = "reached"
	DepositOutcomeUnreachable     DepositOutcome = "unreachable"
	DepositOutcomeHorizonExceeded DepositOutcome = "horizon_exceeded"
)

// DepositSavingsResult is the time-to-target projection for saving a deposit.
type DepositSavingsResult struct {
	TargetDeposit        decimal.Decimal `json:"target_deposit"`
	CurrentSavings       decimal.Decimal `json:"current_savings"`
	MonthlySavingsAmount decimal.Decimal `json:"monthly_savings_amount"`
	AnnualReturnPercent  decimal.Decimal `json:"annual_return_percent"`
	Outcome              DepositOutcome  `json:"outcome"`
	MonthsToTarget       int             `json:"months_to_target"`
	ProjectedBalance     decimal.Decimal `json:"projected_balance"`
}

func (r *DepositSavingsResult) Kind() CalculationKind { return KindDeposit }

func (r *DepositSavingsResult) DisplayRows() []DisplayRow {
	switch r.Outcome {
	case DepositOutcomeReached:
		return []DisplayRow{
			{Label: "Time to reach your deposit", Value: fmt.Sprintf("%d months", r.MonthsToTarget)},
			{Label: "Projected balance", Value: utils.FormatRand(r.ProjectedBalance)},
		}
	case DepositOutcomeHorizonExceeded:
		return []DisplayRow{
			{Label: "Time to reach your deposit", Value: "more than 100 years"},
		}
	default:
		return []DisplayRow{
			{Label: "Time to reach your deposit", Value: "never at the current savings rate"},
		}
	}
}

// TransferCostResult is the once-off cost breakdown for a property purchase.
type TransferCostResult struct {
	PurchasePrice         decimal.Decimal `json:"purchase_price"`
	LoanAmount            decimal.Decimal `json:"loan_amount"`
	FirstTimeBuyer        bool            `json:"first_time_buyer"`
	TransferDuty          decimal.Decimal `json:"transfer_duty"`
	TransferAttorneyFee   decimal.Decimal `json:"transfer_attorney_fee"`
	BondRegistrationFee   decimal.Decimal `json:"bond_registration_fee"`
	BondAttorneyFee       decimal.Decimal `json:"bond_attorney_fee"`
	Total                 decimal.Decimal `json:"total"`
	ScheduleEffectiveDate string          `json:"schedule_effective_date"`
}

func (r *TransferCostResult) Kind() CalculationKind { return KindTransfer }

func (r *TransferCostResult) DisplayRows() []DisplayRow {
	return []DisplayRow{
		{Label: "Transfer duty", Value: utils.FormatRand(r.TransferDuty)},
		{Label: "Transfer attorney fee", Value: utils.FormatRand(r.TransferAttorneyFee)},
		{Label: "Bond registration fee", Value: utils.FormatRand(r.BondRegistrationFee)},
		{Label: "Bond attorney fee", Value: utils.FormatRand(r.BondAttorneyFee)},
		{Label: "Total once-off costs", Value: utils.FormatRand(r.Total)},
	}
}

// ComparisonEntry is one loan variant's figures and its deltas against the
// comparison base case.
type ComparisonEntry struct {
	Input          LoanInput       `json:"input"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	PaymentDelta   decimal.Decimal `json:"payment_delta"`
	InterestDelta  decimal.Decimal `json:"interest_delta"`
}

// ComparisonResult is the side-by-side loan comparison, variants in input order.
type ComparisonResult struct {
	Base     ComparisonEntry   `json:"base"`
	Variants []ComparisonEntry `json:"variants"`
}

func (r *ComparisonResult) Kind() CalculationKind { return KindComparison }

func (r *ComparisonResult) DisplayRows() []DisplayRow {
	rows := []DisplayRow{
		{Label: "Base monthly repayment", Value: utils.FormatRand(r.Base.MonthlyPayment)},
	}
	for i, v := range r.Variants {
		rows = append(rows, DisplayRow{
			Label: fmt.Sprintf("Option %d monthly repayment", i+1),
			Value: utils.FormatRand(v.MonthlyPayment),
		})
	}
	return rows
}
