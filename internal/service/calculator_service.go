package service

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/internal/calc"
	"github.com/homebond/bond-engine/internal/config"
	"github.com/homebond/bond-engine/internal/domain"
	"github.com/homebond/bond-engine/internal/rates"
	"github.com/homebond/bond-engine/internal/repository"
	customError "github.com/homebond/bond-engine/pkg/errors"
)

// CalculatorService glues the pure calculation engine to its collaborators:
// the prime-rate source supplies a default interest rate, and completed
// results are persisted without ever blocking the calculation's return.
type CalculatorService struct {
	repo   repository.CalculationRepository
	rates  rates.Source
	config *config.Config
}

func NewCalculatorService(
	repo repository.CalculationRepository,
	rateSource rates.Source,
	config *config.Config,
) *CalculatorService {
	return &CalculatorService{
		repo:   repo,
		rates:  rateSource,
		config: config,
	}
}

// CalculateBond computes the headline monthly repayment for a bond.
func (s *CalculatorService) CalculateBond(ctx context.Context, request *domain.LoanRequest) (*domain.BondResult, error) {
	input, err := s.resolveLoanInput(ctx, request)
	if err != nil {
		return nil, err
	}

	entry, err := s.loanFigures(input)
	if err != nil {
		return nil, err
	}

	result := &domain.BondResult{
		Input:          input,
		MonthlyPayment: entry.MonthlyPayment,
		TotalInterest:  entry.TotalInterest,
		TotalPaid:      entry.TotalPaid,
	}

	s.persist(request.UserID, input, result)
	return result, nil
}

// CalculateAmortisation builds the full period-by-period schedule.
func (s *CalculatorService) CalculateAmortisation(ctx context.Context, request *domain.LoanRequest) (*domain.AmortisationResult, error) {
	input, err := s.resolveLoanInput(ctx, request)
	if err != nil {
		return nil, err
	}

	periodicRate, totalPeriods, err := calc.Normalize(input.AnnualRatePercent, input.TermYears, input.Frequency())
	if err != nil {
		return nil, err
	}

	schedule, err := calc.BuildSchedule(input.BorrowedAmount(), periodicRate, totalPeriods)
	if err != nil {
		return nil, err
	}

	result := &domain.AmortisationResult{
		Input:          input,
		MonthlyPayment: schedule[0].PaymentAmount,
		TotalInterest:  schedule.TotalInterest(),
		Schedule:       schedule,
	}

	s.persist(request.UserID, input, result)
	return result, nil
}

// CalculateAdditionalPayment simulates extra payments against the baseline loan.
func (s *CalculatorService) CalculateAdditionalPayment(ctx context.Context, request *domain.AdditionalPaymentRequest) (*domain.AdditionalPaymentResult, error) {
	rate, err := s.resolveRate(ctx, request.AnnualRatePercent)
	if err != nil {
		return nil, err
	}

	scenario := request.ToScenario()
	scenario.AnnualRatePercent = rate

	simulation, err := calc.Simulate(scenario)
	if err != nil {
		return nil, err
	}

	result := &domain.AdditionalPaymentResult{
		Scenario:             scenario,
		MonthlyPayment:       simulation.MonthlyPayment,
		NominalTermPeriods:   simulation.NominalTermPeriods,
		ActualTermPeriods:    simulation.ActualTermPeriods,
		TermReducedPeriods:   simulation.TermReducedPeriods,
		InterestPaid:         simulation.InterestPaid,
		BaselineInterestPaid: simulation.BaselineInterestPaid,
		InterestSaved:        simulation.InterestSaved,
		Schedule:             simulation.Schedule,
	}

	s.persist(request.UserID, scenario, result)
	return result, nil
}

// CalculateAffordability solves for the largest affordable loan.
func (s *CalculatorService) CalculateAffordability(ctx context.Context, request *domain.AffordabilityRequest) (*domain.AffordabilityResult, error) {
	rate, err := s.resolveRate(ctx, request.AnnualRatePercent)
	if err != nil {
		return nil, err
	}

	ratio := request.AffordabilityRatio
	if ratio.IsZero() {
		ratio = s.config.GetDefaultAffordabilityRatio()
	}

	result, err := calc.MaxAffordableLoan(
		request.NetMonthlyIncome,
		request.MonthlyExpenses,
		request.ExistingDebtPayments,
		rate,
		request.TermYears,
		ratio,
	)
	if err != nil {
		return nil, err
	}

	s.persist(request.UserID, request, result)
	return result, nil
}

// CalculateDepositSavings projects time to reach a deposit target.
func (s *CalculatorService) CalculateDepositSavings(_ context.Context, request *domain.DepositSavingsRequest) (*domain.DepositSavingsResult, error) {
	result, err := calc.MonthsToTarget(
		request.TargetDeposit,
		request.CurrentSavings,
		request.MonthlySavingsAmount,
		request.AnnualReturnPercent,
		s.config.Business.SavingsHorizonMonths,
	)
	if err != nil {
		return nil, err
	}

	s.persist(request.UserID, request, result)
	return result, nil
}

// CalculateTransferCosts applies the duty and fee schedules to a purchase.
func (s *CalculatorService) CalculateTransferCosts(_ context.Context, request *domain.TransferCostRequest) (*domain.TransferCostResult, error) {
	result, err := calc.TransferCosts(request.PurchasePrice, request.LoanAmount, request.FirstTimeBuyer)
	if err != nil {
		return nil, err
	}

	s.persist(request.UserID, request, result)
	return result, nil
}

// CalculateComparison runs the base loan and each variant side by side.
func (s *CalculatorService) CalculateComparison(ctx context.Context, request *domain.ComparisonRequest) (*domain.ComparisonResult, error) {
	base, err := s.resolveLoanInput(ctx, &request.Base)
	if err != nil {
		return nil, err
	}

	variants := make([]domain.LoanInput, 0, len(request.Variants))
	for i := range request.Variants {
		variant, err := s.resolveLoanInput(ctx, &request.Variants[i])
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}

	result, err := calc.Compare(base, variants)
	if err != nil {
		return nil, err
	}

	s.persist(request.UserID, request, result)
	return result, nil
}

// CurrentPrimeRate exposes the rate source for display.
func (s *CalculatorService) CurrentPrimeRate(ctx context.Context) (rates.PrimeRate, error) {
	rate, err := s.rates.Current(ctx)
	if err != nil {
		return rates.PrimeRate{}, customError.WrapRateSourceError(err)
	}
	return rate, nil
}

// GetCalculation retrieves a persisted calculation record.
func (s *CalculatorService) GetCalculation(ctx context.Context, id uuid.UUID) (*domain.CalculationRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCalculationNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return record, nil
}

// ListCalculations retrieves a user's saved calculations, newest first.
func (s *CalculatorService) ListCalculations(ctx context.Context, userID string, limit int) ([]*domain.CalculationRecord, error) {
	records, err := s.repo.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return records, nil
}

// resolveLoanInput fills in the prime rate when the request leaves the rate unset.
func (s *CalculatorService) resolveLoanInput(ctx context.Context, request *domain.LoanRequest) (domain.LoanInput, error) {
	rate, err := s.resolveRate(ctx, request.AnnualRatePercent)
	if err != nil {
		return domain.LoanInput{}, err
	}

	input := request.ToLoanInput()
	input.AnnualRatePercent = rate
	return input, nil
}

func (s *CalculatorService) resolveRate(ctx context.Context, requested decimal.Decimal) (decimal.Decimal, error) {
	if requested.IsPositive() {
		return requested, nil
	}

	prime, err := s.rates.Current(ctx)
	if err != nil {
		return decimal.Zero, customError.WrapRateSourceError(err)
	}

	return prime.Rate, nil
}

func (s *CalculatorService) loanFigures(input domain.LoanInput) (domain.ComparisonEntry, error) {
	result, err := calc.Compare(input, nil)
	if err != nil {
		return domain.ComparisonEntry{}, err
	}
	return result.Base, nil
}

// persist writes the calculation record in the background. Anonymous
// calculations are not persisted; failures are logged and never surfaced to
// the caller.
func (s *CalculatorService) persist(userID string, input interface{}, result domain.Result) {
	if s.repo == nil || userID == "" {
		return
	}

	record, err := domain.NewCalculationRecord(userID, input, result)
	if err != nil {
		log.Printf("failed to build calculation record: %v", err)
		return
	}

	timeout := s.config.GetPersistTimeout()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := s.repo.Save(ctx, record); err != nil {
			log.Printf("failed to persist %s calculation for user %s: %v", record.Kind, userID, err)
		}
	}()
}
