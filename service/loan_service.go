package service

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ltv-advisor/domain"
	"ltv-advisor/logger"
)

func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// LoanService prices a single fixed-rate mortgage.
type LoanService struct {
	validate *validator.Validate
}

func NewLoanService() *LoanService {
	return &LoanService{validate: newValidator()}
}

// CalculateLoan returns the monthly payment, lifetime cost and the balance
// left when the fixed term ends.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {

	if err := validateInput(s.validate, input); err != nil {
		return domain.LoanResult{}, err
	}
	if input.FixedTermYears > input.TermYears {
		return domain.LoanResult{}, domain.NewConstraintViolation("fixed_term_within_mortgage_term",
			"fixed term of %d years exceeds mortgage term of %d years", input.FixedTermYears, input.TermYears)
	}

	rate := MonthlyRate(input.AnnualRatePct)
	n := Periods(input.TermYears)

	payment, err := MonthlyPayment(rate, n, input.Principal)
	if err != nil {
		return domain.LoanResult{}, err
	}

	total := payment * float64(n)
	balance := ProjectBalance(rate, Periods(input.FixedTermYears), payment, input.Principal)
	if math.IsNaN(balance) || math.IsInf(balance, 0) {
		return domain.LoanResult{}, domain.NewInvalidInput("balance_after_fixed_term",
			"is not a finite number for these rates and terms")
	}

	logger.Debug(ctx, "loan calculated",
		zap.Float64("principal", input.Principal),
		zap.Float64("monthly_payment", payment),
	)

	return domain.LoanResult{
		MonthlyPayment:        roundTo2Decimals(payment),
		TotalPayment:          roundTo2Decimals(total),
		TotalInterest:         roundTo2Decimals(total - input.Principal),
		BalanceAfterFixedTerm: roundTo2Decimals(balance),
	}, nil
}
