package service

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ltv-advisor/domain"
	"ltv-advisor/logger"
)

// OverpayService answers "should I overpay to reach a lower LTV bracket?".
// It holds no state between calls.
type OverpayService struct {
	validate *validator.Validate
}

func NewOverpayService() *OverpayService {
	return &OverpayService{validate: newValidator()}
}

// Calculate derives the LTV position and compares staying put with
// overpaying into the next bracket under the three tiers.
func (s *OverpayService) Calculate(
	ctx context.Context,
	input domain.MortgageInputs,
) (domain.CalculationResult, error) {

	if err := validateInput(s.validate, input); err != nil {
		return domain.CalculationResult{}, err
	}
	if input.FixedTermYears > input.MortgageTermYears {
		return domain.CalculationResult{}, domain.NewConstraintViolation("fixed_term_within_mortgage_term",
			"fixed term of %d years exceeds mortgage term of %d years", input.FixedTermYears, input.MortgageTermYears)
	}

	exact, display, err := DeriveLTV(input.PropertyValue, input.MortgageBalance)
	if err != nil {
		return domain.CalculationResult{}, err
	}

	proposed := ProposedNextBracket(exact)
	next := proposed
	if input.NextLTVBracketPct != nil {
		next = *input.NextLTVBracketPct
	}
	if next < 0 || next >= exact {
		return domain.CalculationResult{}, domain.NewConstraintViolation("next_bracket_below_current",
			"next_ltv_bracket_pct %.2f must be at least 0 and below the current LTV of %.2f", next, exact)
	}

	amount := AmountToNextBracket(exact, next, input.PropertyValue)
	if amount == 0 {
		return domain.CalculationResult{}, domain.NewInvalidInput("amount_to_next_bracket",
			"is zero, so there is no overpayment to evaluate")
	}

	simple, fairer, optimistic, err := Compare(input, amount)
	if err != nil {
		return domain.CalculationResult{}, err
	}

	logger.Debug(ctx, "overpay calculation complete",
		zap.Float64("ltv_exact_pct", exact),
		zap.Float64("next_bracket_pct", next),
		zap.Float64("amount_to_next_bracket", amount),
		zap.Float64("monthly_savings", simple.MonthlySavings),
	)

	return domain.CalculationResult{
		FixedTermYears: input.FixedTermYears,
		PropertyValue:  input.PropertyValue,
		LTV: domain.LTVSummary{
			ExactPct:               exact,
			DisplayPct:             display,
			RoundedUp:              float64(display) != exact,
			CurrentBracketPct:      CurrentBracket(exact),
			ProposedNextBracketPct: proposed,
			NextBracketPct:         next,
			AmountToNextBracket:    amount,
		},
		BracketTable: BracketTable(input.PropertyValue),
		Simple:       simple,
		Fairer:       fairer,
		Optimistic:   optimistic,
	}, nil
}

// Brackets returns the mortgage amount at each LTV bracket for a property.
func (s *OverpayService) Brackets(propertyValue float64) ([]domain.BracketEntry, error) {
	if propertyValue <= 0 || math.IsNaN(propertyValue) {
		return nil, domain.NewInvalidInput("property_value", "must be greater than zero, got %v", propertyValue)
	}
	if propertyValue > MaxPropertyValue {
		return nil, domain.NewInvalidInput("property_value", "must not exceed %.0f, got %v", MaxPropertyValue, propertyValue)
	}
	return BracketTable(propertyValue), nil
}
