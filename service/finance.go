package service

import (
	"math"

	"ltv-advisor/domain"
)

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualRatePct float64) float64 {
	return annualRatePct / 100 / MonthsPerYear
}

// Periods converts whole years into monthly periods.
func Periods(years int) int {
	return years * MonthsPerYear
}

// compound returns (1+r)^n and the annuity factor ((1+r)^n - 1) / r, which
// is n when r is zero. Both go through log1p/expm1 so tiny rates over long
// terms do not lose precision.
func compound(rate float64, periods int) (growth, factor float64) {
	n := float64(periods)
	if rate == 0 {
		return 1, n
	}
	x := n * math.Log1p(rate)
	return math.Exp(x), math.Expm1(x) / rate
}

// MonthlyPayment returns the level payment that retires principal over
// numPayments periods at monthlyRate, as a positive amount.
// Formula: M = P * r / (1 - (1+r)^-n)
func MonthlyPayment(monthlyRate float64, numPayments int, principal float64) (float64, error) {
	if numPayments <= 0 {
		return 0, domain.NewInvalidInput("num_payments", "must be positive, got %d", numPayments)
	}
	if monthlyRate < 0 || math.IsNaN(monthlyRate) || math.IsInf(monthlyRate, 0) {
		return 0, domain.NewInvalidInput("monthly_rate", "must be a non-negative number, got %v", monthlyRate)
	}

	if monthlyRate == 0 {
		return principal / float64(numPayments), nil
	}

	n := float64(numPayments)
	return principal * monthlyRate / -math.Expm1(-n*math.Log1p(monthlyRate)), nil
}

// ProjectBalance returns what is still owed after paying payment for
// periods months against principal accruing at monthlyRate.
// Formula: B = P(1+r)^n - M((1+r)^n - 1)/r
func ProjectBalance(monthlyRate float64, periods int, payment, principal float64) float64 {
	growth, factor := compound(monthlyRate, periods)
	return principal*growth - payment*factor
}

// InvestmentValue is ProjectBalance seen from the saver's side: nothing is
// owed up front and each contribution is paid in rather than paid off, so
// the projection is negated to give the accumulated pot.
func InvestmentValue(monthlyRate float64, periods int, contribution float64) float64 {
	return -ProjectBalance(monthlyRate, periods, contribution, 0)
}
