package service

import (
	"fmt"
	"math"

	"ltv-advisor/domain"
)

// scenario prices the mortgage at one rate over the full term and projects
// the balance left when the fix ends.
func scenario(ratePct, principal float64, termYears, fixedTermYears int) (domain.DerivedScenario, error) {
	rate := MonthlyRate(ratePct)

	payment, err := MonthlyPayment(rate, Periods(termYears), principal)
	if err != nil {
		return domain.DerivedScenario{}, err
	}

	return domain.DerivedScenario{
		LTVRatePct:            ratePct,
		Principal:             principal,
		MonthlyPayment:        payment,
		BalanceAfterFixedTerm: ProjectBalance(rate, Periods(fixedTermYears), payment, principal),
	}, nil
}

// EquivalentAnnualReturn expresses the net worth gained over years as an
// annualised percentage return on amount.
func EquivalentAnnualReturn(netWorthDiff, amount float64, years int) (float64, error) {
	if amount == 0 {
		return 0, domain.NewInvalidInput("amount_to_next_bracket", "is zero, so there is no overpayment to earn a return on")
	}
	if years <= 0 {
		return 0, domain.NewInvalidInput("fixed_term_years", "must be positive, got %d", years)
	}

	pct := (math.Pow(netWorthDiff/amount, 1/float64(years)) - 1) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, domain.NewInvalidInput("equivalent_annual_return_pct",
			"net worth change of %.2f on %.2f has no real %d-year annualised rate", netWorthDiff, amount, years)
	}
	return pct, nil
}

// Compare runs the Simple, Fairer and Optimistic tiers. amount is the lump
// sum paid to reach the next bracket.
func Compare(in domain.MortgageInputs, amount float64) (domain.SimpleResult, domain.FairerResult, domain.OptimisticResult, error) {
	simple, err := simpleTier(in, amount)
	if err != nil {
		return domain.SimpleResult{}, domain.FairerResult{}, domain.OptimisticResult{}, err
	}
	fairer := fairerTier(in, simple)
	optimistic := optimisticTier(in, simple, fairer)

	if err := checkFinite(simple, fairer, optimistic); err != nil {
		return domain.SimpleResult{}, domain.FairerResult{}, domain.OptimisticResult{}, err
	}
	return simple, fairer, optimistic, nil
}

// checkFinite rejects results that overflowed, which extreme rates over very
// long fixed terms can do.
func checkFinite(simple domain.SimpleResult, fairer domain.FairerResult, optimistic domain.OptimisticResult) error {
	type named struct {
		field string
		value float64
	}
	values := []named{
		{"current.balance_after_fixed_term", simple.Current.BalanceAfterFixedTerm},
		{"next.balance_after_fixed_term", simple.Next.BalanceAfterFixedTerm},
		{"net_worth_diff", simple.NetWorthDiff},
		{"fairer.net_worth", fairer.NetWorth},
	}
	for _, s := range optimistic.Scenarios {
		values = append(values, named{fmt.Sprintf("optimistic.net_worth@%.2f", s.ReinvestRatePct), s.NetWorth})
	}

	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return domain.NewInvalidInput(v.field, "is not a finite number for these rates and terms")
		}
	}
	return nil
}

func simpleTier(in domain.MortgageInputs, amount float64) (domain.SimpleResult, error) {
	current, err := scenario(in.CurrentLTVRatePct, in.MortgageBalance, in.MortgageTermYears, in.FixedTermYears)
	if err != nil {
		return domain.SimpleResult{}, err
	}
	next, err := scenario(in.NextLTVRatePct, in.MortgageBalance-amount, in.MortgageTermYears, in.FixedTermYears)
	if err != nil {
		return domain.SimpleResult{}, err
	}

	savings := current.MonthlyPayment - next.MonthlyPayment
	total := savings * float64(Periods(in.FixedTermYears))

	netWorthCurrent := in.PropertyValue - current.BalanceAfterFixedTerm
	netWorthNext := in.PropertyValue - next.BalanceAfterFixedTerm + total
	diff := netWorthNext - netWorthCurrent

	annualReturn, err := EquivalentAnnualReturn(diff, amount, in.FixedTermYears)
	if err != nil {
		return domain.SimpleResult{}, err
	}

	return domain.SimpleResult{
		Current:                   current,
		Next:                      next,
		MonthlySavings:            savings,
		TotalSavings:              total,
		NetWorthCurrent:           netWorthCurrent,
		NetWorthNext:              netWorthNext,
		NetWorthDiff:              diff,
		EquivalentAnnualReturnPct: annualReturn,
	}, nil
}

func fairerTier(in domain.MortgageInputs, simple domain.SimpleResult) domain.FairerResult {
	fv := InvestmentValue(MonthlyRate(in.NextLTVRatePct), Periods(in.FixedTermYears), simple.MonthlySavings)
	netWorth := in.PropertyValue + fv - simple.Next.BalanceAfterFixedTerm

	return domain.FairerResult{
		ReinvestRatePct:    in.NextLTVRatePct,
		SavingsFutureValue: fv,
		IncreaseOverSimple: fv - simple.TotalSavings,
		NetWorth:           netWorth,
		NetWorthDiff:       netWorth - simple.NetWorthCurrent,
	}
}

func optimisticTier(in domain.MortgageInputs, simple domain.SimpleResult, fairer domain.FairerResult) domain.OptimisticResult {
	scenarios := make([]domain.OptimisticScenario, 0, len(OptimisticUpliftsPct))
	for _, uplift := range OptimisticUpliftsPct {
		ratePct := in.NextLTVRatePct + uplift
		fv := InvestmentValue(MonthlyRate(ratePct), Periods(in.FixedTermYears), simple.MonthlySavings)
		netWorth := in.PropertyValue + fv - simple.Next.BalanceAfterFixedTerm

		scenarios = append(scenarios, domain.OptimisticScenario{
			ReinvestRatePct:    ratePct,
			SavingsFutureValue: fv,
			NetWorth:           netWorth,
			DeltaVsFairer:      netWorth - fairer.NetWorth,
		})
	}
	return domain.OptimisticResult{Scenarios: scenarios}
}
