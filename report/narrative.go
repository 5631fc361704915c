package report

import (
	"fmt"
	"strings"

	"ltv-advisor/domain"
)

// Narrative walks through a calculation in plain English, tier by tier.
func Narrative(result domain.CalculationResult) string {
	var b strings.Builder
	ltv := result.LTV
	simple := result.Simple
	years := result.FixedTermYears

	fmt.Fprintf(&b, "Your current LTV is %d%%.", ltv.DisplayPct)
	if ltv.RoundedUp {
		fmt.Fprintf(&b, " Mortgage providers round up to this from your actual %s LTV.", Percent(ltv.ExactPct))
	}
	fmt.Fprintf(&b, " You would need to spend %s to reach the %s LTV bracket.\n\n",
		Money(ltv.AmountToNextBracket), Percent(ltv.NextBracketPct))

	b.WriteString("Simple results\n")
	fmt.Fprintf(&b, "At your current LTV rate you would pay %s a month; at the target LTV rate you would pay %s a month.\n",
		Money(simple.Current.MonthlyPayment), Money(simple.Next.MonthlyPayment))
	fmt.Fprintf(&b, "That is a difference of %s per month, a total saving of %s after %d years.\n",
		Money(simple.MonthlySavings), Money(simple.TotalSavings), years)
	fmt.Fprintf(&b, "Your remaining balance after %d years would be %s at your current rate and %s at the target rate.\n",
		years, Money(simple.Current.BalanceAfterFixedTerm), Money(simple.Next.BalanceAfterFixedTerm))
	fmt.Fprintf(&b, "You would be %s better off after %d years for an initial investment of %s, "+
		"the equivalent of a guaranteed %s annualised return.\n\n",
		Money(simple.NetWorthDiff), years, Money(ltv.AmountToNextBracket), Percent(simple.EquivalentAnnualReturnPct))

	fairer := result.Fairer
	b.WriteString("Fairer results\n")
	fmt.Fprintf(&b, "Putting the %s monthly saving towards overpayments or savings at %s grows it to %s "+
		"instead of %s, an increase of %s.\n",
		Money(simple.MonthlySavings), Percent(fairer.ReinvestRatePct), Money(fairer.SavingsFutureValue),
		Money(simple.TotalSavings), Money(fairer.IncreaseOverSimple))
	fmt.Fprintf(&b, "Your net worth after %d years would be %s, leaving you %s better off.\n\n",
		years, Money(fairer.NetWorth), Money(fairer.NetWorthDiff))

	b.WriteString("Optimistic results\n")
	for _, s := range result.Optimistic.Scenarios {
		fmt.Fprintf(&b, "Earning %s on %s a month would make your net worth %s, %s more than overpaying.\n",
			Percent(s.ReinvestRatePct), Money(simple.MonthlySavings), Money(s.NetWorth), Money(s.DeltaVsFairer))
	}

	return strings.TrimRight(b.String(), "\n")
}
