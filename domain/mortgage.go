package domain

// MortgageInputs is what the borrower supplies for one calculation.
// NextLTVBracketPct is optional; when nil the proposed bracket below the
// current LTV is used.
type MortgageInputs struct {
	PropertyValue     float64  `json:"property_value" validate:"gt=0,lte=100000000"`
	MortgageBalance   float64  `json:"mortgage_balance" validate:"gte=0,lte=100000000"`
	MortgageTermYears int      `json:"mortgage_term_years" validate:"gte=1,lte=100"`
	FixedTermYears    int      `json:"fixed_term_years" validate:"gte=1,lte=100"`
	CurrentLTVRatePct float64  `json:"current_ltv_rate_pct" validate:"gte=0,lte=1000"`
	NextLTVRatePct    float64  `json:"next_ltv_rate_pct" validate:"gte=0,lte=1000"`
	NextLTVBracketPct *float64 `json:"next_ltv_bracket_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type LTVSummary struct {
	ExactPct               float64 `json:"exact_pct"`
	DisplayPct             int     `json:"display_pct"`
	RoundedUp              bool    `json:"rounded_up"`
	CurrentBracketPct      float64 `json:"current_bracket_pct"`
	ProposedNextBracketPct float64 `json:"proposed_next_bracket_pct"`
	NextBracketPct         float64 `json:"next_bracket_pct"`
	AmountToNextBracket    float64 `json:"amount_to_next_bracket"`
}

type BracketEntry struct {
	LTVPct         int     `json:"ltv_pct"`
	MortgageAmount float64 `json:"mortgage_amount"`
}

// DerivedScenario is the mortgage at one LTV rate over the full term,
// projected to the end of the fixed term.
type DerivedScenario struct {
	LTVRatePct            float64 `json:"ltv_rate_pct"`
	Principal             float64 `json:"principal"`
	MonthlyPayment        float64 `json:"monthly_payment"`
	BalanceAfterFixedTerm float64 `json:"balance_after_fixed_term"`
}

// SimpleResult banks the monthly savings without any growth.
type SimpleResult struct {
	Current                   DerivedScenario `json:"current"`
	Next                      DerivedScenario `json:"next"`
	MonthlySavings            float64         `json:"monthly_savings"`
	TotalSavings              float64         `json:"total_savings"`
	NetWorthCurrent           float64         `json:"net_worth_current"`
	NetWorthNext              float64         `json:"net_worth_next"`
	NetWorthDiff              float64         `json:"net_worth_diff"`
	EquivalentAnnualReturnPct float64         `json:"equivalent_annual_return_pct"`
}

// FairerResult reinvests the monthly savings at the next LTV rate.
type FairerResult struct {
	ReinvestRatePct    float64 `json:"reinvest_rate_pct"`
	SavingsFutureValue float64 `json:"savings_future_value"`
	IncreaseOverSimple float64 `json:"increase_over_simple"`
	NetWorth           float64 `json:"net_worth"`
	NetWorthDiff       float64 `json:"net_worth_diff"`
}

type OptimisticScenario struct {
	ReinvestRatePct    float64 `json:"reinvest_rate_pct"`
	SavingsFutureValue float64 `json:"savings_future_value"`
	NetWorth           float64 `json:"net_worth"`
	DeltaVsFairer      float64 `json:"delta_vs_fairer"`
}

type OptimisticResult struct {
	Scenarios []OptimisticScenario `json:"scenarios"`
}

type CalculationResult struct {
	FixedTermYears int              `json:"fixed_term_years"`
	PropertyValue  float64          `json:"property_value"`
	LTV            LTVSummary       `json:"ltv"`
	BracketTable   []BracketEntry   `json:"bracket_table"`
	Simple         SimpleResult     `json:"simple"`
	Fairer         FairerResult     `json:"fairer"`
	Optimistic     OptimisticResult `json:"optimistic"`
}
