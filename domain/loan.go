package domain

// LoanInput describes a single fixed-rate repayment mortgage.
type LoanInput struct {
	Principal      float64 `json:"principal" validate:"gt=0,lte=100000000"`
	AnnualRatePct  float64 `json:"annual_rate_pct" validate:"gte=0,lte=1000"`
	TermYears      int     `json:"term_years" validate:"gte=1,lte=100"`
	FixedTermYears int     `json:"fixed_term_years" validate:"gte=0,lte=100"`
}

type LoanResult struct {
	MonthlyPayment        float64 `json:"monthly_payment"`
	TotalPayment          float64 `json:"total_payment"`
	TotalInterest         float64 `json:"total_interest"`
	BalanceAfterFixedTerm float64 `json:"balance_after_fixed_term"`
}
