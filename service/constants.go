package service

const (
	MonthsPerYear = 12

	BracketStepPct = 5.0
	MinBracketPct  = 5
	MaxBracketPct  = 95

	MaxPropertyValue = 100_000_000.0 // £100m, same ceiling as the balance
	MaxRatePct       = 1000.0
	MaxTermYears     = 100 // 1200 monthly periods
)

// OptimisticUpliftsPct are the percentage points added to the next LTV rate
// when reinvesting the monthly savings somewhere that beats the mortgage.
var OptimisticUpliftsPct = []float64{1, 3}
