package service

import (
	"math"

	"ltv-advisor/domain"
)

// DeriveLTV returns the exact LTV percentage and the whole percentage a
// lender quotes, which always rounds up.
func DeriveLTV(propertyValue, balance float64) (float64, int, error) {
	if propertyValue <= 0 || math.IsNaN(propertyValue) {
		return 0, 0, domain.NewInvalidInput("property_value", "must be greater than zero, got %v", propertyValue)
	}
	if balance < 0 || math.IsNaN(balance) {
		return 0, 0, domain.NewInvalidInput("mortgage_balance", "must not be negative, got %v", balance)
	}

	exact := balance / propertyValue * 100
	return exact, int(math.Ceil(exact)), nil
}

// CurrentBracket is the lender bracket the exact LTV falls into.
func CurrentBracket(exactPct float64) float64 {
	return math.Ceil(exactPct/BracketStepPct) * BracketStepPct
}

// ProposedNextBracket suggests the nearest bracket strictly below exactPct.
// It is only a default; any bracket in [0, exactPct) is acceptable.
func ProposedNextBracket(exactPct float64) float64 {
	var next float64
	if math.Mod(exactPct, BracketStepPct) == 0 {
		next = exactPct - BracketStepPct
	} else {
		next = math.Floor(exactPct/BracketStepPct) * BracketStepPct
	}
	return math.Max(next, 0)
}

// AmountToNextBracket is the lump sum that moves the balance from exactPct
// down to nextPct of the property value.
func AmountToNextBracket(exactPct, nextPct, propertyValue float64) float64 {
	return (exactPct - nextPct) * propertyValue / 100
}

// BracketTable lists the mortgage amount at every bracket from 5% to 95%,
// ascending.
func BracketTable(propertyValue float64) []domain.BracketEntry {
	table := make([]domain.BracketEntry, 0, MaxBracketPct/int(BracketStepPct))
	for ltv := MinBracketPct; ltv <= MaxBracketPct; ltv += int(BracketStepPct) {
		table = append(table, domain.BracketEntry{
			LTVPct:         ltv,
			MortgageAmount: float64(ltv) * propertyValue / 100,
		})
	}
	return table
}
