package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltv-advisor/domain"
)

func TestDeriveLTV(t *testing.T) {
	tests := []struct {
		value, balance float64
		exact          float64
		display        int
	}{
		{200000, 150000, 75, 75},
		{200000, 151000, 75.5, 76},
		{300000, 200000, 200000.0 / 300000 * 100, 67},
		{250000, 0, 0, 0},
		{100000, 100000, 100, 100},
	}

	for _, tc := range tests {
		exact, display, err := DeriveLTV(tc.value, tc.balance)
		require.NoError(t, err)
		assert.InDelta(t, tc.exact, exact, 1e-9)
		assert.Equal(t, tc.display, display)
		assert.GreaterOrEqual(t, float64(display), exact)
		assert.Equal(t, int(math.Ceil(exact)), display)
	}
}

func TestDeriveLTVRepeatingFraction(t *testing.T) {
	value, balance := 300000.0, 200000.0

	exact, display, err := DeriveLTV(value, balance)
	require.NoError(t, err)
	assert.Equal(t, balance/value*100, exact)
	assert.Equal(t, 67, display)
}

func TestDeriveLTVRejectsZeroPropertyValue(t *testing.T) {
	_, _, err := DeriveLTV(0, 150000)
	require.Error(t, err)

	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "property_value", invalid.Field)

	_, _, err = DeriveLTV(-1, 0)
	assert.Error(t, err)

	_, _, err = DeriveLTV(100, -1)
	assert.Error(t, err)
}

func TestProposedNextBracket(t *testing.T) {
	tests := map[float64]float64{
		75:   70,
		75.5: 75,
		74.9: 70,
		61:   60,
		5:    0,
		3:    0,
		0:    0,
		100:  95,
	}
	for exact, want := range tests {
		assert.Equal(t, want, ProposedNextBracket(exact), "exact %v", exact)
	}
}

func TestCurrentBracket(t *testing.T) {
	assert.Equal(t, 75.0, CurrentBracket(75))
	assert.Equal(t, 80.0, CurrentBracket(75.5))
	assert.Equal(t, 65.0, CurrentBracket(60.01))
}

func TestAmountToNextBracket(t *testing.T) {
	assert.Equal(t, 10000.0, AmountToNextBracket(75, 70, 200000))
	assert.Equal(t, 1000.0, AmountToNextBracket(75.5, 75, 200000))
}

func TestBracketTable(t *testing.T) {
	for _, value := range []float64{1, 200000, 333333.33, 100_000_000} {
		table := BracketTable(value)
		require.Len(t, table, 19)

		for i, entry := range table {
			ltv := (i + 1) * 5
			assert.Equal(t, ltv, entry.LTVPct)
			assert.Equal(t, float64(ltv)*value/100, entry.MortgageAmount)
		}
	}
}
