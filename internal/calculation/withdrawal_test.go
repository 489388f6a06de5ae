package calculation

import (
	"testing"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRateForAge(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{age: 50, want: 4},
		{age: 64, want: 4},
		{age: 65, want: 5},
		{age: 74, want: 5},
		{age: 75, want: 6},
		{age: 80, want: 7},
		{age: 85, want: 9},
		{age: 90, want: 11},
		{age: 94, want: 11},
		{age: 95, want: 14},
		{age: 110, want: 14},
	}
	for _, tt := range tests {
		if got := DefaultRateForAge(tt.age); got != tt.want {
			t.Errorf("DefaultRateForAge(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestRateForAge_Bands(t *testing.T) {
	bands := []domain.RateBand{
		{MinAge: 60, MaxAge: 64, RatePercent: 3.5},
		{MinAge: 65, MaxAge: 69, RatePercent: 4.5},
		{MinAge: 67, MaxAge: 70, RatePercent: 9}, // overlaps the previous band
	}

	assert.Equal(t, 3.5, RateForAge(60, bands))
	assert.Equal(t, 3.5, RateForAge(64, bands))
	assert.Equal(t, 4.5, RateForAge(67, bands), "first matching band wins")
	assert.Equal(t, 9.0, RateForAge(70, bands))
	assert.Equal(t, 4.0, RateForAge(59, bands), "falls back to default ladder")
	assert.Equal(t, 6.0, RateForAge(77, bands))
}

func TestPercentageWithdrawal(t *testing.T) {
	w := PercentageWithdrawal{
		Bands:       []domain.RateBand{{MinAge: 60, MaxAge: 64, RatePercent: 4}},
		StartingAge: 60,
	}

	assert.InDelta(t, 4000, w.Withdrawal(100000, 0), 1e-9)
	// age 65 falls outside the band and uses the default 5%
	assert.InDelta(t, 5000, w.Withdrawal(100000, 5), 1e-9)
	assert.True(t, w.Ruined(0))
	assert.False(t, w.Ruined(0.01))
}

func TestFixedWithdrawal(t *testing.T) {
	w := FixedWithdrawal{BaseAmount: 10000, InflationPercent: 2}

	assert.Equal(t, 10000.0, w.Withdrawal(1e9, 0))
	assert.InDelta(t, 10200, w.Withdrawal(0, 1), 1e-9)
	assert.InDelta(t, 10404, w.Withdrawal(0, 2), 1e-9)
	assert.InDelta(t, 10000*1.2189944199947573, w.Withdrawal(0, 10), 1e-6)

	assert.False(t, w.Ruined(0), "an exactly emptied account is not ruined")
	assert.True(t, w.Ruined(-0.01))
}

func TestNewWithdrawalStrategy(t *testing.T) {
	s, err := NewWithdrawalStrategy(domain.SimulationParameters{Withdrawal: domain.WithdrawalFixed, AnnualWithdrawal: 500})
	require.NoError(t, err)
	assert.IsType(t, FixedWithdrawal{}, s)

	s, err = NewWithdrawalStrategy(domain.SimulationParameters{Withdrawal: domain.WithdrawalPercentage, StartingAge: 70})
	require.NoError(t, err)
	assert.IsType(t, PercentageWithdrawal{}, s)

	_, err = NewWithdrawalStrategy(domain.SimulationParameters{Withdrawal: domain.WithdrawalKind(9)})
	assert.ErrorIs(t, err, ErrUnknownWithdrawalKind)
}
