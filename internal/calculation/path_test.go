package calculation

import (
	"testing"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustModel(t *testing.T, kind domain.ReturnModelKind, mean, sd float64) *ReturnModel {
	t.Helper()
	m, err := NewReturnModel(kind, mean, sd, 5, 0)
	require.NoError(t, err)
	return m
}

func TestSimulatePath_HandCheckedScenarios(t *testing.T) {
	band60to64 := []domain.RateBand{{MinAge: 60, MaxAge: 64, RatePercent: 4}}

	tests := []struct {
		name     string
		strategy WithdrawalStrategy
		mean     float64
		years    int
		want     float64
	}{
		{
			name:     "percentage mode zero return",
			strategy: PercentageWithdrawal{Bands: band60to64, StartingAge: 60},
			mean:     0,
			years:    1,
			want:     96000,
		},
		{
			name:     "fixed mode zero return with inflation",
			strategy: FixedWithdrawal{BaseAmount: 10000, InflationPercent: 2},
			mean:     0,
			years:    2,
			want:     79800,
		},
		{
			name:     "percentage mode five percent return",
			strategy: PercentageWithdrawal{Bands: band60to64, StartingAge: 60},
			mean:     5,
			years:    1,
			want:     100800,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := mustModel(t, domain.ReturnModelArithmetic, tt.mean, 0)
			got := SimulatePath(100000, tt.years, tt.strategy, model, NewRandomSource(1, 0))
			assert.False(t, got.Failed)
			assert.InDelta(t, tt.want, got.FinalBalance, 1e-6)
		})
	}
}

func TestSimulatePath_FixedRuin(t *testing.T) {
	model := mustModel(t, domain.ReturnModelArithmetic, 0, 0)
	strategy := FixedWithdrawal{BaseAmount: 40000}

	got := SimulatePath(100000, 5, strategy, model, NewRandomSource(1, 0))

	assert.True(t, got.Failed)
	assert.Equal(t, 0.0, got.FinalBalance)
}

func TestSimulatePath_FixedExactDepletionSurvives(t *testing.T) {
	model := mustModel(t, domain.ReturnModelArithmetic, 0, 0)
	strategy := FixedWithdrawal{BaseAmount: 50000}

	got := SimulatePath(100000, 2, strategy, model, NewRandomSource(1, 0))

	assert.False(t, got.Failed)
	assert.Equal(t, 0.0, got.FinalBalance)
}

func TestSimulatePath_PercentageFullWithdrawalIsRuin(t *testing.T) {
	model := mustModel(t, domain.ReturnModelArithmetic, 5, 0)
	strategy := PercentageWithdrawal{Bands: []domain.RateBand{{MinAge: 0, MaxAge: 200, RatePercent: 100}}}

	got := SimulatePath(100000, 3, strategy, model, NewRandomSource(1, 0))

	assert.True(t, got.Failed)
	assert.Equal(t, 0.0, got.FinalBalance)
}

func TestSimulatePath_NonFiniteBalanceFails(t *testing.T) {
	// a 1e306 decimal return overflows the balance to +Inf
	model := mustModel(t, domain.ReturnModelArithmetic, 1e308, 0)
	strategy := FixedWithdrawal{BaseAmount: 1000}

	got := SimulatePath(100000, 3, strategy, model, NewRandomSource(1, 0))

	assert.True(t, got.Failed)
	assert.Equal(t, 0.0, got.FinalBalance)
}

func TestSimulatePath_ClampedLossNeverRuinsPercentagePath(t *testing.T) {
	model := mustModel(t, domain.ReturnModelArithmetic, -500, 0)
	strategy := PercentageWithdrawal{StartingAge: 60}

	got := SimulatePath(1e6, 2, strategy, model, NewRandomSource(1, 0))

	assert.False(t, got.Failed)
	assert.Greater(t, got.FinalBalance, 0.0)
	assert.Less(t, got.FinalBalance, 1.0)
}
