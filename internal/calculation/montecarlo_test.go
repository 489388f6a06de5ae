package calculation

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseParams() domain.SimulationParameters {
	return domain.SimulationParameters{
		InitialBalance:    2000000,
		Years:             30,
		SimulationCount:   500,
		ReturnModel:       domain.ReturnModelArithmetic,
		MeanReturnPercent: 6,
		StdDevPercent:     12,
		DegreesOfFreedom:  5,
		Withdrawal:        domain.WithdrawalPercentage,
		RateBands:         []domain.RateBand{{MinAge: 0, MaxAge: 200, RatePercent: 5.5}},
		StartingAge:       65,
		Seed:              12345,
	}
}

// recordingLogger captures formatted messages per level.
type recordingLogger struct {
	infos, warns []string
}

func (r *recordingLogger) Debugf(string, ...any) {}
func (r *recordingLogger) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}
func (r *recordingLogger) Errorf(string, ...any) {}

func TestMonteCarloEngine_RejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.SimulationParameters)
		want   error
	}{
		{name: "zero simulations", mutate: func(p *domain.SimulationParameters) { p.SimulationCount = 0 }, want: ErrInvalidSimulationCount},
		{name: "zero years", mutate: func(p *domain.SimulationParameters) { p.Years = 0 }, want: ErrInvalidYears},
		{name: "negative years", mutate: func(p *domain.SimulationParameters) { p.Years = -3 }, want: ErrInvalidYears},
		{name: "zero balance", mutate: func(p *domain.SimulationParameters) { p.InitialBalance = 0 }, want: ErrInvalidInitialBalance},
		{name: "unknown model", mutate: func(p *domain.SimulationParameters) { p.ReturnModel = 7 }, want: ErrUnknownReturnModel},
		{name: "unknown withdrawal", mutate: func(p *domain.SimulationParameters) { p.Withdrawal = 7 }, want: ErrUnknownWithdrawalKind},
		{name: "negative fixed withdrawal", mutate: func(p *domain.SimulationParameters) {
			p.Withdrawal = domain.WithdrawalFixed
			p.AnnualWithdrawal = -1000
		}, want: ErrNegativeWithdrawal},
		{name: "negative band rate", mutate: func(p *domain.SimulationParameters) {
			p.RateBands = []domain.RateBand{{MinAge: 0, MaxAge: 200, RatePercent: -4}}
		}, want: ErrNegativeWithdrawal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)
			res, err := NewMonteCarloEngine().Run(context.Background(), p)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMonteCarloEngine_ZeroVolatilityIsDeterministic(t *testing.T) {
	p := baseParams()
	p.StdDevPercent = 0
	p.SimulationCount = 200

	res, err := NewMonteCarloEngine().Run(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, res.P10, res.P90)
	assert.Equal(t, res.P10, res.P50)
	assert.InDelta(t, res.P50, res.MeanFinalBalance, 1e-6)
	assert.Equal(t, 0.0, res.FailureRatePercent)

	det, err := DeterministicPath(p)
	require.NoError(t, err)
	assert.InDelta(t, det.FinalBalance, res.P50, 1e-6)
}

func TestMonteCarloEngine_ZeroVolatilityFailureIsAllOrNothing(t *testing.T) {
	p := baseParams()
	p.StdDevPercent = 0
	p.MeanReturnPercent = 2
	p.Withdrawal = domain.WithdrawalFixed
	p.AnnualWithdrawal = 150000
	p.InflationPercent = 3
	p.SimulationCount = 100

	res, err := NewMonteCarloEngine().Run(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 100, res.FailureCount)
	assert.Equal(t, 100.0, res.FailureRatePercent)
	assert.Equal(t, 0.0, res.P90)
	assert.Equal(t, 0.0, res.MeanFinalBalance)
}

func TestMonteCarloEngine_SeededRunsAreReproducible(t *testing.T) {
	p := baseParams()

	engine := NewMonteCarloEngine()
	p.Workers = 1
	serial, err := engine.Run(context.Background(), p)
	require.NoError(t, err)

	p.Workers = 8
	parallel, err := engine.Run(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel, "worker count must not change a seeded result")

	p.Seed = 54321
	other, err := engine.Run(context.Background(), p)
	require.NoError(t, err)
	assert.NotEqual(t, serial.P50, other.P50)
}

func TestMonteCarloEngine_AggregateInvariants(t *testing.T) {
	for _, kind := range domain.ReturnModelKinds {
		t.Run(kind.String(), func(t *testing.T) {
			p := baseParams()
			p.ReturnModel = kind
			p.Withdrawal = domain.WithdrawalFixed
			p.AnnualWithdrawal = 120000
			p.InflationPercent = 2.5

			res, err := NewMonteCarloEngine().Run(context.Background(), p)
			require.NoError(t, err)

			assert.Equal(t, kind, res.ModelKind)
			assert.Equal(t, p.SimulationCount, res.SimulationCount)
			assert.Equal(t, p.Years, res.Years)
			assert.Equal(t, p.Seed, res.Seed)
			assert.InDelta(t, 100*float64(res.FailureCount)/float64(res.SimulationCount), res.FailureRatePercent, 1e-12)
			assert.LessOrEqual(t, res.P10, res.P25)
			assert.LessOrEqual(t, res.P25, res.P50)
			assert.LessOrEqual(t, res.P50, res.P75)
			assert.LessOrEqual(t, res.P75, res.P90)
			assert.GreaterOrEqual(t, res.P10, 0.0)
			assert.Greater(t, res.FailureCount, 0, "6 percent withdrawals over 30 years should fail sometimes")
			assert.Less(t, res.FailureCount, res.SimulationCount)
		})
	}
}

func TestMonteCarloEngine_FailureRateMonotoneInWithdrawal(t *testing.T) {
	engine := NewMonteCarloEngine()
	run := func(amount float64) *domain.AggregateResult {
		p := baseParams()
		p.Withdrawal = domain.WithdrawalFixed
		p.AnnualWithdrawal = amount
		res, err := engine.Run(context.Background(), p)
		require.NoError(t, err)
		return res
	}

	low := run(80000)   // 4% of the initial balance
	high := run(100000) // 5% of the initial balance

	assert.GreaterOrEqual(t, high.FailureRatePercent, low.FailureRatePercent)
	assert.LessOrEqual(t, high.P50, low.P50)
	assert.LessOrEqual(t, high.MeanFinalBalance, low.MeanFinalBalance)
}

func TestMonteCarloEngine_PathwiseMonotoneWithSharedDraws(t *testing.T) {
	model := mustModel(t, domain.ReturnModelStudentT, 6, 15)
	for i := range 200 {
		low := SimulatePath(1e6, 30, FixedWithdrawal{BaseAmount: 40000}, model, NewRandomSource(99, uint64(i)))
		high := SimulatePath(1e6, 30, FixedWithdrawal{BaseAmount: 50000}, model, NewRandomSource(99, uint64(i)))
		if low.Failed {
			require.True(t, high.Failed, "path %d: higher withdrawal must fail whenever lower does", i)
		}
		require.LessOrEqual(t, high.FinalBalance, low.FinalBalance, "path %d", i)
	}
}

func TestMonteCarloEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := &recordingLogger{}
	engine := NewMonteCarloEngine()
	engine.SetLogger(logger)

	res, err := engine.Run(ctx, baseParams())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, logger.warns, 1)
}

func TestMonteCarloEngine_LogsRunSummary(t *testing.T) {
	logger := &recordingLogger{}
	engine := NewMonteCarloEngine()
	engine.SetLogger(logger)

	p := baseParams()
	p.SimulationCount = 10
	_, err := engine.Run(context.Background(), p)
	require.NoError(t, err)

	require.Len(t, logger.infos, 2)
	assert.Contains(t, logger.infos[0], "paths=10")
	assert.Contains(t, logger.infos[1], "failure rate")

	engine.SetLogger(nil)
	_, err = engine.Run(context.Background(), p)
	assert.NoError(t, err)
}

func TestMonteCarloEngine_UnseededUsesSeedFunc(t *testing.T) {
	orig := seedFunc
	SetSeedFunc(func() int64 { return 777 })
	t.Cleanup(func() { SetSeedFunc(orig) })

	p := baseParams()
	p.Seed = 0
	p.SimulationCount = 20
	res, err := NewMonteCarloEngine().Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(777), res.Seed)
}

func TestMonteCarloEngine_CompareModels(t *testing.T) {
	p := baseParams()
	p.SimulationCount = 300

	results, err := NewMonteCarloEngine().CompareModels(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, kind := range domain.ReturnModelKinds {
		assert.Equal(t, kind, results[i].ModelKind)
		assert.Equal(t, p.Seed, results[i].Seed)
	}

	only, err := NewMonteCarloEngine().CompareModels(context.Background(), p, domain.ReturnModelLognormal)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, results[1], only[0])

	p.Years = 0
	_, err = NewMonteCarloEngine().CompareModels(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidYears)
}

func TestAggregate(t *testing.T) {
	results := []domain.PathResult{
		{FinalBalance: 30},
		{FinalBalance: 0, Failed: true},
		{FinalBalance: 10},
		{FinalBalance: 20},
	}

	agg := Aggregate(results)

	assert.Equal(t, 4, agg.SimulationCount)
	assert.Equal(t, 1, agg.FailureCount)
	assert.Equal(t, 25.0, agg.FailureRatePercent)
	assert.Equal(t, 15.0, agg.MeanFinalBalance)
	assert.InDelta(t, 15.0, agg.P50, 1e-12)
	assert.InDelta(t, 7.5, agg.P25, 1e-12)

	// input order is left untouched
	assert.False(t, sort.SliceIsSorted(results, func(i, j int) bool { return results[i].FinalBalance < results[j].FinalBalance }))

	assert.Equal(t, domain.AggregateResult{}, Aggregate(nil))
}

func TestRunMonteCarlo(t *testing.T) {
	p := baseParams()
	p.SimulationCount = 50
	res, err := RunMonteCarlo(p)
	require.NoError(t, err)
	assert.Equal(t, 50, res.SimulationCount)
}
