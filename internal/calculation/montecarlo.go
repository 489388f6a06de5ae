package calculation

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// MonteCarloEngine runs independent portfolio paths and aggregates their outcomes.
type MonteCarloEngine struct {
	Logger Logger
	// Workers bounds concurrent paths when the parameters do not set one.
	Workers int
}

// NewMonteCarloEngine creates an engine with a no-op logger and one worker per CPU.
func NewMonteCarloEngine() *MonteCarloEngine {
	return &MonteCarloEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger used for run-level events.
func (mce *MonteCarloEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	mce.Logger = l
}

// ValidateParameters rejects inputs that would make the aggregate meaningless.
func ValidateParameters(params domain.SimulationParameters) error {
	if params.SimulationCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSimulationCount, params.SimulationCount)
	}
	if params.Years <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidYears, params.Years)
	}
	if params.InitialBalance <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidInitialBalance, params.InitialBalance)
	}
	if !params.ReturnModel.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownReturnModel, int(params.ReturnModel))
	}
	if !params.Withdrawal.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownWithdrawalKind, int(params.Withdrawal))
	}
	switch params.Withdrawal {
	case domain.WithdrawalFixed:
		if params.AnnualWithdrawal < 0 {
			return fmt.Errorf("%w: annual_withdrawal %g", ErrNegativeWithdrawal, params.AnnualWithdrawal)
		}
	case domain.WithdrawalPercentage:
		for i, b := range params.RateBands {
			if b.RatePercent < 0 {
				return fmt.Errorf("%w: rate band %d rate_percent %g", ErrNegativeWithdrawal, i, b.RatePercent)
			}
		}
	}
	return nil
}

// RunMonteCarlo runs params on a default engine.
func RunMonteCarlo(params domain.SimulationParameters) (*domain.AggregateResult, error) {
	return NewMonteCarloEngine().Run(context.Background(), params)
}

// Run executes params.SimulationCount paths and aggregates them. Path i always draws
// from stream i of the run seed, so a seeded run gives the same result for any
// worker count. Cancellation is honoured between paths.
func (mce *MonteCarloEngine) Run(ctx context.Context, params domain.SimulationParameters) (*domain.AggregateResult, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}

	df := params.DegreesOfFreedom
	if df == 0 {
		df = defaultDegreesOfFreedom
	}
	model, err := NewReturnModel(params.ReturnModel, params.MeanReturnPercent, params.StdDevPercent, df, params.FeePercent)
	if err != nil {
		return nil, err
	}
	strategy, err := NewWithdrawalStrategy(params)
	if err != nil {
		return nil, err
	}

	seed := params.Seed
	if seed == 0 {
		seed = seedFunc()
	}
	workers := mce.workerCount(params)
	mce.logger().Infof("monte carlo: model=%s paths=%d years=%d workers=%d seed=%d",
		params.ReturnModel, params.SimulationCount, params.Years, workers, seed)
	mce.logger().Debugf("monte carlo: withdrawal=%s mean=%.2f%% sd=%.2f%% df=%.1f fee=%.2f%%",
		params.Withdrawal, params.MeanReturnPercent, params.StdDevPercent, df, params.FeePercent)

	results := make([]domain.PathResult, params.SimulationCount)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

spawn:
	for i := 0; i < params.SimulationCount; i++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			break spawn
		}

		wg.Add(1)
		go func(pathIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			src := NewRandomSource(seed, uint64(pathIndex))
			results[pathIndex] = SimulatePath(params.InitialBalance, params.Years, strategy, model, src)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		mce.logger().Warnf("monte carlo: run cancelled: %v", err)
		return nil, fmt.Errorf("monte carlo run cancelled: %w", err)
	}

	agg := Aggregate(results)
	agg.ModelKind = params.ReturnModel
	agg.Years = params.Years
	agg.Seed = seed
	mce.logger().Infof("monte carlo: model=%s failure rate %.2f%% (%d/%d)",
		params.ReturnModel, agg.FailureRatePercent, agg.FailureCount, agg.SimulationCount)
	return &agg, nil
}

// CompareModels runs the same parameters under each return family (all three when
// kinds is empty) and returns the results in the requested order.
func (mce *MonteCarloEngine) CompareModels(ctx context.Context, params domain.SimulationParameters, kinds ...domain.ReturnModelKind) ([]domain.AggregateResult, error) {
	if len(kinds) == 0 {
		kinds = domain.ReturnModelKinds
	}
	if params.Seed == 0 {
		params.Seed = seedFunc()
	}

	out := make([]domain.AggregateResult, 0, len(kinds))
	for _, kind := range kinds {
		p := params
		p.ReturnModel = kind
		res, err := mce.Run(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to run %s model: %w", kind, err)
		}
		out = append(out, *res)
	}
	return out, nil
}

// Aggregate folds path outcomes into failure statistics and balance percentiles.
func Aggregate(results []domain.PathResult) domain.AggregateResult {
	n := len(results)
	agg := domain.AggregateResult{SimulationCount: n}
	if n == 0 {
		return agg
	}

	finals := make([]float64, n)
	var sum float64
	for i, r := range results {
		finals[i] = r.FinalBalance
		sum += r.FinalBalance
		if r.Failed {
			agg.FailureCount++
		}
	}
	sort.Float64s(finals)

	agg.FailureRatePercent = 100 * float64(agg.FailureCount) / float64(n)
	agg.MeanFinalBalance = sum / float64(n)
	agg.P10 = Quantile(finals, 0.10)
	agg.P25 = Quantile(finals, 0.25)
	agg.P50 = Quantile(finals, 0.50)
	agg.P75 = Quantile(finals, 0.75)
	agg.P90 = Quantile(finals, 0.90)
	return agg
}

func (mce *MonteCarloEngine) workerCount(params domain.SimulationParameters) int {
	workers := params.Workers
	if workers <= 0 {
		workers = mce.Workers
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > params.SimulationCount {
		workers = params.SimulationCount
	}
	return workers
}

func (mce *MonteCarloEngine) logger() Logger {
	if mce.Logger == nil {
		return NopLogger{}
	}
	return mce.Logger
}
