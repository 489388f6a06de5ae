package calculation

import "errors"

var (
	ErrInvalidSimulationCount = errors.New("simulation count must be positive")
	ErrInvalidYears           = errors.New("years must be positive")
	ErrInvalidInitialBalance  = errors.New("initial balance must be positive")
	ErrUnknownReturnModel     = errors.New("unknown return model")
	ErrUnknownWithdrawalKind  = errors.New("unknown withdrawal kind")
	ErrNegativeWithdrawal     = errors.New("withdrawal must be non-negative")
)
