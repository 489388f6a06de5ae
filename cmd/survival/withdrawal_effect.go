package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-survival/internal/calculation"
	"github.com/rpgo/portfolio-survival/internal/output"
)

func newWithdrawalEffectCmd() *cobra.Command {
	var (
		initial  float64
		lowRate  float64
		highRate float64
		mean     float64
		years    int
	)

	cmd := &cobra.Command{
		Use:   "withdrawal-effect",
		Short: "Compare two percentage withdrawal rates on a zero-volatility projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initial <= 0 {
				return fmt.Errorf("%w: got %g", calculation.ErrInvalidInitialBalance, initial)
			}
			if years <= 0 {
				return fmt.Errorf("%w: got %d", calculation.ErrInvalidYears, years)
			}
			effect := calculation.CompareWithdrawalRates(initial, lowRate, highRate, mean, years)
			_, err := fmt.Fprint(cmd.OutOrStdout(), output.FormatWithdrawalEffect(effect))
			return err
		},
	}

	fs := cmd.Flags()
	fs.Float64Var(&initial, "initial-balance", 2000000, "starting portfolio balance")
	fs.Float64Var(&lowRate, "low-rate", 4, "lower withdrawal rate in percent")
	fs.Float64Var(&highRate, "high-rate", 5, "higher withdrawal rate in percent")
	fs.Float64Var(&mean, "mean", 6, "annual return in percent")
	fs.IntVarP(&years, "years", "y", 5, "years to project")
	return cmd
}
