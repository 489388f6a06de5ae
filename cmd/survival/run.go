package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	pf := &paramFlags{}
	var model string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a Monte Carlo simulation with a single return model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := resolveScenario(cmd, opts, pf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("model") {
				kind, err := domain.ParseReturnModelKind(model)
				if err != nil {
					return err
				}
				sc.Parameters.ReturnModel = kind
			}

			res, err := opts.engine(cmd.ErrOrStderr()).Run(cmd.Context(), sc.Parameters)
			if err != nil {
				return err
			}
			sc.Parameters.Seed = res.Seed
			return opts.emit(cmd, newReport(sc.Name, sc.Parameters, []domain.AggregateResult{*res}))
		},
	}

	pf.register(cmd.Flags())
	cmd.Flags().StringVarP(&model, "model", "m", domain.ReturnModelArithmetic.String(), "return model (arithmetic, lognormal, studentt)")
	return cmd
}
