package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

func newCompareCmd(opts *globalOptions) *cobra.Command {
	pf := &paramFlags{}
	var models []string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the same scenario under every return model and compare outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := resolveScenario(cmd, opts, pf)
			if err != nil {
				return err
			}
			kinds := sc.Models
			if cmd.Flags().Changed("models") {
				kinds = kinds[:0:0]
				for _, m := range models {
					kind, err := domain.ParseReturnModelKind(m)
					if err != nil {
						return err
					}
					kinds = append(kinds, kind)
				}
			}

			results, err := opts.engine(cmd.ErrOrStderr()).CompareModels(cmd.Context(), sc.Parameters, kinds...)
			if err != nil {
				return err
			}
			if len(results) > 0 {
				sc.Parameters.Seed = results[0].Seed
			}
			return opts.emit(cmd, newReport(sc.Name, sc.Parameters, results))
		},
	}

	pf.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&models, "models", nil, "return models to compare (default all)")
	return cmd
}
