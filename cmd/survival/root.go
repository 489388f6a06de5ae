package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/portfolio-survival/internal/calculation"
	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/rpgo/portfolio-survival/internal/output"
	"github.com/rpgo/portfolio-survival/internal/recorder"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configFile string
	format     string
	outputDir  string
	dbPath     string
	saveParams string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "survival",
		Short:         "Monte Carlo retirement portfolio survival simulator",
		Long:          "Simulates many randomized market paths for a retirement portfolio under a withdrawal strategy\nand reports the failure rate and the distribution of final balances.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "YAML scenario file")
	pf.StringVarP(&opts.format, "format", "f", "console", fmt.Sprintf("output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	pf.StringVar(&opts.outputDir, "output-dir", "", "write the report to a timestamped file in this directory instead of stdout")
	pf.StringVar(&opts.dbPath, "db", "", "SQLite database that records every run")
	pf.StringVar(&opts.saveParams, "save-params", "", "write the effective parameters (with the seed used) as a replayable YAML scenario")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log engine activity to stderr")

	root.AddCommand(newRunCmd(opts), newCompareCmd(opts), newWithdrawalEffectCmd())
	return root
}

func (o *globalOptions) engine(stderr io.Writer) *calculation.MonteCarloEngine {
	eng := calculation.NewMonteCarloEngine()
	if o.verbose {
		eng.SetLogger(calculation.NewStdLogger(stderr, true))
	}
	return eng
}

func (o *globalOptions) openRecorder(stderr io.Writer) recorder.Recorder {
	if o.dbPath == "" {
		return recorder.NewNoopRecorder()
	}
	r, err := recorder.NewSQLiteRecorder(o.dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "[WARN] init sqlite recorder failed, using noop: %v\n", err)
		return recorder.NewNoopRecorder()
	}
	return r
}

// emit records results and writes the report to stdout or the output directory.
func (o *globalOptions) emit(cmd *cobra.Command, report *domain.RunReport) error {
	rec := o.openRecorder(cmd.ErrOrStderr())
	defer rec.Close()

	meta := recorder.RunMeta{Label: report.Name, RecordedAt: report.GeneratedAt}
	for i := range report.Results {
		if err := rec.RecordRun(&report.Results[i], meta); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] record run: %v\n", err)
		}
	}

	if o.saveParams != "" {
		if err := output.SaveParameters(report.Parameters, o.saveParams); err != nil {
			return err
		}
	}

	if o.outputDir != "" {
		path, err := output.GenerateReport(report, o.format, o.outputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}
	return output.WriteReport(cmd.OutOrStdout(), report, o.format)
}

func newReport(name string, params domain.SimulationParameters, results []domain.AggregateResult) *domain.RunReport {
	return &domain.RunReport{
		Name:        name,
		GeneratedAt: time.Now().UTC(),
		Parameters:  params,
		Results:     results,
	}
}
