package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"torus-ca/internal/render"
	"torus-ca/internal/scenario"
)

// ScenarioOptions holds flags for the scenario command.
type ScenarioOptions struct {
	*RootOptions
	ShowGrid bool
}

type scenarioReport struct {
	File   string           `json:"file"`
	Result *scenario.Result `json:"result"`
	Grid   string           `json:"grid,omitempty"`
}

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScenarioOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scenario <file.yaml>...",
		Short: "Run scenario files and check their expectations",
		Long: `Run one or more YAML scenarios. Each scenario names a rule, a grid size,
a starting pattern and the number of generations to run, plus optional
expectations on the final population and pattern.

Exit code 1 means at least one expectation failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, cmd, args)
		},
	}

	cmd.Flags().BoolVar(&opts.ShowGrid, "grid", false, "print the final grid of each scenario")

	return cmd
}

func runScenarios(opts *ScenarioOptions, cmd *cobra.Command, paths []string) error {
	var reports []scenarioReport
	var failed []string
	var b strings.Builder
	for _, path := range paths {
		s, err := scenario.Load(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}
		res, err := s.Run(cmd.Context(), slog.Default())
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s failed to run", s.Name), err)
		}
		report := scenarioReport{File: path, Result: res}
		if opts.ShowGrid {
			report.Grid = render.Plaintext(res.Final)
		}
		reports = append(reports, report)

		status := "PASS"
		if !res.Passed() {
			status = "FAIL"
			failed = append(failed, s.Name)
		}
		fmt.Fprintf(&b, "%s %s (%s, %d generations, population %d)\n",
			status, s.Name, res.Rule, res.Generations, res.Populations[len(res.Populations)-1])
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "    %s\n", f)
		}
		if opts.ShowGrid {
			b.WriteString(report.Grid)
		}
	}

	out := opts.formatter(cmd)
	if len(failed) == 0 {
		return out.Success(reports, b.String())
	}
	msg := fmt.Sprintf("%d of %d scenarios failed: %s", len(failed), len(paths), strings.Join(failed, ", "))
	if err := out.Failure(reports, b.String(), msg); err != nil {
		return err
	}
	exitErr := WrapExitError(ExitFailure, msg, scenario.ErrExpectation)
	exitErr.Reported = true
	return exitErr
}
