package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"torus-ca/internal/config"
	"torus-ca/internal/engine"
	"torus-ca/internal/render"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config      config.Config
	ConfigPath  string
	PatternPath string
	Steps       int
}

type runSummary struct {
	Session     string        `json:"session"`
	Config      config.Config `json:"config"`
	Rule        string        `json:"rule"`
	Generations uint64        `json:"generations"`
	Population  int           `json:"population"`
	Grid        []string      `json:"grid,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts, Config: config.Default(), Steps: 100}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step a grid for a number of generations and print the result",
		Long: `Build a grid, seed it with a random fill or a plaintext pattern, apply the
selected rule for --steps generations and print the final grid.

Example:
  cactl run --rule highlife --width 40 --height 20 --steps 50 --seed 7
  cactl run --config ca.yaml --pattern glider.cells`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrid(opts, cmd)
		},
	}

	opts.Config.Bind(cmd.Flags())
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML config file; explicit flags override it")
	cmd.Flags().StringVar(&opts.PatternPath, "pattern", "", "plaintext pattern stamped at the grid centre instead of a random fill")
	cmd.Flags().IntVarP(&opts.Steps, "steps", "n", opts.Steps, "generations to run")

	return cmd
}

// resolveConfig applies the --config file, if any, under explicitly set flags.
func resolveConfig(cmd *cobra.Command, flagCfg config.Config, path string) (config.Config, error) {
	if path == "" {
		if err := flagCfg.Validate(); err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
		}
		return flagCfg, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if err := cfg.Override(cmd.Flags()); err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	return cfg, nil
}

func runGrid(opts *RunOptions, cmd *cobra.Command) error {
	if opts.Steps < 0 {
		return NewExitError(ExitCommandError, "--steps must not be negative")
	}
	cfg, err := resolveConfig(cmd, opts.Config, opts.ConfigPath)
	if err != nil {
		return err
	}

	d, err := engine.New(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create driver", err)
	}

	if opts.PatternPath != "" {
		data, err := os.ReadFile(opts.PatternPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read pattern", err)
		}
		pattern, err := render.ParsePlaintext(string(data))
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to parse pattern", err)
		}
		size := d.Size()
		render.Stamp(d.Grid(), pattern, (size.W-pattern.W)/2, (size.H-pattern.H)/2)
	} else {
		d.RandomFill(cfg.Fill)
	}

	ctx := cmd.Context()
	for i := 0; i < opts.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("interrupted at generation %d", d.Generation()), err)
		}
		d.Step()
	}

	picture := render.Plaintext(d.Grid())
	summary := runSummary{
		Session:     d.Session(),
		Config:      cfg,
		Rule:        d.Rule().String(),
		Generations: d.Generation(),
		Population:  d.Population(),
		Grid:        strings.Split(strings.TrimSuffix(picture, "\n"), "\n"),
	}
	text := fmt.Sprintf("%s! rule=%s generations=%d population=%d\n",
		picture, summary.Rule, summary.Generations, summary.Population)
	return opts.formatter(cmd).Success(summary, text)
}
