package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"torus-ca/internal/config"
	"torus-ca/internal/core"
	"torus-ca/internal/engine"
	"torus-ca/internal/rules"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Config     config.Config
	ConfigPath string
	Steps      int
	Workers    int
}

type compareRow struct {
	Rule        string `json:"rule"`
	Name        string `json:"name"`
	Initial     int    `json:"initial"`
	Final       int    `json:"final"`
	Peak        int    `json:"peak"`
	Generations int    `json:"generations"`
}

type compareReport struct {
	Seed  int64        `json:"seed"`
	Steps int          `json:"steps"`
	Rows  []compareRow `json:"rows"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts, Config: config.Default(), Steps: 100, Workers: 4}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every rule from the same random fill and compare populations",
		Long: `Seed one random fill and evolve a copy of it under each fixed rule.
Every rule runs on its own driver; drivers run in parallel.

Example:
  cactl compare --width 64 --height 64 --steps 200 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, cmd)
		},
	}

	opts.Config.Bind(cmd.Flags())
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML config file; explicit flags override it")
	cmd.Flags().IntVarP(&opts.Steps, "steps", "n", opts.Steps, "generations to run per rule")
	cmd.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "rules evaluated concurrently")

	return cmd
}

func runCompare(opts *CompareOptions, cmd *cobra.Command) error {
	if opts.Steps < 0 {
		return NewExitError(ExitCommandError, "--steps must not be negative")
	}
	cfg, err := resolveConfig(cmd, opts.Config, opts.ConfigPath)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	seedGrid := core.MustGrid(cfg.Width, cfg.Height)
	seedGrid.RandomFillWith(core.NewRNG(cfg.Seed), cfg.Fill)

	all := rules.All()
	rows := make([]compareRow, len(all))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(opts.Workers, 1))
	for i, r := range all {
		g.Go(func() error {
			c := cfg
			c.Rule = r.String()
			d, err := engine.New(c)
			if err != nil {
				return err
			}
			d.Grid().CopyFrom(seedGrid)
			row := compareRow{Rule: r.String(), Name: r.Name(), Initial: d.Population()}
			row.Peak = row.Initial
			for step := 0; step < opts.Steps; step++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				d.Step()
				row.Peak = max(row.Peak, d.Population())
			}
			row.Final = d.Population()
			row.Generations = int(d.Generation())
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return WrapExitError(ExitFailure, "compare failed", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "seed %d, %dx%d, fill %.2f, %d generations\n", cfg.Seed, cfg.Width, cfg.Height, cfg.Fill, opts.Steps)
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tINITIAL\tPEAK\tFINAL")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", row.Name, row.Initial, row.Peak, row.Final)
	}
	tw.Flush()

	return opts.formatter(cmd).Success(compareReport{Seed: cfg.Seed, Steps: opts.Steps, Rows: rows}, b.String())
}
