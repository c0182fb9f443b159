// Package scenario runs small reproducible experiments described in YAML: a
// starting pattern, a rule, a number of generations and optional
// expectations about the result.
package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"torus-ca/internal/config"
	"torus-ca/internal/core"
	"torus-ca/internal/engine"
	"torus-ca/internal/render"
)

// ErrExpectation marks a scenario whose final state did not match.
var ErrExpectation = errors.New("scenario expectation failed")

// Scenario describes one run.
type Scenario struct {
	// Name identifies the scenario in reports.
	Name string `yaml:"name"`

	// Rule is any name accepted by rules.Parse.
	Rule string `yaml:"rule"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Steps is the number of generations to run.
	Steps int `yaml:"steps"`

	// Alive lists live cells as [x, y] pairs.
	Alive [][2]int `yaml:"alive,omitempty"`

	// Pattern is a plaintext picture stamped at Origin.
	Pattern string `yaml:"pattern,omitempty"`
	Origin  [2]int `yaml:"origin,omitempty"`

	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect holds the checks applied after the last generation. Unset fields
// are not checked.
type Expect struct {
	Population *int `yaml:"population,omitempty"`

	// Pattern must match the grid region starting at Origin exactly, dead
	// cells included.
	Pattern string `yaml:"pattern,omitempty"`
	Origin  [2]int `yaml:"origin,omitempty"`
}

// Result is the outcome of a run.
type Result struct {
	Name        string     `json:"name"`
	Rule        string     `json:"rule"`
	Generations int        `json:"generations"`
	Populations []int      `json:"populations"`
	Final       *core.Grid `json:"-"`
	Failures    []string   `json:"failures,omitempty"`
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Err returns ErrExpectation with the failures when the run did not pass.
func (r *Result) Err() error {
	if r.Passed() {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrExpectation, r.Name, strings.Join(r.Failures, "; "))
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario with strict field checking and validates it.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks required fields.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: scenario name is required", config.ErrInvalid)
	}
	if s.Steps < 0 {
		return fmt.Errorf("%w: %s: steps must not be negative", config.ErrInvalid, s.Name)
	}
	return s.config().Validate()
}

func (s *Scenario) config() config.Config {
	c := config.Default()
	if s.Width != 0 {
		c.Width = s.Width
	}
	if s.Height != 0 {
		c.Height = s.Height
	}
	if s.Rule != "" {
		c.Rule = s.Rule
	}
	return c
}

// Run executes the scenario. The context is checked between generations.
func (s *Scenario) Run(ctx context.Context, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.Default()
	}
	d, err := engine.New(s.config(), engine.WithLogger(log))
	if err != nil {
		return nil, err
	}
	for _, c := range s.Alive {
		d.Set(c[0], c[1], core.Alive)
	}
	if s.Pattern != "" {
		pattern, err := render.ParsePlaintext(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: pattern: %w", s.Name, err)
		}
		render.Stamp(d.Grid(), pattern, s.Origin[0], s.Origin[1])
	}

	res := &Result{
		Name:        s.Name,
		Rule:        d.Rule().String(),
		Populations: make([]int, 0, s.Steps+1),
	}
	res.Populations = append(res.Populations, d.Population())
	for i := 0; i < s.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.Step()
		res.Populations = append(res.Populations, d.Population())
	}
	res.Generations = int(d.Generation())
	res.Final = d.Grid().Clone()
	if s.Expect != nil {
		res.Failures = s.Expect.check(res.Final)
	}
	log.Debug("scenario finished", "name", s.Name, "generations", res.Generations, "passed", res.Passed())
	return res, nil
}

func (e *Expect) check(g *core.Grid) []string {
	var failures []string
	if e.Population != nil {
		if got := g.Population(); got != *e.Population {
			failures = append(failures, fmt.Sprintf("population %d, expected %d", got, *e.Population))
		}
	}
	if e.Pattern != "" {
		want, err := render.ParsePlaintext(e.Pattern)
		if err != nil {
			return append(failures, fmt.Sprintf("expected pattern: %v", err))
		}
		for y := 0; y < want.H; y++ {
			for x := 0; x < want.W; x++ {
				gx, gy := e.Origin[0]+x, e.Origin[1]+y
				if got := g.Get(gx, gy); got != want.Get(x, y) {
					failures = append(failures, fmt.Sprintf("cell (%d,%d) is %v, expected %v", gx, gy, got, want.Get(x, y)))
				}
			}
		}
	}
	return failures
}
