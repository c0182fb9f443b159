// Package config holds the settings shared by the GUI and the headless CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"torus-ca/internal/rules"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config controls grid dimensions, rule selection and pacing.
type Config struct {
	Width  int     `yaml:"width" json:"width"`
	Height int     `yaml:"height" json:"height"`
	Rule   string  `yaml:"rule" json:"rule"`
	TPS    int     `yaml:"tps" json:"tps"`
	Scale  int     `yaml:"scale" json:"scale"`
	Fill   float64 `yaml:"fill" json:"fill"`
	// Seed drives random fills. Zero means seed from the clock.
	Seed int64 `yaml:"seed" json:"seed"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Width:  100,
		Height: 100,
		Rule:   "life",
		TPS:    10,
		Scale:  5,
		Fill:   0.25,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := Default()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TPS = parsed
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Scale = parsed
		}
	}
	if v, ok := cfg["fill"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Fill = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// Load reads a YAML file on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "grid height in cells")
	fs.StringVar(&c.Rule, "rule", c.Rule, "transition rule (life, highlife, briansbrain, seeded, daynight, morleysgarden, diffusion, sierpinski, custom:<name>)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second while running")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.Float64Var(&c.Fill, "fill", c.Fill, "probability of a live cell for random fills")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fills (0 = clock)")
}

// Override re-applies every flag set explicitly on changed to c and
// validates the result. It lets command-line flags win over a config file.
func (c *Config) Override(changed *pflag.FlagSet) error {
	fs := pflag.NewFlagSet("override", pflag.ContinueOnError)
	c.Bind(fs)
	var setErr error
	changed.Visit(func(f *pflag.Flag) {
		if setErr != nil || fs.Lookup(f.Name) == nil {
			return
		}
		if err := fs.Set(f.Name, f.Value.String()); err != nil {
			setErr = fmt.Errorf("%w: --%s: %w", ErrInvalid, f.Name, err)
		}
	})
	if setErr != nil {
		return setErr
	}
	return c.Validate()
}

// Validate reports the first problem found, wrapped in ErrInvalid.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalid, c.TPS)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale %d must be positive", ErrInvalid, c.Scale)
	}
	if c.Fill < 0 || c.Fill > 1 {
		return fmt.Errorf("%w: fill %g outside [0,1]", ErrInvalid, c.Fill)
	}
	if _, err := rules.Parse(c.Rule); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ParsedRule returns the selected rule. Call Validate first.
func (c Config) ParsedRule() rules.Rule {
	r, err := rules.Parse(c.Rule)
	if err != nil {
		return rules.Of(rules.GameOfLife)
	}
	return r
}
