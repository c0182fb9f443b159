// Package engine drives a grid through generations. A Driver owns the grid,
// the selected rule and the Paused/Running state; callers feed it frames,
// edits and control signals from a single goroutine.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"torus-ca/internal/config"
	"torus-ca/internal/core"
	"torus-ca/internal/rules"
)

// State is the run state of a Driver.
type State uint8

const (
	Paused State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

// Driver applies the selected rule to its grid. It is not safe for
// concurrent use.
type Driver struct {
	cur, nxt *core.Grid
	rule     rules.Rule
	reg      *rules.Registry
	state    State
	gen      uint64
	fill     float64

	pace    *core.FixedStep
	rng     *core.RNG
	clock   func() time.Time
	log     *slog.Logger
	session string
}

// Option customises a Driver.
type Option func(*Driver)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithClock replaces time.Now for pacing.
func WithClock(clock func() time.Time) Option {
	return func(d *Driver) { d.clock = clock }
}

// WithRNG sets the source used by RandomFill.
func WithRNG(rng *core.RNG) Option {
	return func(d *Driver) { d.rng = rng }
}

// WithRegistry resolves custom rules through reg instead of the default
// registry.
func WithRegistry(reg *rules.Registry) Option {
	return func(d *Driver) { d.reg = reg }
}

// New builds a paused Driver with an all-dead grid.
func New(cfg config.Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cur, err := core.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	d := &Driver{
		cur:     cur,
		nxt:     core.MustGrid(cfg.Width, cfg.Height),
		rule:    cfg.ParsedRule(),
		reg:     rules.DefaultRegistry(),
		fill:    cfg.Fill,
		session: uuid.Must(uuid.NewV7()).String(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	d.log = d.log.With("session", d.session)
	if d.rng == nil {
		d.rng = core.SeededRNG(cfg.Seed)
	}
	d.pace = core.NewFixedStep(cfg.TPS, d.clock)
	d.warnUnresolved()
	d.log.Debug("driver created", "width", cfg.Width, "height", cfg.Height, "rule", d.rule.String(), "tps", cfg.TPS)
	return d, nil
}

// Name returns the display name of the selected rule.
func (d *Driver) Name() string { return d.rule.Name() }

// Size returns the grid dimensions.
func (d *Driver) Size() core.Size { return d.cur.Size() }

// Cells exposes the current generation for rendering.
func (d *Driver) Cells() []core.CellState { return d.cur.Cells() }

// Grid returns the current generation. The grid is replaced after every
// step; do not hold on to it across steps.
func (d *Driver) Grid() *core.Grid { return d.cur }

// Session identifies this driver in log output.
func (d *Driver) Session() string { return d.session }

// State returns the run state.
func (d *Driver) State() State { return d.state }

// Generation returns the number of steps applied since creation or the last
// Clear or RandomFill.
func (d *Driver) Generation() uint64 { return d.gen }

// Population returns the number of live cells.
func (d *Driver) Population() int { return d.cur.Population() }

// Rule returns the selected rule.
func (d *Driver) Rule() rules.Rule { return d.rule }

// SetRule selects the rule applied from the next step on.
func (d *Driver) SetRule(r rules.Rule) {
	if r == d.rule {
		return
	}
	d.log.Debug("rule changed", "from", d.rule.String(), "to", r.String(), "generation", d.gen)
	d.rule = r
	d.warnUnresolved()
}

func (d *Driver) warnUnresolved() {
	if !d.rule.Resolved(d.reg) {
		d.log.Warn("custom rule not registered, stepping as identity", "descriptor", d.rule.Descriptor)
	}
}

// Toggle switches between Paused and Running.
func (d *Driver) Toggle() {
	if d.state == Running {
		d.Pause()
		return
	}
	d.Run()
}

// Run enters the Running state. The first Tick afterwards steps immediately.
func (d *Driver) Run() {
	if d.state == Running {
		return
	}
	d.state = Running
	d.pace.Reset()
	d.log.Debug("state changed", "state", d.state.String(), "generation", d.gen)
}

// Pause enters the Paused state.
func (d *Driver) Pause() {
	if d.state == Paused {
		return
	}
	d.state = Paused
	d.log.Debug("state changed", "state", d.state.String(), "generation", d.gen)
}

// Tick is called once per frame. While Running it steps whenever a tick at
// the configured rate is due and reports whether it did.
func (d *Driver) Tick() bool {
	if d.state != Running || !d.pace.ShouldStep() {
		return false
	}
	d.Step()
	return true
}

// Advance performs exactly one step while Paused. It is ignored while
// Running.
func (d *Driver) Advance() bool {
	if d.state != Paused {
		return false
	}
	d.Step()
	return true
}

// Step computes the next generation into the spare buffer and swaps it in.
func (d *Driver) Step() {
	d.rule.StepIntoWith(d.reg, d.nxt, d.cur)
	d.cur, d.nxt = d.nxt, d.cur
	d.gen++
}

// Get reads a cell with toroidal wrapping.
func (d *Driver) Get(x, y int) core.CellState { return d.cur.Get(x, y) }

// Set writes a cell with toroidal wrapping. Edits apply to the current
// generation immediately in either state.
func (d *Driver) Set(x, y int, s core.CellState) { d.cur.Set(x, y, s) }

// Clear kills every cell and resets the generation counter.
func (d *Driver) Clear() {
	d.cur.Clear()
	d.gen = 0
	d.log.Debug("grid cleared")
}

// RandomFill fills the grid with live cells at probability p and resets the
// generation counter.
func (d *Driver) RandomFill(p float64) {
	d.cur.RandomFillWith(d.rng, p)
	d.gen = 0
	d.log.Debug("grid filled", "p", p, "population", d.cur.Population())
}

// Fill returns the default probability used by RandomFill callers.
func (d *Driver) Fill() float64 { return d.fill }

// SetFill changes the default fill probability, clamped to [0,1].
func (d *Driver) SetFill(p float64) {
	d.fill = min(max(p, 0), 1)
}

// TPS returns the running tick rate.
func (d *Driver) TPS() int { return d.pace.TPS() }

// SetTPS changes the running tick rate.
func (d *Driver) SetTPS(tps int) {
	d.pace.SetTPS(tps)
	d.log.Debug("tps changed", "tps", d.pace.TPS())
}
