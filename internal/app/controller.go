package app

import (
	"errors"
	"fmt"
	"log/slog"

	"torus-ca/internal/core"
	"torus-ca/internal/engine"
	"torus-ca/internal/render"
	"torus-ca/internal/rules"
)

// ErrQuit is returned by Apply when the user asked to leave.
var ErrQuit = errors.New("quit requested")

// Action is a user command independent of the input device.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionAdvance
	ActionClear
	ActionRandomFill
	ActionNextRule
	ActionPrevRule
	ActionToggleBrush
	ActionCopy
	ActionQuit
)

// Controller applies user actions to a driver. The ebiten Game translates
// keys and mouse input into calls on it.
type Controller struct {
	d     *engine.Driver
	brush core.CellState
	copy  func(string) error
	log   *slog.Logger
}

// NewController wraps d. copyFn receives the plaintext grid on ActionCopy
// and may be nil.
func NewController(d *engine.Driver, copyFn func(string) error, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{d: d, brush: core.Alive, copy: copyFn, log: log}
}

// Driver returns the controlled driver.
func (c *Controller) Driver() *engine.Driver { return c.d }

// Brush returns the state painted by Paint.
func (c *Controller) Brush() core.CellState { return c.brush }

// Apply performs a. It returns ErrQuit for ActionQuit.
func (c *Controller) Apply(a Action) error {
	switch a {
	case ActionToggle:
		c.d.Toggle()
	case ActionAdvance:
		c.d.Advance()
	case ActionClear:
		c.d.Clear()
	case ActionRandomFill:
		c.d.RandomFill(c.d.Fill())
	case ActionNextRule:
		c.d.SetRule(rules.Next(c.d.Rule()))
	case ActionPrevRule:
		c.d.SetRule(rules.Prev(c.d.Rule()))
	case ActionToggleBrush:
		if c.brush == core.Alive {
			c.brush = core.Dead
		} else {
			c.brush = core.Alive
		}
	case ActionCopy:
		if c.copy == nil {
			return nil
		}
		if err := c.copy(render.Plaintext(c.d.Grid())); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.log.Info("grid copied", "generation", c.d.Generation())
	case ActionQuit:
		return ErrQuit
	}
	return nil
}

// Paint sets the cell under a pointer to the current brush.
func (c *Controller) Paint(x, y int) { c.d.Set(x, y, c.brush) }

// Hint is the one-line help shown under the controls.
func (c *Controller) Hint() string {
	mode := "draw"
	if c.brush == core.Dead {
		mode = "erase"
	}
	return fmt.Sprintf("[%s] Spc N C R Tab E Y", mode)
}

// CellAt maps a screen pixel to a grid cell. ok is false outside the grid.
func CellAt(px, py, scale int, size core.Size) (x, y int, ok bool) {
	if scale <= 0 || px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y = px/scale, py/scale
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}
