//go:build ebiten

package app

import (
	"errors"
	"log/slog"

	"torus-ca/internal/engine"
	"torus-ca/internal/render"
	"torus-ca/internal/ui"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 240

var keyActions = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeySpace, ActionToggle},
	{ebiten.KeyN, ActionAdvance},
	{ebiten.KeyC, ActionClear},
	{ebiten.KeyR, ActionRandomFill},
	{ebiten.KeyE, ActionToggleBrush},
	{ebiten.KeyY, ActionCopy},
	{ebiten.KeyQ, ActionQuit},
	{ebiten.KeyEscape, ActionQuit},
}

// Game adapts a driver to the ebiten.Game interface.
type Game struct {
	ctl     *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	scale   int
	log     *slog.Logger
}

// New constructs a Game drawing d at the given pixel scale.
func New(d *engine.Driver, scale int, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	size := d.Size()
	return &Game{
		ctl:     NewController(d, clipboard.WriteAll, log),
		painter: render.NewGridPainter(size.W, size.H, render.DefaultPalette),
		hud:     ui.NewHUD(d, hudWidth),
		scale:   max(scale, 1),
		log:     log,
	}
}

// Update handles input and advances the driver when its pacer allows.
func (g *Game) Update() error {
	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			if err := g.apply(ka.action); err != nil {
				return err
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a := ActionNextRule
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			a = ActionPrevRule
		}
		g.apply(a)
	}

	d := g.ctl.Driver()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if x, y, ok := CellAt(mx, my, g.scale, d.Size()); ok {
			g.ctl.Paint(x, y)
		}
	}

	g.hud.SetHint(g.ctl.Hint())
	g.hud.Update(d.Size().W * g.scale)
	d.Tick()
	return nil
}

func (g *Game) apply(a Action) error {
	err := g.ctl.Apply(a)
	switch {
	case errors.Is(err, ErrQuit):
		return ebiten.Termination
	case err != nil:
		g.log.Warn("action failed", "err", err)
	}
	return nil
}

// Draw renders the grid and the HUD panel.
func (g *Game) Draw(screen *ebiten.Image) {
	d := g.ctl.Driver()
	g.painter.Blit(screen, d.Cells(), g.scale, 0, 0)
	g.hud.Draw(screen, d.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctl.Driver().Size()
	return s.W*g.scale + hudWidth, s.H * g.scale
}
