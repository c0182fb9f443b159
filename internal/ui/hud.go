//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"torus-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

var (
	panelColor    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor     = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonOn      = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff     = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonTextOff = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD renders the status and control panel to the right of the grid.
type HUD struct {
	sim   core.Sim
	width int

	panel *ebiten.Image
	pixel *ebiten.Image

	snapshot core.ParameterSnapshot
	status   []string
	controls []controlState
	hint     string

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	offsetX     int
}

type controlState struct {
	control  core.ParameterControl
	value    float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for sim with the given panel width. Controls are
// discovered through the core parameter interfaces.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		for _, c := range p.ParameterControls() {
			h.controls = append(h.controls, controlState{control: c})
		}
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// SetHint sets the one-line message drawn at the bottom of the panel.
func (h *HUD) SetHint(s string) {
	if h != nil {
		h.hint = s
	}
}

// Contains reports whether the screen point lies on the panel.
func (h *HUD) Contains(x, y int) bool {
	return h != nil && h.width > 0 && x >= h.offsetX && x < h.offsetX+h.width
}

// Update refreshes the snapshot and handles clicks on the +/- buttons.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.refresh()
	h.handleInput()
}

func (h *HUD) refresh() {
	controls := make([]core.ParameterControl, len(h.controls))
	for i := range h.controls {
		controls[i] = h.controls[i].control
	}
	h.status = statusLines(h.snapshot, controls)

	top := panelPadding + headerBaseline + len(h.status)*statusLineHeight + sectionGap
	for i := range h.controls {
		c := &h.controls[i]
		c.value, c.hasValue = 0, false
		if p, ok := h.snapshot.Lookup(c.control.Key); ok {
			c.value, c.hasValue = parseValue(p)
		}
		c.top = top + i*lineHeight
		buttonY := c.top + (lineHeight-buttonSize)/2
		c.plusRect = image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		c.minusRect = image.Rect(c.plusRect.Min.X-buttonGap-buttonSize, buttonY, c.plusRect.Min.X-buttonGap, buttonY+buttonSize)
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if !h.Contains(mx, my) {
		return
	}
	px := mx - h.offsetX
	pt := image.Pt(px, my)
	for i := range h.controls {
		c := &h.controls[i]
		if !c.hasValue {
			continue
		}
		switch {
		case pt.In(c.minusRect):
			h.adjust(c, -1)
			return
		case pt.In(c.plusRect):
			h.adjust(c, 1)
			return
		}
	}
}

func (h *HUD) adjust(c *controlState, dir int) {
	target, ok := stepTarget(c.control, c.value, dir)
	if !ok {
		return
	}
	var applied bool
	switch c.control.Type {
	case core.ParamTypeInt:
		applied = h.intSetter != nil && h.intSetter.SetIntParameter(c.control.Key, int(target))
	case core.ParamTypeFloat:
		applied = h.floatSetter != nil && h.floatSetter.SetFloatParameter(c.control.Key, target)
	}
	if applied {
		c.value = target
	}
}

func (h *HUD) canAdjust(c *controlState, dir int) bool {
	if !c.hasValue {
		return false
	}
	switch c.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return false
		}
	}
	_, ok := stepTarget(c.control, c.value, dir)
	return ok
}

// Draw paints the panel at offsetX, as tall as the grid at the given scale.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.sim.Name(), face, panelPadding, y, titleColor)
	for _, line := range h.status {
		y += statusLineHeight
		text.Draw(h.panel, line, face, panelPadding, y, mutedColor)
	}

	for i := range h.controls {
		c := &h.controls[i]
		labelY := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, labelY, textColor)

		value, clr := "--", mutedColor
		if c.hasValue {
			value, clr = formatValue(c.control, c.value), textColor
		}
		valueX := c.minusRect.Min.X - buttonGap - text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, valueX, labelY, clr)

		h.drawButton(c.minusRect, "-", h.canAdjust(c, -1))
		h.drawButton(c.plusRect, "+", h.canAdjust(c, 1))
	}

	if h.hint != "" {
		text.Draw(h.panel, h.hint, face, panelPadding, height-panelPadding, mutedColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonOn, textColor
	if !enabled {
		bg, fg = buttonOff, buttonTextOff
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

const (
	panelPadding     = 12
	lineHeight       = 36
	statusLineHeight = 16
	sectionGap       = 10
	buttonSize       = 24
	buttonGap        = 6
	headerBaseline   = 18
	labelBaseline    = 24
)
