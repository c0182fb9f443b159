// Package rules implements the transition rules applied to a core.Grid.
//
// A Rule is a closed sum over eight fixed automata plus a Custom variant whose
// descriptor is resolved through a Registry. Every rule reads only the
// previous generation: Step writes into a fresh grid and never observes a
// partially updated one.
package rules

import (
	"fmt"

	"torus-ca/internal/core"
)

// Kind selects one of the fixed rules or the custom slot.
type Kind uint8

const (
	GameOfLife Kind = iota
	HighLife
	BriansBrain
	Seeded
	DayNight
	MorleysGarden
	Diffusion
	SierpinskiTriangle
	Custom
)

// Predicate computes the next state of the cell at (x, y) given its current
// state s and its live-neighbour count n in the previous generation g.
type Predicate func(s core.CellState, n int, x, y int, g *core.Grid) core.CellState

// Rule identifies a transition rule. Descriptor is only meaningful for Custom.
type Rule struct {
	Kind       Kind
	Descriptor string
}

// Of returns the Rule for a fixed kind.
func Of(k Kind) Rule { return Rule{Kind: k} }

// NewCustom returns a Custom rule resolved by descriptor at step time.
func NewCustom(descriptor string) Rule {
	return Rule{Kind: Custom, Descriptor: descriptor}
}

var fixed = [...]Predicate{
	GameOfLife:         gameOfLife,
	HighLife:           highLife,
	BriansBrain:        briansBrain,
	Seeded:             seeded,
	DayNight:           dayNight,
	MorleysGarden:      morleysGarden,
	Diffusion:          diffusion,
	SierpinskiTriangle: sierpinski,
}

// All returns the fixed rules in selection order.
func All() []Rule {
	out := make([]Rule, 0, len(fixed))
	for k := range fixed {
		out = append(out, Of(Kind(k)))
	}
	return out
}

// Next cycles to the following fixed rule. Custom rules move to the first one.
func Next(r Rule) Rule {
	if r.Kind >= Custom {
		return Of(GameOfLife)
	}
	return Of(Kind((int(r.Kind) + 1) % len(fixed)))
}

// Prev cycles to the preceding fixed rule. Custom rules move to the last one.
func Prev(r Rule) Rule {
	if r.Kind >= Custom {
		return Of(SierpinskiTriangle)
	}
	return Of(Kind((int(r.Kind) + len(fixed) - 1) % len(fixed)))
}

// Step applies the rule to g and returns the next generation in a new grid.
func (r Rule) Step(g *core.Grid) *core.Grid {
	return r.StepWith(defaultRegistry, g)
}

// StepWith is Step resolving Custom descriptors through reg.
func (r Rule) StepWith(reg *Registry, g *core.Grid) *core.Grid {
	next := core.MustGrid(g.W, g.H)
	r.StepIntoWith(reg, next, g)
	return next
}

// StepInto writes the next generation of src into dst. Both grids must have
// the same size and must not be the same grid.
func (r Rule) StepInto(dst, src *core.Grid) {
	r.StepIntoWith(defaultRegistry, dst, src)
}

// StepIntoWith is StepInto resolving Custom descriptors through reg.
func (r Rule) StepIntoWith(reg *Registry, dst, src *core.Grid) {
	if dst.W != src.W || dst.H != src.H {
		panic(fmt.Sprintf("rules: step size mismatch %dx%d -> %dx%d", src.W, src.H, dst.W, dst.H))
	}
	if dst == src {
		panic("rules: step destination aliases source")
	}
	pred, ok := r.resolve(reg)
	if !ok {
		dst.CopyFrom(src)
		return
	}
	apply(pred, dst, src)
}

// Resolved reports whether the rule maps to a predicate. Unresolved custom
// rules step as the identity transition.
func (r Rule) Resolved(reg *Registry) bool {
	_, ok := r.resolve(reg)
	return ok
}

func (r Rule) resolve(reg *Registry) (Predicate, bool) {
	if r.Kind < Custom {
		return fixed[r.Kind], true
	}
	if r.Kind != Custom || reg == nil {
		return nil, false
	}
	return reg.Lookup(r.Descriptor)
}

func apply(pred Predicate, dst, src *core.Grid) {
	w, h := src.W, src.H
	in := src.Cells()
	out := dst.Cells()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			n := src.CountLiveNeighbours(x, y)
			out[idx] = pred(in[idx], n, x, y, src)
		}
	}
}
