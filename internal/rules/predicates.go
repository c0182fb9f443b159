package rules

import "torus-ca/internal/core"

func state(alive bool) core.CellState {
	if alive {
		return core.Alive
	}
	return core.Dead
}

// B3/S23
func gameOfLife(s core.CellState, n int, _, _ int, _ *core.Grid) core.CellState {
	return state((s == core.Alive && n == 2) || n == 3)
}

// B36/S23
func highLife(s core.CellState, n int, _, _ int, _ *core.Grid) core.CellState {
	return state(n == 3 || n == 6 || (s == core.Alive && n == 2))
}

// Two-state Brian's Brain: firing cells always go dark and the dying phase is
// folded into Dead. The three-state form is registered as "briansbrain3".
func briansBrain(s core.CellState, n int, _, _ int, _ *core.Grid) core.CellState {
	return state(s == core.Dead && n == 2)
}

// Alive on exactly three neighbours, whatever the current state.
func seeded(_ core.CellState, n int, _, _ int, _ *core.Grid) core.CellState {
	return state(n == 3)
}

// Alive on 3, 6, 7 or 8 neighbours; live cells also hold on 2.
func dayNight(s core.CellState, n int, _, _ int, _ *core.Grid) core.CellState {
	switch n {
	case 3, 6, 7, 8:
		return core.Alive
	case 2:
		return state(s == core.Alive)
	}
	return core.Dead
}

func morleysGarden(_ core.CellState, n int, _, _ int, _ *core.Grid) core.CellState {
	return state(n == 3 || n == 6)
}

func diffusion(_ core.CellState, n int, _, _ int, _ *core.Grid) core.CellState {
	return state(n >= 2)
}

// sierpinski ignores the previous generation and redraws the gasket, so
// repeated steps are idempotent.
func sierpinski(_ core.CellState, _ int, x, y int, _ *core.Grid) core.CellState {
	return state(x&y == 0)
}

// briansBrain3 is the full excitable-medium rule: Alive -> Dying -> Dead, and
// Dead cells with exactly two Alive neighbours fire.
func briansBrain3(s core.CellState, n int, _, _ int, _ *core.Grid) core.CellState {
	switch s {
	case core.Alive:
		return core.Dying
	case core.Dying:
		return core.Dead
	}
	return state(n == 2)
}
