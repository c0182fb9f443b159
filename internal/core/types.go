package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is the read/step contract the front ends drive. The engine driver
// implements it.
type Sim interface {
	Name() string
	Size() Size
	Step()
	Cells() []CellState
}
