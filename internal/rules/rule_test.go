package rules

import (
	"testing"

	"torus-ca/internal/core"
)

func gridWith(w, h int, cells ...[2]int) *core.Grid {
	g := core.MustGrid(w, h)
	for _, c := range cells {
		g.Set(c[0], c[1], core.Alive)
	}
	return g
}

func liveSet(g *core.Grid) map[[2]int]bool {
	out := map[[2]int]bool{}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Get(x, y) == core.Alive {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func TestBlinkerOscillation(t *testing.T) {
	g := gridWith(5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	life := Of(GameOfLife)

	g = life.Step(g)
	expects := map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			alive := g.Get(x, y) == core.Alive
			if expects[[2]int{x, y}] != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, expects[[2]int{x, y}])
			}
		}
	}

	g = life.Step(g)
	expects = map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			alive := g.Get(x, y) == core.Alive
			if expects[[2]int{x, y}] != alive {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", x, y, alive, expects[[2]int{x, y}])
			}
		}
	}
}

func TestGliderTranslatesAfterFourGenerations(t *testing.T) {
	glider := [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	g := gridWith(12, 10, glider...)
	life := Of(GameOfLife)
	for i := 0; i < 4; i++ {
		g = life.Step(g)
	}

	got := liveSet(g)
	if len(got) != len(glider) {
		t.Fatalf("glider has %d cells after 4 generations, expected %d", len(got), len(glider))
	}
	for _, c := range glider {
		if !got[[2]int{c[0] + 1, c[1] + 1}] {
			t.Fatalf("expected (%d,%d) alive after translation", c[0]+1, c[1]+1)
		}
	}
}

func TestGliderWrapsAroundTorus(t *testing.T) {
	glider := [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	g := gridWith(8, 6, glider...)
	start := g.Clone()
	life := Of(GameOfLife)
	// The glider moves one diagonal cell per 4 generations, so after
	// lcm(8, 6) = 24 diagonal moves it is back where it started.
	for i := 0; i < 4*24; i++ {
		g = life.Step(g)
	}
	if !g.Equal(start) {
		t.Fatal("glider should return to its starting position after a full lap")
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	g := gridWith(6, 6, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	before := g.Clone()
	for _, r := range All() {
		next := r.Step(g)
		if next == g {
			t.Fatalf("%s: Step returned its input", r)
		}
		if !g.Equal(before) {
			t.Fatalf("%s: Step mutated its input", r)
		}
	}
}

func TestPredicates(t *testing.T) {
	type row struct {
		kind  Kind
		alive []int // neighbour counts that keep a live cell alive
		born  []int // neighbour counts that turn a dead cell alive
	}
	rows := []row{
		{GameOfLife, []int{2, 3}, []int{3}},
		{HighLife, []int{2, 3, 6}, []int{3, 6}},
		{BriansBrain, nil, []int{2}},
		{Seeded, []int{3}, []int{3}},
		{DayNight, []int{2, 3, 6, 7, 8}, []int{3, 6, 7, 8}},
		{MorleysGarden, []int{3, 6}, []int{3, 6}},
		{Diffusion, []int{2, 3, 4, 5, 6, 7, 8}, []int{2, 3, 4, 5, 6, 7, 8}},
	}
	contains := func(list []int, n int) bool {
		for _, v := range list {
			if v == n {
				return true
			}
		}
		return false
	}
	for _, r := range rows {
		pred := fixed[r.kind]
		for n := 0; n <= 8; n++ {
			if got := pred(core.Alive, n, 1, 1, nil) == core.Alive; got != contains(r.alive, n) {
				t.Fatalf("%s: live cell with %d neighbours alive=%v", r.kind, n, got)
			}
			if got := pred(core.Dead, n, 1, 1, nil) == core.Alive; got != contains(r.born, n) {
				t.Fatalf("%s: dead cell with %d neighbours alive=%v", r.kind, n, got)
			}
		}
	}
}

func TestAllDeadStaysDead(t *testing.T) {
	for _, r := range All() {
		if r.Kind == SierpinskiTriangle {
			continue
		}
		next := r.Step(core.MustGrid(9, 7))
		if pop := next.Population(); pop != 0 {
			t.Fatalf("%s produced %d cells from an empty grid", r, pop)
		}
	}
}

func TestDiffusionIsolatedCellDies(t *testing.T) {
	g := gridWith(7, 7, [2]int{3, 3})
	next := Of(Diffusion).Step(g)
	if next.Get(3, 3) != core.Dead {
		t.Fatal("isolated cell should die under diffusion")
	}
	if next.Population() != 0 {
		t.Fatalf("population = %d, expected 0", next.Population())
	}
}

func TestSierpinskiIdempotent(t *testing.T) {
	g := core.MustGrid(20, 12)
	g.RandomFillWith(core.NewRNG(3), 0.5)
	s := Of(SierpinskiTriangle)
	once := s.Step(g)
	twice := s.Step(once)
	if !once.Equal(twice) {
		t.Fatal("sierpinski step should be idempotent")
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			want := core.Dead
			if x&y == 0 {
				want = core.Alive
			}
			if got := once.Get(x, y); got != want {
				t.Fatalf("cell (%d,%d) = %v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestBriansBrainTwoStateFiresOnce(t *testing.T) {
	g := gridWith(6, 6, [2]int{2, 2}, [2]int{3, 2})
	next := Of(BriansBrain).Step(g)
	if next.Get(2, 2) != core.Dead || next.Get(3, 2) != core.Dead {
		t.Fatal("firing cells should go dark")
	}
	for _, c := range [][2]int{{2, 1}, {3, 1}, {2, 3}, {3, 3}} {
		if next.Get(c[0], c[1]) != core.Alive {
			t.Fatalf("expected (%d,%d) to fire", c[0], c[1])
		}
	}
}

func TestBriansBrainThreeStateCycle(t *testing.T) {
	g := gridWith(6, 6, [2]int{2, 2})
	g.Set(4, 4, core.Dying)
	next := NewCustom(BriansBrain3).Step(g)
	if got := next.Get(2, 2); got != core.Dying {
		t.Fatalf("firing cell became %v, expected dying", got)
	}
	if got := next.Get(4, 4); got != core.Dead {
		t.Fatalf("dying cell became %v, expected dead", got)
	}
	if next.Population() != 0 {
		t.Fatalf("single firing cell should not ignite neighbours, population %d", next.Population())
	}
}

func TestCustomUnknownDescriptorIsIdentity(t *testing.T) {
	g := gridWith(5, 5, [2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1})
	r := NewCustom("no-such-rule")
	if r.Resolved(DefaultRegistry()) {
		t.Fatal("unregistered descriptor should not resolve")
	}
	next := r.Step(g)
	if next == g || !next.Equal(g) {
		t.Fatal("unknown custom rule should copy the grid unchanged")
	}
}

func TestCustomRegistryPredicate(t *testing.T) {
	reg := NewRegistry()
	reg.Register("invert", func(s core.CellState, _ int, _, _ int, _ *core.Grid) core.CellState {
		if s == core.Alive {
			return core.Dead
		}
		return core.Alive
	})
	g := gridWith(3, 2, [2]int{0, 0})
	next := NewCustom("invert").StepWith(reg, g)
	if next.Population() != 5 || next.Get(0, 0) != core.Dead {
		t.Fatalf("invert produced population %d", next.Population())
	}
	if got := reg.Descriptors(); len(got) != 1 || got[0] != "invert" {
		t.Fatalf("Descriptors = %v", got)
	}
}

func TestStepIntoReusesBuffer(t *testing.T) {
	src := gridWith(5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	dst := core.MustGrid(5, 5)
	dst.Set(0, 0, core.Alive)
	Of(GameOfLife).StepInto(dst, src)
	if !dst.Equal(Of(GameOfLife).Step(src)) {
		t.Fatal("StepInto should match Step")
	}
}

func TestStepIntoPanicsOnSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on size mismatch")
		}
	}()
	Of(GameOfLife).StepInto(core.MustGrid(4, 4), core.MustGrid(5, 5))
}

func TestNextPrevCycle(t *testing.T) {
	r := Of(GameOfLife)
	seen := map[Kind]bool{}
	for i := 0; i < len(All()); i++ {
		seen[r.Kind] = true
		r = Next(r)
	}
	if len(seen) != 8 || r.Kind != GameOfLife {
		t.Fatalf("Next should visit all 8 fixed rules and wrap, saw %d", len(seen))
	}
	if Prev(Of(GameOfLife)).Kind != SierpinskiTriangle {
		t.Fatal("Prev should wrap to the last fixed rule")
	}
	if Next(NewCustom("x")).Kind != GameOfLife {
		t.Fatal("Next from custom should start at the first fixed rule")
	}
}
