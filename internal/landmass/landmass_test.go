package landmass

import (
	"errors"
	"math"
	"testing"

	"github.com/talgya/continents/internal/entropy"
	"github.com/talgya/continents/internal/noise"
	"github.com/talgya/continents/internal/world"
)

// scriptedNoise hands out prepared fields in order, repeating the last one.
type scriptedNoise struct {
	fields []*noise.Field
	calls  int
}

func (s *scriptedNoise) Create(id string, width, height, grain int, flags noise.Flags) *noise.Field {
	f := s.fields[min(s.calls, len(s.fields)-1)]
	s.calls++
	return f
}

const testW, testH = 40, 20

func testBounds() world.Hemispheres {
	return world.Hemispheres{
		West: world.Boundary{West: 1, East: 17, South: 2, North: 17},
		East: world.Boundary{West: 22, East: 38, South: 2, North: 17, ContinentID: 1},
	}
}

// field builds a 0/1 height field where land(x, y) cells are 1.
func field(land func(x, y int) bool) *noise.Field {
	values := make([]float64, testW*testH)
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			if land(x, y) {
				values[y*testW+x] = 1
			}
		}
	}
	return noise.FromValues(testW, testH, values)
}

func testGenerator(fields ...*noise.Field) *Generator {
	cfg := DefaultConfig()
	cfg.UseShaping = false
	cfg.WaterPercent = 100 // only the maximum height counts as land
	return &Generator{
		Config: cfg,
		Noise:  &scriptedNoise{fields: fields},
		Rand:   entropy.NewStreams(1),
		Layout: world.SectorLayout{Rows: 2, Cols: 2, Bounds: testBounds()},
	}
}

func TestGenerateRetriesAfterGutterOverflow(t *testing.T) {
	// Land everywhere but one column and row: the gap columns are full.
	overflow := field(func(x, y int) bool { return x != 0 && y != 0 })
	// Two clean blocks, one per hemisphere.
	clean := field(func(x, y int) bool {
		return y >= 4 && y <= 15 && ((x >= 6 && x <= 17) || (x >= 22 && x <= 33))
	})

	gen := testGenerator(overflow, clean)
	g := world.NewGrid(testW, testH)
	res, err := gen.Generate(g)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if res.Attempts != 2 || !res.Accepted || res.FellBack {
		t.Fatalf("result = %+v, want accepted on attempt 2", res)
	}
	if len(res.Rejections) != 1 || res.Rejections[0].Reason != RejectGutterOverflow {
		t.Fatalf("rejections = %+v, want one gutter overflow", res.Rejections)
	}
	if res.Rejections[0].Chopped < 56 {
		t.Fatalf("chopped = %d, want at least 56", res.Rejections[0].Chopped)
	}
	if res.Biggest != 144 || res.LandTiles != 288 {
		t.Fatalf("biggest=%d land=%d, want 144 and 288", res.Biggest, res.LandTiles)
	}
	if g.Terrain(10, 10) != world.TerrainFlat || !g.Terrain(19, 10).IsWater() {
		t.Fatal("accepted grid does not match the clean field")
	}
}

func TestGenerateFallsBackToBestCandidate(t *testing.T) {
	speck := field(func(x, y int) bool { return x >= 8 && x <= 9 && y >= 4 && y <= 5 })

	gen := testGenerator(speck)
	gen.Config.MaxAttempts = 3
	g := world.NewGrid(testW, testH)
	res, err := gen.Generate(g)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if res.Accepted || !res.FellBack || res.Attempts != 3 {
		t.Fatalf("result = %+v, want fallback after 3 attempts", res)
	}
	if len(res.Rejections) != 3 {
		t.Fatalf("rejections = %d, want 3", len(res.Rejections))
	}
	for _, r := range res.Rejections {
		if r.Reason != RejectSmallLandmass || r.Biggest != 4 {
			t.Fatalf("rejection = %+v, want small landmass of 4", r)
		}
	}
	if res.Biggest != 4 || g.LandCount() != 4 {
		t.Fatalf("restored grid has %d land, biggest %d", g.LandCount(), res.Biggest)
	}
}

func TestFallbackPrefersLeastChopped(t *testing.T) {
	gapRows := func(north int, marker bool) *noise.Field {
		return field(func(x, y int) bool {
			if marker && x >= 6 && x <= 7 && y >= 6 && y <= 7 {
				return true
			}
			return x >= 18 && x <= 21 && y >= 3 && y <= north
		})
	}
	// Every attempt overflows the gap; the second cuts the least.
	gen := testGenerator(gapRows(14, false), gapRows(12, true), gapRows(15, false))
	gen.Config.MaxAttempts = 3
	g := world.NewGrid(testW, testH)
	res, err := gen.Generate(g)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !res.FellBack || res.Accepted {
		t.Fatalf("result = %+v, want fallback", res)
	}
	chopped := []int{48, 40, 52}
	for i, r := range res.Rejections {
		if r.Reason != RejectGutterOverflow || r.Chopped != chopped[i] {
			t.Fatalf("rejection %d = %+v, want overflow chopping %d", i, r, chopped[i])
		}
	}
	if g.Terrain(6, 6) != world.TerrainFlat || g.LandCount() != 4 || res.Biggest != 4 {
		t.Fatalf("restored grid is not the least-chopped attempt (land %d)", g.LandCount())
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	gen := testGenerator(field(func(x, y int) bool { return false }))
	gen.Config.MaxAttempts = 0
	if _, err := gen.Generate(world.NewGrid(testW, testH)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}

	gen.Config = DefaultConfig()
	gen.Config.WaterPercent = 120
	if err := gen.Config.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}

	gen.Config = DefaultConfig()
	gen.Layout.Bounds.East.West = 10
	if _, err := gen.Generate(world.NewGrid(testW, testH)); !errors.Is(err, world.ErrInvalidBoundary) {
		t.Fatalf("err = %v, want ErrInvalidBoundary", err)
	}
}

func TestCutGutters(t *testing.T) {
	g := world.NewGrid(testW, testH)
	g.Fill(world.TerrainFlat)

	chopped := CutGutters(g, entropy.NewStreams(3), testBounds())
	if chopped < 56 || chopped > 64 {
		t.Fatalf("chopped = %d, want 56..64", chopped)
	}
	for x := 0; x < testW; x++ {
		for _, y := range []int{0, 1, 18, 19} {
			if !g.Terrain(x, y).IsWater() {
				t.Fatalf("polar cell (%d,%d) left as land", x, y)
			}
		}
	}
	for y := 0; y < testH; y++ {
		if !g.Terrain(0, y).IsWater() || !g.Terrain(39, y).IsWater() {
			t.Fatalf("seam row %d left as land", y)
		}
		for x := 18; x <= 21; x++ {
			if !g.Terrain(x, y).IsWater() {
				t.Fatalf("gap cell (%d,%d) left as land", x, y)
			}
		}
	}
	if g.Terrain(10, 10) != world.TerrainFlat || g.Terrain(30, 5) != world.TerrainFlat {
		t.Fatal("interior land was cut")
	}
}

func TestShiftByZeroIsIdentity(t *testing.T) {
	g := world.NewGrid(6, 4)
	g.SetTerrain(2, 1, world.TerrainFlat)
	g.SetTerrain(5, 3, world.TerrainHills)
	before := g.Clone()

	ShiftBy(g, 0, 0)
	for i, c := range g.Cells() {
		if c != before.Cells()[i] {
			t.Fatal("zero shift changed the grid")
		}
	}
}

func TestShiftByWraps(t *testing.T) {
	g := world.NewGrid(4, 3)
	g.SetTerrain(0, 0, world.TerrainFlat)

	ShiftBy(g, 1, 1)
	if g.Terrain(3, 2) != world.TerrainFlat || g.LandCount() != 1 {
		t.Fatal("cell (0,0) should wrap to (3,2)")
	}
}

func TestCenterMovesWaterToEdge(t *testing.T) {
	g := world.NewGrid(20, 10)
	g.Fill(world.TerrainFlat)
	for y := 0; y < 10; y++ {
		g.SetTerrain(7, y, world.TerrainOcean)
	}

	if sx := DetermineXShift(g); sx != 5 {
		t.Fatalf("x shift = %d, want 5", sx)
	}
	sx, sy := Center(g)
	if sx != 5 || sy != 0 {
		t.Fatalf("Center = %d,%d, want 5,0", sx, sy)
	}
	for y := 0; y < 10; y++ {
		if !g.Terrain(2, y).IsWater() {
			t.Fatalf("water column not at x=2 after shift (row %d)", y)
		}
	}
	if g.Terrain(7, 0).IsWater() {
		t.Fatal("old water column still present")
	}
}

func shapingLayout(rows, cols int) world.SectorLayout {
	return world.SectorLayout{
		Rows: rows,
		Cols: cols,
		Bounds: world.Hemispheres{
			West: world.Boundary{West: 0, East: 9, South: 0, North: 9},
			East: world.Boundary{West: 14, East: 23, South: 0, North: 9, ContinentID: 1},
		},
	}
}

func TestAdjustedHeightNeutralWeights(t *testing.T) {
	p := ShapingParams{FractalWeight: 1, CenterExponent: 1}
	ctx := NewShapingContext(p, 0.5, shapingLayout(2, 2), nil)
	for _, raw := range []float64{0, 0.3, 0.9} {
		if got := ctx.AdjustedHeight(4, 4, raw); got != raw {
			t.Fatalf("neutral weights changed %f to %f", raw, got)
		}
	}
}

func TestAdjustedHeightFavorsCenter(t *testing.T) {
	p := DefaultShapingParams()
	p.CenterThreshold = 0
	ctx := NewShapingContext(p, 0.5, shapingLayout(2, 2), nil)

	if ctx.PercentFromCenter(0, 0) != 100 {
		t.Fatalf("corner percent = %f, want 100", ctx.PercentFromCenter(0, 0))
	}
	center := ctx.AdjustedHeight(11, 4, 0.5)
	corner := ctx.AdjustedHeight(0, 0, 0.5)
	if center <= corner {
		t.Fatalf("center %f not above corner %f", center, corner)
	}
}

func TestAdjustedHeightInteriorSectorBonus(t *testing.T) {
	const wh = 0.5
	l := shapingLayout(3, 3)
	if !l.IsInterior(l.Sector(5, 5)) {
		t.Fatal("(5,5) should be in an interior sector")
	}

	p := DefaultShapingParams()
	p.CenterThreshold = 100
	near := NewShapingContext(p, wh, l, nil).AdjustedHeight(5, 5, 0.4)
	p.CenterThreshold = 0
	far := NewShapingContext(p, wh, l, nil).AdjustedHeight(5, 5, 0.4)

	if diff := near - far; math.Abs(diff-p.CenterWeight*wh) > 1e-9 {
		t.Fatalf("interior bonus = %f, want %f", diff, p.CenterWeight*wh)
	}
}

func TestAdjustedHeightStartSectorBonus(t *testing.T) {
	const wh = 0.5
	l := shapingLayout(10, 10)
	p := DefaultShapingParams()
	p.CenterWeight = 0
	p.CenterThreshold = 100

	starts := make(world.StartSectors, l.Count())
	starts[l.Sector(2, 2)] = true

	with := NewShapingContext(p, wh, l, starts).AdjustedHeight(2, 2, 0.4)
	without := NewShapingContext(p, wh, l, nil).AdjustedHeight(2, 2, 0.4)

	// (2,2) is a whole sector, so the radial term is at full strength; it
	// sits beyond two thirds of the threshold, so there is no inner boost.
	if diff := with - without; math.Abs(diff-p.StartSectorWeight*wh) > 1e-9 {
		t.Fatalf("start sector bonus = %f, want %f", diff, p.StartSectorWeight*wh)
	}
}
