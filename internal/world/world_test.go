package world

import (
	"errors"
	"testing"

	"github.com/talgya/continents/internal/entropy"
)

func squareLayout(rows, cols int) SectorLayout {
	return SectorLayout{
		Rows: rows,
		Cols: cols,
		Bounds: Hemispheres{
			West: Boundary{West: 0, East: 9, South: 0, North: 9},
			East: Boundary{West: 14, East: 23, South: 0, North: 9, ContinentID: 1},
		},
	}
}

func TestSectorQuadrantScenario(t *testing.T) {
	l := squareLayout(2, 2)

	id := l.Sector(5, 5)
	if other := l.Sector(6, 6); other != id {
		t.Fatalf("sector(6,6) = %d, want same quadrant as sector(5,5) = %d", other, id)
	}
	if id != 3 {
		t.Fatalf("sector(5,5) = %d, want 3", id)
	}

	r := l.SectorRegion(id)
	if r.West != 5 || r.East != 9 || r.South != 5 || r.North != 9 {
		t.Fatalf("SectorRegion(%d) = %s, want x 5..9, y 5..9", id, r)
	}
}

func TestSectorRoundTripContainment(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 2}, {2, 3}, {3, 3}, {4, 5}, {10, 10}} {
		l := squareLayout(dims[0], dims[1])
		for _, b := range []Boundary{l.Bounds.West, l.Bounds.East} {
			for y := b.South; y <= b.North; y++ {
				for x := b.West; x <= b.East; x++ {
					id := l.Sector(x, y)
					if id < 0 || id >= l.Count() {
						t.Fatalf("%dx%d: sector(%d,%d) = %d out of range", dims[0], dims[1], x, y, id)
					}
					r := l.SectorRegion(id)
					if !r.Contains(x, y) {
						t.Fatalf("%dx%d: region %s of sector %d does not contain (%d,%d)", dims[0], dims[1], r, id, x, y)
					}
					if r.ContinentID != b.ContinentID {
						t.Fatalf("region continent %d, want %d", r.ContinentID, b.ContinentID)
					}
				}
			}
		}
	}
}

func TestSectorEastHemisphereOffset(t *testing.T) {
	l := squareLayout(2, 2)
	if got := l.Sector(14, 0); got != 4 {
		t.Fatalf("sector(14,0) = %d, want 4", got)
	}
	if got := l.Sector(23, 9); got != 7 {
		t.Fatalf("sector(23,9) = %d, want 7", got)
	}
}

func TestSectorRegionZeroColumns(t *testing.T) {
	l := squareLayout(2, 0)
	if r := l.SectorRegion(1); !r.IsZero() {
		t.Fatalf("zero-column region = %s, want zero boundary", r)
	}
	if got := l.Sector(3, 3); got != 0 {
		t.Fatalf("zero-column sector = %d, want 0", got)
	}
}

func TestIsInterior(t *testing.T) {
	l := squareLayout(3, 3)
	if !l.IsInterior(4) || !l.IsInterior(13) {
		t.Fatal("center sectors of a 3x3 layout must be interior in both hemispheres")
	}
	for _, id := range []int{0, 1, 2, 3, 5, 6, 7, 8} {
		if l.IsInterior(id) {
			t.Fatalf("sector %d reported interior", id)
		}
	}
	if squareLayout(2, 2).IsInterior(3) {
		t.Fatal("2x2 layout has no interior sectors")
	}
}

func TestHemispheresValidate(t *testing.T) {
	h := squareLayout(2, 2).Bounds
	if err := h.Validate(); err != nil {
		t.Fatalf("valid hemispheres rejected: %v", err)
	}
	if h.Gap() != 4 {
		t.Fatalf("gap = %d, want 4", h.Gap())
	}

	h.East.West = 9
	if err := h.Validate(); !errors.Is(err, ErrInvalidBoundary) {
		t.Fatalf("overlap error = %v, want ErrInvalidBoundary", err)
	}

	narrow := squareLayout(2, 2).Bounds
	narrow.East.East = 22
	if err := narrow.Validate(); !errors.Is(err, ErrInvalidBoundary) {
		t.Fatalf("unequal widths error = %v, want ErrInvalidBoundary", err)
	}

	shifted := squareLayout(2, 2).Bounds
	shifted.East.South, shifted.East.North = 1, 10
	if err := shifted.Validate(); !errors.Is(err, ErrInvalidBoundary) {
		t.Fatalf("unequal vertical spans error = %v, want ErrInvalidBoundary", err)
	}

	bad := Boundary{West: 5, East: 1}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidBoundary) {
		t.Fatalf("inverted boundary error = %v", err)
	}
}

func TestStartSectorsHas(t *testing.T) {
	s := StartSectors{false, true}
	if !s.Has(1) || s.Has(0) || s.Has(-1) || s.Has(7) {
		t.Fatal("Has must be bounds-safe and reflect the mask")
	}
}

func TestChooseStartSectors(t *testing.T) {
	l := squareLayout(3, 3)
	mask := ChooseStartSectors(entropy.NewStreams(7), l, 4)
	if len(mask) != l.Count() {
		t.Fatalf("mask len = %d, want %d", len(mask), l.Count())
	}
	if mask.Count() != 4 {
		t.Fatalf("marked %d sectors, want 4", mask.Count())
	}
	west, east := 0, 0
	for id, v := range mask {
		if !v {
			continue
		}
		if id < 9 {
			west++
		} else {
			east++
		}
	}
	if west != 2 || east != 2 {
		t.Fatalf("split west=%d east=%d, want 2/2", west, east)
	}
	// Interior sectors are taken first.
	if !mask[4] || !mask[13] {
		t.Fatal("interior sectors must be preferred")
	}

	again := ChooseStartSectors(entropy.NewStreams(7), l, 4)
	for i := range mask {
		if mask[i] != again[i] {
			t.Fatal("start sector choice not deterministic for a fixed seed")
		}
	}
}

func TestAreas(t *testing.T) {
	g := NewGrid(8, 6)
	g.WrapX = false
	// Two land blobs and a lake enclosed by the second.
	for y := 1; y <= 2; y++ {
		for x := 1; x <= 2; x++ {
			g.SetTerrain(x, y, TerrainFlat)
		}
	}
	for y := 1; y <= 4; y++ {
		for x := 4; x <= 6; x++ {
			g.SetTerrain(x, y, TerrainFlat)
		}
	}
	g.SetTerrain(5, 2, TerrainOcean)
	g.SetTerrain(5, 3, TerrainOcean)

	a := NewAreas()
	a.Recalculate(g)

	big := a.Biggest(false)
	if a.PlotCount(big) != 10 {
		t.Fatalf("biggest land = %d plots, want 10", a.PlotCount(big))
	}
	if a.At(4, 1) != big {
		t.Fatal("(4,1) should belong to the biggest land area")
	}
	if !a.ConnectedToOcean(big) {
		t.Fatal("coastal land must report an ocean connection")
	}

	lake := a.At(5, 2)
	if a.PlotCount(lake) != 2 {
		t.Fatalf("lake = %d plots, want 2", a.PlotCount(lake))
	}
	if a.ConnectedToOcean(lake) {
		t.Fatal("enclosed lake reported as open sea")
	}
	if !a.ConnectedToOcean(a.At(0, 0)) {
		t.Fatal("edge water must be open sea")
	}
	if a.Biggest(true) != a.At(0, 0) {
		t.Fatal("largest water body should be the sea")
	}
}

func TestAreasWrapHorizontally(t *testing.T) {
	g := NewGrid(6, 3)
	g.SetTerrain(0, 1, TerrainFlat)
	g.SetTerrain(5, 1, TerrainFlat)

	a := NewAreas()
	a.Recalculate(g)
	if a.At(0, 1) != a.At(5, 1) {
		t.Fatal("land across the wrap seam must join when WrapX is set")
	}

	g.WrapX = false
	a.Recalculate(g)
	if a.At(0, 1) == a.At(5, 1) {
		t.Fatal("land across the seam must not join without WrapX")
	}
}

func TestMarkCoast(t *testing.T) {
	g := NewGrid(9, 9)
	g.WrapX = false
	for y := 2; y <= 6; y++ {
		for x := 2; x <= 6; x++ {
			g.SetTerrain(x, y, TerrainFlat)
		}
	}
	g.SetTerrain(4, 4, TerrainOcean) // enclosed lake

	a := NewAreas()
	changed := MarkCoast(g, a)
	if changed == 0 {
		t.Fatal("MarkCoast changed nothing")
	}
	if g.Terrain(1, 1) != TerrainCoast {
		t.Fatal("diagonal neighbor of land must become coast")
	}
	if g.Terrain(4, 4) != TerrainCoast {
		t.Fatal("enclosed lake must become coast")
	}
	if g.Terrain(0, 0) != TerrainOcean {
		t.Fatal("open sea far from land must stay ocean")
	}
	if g.Terrain(3, 3) != TerrainFlat {
		t.Fatal("land must be untouched")
	}
}

func TestGridTags(t *testing.T) {
	g := NewGrid(3, 3)
	g.AddTag(1, 1, TagLandmass)
	g.AddTag(1, 1, TagIsland)
	if !g.Tags(1, 1).Has(TagLandmass | TagIsland) {
		t.Fatal("AddTag must accumulate flags")
	}
	g.SetTags(1, 1, TagWater)
	if g.Tags(1, 1) != TagWater {
		t.Fatal("SetTags must replace flags")
	}
	g.ClearTags()
	if g.Tags(1, 1) != 0 {
		t.Fatal("ClearTags left flags behind")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(15, 2, 10) != 10 || Clamp(1, 2, 10) != 2 || Clamp(5, 2, 10) != 5 {
		t.Fatal("integer clamp wrong")
	}
	if Clamp(101.5, 0, 100) != 100 {
		t.Fatal("float clamp wrong")
	}
}
