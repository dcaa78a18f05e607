package world

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Grid holds the terrain and plot tags for a rectangular map.
// Cells are stored row-major; (0,0) is the south-west corner.
// Accessors do not bounds-check: callers stay in range or go through Wrap.
type Grid struct {
	Width  int
	Height int
	WrapX  bool // Columns wrap around (east edge meets west edge)
	WrapY  bool // Rows wrap around (used by centering only)

	terrain []Terrain
	tags    []Tag

	// Scratch buffer reused by ShiftBy-style double buffering.
	back []Terrain
}

// NewGrid creates an all-ocean grid with no tags.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:   width,
		Height:  height,
		WrapX:   true,
		terrain: make([]Terrain, width*height),
		tags:    make([]Tag, width*height),
	}
}

// Index returns the flat index of (x, y).
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// Wrap maps (x, y) onto the grid honoring WrapX/WrapY. ok is false when
// the coordinate falls off a non-wrapping edge.
func (g *Grid) Wrap(x, y int) (wx, wy int, ok bool) {
	if x < 0 || x >= g.Width {
		if !g.WrapX {
			return 0, 0, false
		}
		x = Mod(x, g.Width)
	}
	if y < 0 || y >= g.Height {
		if !g.WrapY {
			return 0, 0, false
		}
		y = Mod(y, g.Height)
	}
	return x, y, true
}

// Terrain returns the terrain at (x, y).
func (g *Grid) Terrain(x, y int) Terrain {
	return g.terrain[g.Index(x, y)]
}

// SetTerrain sets the terrain at (x, y).
func (g *Grid) SetTerrain(x, y int, t Terrain) {
	g.terrain[g.Index(x, y)] = t
}

// Tags returns the plot tags at (x, y).
func (g *Grid) Tags(x, y int) Tag {
	return g.tags[g.Index(x, y)]
}

// SetTags replaces the plot tags at (x, y).
func (g *Grid) SetTags(x, y int, t Tag) {
	g.tags[g.Index(x, y)] = t
}

// AddTag ORs flag into the plot tags at (x, y).
func (g *Grid) AddTag(x, y int, flag Tag) {
	g.tags[g.Index(x, y)] |= flag
}

// ClearTags removes every tag on the grid.
func (g *Grid) ClearTags() {
	clear(g.tags)
}

// Fill sets every cell to t.
func (g *Grid) Fill(t Terrain) {
	for i := range g.terrain {
		g.terrain[i] = t
	}
}

// Cells exposes the terrain slice, row-major. Used by tests and the ledger.
func (g *Grid) Cells() []Terrain {
	return g.terrain
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Width:   g.Width,
		Height:  g.Height,
		WrapX:   g.WrapX,
		WrapY:   g.WrapY,
		terrain: make([]Terrain, len(g.terrain)),
		tags:    make([]Tag, len(g.tags)),
	}
	copy(c.terrain, g.terrain)
	copy(c.tags, g.tags)
	return c
}

// CopyFrom overwrites terrain and tags with those of src. Dimensions must match.
func (g *Grid) CopyFrom(src *Grid) {
	copy(g.terrain, src.terrain)
	copy(g.tags, src.tags)
}

// Remap rewrites every cell (dx, dy) from the cell returned by source(dx, dy),
// reading from a snapshot so that sources are never aliased by earlier writes.
// Tags are discarded and rebuilt by later passes.
func (g *Grid) Remap(source func(dx, dy int) (sx, sy int)) {
	if len(g.back) != len(g.terrain) {
		g.back = make([]Terrain, len(g.terrain))
	}
	copy(g.back, g.terrain)
	for dy := 0; dy < g.Height; dy++ {
		for dx := 0; dx < g.Width; dx++ {
			sx, sy := source(dx, dy)
			g.terrain[g.Index(dx, dy)] = g.back[g.Index(sx, sy)]
		}
	}
	g.ClearTags()
}

// Counts returns a summary of terrain type distribution.
func (g *Grid) Counts() map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range g.terrain {
		counts[t]++
	}
	return counts
}

// LandCount returns the number of non-water cells.
func (g *Grid) LandCount() int {
	n := 0
	for _, t := range g.terrain {
		if !t.IsWater() {
			n++
		}
	}
	return n
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, land=%d)", g.Width, g.Height, g.LandCount())
}

// Mod returns the non-negative remainder of a / n.
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
