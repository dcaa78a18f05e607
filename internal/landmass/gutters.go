package landmass

import (
	"github.com/talgya/continents/internal/entropy"
	"github.com/talgya/continents/internal/world"
)

const featherStream = "gutter feather"

// CutGutters forces ocean outside the playable area:
//   - rows south of / north of the west boundary's vertical span,
//   - columns outside [west.West, east.East] at the wrap seam,
//   - every column strictly between the two hemispheres.
//
// The exact margin rows and seam columns are feathered: each land cell on
// them is cut with 50% probability. Returns the number of land cells cut
// in the inter-hemisphere gap.
func CutGutters(g *world.Grid, rng entropy.Source, bounds world.Hemispheres) int {
	south, north := bounds.West.South, bounds.West.North
	west, east := bounds.West.West, bounds.East.East

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Terrain(x, y).IsWater() {
				continue
			}
			switch {
			case y < south || y > north || x < west || x > east:
				g.SetTerrain(x, y, world.TerrainOcean)
			case y == south || y == north || x == west || x == east:
				if entropy.Chance(rng, 50, featherStream) {
					g.SetTerrain(x, y, world.TerrainOcean)
				}
			}
		}
	}

	chopped := 0
	for x := bounds.West.East + 1; x < bounds.East.West; x++ {
		for y := 0; y < g.Height; y++ {
			if g.Terrain(x, y).IsWater() {
				continue
			}
			g.SetTerrain(x, y, world.TerrainOcean)
			chopped++
		}
	}
	return chopped
}
