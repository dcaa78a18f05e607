package world

// MarkCoast converts ocean cells adjacent to land (including diagonals)
// into coast, then turns every enclosed water area that is not open sea
// into coast as well, so lakes read as shallow water. areas is
// recalculated before returning. Returns the number of cells changed.
func MarkCoast(g *Grid, areas *Areas) int {
	var toMark []int

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Terrain(x, y) != TerrainOcean {
				continue
			}
			if touchesLand(g, x, y) {
				toMark = append(toMark, g.Index(x, y))
			}
		}
	}
	for _, i := range toMark {
		g.terrain[i] = TerrainCoast
	}
	changed := len(toMark)

	areas.Recalculate(g)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Terrain(x, y) != TerrainOcean {
				continue
			}
			if !areas.ConnectedToOcean(areas.At(x, y)) {
				g.SetTerrain(x, y, TerrainCoast)
				changed++
			}
		}
	}

	areas.Recalculate(g)
	return changed
}

func touchesLand(g *Grid, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny, ok := g.Wrap(x+dx, y+dy)
			if !ok {
				continue
			}
			if !g.Terrain(nx, ny).IsWater() {
				return true
			}
		}
	}
	return false
}
