package mapgen

import (
	"github.com/talgya/continents/internal/noise"
	"github.com/talgya/continents/internal/world"
)

// ReliefFieldID is the id of the hills/mountain noise field.
const ReliefFieldID = "relief"

// Relief raises land into hills and mountains by elevation percentile.
type Relief struct {
	Grain           int
	HillsPercent    float64 // Relief percentile above which land becomes hills
	MountainPercent float64 // Relief percentile above which land becomes mountains
}

// DefaultRelief returns the standard hill and mountain shares.
func DefaultRelief() Relief {
	return Relief{Grain: 3, HillsPercent: 70, MountainPercent: 90}
}

// addRelief derives hills and mountains for every flat cell. Returns the
// number of cells raised.
func addRelief(g *world.Grid, svc *noise.Service, r Relief) int {
	field := svc.Create(ReliefFieldID, g.Width, g.Height, r.Grain, noise.WrapX)
	hills := field.HeightFromPercent(r.HillsPercent)
	mountains := field.HeightFromPercent(r.MountainPercent)

	raised := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Terrain(x, y) != world.TerrainFlat {
				continue
			}
			elev := field.At(x, y)
			switch {
			case elev > mountains:
				g.SetTerrain(x, y, world.TerrainMountain)
			case elev > hills:
				g.SetTerrain(x, y, world.TerrainHills)
			default:
				continue
			}
			raised++
		}
	}
	return raised
}
