// Package islands scatters small detached islands across open water using
// a finer noise field than the continents.
package islands

import (
	"log/slog"

	"github.com/talgya/continents/internal/entropy"
	"github.com/talgya/continents/internal/noise"
	"github.com/talgya/continents/internal/world"
)

// NoiseService creates fractal height fields.
type NoiseService interface {
	Create(id string, width, height, grain int, flags noise.Flags) *noise.Field
}

// FieldID is the id of the island noise field.
const FieldID = "islands"

const jitterStream = "island jitter"

// Params controls island density and feature size.
type Params struct {
	Size  int // 0 = sparse; each step lowers the water share by 7 points
	Grain int // Noise grain; higher than the continent grain for small islands
}

// DefaultParams returns a light scatter.
func DefaultParams() Params {
	return Params{Size: 5, Grain: 4}
}

// WaterPercent returns the share of the island field treated as water:
// 50 + size*7, clamped to [0, 99].
func (p Params) WaterPercent() float64 {
	return world.Clamp(50+float64(p.Size)*7, 0, 99)
}

// Create raises ocean cells inside b's vertical span whose island height
// is above the water threshold. New land is Flat and tagged TagIsland
// alone. Rows within width/24 of the top or bottom of the span draw a
// random inset and shrink their horizontal extent by it on both sides so
// the island band has ragged east and west ends. The band's south and
// north rows stay fixed at b's span. Returns the number of cells raised.
func Create(grid *world.Grid, svc NoiseService, rng entropy.Source, b world.Boundary, p Params) int {
	field := svc.Create(FieldID, grid.Width, grid.Height, p.Grain, noise.WrapX)
	if field == nil {
		slog.Warn("island field unavailable, skipping islands")
		return 0
	}
	threshold := field.HeightFromPercent(p.WaterPercent())
	buffer := grid.Width / 24

	raised := 0
	for y := max(b.South, 0); y <= min(b.North, grid.Height-1); y++ {
		west, east := max(b.West, 0), min(b.East, grid.Width-1)
		if y-b.South < buffer || b.North-y < buffer {
			inset := rng.Intn(buffer+1, jitterStream)
			west += inset
			east -= inset
		}
		for x := west; x <= east; x++ {
			if grid.Terrain(x, y) != world.TerrainOcean {
				continue
			}
			if field.At(x, y) <= threshold {
				continue
			}
			grid.SetTags(x, y, 0)
			grid.SetTerrain(x, y, world.TerrainFlat)
			grid.AddTag(x, y, world.TagIsland)
			raised++
		}
	}

	slog.Debug("islands created", "raised", raised, "water_percent", p.WaterPercent())
	return raised
}
