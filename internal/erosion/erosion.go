// Package erosion eats away at continent peripheries: land far from a
// continent's center is converted to water with a probability that grows
// with distance, and each eroded seed may take its neighbors with it.
package erosion

import (
	"log/slog"
	"math"

	"github.com/talgya/continents/internal/entropy"
	"github.com/talgya/continents/internal/world"
)

const (
	rollStream   = "erosion roll"
	expandStream = "erosion expand"

	rollResolution = 10000
	expandChance   = 70 // percent of seeds that also erode their neighbors
	startDivisor   = 10 // threshold reduction inside start sectors
)

// Params tunes a single erosion pass.
type Params struct {
	Strength        float64 // Threshold at the outer radius (0–1)
	Falloff         float64 // Exponent on the normalized distance
	MinRadiusFactor float64 // Fraction of the max radius left untouched
	VerticalOnly    bool    // Measure distance from the horizontal midline only
}

// DefaultParams returns a moderate coastal erosion.
func DefaultParams() Params {
	return Params{
		Strength:        0.35,
		Falloff:         2.0,
		MinRadiusFactor: 0.5,
	}
}

// Stats reports what a pass did.
type Stats struct {
	Seeds    int `json:"seeds"`    // Cells selected by the threshold roll
	Expanded int `json:"expanded"` // Neighbors eroded by cluster expansion
	Eroded   int `json:"eroded"`   // Total cells converted to water
}

// Threshold returns the erosion probability for a cell at distance from the
// center. exempt is true inside minRadius, where nothing erodes.
func Threshold(distance, minRadius, maxRadius, strength, falloff float64) (threshold float64, exempt bool) {
	if distance <= minRadius {
		return 0, true
	}
	span := maxRadius - minRadius
	factor := 1.0
	if span > 0 {
		factor = math.Min((distance-minRadius)/span, 1)
	}
	return strength * math.Pow(factor, falloff), false
}

// geometry captures the per-boundary distance model.
type geometry struct {
	b         world.Boundary
	cx, cy    float64
	minRadius float64
	maxRadius float64
	vertical  bool
}

func newGeometry(b world.Boundary, p Params) geometry {
	cx, cy := b.Center()
	maxRadius := math.Hypot(cx-float64(b.West), cy-float64(b.South))
	if p.VerticalOnly {
		maxRadius = cy - float64(b.South)
	}
	return geometry{
		b:         b,
		cx:        cx,
		cy:        cy,
		minRadius: maxRadius * p.MinRadiusFactor,
		maxRadius: maxRadius,
		vertical:  p.VerticalOnly,
	}
}

// erodible reports whether expansion may take (x, y): inside the boundary
// and outside the protected inner radius.
func (g geometry) erodible(x, y int) bool {
	return g.b.Contains(x, y) && g.distance(x, y) > g.minRadius
}

func (g geometry) distance(x, y int) float64 {
	if g.vertical {
		return math.Abs(float64(y) - g.cy)
	}
	return math.Hypot(float64(x)-g.cx, float64(y)-g.cy)
}

// Erode runs the plain variant over every land cell in b.
func Erode(grid *world.Grid, rng entropy.Source, b world.Boundary, p Params) Stats {
	geo := newGeometry(b, p)
	seeds := selectSeeds(grid, rng, geo, p, func(x, y int, t float64) float64 { return t })
	stats := expand(grid, rng, seeds, geo.erodible)
	slog.Debug("erosion pass", "boundary", b, "seeds", stats.Seeds, "eroded", stats.Eroded)
	return stats
}

// ErodeStartAware is Erode with start sectors protected: their threshold is
// divided by ten, except within the corner buffer of b, which stays fully
// erodible so protected zones do not come out as perfect rectangles.
func ErodeStartAware(grid *world.Grid, rng entropy.Source, b world.Boundary, p Params, layout world.SectorLayout, starts world.StartSectors) Stats {
	geo := newGeometry(b, p)
	bx, by := CornerBuffer(b)
	seeds := selectSeeds(grid, rng, geo, p, func(x, y int, t float64) float64 {
		if !starts.Has(layout.Sector(x, y)) || NearCorner(b, x, y, bx, by) {
			return t
		}
		return t / startDivisor
	})
	stats := expand(grid, rng, seeds, geo.erodible)
	slog.Debug("start-aware erosion pass", "boundary", b, "seeds", stats.Seeds, "eroded", stats.Eroded)
	return stats
}

// CornerBuffer returns the corner buffer size per axis:
// clamp(floor(dim*0.10), 2, 10).
func CornerBuffer(b world.Boundary) (bx, by int) {
	bx = world.Clamp(b.Width()/10, 2, 10)
	by = world.Clamp(b.Height()/10, 2, 10)
	return bx, by
}

// NearCorner reports whether (x, y) lies within the buffer of any of the
// four corners of b.
func NearCorner(b world.Boundary, x, y, bx, by int) bool {
	nearX := x-b.West < bx || b.East-x < bx
	nearY := y-b.South < by || b.North-y < by
	return nearX && nearY
}

// selectSeeds rolls every land cell of the boundary against its (possibly
// adjusted) threshold. Terrain is not modified.
func selectSeeds(grid *world.Grid, rng entropy.Source, geo geometry, p Params, adjust func(x, y int, t float64) float64) [][2]int {
	var seeds [][2]int
	b := geo.b
	for y := max(b.South, 0); y <= min(b.North, grid.Height-1); y++ {
		for x := max(b.West, 0); x <= min(b.East, grid.Width-1); x++ {
			if grid.Terrain(x, y).IsWater() {
				continue
			}
			t, exempt := Threshold(geo.distance(x, y), geo.minRadius, geo.maxRadius, p.Strength, p.Falloff)
			if exempt {
				continue
			}
			t = adjust(x, y, t)
			if entropy.Float(rng, rollResolution, rollStream) < t {
				seeds = append(seeds, [2]int{x, y})
			}
		}
	}
	return seeds
}

var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// expand converts every seed to ocean and gives each a 70% chance to take
// its four erodible orthogonal neighbors too. Expansion is one layer deep;
// tiles already eroded in this pass are not processed again.
func expand(grid *world.Grid, rng entropy.Source, seeds [][2]int, erodible func(x, y int) bool) Stats {
	var stats Stats
	eroded := make(map[int]bool, len(seeds)*2)

	for _, s := range seeds {
		x, y := s[0], s[1]
		i := grid.Index(x, y)
		if eroded[i] {
			continue
		}
		eroded[i] = true
		grid.SetTerrain(x, y, world.TerrainOcean)
		stats.Seeds++

		if !entropy.Chance(rng, expandChance, expandStream) {
			continue
		}
		for _, d := range orthogonal {
			nx, ny, ok := grid.Wrap(x+d[0], y+d[1])
			if !ok {
				continue
			}
			j := grid.Index(nx, ny)
			if eroded[j] || grid.Terrain(nx, ny) == world.TerrainOcean || !erodible(nx, ny) {
				continue
			}
			eroded[j] = true
			grid.SetTerrain(nx, ny, world.TerrainOcean)
			stats.Expanded++
		}
	}

	stats.Eroded = stats.Seeds + stats.Expanded
	return stats
}
