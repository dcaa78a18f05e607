package landmass

import (
	"log/slog"

	"github.com/talgya/continents/internal/world"
)

// DetermineXShift returns the column whose surrounding window (radius
// width/10, wrapping) holds the most water. Ties keep the lowest column.
func DetermineXShift(g *world.Grid) int {
	counts := make([]int, g.Width)
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if g.Terrain(x, y).IsWater() {
				counts[x]++
			}
		}
	}
	return densestWindow(counts, g.Width/10)
}

// DetermineYShift is DetermineXShift over rows with radius height/15.
func DetermineYShift(g *world.Grid) int {
	counts := make([]int, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Terrain(x, y).IsWater() {
				counts[y]++
			}
		}
	}
	return densestWindow(counts, g.Height/15)
}

func densestWindow(counts []int, radius int) int {
	n := len(counts)
	best, bestSum := 0, -1
	for i := 0; i < n; i++ {
		sum := 0
		for d := -radius; d <= radius; d++ {
			sum += counts[world.Mod(i+d, n)]
		}
		if sum > bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}

// ShiftBy rotates the grid toroidally so that cell (dx, dy) receives the
// terrain previously at (dx+shiftX, dy+shiftY).
func ShiftBy(g *world.Grid, shiftX, shiftY int) {
	g.Remap(func(dx, dy int) (int, int) {
		return world.Mod(dx+shiftX, g.Width), world.Mod(dy+shiftY, g.Height)
	})
}

// Center moves the most water-dense column and row to the array edges.
// Returns the applied shifts; nothing is touched when both are zero.
func Center(g *world.Grid) (shiftX, shiftY int) {
	shiftX = DetermineXShift(g)
	shiftY = DetermineYShift(g)
	if shiftX == 0 && shiftY == 0 {
		return 0, 0
	}
	ShiftBy(g, shiftX, shiftY)
	slog.Debug("landmass centered", "shift_x", shiftX, "shift_y", shiftY)
	return shiftX, shiftY
}
