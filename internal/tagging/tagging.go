// Package tagging classifies every cell of a finished map as landmass or
// water and assigns it to the west or east side of the hemisphere divider.
package tagging

import (
	"github.com/talgya/continents/internal/world"
)

// Summary counts tagged cells.
type Summary struct {
	WestLandmass int `json:"west_landmass"`
	EastLandmass int `json:"east_landmass"`
	WestWater    int `json:"west_water"`
	EastWater    int `json:"east_water"`
	Islands      int `json:"islands"`
}

// Tag clears and rebuilds every tag on the grid. The island tag set by the
// island pass survives on cells that are still land.
func Tag(g *world.Grid, bounds world.Hemispheres) Summary {
	divider := bounds.Divider()

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			island := g.Tags(x, y).Has(world.TagIsland)
			west := x < divider

			var tags world.Tag
			if g.Terrain(x, y).IsWater() {
				tags = world.TagWater
				if west {
					tags |= world.TagWestWater
				} else {
					tags |= world.TagEastWater
				}
			} else {
				tags = world.TagLandmass
				if west {
					tags |= world.TagWestLandmass
				} else {
					tags |= world.TagEastLandmass
				}
				if island {
					tags |= world.TagIsland
				}
			}
			g.SetTags(x, y, tags)
		}
	}
	return Summarize(g)
}

// Summarize counts the tags currently on the grid.
func Summarize(g *world.Grid) Summary {
	var s Summary
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			tags := g.Tags(x, y)
			switch {
			case tags.Has(world.TagWestLandmass):
				s.WestLandmass++
			case tags.Has(world.TagEastLandmass):
				s.EastLandmass++
			case tags.Has(world.TagWestWater):
				s.WestWater++
			case tags.Has(world.TagEastWater):
				s.EastWater++
			}
			if tags.Has(world.TagLandmass | world.TagIsland) {
				s.Islands++
			}
		}
	}
	return s
}

// ForceOceanSide retags every ocean cell inside region as water on the
// given side. Returns the number of cells retagged.
func ForceOceanSide(g *world.Grid, region world.Boundary, side world.Side) int {
	return forceSide(g, region, side, func(x, y int) bool {
		return g.Terrain(x, y) == world.TerrainOcean
	})
}

// ForceLakeSide retags coast cells inside region that belong to a water
// area cut off from the open sea. areas must be current for g.
func ForceLakeSide(g *world.Grid, areas *world.Areas, region world.Boundary, side world.Side) int {
	return forceSide(g, region, side, func(x, y int) bool {
		return g.Terrain(x, y) == world.TerrainCoast && !areas.ConnectedToOcean(areas.At(x, y))
	})
}

// SettleLakes moves every lake that straddles the divider wholly onto the
// side holding most of its cells; ties go west. areas must be current for
// g. Returns the number of cells retagged.
func SettleLakes(g *world.Grid, areas *world.Areas, bounds world.Hemispheres) int {
	type lake struct {
		box        world.Boundary
		west, east int
	}
	divider := bounds.Divider()
	lakes := make(map[world.AreaID]*lake)
	var order []world.AreaID

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			id := areas.At(x, y)
			a, ok := areas.Area(id)
			if !ok || !a.Water || a.Ocean {
				continue
			}
			l, seen := lakes[id]
			if !seen {
				l = &lake{box: world.Boundary{West: x, East: x, South: y, North: y}}
				lakes[id] = l
				order = append(order, id)
			}
			l.box.West = min(l.box.West, x)
			l.box.East = max(l.box.East, x)
			l.box.North = max(l.box.North, y)
			if x < divider {
				l.west++
			} else {
				l.east++
			}
		}
	}

	n := 0
	for _, id := range order {
		l := lakes[id]
		if l.west == 0 || l.east == 0 {
			continue
		}
		side := world.SideWest
		if l.east > l.west {
			side = world.SideEast
		}
		n += forceSide(g, l.box, side, func(x, y int) bool {
			return areas.At(x, y) == id
		})
	}
	return n
}

func forceSide(g *world.Grid, region world.Boundary, side world.Side, match func(x, y int) bool) int {
	n := 0
	for y := max(region.South, 0); y <= min(region.North, g.Height-1); y++ {
		for x := max(region.West, 0); x <= min(region.East, g.Width-1); x++ {
			if !match(x, y) {
				continue
			}
			tags := g.Tags(x, y) &^ (world.TagWestWater | world.TagEastWater)
			tags |= world.TagWater
			if side == world.SideEast {
				tags |= world.TagEastWater
			} else {
				tags |= world.TagWestWater
			}
			g.SetTags(x, y, tags)
			n++
		}
	}
	return n
}
