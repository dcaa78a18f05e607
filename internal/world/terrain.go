// Package world provides the rectangular terrain grid, continent boundaries,
// sector decomposition and connected-area bookkeeping shared by every
// generation pass.
package world

// Terrain types for grid cells.
type Terrain uint8

const (
	TerrainOcean    Terrain = iota // Deep water, the default for an empty grid
	TerrainCoast                   // Shallow water next to land, also lakes
	TerrainFlat                    // Land produced by thresholding
	TerrainHills                   // Raised land
	TerrainMountain                // Impassable peaks
)

// IsWater reports whether the terrain counts as water for areas and tagging.
func (t Terrain) IsWater() bool {
	return t == TerrainOcean || t == TerrainCoast
}

// String returns a human-readable name for a terrain type.
func (t Terrain) String() string {
	switch t {
	case TerrainOcean:
		return "Ocean"
	case TerrainCoast:
		return "Coast"
	case TerrainFlat:
		return "Flat"
	case TerrainHills:
		return "Hills"
	case TerrainMountain:
		return "Mountain"
	default:
		return "Unknown"
	}
}

// Tag is a bitset of plot classification flags.
type Tag uint16

const (
	TagLandmass     Tag = 1 << iota // Any land cell
	TagWater                        // Ocean or coast
	TagWestLandmass                 // Land west of the hemisphere divider
	TagEastLandmass                 // Land east of the hemisphere divider
	TagWestWater                    // Water west of the hemisphere divider
	TagEastWater                    // Water east of the hemisphere divider
	TagIsland                       // Land created by the island scatter pass
)

// Has reports whether every bit of flag is set.
func (t Tag) Has(flag Tag) bool {
	return t&flag == flag
}

// Side selects a hemisphere for tagging overrides.
type Side uint8

const (
	SideWest Side = iota
	SideEast
)

func (s Side) String() string {
	if s == SideEast {
		return "east"
	}
	return "west"
}
