package mapgen

import (
	"fmt"

	"github.com/talgya/continents/internal/erosion"
	"github.com/talgya/continents/internal/islands"
	"github.com/talgya/continents/internal/landmass"
	"github.com/talgya/continents/internal/noise"
	"github.com/talgya/continents/internal/world"
)

// Config holds map generation parameters.
type Config struct {
	Width   int
	Height  int
	Seed    int64         // Random seed (0 = random)
	Backend noise.Backend // Noise implementation

	SectorRows int // Sector grid per hemisphere
	SectorCols int
	Players    int // Start sectors to reserve across both hemispheres

	Landmass landmass.Config
	Erosion  erosion.Params
	Relief   Relief
	Islands  islands.Params
	// SkipIslands disables the island scatter pass.
	SkipIslands bool
	// SideOverrides force water in a region onto one side after tagging,
	// applied in order.
	SideOverrides []SideOverride
}

// SideOverride assigns the water inside Region to Side. With Lakes set only
// lake coast is retagged; otherwise only open ocean.
type SideOverride struct {
	Region world.Boundary
	Side   world.Side
	Lakes  bool
}

// DefaultConfig returns a standard-size two-continent map.
func DefaultConfig() Config {
	return Config{
		Width:      84,
		Height:     54,
		Backend:    noise.BackendSimplex,
		SectorRows: 3,
		SectorCols: 3,
		Players:    6,
		Landmass:   landmass.DefaultConfig(),
		Erosion:    erosion.DefaultParams(),
		Relief:     DefaultRelief(),
		Islands:    islands.DefaultParams(),
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 44
	cfg.Height = 26
	cfg.Seed = 42
	cfg.SectorRows = 2
	cfg.SectorCols = 2
	cfg.Players = 2
	cfg.Landmass.MaxAttempts = 10
	return cfg
}

// Validate checks the dimensions can hold two continents.
func (c Config) Validate() error {
	if c.Width < 16 || c.Height < 8 {
		return fmt.Errorf("map %dx%d too small: need at least 16x8", c.Width, c.Height)
	}
	if c.SectorRows < 0 || c.SectorCols < 0 {
		return fmt.Errorf("negative sector grid %dx%d", c.SectorRows, c.SectorCols)
	}
	if err := c.Landmass.Validate(); err != nil {
		return err
	}
	for i, o := range c.SideOverrides {
		if err := o.Region.Validate(); err != nil {
			return fmt.Errorf("side override %d: %w", i, err)
		}
	}
	return nil
}

// Hemispheres derives the west and east continent boundaries for a map:
// a polar margin of height/10 rows (at least one), a seam margin of
// width/32 columns (at least one) and a gap of width/16 columns (at least
// two) between the continents. Both continents get the same width; an odd
// leftover column widens the east seam margin.
func Hemispheres(width, height int) world.Hemispheres {
	polar := max(height/10, 1)
	seam := max(width/32, 1)
	gap := max(width/16, 2)

	half := (width - 2*seam - gap) / 2
	westEast := seam + half - 1
	eastWest := westEast + gap + 1

	return world.Hemispheres{
		West: world.Boundary{
			West:        seam,
			East:        westEast,
			South:       polar,
			North:       height - 1 - polar,
			ContinentID: 0,
		},
		East: world.Boundary{
			West:        eastWest,
			East:        eastWest + half - 1,
			South:       polar,
			North:       height - 1 - polar,
			ContinentID: 1,
		},
	}
}
