// Package mapgen runs the full two-continent pipeline: organic landmass,
// start-aware coastal erosion, relief, island scatter, coast and lake
// marking, and plot tagging with side overrides.
package mapgen

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/talgya/continents/internal/entropy"
	"github.com/talgya/continents/internal/erosion"
	"github.com/talgya/continents/internal/islands"
	"github.com/talgya/continents/internal/landmass"
	"github.com/talgya/continents/internal/noise"
	"github.com/talgya/continents/internal/tagging"
	"github.com/talgya/continents/internal/world"
)

// Map is the output of one generation run.
type Map struct {
	RunID        uuid.UUID
	Seed         int64
	Config       Config
	Grid         *world.Grid
	Areas        *world.Areas
	Bounds       world.Hemispheres
	Layout       world.SectorLayout
	StartSectors world.StartSectors

	Landmass landmass.Result
	Erosion  [2]erosion.Stats // West, east
	Relief   int
	Islands  int
	Coast    int
	Retagged int // Water cells moved across the divider after tagging
	Tags     tagging.Summary
	Draws    map[string]int // RNG draws per stream
}

// Generate builds a complete map. The run is synchronous and owns its
// noise and RNG services, both derived from cfg.Seed.
func Generate(cfg Config) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	rng := entropy.NewStreams(cfg.Seed)
	seed := rng.Seed()
	svc := noise.NewService(seed, cfg.Backend)

	bounds := Hemispheres(cfg.Width, cfg.Height)
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("hemispheres: %w", err)
	}
	layout := world.SectorLayout{Rows: cfg.SectorRows, Cols: cfg.SectorCols, Bounds: bounds}

	m := &Map{
		RunID:        uuid.New(),
		Seed:         seed,
		Config:       cfg,
		Grid:         world.NewGrid(cfg.Width, cfg.Height),
		Areas:        world.NewAreas(),
		Bounds:       bounds,
		Layout:       layout,
		StartSectors: world.ChooseStartSectors(rng, layout, cfg.Players),
	}

	slog.Info("generating map",
		"run", m.RunID,
		"seed", seed,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"backend", svc.Backend(),
		"start_sectors", m.StartSectors.Count(),
	)

	gen := &landmass.Generator{
		Config:       cfg.Landmass,
		Noise:        svc,
		Rand:         rng,
		Layout:       layout,
		StartSectors: m.StartSectors,
		Areas:        m.Areas,
	}
	res, err := gen.Generate(m.Grid)
	if err != nil {
		return nil, fmt.Errorf("landmass: %w", err)
	}
	m.Landmass = res

	for i, b := range []world.Boundary{bounds.West, bounds.East} {
		if m.StartSectors.Count() == 0 {
			m.Erosion[i] = erosion.Erode(m.Grid, rng, b, cfg.Erosion)
		} else {
			m.Erosion[i] = erosion.ErodeStartAware(m.Grid, rng, b, cfg.Erosion, layout, m.StartSectors)
		}
	}

	m.Relief = addRelief(m.Grid, svc, cfg.Relief)

	if !cfg.SkipIslands {
		m.Islands = islands.Create(m.Grid, svc, rng, bounds.Extent(), cfg.Islands)
	}

	m.Coast = world.MarkCoast(m.Grid, m.Areas)
	tagging.Tag(m.Grid, bounds)
	m.Retagged = tagging.SettleLakes(m.Grid, m.Areas, bounds)
	for _, o := range cfg.SideOverrides {
		if o.Lakes {
			m.Retagged += tagging.ForceLakeSide(m.Grid, m.Areas, o.Region, o.Side)
		} else {
			m.Retagged += tagging.ForceOceanSide(m.Grid, o.Region, o.Side)
		}
	}
	m.Tags = tagging.Summarize(m.Grid)
	m.Draws = rng.Draws()

	slog.Info("map generated",
		"run", m.RunID,
		"attempts", res.Attempts,
		"fell_back", res.FellBack,
		"land", m.Grid.LandCount(),
		"eroded", m.Erosion[0].Eroded+m.Erosion[1].Eroded,
		"islands", m.Islands,
		"retagged", m.Retagged,
	)
	return m, nil
}

// ASCII returns a text dump of the terrain, north row first.
// '~' ocean, '-' coast, '.' flat, '^' hills, 'A' mountain, '*' island.
func (m *Map) ASCII() string {
	var sb strings.Builder
	g := m.Grid
	for y := g.Height - 1; y >= 0; y-- {
		for x := 0; x < g.Width; x++ {
			sb.WriteByte(glyph(g.Terrain(x, y), g.Tags(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(t world.Terrain, tags world.Tag) byte {
	switch t {
	case world.TerrainOcean:
		return '~'
	case world.TerrainCoast:
		return '-'
	case world.TerrainHills:
		return '^'
	case world.TerrainMountain:
		return 'A'
	}
	if tags.Has(world.TagIsland) {
		return '*'
	}
	return '.'
}
