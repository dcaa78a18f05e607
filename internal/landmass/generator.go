package landmass

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/continents/internal/entropy"
	"github.com/talgya/continents/internal/noise"
	"github.com/talgya/continents/internal/world"
)

// ErrInvalidConfig is returned for configurations the generator cannot run.
var ErrInvalidConfig = errors.New("invalid landmass config")

// NoiseService creates fractal height fields.
type NoiseService interface {
	Create(id string, width, height, grain int, flags noise.Flags) *noise.Field
}

// Config holds organic landmass generation parameters.
type Config struct {
	Grain                   int     // Noise grain; higher is more fragmented
	WaterPercent            float64 // Target share of water before shaping (0–100)
	RequiredLandmassPercent float64 // Minimum share of the map in the largest continent
	MaxAttempts             int     // Retry cap before falling back to the best candidate
	Shaping                 ShapingParams
	UseShaping              bool // Threshold AdjustedHeight instead of the raw height
}

// DefaultConfig returns a reasonable starting configuration.
func DefaultConfig() Config {
	return Config{
		Grain:                   2,
		WaterPercent:            65,
		RequiredLandmassPercent: 10,
		MaxAttempts:             50,
		Shaping:                 DefaultShapingParams(),
		UseShaping:              true,
	}
}

// Validate checks ranges the state machine depends on.
func (c Config) Validate() error {
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.WaterPercent < 0 || c.WaterPercent > 100 {
		return fmt.Errorf("%w: water percent %.1f", ErrInvalidConfig, c.WaterPercent)
	}
	if c.RequiredLandmassPercent < 0 || c.RequiredLandmassPercent > 100 {
		return fmt.Errorf("%w: required landmass percent %.1f", ErrInvalidConfig, c.RequiredLandmassPercent)
	}
	return nil
}

// RejectReason explains why a candidate landmass was discarded.
type RejectReason uint8

const (
	RejectGutterOverflow RejectReason = iota + 1 // Too much land cut from the hemisphere gap
	RejectSmallLandmass                          // Largest continent below the required size
)

func (r RejectReason) String() string {
	switch r {
	case RejectGutterOverflow:
		return "gutter_overflow"
	case RejectSmallLandmass:
		return "small_landmass"
	default:
		return "unknown"
	}
}

// Rejection records one discarded attempt.
type Rejection struct {
	Attempt int          `json:"attempt"`
	Reason  RejectReason `json:"reason"`
	Chopped int          `json:"chopped"`
	Biggest int          `json:"biggest"` // Largest land area; 0 when not evaluated
}

// Result summarizes a generation run.
type Result struct {
	Attempts   int         `json:"attempts"`
	Accepted   bool        `json:"accepted"`  // An attempt met both constraints
	FellBack   bool        `json:"fell_back"` // MaxAttempts hit; best candidate restored
	ShiftX     int         `json:"shift_x"`
	ShiftY     int         `json:"shift_y"`
	Biggest    int         `json:"biggest"`
	LandTiles  int         `json:"land_tiles"`
	Rejections []Rejection `json:"rejections"`
}

// Generator runs the Generate → Shift → CutGutters → Evaluate loop.
type Generator struct {
	Config       Config
	Noise        NoiseService
	Rand         entropy.Source
	Layout       world.SectorLayout
	StartSectors world.StartSectors
	Areas        *world.Areas
}

// NoiseFieldID is the id of the continent noise field.
const NoiseFieldID = "continents"

type candidate struct {
	grid     *world.Grid
	gutterOK bool
	chopped  int
	biggest  int
	shiftX   int
	shiftY   int
}

// better ranks candidates: clean gutters first, then the larger continent.
// Among gutter overflows the one with less land cut from the gap wins.
func (c candidate) better(o *candidate) bool {
	if o == nil {
		return true
	}
	if c.gutterOK != o.gutterOK {
		return c.gutterOK
	}
	if !c.gutterOK {
		return c.chopped < o.chopped
	}
	return c.biggest > o.biggest
}

// Generate fills g with a landmass. It retries until an attempt keeps the
// hemisphere gap clean and produces a large enough continent, or until
// MaxAttempts, in which case the best attempt seen is restored.
func (gen *Generator) Generate(g *world.Grid) (Result, error) {
	cfg := gen.Config
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	bounds := gen.Layout.Bounds
	if err := bounds.Validate(); err != nil {
		return Result{}, fmt.Errorf("generate landmass: %w", err)
	}
	if gen.Areas == nil {
		gen.Areas = world.NewAreas()
	}

	required := float64(g.Width*g.Height) * cfg.RequiredLandmassPercent / 100
	gap := bounds.Gap()
	gutterLimit := float64(g.Height*gap) / 2

	var res Result
	var best *candidate

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		res.Attempts = attempt

		// Generate.
		gen.threshold(g)

		// Shift.
		shiftX, shiftY := Center(g)

		// CutGutters.
		chopped := CutGutters(g, gen.Rand, bounds)

		// Evaluate.
		c := candidate{shiftX: shiftX, shiftY: shiftY, chopped: chopped}
		if gap > 0 && float64(chopped) >= gutterLimit {
			res.Rejections = append(res.Rejections, Rejection{Attempt: attempt, Reason: RejectGutterOverflow, Chopped: chopped})
			slog.Debug("landmass rejected", "attempt", attempt, "reason", RejectGutterOverflow, "chopped", chopped, "limit", gutterLimit)
			if c.better(best) {
				c.grid = g.Clone()
				best = &c
			}
			continue
		}

		gen.Areas.Recalculate(g)
		c.gutterOK = true
		c.biggest = gen.Areas.PlotCount(gen.Areas.Biggest(false))
		if float64(c.biggest) >= required {
			res.Accepted = true
			res.ShiftX, res.ShiftY = shiftX, shiftY
			res.Biggest = c.biggest
			res.LandTiles = g.LandCount()
			slog.Info("landmass accepted", "attempt", attempt, "biggest", c.biggest, "land", res.LandTiles)
			return res, nil
		}

		res.Rejections = append(res.Rejections, Rejection{Attempt: attempt, Reason: RejectSmallLandmass, Chopped: chopped, Biggest: c.biggest})
		slog.Debug("landmass rejected", "attempt", attempt, "reason", RejectSmallLandmass, "biggest", c.biggest, "required", required)
		if c.better(best) {
			c.grid = g.Clone()
			best = &c
		}
	}

	g.CopyFrom(best.grid)
	gen.Areas.Recalculate(g)
	res.FellBack = true
	res.ShiftX, res.ShiftY = best.shiftX, best.shiftY
	res.Biggest = gen.Areas.PlotCount(gen.Areas.Biggest(false))
	res.LandTiles = g.LandCount()
	slog.Warn("landmass attempts exhausted, using best candidate",
		"attempts", res.Attempts,
		"biggest", res.Biggest,
		"clean_gutters", best.gutterOK,
	)
	return res, nil
}

// threshold samples a fresh field and marks cells at or above the water
// height as flat land, everything else as ocean.
func (gen *Generator) threshold(g *world.Grid) {
	cfg := gen.Config
	field := gen.Noise.Create(NoiseFieldID, g.Width, g.Height, cfg.Grain, noise.WrapX|noise.WrapY)
	waterHeight := field.HeightFromPercent(cfg.WaterPercent)

	var shaping *ShapingContext
	if cfg.UseShaping {
		shaping = NewShapingContext(cfg.Shaping, waterHeight, gen.Layout, gen.StartSectors)
	}

	g.ClearTags()

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			h := field.At(x, y)
			if shaping != nil {
				h = shaping.AdjustedHeight(x, y, h)
			}
			if h >= waterHeight {
				g.SetTerrain(x, y, world.TerrainFlat)
			} else {
				g.SetTerrain(x, y, world.TerrainOcean)
			}
		}
	}
}
