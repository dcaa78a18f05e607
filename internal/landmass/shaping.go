// Package landmass generates the primary continents: height shaping,
// toroidal centering, gutter cutting and the retrying organic generator.
package landmass

import (
	"math"

	"github.com/talgya/continents/internal/world"
)

// ShapingParams are the tunable weights for AdjustedHeight.
type ShapingParams struct {
	FractalWeight     float64 // Multiplier on the raw noise height
	CenterWeight      float64 // Pull toward the joint center of the hemispheres
	StartSectorWeight float64 // Boost inside start sectors
	CenterExponent    float64 // Curve applied to the center term
	CenterThreshold   float64 // Percent-from-center below which sector biases apply
}

// DefaultShapingParams returns weights that favor central land without
// overriding the noise.
func DefaultShapingParams() ShapingParams {
	return ShapingParams{
		FractalWeight:     0.8,
		CenterWeight:      0.3,
		StartSectorWeight: 0.25,
		CenterExponent:    1.0,
		CenterThreshold:   60,
	}
}

// ShapingContext bundles everything AdjustedHeight reads. It is built once
// per generation pass and never mutated while the pass runs.
type ShapingContext struct {
	Params       ShapingParams
	WaterHeight  float64
	Layout       world.SectorLayout
	StartSectors world.StartSectors

	centerX, centerY float64
	maxDistance      float64
}

// NewShapingContext precomputes the joint center and maximum distance.
func NewShapingContext(params ShapingParams, waterHeight float64, layout world.SectorLayout, starts world.StartSectors) *ShapingContext {
	cx, cy := layout.Bounds.Center()
	return &ShapingContext{
		Params:       params,
		WaterHeight:  waterHeight,
		Layout:       layout,
		StartSectors: starts,
		centerX:      cx,
		centerY:      cy,
		maxDistance:  layout.Bounds.MaxDistance(),
	}
}

// PercentFromCenter returns the distance of (x, y) from the joint center
// as a percentage of the maximum distance, clamped to [0, 100].
func (c *ShapingContext) PercentFromCenter(x, y int) float64 {
	if c.maxDistance == 0 {
		return 0
	}
	d := math.Hypot(float64(x)-c.centerX, float64(y)-c.centerY)
	return world.Clamp(d/c.maxDistance*100, 0, 100)
}

// AdjustedHeight biases a raw noise height toward the map center and the
// configured start sectors. It does not mutate the context.
func (c *ShapingContext) AdjustedHeight(x, y int, rawHeight float64) float64 {
	p := c.Params
	wh := c.WaterHeight

	h := rawHeight * p.FractalWeight

	pct := c.PercentFromCenter(x, y)
	h += p.CenterWeight * math.Pow(wh*(100-pct)/100, p.CenterExponent)

	if pct >= p.CenterThreshold {
		return h
	}

	sector := c.Layout.Sector(x, y)
	switch {
	case c.StartSectors.Has(sector):
		region := c.Layout.SectorRegion(sector)
		sx, sy := region.Center()
		d := math.Hypot(float64(x)-sx, float64(y)-sy)
		maxRadius := float64(min(region.Width(), region.Height())) / 3
		ratio := 1.0
		if maxRadius > 0 {
			ratio = math.Min(d/maxRadius, 1)
		}
		h += p.StartSectorWeight * wh * (1 - math.Pow(ratio, 1.5))
		if pct < p.CenterThreshold*2/3 {
			h += p.StartSectorWeight * wh
		}
	case c.Layout.IsInterior(sector):
		// Fill the gaps between start sectors so they join up.
		h += p.CenterWeight * wh
	}
	return h
}
