package world

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBoundary is returned when a boundary or hemisphere pair
// violates its ordering or overlap invariants.
var ErrInvalidBoundary = errors.New("invalid boundary")

// Boundary is an axis-aligned rectangle in grid coordinates.
// All four edges are inclusive.
type Boundary struct {
	West        int `json:"west"`
	East        int `json:"east"`
	South       int `json:"south"`
	North       int `json:"north"`
	ContinentID int `json:"continent_id"`
}

// Validate checks west <= east and south <= north.
func (b Boundary) Validate() error {
	if b.West > b.East || b.South > b.North {
		return fmt.Errorf("%w: %s", ErrInvalidBoundary, b)
	}
	return nil
}

// Contains returns true if (x, y) lies inside the boundary.
func (b Boundary) Contains(x, y int) bool {
	return x >= b.West && x <= b.East && y >= b.South && y <= b.North
}

// Width returns the number of columns covered.
func (b Boundary) Width() int {
	return b.East - b.West + 1
}

// Height returns the number of rows covered.
func (b Boundary) Height() int {
	return b.North - b.South + 1
}

// Center returns the geometric center of the boundary.
func (b Boundary) Center() (float64, float64) {
	return float64(b.West+b.East) / 2, float64(b.South+b.North) / 2
}

// IsZero reports whether b is the zero region returned for degenerate input.
func (b Boundary) IsZero() bool {
	return b == Boundary{}
}

func (b Boundary) String() string {
	return fmt.Sprintf("[x %d..%d, y %d..%d #%d]", b.West, b.East, b.South, b.North, b.ContinentID)
}

// Hemispheres pairs the west and east continent boundaries of a
// two-hemisphere world.
type Hemispheres struct {
	West Boundary `json:"west"`
	East Boundary `json:"east"`
}

// Validate checks both boundaries, that they do not overlap and that they
// share one shape. Sector lookup maps east columns through the west span,
// so differing widths or vertical spans would misplace cells.
func (h Hemispheres) Validate() error {
	if err := h.West.Validate(); err != nil {
		return fmt.Errorf("west: %w", err)
	}
	if err := h.East.Validate(); err != nil {
		return fmt.Errorf("east: %w", err)
	}
	if h.West.East >= h.East.West {
		return fmt.Errorf("%w: west %s overlaps east %s", ErrInvalidBoundary, h.West, h.East)
	}
	if h.West.Width() != h.East.Width() {
		return fmt.Errorf("%w: west width %d, east width %d", ErrInvalidBoundary, h.West.Width(), h.East.Width())
	}
	if h.West.South != h.East.South || h.West.North != h.East.North {
		return fmt.Errorf("%w: vertical spans differ: west %s, east %s", ErrInvalidBoundary, h.West, h.East)
	}
	return nil
}

// Gap returns the number of columns strictly between the two boundaries.
func (h Hemispheres) Gap() int {
	return h.East.West - h.West.East - 1
}

// Divider returns the column that separates west from east for tagging.
// Columns below the divider belong to the west side.
func (h Hemispheres) Divider() int {
	return (h.West.East + h.East.West + 1) / 2
}

// Center returns the joint center of the pair.
func (h Hemispheres) Center() (float64, float64) {
	return float64(h.West.West+h.East.East) / 2, float64(h.West.South+h.West.North) / 2
}

// MaxDistance returns the distance from the joint center to the far
// south-west corner, the largest distance any in-bounds cell can have.
func (h Hemispheres) MaxDistance() float64 {
	cx, cy := h.Center()
	return math.Hypot(cx-float64(h.West.West), cy-float64(h.West.South))
}

// Extent returns the smallest boundary covering both hemispheres.
func (h Hemispheres) Extent() Boundary {
	return Boundary{
		West:  h.West.West,
		East:  h.East.East,
		South: min(h.West.South, h.East.South),
		North: max(h.West.North, h.East.North),
	}
}
