package world

// AreaID identifies a connected area. NoArea marks unassigned cells.
type AreaID int

const NoArea AreaID = -1

// Area is a 4-connected run of cells that are all water or all land.
type Area struct {
	ID        AreaID
	Water     bool
	PlotCount int
	// Ocean is true for water areas that touch the north or south edge
	// of the map or are the largest water body; everything else is a lake.
	Ocean bool
}

// Areas computes connected areas over a grid.
type Areas struct {
	width  int
	height int
	wrapX  bool
	ids    []AreaID
	areas  []Area
}

// NewAreas returns an empty area service; call Recalculate before use.
func NewAreas() *Areas {
	return &Areas{}
}

// Recalculate rebuilds all areas from the grid's current terrain.
// Connectivity is orthogonal and wraps horizontally when the grid does.
func (a *Areas) Recalculate(g *Grid) {
	a.width, a.height, a.wrapX = g.Width, g.Height, g.WrapX
	n := g.Width * g.Height
	if cap(a.ids) >= n {
		a.ids = a.ids[:n]
	} else {
		a.ids = make([]AreaID, n)
	}
	for i := range a.ids {
		a.ids[i] = NoArea
	}
	a.areas = a.areas[:0]

	var stack []int
	for start := 0; start < n; start++ {
		if a.ids[start] != NoArea {
			continue
		}
		id := AreaID(len(a.areas))
		water := g.terrain[start].IsWater()
		area := Area{ID: id, Water: water}

		a.ids[start] = id
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			area.PlotCount++

			x, y := i%g.Width, i/g.Width
			if water && (y == 0 || y == g.Height-1) {
				area.Ocean = true
			}
			for _, d := range orthogonal {
				nx, ny, ok := g.Wrap(x+d[0], y+d[1])
				if !ok {
					continue
				}
				j := g.Index(nx, ny)
				if a.ids[j] != NoArea || g.terrain[j].IsWater() != water {
					continue
				}
				a.ids[j] = id
				stack = append(stack, j)
			}
		}
		a.areas = append(a.areas, area)
	}

	// A map without polar water still has one open sea: the largest body.
	if sea := a.Biggest(true); sea != NoArea {
		a.areas[sea].Ocean = true
	}
}

// At returns the area id of (x, y).
func (a *Areas) At(x, y int) AreaID {
	return a.ids[y*a.width+x]
}

// Biggest returns the largest water (water=true) or land area, or NoArea.
// Ties keep the lowest id.
func (a *Areas) Biggest(water bool) AreaID {
	best := NoArea
	bestCount := 0
	for _, area := range a.areas {
		if area.Water != water {
			continue
		}
		if area.PlotCount > bestCount {
			best = area.ID
			bestCount = area.PlotCount
		}
	}
	return best
}

// PlotCount returns the number of cells in an area; 0 for unknown ids.
func (a *Areas) PlotCount(id AreaID) int {
	if id < 0 || int(id) >= len(a.areas) {
		return 0
	}
	return a.areas[id].PlotCount
}

// ConnectedToOcean reports whether a water area is open sea. For a land
// area it reports whether any of its cells borders open sea.
func (a *Areas) ConnectedToOcean(id AreaID) bool {
	if id < 0 || int(id) >= len(a.areas) {
		return false
	}
	if a.areas[id].Water {
		return a.areas[id].Ocean
	}
	for i, aid := range a.ids {
		if aid != id {
			continue
		}
		x, y := i%a.width, i/a.width
		for _, d := range orthogonal {
			nx, ny := x+d[0], y+d[1]
			if ny < 0 || ny >= a.height {
				continue
			}
			if nx < 0 || nx >= a.width {
				if !a.wrapX {
					continue
				}
				nx = Mod(nx, a.width)
			}
			other := a.ids[ny*a.width+nx]
			if a.areas[other].Water && a.areas[other].Ocean {
				return true
			}
		}
	}
	return false
}

// Area returns a copy of the area record.
func (a *Areas) Area(id AreaID) (Area, bool) {
	if id < 0 || int(id) >= len(a.areas) {
		return Area{}, false
	}
	return a.areas[id], true
}

var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
