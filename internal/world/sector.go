package world

// SectorLayout decomposes each hemisphere into Rows × Cols sectors.
// Sector ids run row-major over the west hemisphere first, then the east
// hemisphere offset by Rows*Cols.
type SectorLayout struct {
	Rows   int
	Cols   int
	Bounds Hemispheres
}

// Count returns the total number of sectors across both hemispheres.
func (l SectorLayout) Count() int {
	return 2 * l.Rows * l.Cols
}

// Sector returns the sector id containing (x, y). Cells inside the east
// boundary are translated into west-relative columns and offset by
// Rows*Cols. Coordinates outside both boundaries are not clamped and may
// produce an out-of-range id; only the inclusive east/north edge is folded
// into the last column/row.
func (l SectorLayout) Sector(x, y int) int {
	if l.Rows <= 0 || l.Cols <= 0 {
		return 0
	}
	west := l.Bounds.West
	offset := 0
	if x >= l.Bounds.East.West && x <= l.Bounds.East.East {
		offset = l.Rows * l.Cols
		x += west.West - l.Bounds.East.West
	}

	col := scaledIndex(x-west.West, west.East-west.West, l.Cols)
	row := scaledIndex(y-west.South, west.North-west.South, l.Rows)
	return row*l.Cols + col + offset
}

// scaledIndex computes floor(offset / (span / parts)) in integer arithmetic.
// An offset equal to span (the inclusive far edge) belongs to the last part.
func scaledIndex(offset, span, parts int) int {
	if span <= 0 {
		return 0
	}
	i := floorDiv(offset*parts, span)
	if offset == span {
		i = parts - 1
	}
	return i
}

// SectorRegion recovers the sub-boundary of a sector id. A zero Rows or
// Cols yields the zero Boundary.
func (l SectorLayout) SectorRegion(id int) Boundary {
	if l.Rows <= 0 || l.Cols <= 0 {
		return Boundary{}
	}
	b := l.Bounds.West
	perHemisphere := l.Rows * l.Cols
	if id >= perHemisphere {
		b = l.Bounds.East
		id -= perHemisphere
	}
	row := id / l.Cols
	col := id - row*l.Cols

	w := b.East - b.West
	h := b.North - b.South
	region := Boundary{
		West:        b.West + ceilDiv(col*w, l.Cols),
		East:        b.West + ceilDiv((col+1)*w, l.Cols) - 1,
		South:       b.South + ceilDiv(row*h, l.Rows),
		North:       b.South + ceilDiv((row+1)*h, l.Rows) - 1,
		ContinentID: b.ContinentID,
	}
	if col == l.Cols-1 {
		region.East = b.East
	}
	if row == l.Rows-1 {
		region.North = b.North
	}
	return region
}

// IsInterior reports whether a sector touches none of its hemisphere's
// outer rows or columns. Grids with two or fewer rows or columns have no
// interior sectors.
func (l SectorLayout) IsInterior(id int) bool {
	if l.Rows <= 2 || l.Cols <= 2 {
		return false
	}
	id %= l.Rows * l.Cols
	row := id / l.Cols
	col := id % l.Cols
	return row > 0 && row < l.Rows-1 && col > 0 && col < l.Cols-1
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
