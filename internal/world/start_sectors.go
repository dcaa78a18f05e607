// Start sector selection: marks the sectors favored for player starts.

package world

import (
	"log/slog"

	"github.com/talgya/continents/internal/entropy"
)

// StartSectors is a read-only mask indexed by sector id.
type StartSectors []bool

// Has returns true if id is a marked start sector. Out-of-range ids are
// treated as unmarked.
func (s StartSectors) Has(id int) bool {
	return id >= 0 && id < len(s) && s[id]
}

// Count returns the number of marked sectors.
func (s StartSectors) Count() int {
	n := 0
	for _, v := range s {
		if v {
			n++
		}
	}
	return n
}

// ChooseStartSectors marks count sectors, split as evenly as possible
// between the hemispheres (the west side takes the odd one). Interior
// sectors are preferred; edge sectors fill the remainder.
func ChooseStartSectors(rng entropy.Source, layout SectorLayout, count int) StartSectors {
	mask := make(StartSectors, layout.Count())
	if layout.Rows <= 0 || layout.Cols <= 0 || count <= 0 {
		return mask
	}

	perHemisphere := layout.Rows * layout.Cols
	westCount := (count + 1) / 2
	eastCount := count / 2

	pick := func(offset, want int) {
		var interior, edge []int
		for id := offset; id < offset+perHemisphere; id++ {
			if layout.IsInterior(id) {
				interior = append(interior, id)
			} else {
				edge = append(edge, id)
			}
		}
		entropy.Shuffle(rng, len(interior), "start sectors", func(i, j int) {
			interior[i], interior[j] = interior[j], interior[i]
		})
		entropy.Shuffle(rng, len(edge), "start sectors", func(i, j int) {
			edge[i], edge[j] = edge[j], edge[i]
		})

		candidates := append(interior, edge...)
		if want > len(candidates) {
			slog.Warn("more starts than sectors", "want", want, "sectors", len(candidates))
			want = len(candidates)
		}
		for _, id := range candidates[:want] {
			mask[id] = true
		}
	}

	pick(0, westCount)
	pick(perHemisphere, eastCount)
	return mask
}
