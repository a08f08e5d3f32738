package scenario

import (
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/rng"
	"github.com/bartonsun/D2RSG/pkg/template"
)

// carveConnections opens a passable seam between every pair of
// grid-adjacent zones named by an Open or SemiOpen connection, before
// any zone is filled: the opened tiles become Free, so each zone's own
// InitFreeTiles stage picks them up as path seeds and CreateBorder
// later leaves them alone (it only touches tiles still Possible).
func carveConnections(tm *grid.TileMap, cells map[string]zoneCell, conns []template.Connection, r *rng.RNG) {
	for _, c := range conns {
		if c.Border == template.BorderClosed || c.Border == template.BorderWater {
			continue
		}
		from, ok1 := cells[c.From]
		to, ok2 := cells[c.To]
		if !ok1 || !ok2 {
			continue
		}
		for _, pos := range sharedSeam(from.rect, to.rect, c.Size) {
			if c.Border == template.BorderSemiOpen && !r.Chance(c.GapChance) {
				continue
			}
			tm.SetOccupied(pos, grid.Free)
		}
	}
}

// sharedSeam returns the span of tile positions straddling the shared
// edge of two axis-aligned, grid-adjacent rectangles, covering a
// sizeFrac (0..1) fraction of the shared edge centered on its midpoint.
// Returns nil if the rectangles are not adjacent.
func sharedSeam(a, b rectangle, sizeFrac float64) []grid.Position {
	if sizeFrac <= 0 {
		sizeFrac = 1
	}

	if a.X1 == b.X0 || b.X1 == a.X0 {
		lo, hi := overlap(a.Y0, a.Y1, b.Y0, b.Y1)
		if lo >= hi {
			return nil
		}
		lo, hi = shrink(lo, hi, sizeFrac)
		x0, x1 := a.X1-1, b.X0
		if b.X1 == a.X0 {
			x0, x1 = a.X0, b.X1-1
		}
		var out []grid.Position
		for y := lo; y < hi; y++ {
			out = append(out, grid.Position{X: x0, Y: y}, grid.Position{X: x1, Y: y})
		}
		return out
	}

	if a.Y1 == b.Y0 || b.Y1 == a.Y0 {
		lo, hi := overlap(a.X0, a.X1, b.X0, b.X1)
		if lo >= hi {
			return nil
		}
		lo, hi = shrink(lo, hi, sizeFrac)
		y0, y1 := a.Y1-1, b.Y0
		if b.Y1 == a.Y0 {
			y0, y1 = a.Y0, b.Y1-1
		}
		var out []grid.Position
		for x := lo; x < hi; x++ {
			out = append(out, grid.Position{X: x, Y: y0}, grid.Position{X: x, Y: y1})
		}
		return out
	}

	return nil
}

func overlap(a0, a1, b0, b1 int) (int, int) {
	lo := a0
	if b0 > lo {
		lo = b0
	}
	hi := a1
	if b1 < hi {
		hi = b1
	}
	return lo, hi
}

func shrink(lo, hi int, frac float64) (int, int) {
	span := hi - lo
	width := int(float64(span) * frac)
	if width < 1 {
		width = 1
	}
	if width >= span {
		return lo, hi
	}
	mid := (lo + hi) / 2
	newLo := mid - width/2
	newHi := newLo + width
	if newLo < lo {
		newLo, newHi = lo, lo+width
	}
	if newHi > hi {
		newHi, newLo = hi, hi-width
	}
	return newLo, newHi
}

// dominantBorder picks the per-zone border style CreateBorder paints
// the rest of a zone's boundary with (every boundary tile not already
// opened by carveConnections): the strongest declared connection style
// touching the zone, defaulting to Closed for a zone with none.
func dominantBorder(zoneID string, conns []template.Connection) (template.BorderType, int) {
	best := template.BorderClosed
	gap := 0
	rank := map[template.BorderType]int{
		template.BorderClosed:   0,
		template.BorderWater:    1,
		template.BorderSemiOpen: 2,
		template.BorderOpen:     3,
	}
	for _, c := range conns {
		if c.From != zoneID && c.To != zoneID {
			continue
		}
		if rank[c.Border] > rank[best] {
			best = c.Border
			gap = c.GapChance
		}
	}
	return best, gap
}
