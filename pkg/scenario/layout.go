package scenario

import (
	"math"

	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/template"
)

// zoneCell is one zone's assigned rectangle on the overall map, built
// by layoutZones ahead of any per-zone filling.
type zoneCell struct {
	tiles  []grid.Position
	center grid.Position
	rect   rectangle
}

// rectangle is a half-open [X0,X1) x [Y0,Y1) tile span.
type rectangle struct {
	X0, Y0, X1, Y1 int
}

// layoutZones partitions a mapSize x mapSize square into one
// non-overlapping rectangle per zone, sized proportionally to each
// zone's declared Size weight within its row. Zone geometry layout is
// an external collaborator per spec.md §1 ("core receives the
// per-zone tile set"); this grid-strip partition is the minimal
// deterministic stand-in needed to drive the filler end to end.
func layoutZones(mapSize int, zones []template.ZoneDescription) map[string]zoneCell {
	n := len(zones)
	if n == 0 {
		return map[string]zoneCell{}
	}

	rows := int(math.Ceil(math.Sqrt(float64(n))))
	cols := int(math.Ceil(float64(n) / float64(rows)))
	rowHeight := mapSize / rows

	cells := make(map[string]zoneCell, n)
	idx := 0
	for r := 0; r < rows && idx < n; r++ {
		remaining := n - idx
		rowCols := cols
		if remaining < rowCols {
			rowCols = remaining
		}
		rowZones := zones[idx : idx+rowCols]

		y0 := r * rowHeight
		y1 := y0 + rowHeight
		if r == rows-1 {
			y1 = mapSize
		}

		totalWeight := 0
		for _, zd := range rowZones {
			totalWeight += zoneWeight(zd)
		}

		x0 := 0
		for i, zd := range rowZones {
			x1 := x0 + mapSize*zoneWeight(zd)/totalWeight
			if i == len(rowZones)-1 {
				x1 = mapSize
			}
			cells[zd.ID] = buildCell(x0, y0, x1, y1)
			x0 = x1
		}
		idx += rowCols
	}
	return cells
}

func zoneWeight(zd template.ZoneDescription) int {
	if zd.Size <= 0 {
		return 1
	}
	return zd.Size
}

func buildCell(x0, y0, x1, y1 int) zoneCell {
	rect := rectangle{X0: x0, Y0: y0, X1: x1, Y1: y1}
	tiles := make([]grid.Position, 0, (x1-x0)*(y1-y0))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			tiles = append(tiles, grid.Position{X: x, Y: y})
		}
	}
	return zoneCell{tiles: tiles, center: grid.Position{X: (x0 + x1) / 2, Y: (y0 + y1) / 2}, rect: rect}
}
