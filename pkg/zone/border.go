package zone

import (
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/rng"
	"github.com/bartonsun/D2RSG/pkg/template"
)

// CreateBorder paints every zone-boundary tile (any tile with a
// neighbor claimed by a different zone) according to borderType:
// Water becomes neutral open water, Open and SemiOpen stay walkable
// (SemiOpen only with probability gapChance%), Closed becomes
// permanently Blocked.
func CreateBorder(tm *grid.TileMap, z *Zone, borderType template.BorderType, gapChance int, r *rng.RNG) {
	for _, t := range z.SortedTiles() {
		if !isBoundaryTile(tm, z, t) {
			continue
		}
		switch borderType {
		case template.BorderOpen:
			if tm.IsPossible(t) {
				tm.SetOccupied(t, grid.Free)
				z.dropPossible(t)
			}
		case template.BorderSemiOpen:
			if r.Chance(gapChance) {
				if tm.IsPossible(t) {
					tm.SetOccupied(t, grid.Free)
					z.dropPossible(t)
				}
			} else if tm.IsPossible(t) {
				tm.SetOccupied(t, grid.Blocked)
				z.dropPossible(t)
			}
		case template.BorderClosed:
			if tm.IsPossible(t) {
				tm.SetOccupied(t, grid.Blocked)
				z.dropPossible(t)
			}
		case template.BorderWater:
			tm.ModifyTile(t, func(tile *grid.Tile) { tile.SetTerrainGround(grid.TerrainNeutral, grid.GroundWater) })
			tm.SetOccupied(t, grid.Free)
			z.dropPossible(t)
		}
	}
}

func isBoundaryTile(tm *grid.TileMap, z *Zone, pos grid.Position) bool {
	touches := false
	tm.ForeachNeighbor(pos, func(n grid.Position) bool {
		if tm.GetZoneID(n) != z.ID {
			touches = true
			return false
		}
		return true
	})
	return touches
}
