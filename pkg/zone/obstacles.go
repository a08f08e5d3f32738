package zone

import (
	"fmt"

	"github.com/bartonsun/D2RSG/pkg/catalog"
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/objects"
	"github.com/bartonsun/D2RSG/pkg/rng"
)

// mountainSizes are the square footprints tried, largest first, when
// greedily painting obstacles over Blocked tiles.
var mountainSizes = []int{5, 3, 1}

// CreateObstacles walks every Blocked tile in z and greedily stamps the
// largest mountain footprint that entirely fits within already-Blocked
// tiles, occasionally substituting a catalog mountain landmark of the
// same size. Mountain ground is terrain-neutral per the Tile
// invariant.
func CreateObstacles(tm *grid.TileMap, z *Zone, store *objects.Store, cat *catalog.Catalog, r *rng.RNG) error {
	for _, t := range z.SortedTiles() {
		if tm.State(t) != grid.Blocked {
			continue
		}
		if tm.Tile(t).Ground == grid.GroundMountain {
			continue // already painted by an earlier, larger stamp
		}

		size := pickMountainFootprint(tm, z, t)
		if size == 0 {
			continue
		}

		if r.Chance(10) && (size == 3 || size == 5) && r.Chance(5) {
			if id, ok, err := substituteLandmark(tm, z, store, cat, r, t, size); err != nil {
				return err
			} else if ok {
				z.Decorations = append(z.Decorations, id)
				continue
			}
		}

		for dy := 0; dy < size; dy++ {
			for dx := 0; dx < size; dx++ {
				p := grid.Position{X: t.X + dx, Y: t.Y + dy}
				tm.ModifyTile(p, func(tile *grid.Tile) { tile.SetTerrainGround(grid.TerrainNeutral, grid.GroundMountain) })
				tm.SetOccupied(p, grid.Blocked)
			}
		}
	}
	return nil
}

// pickMountainFootprint returns the largest size in mountainSizes whose
// size x size square at t is entirely in-zone and ShouldBeBlocked, or 0
// if even a 1x1 stamp does not fit.
func pickMountainFootprint(tm *grid.TileMap, z *Zone, t grid.Position) int {
	for _, size := range mountainSizes {
		fits := true
		for dy := 0; dy < size && fits; dy++ {
			for dx := 0; dx < size && fits; dx++ {
				p := grid.Position{X: t.X + dx, Y: t.Y + dy}
				if !tm.IsInTheMap(p) || tm.GetZoneID(p) != z.ID || !tm.ShouldBeBlocked(p) {
					fits = false
				}
			}
		}
		if fits {
			return size
		}
	}
	return 0
}

// substituteLandmark replaces a plain mountain stamp with a catalog
// mountain landmark matching size, if the table names one.
func substituteLandmark(tm *grid.TileMap, z *Zone, store *objects.Store, cat *catalog.Catalog, r *rng.RNG, pos grid.Position, size int) (grid.ObjectID, bool, error) {
	sizeKey := fmt.Sprintf("%d", size)
	var ids []string
	for _, entry := range cat.Mountains.Entries {
		if entry.Size == sizeKey {
			ids = entry.LandmarkID
			break
		}
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	pick := ids[r.PickIndex(len(ids))]
	lm, err := cat.LandmarkByID(pick)
	if err != nil {
		return 0, false, catalogMissing(Diagnostic{ZoneID: z.ID, Position: pos}, err)
	}

	elem := objects.MapElement{Width: lm.Width, Height: lm.Height, Pos: pos}
	for _, bt := range elem.BlockedOffsets() {
		if !tm.IsInTheMap(bt) || tm.GetZoneID(bt) != z.ID || !tm.ShouldBeBlocked(bt) {
			return 0, false, nil
		}
	}

	id := store.MintID()
	obj := &objects.Object{
		ID:     id,
		Kind:   objects.KindLandmark,
		Elem:   elem,
		ZoneID: z.ID,
		Landmark: &objects.Landmark{
			TypeID:     lm.ID,
			Width:      lm.Width,
			Height:     lm.Height,
			IsMountain: true,
		},
	}
	if err := store.Insert(obj); err != nil {
		return 0, false, internalError(Diagnostic{ZoneID: z.ID, Position: pos}, "%v", err)
	}
	for _, bt := range elem.BlockedOffsets() {
		tm.ModifyTile(bt, func(t *grid.Tile) {
			t.SetTerrainGround(grid.TerrainNeutral, grid.GroundMountain)
			t.AddBlockingObject(id)
		})
		tm.SetOccupied(bt, grid.Used)
	}
	return id, true, nil
}

// PaintForests decides, for every remaining Possible tile, whether it
// becomes a forest decoration (painted ground, marked Used) or is
// freed, per the template's forest percentage. Road tiles are always
// freed regardless of the roll.
func PaintForests(tm *grid.TileMap, z *Zone, r *rng.RNG, forestPercent int, treeImages int) {
	for _, t := range z.SortedTiles() {
		if !tm.IsPossible(t) {
			continue
		}
		if tm.IsRoad(t) {
			tm.SetOccupied(t, grid.Free)
			z.dropPossible(t)
			continue
		}
		if r.Chance(forestPercent) {
			tree := 0
			if treeImages > 0 {
				tree = r.PickIndex(treeImages)
			}
			tm.ModifyTile(t, func(tile *grid.Tile) {
				tile.SetTerrainGround(grid.TerrainNeutral, grid.GroundForest)
				tile.TreeImage = tree
			})
			tm.SetOccupied(t, grid.Used)
		} else {
			tm.SetOccupied(t, grid.Free)
		}
		z.dropPossible(t)
	}
}
