package zone

import (
	"github.com/bartonsun/D2RSG/pkg/composer"
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/objects"
	"github.com/bartonsun/D2RSG/pkg/rng"
)

// InitTerrain paints every tile in z with the owner's terrain and
// plain ground, the starting state every zone tile has before any
// object or obstacle claims it.
func InitTerrain(tm *grid.TileMap, z *Zone, owner string) {
	terrain := terrainForOwner(owner)
	for _, t := range z.SortedTiles() {
		tm.ModifyTile(t, func(tile *grid.Tile) { tile.SetTerrainGround(terrain, grid.GroundPlain) })
	}
}

func terrainForOwner(owner string) grid.Terrain {
	switch owner {
	case "human":
		return grid.TerrainHuman
	case "undead":
		return grid.TerrainUndead
	case "heretic":
		return grid.TerrainHeretic
	case "dwarf":
		return grid.TerrainDwarf
	case "elf":
		return grid.TerrainElf
	default:
		return grid.TerrainNeutral
	}
}

// InitFreeTiles marks every tile already Free in tm (carved by an
// external connection carve-in) as a FreePaths seed, preparing the
// zone for fractalize. It registers no road nodes.
func InitFreeTiles(tm *grid.TileMap, z *Zone) {
	for _, t := range z.SortedTiles() {
		if tm.IsFree(t) {
			z.FreePaths = append(z.FreePaths, t)
			z.dropPossible(t)
		}
	}
}

// PlaceCapital places the zone owner's capital at the zone's center,
// clearing its entrance neighborhood to Free (clearEntrance) rather
// than routing a path to it like every other object.
func (f *Filler) PlaceCapital(z *Zone, owner, subrace, name string, tier int, garrisonLeaders []string, valueMin, valueMax int) error {
	elem := &objects.MapElement{Width: 5, Height: 5}
	elem.Pos = grid.Position{X: z.Center.X - elem.Width/2, Y: z.Center.Y - elem.Height/2}

	for _, bt := range elem.BlockedOffsets() {
		if !f.TM.IsInTheMap(bt) || f.TM.GetZoneID(bt) != z.ID {
			return lackOfSpace(f.diag(z, elem.Pos), "capital footprint out of zone")
		}
		f.TM.SetOccupied(bt, grid.Used)
		z.dropPossible(bt)
	}
	clearEntrance(f.TM, z, elem)

	fort := &objects.Fortification{Type: objects.Capital, Owner: owner, Subrace: subrace, Name: name, Tier: tier}
	if len(garrisonLeaders) > 0 {
		composed, err := composer.ComposeStack(f.RNG, f.Catalog, composer.StackSpec{
			Value:     rng.RandomValue{Min: valueMin, Max: valueMax},
			Owner:     owner,
			Subrace:   subrace,
			LeaderIDs: garrisonLeaders,
		})
		if err != nil {
			return catalogMissing(f.diag(z, elem.Pos), err)
		}
		fort.Garrison = composed.Group
	}

	id := f.Store.MintID()
	obj := &objects.Object{ID: id, Kind: objects.KindFortification, Elem: *elem, ZoneID: z.ID, Fortification: fort}
	if err := f.Store.Insert(obj); err != nil {
		return internalError(f.diag(z, elem.Pos), "%v", err)
	}
	z.CapitalID = id
	z.RequiredObjects = append(z.RequiredObjects, id)
	z.addRoadNode(elem.Entrance())
	f.TM.UpdateDistances(elem.Pos, z.SortedTiles())
	return nil
}

// clearEntrance forces every in-map, in-zone tile in elem's entrance
// neighborhood (plus the entrance itself) to Free.
func clearEntrance(tm *grid.TileMap, z *Zone, elem *objects.MapElement) {
	entrance := elem.Entrance()
	if tm.IsInTheMap(entrance) {
		tm.SetOccupied(entrance, grid.Free)
		tm.ModifyTile(entrance, func(t *grid.Tile) { t.Visitable = true })
		z.dropPossible(entrance)
	}
	for _, o := range elem.EntranceOffsets() {
		if !tm.IsInTheMap(o) || tm.GetZoneID(o) != z.ID {
			continue
		}
		if tm.IsPossible(o) {
			tm.SetOccupied(o, grid.Free)
			z.dropPossible(o)
		}
	}
}
