package zone

import (
	"github.com/bartonsun/D2RSG/pkg/grid"
	"github.com/bartonsun/D2RSG/pkg/objects"
	"github.com/bartonsun/D2RSG/pkg/pathfind"
)

// PlaceOutcome is the result of TryToPlaceObjectAndConnectToPath.
type PlaceOutcome int

const (
	// Success: the object's footprint and entrance are committed Used
	// / Blocked and it is connected to the zone's path network.
	Success PlaceOutcome = iota
	// CannotFit: no accessible neighbor tile exists for the element at
	// its chosen position.
	CannotFit
	// SealedOff: the connecting search exhausted its component without
	// reaching a Free tile; any Possible tiles it closed off are now
	// permanently Blocked.
	SealedOff
)

// FindPlaceForObject scans area for the tile maximizing nearest-object
// distance at which elem could be placed, subject to minDistance, zone
// membership, border avoidance, and (if findAccessible) the existence
// of a reachable entrance neighbor. It returns the chosen position and
// true, or the zero position and false if no tile qualifies.
func FindPlaceForObject(tm *grid.TileMap, z *Zone, area []grid.Position, elem *objects.MapElement, minDistance float32, findAccessible bool) (grid.Position, bool) {
	var best grid.Position
	bestDist := float32(-1)
	found := false

	for _, t := range area {
		probe := *elem
		probe.Pos = t
		if probe.TouchesBorder(tm, t) {
			continue
		}
		if !tm.IsInTheMap(t) || tm.GetZoneID(t) != z.ID || !tm.IsPossible(t) {
			continue
		}

		if findAccessible {
			if _, ok := accessibleOffset(tm, z, &probe); !ok {
				continue
			}
		}

		d := tm.GetNearestObjectDistance(t)
		if d < minDistance || d <= bestDist {
			continue
		}

		ok := true
		for _, bt := range probe.BlockedOffsets() {
			if !tm.IsInTheMap(bt) || tm.GetZoneID(bt) != z.ID || !tm.IsPossible(bt) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		best = t
		bestDist = d
		found = true
	}

	return best, found
}

// accessibleOffset returns the first entrance-neighborhood tile that is
// in-map and not blocked, meaning the object's entrance would be
// reachable once placed.
func accessibleOffset(tm *grid.TileMap, z *Zone, elem *objects.MapElement) (grid.Position, bool) {
	for _, o := range elem.EntranceOffsets() {
		if !tm.IsInTheMap(o) || tm.GetZoneID(o) != z.ID {
			continue
		}
		if tm.IsBlocked(o) || tm.IsUsed(o) {
			continue
		}
		return o, true
	}
	return grid.Position{}, false
}

// TryToPlaceObjectAndConnectToPath attempts to commit elem at pos: it
// installs a temporary blueprint so the connecting search cannot route
// through the object's own footprint, tries to connect an accessible
// neighbor tile into the zone's path network, and on success commits
// the footprint and entrance as permanently occupied. On any failure
// the blueprint is rolled back; tiles the connecting search sealed off
// remain Blocked regardless of outcome. On Success it also returns the
// accessible neighbor tile the object was connected through, which
// callers use as the guard stack's position.
func TryToPlaceObjectAndConnectToPath(tm *grid.TileMap, z *Zone, elem *objects.MapElement, pos grid.Position) (PlaceOutcome, grid.Position) {
	elem.Pos = pos

	accessible, ok := accessibleOffset(tm, z, elem)
	if !ok {
		return CannotFit, grid.Position{}
	}

	footprint := elem.BlockedOffsets()
	for _, p := range footprint {
		tm.SetOccupied(p, grid.Used)
	}

	result := pathfind.ConnectPath(tm, z.ID, accessible, true)
	for _, sealed := range result.SealedOff {
		z.dropPossible(sealed)
	}

	if !result.Reached {
		for _, p := range footprint {
			tm.SetOccupied(p, grid.Possible)
		}
		return SealedOff, grid.Position{}
	}

	for _, p := range footprint {
		z.dropPossible(p)
	}
	entrance := elem.Entrance()
	if tm.IsInTheMap(entrance) {
		tm.ModifyTile(entrance, func(t *grid.Tile) { t.Visitable = true })
		z.dropPossible(entrance)
	}

	tm.UpdateDistances(pos, z.SortedTiles())
	return Success, accessible
}
