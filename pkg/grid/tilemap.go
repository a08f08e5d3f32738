package grid

import "math"

// OccupancyState is the per-tile placement status tracked independently
// of Tile content.
type OccupancyState int

const (
	// Possible is unclaimed: a candidate for paths or objects.
	Possible OccupancyState = iota
	// Free is a carved walkable path tile.
	Free
	// Blocked is permanently reserved for an obstacle.
	Blocked
	// Used is occupied by an object's footprint.
	Used
)

// TileMap owns the tile content array and the parallel occupancy layer
// for an entire scenario map.
type TileMap struct {
	Width, Height int

	tiles []Tile

	state       []OccupancyState
	isRoad      []bool
	zoneID      []ZoneID
	nearestDist []float32
}

// NewTileMap creates a width x height map with every tile Possible and
// nearest-object distance initialized to +Inf.
func NewTileMap(width, height int) *TileMap {
	n := width * height
	tm := &TileMap{
		Width:       width,
		Height:      height,
		tiles:       make([]Tile, n),
		state:       make([]OccupancyState, n),
		isRoad:      make([]bool, n),
		zoneID:      make([]ZoneID, n),
		nearestDist: make([]float32, n),
	}
	for i := range tm.nearestDist {
		tm.nearestDist[i] = float32(math.Inf(1))
	}
	return tm
}

func (tm *TileMap) index(pos Position) int {
	return pos.Y*tm.Width + pos.X
}

// IsInTheMap reports whether pos lies within [0,Width) x [0,Height).
func (tm *TileMap) IsInTheMap(pos Position) bool {
	return pos.X >= 0 && pos.X < tm.Width && pos.Y >= 0 && pos.Y < tm.Height
}

// IsAtTheBorder reports whether pos touches the outer edge of the map.
func (tm *TileMap) IsAtTheBorder(pos Position) bool {
	return pos.X == 0 || pos.Y == 0 || pos.X == tm.Width-1 || pos.Y == tm.Height-1
}

// Tile returns a copy of the tile content at pos. Callers mutate via SetTile.
func (tm *TileMap) Tile(pos Position) Tile {
	return tm.tiles[tm.index(pos)]
}

// SetTile replaces the tile content at pos.
func (tm *TileMap) SetTile(pos Position, t Tile) {
	tm.tiles[tm.index(pos)] = t
}

// ModifyTile applies fn to the tile at pos in place.
func (tm *TileMap) ModifyTile(pos Position, fn func(*Tile)) {
	fn(&tm.tiles[tm.index(pos)])
}

// GetZoneID returns the zone id claiming pos.
func (tm *TileMap) GetZoneID(pos Position) ZoneID {
	return tm.zoneID[tm.index(pos)]
}

// SetZoneID assigns pos to the given zone.
func (tm *TileMap) SetZoneID(pos Position, id ZoneID) {
	tm.zoneID[tm.index(pos)] = id
}

// State returns the occupancy state at pos.
func (tm *TileMap) State(pos Position) OccupancyState {
	return tm.state[tm.index(pos)]
}

// IsPossible reports whether pos is unclaimed.
func (tm *TileMap) IsPossible(pos Position) bool {
	return tm.state[tm.index(pos)] == Possible
}

// IsFree reports whether pos is a carved walkable tile.
func (tm *TileMap) IsFree(pos Position) bool {
	return tm.state[tm.index(pos)] == Free
}

// IsBlocked reports whether pos is permanently blocked.
func (tm *TileMap) IsBlocked(pos Position) bool {
	return tm.state[tm.index(pos)] == Blocked
}

// ShouldBeBlocked is an alias for IsBlocked, matching the reference
// generator's naming for "this tile is reserved for an obstacle".
func (tm *TileMap) ShouldBeBlocked(pos Position) bool {
	return tm.IsBlocked(pos)
}

// IsUsed reports whether pos is occupied by an object footprint.
func (tm *TileMap) IsUsed(pos Position) bool {
	return tm.state[tm.index(pos)] == Used
}

// SetOccupied sets the occupancy state at pos. It does not itself update
// nearest-object distances; callers that place an object call
// UpdateDistances separately once the footprint is committed.
func (tm *TileMap) SetOccupied(pos Position, s OccupancyState) {
	tm.state[tm.index(pos)] = s
}

// IsRoad reports whether pos carries the independent road flag.
func (tm *TileMap) IsRoad(pos Position) bool {
	return tm.isRoad[tm.index(pos)]
}

// SetRoad sets or clears the road flag at pos.
func (tm *TileMap) SetRoad(pos Position, road bool) {
	tm.isRoad[tm.index(pos)] = road
}

// GetNearestObjectDistance returns the squared distance (in 32-bit
// float) from pos to the nearest placed object, or +Inf if none yet.
func (tm *TileMap) GetNearestObjectDistance(pos Position) float32 {
	return tm.nearestDist[tm.index(pos)]
}

// SetNearestObjectDistance forces the nearest-object distance at pos.
func (tm *TileMap) SetNearestObjectDistance(pos Position, d float32) {
	tm.nearestDist[tm.index(pos)] = d
}

// UpdateDistances sets every tile's nearest-object distance to the
// minimum of its current value and its squared distance to pos. Callers
// invoke this once per newly placed object, across the object's zone.
func (tm *TileMap) UpdateDistances(pos Position, area []Position) {
	for _, t := range area {
		d := t.SquaredDistance(pos)
		idx := tm.index(t)
		if d < tm.nearestDist[idx] {
			tm.nearestDist[idx] = d
		}
	}
}

// neighborOffsets8 lists the eight neighbor offsets, straight directions
// first then diagonals, matching the reference generator's scan order.
var neighborOffsets8 = []Position{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

var neighborOffsets4 = []Position{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
}

var neighborOffsetsDiagonal = []Position{
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// ForeachNeighbor invokes fn for each of the 8 neighbors of pos that lie
// in the map. fn may return false to stop the iteration early.
func (tm *TileMap) ForeachNeighbor(pos Position, fn func(Position) bool) {
	foreachOffset(tm, pos, neighborOffsets8, fn)
}

// ForeachDirectNeighbor invokes fn for each of the 4 straight neighbors
// of pos that lie in the map.
func (tm *TileMap) ForeachDirectNeighbor(pos Position, fn func(Position) bool) {
	foreachOffset(tm, pos, neighborOffsets4, fn)
}

// ForeachDiagonalNeighbor invokes fn for each of the 4 diagonal
// neighbors of pos that lie in the map.
func (tm *TileMap) ForeachDiagonalNeighbor(pos Position, fn func(Position) bool) {
	foreachOffset(tm, pos, neighborOffsetsDiagonal, fn)
}

func foreachOffset(tm *TileMap, pos Position, offsets []Position, fn func(Position) bool) {
	for _, o := range offsets {
		n := pos.Add(o)
		if !tm.IsInTheMap(n) {
			continue
		}
		if !fn(n) {
			return
		}
	}
}

// CanMoveBetween reports whether a step from a to a diagonal neighbor b
// is legal: at least one of the two straight tiles sharing that corner
// must not be blocked, preventing a diagonal cut through a solid corner.
func (tm *TileMap) CanMoveBetween(a, b Position) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 || dy == 0 {
		return true // straight step, no corner to cut
	}
	corner1 := Position{X: a.X + dx, Y: a.Y}
	corner2 := Position{X: a.X, Y: a.Y + dy}
	c1Blocked := !tm.IsInTheMap(corner1) || tm.IsBlocked(corner1)
	c2Blocked := !tm.IsInTheMap(corner2) || tm.IsBlocked(corner2)
	return !(c1Blocked && c2Blocked)
}
